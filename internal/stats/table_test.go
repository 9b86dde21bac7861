package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Rank", "Player", "WPM"}
	rows := [][]string{
		{"1", "alice", "42.5"},
		{"10", "李华", "7.0"},
	}
	rightAlign := map[int]bool{0: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Rank Player  WPM" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "   1 alice  42.5" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "  10 李华    7.0" {
		t.Fatalf("wide runes should count as two columns: %q", lines[2])
	}
}

func TestFormatTableTrimsTrailingPadding(t *testing.T) {
	lines := formatTable([]string{"Name", "Note"}, [][]string{{"a", "x"}}, nil)
	if lines[1] != "a    x" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if formatTable(nil, nil, nil) != nil {
		t.Fatalf("expected nil for an empty table")
	}
}
