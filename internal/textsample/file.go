package textsample

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/verte-zerg/tuiracer/internal/model"
)

// LoadTexts reads one prompt per line from the provided file path. Blank
// lines and lines starting with # are skipped.
func LoadTexts(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only text file.
			_ = cerr
		}
	}()

	var texts []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		texts = append(texts, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(texts) == 0 {
		return nil, fmt.Errorf("text file is empty")
	}
	return texts, nil
}

// LoadDir replaces the samples of every difficulty that has a
// <dir>/<difficulty>.txt file. It returns the difficulties that were replaced.
// A missing directory or file is not an error.
func (p *Provider) LoadDir(dir string) ([]model.Difficulty, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, nil
	}
	var replaced []model.Difficulty
	for _, d := range model.Difficulties {
		path := filepath.Join(dir, string(d)+".txt")
		texts, err := LoadTexts(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return replaced, fmt.Errorf("failed to load %s: %w", path, err)
		}
		p.Replace(d, texts)
		replaced = append(replaced, d)
	}
	return replaced, nil
}
