package stats

import (
	"time"

	"github.com/verte-zerg/tuiracer/internal/model"
)

// SeriesDays is the length of the trailing daily series.
const SeriesDays = 7

const dayLayout = "2006-01-02"

// Summary aggregates a user's filtered results.
type Summary struct {
	AverageWPM      float64
	MaxWPM          float64
	AverageAccuracy float64
	TotalGames      int
	CompletedGames  int
	Daily           []DailyPoint
}

// DailyPoint holds the completed-game averages of one UTC day.
type DailyPoint struct {
	Day      time.Time
	WPM      float64
	Accuracy float64
	Games    int
}

// Summarize filters results by cfg's mode and window and aggregates them.
// Totals count every filtered result; averages, max, and the daily series
// use completed results only.
func Summarize(results []model.GameResult, cfg model.StatsConfig, now time.Time) Summary {
	filtered := filterResults(results, cfg.Mode, "", cfg.Window, now)
	completed := completedOnly(filtered)

	summary := Summary{
		TotalGames:     len(filtered),
		CompletedGames: len(completed),
	}
	if len(completed) > 0 {
		var sumWPM, sumAcc, maxWPM float64
		for _, r := range completed {
			sumWPM += r.WPM
			sumAcc += r.Accuracy
			if r.WPM > maxWPM {
				maxWPM = r.WPM
			}
		}
		count := float64(len(completed))
		summary.AverageWPM = Round10(sumWPM / count)
		summary.MaxWPM = Round10(maxWPM)
		summary.AverageAccuracy = Round10(sumAcc / count)
	}
	summary.Daily = dailySeries(completed, now)
	return summary
}

func dailySeries(completed []model.GameResult, now time.Time) []DailyPoint {
	today := now.UTC()
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	type bucket struct {
		wpm, acc float64
		n        int
	}
	buckets := make(map[string]*bucket, SeriesDays)
	points := make([]DailyPoint, SeriesDays)
	for i := 0; i < SeriesDays; i++ {
		day := today.AddDate(0, 0, i-(SeriesDays-1))
		points[i].Day = day
		buckets[day.Format(dayLayout)] = &bucket{}
	}
	for _, r := range completed {
		b, ok := buckets[r.Timestamp.UTC().Format(dayLayout)]
		if !ok {
			continue
		}
		b.wpm += r.WPM
		b.acc += r.Accuracy
		b.n++
	}
	for i := range points {
		b := buckets[points[i].Day.Format(dayLayout)]
		if b.n == 0 {
			continue
		}
		points[i].Games = b.n
		points[i].WPM = Round10(b.wpm / float64(b.n))
		points[i].Accuracy = Round10(b.acc / float64(b.n))
	}
	return points
}
