// Package dashboard computes display metrics from analytics snapshots. Pure
// functions over already-fetched data; no I/O and no mutation.
package dashboard

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"votepulse/internal/models"
)

// Hero holds the day's headline totals.
type Hero struct {
	TotalVisits  int `json:"total_visits"`
	TotalViews   int `json:"total_views"`
	TotalUpvotes int `json:"total_upvotes"`
}

// Entry is one leaderboard row. Ratio is this project's share of the day's
// upvotes in [0,1]; RatioPercent is the same rounded to one decimal.
type Entry struct {
	Key          string  `json:"key"`
	Upvotes      int     `json:"upvotes"`
	Views        int     `json:"views"`
	Ratio        float64 `json:"ratio"`
	RatioPercent float64 `json:"ratio_percent"`
}

// TrendPoint is one day in a views-over-time series.
type TrendPoint struct {
	Date       string `json:"date"`
	TotalViews int    `json:"total_views"`
}

// HeroMetrics sums a day's totals.
func HeroMetrics(snap models.DaySnapshot) Hero {
	h := Hero{TotalVisits: snap.TotalVisits}
	for _, v := range snap.ProjectViews {
		h.TotalViews += v
	}
	for _, v := range snap.Upvotes {
		h.TotalUpvotes += v
	}
	return h
}

// Leaderboard ranks every project that appears in either the views or the
// upvotes map: upvotes descending, then views descending, then an arbitrary
// order. The final tier is shuffled fresh on every call; the stable sort
// preserves that shuffle only within exact ties.
func Leaderboard(snap models.DaySnapshot) []Entry {
	keys := make(map[string]struct{})
	for k := range snap.ProjectViews {
		keys[k] = struct{}{}
	}
	for k := range snap.Upvotes {
		keys[k] = struct{}{}
	}

	total := 0
	for _, v := range snap.Upvotes {
		total += v
	}

	entries := make([]Entry, 0, len(keys))
	for k := range keys {
		e := Entry{
			Key:     k,
			Upvotes: snap.Upvotes[k],
			Views:   snap.ProjectViews[k],
		}
		if total > 0 {
			e.Ratio = float64(e.Upvotes) / float64(total)
			e.RatioPercent = math.Round(e.Ratio*1000) / 10
		}
		entries = append(entries, e)
	}

	rand.Shuffle(len(entries), func(i, j int) {
		entries[i], entries[j] = entries[j], entries[i]
	})
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Upvotes != entries[j].Upvotes {
			return entries[i].Upvotes > entries[j].Upvotes
		}
		return entries[i].Views > entries[j].Views
	})
	return entries
}

// Trend produces a gapless per-day total-views series of length days
// starting at from. Days with no snapshot contribute zero rather than being
// omitted.
func Trend(snaps []models.DaySnapshot, from time.Time, days int) []TrendPoint {
	byDate := make(map[string]models.DaySnapshot, len(snaps))
	for _, s := range snaps {
		byDate[s.Date] = s
	}

	points := make([]TrendPoint, 0, days)
	for i := 0; i < days; i++ {
		date := from.AddDate(0, 0, i).Format("2006-01-02")
		total := 0
		if s, ok := byDate[date]; ok {
			for _, v := range s.ProjectViews {
				total += v
			}
		}
		points = append(points, TrendPoint{Date: date, TotalViews: total})
	}
	return points
}
