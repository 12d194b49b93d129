// Package trend extrapolates grading checkpoints, classifies decline risk and
// computes the weighted effort score.
package trend

import (
	"math"

	"github.com/okian/skillradar/internal/domain/model"
)

const (
	gradeMin = 0
	gradeMax = 10
)

// Effort weights; they sum to 100.
const (
	loginWeight     = 40
	dashboardWeight = 25
	updatesWeight   = 20
	streakWeight    = 15
)

// EffortCaps are the counter values at which each ratio saturates.
type EffortCaps struct {
	LoginDays      float64
	DashboardOpens float64
	Updates        float64
	Streak         float64
}

// DefaultEffortCaps returns the 7 / 10 / 5 / 7 caps.
func DefaultEffortCaps() EffortCaps {
	return EffortCaps{LoginDays: 7, DashboardOpens: 10, Updates: 5, Streak: 7}
}

var riskLabels = map[model.RiskLevel]string{
	model.RiskSafe:   "Safe",
	model.RiskWatch:  "Watch",
	model.RiskMedium: "Medium risk",
	model.RiskHigh:   "High risk",
}

// PredictScore extrapolates the next checkpoint linearly from three
// checkpoints. When any checkpoint is missing (zero or not finite) ck is
// returned unchanged. The result is clamped to [0,10] and rounded to two
// decimals.
func PredictScore(tx, gk, ck float64) float64 {
	if missing(tx) || missing(gk) || missing(ck) {
		return ck
	}
	slope := (ck - tx) / 2
	predicted := math.Max(gradeMin, math.Min(gradeMax, ck+slope))
	return math.Round(predicted*100) / 100
}

// Predict applies PredictScore to a series.
func Predict(s model.ThreePointSeries) float64 {
	return PredictScore(s.First, s.Middle, s.Last)
}

// RiskLevel counts the decline signals gk<tx, ck<gk and predicted<ck and maps
// the count to a level: 0 safe, 1 watch, 2 medium, 3 high.
func RiskLevel(tx, gk, ck, predicted float64) model.Risk {
	score := 0
	if gk < tx {
		score++
	}
	if ck < gk {
		score++
	}
	if predicted < ck {
		score++
	}

	level := model.RiskHigh
	switch score {
	case 0:
		level = model.RiskSafe
	case 1:
		level = model.RiskWatch
	case 2:
		level = model.RiskMedium
	}
	return model.Risk{Level: level, Label: riskLabels[level], Score: score}
}

// Analyze predicts the next checkpoint of s and classifies its risk.
func Analyze(s model.ThreePointSeries) model.Trend {
	p := Predict(s)
	return model.Trend{Series: s, Predicted: p, Risk: RiskLevel(s.First, s.Middle, s.Last, p)}
}

// EffortScore is the weighted sum of the four counters, each divided by its
// cap and clamped to [0,1], rounded to an integer in [0,100].
func EffortScore(c model.ActivityCounters, caps EffortCaps) int {
	sum := ratio(c.LoginDays, caps.LoginDays)*loginWeight +
		ratio(c.DashboardOpens, caps.DashboardOpens)*dashboardWeight +
		ratio(c.Updates, caps.Updates)*updatesWeight +
		ratio(c.Streak, caps.Streak)*streakWeight
	return int(math.Round(sum))
}

func ratio(n int, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, float64(n)/limit))
}

func missing(v float64) bool {
	return v == 0 || math.IsNaN(v) || math.IsInf(v, 0)
}
