package model

import (
	"fmt"
	"time"
)

// SuggestionKind tells what a suggestion asks the learner to pursue.
type SuggestionKind string

// Suggestion kinds.
const (
	KindCertificate SuggestionKind = "certificate"
	KindSkill       SuggestionKind = "skill"
	KindSubject     SuggestionKind = "subject"
)

// Urgency is the ordinal priority of a suggestion. Lower values are more urgent.
type Urgency int

// Urgency levels.
const (
	UrgencyHigh Urgency = iota
	UrgencyMedium
	UrgencyLow
)

// String returns the lowercase urgency name.
func (u Urgency) String() string {
	switch u {
	case UrgencyHigh:
		return "high"
	case UrgencyMedium:
		return "medium"
	default:
		return "low"
	}
}

// MarshalText encodes the urgency by name.
func (u Urgency) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText decodes an urgency name.
func (u *Urgency) UnmarshalText(b []byte) error {
	switch string(b) {
	case "high":
		*u = UrgencyHigh
	case "medium":
		*u = UrgencyMedium
	case "low":
		*u = UrgencyLow
	default:
		return fmt.Errorf("unknown urgency %q", b)
	}
	return nil
}

// Suggestion is a remediation proposal with a human-readable rationale.
type Suggestion struct {
	ID        string         `json:"id"`
	Kind      SuggestionKind `json:"kind"`
	Name      string         `json:"name"`
	Rationale string         `json:"rationale"`
	Provider  string         `json:"provider,omitempty"`
	EstHours  int            `json:"est_hours,omitempty"`
	Urgency   Urgency        `json:"urgency"`
}

// CareerTarget is a career scored against its rationale text.
// MatchPercentage is an output and is always recomputed.
type CareerTarget struct {
	Name            string `json:"name"`
	Rationale       string `json:"rationale"`
	MatchPercentage int    `json:"match_percentage"`
}

// ThreePointSeries holds three sequential grading checkpoints on a 0-10 scale.
type ThreePointSeries struct {
	First  float64 `json:"first"`
	Middle float64 `json:"middle"`
	Last   float64 `json:"last"`
}

// ActivityCounters are raw engagement counts over the observation window.
type ActivityCounters struct {
	LoginDays      int `json:"login_days"`
	DashboardOpens int `json:"dashboard_opens"`
	Updates        int `json:"updates"`
	Streak         int `json:"streak"`
}

// RiskLevel classifies academic trend decline.
type RiskLevel string

// Risk levels, ordered by severity.
const (
	RiskSafe   RiskLevel = "safe"
	RiskWatch  RiskLevel = "watch"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Risk is the decline classification with the number of signals that fired.
type Risk struct {
	Level RiskLevel `json:"level"`
	Label string    `json:"label"`
	Score int       `json:"score"`
}

// Trend is the extrapolated next checkpoint and its risk classification.
type Trend struct {
	Series    ThreePointSeries `json:"series"`
	Predicted float64          `json:"predicted"`
	Risk      Risk             `json:"risk"`
}

// Profile bundles everything the engine needs for one learner.
type Profile struct {
	LearnerID        string
	Scores           []ScoreRecord
	Skills           []SkillRecord
	Certificates     []CertificateRecord
	Careers          []CareerTarget
	Series           *ThreePointSeries
	Activity         *ActivityCounters
	SubjectNames     map[string]string
	SkillNames       map[string]string
	CertificateNames map[string]string
}

// Report is the engine output for one learner.
type Report struct {
	ID          string           `json:"id,omitempty"`
	LearnerID   string           `json:"learner_id"`
	GeneratedAt time.Time        `json:"generated_at"`
	Subjects    []SubjectSummary `json:"subjects"`
	Skills      []SkillSummary   `json:"skills"`
	Radar       CompetencyVector `json:"radar"`
	Suggestions []Suggestion     `json:"suggestions"`
	Careers     []CareerTarget   `json:"careers"`
	Trend       *Trend           `json:"trend,omitempty"`
	Effort      *int             `json:"effort,omitempty"`
}
