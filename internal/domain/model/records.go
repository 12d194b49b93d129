// Package model contains domain models passed between layers.
package model

import "time"

// NormalizedScore is a score on the common 0-100 integer scale.
// Values are produced by the normalize package, never constructed by hand.
type NormalizedScore int

// ScoreRecord is a single graded result for a subject.
type ScoreRecord struct {
	SubjectID string    // subject identifier
	Score     float64   // raw score on a 0-10 or 0-100 scale
	Date      time.Time // when the grade was recorded
	Term      string    // grading term label, e.g. "HK1"
	Note      string    // free-text instructor note
}

// SkillRecord is a self-reported or assessed skill level.
type SkillRecord struct {
	SkillID     string
	Level       string // vocabulary level ("Cơ bản", "advanced") or free text ("7/10")
	Description string
	Date        time.Time
}

// CertificateRecord is a credential held by the learner.
type CertificateRecord struct {
	CertificateID string
	Issuer        string
	Result        string
	Description   string
	Date          time.Time
}

// SubjectSummary is the aggregate of all score records for one subject.
type SubjectSummary struct {
	SubjectID   string          `json:"subject_id"`
	DisplayName string          `json:"display_name"`
	Average     NormalizedScore `json:"average"`
	LatestTerm  string          `json:"latest_term,omitempty"`
	LatestNote  string          `json:"latest_note,omitempty"`
}

// SkillSummary is the latest known level of one skill.
type SkillSummary struct {
	SkillID     string          `json:"skill_id"`
	DisplayName string          `json:"display_name"`
	Score       NormalizedScore `json:"score"`
	Level       string          `json:"level"`
	Description string          `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
}

// CompetencyPoint is one axis of the comparison vector.
type CompetencyPoint struct {
	Label string          `json:"label"`
	Score NormalizedScore `json:"score"`
}

// CompetencyVector is an ordered list of points with unique labels.
type CompetencyVector []CompetencyPoint
