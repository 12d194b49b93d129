// Package career scores career targets against their free-text rationale.
//
// Matching is group-level: an item counts as evidence when the rationale
// mentions any keyword of the family the item belongs to, not the item
// itself. A rationale saying "strong algebra" credits every math subject.
package career

import (
	"math"

	"github.com/okian/skillradar/internal/domain/catalog"
	"github.com/okian/skillradar/internal/domain/model"
)

// certificateScore is the evidence a held certificate contributes.
const certificateScore = 100

// Weights are the branch weights of the composite match. They are applied to
// branch fractions in [0,1] and the composite is scaled to a percentage once.
type Weights struct {
	Subjects     float64
	Skills       float64
	Certificates float64
}

// DefaultWeights returns the 0.4 / 0.4 / 0.2 split.
func DefaultWeights() Weights {
	return Weights{Subjects: 0.4, Skills: 0.4, Certificates: 0.2}
}

// Groups are the keyword families for each evidence branch.
type Groups struct {
	Subjects     catalog.KeywordGroups
	Skills       catalog.KeywordGroups
	Certificates catalog.KeywordGroups
}

// GroupsFrom takes the keyword families out of a catalog.
func GroupsFrom(c catalog.Catalog) Groups {
	return Groups{Subjects: c.SubjectGroups, Skills: c.SkillGroups, Certificates: c.CertificateGroups}
}

// Breakdown is the per-branch fraction behind a match percentage.
type Breakdown struct {
	Subjects     float64
	Skills       float64
	Certificates float64
}

type evidence struct {
	group string
	score int
}

// Match returns a copy of careers with MatchPercentage recomputed. The input
// slice is not modified.
func Match(careers []model.CareerTarget, subjects []model.SubjectSummary, skills []model.SkillSummary, certificates []model.CertificateRecord, certNames map[string]string, groups Groups, w Weights) []model.CareerTarget {
	subjectEv := make([]evidence, len(subjects))
	for i, s := range subjects {
		subjectEv[i] = classify(groups.Subjects, s.SubjectID+" "+s.DisplayName, int(s.Average))
	}
	skillEv := make([]evidence, len(skills))
	for i, s := range skills {
		skillEv[i] = classify(groups.Skills, s.SkillID+" "+s.DisplayName, int(s.Score))
	}
	certEv := make([]evidence, len(certificates))
	for i, c := range certificates {
		label := c.CertificateID + " " + certNames[c.CertificateID] + " " + c.Description
		certEv[i] = classify(groups.Certificates, label, certificateScore)
	}

	out := make([]model.CareerTarget, len(careers))
	for i, c := range careers {
		text := catalog.NewText(c.Rationale)
		b := Breakdown{
			Subjects:     fraction(subjectEv, groups.Subjects.Mentioned(text)),
			Skills:       fraction(skillEv, groups.Skills.Mentioned(text)),
			Certificates: fraction(certEv, groups.Certificates.Mentioned(text)),
		}
		c.MatchPercentage = Percentage(b, w)
		out[i] = c
	}
	return out
}

// Percentage composes branch fractions into a rounded 0-100 match.
func Percentage(b Breakdown, w Weights) int {
	composite := b.Subjects*w.Subjects + b.Skills*w.Skills + b.Certificates*w.Certificates
	pct := math.Round(composite * 100)
	if pct < 0 || math.IsNaN(pct) {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return int(pct)
}

func classify(groups catalog.KeywordGroups, label string, score int) evidence {
	g, _ := groups.GroupOf(catalog.NewText(label))
	return evidence{group: g, score: score}
}

// fraction is the share of the branch's maximum score whose family the
// rationale mentions. Empty branches contribute 0.
func fraction(items []evidence, mentioned map[string]bool) float64 {
	if len(items) == 0 || len(mentioned) == 0 {
		return 0
	}
	total := 0
	for _, it := range items {
		if it.group != "" && mentioned[it.group] {
			total += it.score
		}
	}
	return float64(total) / float64(len(items)*100)
}
