// Package suggest derives rule-based remediation suggestions from learner
// summaries. It only reports gaps; it never ranks satisfied areas.
package suggest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/okian/skillradar/internal/domain/aggregate"
	"github.com/okian/skillradar/internal/domain/catalog"
	"github.com/okian/skillradar/internal/domain/model"
	"github.com/okian/skillradar/internal/domain/normalize"
)

// DefaultThreshold is the proxy score below which a gap is reported.
const DefaultThreshold = 60

// Remediation urgency bands for subject and skill suggestions.
const (
	highUrgencyBelow   = 40
	mediumUrgencyBelow = 50
)

// suggestionSpace namespaces the deterministic suggestion ids.
var suggestionSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("skillradar:suggestion"))

// Certificates runs every rule in order and emits at most one certificate
// suggestion per rule: when its proxy score is below threshold and no owned
// certificate text matches the rule's Owned pattern.
func Certificates(subjects []model.SubjectSummary, skills []model.SkillSummary, owned []model.CertificateRecord, certNames map[string]string, rules []catalog.SuggestionRule, threshold int) []model.Suggestion {
	blob := OwnedText(owned, certNames)
	out := make([]model.Suggestion, 0, len(rules))
	for _, r := range rules {
		proxy := Proxy(r, subjects, skills)
		if int(proxy) >= threshold {
			continue
		}
		if r.Owned != nil && r.Owned.MatchString(blob) {
			continue
		}
		out = append(out, model.Suggestion{
			ID:        suggestionID(model.KindCertificate, r.Category),
			Kind:      model.KindCertificate,
			Name:      r.Name,
			Rationale: fmt.Sprintf(r.Rationale, proxy, threshold),
			Provider:  r.Provider,
			EstHours:  r.EstHours,
			Urgency:   r.Urgency,
		})
	}
	return out
}

// Proxy is the rounded mean score of the summaries the rule selects, or 0
// when none match. Subject rules search display names; skill rules search the
// skill id, display name, level and description text.
func Proxy(r catalog.SuggestionRule, subjects []model.SubjectSummary, skills []model.SkillSummary) model.NormalizedScore {
	total, count := 0, 0
	switch r.Source {
	case catalog.FromSubjects:
		for _, s := range subjects {
			if containsAny(normalize.Fold(s.DisplayName), r.ProxyKeywords) {
				total += int(s.Average)
				count++
			}
		}
	case catalog.FromSkills:
		for _, s := range skills {
			text := normalize.Fold(strings.Join([]string{s.SkillID, s.DisplayName, s.Level, s.Description}, " "))
			if containsAny(text, r.ProxyKeywords) {
				total += int(s.Score)
				count++
			}
		}
	}
	return aggregate.Mean(total, count)
}

// OwnedText folds id, resolved name, result and description of every owned
// certificate into one searchable string.
func OwnedText(owned []model.CertificateRecord, names map[string]string) string {
	parts := make([]string, 0, len(owned)*4)
	for _, c := range owned {
		parts = append(parts, c.CertificateID, aggregate.DisplayName(c.CertificateID, names), c.Result, c.Description)
	}
	return normalize.Fold(strings.Join(parts, " "))
}

// Subjects proposes remediation for every subject averaging below
// threshold, weakest first.
func Subjects(subjects []model.SubjectSummary, threshold int) []model.Suggestion {
	out := make([]model.Suggestion, 0)
	for _, s := range weakest(subjects, threshold, func(s model.SubjectSummary) model.NormalizedScore { return s.Average }) {
		out = append(out, model.Suggestion{
			ID:        suggestionID(model.KindSubject, s.SubjectID),
			Kind:      model.KindSubject,
			Name:      s.DisplayName,
			Rationale: fmt.Sprintf("Average %d in %s is below %d.", s.Average, s.DisplayName, threshold),
			Urgency:   urgencyFor(s.Average),
		})
	}
	return out
}

// Skills proposes practice for every skill whose latest level scores below
// threshold, weakest first.
func Skills(skills []model.SkillSummary, threshold int) []model.Suggestion {
	out := make([]model.Suggestion, 0)
	for _, s := range weakest(skills, threshold, func(s model.SkillSummary) model.NormalizedScore { return s.Score }) {
		out = append(out, model.Suggestion{
			ID:        suggestionID(model.KindSkill, s.SkillID),
			Kind:      model.KindSkill,
			Name:      s.DisplayName,
			Rationale: fmt.Sprintf("Latest level %q for %s scores %d, below %d.", s.Level, s.DisplayName, s.Score, threshold),
			Urgency:   urgencyFor(s.Score),
		})
	}
	return out
}

func weakest[T any](items []T, threshold int, score func(T) model.NormalizedScore) []T {
	var out []T
	for _, it := range items {
		if int(score(it)) < threshold {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return score(out[i]) < score(out[j])
	})
	return out
}

func urgencyFor(score model.NormalizedScore) model.Urgency {
	switch {
	case score < highUrgencyBelow:
		return model.UrgencyHigh
	case score < mediumUrgencyBelow:
		return model.UrgencyMedium
	default:
		return model.UrgencyLow
	}
}

func suggestionID(kind model.SuggestionKind, key string) string {
	return uuid.NewSHA1(suggestionSpace, []byte(string(kind)+":"+key)).String()
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(text, k) {
			return true
		}
	}
	return false
}
