// Package scoring composes the normalizer, aggregator, radar builder,
// suggestion rules, career matcher and trend analyzer into one engine.
package scoring

import (
	"github.com/okian/skillradar/internal/domain/aggregate"
	"github.com/okian/skillradar/internal/domain/career"
	"github.com/okian/skillradar/internal/domain/catalog"
	"github.com/okian/skillradar/internal/domain/model"
	"github.com/okian/skillradar/internal/domain/radar"
	"github.com/okian/skillradar/internal/domain/suggest"
	"github.com/okian/skillradar/internal/domain/trend"
)

// Default engine configuration constants.
const (
	defaultTopSubjects = 5
	defaultTopSkills   = 5
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithCatalog replaces the built-in lookup tables.
func WithCatalog(c catalog.Catalog) Option {
	return func(e *Engine) {
		e.catalog = c
	}
}

// WithNames overlays display-name catalogs on the engine's tables.
func WithNames(subjects, skills, certificates map[string]string) Option {
	return func(e *Engine) {
		e.catalog = e.catalog.WithNames(subjects, skills, certificates)
	}
}

// WithTopCounts bounds how many subjects and skills enter the radar vector.
// Negative values are ignored.
func WithTopCounts(subjects, skills int) Option {
	return func(e *Engine) {
		if subjects >= 0 {
			e.topSubjects = subjects
		}
		if skills >= 0 {
			e.topSkills = skills
		}
	}
}

// WithSuggestionThreshold sets the proxy score below which gaps are reported.
func WithSuggestionThreshold(threshold int) Option {
	return func(e *Engine) {
		if threshold > 0 {
			e.threshold = threshold
		}
	}
}

// WithCareerWeights sets the branch weights of the career match.
// A weight set summing to zero is ignored.
func WithCareerWeights(w career.Weights) Option {
	return func(e *Engine) {
		if w.Subjects+w.Skills+w.Certificates > 0 {
			e.weights = w
		}
	}
}

// WithEffortCaps sets the saturation caps of the effort score.
func WithEffortCaps(c trend.EffortCaps) Option {
	return func(e *Engine) {
		e.caps = c
	}
}

// Engine runs every analysis over a learner profile. It holds only
// configuration; Analyze is safe for concurrent use.
type Engine struct {
	catalog     catalog.Catalog
	topSubjects int
	topSkills   int
	threshold   int
	weights     career.Weights
	caps        trend.EffortCaps
}

// NewEngine creates an engine with the built-in tables and options applied.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		catalog:     catalog.Default(),
		topSubjects: defaultTopSubjects,
		topSkills:   defaultTopSkills,
		threshold:   suggest.DefaultThreshold,
		weights:     career.DefaultWeights(),
		caps:        trend.DefaultEffortCaps(),
	}

	// Apply all options
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Catalog returns the tables the engine scores against.
func (e *Engine) Catalog() catalog.Catalog {
	return e.catalog
}

// Analyze builds the full report for p. Names carried by the profile take
// precedence over the engine's catalogs.
func (e *Engine) Analyze(p model.Profile) model.Report {
	c := e.catalog.WithNames(p.SubjectNames, p.SkillNames, p.CertificateNames)

	subjects := aggregate.Subjects(p.Scores, c.SubjectNames)
	skills := radar.LatestSkills(p.Skills, c.SkillNames, c.Levels)

	suggestions := suggest.Certificates(subjects, skills, p.Certificates, c.CertificateNames, c.SuggestionRules, e.threshold)
	suggestions = append(suggestions, suggest.Skills(skills, e.threshold)...)
	suggestions = append(suggestions, suggest.Subjects(subjects, e.threshold)...)

	r := model.Report{
		LearnerID:   p.LearnerID,
		Subjects:    subjects,
		Skills:      skills,
		Radar:       radar.Build(subjects, p.Skills, e.topSubjects, e.topSkills, c.SkillNames, c.Levels),
		Suggestions: suggestions,
		Careers:     career.Match(p.Careers, subjects, skills, p.Certificates, c.CertificateNames, career.GroupsFrom(c), e.weights),
	}

	if p.Series != nil {
		t := trend.Analyze(*p.Series)
		r.Trend = &t
	}
	if p.Activity != nil {
		effort := trend.EffortScore(*p.Activity, e.caps)
		r.Effort = &effort
	}
	return r
}
