// Package profile loads learner profile files into validated engine input.
//
// A profile is a YAML document (JSON works too, being a YAML subset) read
// through koanf. Dates accept 2006-01-02 or RFC3339. Structural problems such
// as a missing id, an unparsable date or a series value outside [0,10] are
// reported as ErrInvalidProfile naming the offending field; score content is
// left for the engine to degrade.
package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/skillradar/internal/domain/model"
	"github.com/okian/skillradar/pkg/metrics"
)

const dateLayout = "2006-01-02"

type document struct {
	LearnerID    string           `koanf:"learner_id"`
	Scores       []scoreDoc       `koanf:"scores"`
	Skills       []skillDoc       `koanf:"skills"`
	Certificates []certificateDoc `koanf:"certificates"`
	Careers      []careerDoc      `koanf:"careers"`
	Series       *seriesDoc       `koanf:"series"`
	Activity     *activityDoc     `koanf:"activity"`

	SubjectNames     map[string]string `koanf:"subject_names"`
	SkillNames       map[string]string `koanf:"skill_names"`
	CertificateNames map[string]string `koanf:"certificate_names"`
}

// Dates are decoded as any: the YAML parser yields either a string or a
// time.Time depending on quoting.
type scoreDoc struct {
	Subject string  `koanf:"subject"`
	Score   float64 `koanf:"score"`
	Date    any     `koanf:"date"`
	Term    string  `koanf:"term"`
	Note    string  `koanf:"note"`
}

type skillDoc struct {
	Skill       string `koanf:"skill"`
	Level       string `koanf:"level"`
	Description string `koanf:"description"`
	Date        any    `koanf:"date"`
}

type certificateDoc struct {
	ID          string `koanf:"id"`
	Issuer      string `koanf:"issuer"`
	Result      string `koanf:"result"`
	Description string `koanf:"description"`
	Date        any    `koanf:"date"`
}

type careerDoc struct {
	Name      string `koanf:"name"`
	Rationale string `koanf:"rationale"`
}

type seriesDoc struct {
	First  float64 `koanf:"first"`
	Middle float64 `koanf:"middle"`
	Last   float64 `koanf:"last"`
}

type activityDoc struct {
	LoginDays      int `koanf:"login_days"`
	DashboardOpens int `koanf:"dashboard_opens"`
	Updates        int `koanf:"updates"`
	Streak         int `koanf:"streak"`
}

// Load reads and validates the profile at path.
func Load(ctx context.Context, path string) (model.Profile, error) {
	if err := ctx.Err(); err != nil {
		return model.Profile{}, err
	}
	start := time.Now()

	p, err := load(path)
	if err != nil {
		metrics.RecordLoadError()
		return model.Profile{}, err
	}

	metrics.RecordLoadLatency(float64(time.Since(start).Microseconds()) / 1000)
	return p, nil
}

// LoadAll loads every path in order. Profiles that fail are left out and
// their errors are joined into the returned error.
func LoadAll(ctx context.Context, paths []string) ([]model.Profile, error) {
	out := make([]model.Profile, 0, len(paths))
	var errs []error
	for _, path := range paths {
		p, err := Load(ctx, path)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return out, ctxErr
			}
			errs = append(errs, err)
			continue
		}
		out = append(out, p)
	}
	return out, errors.Join(errs...)
}

func load(path string) (model.Profile, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return model.Profile{}, fmt.Errorf("%w: %s: %w", ErrReadProfile, path, err)
	}

	var doc document
	if err := k.UnmarshalWithConf("", &doc, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return model.Profile{}, fmt.Errorf("%w: %s: %w", ErrInvalidProfile, path, err)
	}

	p, err := doc.toProfile()
	if err != nil {
		return model.Profile{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func (d document) toProfile() (model.Profile, error) {
	if d.LearnerID == "" {
		return model.Profile{}, invalid("learner_id", "is required")
	}

	p := model.Profile{
		LearnerID:        d.LearnerID,
		Scores:           make([]model.ScoreRecord, 0, len(d.Scores)),
		Skills:           make([]model.SkillRecord, 0, len(d.Skills)),
		Certificates:     make([]model.CertificateRecord, 0, len(d.Certificates)),
		Careers:          make([]model.CareerTarget, 0, len(d.Careers)),
		SubjectNames:     d.SubjectNames,
		SkillNames:       d.SkillNames,
		CertificateNames: d.CertificateNames,
	}

	for i, s := range d.Scores {
		if s.Subject == "" {
			return model.Profile{}, invalid(fmt.Sprintf("scores[%d].subject", i), "is required")
		}
		date, err := parseDate(s.Date)
		if err != nil {
			return model.Profile{}, invalid(fmt.Sprintf("scores[%d].date", i), err.Error())
		}
		p.Scores = append(p.Scores, model.ScoreRecord{SubjectID: s.Subject, Score: s.Score, Date: date, Term: s.Term, Note: s.Note})
	}

	for i, s := range d.Skills {
		if s.Skill == "" {
			return model.Profile{}, invalid(fmt.Sprintf("skills[%d].skill", i), "is required")
		}
		date, err := parseDate(s.Date)
		if err != nil {
			return model.Profile{}, invalid(fmt.Sprintf("skills[%d].date", i), err.Error())
		}
		p.Skills = append(p.Skills, model.SkillRecord{SkillID: s.Skill, Level: s.Level, Description: s.Description, Date: date})
	}

	for i, c := range d.Certificates {
		if c.ID == "" {
			return model.Profile{}, invalid(fmt.Sprintf("certificates[%d].id", i), "is required")
		}
		date, err := parseDate(c.Date)
		if err != nil {
			return model.Profile{}, invalid(fmt.Sprintf("certificates[%d].date", i), err.Error())
		}
		p.Certificates = append(p.Certificates, model.CertificateRecord{
			CertificateID: c.ID,
			Issuer:        c.Issuer,
			Result:        c.Result,
			Description:   c.Description,
			Date:          date,
		})
	}

	for i, c := range d.Careers {
		if c.Name == "" {
			return model.Profile{}, invalid(fmt.Sprintf("careers[%d].name", i), "is required")
		}
		p.Careers = append(p.Careers, model.CareerTarget{Name: c.Name, Rationale: c.Rationale})
	}

	if d.Series != nil {
		checks := []struct {
			field string
			v     float64
		}{{"first", d.Series.First}, {"middle", d.Series.Middle}, {"last", d.Series.Last}}
		for _, c := range checks {
			if !(c.v >= 0 && c.v <= 10) {
				return model.Profile{}, invalid("series."+c.field, fmt.Sprintf("%v is outside [0,10]", c.v))
			}
		}
		p.Series = &model.ThreePointSeries{First: d.Series.First, Middle: d.Series.Middle, Last: d.Series.Last}
	}

	if d.Activity != nil {
		p.Activity = &model.ActivityCounters{
			LoginDays:      d.Activity.LoginDays,
			DashboardOpens: d.Activity.DashboardOpens,
			Updates:        d.Activity.Updates,
			Streak:         d.Activity.Streak,
		}
	}
	return p, nil
}

// parseDate accepts nil (zero time), a time.Time, or a string in either
// supported layout.
func parseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return d, nil
	case string:
		if d == "" {
			return time.Time{}, nil
		}
		if t, err := time.Parse(dateLayout, d); err == nil {
			return t, nil
		}
		t, err := time.Parse(time.RFC3339, d)
		if err != nil {
			return time.Time{}, fmt.Errorf("%q is neither %s nor RFC3339", d, dateLayout)
		}
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("unsupported date value %v", v)
	}
}

func invalid(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidProfile, field, reason)
}
