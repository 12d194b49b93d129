// Package config defines the analyzer configuration and its loading hooks.
//
// Conventions:
// - New(ctx) builds a Config holding every default.
// - Load layers a YAML file and environment variables over the defaults.
// - Failures are reported through this package's sentinel errors.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// WorkerCount bounds how many profiles a batch analyses at once.
	WorkerCount int `koanf:"worker_count"`

	// TopSubjects and TopSkills bound the radar vector.
	TopSubjects int `koanf:"top_subjects"`
	TopSkills   int `koanf:"top_skills"`

	// SuggestionThreshold is the score below which gaps are reported.
	SuggestionThreshold int `koanf:"suggestion_threshold"`

	// Career match branch weights.
	SubjectWeight     float64 `koanf:"subject_weight"`
	SkillWeight       float64 `koanf:"skill_weight"`
	CertificateWeight float64 `koanf:"certificate_weight"`

	// Effort score saturation caps.
	EffortLoginCap     float64 `koanf:"effort_login_cap"`
	EffortDashboardCap float64 `koanf:"effort_dashboard_cap"`
	EffortUpdatesCap   float64 `koanf:"effort_updates_cap"`
	EffortStreakCap    float64 `koanf:"effort_streak_cap"`

	// MetricsTextfile, when set, receives a Prometheus text dump after a run.
	MetricsTextfile string `koanf:"metrics_textfile"`

	// Display-name catalogs shared by every profile. Names inside a profile
	// file win over these.
	SubjectNames     map[string]string `koanf:"subject_names"`
	SkillNames       map[string]string `koanf:"skill_names"`
	CertificateNames map[string]string `koanf:"certificate_names"`
}

// New creates a Config with defaults. Context is accepted first to match the
// rest of the loading API and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		WorkerCount:         runtime.NumCPU(),
		TopSubjects:         5,
		TopSkills:           5,
		SuggestionThreshold: 60,
		SubjectWeight:       0.4,
		SkillWeight:         0.4,
		CertificateWeight:   0.2,
		EffortLoginCap:      7,
		EffortDashboardCap:  10,
		EffortUpdatesCap:    5,
		EffortStreakCap:     7,
		SubjectNames:        map[string]string{},
		SkillNames:          map[string]string{},
		CertificateNames:    map[string]string{},
	}
}
