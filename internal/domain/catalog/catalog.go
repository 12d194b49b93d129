// Package catalog holds the static lookup tables the engine scores against:
// the skill-level vocabulary, keyword families for career matching, the
// certificate gap rules and display-name catalogs.
//
// Tables are plain values built by Default. Callers pass them explicitly,
// so tests can substitute their own.
package catalog

import (
	"regexp"

	"github.com/okian/skillradar/internal/domain/model"
	"github.com/okian/skillradar/internal/domain/normalize"
)

// ProxySource selects which summaries feed a suggestion proxy score.
type ProxySource int

// Proxy sources.
const (
	FromSubjects ProxySource = iota
	FromSkills
)

// SuggestionRule describes one certificate gap check.
type SuggestionRule struct {
	Category string
	Source   ProxySource
	// ProxyKeywords are folded substrings selecting the summaries that feed the proxy.
	ProxyKeywords []string
	// Owned matches folded owned-certificate text that already satisfies the gap.
	Owned *regexp.Regexp

	Name     string
	Provider string
	EstHours int
	Urgency  model.Urgency
	// Rationale is a fmt template receiving the proxy score and the threshold.
	Rationale string
}

// Catalog bundles every table the engine needs.
type Catalog struct {
	Levels            normalize.LevelTable
	SubjectGroups     KeywordGroups
	SkillGroups       KeywordGroups
	CertificateGroups KeywordGroups
	SuggestionRules   []SuggestionRule

	SubjectNames     map[string]string
	SkillNames       map[string]string
	CertificateNames map[string]string
}

// WithNames returns a copy of c whose name catalogs are overlaid with the
// given maps. Nil maps leave the existing entries alone.
func (c Catalog) WithNames(subjects, skills, certificates map[string]string) Catalog {
	c.SubjectNames = overlay(c.SubjectNames, subjects)
	c.SkillNames = overlay(c.SkillNames, skills)
	c.CertificateNames = overlay(c.CertificateNames, certificates)
	return c
}

func overlay(base, top map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(top))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range top {
		out[k] = v
	}
	return out
}

// Default returns a freshly built copy of the built-in tables.
func Default() Catalog {
	return Catalog{
		Levels:            DefaultLevels(),
		SubjectGroups:     DefaultSubjectGroups(),
		SkillGroups:       DefaultSkillGroups(),
		CertificateGroups: DefaultCertificateGroups(),
		SuggestionRules:   DefaultSuggestionRules(),
		SubjectNames:      map[string]string{},
		SkillNames:        map[string]string{},
		CertificateNames:  map[string]string{},
	}
}

// DefaultLevels is the skill-level vocabulary, from "Chưa có" up to
// "Chuyên nghiệp", with English equivalents.
func DefaultLevels() normalize.LevelTable {
	return normalize.NewLevelTable(map[string]int{
		"Chưa có":       10,
		"none":          10,
		"Mới bắt đầu":   20,
		"novice":        20,
		"Cơ bản":        30,
		"basic":         30,
		"beginner":      30,
		"Trung bình":    50,
		"Trung cấp":     55,
		"intermediate":  55,
		"Khá":           65,
		"good":          65,
		"Nâng cao":      75,
		"advanced":      75,
		"Giỏi":          80,
		"proficient":    80,
		"Chuyên gia":    90,
		"expert":        90,
		"Chuyên nghiệp": 95,
		"professional":  95,
	})
}

// DefaultSubjectGroups are the subject keyword families.
func DefaultSubjectGroups() KeywordGroups {
	return NewKeywordGroups(
		KeywordGroup{Name: "math", Keywords: []string{"toán", "toán học", "math", "mathematics", "đại số", "hình học", "giải tích"}},
		KeywordGroup{Name: "literature", Keywords: []string{"ngữ văn", "văn học", "literature", "viết văn"}},
		KeywordGroup{Name: "english", Keywords: []string{"tiếng anh", "anh văn", "english", "ngoại ngữ"}},
		KeywordGroup{Name: "physics", Keywords: []string{"vật lý", "vật lí", "physics"}},
		KeywordGroup{Name: "chemistry", Keywords: []string{"hóa học", "hoá học", "chemistry"}},
		KeywordGroup{Name: "it", Keywords: []string{"tin học", "công nghệ thông tin", "cntt", "informatics", "computer science", "máy tính"}},
	)
}

// DefaultSkillGroups are the skill keyword families.
func DefaultSkillGroups() KeywordGroups {
	return NewKeywordGroups(
		KeywordGroup{Name: "programming", Keywords: []string{"lập trình", "programming", "coding", "python", "java", "javascript", "c++", "phần mềm", "software"}},
		KeywordGroup{Name: "communication", Keywords: []string{"giao tiếp", "thuyết trình", "communication", "presentation", "public speaking"}},
		KeywordGroup{Name: "teamwork", Keywords: []string{"làm việc nhóm", "teamwork", "team work", "hợp tác", "collaboration"}},
		KeywordGroup{Name: "creativity", Keywords: []string{"sáng tạo", "creativity", "creative", "thiết kế", "design"}},
		KeywordGroup{Name: "analysis", Keywords: []string{"phân tích", "analysis", "analytical", "tư duy logic", "logic", "dữ liệu", "data"}},
		KeywordGroup{Name: "office", Keywords: []string{"tin học văn phòng", "office", "excel", "word", "powerpoint"}},
	)
}

// DefaultCertificateGroups are the certificate keyword families.
func DefaultCertificateGroups() KeywordGroups {
	return NewKeywordGroups(
		KeywordGroup{Name: "mos", Keywords: []string{"mos", "microsoft office specialist", "microsoft office"}},
		KeywordGroup{Name: "ic3", Keywords: []string{"ic3", "digital literacy"}},
		KeywordGroup{Name: "ielts", Keywords: []string{"ielts", "toeic", "toefl", "cambridge", "chứng chỉ tiếng anh"}},
		KeywordGroup{Name: "it-certificate", Keywords: []string{"ccna", "cisco", "aws", "comptia", "oracle", "chứng chỉ cntt", "chứng chỉ tin học"}},
	)
}

// DefaultSuggestionRules are the language, IT and analysis gap checks,
// evaluated in that order.
func DefaultSuggestionRules() []SuggestionRule {
	return []SuggestionRule{
		{
			Category:      "language",
			Source:        FromSubjects,
			ProxyKeywords: foldAll("tiếng anh", "anh văn", "english", "ngoại ngữ"),
			Owned:         regexp.MustCompile(`ielts|toeic|toefl|cambridge|vstep`),
			Name:          "IELTS Academic",
			Provider:      "British Council / IDP",
			EstHours:      120,
			Urgency:       model.UrgencyHigh,
			Rationale:     "Language proxy score %d is below %d and no English certificate is on record.",
		},
		{
			Category:      "it",
			Source:        FromSubjects,
			ProxyKeywords: foldAll("tin học", "informatics", "computer", "công nghệ"),
			Owned:         regexp.MustCompile(`\bmos\b|\bic3\b|microsoft office`),
			Name:          "Microsoft Office Specialist (MOS)",
			Provider:      "Microsoft / Certiport",
			EstHours:      40,
			Urgency:       model.UrgencyMedium,
			Rationale:     "IT proxy score %d is below %d and no office or IT certificate is on record.",
		},
		{
			Category:      "analysis",
			Source:        FromSkills,
			ProxyKeywords: foldAll("phân tích", "analysis", "analytic", "dữ liệu", "data", "thống kê", "statistic"),
			Owned:         regexp.MustCompile(`data analy|phan tich du lieu|google data`),
			Name:          "Google Data Analytics",
			Provider:      "Google / Coursera",
			EstHours:      180,
			Urgency:       model.UrgencyLow,
			Rationale:     "Analysis proxy score %d is below %d and no data analysis certificate is on record.",
		},
	}
}

func foldAll(ss ...string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = normalize.Fold(s)
	}
	return out
}
