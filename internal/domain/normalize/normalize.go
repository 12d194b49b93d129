// Package normalize maps heterogeneous score representations onto the
// common 0-100 integer scale.
//
// Every function degrades instead of failing: non-finite numbers become 0
// and unrecognised skill levels become the neutral score 50.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/okian/skillradar/internal/domain/model"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	minScore       = 0
	maxScore       = 100
	tenPointCutoff = 10
	neutralScore   = 50
)

// LevelTable maps folded skill-level names to scores.
// Keys must already be passed through Fold.
type LevelTable map[string]model.NormalizedScore

// NewLevelTable folds the keys of raw into a LevelTable.
func NewLevelTable(raw map[string]int) LevelTable {
	t := make(LevelTable, len(raw))
	for k, v := range raw {
		t[Fold(k)] = clamp(float64(v))
	}
	return t
}

var (
	fractionPattern = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*/\s*(100|10)\b`)
	numberPattern   = regexp.MustCompile(`^[+-]?\d+(?:[.,]\d+)?$`)
)

// Score100 converts a raw 0-10 or 0-100 score to a NormalizedScore.
// Values up to 10 are read as a 0-10 scale.
func Score100(raw float64) model.NormalizedScore {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return minScore
	}
	if raw <= tenPointCutoff {
		raw *= 10
	}
	return clamp(math.Round(raw))
}

// SkillLevel scores a categorical or free-text skill level.
// Lookup order: vocabulary table, "N/10" or "N/100", bare number, neutral 50.
func SkillLevel(level string, table LevelTable) model.NormalizedScore {
	key := Fold(level)
	if key == "" {
		return neutralScore
	}
	if score, ok := table[key]; ok {
		return score
	}
	if m := fractionPattern.FindStringSubmatch(key); m != nil {
		n, err := parseDecimal(m[1])
		if err == nil {
			if m[2] == "100" {
				return clamp(math.Round(n))
			}
			return clamp(math.Round(n * 10))
		}
	}
	if numberPattern.MatchString(key) {
		if n, err := parseDecimal(key); err == nil {
			return Score100(n)
		}
	}
	return neutralScore
}

// Fold trims, lowercases and strips diacritics so "Nâng Cao " and
// "nang cao" compare equal. Internal whitespace runs collapse to one space.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = strings.Map(func(r rune) rune {
		switch r {
		case 'đ', 'Đ':
			return 'd'
		}
		return unicode.ToLower(r)
	}, out)
	return strings.Join(strings.Fields(out), " ")
}

func parseDecimal(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

func clamp(v float64) model.NormalizedScore {
	if v < minScore {
		return minScore
	}
	if v > maxScore {
		return maxScore
	}
	return model.NormalizedScore(v)
}
