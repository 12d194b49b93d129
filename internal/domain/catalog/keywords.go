package catalog

import (
	"strings"

	"github.com/okian/skillradar/internal/domain/normalize"
)

// KeywordGroup is a named family of folded keywords, e.g. "math" with
// {"toan", "math", "dai so"}.
type KeywordGroup struct {
	Name     string
	Keywords []string
}

// KeywordGroups is an ordered list of keyword families. Order decides which
// family wins when a label matches more than one.
type KeywordGroups []KeywordGroup

// NewKeywordGroups folds every keyword. Names keep their given order.
func NewKeywordGroups(groups ...KeywordGroup) KeywordGroups {
	out := make(KeywordGroups, 0, len(groups))
	for _, g := range groups {
		kws := make([]string, 0, len(g.Keywords))
		for _, k := range g.Keywords {
			if f := foldPhrase(k); f != "" {
				kws = append(kws, f)
			}
		}
		out = append(out, KeywordGroup{Name: g.Name, Keywords: kws})
	}
	return out
}

// Text is folded text prepared for whole-word keyword lookups.
type Text struct {
	padded string
	words  map[string]struct{}
}

// NewText folds s and indexes its words. Punctuation separates words.
func NewText(s string) Text {
	fields := strings.FieldsFunc(normalize.Fold(s), isSeparator)
	words := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		words[f] = struct{}{}
	}
	return Text{padded: " " + strings.Join(fields, " ") + " ", words: words}
}

// Has reports whether the folded keyword occurs as whole words.
// Single-word keywords are a set lookup; phrases scan the padded text.
func (t Text) Has(keyword string) bool {
	if !strings.Contains(keyword, " ") {
		_, ok := t.words[keyword]
		return ok
	}
	return strings.Contains(t.padded, " "+keyword+" ")
}

// Mentioned returns the names of the groups with at least one keyword in t.
func (g KeywordGroups) Mentioned(t Text) map[string]bool {
	out := make(map[string]bool)
	for _, grp := range g {
		for _, k := range grp.Keywords {
			if t.Has(k) {
				out[grp.Name] = true
				break
			}
		}
	}
	return out
}

// GroupOf returns the first group whose keywords occur in t.
func (g KeywordGroups) GroupOf(t Text) (string, bool) {
	for _, grp := range g {
		for _, k := range grp.Keywords {
			if t.Has(k) {
				return grp.Name, true
			}
		}
	}
	return "", false
}

// foldPhrase folds k and joins its words with single spaces so it lines up
// with how NewText splits text.
func foldPhrase(k string) string {
	return strings.Join(strings.FieldsFunc(normalize.Fold(k), isSeparator), " ")
}

func isSeparator(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return false
	case r == '+', r == '#':
		return false
	case r > 0x7f:
		return false
	}
	return true
}
