// Package aggregate groups raw score records into per-subject summaries.
package aggregate

import (
	"math"
	"sort"

	"github.com/okian/skillradar/internal/domain/model"
	"github.com/okian/skillradar/internal/domain/normalize"
)

type subjectAcc struct {
	id     string
	total  int
	count  int
	latest model.ScoreRecord
}

// Subjects groups records by subject id and returns one summary per subject,
// sorted by average score descending. Ties keep first-seen order.
//
// The latest record (by date; the earlier record wins a tie) supplies the
// term and note. Display names come from names, falling back to the id.
func Subjects(records []model.ScoreRecord, names map[string]string) []model.SubjectSummary {
	index := make(map[string]int, len(records))
	accs := make([]*subjectAcc, 0, len(records))

	for _, r := range records {
		i, ok := index[r.SubjectID]
		if !ok {
			i = len(accs)
			index[r.SubjectID] = i
			accs = append(accs, &subjectAcc{id: r.SubjectID, latest: r})
		}
		a := accs[i]
		a.total += int(normalize.Score100(r.Score))
		a.count++
		if r.Date.After(a.latest.Date) {
			a.latest = r
		}
	}

	out := make([]model.SubjectSummary, 0, len(accs))
	for _, a := range accs {
		out = append(out, model.SubjectSummary{
			SubjectID:   a.id,
			DisplayName: DisplayName(a.id, names),
			Average:     Mean(a.total, a.count),
			LatestTerm:  a.latest.Term,
			LatestNote:  a.latest.Note,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Average > out[j].Average
	})
	return out
}

// DisplayName resolves id through names, falling back to the id itself.
func DisplayName(id string, names map[string]string) string {
	if n, ok := names[id]; ok && n != "" {
		return n
	}
	return id
}

// Mean returns the rounded mean of count scores summing to total, or 0.
func Mean(total, count int) model.NormalizedScore {
	if count == 0 {
		return 0
	}
	return model.NormalizedScore(math.Round(float64(total) / float64(count)))
}
