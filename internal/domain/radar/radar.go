// Package radar builds the bounded competency vector shown on the radar chart.
package radar

import (
	"sort"

	"github.com/okian/skillradar/internal/domain/aggregate"
	"github.com/okian/skillradar/internal/domain/model"
	"github.com/okian/skillradar/internal/domain/normalize"
)

// LatestSkills keeps the most recent record per skill id (the earlier record
// wins a date tie), scores its level and resolves its display name. The result
// is sorted by score descending; ties keep first-seen order.
func LatestSkills(skills []model.SkillRecord, names map[string]string, levels normalize.LevelTable) []model.SkillSummary {
	index := make(map[string]int, len(skills))
	latest := make([]model.SkillRecord, 0, len(skills))
	for _, s := range skills {
		i, ok := index[s.SkillID]
		if !ok {
			index[s.SkillID] = len(latest)
			latest = append(latest, s)
			continue
		}
		if s.Date.After(latest[i].Date) {
			latest[i] = s
		}
	}

	out := make([]model.SkillSummary, 0, len(latest))
	for _, s := range latest {
		out = append(out, model.SkillSummary{
			SkillID:     s.SkillID,
			DisplayName: aggregate.DisplayName(s.SkillID, names),
			Score:       normalize.SkillLevel(s.Level, levels),
			Level:       s.Level,
			Description: s.Description,
			Date:        s.Date,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Build merges the top subjects and the top skills into one vector.
//
// subjects must already be sorted (see aggregate.Subjects). Points that share
// a label collapse into the first one, scored with the rounded mean of all
// colliding scores, so the result never repeats a label and never exceeds
// topSubjects+topSkills points.
func Build(subjects []model.SubjectSummary, skills []model.SkillRecord, topSubjects, topSkills int, skillNames map[string]string, levels normalize.LevelTable) model.CompetencyVector {
	topSubjects = bound(topSubjects, len(subjects))
	ranked := LatestSkills(skills, skillNames, levels)
	topSkills = bound(topSkills, len(ranked))

	points := make([]model.CompetencyPoint, 0, topSubjects+topSkills)
	for _, s := range subjects[:topSubjects] {
		points = append(points, model.CompetencyPoint{Label: s.DisplayName, Score: s.Average})
	}
	for _, s := range ranked[:topSkills] {
		points = append(points, model.CompetencyPoint{Label: s.DisplayName, Score: s.Score})
	}
	return merge(points)
}

type bucket struct {
	label string
	total int
	count int
}

func merge(points []model.CompetencyPoint) model.CompetencyVector {
	index := make(map[string]int, len(points))
	buckets := make([]bucket, 0, len(points))
	for _, p := range points {
		i, ok := index[p.Label]
		if !ok {
			i = len(buckets)
			index[p.Label] = i
			buckets = append(buckets, bucket{label: p.Label})
		}
		buckets[i].total += int(p.Score)
		buckets[i].count++
	}

	out := make(model.CompetencyVector, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, model.CompetencyPoint{Label: b.label, Score: aggregate.Mean(b.total, b.count)})
	}
	return out
}

func bound(n, limit int) int {
	if n < 0 {
		return 0
	}
	if n > limit {
		return limit
	}
	return n
}
