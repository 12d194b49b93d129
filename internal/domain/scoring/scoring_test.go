package scoring_test

import (
	"sync"
	"testing"
	"time"

	"github.com/okian/skillradar/internal/domain/career"
	"github.com/okian/skillradar/internal/domain/catalog"
	"github.com/okian/skillradar/internal/domain/model"
	scoring "github.com/okian/skillradar/internal/domain/scoring"
	"github.com/okian/skillradar/internal/domain/trend"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleProfile() model.Profile {
	d := func(day int) time.Time { return time.Date(2025, time.January, day, 0, 0, 0, 0, time.UTC) }
	return model.Profile{
		LearnerID: "hs-001",
		Scores: []model.ScoreRecord{
			{SubjectID: "math", Score: 8, Date: d(1), Term: "HK1"},
			{SubjectID: "math", Score: 9, Date: d(20), Term: "HK2", Note: "tiến bộ"},
			{SubjectID: "eng", Score: 5, Date: d(3)},
			{SubjectID: "it", Score: 95, Date: d(4)},
		},
		Skills: []model.SkillRecord{
			{SkillID: "py", Level: "Nâng cao", Date: d(2)},
			{SkillID: "team", Level: "Cơ bản", Date: d(2)},
		},
		Certificates: []model.CertificateRecord{{CertificateID: "mos", Result: "900/1000"}},
		Careers: []model.CareerTarget{
			{Name: "Kỹ sư phần mềm", Rationale: "Toán tốt, Tin học, lập trình Python, chứng chỉ MOS"},
		},
		Series:       &model.ThreePointSeries{First: 7, Middle: 7.5, Last: 8},
		Activity:     &model.ActivityCounters{LoginDays: 7, DashboardOpens: 10, Updates: 5, Streak: 7},
		SubjectNames: map[string]string{"math": "Toán", "eng": "Tiếng Anh", "it": "Tin học"},
		SkillNames:   map[string]string{"py": "Lập trình Python", "team": "Làm việc nhóm"},
	}
}

func TestEngine_Analyze(t *testing.T) {
	Convey("Given a default engine and a full learner profile", t, func() {
		engine := scoring.NewEngine()
		report := engine.Analyze(sampleProfile())

		Convey("Then subjects are aggregated and sorted", func() {
			So(len(report.Subjects), ShouldEqual, 3)
			So(report.Subjects[0].DisplayName, ShouldEqual, "Tin học")
			So(report.Subjects[1].DisplayName, ShouldEqual, "Toán")
			So(report.Subjects[1].Average, ShouldEqual, 85)
			So(report.Subjects[1].LatestTerm, ShouldEqual, "HK2")
		})

		Convey("Then the radar merges subjects and skills", func() {
			So(len(report.Radar), ShouldEqual, 5)
			So(report.Radar[0].Label, ShouldEqual, "Tin học")
		})

		Convey("Then suggestions cover the English gap and the weak skill", func() {
			names := make([]string, 0, len(report.Suggestions))
			for _, s := range report.Suggestions {
				names = append(names, s.Name)
			}
			So(names, ShouldContain, "IELTS Academic")
			So(names, ShouldNotContain, "Microsoft Office Specialist (MOS)")
			So(names, ShouldContain, "Làm việc nhóm")
			So(names, ShouldContain, "Tiếng Anh")
		})

		Convey("Then careers are scored", func() {
			So(len(report.Careers), ShouldEqual, 1)
			So(report.Careers[0].MatchPercentage, ShouldBeGreaterThan, 0)
			So(report.Careers[0].MatchPercentage, ShouldBeLessThanOrEqualTo, 100)
		})

		Convey("Then trend and effort are filled in", func() {
			So(report.Trend, ShouldNotBeNil)
			So(report.Trend.Predicted, ShouldEqual, 8.5)
			So(report.Trend.Risk.Level, ShouldEqual, model.RiskSafe)
			So(report.Effort, ShouldNotBeNil)
			So(*report.Effort, ShouldEqual, 100)
		})
	})

	Convey("Given an empty profile", t, func() {
		report := scoring.NewEngine().Analyze(model.Profile{LearnerID: "empty"})

		Convey("Then every collection is empty and optional sections are absent", func() {
			So(report.Subjects, ShouldBeEmpty)
			So(report.Radar, ShouldBeEmpty)
			So(report.Careers, ShouldBeEmpty)
			So(report.Trend, ShouldBeNil)
			So(report.Effort, ShouldBeNil)
			// every certificate proxy is 0 without evidence
			So(len(report.Suggestions), ShouldEqual, 3)
		})
	})

	Convey("Given the same profile analysed concurrently", t, func() {
		engine := scoring.NewEngine()
		want := engine.Analyze(sampleProfile())

		var wg sync.WaitGroup
		results := make([]model.Report, 8)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = engine.Analyze(sampleProfile())
			}(i)
		}
		wg.Wait()

		Convey("Then every call returns the same report", func() {
			for _, r := range results {
				So(r, ShouldResemble, want)
			}
		})
	})
}

func TestEngine_Options(t *testing.T) {
	Convey("Given engine options", t, func() {
		p := sampleProfile()

		Convey("When top counts shrink", func() {
			report := scoring.NewEngine(scoring.WithTopCounts(1, 1)).Analyze(p)
			So(len(report.Radar), ShouldBeLessThanOrEqualTo, 2)
		})

		Convey("When negative top counts are given", func() {
			report := scoring.NewEngine(scoring.WithTopCounts(-1, -1)).Analyze(p)
			So(len(report.Radar), ShouldEqual, 5)
		})

		Convey("When the threshold drops to 10", func() {
			report := scoring.NewEngine(scoring.WithSuggestionThreshold(10)).Analyze(p)
			// only the analysis rule has no evidence at all
			So(len(report.Suggestions), ShouldEqual, 1)
			So(report.Suggestions[0].Name, ShouldEqual, "Google Data Analytics")
		})

		Convey("When career weights are all zero they are ignored", func() {
			a := scoring.NewEngine(scoring.WithCareerWeights(career.Weights{})).Analyze(p)
			b := scoring.NewEngine().Analyze(p)
			So(a.Careers, ShouldResemble, b.Careers)
		})

		Convey("When only certificates carry weight", func() {
			report := scoring.NewEngine(scoring.WithCareerWeights(career.Weights{Certificates: 1})).Analyze(p)
			So(report.Careers[0].MatchPercentage, ShouldEqual, 100)
		})

		Convey("When effort caps are doubled", func() {
			report := scoring.NewEngine(scoring.WithEffortCaps(trend.EffortCaps{LoginDays: 14, DashboardOpens: 20, Updates: 10, Streak: 14})).Analyze(p)
			So(*report.Effort, ShouldEqual, 50)
		})

		Convey("When a custom catalog supplies names", func() {
			c := catalog.Default()
			c.SubjectNames = map[string]string{"eng": "English"}
			p.SubjectNames = nil
			report := scoring.NewEngine(scoring.WithCatalog(c), scoring.WithNames(map[string]string{"math": "Mathematics"}, nil, nil)).Analyze(p)

			labels := map[string]bool{}
			for _, s := range report.Subjects {
				labels[s.DisplayName] = true
			}
			So(labels, ShouldResemble, map[string]bool{"English": true, "Mathematics": true, "it": true})
		})
	})
}
