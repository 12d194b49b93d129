package profile_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/skillradar/internal/adapters/profile"
	"github.com/okian/skillradar/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const fullProfile = `
learner_id: hs-001
scores:
  - subject: math
    score: 8.5
    date: 2025-01-10
    term: HK1
  - subject: math
    score: 9
    date: "2025-05-20T08:00:00Z"
    term: HK2
    note: tiến bộ rõ
skills:
  - skill: py
    level: Nâng cao
    description: phân tích dữ liệu với pandas
    date: "2025-03-01"
certificates:
  - id: mos
    issuer: Certiport
    result: 900/1000
careers:
  - name: Kỹ sư phần mềm
    rationale: Toán, Tin học và lập trình
series:
  first: 7
  middle: 7.5
  last: 8
activity:
  login_days: 5
  streak: 3
subject_names:
  math: Toán
`

func writeProfile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	Convey("Given a complete YAML profile", t, func() {
		p, err := profile.Load(ctx, writeProfile(t, "full.yaml", fullProfile))

		Convey("Then every section is decoded", func() {
			So(err, ShouldBeNil)
			So(p.LearnerID, ShouldEqual, "hs-001")
			So(len(p.Scores), ShouldEqual, 2)
			So(p.Scores[0].Score, ShouldEqual, 8.5)
			So(p.Scores[0].Date.Equal(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)), ShouldBeTrue)
			So(p.Scores[1].Date.Equal(time.Date(2025, 5, 20, 8, 0, 0, 0, time.UTC)), ShouldBeTrue)
			So(p.Scores[1].Note, ShouldEqual, "tiến bộ rõ")
			So(p.Skills[0].Description, ShouldEqual, "phân tích dữ liệu với pandas")
			So(p.Certificates[0].Result, ShouldEqual, "900/1000")
			So(p.Careers[0].Name, ShouldEqual, "Kỹ sư phần mềm")
			So(*p.Series, ShouldResemble, model.ThreePointSeries{First: 7, Middle: 7.5, Last: 8})
			So(p.Activity.LoginDays, ShouldEqual, 5)
			So(p.Activity.DashboardOpens, ShouldEqual, 0)
			So(p.SubjectNames["math"], ShouldEqual, "Toán")
		})
	})

	Convey("Given a JSON profile without optional sections", t, func() {
		p, err := profile.Load(ctx, writeProfile(t, "min.json", `{"learner_id": "hs-002", "scores": [{"subject": "eng", "score": 6}]}`))

		Convey("Then series and activity stay absent", func() {
			So(err, ShouldBeNil)
			So(p.LearnerID, ShouldEqual, "hs-002")
			So(p.Scores[0].Date.IsZero(), ShouldBeTrue)
			So(p.Series, ShouldBeNil)
			So(p.Activity, ShouldBeNil)
			So(p.Skills, ShouldBeEmpty)
		})
	})

	Convey("Given structurally broken profiles", t, func() {
		cases := map[string]string{
			"learner_id":         "scores: []\n",
			"scores[0].subject":  "learner_id: x\nscores:\n  - score: 5\n",
			"scores[0].date":     "learner_id: x\nscores:\n  - subject: m\n    date: 10/01/2025\n",
			"skills[0].skill":    "learner_id: x\nskills:\n  - level: Khá\n",
			"certificates[0].id": "learner_id: x\ncertificates:\n  - issuer: IDP\n",
			"careers[0].name":    "learner_id: x\ncareers:\n  - rationale: toán\n",
			"series.middle":      "learner_id: x\nseries:\n  first: 5\n  middle: 11\n  last: 6\n",
		}
		for field, content := range cases {
			_, err := profile.Load(ctx, writeProfile(t, "bad.yaml", content))

			So(errors.Is(err, profile.ErrInvalidProfile), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, field)
		}
	})

	Convey("Given a missing file", t, func() {
		_, err := profile.Load(ctx, filepath.Join(t.TempDir(), "nope.yaml"))

		Convey("Then a read error is returned", func() {
			So(errors.Is(err, profile.ErrReadProfile), ShouldBeTrue)
		})
	})

	Convey("Given a cancelled context", t, func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := profile.Load(cctx, writeProfile(t, "full.yaml", fullProfile))

		Convey("Then nothing is read", func() {
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestLoadAll(t *testing.T) {
	ctx := context.Background()

	Convey("Given a mix of good and bad profile files", t, func() {
		good := writeProfile(t, "good.yaml", fullProfile)
		bad := writeProfile(t, "bad.yaml", "scores: []\n")
		other := writeProfile(t, "other.yaml", "learner_id: hs-003\n")

		profiles, err := profile.LoadAll(ctx, []string{good, bad, other})

		Convey("Then good files load in order and the failure is reported", func() {
			So(len(profiles), ShouldEqual, 2)
			So(profiles[0].LearnerID, ShouldEqual, "hs-001")
			So(profiles[1].LearnerID, ShouldEqual, "hs-003")
			So(errors.Is(err, profile.ErrInvalidProfile), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, bad)
		})
	})

	Convey("Given only good files", t, func() {
		profiles, err := profile.LoadAll(ctx, []string{writeProfile(t, "a.yaml", "learner_id: a\n")})

		So(err, ShouldBeNil)
		So(len(profiles), ShouldEqual, 1)
	})
}
