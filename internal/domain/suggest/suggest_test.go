package suggest_test

import (
	"testing"

	"github.com/okian/skillradar/internal/domain/catalog"
	"github.com/okian/skillradar/internal/domain/model"
	"github.com/okian/skillradar/internal/domain/suggest"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCertificates(t *testing.T) {
	rules := catalog.DefaultSuggestionRules()

	Convey("Given a learner weak in every proxy area with no certificates", t, func() {
		subjects := []model.SubjectSummary{
			{SubjectID: "eng", DisplayName: "Tiếng Anh", Average: 45},
			{SubjectID: "it", DisplayName: "Tin học", Average: 50},
		}
		skills := []model.SkillSummary{
			{SkillID: "data", DisplayName: "Phân tích dữ liệu", Score: 30, Level: "Cơ bản"},
		}

		got := suggest.Certificates(subjects, skills, nil, nil, rules, suggest.DefaultThreshold)

		Convey("Then one suggestion per category is emitted in fixed order", func() {
			So(len(got), ShouldEqual, 3)
			So(got[0].Name, ShouldEqual, "IELTS Academic")
			So(got[1].Name, ShouldEqual, "Microsoft Office Specialist (MOS)")
			So(got[2].Name, ShouldEqual, "Google Data Analytics")
			for _, s := range got {
				So(s.Kind, ShouldEqual, model.KindCertificate)
				So(s.ID, ShouldNotBeEmpty)
			}
		})

		Convey("Then the rationale names the proxy score and the threshold", func() {
			So(got[0].Rationale, ShouldContainSubstring, "45")
			So(got[0].Rationale, ShouldContainSubstring, "60")
			So(got[0].Urgency, ShouldEqual, model.UrgencyHigh)
			So(got[0].EstHours, ShouldEqual, 120)
		})

		Convey("Then ids are stable across calls", func() {
			again := suggest.Certificates(subjects, skills, nil, nil, rules, suggest.DefaultThreshold)
			So(again, ShouldResemble, got)
		})
	})

	Convey("Given a learner who already holds the matching certificates", t, func() {
		owned := []model.CertificateRecord{
			{CertificateID: "c1", Result: "6.5", Description: "IELTS Academic"},
			{CertificateID: "mos-word", Issuer: "Certiport"},
		}
		names := map[string]string{"mos-word": "MOS Word 2019"}

		Convey("Then satisfied categories are skipped", func() {
			got := suggest.Certificates(nil, nil, owned, names, rules, suggest.DefaultThreshold)
			So(len(got), ShouldEqual, 1)
			So(got[0].Name, ShouldEqual, "Google Data Analytics")
		})
	})

	Convey("Given proxies at or above the threshold", t, func() {
		subjects := []model.SubjectSummary{
			{DisplayName: "English", Average: 60},
			{DisplayName: "Computer Studies", Average: 88},
		}
		skills := []model.SkillSummary{
			{SkillID: "s", DisplayName: "Excel", Level: "Nâng cao", Description: "data analysis with pivot tables", Score: 75},
		}

		Convey("Then nothing is suggested", func() {
			So(suggest.Certificates(subjects, skills, nil, nil, rules, suggest.DefaultThreshold), ShouldBeEmpty)
		})
	})
}

func TestProxy(t *testing.T) {
	rules := catalog.DefaultSuggestionRules()

	Convey("Given several language subjects", t, func() {
		subjects := []model.SubjectSummary{
			{DisplayName: "Tiếng Anh", Average: 70},
			{DisplayName: "English Speaking", Average: 81},
			{DisplayName: "Toán", Average: 20},
		}

		Convey("Then the proxy is their rounded mean", func() {
			So(suggest.Proxy(rules[0], subjects, nil), ShouldEqual, 76)
		})

		Convey("Then an unmatched proxy is 0", func() {
			So(suggest.Proxy(rules[1], subjects, nil), ShouldEqual, 0)
		})
	})
}

func TestOwnedText(t *testing.T) {
	Convey("Given owned certificates", t, func() {
		owned := []model.CertificateRecord{{CertificateID: "ielts", Result: "7.0", Description: "Chứng chỉ Tiếng Anh"}}

		Convey("Then the blob is folded and includes the resolved name", func() {
			So(suggest.OwnedText(owned, map[string]string{"ielts": "IELTS Academic"}), ShouldEqual, "ielts ielts academic 7.0 chung chi tieng anh")
		})
	})
}

func TestSubjectsAndSkills(t *testing.T) {
	Convey("Given subjects around the threshold", t, func() {
		subjects := []model.SubjectSummary{
			{SubjectID: "math", DisplayName: "Toán", Average: 55},
			{SubjectID: "lit", DisplayName: "Văn", Average: 35},
			{SubjectID: "art", DisplayName: "Mỹ thuật", Average: 90},
			{SubjectID: "his", DisplayName: "Sử", Average: 45},
		}

		Convey("Then only weak subjects are suggested, weakest first", func() {
			got := suggest.Subjects(subjects, suggest.DefaultThreshold)
			So(len(got), ShouldEqual, 3)
			So(got[0].Name, ShouldEqual, "Văn")
			So(got[0].Urgency, ShouldEqual, model.UrgencyHigh)
			So(got[1].Name, ShouldEqual, "Sử")
			So(got[1].Urgency, ShouldEqual, model.UrgencyMedium)
			So(got[2].Name, ShouldEqual, "Toán")
			So(got[2].Urgency, ShouldEqual, model.UrgencyLow)
			So(got[2].Kind, ShouldEqual, model.KindSubject)
		})
	})

	Convey("Given skills that are all strong", t, func() {
		skills := []model.SkillSummary{{SkillID: "py", Score: 90}}

		Convey("Then the result is empty but not nil", func() {
			got := suggest.Skills(skills, suggest.DefaultThreshold)
			So(got, ShouldNotBeNil)
			So(got, ShouldBeEmpty)
		})
	})

	Convey("Given a weak skill", t, func() {
		got := suggest.Skills([]model.SkillSummary{{SkillID: "comm", DisplayName: "Giao tiếp", Level: "Cơ bản", Score: 30}}, suggest.DefaultThreshold)

		Convey("Then the suggestion quotes the level", func() {
			So(len(got), ShouldEqual, 1)
			So(got[0].Kind, ShouldEqual, model.KindSkill)
			So(got[0].Rationale, ShouldContainSubstring, `"Cơ bản"`)
		})
	})
}
