package scoring_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/thebeat/pipeline/internal/domain/model"
	"github.com/thebeat/pipeline/internal/domain/scoring"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func dateIn(days int) string {
	return testNow.AddDate(0, 0, days).Format("2006-01-02")
}

func TestEngineScore(t *testing.T) {
	Convey("Given an engine with a fixed clock", t, func() {
		engine := scoring.New(scoring.WithClock(fixedClock))

		Convey("When scoring a Fortune 500 host with perfect lead time and mid size", func() {
			result := engine.Score(scoring.Input{
				HostCompany: "Oracle",
				EventDate:   dateIn(120), // 4 months out
				Attendees:   3000,
			})

			Convey("Then the additive rules stack to 90 with the large-size bonus applied once", func() {
				So(result.Score, ShouldEqual, 90)
				So(result.IsFortune500, ShouldBeTrue)
				So(result.Breakdown, ShouldResemble, []string{
					scoring.ReasonFortune500,
					scoring.ReasonPerfectLeadTime,
					scoring.ReasonSizeLarge,
				})
			})
		})

		Convey("When the event is under two months out", func() {
			result := engine.Score(scoring.Input{
				HostCompany: "Oracle",
				EventDate:   dateIn(30),
				Attendees:   3000,
			})

			Convey("Then the cap applies at the timing step and the size bonus still lands", func() {
				So(result.Score, ShouldEqual, 60)
				So(result.Breakdown, ShouldContain, scoring.ReasonTooSoon)
			})
		})

		Convey("When the event falls into the 2-3 month gap", func() {
			result := engine.Score(scoring.Input{
				HostCompany: "Oracle",
				EventDate:   dateIn(75), // 2.5 months
				Attendees:   100,
			})

			Convey("Then the timing rule contributes nothing and leaves no reason", func() {
				So(result.Score, ShouldEqual, 40)
				So(result.Breakdown, ShouldResemble, []string{scoring.ReasonFortune500})
			})
		})

		Convey("When no event date is supplied", func() {
			result := engine.Score(scoring.Input{HostCompany: "Oracle", Attendees: 600})

			Convey("Then the timing rule is skipped entirely", func() {
				So(result.Score, ShouldEqual, 50)
				So(result.Breakdown, ShouldResemble, []string{scoring.ReasonFortune500, scoring.ReasonSizeMedium})
			})
		})

		Convey("When the attendee count varies with other inputs fixed", func() {
			base := scoring.Input{HostCompany: "Nobody LLC", EventDate: dateIn(120)}

			small := base
			small.Attendees = 100
			medium := base
			medium.Attendees = 500
			large := base
			large.Attendees = 2000

			Convey("Then the size bonus is monotonic in the attendee count", func() {
				so := engine.Score(small).Score
				me := engine.Score(medium).Score
				la := engine.Score(large).Score
				So(la, ShouldBeGreaterThanOrEqualTo, me)
				So(me, ShouldBeGreaterThanOrEqualTo, so)
			})
		})

		Convey("When scoring any combination of inputs", func() {
			inputs := []scoring.Input{
				{},
				{HostCompany: "Oracle", EventDate: dateIn(200), Attendees: 1_000_000},
				{HostCompany: "Walmart", EventDate: dateIn(-30), Attendees: -5},
				{HostCompany: "garbage", EventDate: "not-a-date", Attendees: 0},
			}

			Convey("Then the score always stays in [0,100]", func() {
				for _, in := range inputs {
					score := engine.Score(in).Score
					So(score, ShouldBeGreaterThanOrEqualTo, 0)
					So(score, ShouldBeLessThanOrEqualTo, 100)
				}
			})
		})

		Convey("When scoring the same input twice", func() {
			in := scoring.Input{HostCompany: "Oracle", EventDate: dateIn(120), Attendees: 3000}

			Convey("Then the results are identical", func() {
				So(engine.Score(in), ShouldResemble, engine.Score(in))
			})
		})
	})
}

func TestPriorityFor(t *testing.T) {
	Convey("Given the priority thresholds", t, func() {
		Convey("Then the tier is a step function of the score", func() {
			So(scoring.PriorityFor(49), ShouldEqual, model.PriorityLow)
			So(scoring.PriorityFor(50), ShouldEqual, model.PriorityMedium)
			So(scoring.PriorityFor(69), ShouldEqual, model.PriorityMedium)
			So(scoring.PriorityFor(70), ShouldEqual, model.PriorityHigh)
			So(scoring.PriorityFor(100), ShouldEqual, model.PriorityHigh)
			So(scoring.PriorityFor(0), ShouldEqual, model.PriorityLow)
		})
	})
}

func TestIsFortune500(t *testing.T) {
	Convey("Given an engine with the default reference list", t, func() {
		engine := scoring.New(scoring.WithClock(fixedClock))

		Convey("Then the check ignores case and corporate suffixes", func() {
			So(engine.IsFortune500("oracle corp."), ShouldBeTrue)
			So(engine.IsFortune500("Oracle"), ShouldBeTrue)
			So(engine.IsFortune500("ORACLE CORPORATION"), ShouldBeTrue)
			So(engine.IsFortune500("Salesforce Inc"), ShouldBeTrue)
		})

		Convey("Then substring matches work in both directions", func() {
			So(engine.IsFortune500("Walt Disney Parks and Resorts"), ShouldBeTrue)
			So(engine.IsFortune500("Disney"), ShouldBeTrue)
		})

		Convey("Then unknown and empty names do not match", func() {
			So(engine.IsFortune500(""), ShouldBeFalse)
			So(engine.IsFortune500("Bob's Birthday Clowns"), ShouldBeFalse)
		})
	})
}

func TestLeadTimeMonths(t *testing.T) {
	Convey("Given a fixed now", t, func() {
		Convey("Then lead time rounds to whole 30-day months", func() {
			So(scoring.LeadTimeMonths(testNow, dateIn(120)), ShouldEqual, 4)
			So(scoring.LeadTimeMonths(testNow, dateIn(40)), ShouldEqual, 1)
		})

		Convey("Then missing or broken dates read as zero", func() {
			So(scoring.LeadTimeMonths(testNow, ""), ShouldEqual, 0)
			So(scoring.LeadTimeMonths(testNow, "soon"), ShouldEqual, 0)
		})
	})
}
