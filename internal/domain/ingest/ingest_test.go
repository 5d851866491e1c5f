package ingest_test

import (
	"fmt"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/thebeat/pipeline/internal/domain/ingest"
	"github.com/thebeat/pipeline/internal/domain/model"
	"github.com/thebeat/pipeline/internal/domain/scoring"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestMerger() *ingest.Merger {
	n := 0
	return ingest.New(
		ingest.WithClock(func() time.Time { return testNow }),
		ingest.WithEngine(scoring.New(scoring.WithClock(func() time.Time { return testNow }))),
		ingest.WithIDFunc(func(prefix string) string {
			n++
			return fmt.Sprintf("%s-%d", prefix, n)
		}),
	)
}

func TestMergeEvents(t *testing.T) {
	Convey("Given a merger and an existing collection", t, func() {
		merger := newTestMerger()
		existing := []model.ScrapedEvent{
			{ID: "evt-old", EventName: "Expo One", Status: model.EventRaw},
		}

		Convey("When merging a batch with a brand new event", func() {
			batch := []model.RawEvent{{
				EventName:   "Oracle CloudWorld",
				HostCompany: "Oracle",
				EventDate:   testNow.AddDate(0, 0, 120).Format("2006-01-02"),
				Attendees:   3000,
			}}
			merged := merger.MergeEvents(existing, batch, model.SourceConventionCenter, "Nashville, TN")

			Convey("Then the new record is prepended with score, priority and lead time attached", func() {
				So(merged, ShouldHaveLength, 2)
				So(merged[0].EventName, ShouldEqual, "Oracle CloudWorld")
				So(merged[0].Score, ShouldEqual, 90)
				So(merged[0].Priority, ShouldEqual, model.PriorityHigh)
				So(merged[0].LeadTimeMonths, ShouldEqual, 4)
				So(merged[0].IsFortune500, ShouldBeTrue)
				So(merged[0].Status, ShouldEqual, model.EventRaw)
				So(merged[1].ID, ShouldEqual, "evt-old")
			})

			Convey("Then the input slices are left untouched", func() {
				So(existing, ShouldHaveLength, 1)
				So(existing[0].ID, ShouldEqual, "evt-old")
			})
		})

		Convey("When the batch repeats an existing event name", func() {
			batch := []model.RawEvent{
				{EventName: "Expo One", HostCompany: "Someone"},
				{EventName: "Expo Two", HostCompany: "Someone Else"},
			}
			merged := merger.MergeEvents(existing, batch, model.SourceGoogleNews, "")

			Convey("Then the duplicate is dropped and the newcomer survives", func() {
				So(merged, ShouldHaveLength, 2)
				So(merged[0].EventName, ShouldEqual, "Expo Two")
			})
		})

		Convey("When the batch repeats a name within itself", func() {
			batch := []model.RawEvent{
				{EventName: "Twins Gala"},
				{EventName: "Twins Gala"},
			}
			merged := merger.MergeEvents(existing, batch, model.SourceManual, "")

			Convey("Then only one copy is accepted", func() {
				So(merged, ShouldHaveLength, 2)
			})
		})

		Convey("When no id function is supplied", func() {
			plain := ingest.New(ingest.WithClock(func() time.Time { return testNow }))
			merged := plain.MergeEvents(nil, []model.RawEvent{{EventName: "Solo Expo"}}, model.SourceManual, "")

			Convey("Then identifiers are stamped from the injected clock", func() {
				So(merged, ShouldHaveLength, 1)
				So(merged[0].ID, ShouldStartWith, fmt.Sprintf("evt-%d-", testNow.UnixMilli()))
			})
		})

		Convey("When raw fields are missing", func() {
			merged := merger.MergeEvents(nil, []model.RawEvent{{}}, model.SourceEventbrite, "Austin, TX")

			Convey("Then the fallback table fills them in", func() {
				ev := merged[0]
				So(ev.EventName, ShouldEqual, "Unknown Event")
				So(ev.HostCompany, ShouldEqual, "Unknown Host")
				So(ev.EventType, ShouldEqual, "Conference")
				So(ev.Location, ShouldEqual, "Austin, TX")
				So(ev.Attendees, ShouldEqual, 0)
				So(ev.LeadTimeMonths, ShouldEqual, 0)
				So(ev.ID, ShouldNotBeEmpty)
			})
		})

		Convey("When merging preserves prior order", func() {
			many := []model.ScrapedEvent{
				{ID: "a", EventName: "A"},
				{ID: "b", EventName: "B"},
				{ID: "c", EventName: "C"},
			}
			merged := merger.MergeEvents(many, []model.RawEvent{{EventName: "D"}}, model.SourceManual, "")

			Convey("Then earlier records keep their relative positions", func() {
				So(merged[1].ID, ShouldEqual, "a")
				So(merged[2].ID, ShouldEqual, "b")
				So(merged[3].ID, ShouldEqual, "c")
			})
		})
	})
}

func TestMergeAgencies(t *testing.T) {
	Convey("Given a merger", t, func() {
		merger := newTestMerger()

		Convey("When merging discovery results", func() {
			batch := []model.RawAgency{
				{Name: "Pixel & Pine", Size: "Boutique", FitScore: 9, Contacts: []model.DiscoveredContact{{Name: "Ana", Title: "CEO"}}},
				{Name: "BigCo Events", Size: "Global", FitScore: 6},
				{Name: "Tiny Shop", Size: "weird", FitScore: 0},
			}
			merged := merger.MergeAgencies(nil, batch)

			Convey("Then fit scores clamp to 1-10 and tiers derive from fit", func() {
				So(merged, ShouldHaveLength, 3)
				So(merged[0].Tier, ShouldEqual, model.Tier1)
				So(merged[1].Tier, ShouldEqual, model.Tier2)
				So(merged[2].FitScore, ShouldEqual, 1)
				So(merged[2].Tier, ShouldEqual, model.Tier3)
			})

			Convey("Then unknown sizes fall back to mid-market and status starts unverified", func() {
				So(merged[2].Size, ShouldEqual, model.SizeMidMarket)
				So(merged[0].Status, ShouldEqual, model.AgencyUnverified)
			})
		})

		Convey("When discovery repeats an existing agency name", func() {
			existing := []model.DiscoveredAgency{{ID: "agc-1", Name: "Pixel & Pine"}}
			merged := merger.MergeAgencies(existing, []model.RawAgency{{Name: "Pixel & Pine", FitScore: 5}})

			Convey("Then the duplicate is dropped", func() {
				So(merged, ShouldHaveLength, 1)
				So(merged[0].ID, ShouldEqual, "agc-1")
			})
		})
	})
}
