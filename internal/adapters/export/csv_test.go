package export_test

import (
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/thebeat/pipeline/internal/adapters/export"
	"github.com/thebeat/pipeline/internal/domain/model"
)

func TestCSV(t *testing.T) {
	Convey("Given a collection of leads", t, func() {
		leads := []model.Lead{
			{ID: "l-1", Name: "Sarah Jenkins", Company: "Acme, Inc", Status: model.LeadContacted},
			{ID: "l-2", Name: `Jo "JJ" Park`, Company: "Beta\nCorp", Status: model.LeadResearch},
		}

		Convey("When exporting to CSV", func() {
			out, err := export.CSV(leads)
			So(err, ShouldBeNil)
			lines := strings.SplitN(string(out), "\n", 2)

			Convey("Then headers follow field declaration order", func() {
				So(lines[0], ShouldStartWith, "id,name,role,company")
			})

			Convey("Then commas force quoting", func() {
				So(string(out), ShouldContainSubstring, `"Acme, Inc"`)
			})

			Convey("Then inner quotes are doubled", func() {
				So(string(out), ShouldContainSubstring, `"Jo ""JJ"" Park"`)
			})

			Convey("Then newlines force quoting", func() {
				So(string(out), ShouldContainSubstring, "\"Beta\nCorp\"")
			})
		})
	})

	Convey("Given records with list and nested fields", t, func() {
		clusters := []model.SeoCluster{
			{ID: "s-1", Keyword: "corporate event entertainment", PAAQuestions: []string{"How much?", "Who?"}, Status: "Ideation"},
		}

		Convey("When exporting", func() {
			out, err := export.CSV(clusters)
			So(err, ShouldBeNil)

			Convey("Then string lists join on commas and get quoted", func() {
				So(string(out), ShouldContainSubstring, `"How much?,Who?"`)
			})
		})
	})

	Convey("Given an empty collection", t, func() {
		Convey("When exporting", func() {
			_, err := export.CSV([]model.Lead{})

			Convey("Then the no-records error surfaces and nothing is written", func() {
				So(err, ShouldWrap, export.ErrNoRecords)
			})
		})
	})
}

func TestFilename(t *testing.T) {
	Convey("Given a fixed day", t, func() {
		now := time.Date(2025, time.June, 1, 15, 4, 5, 0, time.UTC)

		Convey("Then the download name carries the date", func() {
			So(export.Filename("leads", now), ShouldEqual, "leads_2025-06-01.csv")
		})
	})
}
