package genai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/thebeat/pipeline/internal/adapters/genai"
	"github.com/thebeat/pipeline/pkg/logger"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

// completionServer answers every chat completion with the given text.
func completionServer(t *testing.T, text string, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		if r.Header.Get("Authorization") == "" {
			t.Error("request without Authorization header")
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": text}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestMissingCredential(t *testing.T) {
	Convey("Given a client with no API key", t, func() {
		var hits atomic.Int64
		srv := completionServer(t, "[]", &hits)
		defer srv.Close()
		client := genai.New("", genai.WithBaseURL(srv.URL))

		Convey("When any generation is requested", func() {
			_, err := client.SocialReply(context.Background(), "great show")

			Convey("Then the credential sentinel surfaces before any request", func() {
				So(err, ShouldWrap, genai.ErrMissingCredential)
				So(hits.Load(), ShouldEqual, 0)
			})
		})
	})
}

func TestArrayExtraction(t *testing.T) {
	Convey("Given completions that wrap JSON in prose", t, func() {
		ctx := context.Background()

		Convey("When the array is fenced in markdown chatter", func() {
			srv := completionServer(t, "Here you go:\n```json\n[{\"eventName\":\"Oracle CloudWorld\",\"attendees\":15000}]\n```\nEnjoy!", nil)
			defer srv.Close()
			client := genai.New("test-key", genai.WithBaseURL(srv.URL))

			batch, err := client.ScrapeEvents(ctx, "Nashville", "Convention Center")

			Convey("Then the delimited array still parses", func() {
				So(err, ShouldBeNil)
				So(batch, ShouldHaveLength, 1)
				So(batch[0].EventName, ShouldEqual, "Oracle CloudWorld")
				So(batch[0].Attendees, ShouldEqual, 15000)
			})
		})

		Convey("When the completion carries no array at all", func() {
			srv := completionServer(t, "I cannot help with that.", nil)
			defer srv.Close()
			client := genai.New("test-key", genai.WithBaseURL(srv.URL))

			batch, err := client.ScrapeEvents(ctx, "Nashville", "Convention Center")

			Convey("Then the scan degrades to an empty batch, not an error", func() {
				So(err, ShouldBeNil)
				So(batch, ShouldBeEmpty)
			})
		})

		Convey("When the delimited text is not valid JSON", func() {
			srv := completionServer(t, "[{broken", nil)
			defer srv.Close()
			client := genai.New("test-key", genai.WithBaseURL(srv.URL))

			batch, err := client.ScrapeEvents(ctx, "Nashville", "Convention Center")

			Convey("Then the scan degrades to an empty batch", func() {
				So(err, ShouldBeNil)
				So(batch, ShouldBeEmpty)
			})
		})
	})
}

func TestObjectExtraction(t *testing.T) {
	Convey("Given a post-show analysis completion", t, func() {
		ctx := context.Background()
		srv := completionServer(t, `Notes reviewed. {"venueUpdates":"Dock height 4ft","clientInsights":"Loved the opener","caseStudyDraft":"A seamless night."}`, nil)
		defer srv.Close()
		client := genai.New("test-key", genai.WithBaseURL(srv.URL))

		Convey("When the object is embedded in prose", func() {
			analysis, err := client.AnalyzePostShow(ctx, "dock was low", "Gaylord Opryland", "Acme")

			Convey("Then all three fields come through", func() {
				So(err, ShouldBeNil)
				So(analysis.VenueUpdates, ShouldEqual, "Dock height 4ft")
				So(analysis.ClientInsights, ShouldEqual, "Loved the opener")
				So(analysis.CaseStudyDraft, ShouldEqual, "A seamless night.")
			})
		})
	})
}

func TestTextGeneration(t *testing.T) {
	Convey("Given a healthy endpoint", t, func() {
		ctx := context.Background()
		srv := completionServer(t, "Hi Jordan, noticed some interest from your team.", nil)
		defer srv.Close()
		client := genai.New("test-key", genai.WithBaseURL(srv.URL))

		Convey("When drafting an outreach email", func() {
			draft, err := client.OutreachEmail(ctx, "Jordan", "Acme Agency", "corporate galas", "3 site visits")

			Convey("Then the completion text is returned verbatim", func() {
				So(err, ShouldBeNil)
				So(draft, ShouldEqual, "Hi Jordan, noticed some interest from your team.")
			})
		})
	})
}

func TestRequestFailures(t *testing.T) {
	Convey("Given a failing endpoint", t, func() {
		ctx := context.Background()

		Convey("When the server answers with a 500", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer srv.Close()
			client := genai.New("test-key", genai.WithBaseURL(srv.URL))

			_, err := client.SocialReply(ctx, "post")

			Convey("Then the failure sentinel surfaces with no retry", func() {
				So(err, ShouldWrap, genai.ErrRequestFailed)
			})
		})

		Convey("When the completion carries no choices", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"choices":[]}`))
			}))
			defer srv.Close()
			client := genai.New("test-key", genai.WithBaseURL(srv.URL))

			_, err := client.SocialReply(ctx, "post")

			Convey("Then the empty-completion sentinel surfaces", func() {
				So(err, ShouldWrap, genai.ErrEmptyResponse)
			})
		})
	})
}
