package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/thebeat/pipeline/internal/adapters/bus"
	"github.com/thebeat/pipeline/internal/adapters/genai"
	"github.com/thebeat/pipeline/internal/adapters/storage"
	"github.com/thebeat/pipeline/internal/domain/lifecycle"
	"github.com/thebeat/pipeline/internal/domain/model"
	"github.com/thebeat/pipeline/pkg/logger"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

// testClock is a mutable fixed clock shared with the service under test.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock(t time.Time) *testClock { return &testClock{t: t} }

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// stubCollab is a canned Collaborator. A non-nil err fails every call.
type stubCollab struct {
	mu       sync.Mutex
	events   []model.RawEvent
	agencies []model.RawAgency
	venues   []model.Venue
	emails   []model.NurtureEmail
	analysis model.PostShowAnalysis
	err      error
}

func (s *stubCollab) fail() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *stubCollab) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *stubCollab) ScrapeEvents(_ context.Context, _ string, _ model.ScraperSource) ([]model.RawEvent, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	return s.events, nil
}

func (s *stubCollab) DiscoverAgencies(_ context.Context, _, _, _ string) ([]model.RawAgency, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	return s.agencies, nil
}

func (s *stubCollab) ResearchVenues(_ context.Context, _ string) ([]model.Venue, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	return s.venues, nil
}

func (s *stubCollab) OutreachEmail(_ context.Context, name, _, _, _ string) (string, error) {
	if err := s.fail(); err != nil {
		return "", err
	}
	return "Hi " + name + ", quick note about your upcoming event.", nil
}

func (s *stubCollab) EventPitch(_ context.Context, in genai.PitchInput) (string, error) {
	if err := s.fail(); err != nil {
		return "", err
	}
	return "Pitch for " + in.EventName, nil
}

func (s *stubCollab) BacklinkPitch(_ context.Context, sourceName, _, _ string) (string, error) {
	if err := s.fail(); err != nil {
		return "", err
	}
	return "Pitch to " + sourceName, nil
}

func (s *stubCollab) SocialReply(_ context.Context, _ string) (string, error) {
	if err := s.fail(); err != nil {
		return "", err
	}
	return "Thanks for the mention!", nil
}

func (s *stubCollab) SeoOutline(_ context.Context, keyword string, _ []string, _ string) (string, error) {
	if err := s.fail(); err != nil {
		return "", err
	}
	return "Outline for " + keyword, nil
}

func (s *stubCollab) ContentDraft(_ context.Context, keyword, _, _ string) (string, error) {
	if err := s.fail(); err != nil {
		return "", err
	}
	return "Draft for " + keyword, nil
}

func (s *stubCollab) NurtureSequence(_ context.Context, _, _ string) ([]model.NurtureEmail, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	return s.emails, nil
}

func (s *stubCollab) AnalyzeCompetitor(_ context.Context, name, _ string) (genai.CompetitorAnalysis, error) {
	if err := s.fail(); err != nil {
		return genai.CompetitorAnalysis{}, err
	}
	return genai.CompetitorAnalysis{
		Strengths:   name + " has strong branding",
		Weaknesses:  "slow turnaround",
		Opportunity: "undercut on speed",
	}, nil
}

func (s *stubCollab) AnalyzePostShow(_ context.Context, _, _, _ string) (model.PostShowAnalysis, error) {
	if err := s.fail(); err != nil {
		return model.PostShowAnalysis{}, err
	}
	return s.analysis, nil
}

func (s *stubCollab) ProposalOutline(_ context.Context, clientName, _, _ string, _ int) (string, error) {
	if err := s.fail(); err != nil {
		return "", err
	}
	return "Proposal outline for " + clientName, nil
}

func seqID() func(prefix string) string {
	var n atomic.Int64
	return func(prefix string) string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}

func newTestService(t *testing.T, collab Collaborator, clock *testClock) *Service {
	t.Helper()
	s := New(
		WithBackend(storage.NewMemoryBackend()),
		WithCollaborator(collab),
		WithClock(clock.Now),
		WithIDFunc(seqID()),
		WithWorkerCount(2),
		WithQueueSize(32),
	)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(s.Stop)
	return s
}

// waitFor polls until check passes or the deadline expires.
func waitFor(t *testing.T, check func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if check() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

var scanStart = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func TestScanEvents(t *testing.T) {
	Convey("Given a service with a collaborator returning raw events", t, func() {
		ctx := context.Background()
		collab := &stubCollab{events: []model.RawEvent{
			{
				EventName:   "Oracle CloudWorld",
				HostCompany: "Oracle",
				EventDate:   "2026-05-15",
				Attendees:   15000,
				EventType:   "Conference",
			},
			{
				EventName: "", // takes every default
			},
		}}
		svc := newTestService(t, collab, newTestClock(scanStart))

		Convey("When scanning with an empty city", func() {
			events, err := svc.ScanEvents(ctx, "", model.SourceGoogleNews)
			So(err, ShouldBeNil)

			Convey("Then the batch is scored and merged newest-first", func() {
				// 2 accepted + the seeded default event
				So(len(events), ShouldEqual, 3)

				oracle := events[0]
				So(oracle.EventName, ShouldEqual, "Oracle CloudWorld")
				So(oracle.Score, ShouldEqual, 90)
				So(oracle.Priority, ShouldEqual, model.PriorityHigh)
				So(oracle.ScoreBreakdown, ShouldResemble, []string{"Fortune 500", "Perfect Lead Time", "Size > 2000"})
				So(oracle.IsFortune500, ShouldBeTrue)
				So(oracle.LeadTimeMonths, ShouldEqual, 4)
				So(oracle.Status, ShouldEqual, model.EventRaw)
				So(oracle.ID, ShouldNotBeEmpty)
			})

			Convey("Then missing fields get defaults and the scan city", func() {
				blank := events[1]
				So(blank.EventName, ShouldEqual, "Unknown Event")
				So(blank.HostCompany, ShouldEqual, "Unknown Host")
				So(blank.EventType, ShouldEqual, "Conference")
				So(blank.Location, ShouldEqual, "Nashville")
			})

			Convey("And a second scan drops the duplicates by name", func() {
				again, err := svc.ScanEvents(ctx, "", model.SourceGoogleNews)
				So(err, ShouldBeNil)
				So(len(again), ShouldEqual, 3)
			})
		})

		Convey("When the credential is missing the scan degrades to a no-op", func() {
			collab.setErr(genai.ErrMissingCredential)
			before := svc.store.Events(ctx)
			events, err := svc.ScanEvents(ctx, "Austin", model.SourceEventbrite)
			So(err, ShouldBeNil)
			So(len(events), ShouldEqual, len(before))
		})
	})
}

func TestEventLifecycle(t *testing.T) {
	Convey("Given a scanned event", t, func() {
		ctx := context.Background()
		collab := &stubCollab{events: []model.RawEvent{{
			EventName:   "Oracle CloudWorld",
			HostCompany: "Oracle",
			EventDate:   "2026-05-15",
			Attendees:   15000,
		}}}
		svc := newTestService(t, collab, newTestClock(scanStart))
		events, err := svc.ScanEvents(ctx, "", model.SourceGoogleNews)
		So(err, ShouldBeNil)
		eventID := events[0].ID

		Convey("When promoting it with user notes", func() {
			lead, err := svc.PromoteEvent(ctx, eventID, "VIP target")
			So(err, ShouldBeNil)

			Convey("Then the lead carries the event context", func() {
				So(lead.Name, ShouldEqual, "Unknown Decision Maker")
				So(lead.Role, ShouldEqual, "Event Director")
				So(lead.Company, ShouldEqual, "Oracle")
				So(lead.Source, ShouldEqual, model.SourceEventRadar)
				So(lead.QualityScore, ShouldEqual, 9)
				So(lead.RelatedEventID, ShouldEqual, eventID)
				So(lead.Notes, ShouldContainSubstring, "User Notes: VIP target")
			})

			Convey("Then the event is terminally promoted", func() {
				stored, ok := findByID(svc.store.Events(ctx), eventID, func(e model.ScrapedEvent) string { return e.ID })
				So(ok, ShouldBeTrue)
				So(stored.Status, ShouldEqual, model.EventPromoted)

				_, err := svc.PromoteEvent(ctx, eventID, "again")
				So(err, ShouldWrap, lifecycle.ErrAlreadyPromoted)
			})

			Convey("Then the lead is prepended to the collection", func() {
				So(svc.store.Leads(ctx)[0].ID, ShouldEqual, lead.ID)
			})
		})

		Convey("When ignoring it the record is gone outright", func() {
			So(svc.IgnoreEvent(ctx, eventID), ShouldBeNil)
			_, ok := findByID(svc.store.Events(ctx), eventID, func(e model.ScrapedEvent) string { return e.ID })
			So(ok, ShouldBeFalse)

			So(svc.IgnoreEvent(ctx, eventID), ShouldWrap, ErrNotFound)
		})
	})
}

func TestFollowUpCadence(t *testing.T) {
	Convey("Given a contacted lead", t, func() {
		ctx := context.Background()
		clock := newTestClock(scanStart)
		svc := newTestService(t, &stubCollab{}, clock)

		lead, err := svc.AddLead(ctx, model.Lead{Name: "Dana Torres", Company: "Acme Corp"})
		So(err, ShouldBeNil)

		contacted, err := svc.MarkContacted(ctx, lead.ID)
		So(err, ShouldBeNil)
		So(contacted.Status, ShouldEqual, model.LeadContacted)
		So(contacted.LastOutreachDate, ShouldEqual, "2026-01-15")
		So(contacted.NextFollowUpDate, ShouldEqual, "2026-01-29")

		Convey("Then it is not due one day before the window closes", func() {
			clock.Advance(13 * 24 * time.Hour)
			for _, due := range svc.FollowUpsDue(ctx) {
				So(due.ID, ShouldNotEqual, lead.ID)
			}
		})

		Convey("Then it is due once the full window has elapsed", func() {
			clock.Advance(14 * 24 * time.Hour)
			ids := make([]string, 0)
			for _, due := range svc.FollowUpsDue(ctx) {
				ids = append(ids, due.ID)
			}
			So(ids, ShouldContain, lead.ID)
		})
	})
}

func TestAsyncDraftGeneration(t *testing.T) {
	Convey("Given a lead awaiting outreach", t, func() {
		ctx := context.Background()
		collab := &stubCollab{}
		svc := newTestService(t, collab, newTestClock(scanStart))

		lead, err := svc.AddLead(ctx, model.Lead{Name: "Dana Torres", Company: "Acme Corp"})
		So(err, ShouldBeNil)

		Convey("When a draft is requested", func() {
			So(svc.RequestDraft(ctx, lead.ID), ShouldBeNil)

			waitFor(t, func() bool {
				l, _ := findByID(svc.store.Leads(ctx), lead.ID, func(l model.Lead) string { return l.ID })
				return l.AIDraft != ""
			})

			Convey("Then the draft lands on the lead and moves it forward", func() {
				stored, _ := findByID(svc.store.Leads(ctx), lead.ID, func(l model.Lead) string { return l.ID })
				So(stored.AIDraft, ShouldStartWith, "Hi Dana Torres")
				So(stored.Status, ShouldEqual, model.LeadReadyToContact)
			})
		})

		Convey("When the credential is missing the draft degrades to a placeholder", func() {
			collab.setErr(genai.ErrMissingCredential)
			So(svc.RequestDraft(ctx, lead.ID), ShouldBeNil)

			waitFor(t, func() bool {
				l, _ := findByID(svc.store.Leads(ctx), lead.ID, func(l model.Lead) string { return l.ID })
				return l.AIDraft != ""
			})

			stored, _ := findByID(svc.store.Leads(ctx), lead.ID, func(l model.Lead) string { return l.ID })
			So(stored.AIDraft, ShouldEqual, "Error: API Key missing.")
			So(stored.Status, ShouldEqual, model.LeadReadyToContact)
		})

		Convey("When requesting a draft for an unknown lead", func() {
			So(svc.RequestDraft(ctx, "lead-nope"), ShouldWrap, ErrNotFound)
		})
	})
}

func TestAgencyDiscovery(t *testing.T) {
	Convey("Given a discovery batch", t, func() {
		ctx := context.Background()
		collab := &stubCollab{agencies: []model.RawAgency{
			{
				Name:           "Summit Creative",
				Location:       "Nashville, TN",
				Specialization: "Corporate Events",
				Size:           "Mid-Market",
				FitScore:       9,
				FitReason:      "Heavy production calendar",
				Contacts: []model.DiscoveredContact{
					{Name: "Maria Lopez", Title: "Director of Events", Email: "maria@summit.example", Confidence: 92},
				},
			},
			{
				Name:     "Solo Shop",
				FitScore: 3,
			},
		}}
		svc := newTestService(t, collab, newTestClock(scanStart))

		agencies, err := svc.DiscoverAgencies(ctx, "", "", "")
		So(err, ShouldBeNil)
		So(len(agencies), ShouldEqual, 2)
		So(agencies[0].Tier, ShouldEqual, model.Tier1)
		So(agencies[0].Status, ShouldEqual, model.AgencyUnverified)
		So(agencies[1].Tier, ShouldEqual, model.Tier3)

		Convey("When promoting to a lead the first contact carries over", func() {
			lead, err := svc.PromoteAgencyToLead(ctx, agencies[0].ID)
			So(err, ShouldBeNil)
			So(lead.Name, ShouldEqual, "Maria Lopez")
			So(lead.Company, ShouldEqual, "Summit Creative")
			So(lead.Source, ShouldEqual, model.SourceAgencyDiscovery)
			So(lead.QualityScore, ShouldEqual, 9)

			stored := svc.store.Agencies(ctx)
			So(stored[0].Status, ShouldEqual, model.AgencyPromoted)
		})

		Convey("When promoting a contactless agency to a partner", func() {
			partner, err := svc.PromoteAgencyToPartner(ctx, agencies[1].ID)
			So(err, ShouldBeNil)
			So(partner.Contact, ShouldEqual, "TBD")
			So(partner.DealStructure, ShouldEqual, "10% Commission")
			So(partner.Status, ShouldEqual, model.PartnerIdentify)
			So(svc.store.Partners(ctx)[0].ID, ShouldEqual, partner.ID)
		})

		Convey("When discarding the record is kept", func() {
			So(svc.DiscardAgency(ctx, agencies[1].ID), ShouldBeNil)
			stored := svc.store.Agencies(ctx)
			So(stored[1].Status, ShouldEqual, model.AgencyDiscarded)
		})
	})
}

func TestVenueResearch(t *testing.T) {
	Convey("Given a venue research pass", t, func() {
		ctx := context.Background()
		collab := &stubCollab{venues: []model.Venue{
			{Name: "Music City Center", Location: "Nashville", CeilingHeight: "55 ft"},
			{Name: "Gaylord Opryland", Location: "Nashville"}, // duplicates a default
		}}
		svc := newTestService(t, collab, newTestClock(scanStart))

		before := len(svc.store.Venues(ctx))
		venues, err := svc.ResearchVenues(ctx, "")
		So(err, ShouldBeNil)

		Convey("Then new venues get identity and a scrape date", func() {
			So(len(venues), ShouldEqual, before+1)
			So(venues[0].Name, ShouldEqual, "Music City Center")
			So(venues[0].ID, ShouldNotBeEmpty)
			So(venues[0].LastScraped, ShouldEqual, "2026-01-15")
		})
	})
}

func TestSeoGeneration(t *testing.T) {
	Convey("Given the default keyword clusters", t, func() {
		ctx := context.Background()
		collab := &stubCollab{}
		svc := newTestService(t, collab, newTestClock(scanStart))

		clusters := svc.store.SeoClusters(ctx)
		So(len(clusters), ShouldBeGreaterThan, 0)
		clusterID := clusters[0].ID

		Convey("A draft request without an outline is rejected", func() {
			So(svc.RequestContentDraft(ctx, clusterID), ShouldNotBeNil)
		})

		Convey("An outline request moves the cluster to Drafting", func() {
			So(svc.RequestSeoOutline(ctx, clusterID), ShouldBeNil)
			waitFor(t, func() bool {
				c, _ := findByID(svc.store.SeoClusters(ctx), clusterID, func(c model.SeoCluster) string { return c.ID })
				return c.AIOutline != ""
			})
			stored, _ := findByID(svc.store.SeoClusters(ctx), clusterID, func(c model.SeoCluster) string { return c.ID })
			So(stored.AIOutline, ShouldStartWith, "Outline for")
			So(stored.Status, ShouldEqual, "Drafting")

			Convey("And a draft request then fills the full draft", func() {
				So(svc.RequestContentDraft(ctx, clusterID), ShouldBeNil)
				waitFor(t, func() bool {
					c, _ := findByID(svc.store.SeoClusters(ctx), clusterID, func(c model.SeoCluster) string { return c.ID })
					return c.FullDraft != ""
				})
			})
		})
	})
}

func TestCompetitorAnalysis(t *testing.T) {
	Convey("Given a tracked competitor", t, func() {
		ctx := context.Background()
		collab := &stubCollab{}
		svc := newTestService(t, collab, newTestClock(scanStart))

		competitors := svc.store.Competitors(ctx)
		So(len(competitors), ShouldBeGreaterThan, 0)
		id := competitors[0].ID

		Convey("When analysis is requested the structured fields land on the record", func() {
			So(svc.RequestCompetitorAnalysis(ctx, id), ShouldBeNil)
			waitFor(t, func() bool {
				c, _ := findByID(svc.store.Competitors(ctx), id, func(c model.Competitor) string { return c.ID })
				return c.AIAnalysis != ""
			})
			stored, _ := findByID(svc.store.Competitors(ctx), id, func(c model.Competitor) string { return c.ID })
			So(stored.Strengths, ShouldContainSubstring, "strong branding")
			So(stored.Weaknesses, ShouldEqual, "slow turnaround")
			So(stored.AIAnalysis, ShouldEqual, "undercut on speed")
		})
	})
}

func TestPostShowPropagation(t *testing.T) {
	Convey("Given a venue and a client lead", t, func() {
		ctx := context.Background()
		collab := &stubCollab{analysis: model.PostShowAnalysis{
			VenueUpdates:   "Ceiling clearance reduced to 28 ft on the east hall.",
			ClientInsights: "Wants a Q3 rebook with a bigger stage.",
			CaseStudyDraft: "A 15,000-attendee keynote without a missed cue.",
		}}
		svc := newTestService(t, collab, newTestClock(scanStart))

		seeded, _ := json.Marshal([]model.Venue{{ID: "ven-hall", Name: "Music City Center"}})
		So(svc.SaveCollection(ctx, storage.KeyVenues, seeded), ShouldBeNil)
		lead, err := svc.AddLead(ctx, model.Lead{Name: "Dana Torres", Company: "Acme Corp"})
		So(err, ShouldBeNil)

		Convey("When saving a post-show report", func() {
			report, err := svc.SavePostShowReport(ctx, "Acme Kickoff", "ven-hall", lead.ID, "raw debrief notes")
			So(err, ShouldBeNil)
			So(report.AIAnalysis.CaseStudyDraft, ShouldContainSubstring, "missed cue")
			So(svc.store.PostShowReports(ctx)[0].ID, ShouldEqual, report.ID)

			Convey("Then the venue gets a post-show note", func() {
				venue, _ := findByID(svc.store.Venues(ctx), "ven-hall", func(v model.Venue) string { return v.ID })
				So(venue.Notes, ShouldContainSubstring, "[Post-Show Update] Ceiling clearance")
			})

			Convey("Then the lead becomes a client with the insight recorded", func() {
				stored, _ := findByID(svc.store.Leads(ctx), lead.ID, func(l model.Lead) string { return l.ID })
				So(stored.Status, ShouldEqual, model.LeadClient)
				So(stored.Notes, ShouldContainSubstring, "[Post-Show Insight] Wants a Q3 rebook")
			})
		})

		Convey("When analysis fails the report still lands with placeholders", func() {
			collab.setErr(errors.New("boom"))
			report, err := svc.SavePostShowReport(ctx, "Acme Kickoff", "ven-hall", lead.ID, "raw notes")
			So(err, ShouldBeNil)
			So(report.AIAnalysis.VenueUpdates, ShouldEqual, "Could not extract data.")
			So(report.AIAnalysis.CaseStudyDraft, ShouldEqual, "Could not generate draft.")

			Convey("And nothing propagates", func() {
				stored, _ := findByID(svc.store.Leads(ctx), lead.ID, func(l model.Lead) string { return l.ID })
				So(stored.Status, ShouldNotEqual, model.LeadClient)
			})
		})
	})
}

func TestNurtureSequences(t *testing.T) {
	Convey("Given a nurture goal", t, func() {
		ctx := context.Background()
		collab := &stubCollab{emails: []model.NurtureEmail{
			{Day: 0, Subject: "Welcome", Body: "Hello"},
			{Day: 3, Subject: "Checking in", Body: "Still here"},
		}}
		svc := newTestService(t, collab, newTestClock(scanStart))

		seq, err := svc.GenerateNurtureSequence(ctx, "Corporate planners", "Post-event re-engagement")
		So(err, ShouldBeNil)
		So(seq.Name, ShouldEqual, "Post-event re-engagement")
		So(seq.TargetAudience, ShouldEqual, "Corporate planners")
		So(seq.Emails, ShouldHaveLength, 2)
		So(svc.store.NurtureSequences(ctx)[0].ID, ShouldEqual, seq.ID)

		Convey("A collaborator failure surfaces as an error", func() {
			collab.setErr(errors.New("boom"))
			_, err := svc.GenerateNurtureSequence(ctx, "CMOs", "Upsell")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestProposals(t *testing.T) {
	Convey("Given a new proposal", t, func() {
		ctx := context.Background()
		collab := &stubCollab{}
		svc := newTestService(t, collab, newTestClock(scanStart))

		proposal, err := svc.CreateProposal(ctx, "Acme Corp", "Sales Kickoff", "$75k-$100k", 3000)
		So(err, ShouldBeNil)
		So(proposal.Status, ShouldEqual, "Drafting")
		So(proposal.DateCreated, ShouldEqual, "2026-01-15")

		Convey("When an outline is requested it lands asynchronously", func() {
			So(svc.RequestProposalOutline(ctx, proposal.ID), ShouldBeNil)
			waitFor(t, func() bool {
				p, _ := findByID(svc.store.Proposals(ctx), proposal.ID, func(p model.Proposal) string { return p.ID })
				return p.AIOutline != ""
			})
			stored, _ := findByID(svc.store.Proposals(ctx), proposal.ID, func(p model.Proposal) string { return p.ID })
			So(stored.AIOutline, ShouldEqual, "Proposal outline for Acme Corp")
		})
	})
}

func TestROIAndExport(t *testing.T) {
	Convey("Given collections with generated artifacts", t, func() {
		ctx := context.Background()
		collab := &stubCollab{}
		svc := newTestService(t, collab, newTestClock(scanStart))

		lead, err := svc.AddLead(ctx, model.Lead{Name: "Dana Torres", Company: "Acme Corp"})
		So(err, ShouldBeNil)
		So(svc.RequestDraft(ctx, lead.ID), ShouldBeNil)
		waitFor(t, func() bool {
			l, _ := findByID(svc.store.Leads(ctx), lead.ID, func(l model.Lead) string { return l.ID })
			return l.AIDraft != ""
		})

		Convey("Then the ROI summary reflects them", func() {
			summary := svc.ROI(ctx)
			So(summary.EmailsDrafted, ShouldBeGreaterThanOrEqualTo, 1)
			So(summary.VenuesResearched, ShouldEqual, len(svc.store.Venues(ctx)))
			So(summary.HoursSaved, ShouldBeGreaterThan, 0)
			So(summary.MoneySaved, ShouldBeGreaterThan, summary.HoursSaved)
		})

		Convey("Then the leads collection exports as dated CSV", func() {
			name, data, err := svc.ExportCollection(ctx, storage.KeyLeads)
			So(err, ShouldBeNil)
			So(name, ShouldEqual, "leads_2026-01-15.csv")
			So(string(data), ShouldStartWith, "id,name,role,company")
			So(strings.Count(string(data), "\n"), ShouldBeGreaterThan, 1)
		})

		Convey("Then exporting an unknown key fails", func() {
			_, _, err := svc.ExportCollection(ctx, "thebeat_nope")
			So(err, ShouldWrap, storage.ErrUnknownKey)
		})
	})
}

func TestSettingsAndSubscriptions(t *testing.T) {
	Convey("Given a running service", t, func() {
		ctx := context.Background()
		svc := newTestService(t, &stubCollab{}, newTestClock(scanStart))

		Convey("Campaign context and show progress round-trip", func() {
			So(svc.SaveCampaignContext(ctx, "New positioning"), ShouldBeNil)
			So(svc.CampaignContext(ctx), ShouldEqual, "New positioning")

			So(svc.SaveShowPageProgress(ctx, 3), ShouldBeNil)
			So(svc.ShowPageProgress(ctx), ShouldEqual, 3)
		})

		Convey("A subscriber sees collection changes", func() {
			changes, cancel := svc.Subscribe(ctx)
			defer cancel()

			So(svc.SaveShowPageProgress(ctx, 5), ShouldBeNil)

			select {
			case change := <-changes:
				So(change, ShouldResemble, bus.Change{Key: storage.KeyShowPageProgress})
			case <-time.After(2 * time.Second):
				t.Fatal("no change received")
			}
		})

		Convey("Raw collection access round-trips through validation", func() {
			raw, err := svc.Collection(ctx, storage.KeyVenues)
			So(err, ShouldBeNil)
			So(string(raw), ShouldContainSubstring, "Gaylord Opryland")

			So(svc.SaveCollection(ctx, storage.KeyVenues, json.RawMessage(`not json`)), ShouldNotBeNil)
		})
	})
}
