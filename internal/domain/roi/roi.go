// Package roi computes the time-and-money-saved summary from a snapshot of
// all collections. The aggregation is a pure fold: recomputed on demand,
// never cached, insensitive to record order.
package roi

import (
	"github.com/thebeat/pipeline/internal/domain/model"
	"github.com/thebeat/pipeline/internal/domain/scoring"
)

// Per-occurrence manual time cost in minutes for each assisted action.
const (
	minutesPerEmail            = 15
	minutesPerVenueResearch    = 20
	minutesPerOutline          = 45
	minutesPerSocialReply      = 5
	minutesPerBacklinkPitch    = 20
	minutesPerPostShowAnalysis = 60
	minutesPerEventFound       = 30
	minutesPerProposalDraft    = 90

	hourlyRate = 150 // USD
)

// Snapshot is the read-only view of the collections that feed the summary.
type Snapshot struct {
	Leads     []model.Lead
	Venues    []model.Venue
	Seo       []model.SeoCluster
	Social    []model.SocialMention
	Backlinks []model.BacklinkTarget
	Reports   []model.PostShowReport
	Events    []model.ScrapedEvent
	Proposals []model.Proposal
}

// Summary is the computed ROI with its supporting counts.
type Summary struct {
	HoursSaved        int `json:"hoursSaved"`
	MoneySaved        int `json:"moneySaved"`
	EmailsDrafted     int `json:"emailsDrafted"`
	VenuesResearched  int `json:"venuesScraped"`
	OutlinesGenerated int `json:"outlinesGenerated"`
	RepliesDrafted    int `json:"repliesDrafted"`
	BacklinksPitched  int `json:"backlinksPitched"`
	ReportsAnalyzed   int `json:"reportsAnalyzed"`
	EventsFound       int `json:"eventsFound"`
	ProposalsDrafted  int `json:"proposalsDrafted"`
}

// Compute folds the snapshot into the ROI summary. Drafted/pitched counts
// require generated text to be present; research and discovery actions
// count whole collections.
func Compute(snap Snapshot) Summary {
	s := Summary{
		VenuesResearched: len(snap.Venues),
		ReportsAnalyzed:  len(snap.Reports),
		EventsFound:      len(snap.Events),
		ProposalsDrafted: len(snap.Proposals),
	}

	for _, l := range snap.Leads {
		if l.AIDraft != "" {
			s.EmailsDrafted++
		}
	}
	for _, c := range snap.Seo {
		if c.AIOutline != "" {
			s.OutlinesGenerated++
		}
	}
	for _, sm := range snap.Social {
		if sm.AIReply != "" {
			s.RepliesDrafted++
		}
	}
	for _, b := range snap.Backlinks {
		if b.AIPitch != "" {
			s.BacklinksPitched++
		}
	}

	totalMinutes := s.EmailsDrafted*minutesPerEmail +
		s.VenuesResearched*minutesPerVenueResearch +
		s.OutlinesGenerated*minutesPerOutline +
		s.RepliesDrafted*minutesPerSocialReply +
		s.BacklinksPitched*minutesPerBacklinkPitch +
		s.ReportsAnalyzed*minutesPerPostShowAnalysis +
		s.EventsFound*minutesPerEventFound +
		s.ProposalsDrafted*minutesPerProposalDraft

	hours := float64(totalMinutes) / 60
	s.HoursSaved = int(scoring.RoundHalfUp(hours))
	s.MoneySaved = int(scoring.RoundHalfUp(hours * hourlyRate))
	return s
}
