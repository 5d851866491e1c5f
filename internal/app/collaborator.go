package app

import (
	"context"

	"github.com/thebeat/pipeline/internal/adapters/genai"
	"github.com/thebeat/pipeline/internal/domain/model"
)

// Collaborator produces records and prose from a remote completion model.
// *genai.Client satisfies it; tests inject stubs.
type Collaborator interface {
	ScrapeEvents(ctx context.Context, city string, source model.ScraperSource) ([]model.RawEvent, error)
	DiscoverAgencies(ctx context.Context, location, agencyType, size string) ([]model.RawAgency, error)
	ResearchVenues(ctx context.Context, city string) ([]model.Venue, error)
	OutreachEmail(ctx context.Context, name, company, notes, campaignContext string) (string, error)
	EventPitch(ctx context.Context, in genai.PitchInput) (string, error)
	BacklinkPitch(ctx context.Context, sourceName, linkType, contactName string) (string, error)
	SocialReply(ctx context.Context, postContent string) (string, error)
	SeoOutline(ctx context.Context, keyword string, questions []string, contentType string) (string, error)
	ContentDraft(ctx context.Context, keyword, outline, contentType string) (string, error)
	NurtureSequence(ctx context.Context, audience, goal string) ([]model.NurtureEmail, error)
	AnalyzeCompetitor(ctx context.Context, name, focus string) (genai.CompetitorAnalysis, error)
	AnalyzePostShow(ctx context.Context, notes, venueName, clientName string) (model.PostShowAnalysis, error)
	ProposalOutline(ctx context.Context, clientName, eventName, budget string, audience int) (string, error)
}
