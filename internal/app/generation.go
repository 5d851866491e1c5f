package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/thebeat/pipeline/internal/adapters/genai"
	"github.com/thebeat/pipeline/internal/adapters/mq/queue"
	"github.com/thebeat/pipeline/internal/domain/lifecycle"
	"github.com/thebeat/pipeline/internal/domain/model"
	"github.com/thebeat/pipeline/pkg/logger"
)

// Placeholder texts attached when generation fails. The record keeps moving
// through its lifecycle; the operator sees the failure inline and can
// regenerate.
const (
	placeholderMissingKey   = "Error: API Key missing."
	placeholderOutreach     = "Error generating outreach email."
	placeholderBacklink     = "Error generating backlink pitch."
	placeholderSocialReply  = "Error generating reply."
	placeholderSeoOutline   = "Error generating content strategy."
	placeholderContentDraft = "Error generating content draft."
	placeholderProposal     = "Error generating proposal."
	placeholderAnalysis     = "Error"
)

// enqueue submits an asynchronous generation request for a record.
func (s *Service) enqueue(ctx context.Context, kind queue.Kind, recordID string) error {
	req := queue.Request{
		ID:         s.newID("req"),
		Kind:       kind,
		RecordID:   recordID,
		EnqueuedAt: s.now(),
	}
	if !s.genQueue.Enqueue(ctx, req) {
		return fmt.Errorf("%w: %s", ErrQueueFull, kind)
	}
	return nil
}

// Generate produces the text for a queued request by calling the
// collaborator with the current state of the referenced record.
//
// Collaborator failures do not fail the request: the returned text is a
// placeholder so the record still completes its transition and the operator
// sees the failure inline. Only a missing record fails the request.
func (s *Service) Generate(ctx context.Context, r queue.Request) (string, error) {
	switch r.Kind {
	case queue.KindOutreachDraft:
		lead, ok := findByID(s.store.Leads(ctx), r.RecordID, func(l model.Lead) string { return l.ID })
		if !ok {
			return "", fmt.Errorf("%w: lead %s", ErrNotFound, r.RecordID)
		}
		notes := lead.Notes
		if lead.WebsiteVisits > 0 {
			notes = strings.TrimSpace(notes + fmt.Sprintf("\nNoticed some interest: %d recent website visits.", lead.WebsiteVisits))
		}
		text, err := s.collab.OutreachEmail(ctx, lead.Name, lead.Company, notes, s.store.CampaignContext(ctx))
		return s.textOrPlaceholder(ctx, r, text, err, placeholderOutreach), nil

	case queue.KindEventPitch:
		ev, ok := findByID(s.store.Events(ctx), r.RecordID, func(e model.ScrapedEvent) string { return e.ID })
		if !ok {
			return "", fmt.Errorf("%w: event %s", ErrNotFound, r.RecordID)
		}
		text, err := s.collab.EventPitch(ctx, genai.PitchInput{
			RecipientName: "Event Director",
			EventName:     ev.EventName,
			HostCompany:   ev.HostCompany,
			EventDate:     ev.EventDate,
			Attendees:     ev.Attendees,
			Venue:         ev.Location,
		})
		return s.textOrPlaceholder(ctx, r, text, err, placeholderOutreach), nil

	case queue.KindBacklinkPitch:
		target, ok := findByID(s.store.Backlinks(ctx), r.RecordID, func(b model.BacklinkTarget) string { return b.ID })
		if !ok {
			return "", fmt.Errorf("%w: backlink %s", ErrNotFound, r.RecordID)
		}
		text, err := s.collab.BacklinkPitch(ctx, target.SourceName, target.Type, target.ContactName)
		return s.textOrPlaceholder(ctx, r, text, err, placeholderBacklink), nil

	case queue.KindSocialReply:
		mention, ok := findByID(s.store.SocialMentions(ctx), r.RecordID, func(m model.SocialMention) string { return m.ID })
		if !ok {
			return "", fmt.Errorf("%w: mention %s", ErrNotFound, r.RecordID)
		}
		text, err := s.collab.SocialReply(ctx, mention.Content)
		return s.textOrPlaceholder(ctx, r, text, err, placeholderSocialReply), nil

	case queue.KindSeoOutline:
		cluster, ok := findByID(s.store.SeoClusters(ctx), r.RecordID, func(c model.SeoCluster) string { return c.ID })
		if !ok {
			return "", fmt.Errorf("%w: cluster %s", ErrNotFound, r.RecordID)
		}
		text, err := s.collab.SeoOutline(ctx, cluster.Keyword, cluster.PAAQuestions, cluster.ContentType)
		return s.textOrPlaceholder(ctx, r, text, err, placeholderSeoOutline), nil

	case queue.KindContentDraft:
		cluster, ok := findByID(s.store.SeoClusters(ctx), r.RecordID, func(c model.SeoCluster) string { return c.ID })
		if !ok {
			return "", fmt.Errorf("%w: cluster %s", ErrNotFound, r.RecordID)
		}
		text, err := s.collab.ContentDraft(ctx, cluster.Keyword, cluster.AIOutline, cluster.ContentType)
		return s.textOrPlaceholder(ctx, r, text, err, placeholderContentDraft), nil

	case queue.KindProposalOutline:
		proposal, ok := findByID(s.store.Proposals(ctx), r.RecordID, func(p model.Proposal) string { return p.ID })
		if !ok {
			return "", fmt.Errorf("%w: proposal %s", ErrNotFound, r.RecordID)
		}
		text, err := s.collab.ProposalOutline(ctx, proposal.ClientName, proposal.EventName, proposal.Budget, proposal.AudienceSize)
		return s.textOrPlaceholder(ctx, r, text, err, placeholderProposal), nil

	case queue.KindCompetitorAnalysis:
		competitor, ok := findByID(s.store.Competitors(ctx), r.RecordID, func(c model.Competitor) string { return c.ID })
		if !ok {
			return "", fmt.Errorf("%w: competitor %s", ErrNotFound, r.RecordID)
		}
		analysis, err := s.collab.AnalyzeCompetitor(ctx, competitor.Name, competitor.Focus)
		if err != nil {
			s.logGenerationFailure(ctx, r, err)
			analysis = genai.CompetitorAnalysis{
				Strengths:   placeholderAnalysis,
				Weaknesses:  placeholderAnalysis,
				Opportunity: placeholderAnalysis,
			}
		}
		encoded, err := json.Marshal(analysis)
		if err != nil {
			return "", err
		}
		return string(encoded), nil

	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKind, r.Kind)
	}
}

// Apply writes generated text back onto the referenced record and persists
// the whole collection. Last response wins: whatever text arrives latest for
// a record is the one stored.
//
// A record deleted while its request was in flight is dropped quietly.
func (s *Service) Apply(ctx context.Context, r queue.Request, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch r.Kind {
	case queue.KindOutreachDraft:
		leads := s.store.Leads(ctx)
		for i, l := range leads {
			if l.ID == r.RecordID {
				leads[i] = lifecycle.AttachDraft(l, text)
				return s.store.SaveLeads(ctx, leads)
			}
		}

	case queue.KindEventPitch:
		events := s.store.Events(ctx)
		for i := range events {
			if events[i].ID == r.RecordID {
				events[i].AIAnalysis = text
				return s.store.SaveEvents(ctx, events)
			}
		}

	case queue.KindBacklinkPitch:
		targets := s.store.Backlinks(ctx)
		for i, t := range targets {
			if t.ID == r.RecordID {
				targets[i] = lifecycle.AttachPitch(t, text)
				return s.store.SaveBacklinks(ctx, targets)
			}
		}

	case queue.KindSocialReply:
		mentions := s.store.SocialMentions(ctx)
		for i := range mentions {
			if mentions[i].ID == r.RecordID {
				mentions[i].AIReply = text
				return s.store.SaveSocialMentions(ctx, mentions)
			}
		}

	case queue.KindSeoOutline:
		clusters := s.store.SeoClusters(ctx)
		for i := range clusters {
			if clusters[i].ID == r.RecordID {
				clusters[i].AIOutline = text
				clusters[i].Status = "Drafting"
				return s.store.SaveSeoClusters(ctx, clusters)
			}
		}

	case queue.KindContentDraft:
		clusters := s.store.SeoClusters(ctx)
		for i := range clusters {
			if clusters[i].ID == r.RecordID {
				clusters[i].FullDraft = text
				return s.store.SaveSeoClusters(ctx, clusters)
			}
		}

	case queue.KindProposalOutline:
		proposals := s.store.Proposals(ctx)
		for i := range proposals {
			if proposals[i].ID == r.RecordID {
				proposals[i].AIOutline = text
				return s.store.SaveProposals(ctx, proposals)
			}
		}

	case queue.KindCompetitorAnalysis:
		var analysis genai.CompetitorAnalysis
		if err := json.Unmarshal([]byte(text), &analysis); err != nil {
			return fmt.Errorf("decode competitor analysis: %w", err)
		}
		competitors := s.store.Competitors(ctx)
		for i := range competitors {
			if competitors[i].ID == r.RecordID {
				competitors[i].Strengths = analysis.Strengths
				competitors[i].Weaknesses = analysis.Weaknesses
				competitors[i].AIAnalysis = analysis.Opportunity
				return s.store.SaveCompetitors(ctx, competitors)
			}
		}

	default:
		return fmt.Errorf("%w: %s", ErrUnknownKind, r.Kind)
	}

	s.logger.Debug(ctx, "record gone before apply, dropping result",
		logger.String("kind", string(r.Kind)),
		logger.String("recordId", r.RecordID),
	)
	return nil
}

func (s *Service) textOrPlaceholder(ctx context.Context, r queue.Request, text string, err error, placeholder string) string {
	if err == nil {
		return text
	}
	s.logGenerationFailure(ctx, r, err)
	if errors.Is(err, genai.ErrMissingCredential) {
		return placeholderMissingKey
	}
	return placeholder
}

func (s *Service) logGenerationFailure(ctx context.Context, r queue.Request, err error) {
	s.logger.Warn(ctx, "generation failed, attaching placeholder",
		logger.String("kind", string(r.Kind)),
		logger.String("recordId", r.RecordID),
		logger.Error(err),
	)
}

// findByID scans a collection snapshot for a record id.
func findByID[T any](items []T, id string, idOf func(T) string) (T, bool) {
	for _, item := range items {
		if idOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}
