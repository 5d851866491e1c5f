package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/thebeat/pipeline/internal/adapters/export"
	"github.com/thebeat/pipeline/internal/adapters/mq/queue"
	"github.com/thebeat/pipeline/internal/adapters/storage"
	"github.com/thebeat/pipeline/internal/domain/model"
	"github.com/thebeat/pipeline/internal/domain/roi"
	"github.com/thebeat/pipeline/pkg/logger"
)

// CreateProposal stores a new proposal in Drafting state.
func (s *Service) CreateProposal(ctx context.Context, clientName, eventName, budget string, audienceSize int) (model.Proposal, error) {
	proposal := model.Proposal{
		ID:           s.newID("prp"),
		ClientName:   clientName,
		EventName:    eventName,
		Budget:       budget,
		AudienceSize: audienceSize,
		Status:       "Drafting",
		DateCreated:  s.now().Format(venueDateLayout),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	proposals := append([]model.Proposal{proposal}, s.store.Proposals(ctx)...)
	if err := s.store.SaveProposals(ctx, proposals); err != nil {
		return model.Proposal{}, err
	}
	return proposal, nil
}

// RequestProposalOutline queues Good/Better/Best outline generation for a
// proposal.
func (s *Service) RequestProposalOutline(ctx context.Context, proposalID string) error {
	if _, ok := findByID(s.store.Proposals(ctx), proposalID, func(p model.Proposal) string { return p.ID }); !ok {
		return fmt.Errorf("%w: proposal %s", ErrNotFound, proposalID)
	}
	return s.enqueue(ctx, queue.KindProposalOutline, proposalID)
}

// SavePostShowReport analyzes raw debrief notes, stores the report, and
// propagates the extracted facts: venue updates append a note to the
// referenced venue, client insights append a note to the referenced lead
// and mark it a client.
//
// Analysis failure still stores the report, with placeholder text, and
// skips propagation.
func (s *Service) SavePostShowReport(ctx context.Context, showName, venueID, clientID, rawNotes string) (model.PostShowReport, error) {
	venueName := ""
	if v, ok := findByID(s.store.Venues(ctx), venueID, func(v model.Venue) string { return v.ID }); ok {
		venueName = v.Name
	}
	clientName := ""
	if l, ok := findByID(s.store.Leads(ctx), clientID, func(l model.Lead) string { return l.ID }); ok {
		clientName = l.Name
	}

	analysis, analysisErr := s.collab.AnalyzePostShow(ctx, rawNotes, venueName, clientName)
	if analysisErr != nil {
		s.logger.Warn(ctx, "post-show analysis failed, storing placeholders", logger.Error(analysisErr))
		analysis = model.PostShowAnalysis{
			VenueUpdates:   "Could not extract data.",
			ClientInsights: "Could not extract data.",
			CaseStudyDraft: "Could not generate draft.",
		}
	}

	report := model.PostShowReport{
		ID:         s.newID("rpt"),
		ShowName:   showName,
		VenueID:    venueID,
		ClientID:   clientID,
		Date:       s.now().Format(venueDateLayout),
		RawNotes:   rawNotes,
		AIAnalysis: analysis,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reports := append([]model.PostShowReport{report}, s.store.PostShowReports(ctx)...)
	if err := s.store.SavePostShowReports(ctx, reports); err != nil {
		return model.PostShowReport{}, err
	}

	if analysisErr != nil {
		return report, nil
	}

	if analysis.VenueUpdates != "" {
		venues := s.store.Venues(ctx)
		for i := range venues {
			if venues[i].ID == venueID {
				venues[i].Notes = appendNote(venues[i].Notes, "[Post-Show Update] "+analysis.VenueUpdates)
				if err := s.store.SaveVenues(ctx, venues); err != nil {
					return model.PostShowReport{}, err
				}
				break
			}
		}
	}

	if analysis.ClientInsights != "" {
		leads := s.store.Leads(ctx)
		for i := range leads {
			if leads[i].ID == clientID {
				leads[i].Notes = appendNote(leads[i].Notes, "[Post-Show Insight] "+analysis.ClientInsights)
				leads[i].Status = model.LeadClient
				if err := s.store.SaveLeads(ctx, leads); err != nil {
					return model.PostShowReport{}, err
				}
				break
			}
		}
	}

	return report, nil
}

// ROI folds the current collections into the time-and-money-saved summary.
func (s *Service) ROI(ctx context.Context) roi.Summary {
	return roi.Compute(roi.Snapshot{
		Leads:     s.store.Leads(ctx),
		Venues:    s.store.Venues(ctx),
		Seo:       s.store.SeoClusters(ctx),
		Social:    s.store.SocialMentions(ctx),
		Backlinks: s.store.Backlinks(ctx),
		Reports:   s.store.PostShowReports(ctx),
		Events:    s.store.Events(ctx),
		Proposals: s.store.Proposals(ctx),
	})
}

// ExportCollection renders a collection as CSV. The returned filename is
// date-stamped from the collection's short name.
func (s *Service) ExportCollection(ctx context.Context, key string) (string, []byte, error) {
	var (
		data []byte
		err  error
	)

	switch key {
	case storage.KeyLeads:
		data, err = export.CSV(s.store.Leads(ctx))
	case storage.KeyEvents:
		data, err = export.CSV(s.store.Events(ctx))
	case storage.KeyPartners:
		data, err = export.CSV(s.store.Partners(ctx))
	case storage.KeyDiscovery:
		data, err = export.CSV(s.store.Agencies(ctx))
	case storage.KeyNurture:
		data, err = export.CSV(s.store.NurtureSequences(ctx))
	case storage.KeyVenues:
		data, err = export.CSV(s.store.Venues(ctx))
	case storage.KeySeo:
		data, err = export.CSV(s.store.SeoClusters(ctx))
	case storage.KeyRankMetrics:
		data, err = export.CSV(s.store.RankMetrics(ctx))
	case storage.KeyBacklinks:
		data, err = export.CSV(s.store.Backlinks(ctx))
	case storage.KeyAudits:
		data, err = export.CSV(s.store.Audits(ctx))
	case storage.KeySocial:
		data, err = export.CSV(s.store.SocialMentions(ctx))
	case storage.KeyCompetitors:
		data, err = export.CSV(s.store.Competitors(ctx))
	case storage.KeyProposals:
		data, err = export.CSV(s.store.Proposals(ctx))
	case storage.KeyPostShowReports:
		data, err = export.CSV(s.store.PostShowReports(ctx))
	default:
		return "", nil, fmt.Errorf("%w: %s", storage.ErrUnknownKey, key)
	}
	if err != nil {
		return "", nil, err
	}

	base := strings.TrimPrefix(key, "thebeat_")
	return export.Filename(base, s.now()), data, nil
}

// CampaignContext returns the shared campaign positioning text.
func (s *Service) CampaignContext(ctx context.Context) string {
	return s.store.CampaignContext(ctx)
}

// SaveCampaignContext replaces the shared campaign positioning text.
func (s *Service) SaveCampaignContext(ctx context.Context, text string) error {
	return s.store.SaveCampaignContext(ctx, text)
}

// ShowPageProgress returns the show-page build progress step.
func (s *Service) ShowPageProgress(ctx context.Context) int {
	return s.store.ShowPageProgress(ctx)
}

// SaveShowPageProgress stores the show-page build progress step.
func (s *Service) SaveShowPageProgress(ctx context.Context, n int) error {
	return s.store.SaveShowPageProgress(ctx, n)
}

// Collection returns a collection's raw JSON for the API layer.
func (s *Service) Collection(ctx context.Context, key string) (json.RawMessage, error) {
	return s.store.RawCollection(ctx, key)
}

// SaveCollection replaces a collection from raw JSON after validating it
// against the collection's record type.
func (s *Service) SaveCollection(ctx context.Context, key string, raw json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.SaveRawCollection(ctx, key, raw)
}

func appendNote(existing, note string) string {
	if existing == "" {
		return note
	}
	return existing + "\n\n" + note
}
