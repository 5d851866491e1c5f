package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/thebeat/pipeline/internal/adapters/genai"
	"github.com/thebeat/pipeline/internal/adapters/mq/queue"
	"github.com/thebeat/pipeline/internal/domain/lifecycle"
	"github.com/thebeat/pipeline/internal/domain/model"
	"github.com/thebeat/pipeline/pkg/logger"
	"github.com/thebeat/pipeline/pkg/metrics"
)

const venueDateLayout = "2006-01-02"

// ResearchVenues pulls technical specs for venues in a city and merges them
// into the stored collection, deduplicating on venue name. Degrades to the
// current collection when the credential is missing.
func (s *Service) ResearchVenues(ctx context.Context, city string) ([]model.Venue, error) {
	if city == "" {
		city = s.defaultCity
	}

	found, err := s.collab.ResearchVenues(ctx, city)
	if err != nil {
		if errors.Is(err, genai.ErrMissingCredential) {
			s.logger.Warn(ctx, "venue research skipped, credential missing", logger.String("city", city))
			return s.store.Venues(ctx), nil
		}
		return nil, fmt.Errorf("research venues: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.store.Venues(ctx)
	seen := make(map[string]struct{}, len(existing))
	for _, v := range existing {
		seen[v.Name] = struct{}{}
	}

	scraped := s.now().Format(venueDateLayout)
	accepted := make([]model.Venue, 0, len(found))
	for _, v := range found {
		if _, dup := seen[v.Name]; dup {
			metrics.RecordDuplicateDropped("venues")
			continue
		}
		seen[v.Name] = struct{}{}
		v.ID = s.newID("ven")
		v.LastScraped = scraped
		accepted = append(accepted, v)
	}
	metrics.RecordIngested("venues", len(accepted))

	merged := append(accepted, existing...)
	if err := s.store.SaveVenues(ctx, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// RequestSeoOutline queues outline generation for a keyword cluster.
func (s *Service) RequestSeoOutline(ctx context.Context, clusterID string) error {
	if _, ok := findByID(s.store.SeoClusters(ctx), clusterID, func(c model.SeoCluster) string { return c.ID }); !ok {
		return fmt.Errorf("%w: cluster %s", ErrNotFound, clusterID)
	}
	return s.enqueue(ctx, queue.KindSeoOutline, clusterID)
}

// RequestContentDraft queues full-draft generation for a cluster that
// already has an outline.
func (s *Service) RequestContentDraft(ctx context.Context, clusterID string) error {
	cluster, ok := findByID(s.store.SeoClusters(ctx), clusterID, func(c model.SeoCluster) string { return c.ID })
	if !ok {
		return fmt.Errorf("%w: cluster %s", ErrNotFound, clusterID)
	}
	if cluster.AIOutline == "" {
		return fmt.Errorf("cluster %s has no outline yet", clusterID)
	}
	return s.enqueue(ctx, queue.KindContentDraft, clusterID)
}

// RequestBacklinkPitch queues pitch generation for a backlink target.
func (s *Service) RequestBacklinkPitch(ctx context.Context, targetID string) error {
	if _, ok := findByID(s.store.Backlinks(ctx), targetID, func(b model.BacklinkTarget) string { return b.ID }); !ok {
		return fmt.Errorf("%w: backlink %s", ErrNotFound, targetID)
	}
	return s.enqueue(ctx, queue.KindBacklinkPitch, targetID)
}

// MarkBacklinkLive marks a pitched backlink target as live.
func (s *Service) MarkBacklinkLive(ctx context.Context, targetID string) (model.BacklinkTarget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	targets := s.store.Backlinks(ctx)
	for i, t := range targets {
		if t.ID == targetID {
			targets[i] = lifecycle.MarkLinkLive(t)
			if err := s.store.SaveBacklinks(ctx, targets); err != nil {
				return model.BacklinkTarget{}, err
			}
			return targets[i], nil
		}
	}
	return model.BacklinkTarget{}, fmt.Errorf("%w: backlink %s", ErrNotFound, targetID)
}

// RequestSocialReply queues reply drafting for a social mention.
func (s *Service) RequestSocialReply(ctx context.Context, mentionID string) error {
	if _, ok := findByID(s.store.SocialMentions(ctx), mentionID, func(m model.SocialMention) string { return m.ID }); !ok {
		return fmt.Errorf("%w: mention %s", ErrNotFound, mentionID)
	}
	return s.enqueue(ctx, queue.KindSocialReply, mentionID)
}

// GenerateNurtureSequence drafts a drip campaign synchronously and stores
// it. Unlike scans this is a direct user request, so failures surface as
// errors instead of degrading.
func (s *Service) GenerateNurtureSequence(ctx context.Context, audience, goal string) (model.NurtureSequence, error) {
	emails, err := s.collab.NurtureSequence(ctx, audience, goal)
	if err != nil {
		return model.NurtureSequence{}, fmt.Errorf("generate nurture sequence: %w", err)
	}

	seq := model.NurtureSequence{
		ID:             s.newID("nur"),
		Name:           goal,
		TargetAudience: audience,
		Emails:         emails,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sequences := append([]model.NurtureSequence{seq}, s.store.NurtureSequences(ctx)...)
	if err := s.store.SaveNurtureSequences(ctx, sequences); err != nil {
		return model.NurtureSequence{}, err
	}
	return seq, nil
}

// RequestCompetitorAnalysis queues a strengths/weaknesses/opportunity
// analysis for a tracked competitor.
func (s *Service) RequestCompetitorAnalysis(ctx context.Context, competitorID string) error {
	if _, ok := findByID(s.store.Competitors(ctx), competitorID, func(c model.Competitor) string { return c.ID }); !ok {
		return fmt.Errorf("%w: competitor %s", ErrNotFound, competitorID)
	}
	return s.enqueue(ctx, queue.KindCompetitorAnalysis, competitorID)
}
