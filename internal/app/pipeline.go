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

// ScanEvents runs an event radar scan for a city and merges the results into
// the stored collection. An empty city falls back to the configured default.
//
// A missing credential degrades to a no-op scan: the collection is returned
// unchanged and the condition is logged, never surfaced as a request error.
func (s *Service) ScanEvents(ctx context.Context, city string, source model.ScraperSource) ([]model.ScrapedEvent, error) {
	if city == "" {
		city = s.defaultCity
	}

	raw, err := s.collab.ScrapeEvents(ctx, city, source)
	if err != nil {
		if errors.Is(err, genai.ErrMissingCredential) {
			s.logger.Warn(ctx, "scan skipped, credential missing", logger.String("city", city))
			return s.store.Events(ctx), nil
		}
		return nil, fmt.Errorf("scan events: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.store.Events(ctx)
	merged := s.merger.MergeEvents(existing, raw, source, city)

	accepted := len(merged) - len(existing)
	metrics.RecordIngested("events", accepted)
	for i := 0; i < len(raw)-accepted; i++ {
		metrics.RecordDuplicateDropped("events")
	}

	if err := s.store.SaveEvents(ctx, merged); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "scan complete",
		logger.String("city", city),
		logger.String("source", string(source)),
		logger.Int("found", len(raw)),
		logger.Int("accepted", accepted),
	)
	return merged, nil
}

// PromoteEvent converts an event into a lead and marks the event Promoted.
func (s *Service) PromoteEvent(ctx context.Context, eventID, userNotes string) (model.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.store.Events(ctx)
	idx := -1
	for i := range events {
		if events[i].ID == eventID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.Lead{}, fmt.Errorf("%w: event %s", ErrNotFound, eventID)
	}

	lead, promoted, err := s.lifecycle.PromoteEvent(events[idx], userNotes)
	if err != nil {
		return model.Lead{}, err
	}
	events[idx] = promoted

	if err := s.store.SaveEvents(ctx, events); err != nil {
		return model.Lead{}, err
	}
	leads := append([]model.Lead{lead}, s.store.Leads(ctx)...)
	if err := s.store.SaveLeads(ctx, leads); err != nil {
		return model.Lead{}, err
	}
	return lead, nil
}

// IgnoreEvent removes an event from the collection outright.
func (s *Service) IgnoreEvent(ctx context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.store.Events(ctx)
	remaining := lifecycle.IgnoreEvent(events, eventID)
	if len(remaining) == len(events) {
		return fmt.Errorf("%w: event %s", ErrNotFound, eventID)
	}
	return s.store.SaveEvents(ctx, remaining)
}

// AddLead stores a manually entered lead, assigning identity and default
// status when absent. The new lead is prepended.
func (s *Service) AddLead(ctx context.Context, lead model.Lead) (model.Lead, error) {
	if lead.ID == "" {
		lead.ID = s.newID("lead")
	}
	if lead.Status == "" {
		lead.Status = model.LeadResearch
	}
	if lead.Source == "" {
		lead.Source = model.SourceWebsite
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	leads := append([]model.Lead{lead}, s.store.Leads(ctx)...)
	if err := s.store.SaveLeads(ctx, leads); err != nil {
		return model.Lead{}, err
	}
	return lead, nil
}

// RequestDraft queues outreach email generation for a lead.
func (s *Service) RequestDraft(ctx context.Context, leadID string) error {
	if _, ok := findByID(s.store.Leads(ctx), leadID, func(l model.Lead) string { return l.ID }); !ok {
		return fmt.Errorf("%w: lead %s", ErrNotFound, leadID)
	}
	return s.enqueue(ctx, queue.KindOutreachDraft, leadID)
}

// RequestEventPitch queues a host-company pitch for a scanned event.
func (s *Service) RequestEventPitch(ctx context.Context, eventID string) error {
	if _, ok := findByID(s.store.Events(ctx), eventID, func(e model.ScrapedEvent) string { return e.ID }); !ok {
		return fmt.Errorf("%w: event %s", ErrNotFound, eventID)
	}
	return s.enqueue(ctx, queue.KindEventPitch, eventID)
}

// MarkContacted stamps a lead's outreach date and schedules its follow-up.
func (s *Service) MarkContacted(ctx context.Context, leadID string) (model.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	leads := s.store.Leads(ctx)
	for i, l := range leads {
		if l.ID == leadID {
			leads[i] = s.lifecycle.MarkContacted(l)
			if err := s.store.SaveLeads(ctx, leads); err != nil {
				return model.Lead{}, err
			}
			return leads[i], nil
		}
	}
	return model.Lead{}, fmt.Errorf("%w: lead %s", ErrNotFound, leadID)
}

// UpdateLeadStatus moves a lead to an explicit status. A Lost status records
// the loss reason alongside.
func (s *Service) UpdateLeadStatus(ctx context.Context, leadID string, status model.LeadStatus, lossReason string) (model.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	leads := s.store.Leads(ctx)
	for i := range leads {
		if leads[i].ID == leadID {
			leads[i].Status = status
			if status == model.LeadLost {
				leads[i].LossReason = lossReason
			}
			if err := s.store.SaveLeads(ctx, leads); err != nil {
				return model.Lead{}, err
			}
			return leads[i], nil
		}
	}
	return model.Lead{}, fmt.Errorf("%w: lead %s", ErrNotFound, leadID)
}

// FollowUpsDue lists contacted leads whose follow-up window has elapsed.
// The due state is derived on read, never stored.
func (s *Service) FollowUpsDue(ctx context.Context) []model.Lead {
	now := s.now()
	due := make([]model.Lead, 0)
	for _, l := range s.store.Leads(ctx) {
		if lifecycle.FollowUpDue(l, now) {
			due = append(due, l)
		}
	}
	return due
}
