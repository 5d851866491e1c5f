package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/thebeat/pipeline/internal/adapters/genai"
	"github.com/thebeat/pipeline/internal/domain/lifecycle"
	"github.com/thebeat/pipeline/internal/domain/model"
	"github.com/thebeat/pipeline/pkg/logger"
	"github.com/thebeat/pipeline/pkg/metrics"
)

// DiscoverAgencies runs an agency discovery pass and merges the candidates
// into the stored collection. Degrades like ScanEvents when the credential
// is missing.
func (s *Service) DiscoverAgencies(ctx context.Context, location, agencyType, size string) ([]model.DiscoveredAgency, error) {
	if location == "" {
		location = s.defaultCity
	}

	raw, err := s.collab.DiscoverAgencies(ctx, location, agencyType, size)
	if err != nil {
		if errors.Is(err, genai.ErrMissingCredential) {
			s.logger.Warn(ctx, "discovery skipped, credential missing", logger.String("location", location))
			return s.store.Agencies(ctx), nil
		}
		return nil, fmt.Errorf("discover agencies: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.store.Agencies(ctx)
	merged := s.merger.MergeAgencies(existing, raw)

	accepted := len(merged) - len(existing)
	metrics.RecordIngested("agencies", accepted)
	for i := 0; i < len(raw)-accepted; i++ {
		metrics.RecordDuplicateDropped("agencies")
	}

	if err := s.store.SaveAgencies(ctx, merged); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "discovery complete",
		logger.String("location", location),
		logger.Int("found", len(raw)),
		logger.Int("accepted", accepted),
	)
	return merged, nil
}

// PromoteAgencyToLead converts a discovered agency's first contact into a
// lead and marks the agency Promoted.
func (s *Service) PromoteAgencyToLead(ctx context.Context, agencyID string) (model.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	agencies := s.store.Agencies(ctx)
	idx := indexOfAgency(agencies, agencyID)
	if idx < 0 {
		return model.Lead{}, fmt.Errorf("%w: agency %s", ErrNotFound, agencyID)
	}

	lead, promoted := s.lifecycle.PromoteAgencyToLead(agencies[idx])
	agencies[idx] = promoted

	if err := s.store.SaveAgencies(ctx, agencies); err != nil {
		return model.Lead{}, err
	}
	leads := append([]model.Lead{lead}, s.store.Leads(ctx)...)
	if err := s.store.SaveLeads(ctx, leads); err != nil {
		return model.Lead{}, err
	}
	return lead, nil
}

// PromoteAgencyToPartner converts a discovered agency into a referral
// partner and marks the agency Promoted.
func (s *Service) PromoteAgencyToPartner(ctx context.Context, agencyID string) (model.Partner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	agencies := s.store.Agencies(ctx)
	idx := indexOfAgency(agencies, agencyID)
	if idx < 0 {
		return model.Partner{}, fmt.Errorf("%w: agency %s", ErrNotFound, agencyID)
	}

	partner, promoted := s.lifecycle.PromoteAgencyToPartner(agencies[idx])
	agencies[idx] = promoted

	if err := s.store.SaveAgencies(ctx, agencies); err != nil {
		return model.Partner{}, err
	}
	partners := append([]model.Partner{partner}, s.store.Partners(ctx)...)
	if err := s.store.SavePartners(ctx, partners); err != nil {
		return model.Partner{}, err
	}
	return partner, nil
}

// DiscardAgency marks an agency Discarded. The record stays in the
// collection for audit.
func (s *Service) DiscardAgency(ctx context.Context, agencyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	agencies := s.store.Agencies(ctx)
	idx := indexOfAgency(agencies, agencyID)
	if idx < 0 {
		return fmt.Errorf("%w: agency %s", ErrNotFound, agencyID)
	}

	agencies[idx] = lifecycle.DiscardAgency(agencies[idx])
	return s.store.SaveAgencies(ctx, agencies)
}

func indexOfAgency(agencies []model.DiscoveredAgency, id string) int {
	for i := range agencies {
		if agencies[i].ID == id {
			return i
		}
	}
	return -1
}
