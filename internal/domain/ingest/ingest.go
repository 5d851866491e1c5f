// Package ingest merges newly discovered raw records into existing
// collections: identity assignment, field defaults, scoring, and
// name-based deduplication.
//
// Merge functions never mutate their inputs; they return a fresh slice with
// accepted records prepended (most recent first) and the relative order of
// previously accepted records untouched.
package ingest

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/thebeat/pipeline/internal/domain/model"
	"github.com/thebeat/pipeline/internal/domain/scoring"
)

// Fallback values for missing raw fields.
const (
	defaultEventName   = "Unknown Event"
	defaultHostCompany = "Unknown Host"
	defaultEventType   = "Conference"
	defaultAgencyName  = "Unknown Agency"

	tier1FitThreshold = 8
	tier2FitThreshold = 5

	minFitScore = 1
	maxFitScore = 10
)

// Merger turns raw candidate records into stored entities.
type Merger struct {
	now    func() time.Time
	newID  func(prefix string) string
	engine *scoring.Engine
}

// New creates a Merger. The scoring engine and the identifier generator
// share the merger's clock unless supplied explicitly.
func New(opts ...Option) *Merger {
	m := &Merger{
		now: time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.newID == nil {
		m.newID = func(prefix string) string { return NewIDAt(m.now(), prefix) }
	}
	if m.engine == nil {
		m.engine = scoring.New(scoring.WithClock(m.now))
	}

	return m
}

// NewID builds an identifier stamped with the wall clock.
func NewID(prefix string) string {
	return NewIDAt(time.Now(), prefix)
}

// NewIDAt builds a time-prefixed, collision-tolerant identifier such as
// "evt-1756600000000-1a2b3c4d".
func NewIDAt(t time.Time, prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, t.UnixMilli(), uuid.NewString()[:8])
}

// MergeEvents scores and merges a batch of raw events into the existing
// collection. A candidate whose display name matches an existing record's
// name exactly is dropped; no fuzzy or cross-field matching.
//
// fallbackLocation fills a missing location, typically the scanned city.
func (m *Merger) MergeEvents(existing []model.ScrapedEvent, batch []model.RawEvent, source model.ScraperSource, fallbackLocation string) []model.ScrapedEvent {
	seen := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		seen[e.EventName] = struct{}{}
	}

	accepted := make([]model.ScrapedEvent, 0, len(batch))
	for _, raw := range batch {
		ev := m.processEvent(raw, source, fallbackLocation)
		if _, dup := seen[ev.EventName]; dup {
			continue
		}
		seen[ev.EventName] = struct{}{}
		accepted = append(accepted, ev)
	}

	merged := make([]model.ScrapedEvent, 0, len(accepted)+len(existing))
	merged = append(merged, accepted...)
	merged = append(merged, existing...)
	return merged
}

func (m *Merger) processEvent(raw model.RawEvent, source model.ScraperSource, fallbackLocation string) model.ScrapedEvent {
	result := m.engine.Score(scoring.Input{
		HostCompany: raw.HostCompany,
		EventDate:   raw.EventDate,
		Attendees:   raw.Attendees,
	})

	ev := model.ScrapedEvent{
		ID:             m.newID("evt"),
		EventName:      orDefault(raw.EventName, defaultEventName),
		HostCompany:    orDefault(raw.HostCompany, defaultHostCompany),
		EventDate:      raw.EventDate,
		LeadTimeMonths: scoring.LeadTimeMonths(m.now(), raw.EventDate),
		Location:       orDefault(raw.Location, fallbackLocation),
		Attendees:      raw.Attendees,
		SourceURL:      raw.SourceURL,
		SourceType:     source,
		Description:    raw.Description,
		IsFortune500:   result.IsFortune500,
		EventType:      orDefault(raw.EventType, defaultEventType),
		Score:          result.Score,
		Priority:       scoring.PriorityFor(result.Score),
		ScoreBreakdown: result.Breakdown,
		Status:         model.EventRaw,
	}
	return ev
}

// MergeAgencies merges a discovery batch into the existing agency
// collection using the same name-based dedupe policy as events.
func (m *Merger) MergeAgencies(existing []model.DiscoveredAgency, batch []model.RawAgency) []model.DiscoveredAgency {
	seen := make(map[string]struct{}, len(existing))
	for _, a := range existing {
		seen[a.Name] = struct{}{}
	}

	accepted := make([]model.DiscoveredAgency, 0, len(batch))
	for _, raw := range batch {
		agency := m.processAgency(raw)
		if _, dup := seen[agency.Name]; dup {
			continue
		}
		seen[agency.Name] = struct{}{}
		accepted = append(accepted, agency)
	}

	merged := make([]model.DiscoveredAgency, 0, len(accepted)+len(existing))
	merged = append(merged, accepted...)
	merged = append(merged, existing...)
	return merged
}

func (m *Merger) processAgency(raw model.RawAgency) model.DiscoveredAgency {
	fit := raw.FitScore
	if fit < minFitScore {
		fit = minFitScore
	}
	if fit > maxFitScore {
		fit = maxFitScore
	}

	contacts := make([]model.DiscoveredContact, len(raw.Contacts))
	copy(contacts, raw.Contacts)

	return model.DiscoveredAgency{
		ID:             m.newID("agc"),
		Name:           orDefault(raw.Name, defaultAgencyName),
		Website:        raw.Website,
		Location:       raw.Location,
		Specialization: raw.Specialization,
		Size:           agencySize(raw.Size),
		FitScore:       fit,
		FitReason:      raw.FitReason,
		Contacts:       contacts,
		Status:         model.AgencyUnverified,
		Tier:           TierFor(fit),
	}
}

// TierFor derives the agency tier from a fit score.
func TierFor(fit int) model.AgencyTier {
	switch {
	case fit >= tier1FitThreshold:
		return model.Tier1
	case fit >= tier2FitThreshold:
		return model.Tier2
	default:
		return model.Tier3
	}
}

func agencySize(s string) model.AgencySize {
	switch model.AgencySize(s) {
	case model.SizeBoutique, model.SizeMidMarket, model.SizeGlobal:
		return model.AgencySize(s)
	default:
		return model.SizeMidMarket
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
