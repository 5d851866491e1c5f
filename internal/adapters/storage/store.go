package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/thebeat/pipeline/internal/adapters/bus"
	"github.com/thebeat/pipeline/internal/domain/model"
	"github.com/thebeat/pipeline/pkg/logger"
	"github.com/thebeat/pipeline/pkg/metrics"
)

// Store exposes every collection as a whole unit: read the full slice,
// transform, write the full slice back. Each successful save publishes a
// CollectionChanged notification on the bus so other views re-read.
//
// A missing or unparsable stored value silently falls back to the fixed
// default dataset for that key; corruption is never surfaced to callers.
type Store struct {
	backend Backend
	bus     *bus.Bus
	log     logger.Logger
}

// New creates a Store over the given backend.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		log:     logger.Get().Named("store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func readCollection[T any](ctx context.Context, s *Store, key string, defaults []T) []T {
	raw, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.log.Warn(ctx, "store read failed, serving defaults", logger.String("key", key), logger.Error(err))
		metrics.RecordStoreFallback(key)
		return defaults
	}
	if !ok {
		return defaults
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.log.Warn(ctx, "stored value unreadable, serving defaults", logger.String("key", key), logger.Error(err))
		metrics.RecordStoreFallback(key)
		return defaults
	}
	metrics.RecordStoreRead(key)
	return items
}

func writeCollection[T any](ctx context.Context, s *Store, key string, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.backend.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, key, err)
	}
	metrics.RecordStoreWrite(key)
	s.notify(key)
	return nil
}

func (s *Store) notify(key string) {
	if s.bus != nil {
		s.bus.Publish(bus.Change{Key: key})
	}
}

// Leads returns the leads collection.
func (s *Store) Leads(ctx context.Context) []model.Lead {
	return readCollection(ctx, s, KeyLeads, DefaultLeads())
}

// SaveLeads replaces the leads collection.
func (s *Store) SaveLeads(ctx context.Context, items []model.Lead) error {
	return writeCollection(ctx, s, KeyLeads, items)
}

// Events returns the scraped events collection.
func (s *Store) Events(ctx context.Context) []model.ScrapedEvent {
	return readCollection(ctx, s, KeyEvents, DefaultEvents())
}

// SaveEvents replaces the scraped events collection.
func (s *Store) SaveEvents(ctx context.Context, items []model.ScrapedEvent) error {
	return writeCollection(ctx, s, KeyEvents, items)
}

// Partners returns the partners collection.
func (s *Store) Partners(ctx context.Context) []model.Partner {
	return readCollection(ctx, s, KeyPartners, DefaultPartners())
}

// SavePartners replaces the partners collection.
func (s *Store) SavePartners(ctx context.Context, items []model.Partner) error {
	return writeCollection(ctx, s, KeyPartners, items)
}

// Agencies returns the discovered agencies collection.
func (s *Store) Agencies(ctx context.Context) []model.DiscoveredAgency {
	return readCollection(ctx, s, KeyDiscovery, []model.DiscoveredAgency{})
}

// SaveAgencies replaces the discovered agencies collection.
func (s *Store) SaveAgencies(ctx context.Context, items []model.DiscoveredAgency) error {
	return writeCollection(ctx, s, KeyDiscovery, items)
}

// NurtureSequences returns the nurture sequences collection.
func (s *Store) NurtureSequences(ctx context.Context) []model.NurtureSequence {
	return readCollection(ctx, s, KeyNurture, []model.NurtureSequence{})
}

// SaveNurtureSequences replaces the nurture sequences collection.
func (s *Store) SaveNurtureSequences(ctx context.Context, items []model.NurtureSequence) error {
	return writeCollection(ctx, s, KeyNurture, items)
}

// Venues returns the venues collection.
func (s *Store) Venues(ctx context.Context) []model.Venue {
	return readCollection(ctx, s, KeyVenues, DefaultVenues())
}

// SaveVenues replaces the venues collection.
func (s *Store) SaveVenues(ctx context.Context, items []model.Venue) error {
	return writeCollection(ctx, s, KeyVenues, items)
}

// SeoClusters returns the SEO clusters collection.
func (s *Store) SeoClusters(ctx context.Context) []model.SeoCluster {
	return readCollection(ctx, s, KeySeo, DefaultSeoClusters())
}

// SaveSeoClusters replaces the SEO clusters collection.
func (s *Store) SaveSeoClusters(ctx context.Context, items []model.SeoCluster) error {
	return writeCollection(ctx, s, KeySeo, items)
}

// RankMetrics returns the rank metrics collection.
func (s *Store) RankMetrics(ctx context.Context) []model.RankMetric {
	return readCollection(ctx, s, KeyRankMetrics, DefaultRankMetrics())
}

// SaveRankMetrics replaces the rank metrics collection.
func (s *Store) SaveRankMetrics(ctx context.Context, items []model.RankMetric) error {
	return writeCollection(ctx, s, KeyRankMetrics, items)
}

// Backlinks returns the backlink targets collection.
func (s *Store) Backlinks(ctx context.Context) []model.BacklinkTarget {
	return readCollection(ctx, s, KeyBacklinks, DefaultBacklinks())
}

// SaveBacklinks replaces the backlink targets collection.
func (s *Store) SaveBacklinks(ctx context.Context, items []model.BacklinkTarget) error {
	return writeCollection(ctx, s, KeyBacklinks, items)
}

// Audits returns the audit checklist collection.
func (s *Store) Audits(ctx context.Context) []model.AuditTask {
	return readCollection(ctx, s, KeyAudits, DefaultAudits())
}

// SaveAudits replaces the audit checklist collection.
func (s *Store) SaveAudits(ctx context.Context, items []model.AuditTask) error {
	return writeCollection(ctx, s, KeyAudits, items)
}

// SocialMentions returns the social mentions collection.
func (s *Store) SocialMentions(ctx context.Context) []model.SocialMention {
	return readCollection(ctx, s, KeySocial, DefaultSocialMentions())
}

// SaveSocialMentions replaces the social mentions collection.
func (s *Store) SaveSocialMentions(ctx context.Context, items []model.SocialMention) error {
	return writeCollection(ctx, s, KeySocial, items)
}

// Competitors returns the competitors collection.
func (s *Store) Competitors(ctx context.Context) []model.Competitor {
	return readCollection(ctx, s, KeyCompetitors, DefaultCompetitors())
}

// SaveCompetitors replaces the competitors collection.
func (s *Store) SaveCompetitors(ctx context.Context, items []model.Competitor) error {
	return writeCollection(ctx, s, KeyCompetitors, items)
}

// Proposals returns the proposals collection.
func (s *Store) Proposals(ctx context.Context) []model.Proposal {
	return readCollection(ctx, s, KeyProposals, []model.Proposal{})
}

// SaveProposals replaces the proposals collection.
func (s *Store) SaveProposals(ctx context.Context, items []model.Proposal) error {
	return writeCollection(ctx, s, KeyProposals, items)
}

// PostShowReports returns the post-show reports collection.
func (s *Store) PostShowReports(ctx context.Context) []model.PostShowReport {
	return readCollection(ctx, s, KeyPostShowReports, []model.PostShowReport{})
}

// SavePostShowReports replaces the post-show reports collection.
func (s *Store) SavePostShowReports(ctx context.Context, items []model.PostShowReport) error {
	return writeCollection(ctx, s, KeyPostShowReports, items)
}

// CampaignContext returns the free-text campaign context scalar.
func (s *Store) CampaignContext(ctx context.Context) string {
	raw, ok, err := s.backend.Get(ctx, KeyCampaignContext)
	if err != nil || !ok || raw == "" {
		return DefaultCampaignContext
	}
	return raw
}

// SaveCampaignContext replaces the campaign context scalar.
func (s *Store) SaveCampaignContext(ctx context.Context, text string) error {
	if err := s.backend.Set(ctx, KeyCampaignContext, text); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, KeyCampaignContext, err)
	}
	s.notify(KeyCampaignContext)
	return nil
}

// ShowPageProgress returns the show-page build progress counter.
func (s *Store) ShowPageProgress(ctx context.Context) int {
	raw, ok, err := s.backend.Get(ctx, KeyShowPageProgress)
	if err != nil || !ok {
		return DefaultShowPageProgress
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultShowPageProgress
	}
	return n
}

// SaveShowPageProgress replaces the show-page progress counter.
func (s *Store) SaveShowPageProgress(ctx context.Context, n int) error {
	if err := s.backend.Set(ctx, KeyShowPageProgress, strconv.Itoa(n)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, KeyShowPageProgress, err)
	}
	s.notify(KeyShowPageProgress)
	return nil
}

// RawCollection returns the stored JSON for one collection key, falling
// back to the key's default dataset. Used by the export surface and the
// generic collection API.
func (s *Store) RawCollection(ctx context.Context, key string) (json.RawMessage, error) {
	if !isCollectionKey(key) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	raw, ok, err := s.backend.Get(ctx, key)
	if err == nil && ok && json.Valid([]byte(raw)) {
		return json.RawMessage(raw), nil
	}

	fallback, err := json.Marshal(defaultFor(key))
	if err != nil {
		return nil, fmt.Errorf("encode defaults for %s: %w", key, err)
	}
	return fallback, nil
}

// SaveRawCollection validates raw JSON against the key's record type and
// replaces the stored collection. The whole slice is the unit of write, the
// same as the typed savers.
func (s *Store) SaveRawCollection(ctx context.Context, key string, raw json.RawMessage) error {
	switch key {
	case KeyLeads:
		return replaceCollection[model.Lead](ctx, s, key, raw)
	case KeyEvents:
		return replaceCollection[model.ScrapedEvent](ctx, s, key, raw)
	case KeyPartners:
		return replaceCollection[model.Partner](ctx, s, key, raw)
	case KeyDiscovery:
		return replaceCollection[model.DiscoveredAgency](ctx, s, key, raw)
	case KeyNurture:
		return replaceCollection[model.NurtureSequence](ctx, s, key, raw)
	case KeyVenues:
		return replaceCollection[model.Venue](ctx, s, key, raw)
	case KeySeo:
		return replaceCollection[model.SeoCluster](ctx, s, key, raw)
	case KeyRankMetrics:
		return replaceCollection[model.RankMetric](ctx, s, key, raw)
	case KeyBacklinks:
		return replaceCollection[model.BacklinkTarget](ctx, s, key, raw)
	case KeyAudits:
		return replaceCollection[model.AuditTask](ctx, s, key, raw)
	case KeySocial:
		return replaceCollection[model.SocialMention](ctx, s, key, raw)
	case KeyCompetitors:
		return replaceCollection[model.Competitor](ctx, s, key, raw)
	case KeyProposals:
		return replaceCollection[model.Proposal](ctx, s, key, raw)
	case KeyPostShowReports:
		return replaceCollection[model.PostShowReport](ctx, s, key, raw)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

func replaceCollection[T any](ctx context.Context, s *Store, key string, raw json.RawMessage) error {
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return writeCollection(ctx, s, key, items)
}

func isCollectionKey(key string) bool {
	for _, k := range CollectionKeys() {
		if k == key {
			return true
		}
	}
	return false
}
