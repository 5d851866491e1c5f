// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/thebeat/pipeline/internal/adapters/bus"
	"github.com/thebeat/pipeline/internal/app"
	"github.com/thebeat/pipeline/internal/domain/lifecycle"
	"github.com/thebeat/pipeline/internal/domain/model"
	"github.com/thebeat/pipeline/internal/domain/roi"
)

// Service bundles the pipeline operations the handlers depend on. Using an
// interface bundle keeps the handler layer loosely coupled to the app
// implementation.
type Service interface {
	ScanEvents(ctx context.Context, city string, source model.ScraperSource) ([]model.ScrapedEvent, error)
	PromoteEvent(ctx context.Context, eventID, userNotes string) (model.Lead, error)
	IgnoreEvent(ctx context.Context, eventID string) error
	RequestEventPitch(ctx context.Context, eventID string) error

	AddLead(ctx context.Context, lead model.Lead) (model.Lead, error)
	RequestDraft(ctx context.Context, leadID string) error
	MarkContacted(ctx context.Context, leadID string) (model.Lead, error)
	UpdateLeadStatus(ctx context.Context, leadID string, status model.LeadStatus, lossReason string) (model.Lead, error)
	FollowUpsDue(ctx context.Context) []model.Lead

	DiscoverAgencies(ctx context.Context, location, agencyType, size string) ([]model.DiscoveredAgency, error)
	PromoteAgencyToLead(ctx context.Context, agencyID string) (model.Lead, error)
	PromoteAgencyToPartner(ctx context.Context, agencyID string) (model.Partner, error)
	DiscardAgency(ctx context.Context, agencyID string) error

	ResearchVenues(ctx context.Context, city string) ([]model.Venue, error)
	RequestSeoOutline(ctx context.Context, clusterID string) error
	RequestContentDraft(ctx context.Context, clusterID string) error
	RequestBacklinkPitch(ctx context.Context, targetID string) error
	MarkBacklinkLive(ctx context.Context, targetID string) (model.BacklinkTarget, error)
	RequestSocialReply(ctx context.Context, mentionID string) error
	GenerateNurtureSequence(ctx context.Context, audience, goal string) (model.NurtureSequence, error)
	RequestCompetitorAnalysis(ctx context.Context, competitorID string) error

	CreateProposal(ctx context.Context, clientName, eventName, budget string, audienceSize int) (model.Proposal, error)
	RequestProposalOutline(ctx context.Context, proposalID string) error
	SavePostShowReport(ctx context.Context, showName, venueID, clientID, rawNotes string) (model.PostShowReport, error)

	ROI(ctx context.Context) roi.Summary
	ExportCollection(ctx context.Context, key string) (string, []byte, error)

	Collection(ctx context.Context, key string) (json.RawMessage, error)
	SaveCollection(ctx context.Context, key string, raw json.RawMessage) error
	CampaignContext(ctx context.Context) string
	SaveCampaignContext(ctx context.Context, text string) error
	ShowPageProgress(ctx context.Context) int
	SaveShowPageProgress(ctx context.Context, n int) error

	Subscribe(ctx context.Context) (<-chan bus.Change, func())
}

// Server wires HTTP routes for the business API.
type Server struct {
	svc   Service
	stats StatsProvider
}

// NewServer creates a new API server over the pipeline service.
func NewServer(svc Service, stats StatsProvider) *Server {
	return &Server{svc: svc, stats: stats}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.handleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", s.handleMetrics)
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.handleStats, "stats"))
	mux.HandleFunc("GET /subscribe", s.handleSubscribe)

	mux.HandleFunc("POST /scan", MetricsMiddleware(s.handleScan, "scan"))
	mux.HandleFunc("POST /events/{id}/promote", MetricsMiddleware(s.handlePromoteEvent, "event_promote"))
	mux.HandleFunc("POST /events/{id}/ignore", MetricsMiddleware(s.handleIgnoreEvent, "event_ignore"))
	mux.HandleFunc("POST /events/{id}/pitch", MetricsMiddleware(s.handleEventPitch, "event_pitch"))

	mux.HandleFunc("POST /leads", MetricsMiddleware(s.handleAddLead, "lead_add"))
	mux.HandleFunc("POST /leads/{id}/draft", MetricsMiddleware(s.handleRequestDraft, "lead_draft"))
	mux.HandleFunc("POST /leads/{id}/contacted", MetricsMiddleware(s.handleMarkContacted, "lead_contacted"))
	mux.HandleFunc("POST /leads/{id}/status", MetricsMiddleware(s.handleLeadStatus, "lead_status"))
	mux.HandleFunc("GET /leads/followups", MetricsMiddleware(s.handleFollowUps, "lead_followups"))

	mux.HandleFunc("POST /discover", MetricsMiddleware(s.handleDiscover, "discover"))
	mux.HandleFunc("POST /agencies/{id}/promote-lead", MetricsMiddleware(s.handleAgencyToLead, "agency_promote_lead"))
	mux.HandleFunc("POST /agencies/{id}/promote-partner", MetricsMiddleware(s.handleAgencyToPartner, "agency_promote_partner"))
	mux.HandleFunc("POST /agencies/{id}/discard", MetricsMiddleware(s.handleDiscardAgency, "agency_discard"))

	mux.HandleFunc("POST /venues/research", MetricsMiddleware(s.handleResearchVenues, "venue_research"))
	mux.HandleFunc("POST /seo/{id}/outline", MetricsMiddleware(s.handleSeoOutline, "seo_outline"))
	mux.HandleFunc("POST /seo/{id}/draft", MetricsMiddleware(s.handleContentDraft, "seo_draft"))
	mux.HandleFunc("POST /backlinks/{id}/pitch", MetricsMiddleware(s.handleBacklinkPitch, "backlink_pitch"))
	mux.HandleFunc("POST /backlinks/{id}/live", MetricsMiddleware(s.handleBacklinkLive, "backlink_live"))
	mux.HandleFunc("POST /social/{id}/reply", MetricsMiddleware(s.handleSocialReply, "social_reply"))
	mux.HandleFunc("POST /nurture", MetricsMiddleware(s.handleNurture, "nurture"))
	mux.HandleFunc("POST /competitors/{id}/analyze", MetricsMiddleware(s.handleCompetitorAnalysis, "competitor_analyze"))

	mux.HandleFunc("POST /proposals", MetricsMiddleware(s.handleCreateProposal, "proposal_create"))
	mux.HandleFunc("POST /proposals/{id}/outline", MetricsMiddleware(s.handleProposalOutline, "proposal_outline"))
	mux.HandleFunc("POST /reports", MetricsMiddleware(s.handleSaveReport, "report_save"))

	mux.HandleFunc("GET /roi", MetricsMiddleware(s.handleROI, "roi"))
	mux.HandleFunc("GET /collections/{key}", MetricsMiddleware(s.handleGetCollection, "collection_get"))
	mux.HandleFunc("PUT /collections/{key}", MetricsMiddleware(s.handlePutCollection, "collection_put"))
	mux.HandleFunc("GET /collections/{key}/export", MetricsMiddleware(s.handleExport, "collection_export"))

	mux.HandleFunc("GET /settings/campaign-context", MetricsMiddleware(s.handleGetCampaignContext, "campaign_context"))
	mux.HandleFunc("PUT /settings/campaign-context", MetricsMiddleware(s.handlePutCampaignContext, "campaign_context"))
	mux.HandleFunc("GET /settings/show-progress", MetricsMiddleware(s.handleGetShowProgress, "show_progress"))
	mux.HandleFunc("PUT /settings/show-progress", MetricsMiddleware(s.handlePutShowProgress, "show_progress"))
}

type ackResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps domain sentinels onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, app.ErrQueueFull):
		writeError(w, http.StatusTooManyRequests, "backpressure", err)
	case errors.Is(err, lifecycle.ErrAlreadyPromoted):
		writeError(w, http.StatusConflict, "already_promoted", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
