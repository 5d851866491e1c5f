package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/thebeat/pipeline/internal/domain/model"
)

// scanRequest mirrors the POST /scan payload.
type scanRequest struct {
	City   string `json:"city"`
	Source string `json:"source"`
}

func (r scanRequest) source() model.ScraperSource {
	switch model.ScraperSource(r.Source) {
	case model.SourceConventionCenter, model.SourceGoogleNews, model.SourceEventbrite, model.SourceManual:
		return model.ScraperSource(r.Source)
	default:
		return model.SourceGoogleNews
	}
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	events, err := s.svc.ScanEvents(r.Context(), req.City, req.source())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

type promoteEventRequest struct {
	Notes string `json:"notes"`
}

func (s *Server) handlePromoteEvent(w http.ResponseWriter, r *http.Request) {
	var req promoteEventRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	lead, err := s.svc.PromoteEvent(r.Context(), r.PathValue("id"), req.Notes)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, lead)
}

func (s *Server) handleIgnoreEvent(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.IgnoreEvent(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "ignored"})
}

func (s *Server) handleEventPitch(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.RequestEventPitch(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "queued"})
}

func (s *Server) handleAddLead(w http.ResponseWriter, r *http.Request) {
	var lead model.Lead
	if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if strings.TrimSpace(lead.Name) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	created, err := s.svc.AddLead(r.Context(), lead)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleRequestDraft(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.RequestDraft(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "queued"})
}

func (s *Server) handleMarkContacted(w http.ResponseWriter, r *http.Request) {
	lead, err := s.svc.MarkContacted(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

type leadStatusRequest struct {
	Status     string `json:"status"`
	LossReason string `json:"lossReason"`
}

func (s *Server) handleLeadStatus(w http.ResponseWriter, r *http.Request) {
	var req leadStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	lead, err := s.svc.UpdateLeadStatus(r.Context(), r.PathValue("id"), model.LeadStatus(req.Status), req.LossReason)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (s *Server) handleFollowUps(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.FollowUpsDue(r.Context()))
}
