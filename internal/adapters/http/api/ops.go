package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/thebeat/pipeline/internal/adapters/export"
	"github.com/thebeat/pipeline/internal/adapters/storage"
)

type proposalRequest struct {
	ClientName   string `json:"clientName"`
	EventName    string `json:"eventName"`
	Budget       string `json:"budget"`
	AudienceSize int    `json:"audienceSize"`
}

func (s *Server) handleCreateProposal(w http.ResponseWriter, r *http.Request) {
	var req proposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if strings.TrimSpace(req.ClientName) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	proposal, err := s.svc.CreateProposal(r.Context(), req.ClientName, req.EventName, req.Budget, req.AudienceSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, proposal)
}

func (s *Server) handleProposalOutline(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.RequestProposalOutline(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "queued"})
}

type reportRequest struct {
	ShowName string `json:"showName"`
	VenueID  string `json:"venueId"`
	ClientID string `json:"clientId"`
	RawNotes string `json:"rawNotes"`
}

func (s *Server) handleSaveReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if strings.TrimSpace(req.RawNotes) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	report, err := s.svc.SavePostShowReport(r.Context(), req.ShowName, req.VenueID, req.ClientID, req.RawNotes)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

func (s *Server) handleROI(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.ROI(r.Context()))
}

func (s *Server) handleGetCollection(w http.ResponseWriter, r *http.Request) {
	raw, err := s.svc.Collection(r.Context(), r.PathValue("key"))
	if err != nil {
		if errors.Is(err, storage.ErrUnknownKey) {
			writeError(w, http.StatusNotFound, "unknown_key", err)
			return
		}
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(raw)
}

func (s *Server) handlePutCollection(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err := s.svc.SaveCollection(r.Context(), r.PathValue("key"), raw); err != nil {
		if errors.Is(err, storage.ErrUnknownKey) {
			writeError(w, http.StatusNotFound, "unknown_key", err)
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "saved"})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	name, data, err := s.svc.ExportCollection(r.Context(), r.PathValue("key"))
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUnknownKey):
			writeError(w, http.StatusNotFound, "unknown_key", err)
		case errors.Is(err, export.ErrNoRecords):
			writeError(w, http.StatusConflict, "no_records", err)
		default:
			writeServiceError(w, err)
		}
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	_, _ = w.Write(data)
}

type campaignContextBody struct {
	Text string `json:"text"`
}

func (s *Server) handleGetCampaignContext(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, campaignContextBody{Text: s.svc.CampaignContext(r.Context())})
}

func (s *Server) handlePutCampaignContext(w http.ResponseWriter, r *http.Request) {
	var body campaignContextBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err := s.svc.SaveCampaignContext(r.Context(), body.Text); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "saved"})
}

type showProgressBody struct {
	Step int `json:"step"`
}

func (s *Server) handleGetShowProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, showProgressBody{Step: s.svc.ShowPageProgress(r.Context())})
}

func (s *Server) handlePutShowProgress(w http.ResponseWriter, r *http.Request) {
	var body showProgressBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err := s.svc.SaveShowPageProgress(r.Context(), body.Step); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "saved"})
}
