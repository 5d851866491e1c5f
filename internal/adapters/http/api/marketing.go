package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

type venueResearchRequest struct {
	City string `json:"city"`
}

func (s *Server) handleResearchVenues(w http.ResponseWriter, r *http.Request) {
	var req venueResearchRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	venues, err := s.svc.ResearchVenues(r.Context(), req.City)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, venues)
}

func (s *Server) handleSeoOutline(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.RequestSeoOutline(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "queued"})
}

func (s *Server) handleContentDraft(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.RequestContentDraft(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "queued"})
}

func (s *Server) handleBacklinkPitch(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.RequestBacklinkPitch(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "queued"})
}

func (s *Server) handleBacklinkLive(w http.ResponseWriter, r *http.Request) {
	target, err := s.svc.MarkBacklinkLive(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, target)
}

func (s *Server) handleSocialReply(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.RequestSocialReply(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "queued"})
}

type nurtureRequest struct {
	Audience string `json:"audience"`
	Goal     string `json:"goal"`
}

func (s *Server) handleNurture(w http.ResponseWriter, r *http.Request) {
	var req nurtureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if strings.TrimSpace(req.Audience) == "" || strings.TrimSpace(req.Goal) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	seq, err := s.svc.GenerateNurtureSequence(r.Context(), req.Audience, req.Goal)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, seq)
}

func (s *Server) handleCompetitorAnalysis(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.RequestCompetitorAnalysis(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "queued"})
}
