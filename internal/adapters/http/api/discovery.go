package api

import (
	"encoding/json"
	"net/http"
)

// discoverRequest mirrors the POST /discover payload.
type discoverRequest struct {
	Location string `json:"location"`
	Type     string `json:"type"`
	Size     string `json:"size"`
}

func (s *Server) handleDiscover(w http.ResponseWriter, r *http.Request) {
	var req discoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	agencies, err := s.svc.DiscoverAgencies(r.Context(), req.Location, req.Type, req.Size)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agencies)
}

func (s *Server) handleAgencyToLead(w http.ResponseWriter, r *http.Request) {
	lead, err := s.svc.PromoteAgencyToLead(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, lead)
}

func (s *Server) handleAgencyToPartner(w http.ResponseWriter, r *http.Request) {
	partner, err := s.svc.PromoteAgencyToPartner(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, partner)
}

func (s *Server) handleDiscardAgency(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DiscardAgency(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "discarded"})
}
