package httpapi

import (
	"net/http"

	"github.com/donorbase/donorbase/internal/server/models"
)

type supporterRequest struct {
	Name       string `json:"name"`
	DonationID int64  `json:"donation_id"`
}

type supporterResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	DonationID int64  `json:"donation_id"`
}

func toSupporterResponse(sp *models.Supporter) supporterResponse {
	return supporterResponse{ID: sp.ID, Name: sp.Name, DonationID: sp.DonationID}
}

func (s *HTTPServer) handleSupporterList(w http.ResponseWriter, r *http.Request) {
	list, err := s.supporters.List(r.Context())
	if err != nil {
		s.logError(r, "supporter list failed", err)
		writeServiceError(w, "SUPPORTERS", err)
		return
	}

	result := make([]supporterResponse, 0, len(list))
	for _, sp := range list {
		result = append(result, toSupporterResponse(sp))
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *HTTPServer) handleSupporterGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "SUPPORTERS")
	if !ok {
		return
	}

	supporter, err := s.supporters.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, "SUPPORTERS", err)
		return
	}

	writeJSON(w, http.StatusOK, toSupporterResponse(supporter))
}

func (s *HTTPServer) handleSupporterCreate(w http.ResponseWriter, r *http.Request) {
	var req supporterRequest
	if !decodeBody(w, r, "SUPPORTERS", &req) {
		return
	}

	supporter, err := s.supporters.Create(r.Context(), req.Name, req.DonationID)
	if err != nil {
		s.logError(r, "supporter create failed", err)
		writeServiceError(w, "SUPPORTERS", err)
		return
	}

	writeJSON(w, http.StatusCreated, idResponse{ID: supporter.ID})
}

func (s *HTTPServer) handleSupporterUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "SUPPORTERS")
	if !ok {
		return
	}

	var req supporterRequest
	if !decodeBody(w, r, "SUPPORTERS", &req) {
		return
	}

	if err := s.supporters.Update(r.Context(), id, req.Name, req.DonationID); err != nil {
		writeServiceError(w, "SUPPORTERS", err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *HTTPServer) handleSupporterDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "SUPPORTERS")
	if !ok {
		return
	}

	if err := s.supporters.Delete(r.Context(), id); err != nil {
		writeServiceError(w, "SUPPORTERS", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
