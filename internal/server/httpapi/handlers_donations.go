package httpapi

import (
	"net/http"
	"time"

	"github.com/donorbase/donorbase/internal/server/models"
)

type donationRequest struct {
	Coins     uint64  `json:"coins"`
	IncomeEUR float64 `json:"income_eur"`
	CoOp      string  `json:"co_op"`
}

type donationResponse struct {
	ID        int64   `json:"id"`
	Coins     uint64  `json:"coins"`
	DonatedAt string  `json:"donated_at"`
	IncomeEUR float64 `json:"income_eur"`
	CoOp      string  `json:"co_op"`
}

type idResponse struct {
	ID int64 `json:"id"`
}

func toDonationResponse(d *models.Donation) donationResponse {
	return donationResponse{
		ID:        d.ID,
		Coins:     d.Coins,
		DonatedAt: d.DonatedAt.Format(time.RFC3339),
		IncomeEUR: d.IncomeEUR,
		CoOp:      d.CoOp,
	}
}

func (s *HTTPServer) handleDonationList(w http.ResponseWriter, r *http.Request) {
	list, err := s.donations.List(r.Context())
	if err != nil {
		s.logError(r, "donation list failed", err)
		writeServiceError(w, "DONATIONS", err)
		return
	}

	result := make([]donationResponse, 0, len(list))
	for _, d := range list {
		result = append(result, toDonationResponse(d))
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *HTTPServer) handleDonationGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "DONATIONS")
	if !ok {
		return
	}

	donation, err := s.donations.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, "DONATIONS", err)
		return
	}

	writeJSON(w, http.StatusOK, toDonationResponse(donation))
}

func (s *HTTPServer) handleDonationCreate(w http.ResponseWriter, r *http.Request) {
	var req donationRequest
	if !decodeBody(w, r, "DONATIONS", &req) {
		return
	}

	donation, err := s.donations.Create(r.Context(), req.Coins, req.IncomeEUR, req.CoOp)
	if err != nil {
		s.logError(r, "donation create failed", err)
		writeServiceError(w, "DONATIONS", err)
		return
	}

	writeJSON(w, http.StatusCreated, idResponse{ID: donation.ID})
}

func (s *HTTPServer) handleDonationUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "DONATIONS")
	if !ok {
		return
	}

	var req donationRequest
	if !decodeBody(w, r, "DONATIONS", &req) {
		return
	}

	if err := s.donations.Update(r.Context(), id, req.Coins, req.IncomeEUR, req.CoOp); err != nil {
		writeServiceError(w, "DONATIONS", err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *HTTPServer) handleDonationDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "DONATIONS")
	if !ok {
		return
	}

	if err := s.donations.Delete(r.Context(), id); err != nil {
		writeServiceError(w, "DONATIONS", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
