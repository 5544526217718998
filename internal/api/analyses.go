package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/meur/caseforge/internal/analysis"
	"github.com/meur/caseforge/internal/economics"
	"github.com/meur/caseforge/internal/models"
	"go.uber.org/zap"
)

// analysisResponse is returned after a case page has been analysed
type analysisResponse struct {
	ID        string          `json:"id"`
	Report    string          `json:"report"` // URL of the text report
	CaseName  string          `json:"case_name"`
	CasePrice string          `json:"case_price"`
	Summary   *models.Summary `json:"summary"`
}

// handleCreateAnalysis runs the pipeline over the HTML document in the request body
func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	purchases := s.purchases
	if q := r.URL.Query().Get("purchases"); q != "" {
		n, err := strconv.ParseInt(q, 10, 64)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "purchases must be a positive integer")
			return
		}
		purchases = n
	}

	id := uuid.New().String()
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	res, err := s.analyzer.Run(body, analysis.Request{ReportName: id, Purchases: purchases})
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			respondError(w, http.StatusRequestEntityTooLarge, "Document too large")
		case errors.Is(err, economics.ErrEmptyDataset):
			respondError(w, http.StatusUnprocessableEntity, "No case data found")
		case errors.Is(err, economics.ErrNoPricedItems):
			respondError(w, http.StatusUnprocessableEntity, "No priced items found")
		default:
			s.logger.Error("Analysis failed", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "Failed to analyse case")
		}
		return
	}

	respondJSON(w, http.StatusCreated, analysisResponse{
		ID:        id,
		Report:    "/api/reports/" + id,
		CaseName:  res.Snapshot.CaseName,
		CasePrice: res.Snapshot.CasePrice,
		Summary:   res.Summary,
	})
}
