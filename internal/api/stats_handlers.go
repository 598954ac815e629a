package api

import (
	"net/http"
	"strings"

	"github.com/vytor/chessdrill/internal/models"
)

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	drillType := models.DrillType(strings.TrimSpace(r.URL.Query().Get("drill_type")))

	data, err := s.StatsService.Heatmap(r.Context(), drillType)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, data)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.StatsService.Overall(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}
