package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vytor/chessdrill/internal/logger"
	"github.com/vytor/chessdrill/internal/services"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	DrillService services.DrillService
	StatsService services.StatsService
	DB           Pinger
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}
