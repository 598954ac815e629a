package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/vytor/chessdrill/internal/errors"
	"github.com/vytor/chessdrill/internal/logger"
	"github.com/vytor/chessdrill/internal/models"
)

func (s *Server) handleStartDrill(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid form body"))
		return
	}

	drillType := models.DrillType(strings.TrimSpace(r.FormValue("drill_type")))
	method := models.InputMethod(strings.TrimSpace(r.FormValue("input_method")))
	perspective := strings.ToLower(strings.TrimSpace(r.FormValue("perspective")))

	res, err := s.DrillService.StartSession(r.Context(), drillType, method, perspective)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleCheckAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid form body"))
		return
	}

	sub := models.AnswerSubmission{
		SessionID: strings.TrimSpace(r.FormValue("session_id")),
		Target:    r.FormValue("target"),
		Answer:    r.FormValue("answer"),
		DrillType: models.DrillType(strings.TrimSpace(r.FormValue("drill_type"))),
		PieceKind: strings.ToLower(strings.TrimSpace(r.FormValue("piece_kind"))),
		FEN:       strings.TrimSpace(r.FormValue("fen")),
	}
	if raw := strings.TrimSpace(r.FormValue("response_ms")); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil {
			log.Warn("invalid response_ms %q", raw)
			handleError(w, r, errors.NewValidationError("response_ms", "must be an integer"))
			return
		}
		sub.ResponseMs = ms
	}

	res, err := s.DrillService.CheckAnswer(r.Context(), sub)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleEndDrill(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid form body"))
		return
	}

	summary, err := s.DrillService.EndSession(r.Context(), strings.TrimSpace(r.FormValue("session_id")))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}

func (s *Server) handleLegalMoves(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	square := q.Get("square")
	if square == "" {
		handleError(w, r, errors.NewBadRequestError("square parameter required"))
		return
	}

	res, err := s.DrillService.LegalMoves(r.Context(), q.Get("fen"), square)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}
