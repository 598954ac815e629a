package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessdrill/internal/errors"
	"github.com/vytor/chessdrill/internal/models"
	"github.com/vytor/chessdrill/internal/testutil/mocks"
)

type testServer struct {
	drill  *mocks.MockDrillService
	stats  *mocks.MockStatsService
	db     *mocks.MockPinger
	router http.Handler
}

func newTestServer() *testServer {
	ts := &testServer{
		drill: new(mocks.MockDrillService),
		stats: new(mocks.MockStatsService),
		db:    new(mocks.MockPinger),
	}
	srv := &Server{DrillService: ts.drill, StatsService: ts.stats, DB: ts.db}
	ts.router = srv.Routes()
	return ts
}

func (ts *testServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) get(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) (string, string) {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code, body.Error.Message
}

func TestStartDrill(t *testing.T) {
	ts := newTestServer()
	ts.drill.On("StartSession", mock.Anything, models.DrillTypeFindSquare, models.InputMethodClick, "black").
		Return(&models.StartResult{
			SessionID: "s1",
			Question:  &models.Question{SessionID: "s1", Type: models.DrillTypeFindSquare, Target: "e4", Prompt: "e4"},
		}, nil)

	rec := ts.post("/api/drill/start", url.Values{
		"drill_type":   {"find_square"},
		"input_method": {"click"},
		"perspective":  {" Black "},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	var res models.StartResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "s1", res.SessionID)
	assert.Equal(t, "e4", res.Question.Target)
}

func TestCheckAnswer(t *testing.T) {
	ts := newTestServer()
	ts.drill.On("CheckAnswer", mock.Anything, models.AnswerSubmission{
		SessionID:  "s1",
		Target:     "e4",
		Answer:     "E4",
		DrillType:  models.DrillTypeFindSquare,
		ResponseMs: 1200,
	}).Return(&models.CheckResult{Correct: true, Feedback: "Correct!"}, nil)

	rec := ts.post("/api/drill/check", url.Values{
		"session_id":  {"s1"},
		"target":      {"e4"},
		"answer":      {"E4"},
		"drill_type":  {"find_square"},
		"response_ms": {"1200"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var res models.CheckResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Correct)
	ts.drill.AssertExpectations(t)
}

func TestCheckAnswer_PassesPosition(t *testing.T) {
	ts := newTestServer()
	ts.drill.On("CheckAnswer", mock.Anything, models.AnswerSubmission{
		SessionID: "s1",
		Target:    "d4",
		Answer:    "f5",
		DrillType: models.DrillTypePieceMovement,
		PieceKind: "knight",
		FEN:       "4k3/8/8/8/3N4/8/8/4K3 w - - 0 1",
	}).Return(&models.CheckResult{Correct: false, Feedback: "Incorrect! The answer was d4."}, nil)

	rec := ts.post("/api/drill/check", url.Values{
		"session_id": {"s1"},
		"target":     {"d4"},
		"answer":     {"f5"},
		"drill_type": {"piece_movement"},
		"piece_kind": {" Knight "},
		"fen":        {"4k3/8/8/8/3N4/8/8/4K3 w - - 0 1"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	ts.drill.AssertExpectations(t)
}

func TestCheckAnswer_BadResponseMs(t *testing.T) {
	ts := newTestServer()

	rec := ts.post("/api/drill/check", url.Values{"session_id": {"s1"}, "target": {"e4"}, "response_ms": {"soon"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	code, _ := decodeError(t, rec)
	assert.Equal(t, errors.ErrCodeValidation, code)
	ts.drill.AssertNotCalled(t, "CheckAnswer", mock.Anything, mock.Anything)
}

func TestEndDrill_NotFound(t *testing.T) {
	ts := newTestServer()
	ts.drill.On("EndSession", mock.Anything, "gone").Return(nil, errors.NewNotFoundError("drill session", "gone"))

	rec := ts.post("/api/drill/end", url.Values{"session_id": {"gone"}})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	code, msg := decodeError(t, rec)
	assert.Equal(t, errors.ErrCodeNotFound, code)
	assert.Contains(t, msg, "gone")
}

func TestEndDrill_UnknownErrorIsInternal(t *testing.T) {
	ts := newTestServer()
	ts.drill.On("EndSession", mock.Anything, "s1").Return(nil, stderrors.New("boom"))

	rec := ts.post("/api/drill/end", url.Values{"session_id": {"s1"}})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	code, msg := decodeError(t, rec)
	assert.Equal(t, errors.ErrCodeInternal, code)
	assert.NotContains(t, msg, "boom")
}

func TestLegalMoves(t *testing.T) {
	ts := newTestServer()
	fen := "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1"
	ts.drill.On("LegalMoves", mock.Anything, fen, "e2").
		Return(&models.LegalMovesResult{Square: "e2", Moves: []string{"e3", "e4"}}, nil)

	rec := ts.get("/api/drill/legal-moves?" + url.Values{"fen": {fen}, "square": {"e2"}}.Encode())

	require.Equal(t, http.StatusOK, rec.Code)
	var res models.LegalMovesResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, []string{"e3", "e4"}, res.Moves)

	rec = ts.get("/api/drill/legal-moves?fen=x")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatsEndpoints(t *testing.T) {
	ts := newTestServer()
	ts.stats.On("Heatmap", mock.Anything, models.DrillTypeNameSquare).
		Return(&models.HeatmapData{Squares: []models.SquareAccuracy{{Square: "a1", Total: 2, Correct: 2, Accuracy: 100}}}, nil)
	ts.stats.On("Overall", mock.Anything).Return(&models.OverallStats{TotalSessions: 2, TotalAttempts: 10}, nil)

	rec := ts.get("/api/stats/heatmap?drill_type=name_square")
	require.Equal(t, http.StatusOK, rec.Code)
	var hm models.HeatmapData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hm))
	assert.Equal(t, 100.0, hm.Squares[0].Accuracy)

	rec = ts.get("/api/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	var overall models.OverallStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &overall))
	assert.Equal(t, 10, overall.TotalAttempts)
}

func TestHealthAndReady(t *testing.T) {
	ts := newTestServer()
	ts.db.On("Ping", mock.Anything).Return(nil).Once()
	ts.db.On("Ping", mock.Anything).Return(stderrors.New("database is locked")).Once()

	assert.Equal(t, http.StatusOK, ts.get("/health").Code)
	assert.Equal(t, http.StatusOK, ts.get("/ready").Code)

	rec := ts.get("/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "Database unavailable", rec.Body.String())
}

func TestRecoveryReturnsJSON(t *testing.T) {
	ts := newTestServer()
	ts.drill.On("EndSession", mock.Anything, "s1").Panic("nil map")

	rec := ts.post("/api/drill/end", url.Values{"session_id": {"s1"}})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	code, _ := decodeError(t, rec)
	assert.Equal(t, errors.ErrCodeInternal, code)
}
