package drillapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vytor/chessdrill/internal/errors"
	"github.com/vytor/chessdrill/internal/logger"
	"github.com/vytor/chessdrill/internal/models"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.Default().WithPrefix("drillapi"),
	}
}

type errorResp struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) StartSession(ctx context.Context, drillType models.DrillType, method models.InputMethod, perspective string) (*models.StartResult, error) {
	form := url.Values{}
	form.Set("drill_type", string(drillType))
	form.Set("input_method", string(method))
	form.Set("perspective", perspective)

	var out models.StartResult
	if err := c.do(ctx, "start session", http.MethodPost, "/api/drill/start", form, &out); err != nil {
		return nil, err
	}
	if out.Question != nil && out.Question.SessionID == "" {
		out.Question.SessionID = out.SessionID
	}
	return &out, nil
}

func (c *Client) CheckAnswer(ctx context.Context, sub models.AnswerSubmission) (*models.CheckResult, error) {
	form := url.Values{}
	form.Set("session_id", sub.SessionID)
	form.Set("target", sub.Target)
	form.Set("answer", sub.Answer)
	form.Set("drill_type", string(sub.DrillType))
	form.Set("response_ms", strconv.Itoa(sub.ResponseMs))
	if sub.PieceKind != "" {
		form.Set("piece_kind", sub.PieceKind)
	}
	if sub.FEN != "" {
		form.Set("fen", sub.FEN)
	}

	var out models.CheckResult
	if err := c.do(ctx, "check answer", http.MethodPost, "/api/drill/check", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) EndSession(ctx context.Context, sessionID string) (*models.DrillSessionSummary, error) {
	form := url.Values{}
	form.Set("session_id", sessionID)

	var out models.DrillSessionSummary
	if err := c.do(ctx, "end session", http.MethodPost, "/api/drill/end", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Heatmap(ctx context.Context, drillType models.DrillType) (*models.HeatmapData, error) {
	path := "/api/stats/heatmap"
	if drillType != "" {
		path += "?" + url.Values{"drill_type": {string(drillType)}}.Encode()
	}
	var out models.HeatmapData
	if err := c.do(ctx, "heatmap", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Stats(ctx context.Context) (*models.OverallStats, error) {
	var out models.OverallStats
	if err := c.do(ctx, "stats", http.MethodGet, "/api/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) LegalMoves(ctx context.Context, fen, square string) (*models.LegalMovesResult, error) {
	path := "/api/drill/legal-moves?" + url.Values{"fen": {fen}, "square": {square}}.Encode()
	var out models.LegalMovesResult
	if err := c.do(ctx, "legal moves", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends a request and decodes the JSON response into out. Every failure
// is returned as a NETWORK_FAILURE AppError.
func (c *Client) do(ctx context.Context, op, method, path string, form url.Values, out any) error {
	log := logger.FromContext(ctx).WithPrefix("drillapi").WithField("op", op)
	start := time.Now()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return errors.NewNetworkFailure(op, err)
	}
	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed: %v", err)
		return errors.NewNetworkFailure(op, err)
	}
	defer resp.Body.Close()

	log.Debug("response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		var apiErr errorResp
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Code != "" {
			log.Warn("server rejected request: status=%d, code=%s", resp.StatusCode, apiErr.Error.Code)
			return errors.NewNetworkFailure(op, fmt.Errorf("status %d: %s: %s", resp.StatusCode, apiErr.Error.Code, apiErr.Error.Message))
		}
		log.Warn("request failed: status=%d, body=%s", resp.StatusCode, string(raw))
		return errors.NewNetworkFailure(op, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Error("failed to decode response: %v", err)
		return errors.NewNetworkFailure(op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
