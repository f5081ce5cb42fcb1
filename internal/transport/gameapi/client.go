package gameapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rocketscienceinc/battleships-bot/internal/apperror"
	"github.com/rocketscienceinc/battleships-bot/internal/entity"
)

const (
	joinPath = "/api/game/join"
	movePath = "/api/game/%s/move"

	// RunIDHeader correlates all requests made by one bot process.
	RunIDHeader = "X-Bot-Run-ID"

	maxBodySize = 1 << 20
)

type joinRequest struct {
	BotName string `json:"bot_name"`
}

type joinResponse struct {
	GameID json.RawMessage `json:"game_id"`
}

type moveRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Client struct {
	baseURL string
	runID   string
	client  *http.Client
}

func New(baseURL, runID string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		runID:   runID,
		client:  &http.Client{Timeout: timeout},
	}
}

// Join - asks the server to place the bot into a game and returns its id.
func (that *Client) Join(ctx context.Context, botName string) (string, error) {
	var response joinResponse
	if _, err := that.post(ctx, apperror.OpJoin, joinPath, joinRequest{BotName: botName}, &response); err != nil {
		return "", err
	}

	gameID, err := parseGameID(response.GameID)
	if err != nil {
		return "", &apperror.CallError{Op: apperror.OpJoin, Reason: apperror.ReasonDecode, Err: err}
	}

	return gameID, nil
}

// parseGameID accepts a non-empty string or a number; numbers keep their JSON text.
func parseGameID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", apperror.ErrMissingGameID
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if text == "" {
			return "", apperror.ErrMissingGameID
		}
		return text, nil
	}

	var number json.Number
	if err := json.Unmarshal(raw, &number); err != nil {
		return "", fmt.Errorf("game_id is neither a string nor a number: %w", err)
	}

	return number.String(), nil
}

// Move - fires at the coordinate in the given game.
func (that *Client) Move(ctx context.Context, gameID string, shot entity.Coordinate) (*entity.MoveResult, error) {
	result := &entity.MoveResult{Shot: shot}

	raw, err := that.post(ctx, apperror.OpMove, fmt.Sprintf(movePath, url.PathEscape(gameID)), moveRequest{X: shot.X, Y: shot.Y}, result)
	if err != nil {
		return nil, err
	}
	result.Raw = raw

	return result, nil
}

func (that *Client) post(ctx context.Context, op apperror.Op, path string, payload, target any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("could not marshal %s request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, that.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, &apperror.CallError{Op: op, Reason: apperror.ReasonTransport, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if that.runID != "" {
		req.Header.Set(RunIDHeader, that.runID)
	}

	resp, err := that.client.Do(req)
	if err != nil {
		return nil, &apperror.CallError{Op: op, Reason: classify(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &apperror.CallError{
			Op:         op,
			Reason:     apperror.ReasonStatus,
			StatusCode: resp.StatusCode,
			Err:        apperror.ErrUnexpectedStatus,
		}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &apperror.CallError{Op: op, Reason: classify(err), Err: err}
	}

	if err = json.Unmarshal(raw, target); err != nil {
		return nil, &apperror.CallError{Op: op, Reason: apperror.ReasonDecode, Err: err}
	}

	return raw, nil
}

func classify(err error) apperror.Reason {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.ReasonTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperror.ReasonTimeout
	}

	return apperror.ReasonTransport
}
