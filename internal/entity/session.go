package entity

import (
	"bytes"
	"encoding/json"
)

const UnknownResult = "unknown"

type Session struct {
	BotName string `json:"bot_name"`
	GameID  string `json:"game_id,omitempty"`
}

// IsJoined reports whether the session holds a game id.
func (that *Session) IsJoined() bool {
	return that.GameID != ""
}

type MoveResult struct {
	Shot   Coordinate      `json:"-"`
	Result json.RawMessage `json:"result"`
	Raw    json.RawMessage `json:"-"`
}

// Outcome returns the server's free-form result: strings unquoted, any other value as its JSON text,
// and "unknown" when the field is absent or null.
func (that *MoveResult) Outcome() string {
	if that == nil {
		return UnknownResult
	}

	return FreeForm(that.Result)
}

// FreeForm renders a JSON value for display. Empty and null values render as "unknown".
func FreeForm(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return UnknownResult
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}

	return string(raw)
}
