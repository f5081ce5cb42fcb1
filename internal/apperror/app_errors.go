package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrJoinFailed       = errors.New("join failed")
	ErrMoveFailed       = errors.New("move failed")
	ErrNotJoined        = errors.New("no game joined")
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrMissingGameID    = errors.New("response has no game_id")
)

type Op string

const (
	OpJoin Op = "join"
	OpMove Op = "move"
)

// Reason classifies why a game API call failed.
type Reason string

const (
	ReasonTransport Reason = "transport"
	ReasonTimeout   Reason = "timeout"
	ReasonStatus    Reason = "status"
	ReasonDecode    Reason = "decode"
)

// CallError is the failure outcome of a join or move call.
type CallError struct {
	Op         Op
	Reason     Reason
	StatusCode int
	Err        error
}

func (that *CallError) Error() string {
	if that.Reason == ReasonStatus {
		return fmt.Sprintf("%s: %s: %d: %v", that.Op, that.Reason, that.StatusCode, that.Err)
	}

	return fmt.Sprintf("%s: %s: %v", that.Op, that.Reason, that.Err)
}

func (that *CallError) Unwrap() error {
	return that.Err
}

// Is lets errors.Is match a CallError against ErrJoinFailed or ErrMoveFailed.
func (that *CallError) Is(target error) bool {
	switch target {
	case ErrJoinFailed:
		return that.Op == OpJoin
	case ErrMoveFailed:
		return that.Op == OpMove
	default:
		return false
	}
}
