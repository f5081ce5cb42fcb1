package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/battleships-bot/internal/apperror"
	"github.com/rocketscienceinc/battleships-bot/internal/entity"
	"github.com/rocketscienceinc/battleships-bot/internal/repository"
	"github.com/rocketscienceinc/battleships-bot/internal/service"
)

type gameClient interface {
	Join(ctx context.Context, botName string) (string, error)
	Move(ctx context.Context, gameID string, shot entity.Coordinate) (*entity.MoveResult, error)
}

type sessionRepo interface {
	Save(ctx context.Context, session *entity.Session) error
	GetByBotName(ctx context.Context, botName string) (*entity.Session, error)
}

type Settings struct {
	BotName        string
	RunID          string
	MoveInterval   time.Duration
	JoinRetryDelay time.Duration
}

// Status is a point-in-time view of the bot, safe to read from other goroutines.
type Status struct {
	BotName    string `json:"bot_name"`
	RunID      string `json:"run_id"`
	GameID     string `json:"game_id,omitempty"`
	Joined     bool   `json:"joined"`
	Moves      int    `json:"moves"`
	LastResult string `json:"last_result,omitempty"`
}

// BotSession owns the join/move loop. Only Run's goroutine mutates it.
type BotSession struct {
	logger   *slog.Logger
	client   gameClient
	shooter  service.Shooter
	sessions sessionRepo
	settings Settings

	lock       sync.RWMutex
	session    entity.Session
	moves      int
	lastResult string
}

func NewBotSession(logger *slog.Logger, client gameClient, shooter service.Shooter, settings Settings) *BotSession {
	return &BotSession{
		logger:   logger.With("component", "bot", "bot_name", settings.BotName),
		client:   client,
		shooter:  shooter,
		settings: settings,
		session:  entity.Session{BotName: settings.BotName},
	}
}

// WithSessionRepo enables resuming the stored game id after a restart.
func (that *BotSession) WithSessionRepo(sessions sessionRepo) *BotSession {
	that.sessions = sessions
	return that
}

func (that *BotSession) GameID() string {
	that.lock.RLock()
	defer that.lock.RUnlock()

	return that.session.GameID
}

func (that *BotSession) IsJoined() bool {
	return that.GameID() != ""
}

func (that *BotSession) Status() Status {
	that.lock.RLock()
	defer that.lock.RUnlock()

	return Status{
		BotName:    that.session.BotName,
		RunID:      that.settings.RunID,
		GameID:     that.session.GameID,
		Joined:     that.session.IsJoined(),
		Moves:      that.moves,
		LastResult: that.lastResult,
	}
}

// Join - asks the server for a game. On failure the held game id is left untouched.
func (that *BotSession) Join(ctx context.Context) error {
	gameID, err := that.client.Join(ctx, that.settings.BotName)
	if err != nil {
		that.logFailure("Error joining game", err)
		return err
	}

	that.lock.Lock()
	that.session.GameID = gameID
	session := that.session
	that.lock.Unlock()

	that.logger.Info("Joined game", "game_id", gameID)
	that.persist(ctx, &session)

	return nil
}

// Move - fires one shot in the joined game.
func (that *BotSession) Move(ctx context.Context) (*entity.MoveResult, error) {
	gameID := that.GameID()
	if gameID == "" {
		return nil, apperror.ErrNotJoined
	}

	shot := that.shooter.NextShot()

	result, err := that.client.Move(ctx, gameID, shot)
	if err != nil {
		that.logFailure("Error making move", err, "x", shot.X, "y", shot.Y)
		return nil, err
	}

	that.lock.Lock()
	that.moves++
	that.lastResult = result.Outcome()
	that.lock.Unlock()

	that.logger.Info("Move", "game_id", gameID, "x", shot.X, "y", shot.Y, "result", result.Outcome())

	return result, nil
}

// Run - joins and keeps firing until ctx is cancelled. It never gives up on its own.
func (that *BotSession) Run(ctx context.Context) error {
	that.logger.Info("Starting bot", "run_id", that.settings.RunID)
	that.restore(ctx)

	for {
		if ctx.Err() != nil {
			that.logger.Info("Bot stopped")
			return nil
		}

		if !that.IsJoined() {
			if err := that.Join(ctx); err != nil {
				if !pause(ctx, that.settings.JoinRetryDelay) {
					that.logger.Info("Bot stopped")
					return nil
				}
				continue
			}
		}

		_, _ = that.Move(ctx)

		if !pause(ctx, that.settings.MoveInterval) {
			that.logger.Info("Bot stopped")
			return nil
		}
	}
}

func (that *BotSession) restore(ctx context.Context) {
	if that.sessions == nil {
		return
	}

	stored, err := that.sessions.GetByBotName(ctx, that.settings.BotName)
	if errors.Is(err, repository.ErrSessionNotFound) {
		that.logger.Debug("No stored session")
		return
	}

	if err != nil {
		that.logger.Warn("Could not load stored session", "error", err)
		return
	}

	if !stored.IsJoined() {
		return
	}

	that.lock.Lock()
	that.session.GameID = stored.GameID
	that.lock.Unlock()

	that.logger.Info("Resuming game", "game_id", stored.GameID)
}

func (that *BotSession) persist(ctx context.Context, session *entity.Session) {
	if that.sessions == nil {
		return
	}

	if err := that.sessions.Save(ctx, session); err != nil {
		that.logger.Warn("Could not store session", "error", err)
	}
}

func (that *BotSession) logFailure(msg string, err error, args ...any) {
	args = append(args, "error", err)

	var callErr *apperror.CallError
	if errors.As(err, &callErr) {
		args = append(args, "reason", callErr.Reason)
		if callErr.StatusCode != 0 {
			args = append(args, "status", callErr.StatusCode)
		}
	}

	that.logger.Error(msg, args...)
}

// pause waits for d and reports false if ctx was cancelled first.
func pause(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
