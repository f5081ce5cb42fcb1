package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/battleships-bot/internal/config"
	"github.com/rocketscienceinc/battleships-bot/internal/repository"
	"github.com/rocketscienceinc/battleships-bot/internal/repository/storage"
	"github.com/rocketscienceinc/battleships-bot/internal/service"
	"github.com/rocketscienceinc/battleships-bot/internal/transport/gameapi"
	"github.com/rocketscienceinc/battleships-bot/internal/usecase"
	"github.com/rocketscienceinc/battleships-bot/transport/rest"
)

var ErrEmptyBotName = errors.New("bot name is empty")

// RunApp - runs the bot until SIGINT or SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return Run(ctx, logger, conf)
}

// Run - wires the bot and blocks until ctx is cancelled.
func Run(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	if conf.BotName == "" {
		return ErrEmptyBotName
	}

	runID := uuid.NewString()
	logger = logger.With("run_id", runID)
	log := logger.With("component", "app")

	client := gameapi.New(conf.GameAPIURL, runID, conf.RequestTimeout)
	bot := usecase.NewBotSession(logger, client, service.NewRandomShooter(), usecase.Settings{
		BotName:        conf.BotName,
		RunID:          runID,
		MoveInterval:   conf.MoveInterval,
		JoinRetryDelay: conf.JoinRetryDelay,
	})

	if conf.Redis.Enabled() {
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.Addr)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		bot.WithSessionRepo(repository.NewSessionRepository(redisStorage.Connection))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// run HTTP server
	httpErrCh := make(chan error, 1)
	if conf.HealthPort != "" {
		server := rest.New(logger, conf.HealthPort, bot)
		go func() {
			httpErrCh <- server.Start(ctx)
		}()
	}

	botErrCh := make(chan error, 1)
	go func() {
		botErrCh <- bot.Run(ctx)
	}()

	select {
	case err := <-httpErrCh:
		if err != nil {
			cancel()
			<-botErrCh
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return <-botErrCh
	case err := <-botErrCh:
		return err
	}
}
