package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handlers interface {
	Ping(ctx echo.Context) error
	Status(ctx echo.Context) error
}

type statusHandlers struct {
	bot statusProvider
}

func NewHandlers(bot statusProvider) Handlers {
	return &statusHandlers{
		bot: bot,
	}
}

// Ping answers while the process is up, whether or not a game is joined.
func (that *statusHandlers) Ping(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "pong")
}

func (that *statusHandlers) Status(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, that.bot.Status())
}
