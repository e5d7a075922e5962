package di

import (
	"RiskDesk/internal/handler/api"

	"github.com/labstack/echo/v4"
)

// routes composes the per-domain handlers into one registration point.
type routes struct {
	signals   *api.SignalsHandler
	portfolio *api.PortfolioHandler
}

func (r *routes) RegisterRoutes(e *echo.Echo) {
	r.signals.RegisterRoutes(e)
	r.portfolio.RegisterRoutes(e)
}
