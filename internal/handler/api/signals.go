package api

import (
	"RiskDesk/internal/domain/models"
	"RiskDesk/internal/usecase"
	xhttp "RiskDesk/pkg/http"
	xlogger "RiskDesk/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SignalsHandler serves the trend-signal and market-regime endpoints.
type SignalsHandler struct {
	logger  *xlogger.Logger
	bundles *usecase.BundleUseCase
}

func NewSignalsHandler(logger *xlogger.Logger, bundles *usecase.BundleUseCase) *SignalsHandler {
	return &SignalsHandler{logger: logger, bundles: bundles}
}

func (h *SignalsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/signals", h.Signals)
	g.GET("/regime", h.Regime)
}

// Signals returns today's bundle for the requested window, building one when
// no cached bundle fits.
func (h *SignalsHandler) Signals(c echo.Context) error {
	req := &models.SignalsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	bundle, err := h.bundles.LatestOrBuild(c.Request().Context(), req.Window)
	if err != nil {
		h.logger.Error("signals usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, bundle)
}

func (h *SignalsHandler) Regime(c echo.Context) error {
	regime, err := h.bundles.Regime(c.Request().Context())
	if err != nil {
		h.logger.Error("regime usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, regime)
}
