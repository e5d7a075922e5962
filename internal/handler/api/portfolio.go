package api

import (
	"errors"
	"net/http"

	"RiskDesk/internal/domain/models"
	domrepo "RiskDesk/internal/domain/repository"
	"RiskDesk/internal/usecase"
	xhttp "RiskDesk/pkg/http"
	xlogger "RiskDesk/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PortfolioHandler serves portfolio heat, exit levels, position sizing, and
// the health probe.
type PortfolioHandler struct {
	logger  *xlogger.Logger
	folio   *usecase.PortfolioUseCase
	archive domrepo.BarStore
}

func NewPortfolioHandler(logger *xlogger.Logger, folio *usecase.PortfolioUseCase, archive domrepo.BarStore) *PortfolioHandler {
	return &PortfolioHandler{logger: logger, folio: folio, archive: archive}
}

func (h *PortfolioHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/heat", h.Heat)
	g.GET("/exits", h.Exits)
	g.POST("/size", h.Size)
	e.GET("/healthz", h.Health)
}

func (h *PortfolioHandler) Heat(c echo.Context) error {
	report, err := h.folio.Heat(c.Request().Context())
	if err != nil {
		h.logger.Error("heat usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, domainError(err))
	}
	return xhttp.SuccessResponse(c, report)
}

func (h *PortfolioHandler) Exits(c echo.Context) error {
	req := &models.ExitLevelsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	sig, err := h.folio.ExitLevels(c.Request().Context(), req.Ticker)
	if err != nil {
		h.logger.Error("exits usecase error", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, domainError(err))
	}
	return xhttp.SuccessResponse(c, sig)
}

func (h *PortfolioHandler) Size(c echo.Context) error {
	req := &models.SizeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	size, err := h.folio.Size(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("size usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, domainError(err))
	}
	return xhttp.SuccessResponse(c, size)
}

func (h *PortfolioHandler) Health(c echo.Context) error {
	if err := h.archive.Health(c.Request().Context()); err != nil {
		h.logger.Error("health check failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("bar archive unreachable").WithError(err))
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

// domainError maps the engine's sentinel errors onto HTTP statuses; anything
// unrecognized stays a 500.
func domainError(err error) error {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return xhttp.BadRequestError(err.Error()).WithError(err)
	case errors.Is(err, models.ErrInsufficientHistory):
		return xhttp.NewAppError("ERR_INSUFFICIENT_HISTORY", "", err.Error(), http.StatusUnprocessableEntity).WithError(err)
	case errors.Is(err, models.ErrDataUnavailable):
		return xhttp.NotFoundError(err.Error()).WithError(err)
	default:
		return err
	}
}
