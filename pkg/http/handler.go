package http

import "github.com/labstack/echo/v4"

// Handler is anything that can mount routes on the server's Echo
// instance. The DI layer composes the per-area handlers into one.
type Handler interface {
	RegisterRoutes(e *echo.Echo)
}
