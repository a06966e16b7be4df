package handler

import (
	"net/http"

	"peopledesk/internal/authz/service"

	"github.com/labstack/echo/v4"
)

type AccessHandler struct {
	Service service.AccessService
}

func NewAccessHandler(s service.AccessService) *AccessHandler {
	return &AccessHandler{Service: s}
}

func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
