package router

import (
	"peopledesk/internal/authz/handler"
	"peopledesk/internal/authz/model"
	"peopledesk/internal/authz/policy"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func RegisterRoutes(e *echo.Echo, h *handler.AccessHandler, engine *policy.Engine) {
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept,
			"x-user-id", "x-employee-id", "x-org-id", "x-branch-id", "x-role-ids", "x-super-admin"},
	}))

	e.GET("/health", handler.HealthCheck)

	v1 := e.Group("/api/v1")
	v1.Use(handler.RequestIDMiddleware)
	v1.Use(handler.PrincipalMiddleware)

	// Route-level policy gates for reads; mutations evaluate inside the
	// service where the target ids come from the request body.
	authzMW := handler.NewAuthzMiddleware(engine, map[string]handler.RoutePolicy{
		"GET:/api/v1/access/audit-logs": {Policy: model.PermAccessViewAudit},
	})
	v1.Use(authzMW.Middleware())

	// Decision probe
	v1.POST("/authz/evaluate", h.PostEvaluate)

	// Role assignments
	v1.POST("/access/employee-roles", h.PostEmployeeRole)
	v1.DELETE("/access/employee-roles", h.DeleteEmployeeRole)

	// Branch grants
	v1.POST("/access/branch-grants", h.PostBranchAccess)
	v1.DELETE("/access/branch-grants", h.DeleteBranchAccess)

	// Organization settings
	v1.PUT("/organizations/branch-isolation", h.PutBranchIsolation)

	// Self-service and audit
	v1.GET("/access/me", h.GetMyAccess)
	v1.GET("/access/audit-logs", h.GetAuditLogs)
}
