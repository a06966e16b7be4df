package handler

import (
	"net/http"
	"strconv"
	"strings"

	"peopledesk/internal/authz/model"
	"peopledesk/internal/authz/policy"

	"github.com/labstack/echo/v4"
)

// RoutePolicy binds one route to a named policy and names the request
// parameters carrying the target ids, e.g. "query.branch_id" or
// "path.employee_id".
type RoutePolicy struct {
	Policy        string
	BranchParam   string
	EmployeeParam string
}

// AuthzMiddleware gates routes through the decision engine. It is the
// transport-side integration point: the CRUD layer above this core
// registers its routes here instead of calling the engine directly.
// Routes without a config pass through untouched.
type AuthzMiddleware struct {
	engine *policy.Engine
	routes map[string]RoutePolicy // key: "METHOD:PATH"
}

func NewAuthzMiddleware(engine *policy.Engine, routes map[string]RoutePolicy) *AuthzMiddleware {
	return &AuthzMiddleware{engine: engine, routes: routes}
}

func (m *AuthzMiddleware) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.Request().Method + ":" + c.Path()
			route, exists := m.routes[key]
			if !exists {
				return next(c)
			}

			p := PrincipalFromContext(c)

			branchID, ok := m.extractID(c, route.BranchParam)
			if !ok {
				return forbiddenResponse(c)
			}
			employeeID, ok := m.extractID(c, route.EmployeeParam)
			if !ok {
				return forbiddenResponse(c)
			}

			res := policy.ResourceDescriptor{
				TargetBranchID:   branchID,
				TargetEmployeeID: employeeID,
			}

			d := m.engine.Evaluate(c.Request().Context(), p, route.Policy, res)
			if !d.Allowed {
				return forbiddenResponse(c)
			}
			return next(c)
		}
	}
}

func forbiddenResponse(c echo.Context) error {
	return c.JSON(http.StatusForbidden, model.ErrorResponse{
		Error: model.ErrorDetail{Code: "forbidden", Message: "You do not have permission to perform this action"},
	})
}

// extractID reads an int64 from a source selector like "query.branch_id"
// or "path.employee_id". An absent value yields a nil id, which makes
// the corresponding check inapplicable. A present value that does not
// parse reports not-ok; the caller must deny rather than run the policy
// with the target silently dropped.
func (m *AuthzMiddleware) extractID(c echo.Context, source string) (*int64, bool) {
	parts := strings.SplitN(source, ".", 2)
	if len(parts) != 2 {
		return nil, true
	}

	var raw string
	switch parts[0] {
	case "query":
		raw = c.QueryParam(parts[1])
	case "path":
		raw = c.Param(parts[1])
	case "header":
		raw = c.Request().Header.Get(parts[1])
	}
	if raw == "" {
		return nil, true
	}

	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil, false
	}
	return &id, true
}
