package handler

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"

	"peopledesk/internal/authz/model"

	"github.com/labstack/echo/v4"
)

// principalContextKey is where PrincipalMiddleware stores the caller's
// identity for downstream handlers.
const principalContextKey = "authz.principal"

func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := c.Request().Header.Get(echo.HeaderXRequestID)
		if reqID == "" {
			b := make([]byte, 16)
			_, _ = rand.Read(b)
			reqID = hex.EncodeToString(b)
		}
		c.Response().Header().Set(echo.HeaderXRequestID, reqID)
		return next(c)
	}
}

// PrincipalMiddleware assembles the immutable Principal once per
// request from the identity headers set by the gateway. Requests with
// missing or malformed claims are rejected before any handler runs;
// downstream code never sees a half-built identity.
func PrincipalMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := principalFromHeaders(c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, model.ErrorResponse{
				Error: model.ErrorDetail{Code: "unauthorized", Message: "valid identity headers are required"},
			})
		}
		c.Set(principalContextKey, p)
		return next(c)
	}
}

// PrincipalFromContext returns the Principal stored by
// PrincipalMiddleware, or nil when the route is not behind it.
func PrincipalFromContext(c echo.Context) *model.Principal {
	p, _ := c.Get(principalContextKey).(*model.Principal)
	return p
}

func principalFromHeaders(c echo.Context) (*model.Principal, error) {
	h := c.Request().Header

	userID, err := headerInt64(h.Get("x-user-id"))
	if err != nil {
		return nil, model.ErrInvalidPrincipal
	}
	employeeID, err := headerInt64(h.Get("x-employee-id"))
	if err != nil {
		return nil, model.ErrInvalidPrincipal
	}
	orgID, _ := headerInt64(h.Get("x-org-id"))
	branchID, _ := headerInt64(h.Get("x-branch-id"))

	var roleIDs []int64
	if raw := strings.TrimSpace(h.Get("x-role-ids")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := headerInt64(part)
			if err != nil {
				return nil, model.ErrInvalidPrincipal
			}
			roleIDs = append(roleIDs, id)
		}
	}

	return model.NewPrincipal(model.Claims{
		UserID:         userID,
		EmployeeID:     employeeID,
		OrganizationID: orgID,
		HomeBranchID:   branchID,
		RoleIDs:        roleIDs,
		Department:     strings.TrimSpace(h.Get("x-department")),
		Designation:    strings.TrimSpace(h.Get("x-designation")),
		SuperAdmin:     strings.EqualFold(strings.TrimSpace(h.Get("x-super-admin")), "true"),
	})
}

func headerInt64(raw string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
}
