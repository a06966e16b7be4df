package handler

import (
	"net/http"

	"peopledesk/internal/authz/model"

	"github.com/labstack/echo/v4"
)

// PostEmployeeRole handles POST /access/employee-roles
func (h *AccessHandler) PostEmployeeRole(c echo.Context) error {
	var req model.AssignEmployeeRoleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid body"},
		})
	}

	if err := h.Service.AssignEmployeeRole(c.Request().Context(), PrincipalFromContext(c), req); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}

// DeleteEmployeeRole handles DELETE /access/employee-roles
func (h *AccessHandler) DeleteEmployeeRole(c echo.Context) error {
	var req model.RevokeEmployeeRoleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid body"},
		})
	}

	if err := h.Service.RevokeEmployeeRole(c.Request().Context(), PrincipalFromContext(c), req); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}

// PostBranchAccess handles POST /access/branch-grants
func (h *AccessHandler) PostBranchAccess(c echo.Context) error {
	var req model.GrantBranchAccessReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid body"},
		})
	}

	if err := h.Service.GrantBranchAccess(c.Request().Context(), PrincipalFromContext(c), req); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}

// DeleteBranchAccess handles DELETE /access/branch-grants
func (h *AccessHandler) DeleteBranchAccess(c echo.Context) error {
	var req model.RevokeBranchAccessReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid body"},
		})
	}

	if err := h.Service.RevokeBranchAccess(c.Request().Context(), PrincipalFromContext(c), req); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}

// PutBranchIsolation handles PUT /organizations/branch-isolation
func (h *AccessHandler) PutBranchIsolation(c echo.Context) error {
	var req model.SetBranchIsolationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid body"},
		})
	}

	if err := h.Service.SetBranchIsolation(c.Request().Context(), PrincipalFromContext(c), req); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}

// GetMyAccess handles GET /access/me
func (h *AccessHandler) GetMyAccess(c echo.Context) error {
	access, err := h.Service.GetMyAccess(c.Request().Context(), PrincipalFromContext(c))
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, access)
}

// GetAuditLogs handles GET /access/audit-logs
func (h *AccessHandler) GetAuditLogs(c echo.Context) error {
	var req model.GetAuditLogsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid query"},
		})
	}

	entries, total, err := h.Service.GetAuditLogs(c.Request().Context(), PrincipalFromContext(c), req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"entries": entries,
		"total":   total,
	})
}

// PostEvaluate handles POST /authz/evaluate. The probe returns only the
// verdict; deny reasons are internal.
func (h *AccessHandler) PostEvaluate(c echo.Context) error {
	var req model.EvaluateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid body"},
		})
	}
	if err := req.Validate(); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	d := h.Service.Evaluate(c.Request().Context(), PrincipalFromContext(c), req)
	return c.JSON(http.StatusOK, map[string]bool{"allowed": d.Allowed})
}
