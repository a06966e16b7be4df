package model

// ErrorResponse for consistent error handling
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// Error lets Validate() methods return *ErrorDetail directly.
func (e *ErrorDetail) Error() string {
	return e.Code + ": " + e.Message
}

// MyAccess is the caller's own view of their active roles and branch
// grants.
type MyAccess struct {
	Roles        []*Role             `json:"roles"`
	BranchAccess []*UserBranchAccess `json:"branch_access"`
}
