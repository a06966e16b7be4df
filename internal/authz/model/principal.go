package model

import "errors"

// ErrInvalidPrincipal is returned when session claims are missing the
// identifiers required for any authorization decision. The engine
// treats an invalid principal as deny-everything (fail closed).
var ErrInvalidPrincipal = errors.New("invalid principal")

// Claims is the raw identity material extracted from an authenticated
// session by whatever transport carries it. It is only a construction
// input; decisions are made against the immutable Principal.
type Claims struct {
	UserID         int64
	EmployeeID     int64
	OrganizationID int64
	HomeBranchID   int64
	RoleIDs        []int64
	Department     string
	Designation    string
	SuperAdmin     bool
}

// Principal is an immutable snapshot of the caller's identity, built
// once per request.
type Principal struct {
	userID         int64
	employeeID     int64
	organizationID int64
	homeBranchID   int64
	roleIDs        []int64
	department     string
	designation    string
	superAdmin     bool
}

// NewPrincipal validates claims and freezes them into a Principal.
// Missing user or employee id fails with ErrInvalidPrincipal.
func NewPrincipal(c Claims) (*Principal, error) {
	if c.UserID <= 0 || c.EmployeeID <= 0 {
		return nil, ErrInvalidPrincipal
	}
	ids := make([]int64, len(c.RoleIDs))
	copy(ids, c.RoleIDs)
	return &Principal{
		userID:         c.UserID,
		employeeID:     c.EmployeeID,
		organizationID: c.OrganizationID,
		homeBranchID:   c.HomeBranchID,
		roleIDs:        ids,
		department:     c.Department,
		designation:    c.Designation,
		superAdmin:     c.SuperAdmin,
	}, nil
}

func (p *Principal) UserID() int64         { return p.userID }
func (p *Principal) EmployeeID() int64     { return p.employeeID }
func (p *Principal) OrganizationID() int64 { return p.organizationID }
func (p *Principal) HomeBranchID() int64   { return p.homeBranchID }
func (p *Principal) Department() string    { return p.department }
func (p *Principal) Designation() string   { return p.designation }
func (p *Principal) SuperAdmin() bool      { return p.superAdmin }

// RoleIDs returns a copy so callers cannot mutate the snapshot.
func (p *Principal) RoleIDs() []int64 {
	ids := make([]int64, len(p.roleIDs))
	copy(ids, p.roleIDs)
	return ids
}
