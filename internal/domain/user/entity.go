package user

type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleManager  Role = "manager"  // Can approve leave
	RoleEmployee Role = "employee" // Regular employee
	RolePending  Role = "pending"  // Still in onboarding
)

// Identity is the authenticated caller of a leave or attendance operation.
type Identity struct {
	UserID     string
	EmployeeID string
	CompanyID  string
	Role       Role
}

// IsManager checks if the caller is manager or owner
func (i Identity) IsManager() bool {
	return i.Role == RoleManager || i.Role == RoleOwner
}

// Validate reports the first missing tenant or employee claim.
func (i Identity) Validate() error {
	if i.CompanyID == "" {
		return ErrCompanyIDRequired
	}
	if i.EmployeeID == "" {
		return ErrEmployeeIDRequired
	}
	return nil
}
