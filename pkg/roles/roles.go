package roles

// Role is the privilege level attached to a session.
type Role string

const (
	Anonymous Role = "anonymous"
	Staff     Role = "staff"
	Admin     Role = "admin"
)

type HierarchyLevel int

const (
	AnonymousLevel HierarchyLevel = 0
	StaffLevel     HierarchyLevel = 1
	AdminLevel     HierarchyLevel = 2
)

func (r Role) GetHierarchyLevel() HierarchyLevel {
	switch r {
	case Staff:
		return StaffLevel
	case Admin:
		return AdminLevel
	default:
		return AnonymousLevel
	}
}

// HasPermission reports whether the role meets the required privilege level.
func (r Role) HasPermission(requiredRole Role) bool {
	return r.GetHierarchyLevel() >= requiredRole.GetHierarchyLevel()
}

// IsValid reports whether the role can be stored on a credential.
// Anonymous is a session state, never a stored role.
func (r Role) IsValid() bool {
	switch r {
	case Staff, Admin:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}
