package domain

// Staff roles
const (
	RoleLibrarian = "LIBRARIAN"
	RoleAdmin     = "ADMIN"
)

// ValidRole reports whether role is one of the known staff roles.
func ValidRole(role string) bool {
	return role == RoleLibrarian || role == RoleAdmin
}
