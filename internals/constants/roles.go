package constants

import "fmt"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Rights
const (
	RightGetUsers       = "getUsers"
	RightManageUsers    = "manageUsers"
	RightGetPayments    = "getPayments"
	RightManagePayments = "managePayments"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrMissingRight        = "❌ Akses ditolak: butuh hak %s."
)

// RoleRights maps each role to what it may do.
var RoleRights = map[string][]string{
	RoleUser:  {RightGetPayments, RightManagePayments},
	RoleAdmin: {RightGetUsers, RightManageUsers, RightGetPayments, RightManagePayments},
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RightError(right string) string {
	return fmt.Sprintf(ErrMissingRight, right)
}

// HasRight reports whether role grants right.
func HasRight(role, right string) bool {
	for _, r := range RoleRights[role] {
		if r == right {
			return true
		}
	}
	return false
}
