package auth

import "memberhub_backend/internal/models"

// Permissions per role. Owners manage the business profile, admins run the
// day to day desk.
var Permissions = map[models.UserRole][]string{
	models.UserRoleOwner: {
		"business:read",
		"business:write",
		"members:write",
		"plans:write",
		"memberships:write",
		"payments:write",
		"jobs:run",
	},
	models.UserRoleAdmin: {
		"business:read",
		"members:write",
		"plans:write",
		"memberships:write",
		"payments:write",
	},
}

func HasPermission(role models.UserRole, permission string) bool {
	for _, p := range Permissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

func IsOwner(claims *Claims) bool {
	return models.UserRole(claims.Role) == models.UserRoleOwner
}
