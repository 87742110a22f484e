package auth

import "net/http"

type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

type Permission string

const (
	PermContentRead  Permission = "content:read"
	PermContentWrite Permission = "content:write"
)

var rolePermissions = map[Role][]Permission{
	RoleOwner:  {PermContentRead, PermContentWrite},
	RoleEditor: {PermContentRead, PermContentWrite},
	RoleViewer: {PermContentRead},
}

func (r Role) Can(perm Permission) bool {
	for _, p := range rolePermissions[r] {
		if p == perm {
			return true
		}
	}
	return false
}

// RequirePermission must run after JWTMiddleware.Authenticate.
func RequirePermission(perm Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
				return
			}
			if !claims.Role.Can(perm) {
				writeError(w, http.StatusForbidden, "forbidden", "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
