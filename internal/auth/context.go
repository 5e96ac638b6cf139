package auth

import "context"

type ctxKey int

const roleCtxKey ctxKey = 0

func ContextWithRole(ctx context.Context, role Role) context.Context {
	return context.WithValue(ctx, roleCtxKey, role)
}

// RoleFromContext returns the role attached by the request gate, if any.
func RoleFromContext(ctx context.Context) (Role, bool) {
	role, ok := ctx.Value(roleCtxKey).(Role)
	return role, ok
}
