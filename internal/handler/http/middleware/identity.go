package middleware

import (
	"context"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/user"
)

type identityKey struct{}

// IdentityFromClaims reads the caller from access token claims. Missing
// claims stay empty and are rejected by the services.
func IdentityFromClaims(claims map[string]interface{}) user.Identity {
	identity := user.Identity{}
	identity.UserID, _ = claims["user_id"].(string)
	identity.EmployeeID, _ = claims["employee_id"].(string)
	identity.CompanyID, _ = claims["company_id"].(string)
	if role, ok := claims["role"].(string); ok {
		identity.Role = user.Role(role)
	}
	return identity
}

func WithIdentity(ctx context.Context, identity user.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentity returns the caller stored by AuthRequired.
func GetIdentity(ctx context.Context) (user.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(user.Identity)
	return identity, ok
}
