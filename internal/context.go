package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextUserKey ctxKey = "userContext"

// AllPlants in AccessiblePlants grants unrestricted tenant access.
const AllPlants = "*"

const (
	RoleHRAdmin      = "hr_admin"
	RoleDevAdmin     = "dev_admin"
	RolePlantManager = "plant_manager"
)

type RoleGrant struct {
	Role    string  `json:"role"`
	PlantID *string `json:"plantId,omitempty"`
}

// UserContext is the request-scoped authorization token consumed by the tenant filter.
type UserContext struct {
	UserID           string      `json:"userId"`
	PlantID          string      `json:"plantId"`
	AccessiblePlants []string    `json:"accessiblePlants"`
	Roles            []RoleGrant `json:"roles"`
}

func (u UserContext) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r.Role == role {
			return true
		}
	}
	return false
}

// IsGlobalAdmin reports whether any role is held without a plant restriction.
func (u UserContext) IsGlobalAdmin() bool {
	for _, r := range u.Roles {
		if r.PlantID == nil {
			return true
		}
	}
	return false
}

func UserFromContext(ctx context.Context) (*UserContext, bool) {
	if ctx == nil {
		return nil, false
	}
	uc, ok := ctx.Value(ContextUserKey).(*UserContext)
	return uc, ok && uc != nil
}

func ContextWithUser(ctx context.Context, uc *UserContext) context.Context {
	return context.WithValue(ctx, ContextUserKey, uc)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
