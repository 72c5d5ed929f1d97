package tenant

import (
	"github.com/frahmantamala/safety-lms/internal"
)

// BuildUserContext derives the authorization context of a profile from its admin
// roles. A role without a plant grants every plant; plant-scoped roles add their
// plant; the profile's own plant is always accessible.
func BuildUserContext(userID, plantID string, roles []internal.RoleGrant) internal.UserContext {
	uc := internal.UserContext{
		UserID:  userID,
		PlantID: plantID,
		Roles:   roles,
	}
	if uc.Roles == nil {
		uc.Roles = []internal.RoleGrant{}
	}

	if uc.IsGlobalAdmin() {
		uc.AccessiblePlants = []string{internal.AllPlants}
		return uc
	}

	seen := make(map[string]struct{})
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		uc.AccessiblePlants = append(uc.AccessiblePlants, id)
	}

	add(plantID)
	for _, r := range roles {
		if r.PlantID != nil {
			add(*r.PlantID)
		}
	}
	if uc.AccessiblePlants == nil {
		uc.AccessiblePlants = []string{}
	}
	return uc
}
