// Package tenant decides which plants a caller may see and builds the plant
// predicate that every scoped query is AND-ed with.
package tenant

import (
	"github.com/frahmantamala/safety-lms/internal"
)

// Scope is the plant predicate of a query. The zero value matches nothing.
type Scope struct {
	Unrestricted bool
	PlantIDs     []string
}

// Global matches every plant; used for unscoped internal reports.
func Global() Scope {
	return Scope{Unrestricted: true}
}

// Plants restricts a query to the given plants.
func Plants(ids ...string) Scope {
	return Scope{PlantIDs: ids}
}

func (s Scope) IsEmpty() bool {
	return !s.Unrestricted && len(s.PlantIDs) == 0
}

func (s Scope) Allows(plantID string) bool {
	if s.Unrestricted {
		return true
	}
	for _, id := range s.PlantIDs {
		if id == plantID {
			return true
		}
	}
	return false
}

// ValidateAccess reports whether the caller may access plantID.
func ValidateAccess(uc internal.UserContext, plantID string) bool {
	for _, p := range uc.AccessiblePlants {
		if p == internal.AllPlants || p == plantID {
			return true
		}
	}
	return false
}

// ScopeFor builds the list predicate for uc. A requested plant narrows the
// caller's scope; a plant outside it yields an empty scope, never a wider one.
func ScopeFor(uc internal.UserContext, requestedPlantID string) Scope {
	if requestedPlantID != "" {
		if ValidateAccess(uc, requestedPlantID) {
			return Plants(requestedPlantID)
		}
		return Scope{}
	}

	ids := make([]string, 0, len(uc.AccessiblePlants))
	for _, p := range uc.AccessiblePlants {
		if p == internal.AllPlants {
			return Global()
		}
		if p != "" {
			ids = append(ids, p)
		}
	}
	return Scope{PlantIDs: ids}
}

// ScopeForOptional treats a nil context as an unscoped internal call.
func ScopeForOptional(uc *internal.UserContext) Scope {
	if uc == nil {
		return Global()
	}
	return ScopeFor(*uc, "")
}
