package legacy

import (
	"context"

	courseDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/course"
	profileDatamodel "github.com/frahmantamala/safety-lms/internal/core/datamodel/profile"
)

// relations loads the profiles and courses referenced by a page of rows.
type relations struct {
	store
}

func (r relations) load(ctx context.Context, userIDs, courseIDs []string) (map[string]*profileDatamodel.Profile, map[string]*courseDatamodel.Course, error) {
	profiles := []*profileDatamodel.Profile{}
	if err := r.selectAll(ctx, &profiles, "SELECT "+profileColumns+" FROM profiles WHERE id IN (?)", userIDs); err != nil {
		return nil, nil, err
	}
	courses := []*courseDatamodel.Course{}
	if err := r.selectAll(ctx, &courses, "SELECT "+courseColumns+" FROM courses WHERE id IN (?)", courseIDs); err != nil {
		return nil, nil, err
	}

	profileByID := make(map[string]*profileDatamodel.Profile, len(profiles))
	for _, p := range profiles {
		profileByID[p.ID] = p
	}
	courseByID := make(map[string]*courseDatamodel.Course, len(courses))
	for _, c := range courses {
		courseByID[c.ID] = c
	}
	return profileByID, courseByID, nil
}
