package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeEnrollmentCreated   = "enrollment.created"
	EventTypeEnrollmentCompleted = "enrollment.completed"
	EventTypeMigrationFallback   = "migration.fallback"
)

func newBase(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

type EnrollmentCreatedEvent struct {
	BaseEvent
	EnrollmentID string `json:"enrollment_id"`
	UserID       string `json:"user_id"`
	CourseID     string `json:"course_id"`
	PlantID      string `json:"plant_id"`
}

func NewEnrollmentCreatedEvent(enrollmentID, userID, courseID, plantID string) *EnrollmentCreatedEvent {
	return &EnrollmentCreatedEvent{
		BaseEvent: newBase(EventTypeEnrollmentCreated, map[string]interface{}{
			"enrollment_id": enrollmentID,
			"user_id":       userID,
			"course_id":     courseID,
			"plant_id":      plantID,
		}),
		EnrollmentID: enrollmentID,
		UserID:       userID,
		CourseID:     courseID,
		PlantID:      plantID,
	}
}

type EnrollmentCompletedEvent struct {
	BaseEvent
	EnrollmentID string    `json:"enrollment_id"`
	UserID       string    `json:"user_id"`
	CourseID     string    `json:"course_id"`
	CompletedAt  time.Time `json:"completed_at"`
}

func NewEnrollmentCompletedEvent(enrollmentID, userID, courseID string, completedAt time.Time) *EnrollmentCompletedEvent {
	return &EnrollmentCompletedEvent{
		BaseEvent: newBase(EventTypeEnrollmentCompleted, map[string]interface{}{
			"enrollment_id": enrollmentID,
			"user_id":       userID,
			"course_id":     courseID,
			"completed_at":  completedAt,
		}),
		EnrollmentID: enrollmentID,
		UserID:       userID,
		CourseID:     courseID,
		CompletedAt:  completedAt,
	}
}

// MigrationFallbackEvent records a call that failed on the next implementation
// and was answered by the legacy one.
type MigrationFallbackEvent struct {
	BaseEvent
	Operation     string `json:"operation"`
	Code          string `json:"code"`
	Error         string `json:"error"`
	LegacySuccess bool   `json:"legacy_success"`
}

func NewMigrationFallbackEvent(operation, code, errMessage string, legacySuccess bool) *MigrationFallbackEvent {
	return &MigrationFallbackEvent{
		BaseEvent: newBase(EventTypeMigrationFallback, map[string]interface{}{
			"operation":      operation,
			"code":           code,
			"error":          errMessage,
			"legacy_success": legacySuccess,
		}),
		Operation:     operation,
		Code:          code,
		Error:         errMessage,
		LegacySuccess: legacySuccess,
	}
}
