// internal/model/association.go
package model

import "github.com/google/uuid"

// Association rows have a composite primary key on the pair they join.

type Collaboration struct {
	ProjectID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (Collaboration) TableName() string {
	return "collaborations"
}

type ProjectStack struct {
	ProjectID uuid.UUID `gorm:"type:uuid;primaryKey"`
	StackID   uint      `gorm:"primaryKey"`
}

func (ProjectStack) TableName() string {
	return "project_stacks"
}

type UserPreferenceSector struct {
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	SectorID uint      `gorm:"primaryKey"`
}

func (UserPreferenceSector) TableName() string {
	return "user_preference_sectors"
}

type UserPreferenceStack struct {
	UserID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	StackID uint      `gorm:"primaryKey"`
}

func (UserPreferenceStack) TableName() string {
	return "user_preference_stacks"
}
