// internal/model/user.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Username       string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"email"`
	FirstName      string    `gorm:"type:varchar(30);not null" json:"first_name"`
	LastName       string    `gorm:"type:varchar(30);not null" json:"last_name"`
	GitHandle      string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"git_handle"`
	Password       string    `gorm:"type:text;not null" json:"-"`
	IsOrganisation bool      `gorm:"not null;default:false" json:"is_organisation"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	OwnedProjects    []Project `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owned_projects,omitempty"`
	Collaborations   []Project `gorm:"many2many:collaborations;joinForeignKey:UserID;joinReferences:ProjectID" json:"collaborations,omitempty"`
	PreferredSectors []Sector  `gorm:"many2many:user_preference_sectors;joinForeignKey:UserID;joinReferences:SectorID" json:"preferred_sectors,omitempty"`
	PreferredStacks  []Stack   `gorm:"many2many:user_preference_stacks;joinForeignKey:UserID;joinReferences:StackID" json:"preferred_stacks,omitempty"`
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
