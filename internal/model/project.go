// internal/model/project.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title       string    `gorm:"type:varchar(100);not null" json:"title"`
	GitRepo     string    `gorm:"type:text;not null" json:"git_repo"`
	Description string    `gorm:"type:varchar(100);not null;default:''" json:"description"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	SectorID    uint      `gorm:"not null;index" json:"sector_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Owner         User    `gorm:"foreignKey:OwnerID" json:"owner"`
	Sector        Sector  `gorm:"foreignKey:SectorID" json:"sector"`
	Stacks        []Stack `gorm:"many2many:project_stacks;joinForeignKey:ProjectID;joinReferences:StackID" json:"stacks"`
	Collaborators []User  `gorm:"many2many:collaborations;joinForeignKey:ProjectID;joinReferences:UserID" json:"collaborators"`
}

// StackNames returns the names of the attached stacks.
func (p *Project) StackNames() []string {
	names := make([]string, 0, len(p.Stacks))
	for _, s := range p.Stacks {
		names = append(names, s.Name)
	}
	return names
}

// CollaboratorHandles returns the git handles of the attached collaborators.
func (p *Project) CollaboratorHandles() []string {
	handles := make([]string, 0, len(p.Collaborators))
	for _, u := range p.Collaborators {
		handles = append(handles, u.GitHandle)
	}
	return handles
}

// OwnedBy reports whether the repository path lives under the given git handle.
func OwnedBy(repo, handle string) bool {
	owner, _, ok := strings.Cut(repo, "/")
	return ok && handle != "" && strings.EqualFold(owner, handle)
}
