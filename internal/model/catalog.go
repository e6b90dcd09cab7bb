// internal/model/catalog.go
package model

// Sectors is the fixed set of subject domains a project can belong to.
var Sectors = []string{
	"Education",
	"Transport",
	"Health",
	"Finance",
	"Social",
	"Entertainment",
	"Media",
	"Religion",
	"Culture",
	"Telecommunication",
	"Agriculture",
	"Construction",
	"Food",
	"Energy Industry",
}

// Stack is a technology, usually a language detected in a repository.
type Stack struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:text;uniqueIndex;not null" json:"name"`
}

type Sector struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:text;uniqueIndex;not null" json:"name"`
}
