package model

import "gorm.io/gorm"

// Role is the closed set of account roles. Authorization decisions must go
// through Valid / the typed constants, never free-form strings.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleVoter Role = "voter"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleVoter:
		return true
	default:
		return false
	}
}

// User represents a registered member of the electoral roll.
type User struct {
	gorm.Model
	Colegiado string `gorm:"uniqueIndex;not null" json:"colegiado"` // membership number, the login identity
	Name      string `gorm:"not null" json:"name"`
	Email     string `gorm:"not null" json:"email"`
	DPI       string `gorm:"uniqueIndex;not null" json:"dpi"` // national ID
	BirthDate string `gorm:"not null" json:"birthDate"`       // normalized to YYYY-MM-DD
	Password  string `gorm:"not null" json:"-"`               // bcrypt hash, never serialized
	Role      Role   `gorm:"default:'voter'" json:"role"`
}
