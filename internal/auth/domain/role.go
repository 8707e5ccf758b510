package domain

import "time"

// Default role names seeded by migrations.
const (
	RoleAdministrator = "Administrator"
	RoleUser          = "User"
)

type Role struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
