package domain

import "time"

// User is a person within an account. The facade resolves the acting user
// before calling into the services, so this entity exists for display names
// and seeding rather than authentication.
type User struct {
	ID        ID
	AccountID ID
	Name      string
	Role      UserRole
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin reports whether the user may administer the account.
func (u *User) IsAdmin() bool {
	return u.Role.IsAdmin()
}
