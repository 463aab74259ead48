package domain

// UserRole is the application-wide role of a user.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleUser    UserRole = "user"
)

// roleRank orders roles so that a higher rank satisfies any lower requirement.
var roleRank = map[UserRole]int{
	RoleUser:    1,
	RoleManager: 2,
	RoleAdmin:   3,
}

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r grants at least the privileges of min.
func (r UserRole) AtLeast(min UserRole) bool {
	return roleRank[r] >= roleRank[min] && roleRank[r] > 0
}

// UserStatus indicates whether a user may sign in.
type UserStatus string

const (
	StatusActive   UserStatus = "active"
	StatusInactive UserStatus = "inactive"
)

// Valid reports whether s is one of the known statuses.
func (s UserStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// User represents a user of the application in the domain.
type User struct {
	UserID       string     `json:"userID"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Role         UserRole   `json:"role"`
	Status       UserStatus `json:"status"`
	Phone        string     `json:"phone"`
	PhoneCode    string     `json:"phoneCode"`
	Department   string     `json:"department"`
	PasswordHash string     `json:"-"` // empty for users that only sign in through a provider
	AuditFields
}

// IsActive reports whether the user may sign in.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// HasLocalPassword reports whether the user can sign in against the users table.
func (u *User) HasLocalPassword() bool {
	return u.PasswordHash != ""
}
