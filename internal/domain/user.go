package domain

import "time"

// UserStatus represents lifecycle states for a user account.
type UserStatus string

const (
	UserStatusNew      UserStatus = "new"
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusDeleted  UserStatus = "deleted"
	UserStatusArchived UserStatus = "archived"
)

// UserStatuses lists every accepted status value.
var UserStatuses = []UserStatus{
	UserStatusNew,
	UserStatusActive,
	UserStatusInactive,
	UserStatusDeleted,
	UserStatusArchived,
}

// Valid reports whether s is one of the known statuses.
func (s UserStatus) Valid() bool {
	for _, status := range UserStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// BlocksLogin reports whether an account in this status may not sign in.
func (s UserStatus) BlocksLogin() bool {
	switch s {
	case UserStatusInactive, UserStatusDeleted, UserStatusArchived:
		return true
	}
	return false
}

// User is a registered identity. Password always holds a bcrypt hash.
type User struct {
	UserID    string     `json:"userId" bson:"userId"`
	Name      string     `json:"name" bson:"name"`
	Email     string     `json:"email" bson:"email"`
	Password  string     `json:"password" bson:"password"`
	Role      string     `json:"role" bson:"role"`
	Status    UserStatus `json:"status" bson:"status"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
}

// UserPatch carries the fields supplied to an update. Nil means untouched.
type UserPatch struct {
	Name     *string     `json:"name,omitempty" validate:"omitempty,min=1"`
	Email    *string     `json:"email,omitempty" validate:"omitempty,min=1"`
	Password *string     `json:"password,omitempty" validate:"omitempty,min=1"`
	Role     *string     `json:"role,omitempty" validate:"omitempty,min=1"`
	Status   *UserStatus `json:"status,omitempty" validate:"omitempty,user_status"`
}

// Fields returns the supplied values keyed by stored field name.
func (p UserPatch) Fields() map[string]any {
	fields := make(map[string]any, 5)
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Email != nil {
		fields["email"] = *p.Email
	}
	if p.Password != nil {
		fields["password"] = *p.Password
	}
	if p.Role != nil {
		fields["role"] = *p.Role
	}
	if p.Status != nil {
		fields["status"] = string(*p.Status)
	}
	return fields
}

// Apply merges the patch into u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
}
