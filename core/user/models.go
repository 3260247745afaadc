package user

import (
	"time"

	"github.com/trezcool/lms/core"
)

type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"` // raw stored value, checked by Actor()
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

func (u User) IsAdmin() bool   { return u.Role == string(core.RoleAdmin) }
func (u User) IsTeacher() bool { return u.Role == string(core.RoleTeacher) }
func (u User) IsStudent() bool { return u.Role == string(core.RoleStudent) }

// Actor returns the acting identity of the user, rejecting unknown roles.
func (u User) Actor() (core.Actor, error) {
	role, err := core.ParseRole(u.Role)
	if err != nil {
		return core.Actor{}, err
	}
	return core.Actor{ID: u.ID, Username: u.Username, Email: u.Email, Role: role}, nil
}

// Instructor is the public view of a teacher.
type Instructor struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// NewUser contains information needed to create or update a User.
type NewUser struct {
	Name     string `json:"name"`
	Username string `json:"username" validate:"required,min=3,alphanum_"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,role"`
	IsActive *bool  `json:"is_active"`
}

// QueryFilter applies an AND operation on its non-zero fields.
type QueryFilter struct {
	Role     core.Role
	IsActive *bool
}
