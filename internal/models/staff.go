package models

import "time"

// Staff — сотрудник производства (портной, QA, кладовщик и т.п.).
type Staff struct {
	ID        string    `json:"id" validate:"required"`
	FullName  string    `json:"fullName" validate:"required"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

type StaffInput struct {
	FullName string `json:"fullName,omitempty" validate:"required,min=2,max=120"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,max=20"`
	RoleID   string `json:"roleId,omitempty"`
	Active   *bool  `json:"active,omitempty"`
}
