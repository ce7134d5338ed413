package models

import (
	"time"
)

// Role defines the user role type
type Role string

const (
	RolePropertyOwner      Role = "property_owner"
	RoleGovernmentOfficial Role = "government_official"
	RoleAdmin              Role = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePropertyOwner, RoleGovernmentOfficial, RoleAdmin:
		return true
	}
	return false
}

// CanVerifyProperties reports whether the role may act on property
// verifications and availability update requests.
func (r Role) CanVerifyProperties() bool {
	return r == RoleGovernmentOfficial || r == RoleAdmin
}

// User defines the user model based on the 'users' table.
// Role is immutable after creation; there is no role-change workflow.
type User struct {
	ID         int64     `json:"id" db:"id"`
	Email      string    `json:"email" db:"email"`
	Password   string    `json:"-" db:"password"`
	FullName   string    `json:"full_name" db:"full_name"`
	Phone      string    `json:"phone" db:"phone"`
	Role       Role      `json:"role" db:"role"`
	IsVerified bool      `json:"is_verified" db:"is_verified"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
