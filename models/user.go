package models

import "strings"

// Role gates which operations and which orders a user can see.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleDriver   Role = "driver"
	RoleManager  Role = "manager"
)

// ParseRole normalizes a stored role value. Stored values may be blank-padded
// (fixed-width CHAR columns), so surrounding space is ignored.
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleCustomer, RoleDriver, RoleManager:
		return r, true
	}
	return "", false
}

// User represents a registered account.
// It maps to the `Users` table.
type User struct {
	Login         string  `db:"login" json:"login"`
	Password      string  `db:"password" json:"-"`
	Role          Role    `db:"role" json:"role"`
	FavoriteItems *string `db:"favoriteItems" json:"favorite_items,omitempty"`
	PhoneNum      string  `db:"phoneNum" json:"phone_num"`
}

// Field limits enforced on user input.
const (
	MaxLoginLen    = 50
	MaxPasswordLen = 30
	MaxPhoneLen    = 20
)
