package domain

import "time"

// Role is the role of a user in the system
type Role string

const (
	RoleDriver   Role = "driver"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

// Valid returns true if the role is known
func (r Role) Valid() bool {
	return r == RoleDriver || r == RoleProvider || r == RoleAdmin
}

// UserStatus is the account status of a user
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusPending   UserStatus = "pending"
)

// Valid returns true if the status is known
func (s UserStatus) Valid() bool {
	return s == UserStatusActive || s == UserStatusSuspended || s == UserStatusPending
}

// User represents an account: driver, parking provider or admin
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Phone        *string
	Role         Role
	Status       UserStatus
	ProfileImage *string

	// WalletBalance is the materialized balance of the wallet ledger
	WalletBalance float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin returns true for admin accounts
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// IsProvider returns true for provider accounts
func (u *User) IsProvider() bool { return u.Role == RoleProvider }

// IsSuspended returns true for suspended accounts
func (u *User) IsSuspended() bool { return u.Status == UserStatusSuspended }

// Vehicle is a vehicle registered by a driver
type Vehicle struct {
	ID          int64
	UserID      int64
	VehicleType string
	PlateNumber string
	Model       string
	IsEV        bool
}

// SavedPlace is a named location saved by a driver
type SavedPlace struct {
	ID        int64
	UserID    int64
	Name      string
	Address   string
	Latitude  float64
	Longitude float64
}

// UserListFilter фильтр для выборки пользователей (админские списки)
type UserListFilter struct {
	Role   *Role
	Status *UserStatus
}
