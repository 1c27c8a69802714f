package model

import "time"

// Roles a user account can hold.
const (
	RolePatient       = "patient"
	RoleDoctor        = "doctor"
	RolePharmacist    = "pharmacist"
	RoleResearcher    = "researcher"
	RoleAdministrator = "administrator"
)

// ValidRole reports whether role is one of the recognised account roles.
func ValidRole(role string) bool {
	switch role {
	case RolePatient, RoleDoctor, RolePharmacist, RoleResearcher, RoleAdministrator:
		return true
	}
	return false
}

// User represents a user account in the database.
type User struct {
	ID                  int64
	Username            string
	Email               string
	PasswordHash        string
	Role                string
	LicenseNumber       string
	Specialization      string
	HospitalAffiliation string
	Verified            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// RegisterRequest represents an account registration request.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Role     string `json:"role" validate:"omitempty,oneof=patient doctor pharmacist researcher administrator"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserInfo is the compact user representation returned alongside a token.
type UserInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// AuthResponse represents an authentication response with a session token and user info.
type AuthResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// Profile is the full user profile returned by the profile endpoint.
type Profile struct {
	ID                  int64  `json:"id"`
	Username            string `json:"username"`
	Email               string `json:"email"`
	Role                string `json:"role"`
	LicenseNumber       string `json:"license_number"`
	Specialization      string `json:"specialization"`
	HospitalAffiliation string `json:"hospital_affiliation"`
	Verified            bool   `json:"verified"`
}

// ProfileResponse wraps the profile the way the auth endpoints wrap user data.
type ProfileResponse struct {
	User Profile `json:"user"`
}
