package model

import "time"

// User represents a registered account together with its profile.
type User struct {
	ID           string
	Names        string
	Surnames     string
	BirthDate    *time.Time
	Sex          string
	CivilStatus  string
	NationalID   string
	Address      string
	JobTitle     string
	Email        string
	Phone        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

// Profile holds the descriptive attributes supplied at registration.
type Profile struct {
	Names       string
	Surnames    string
	BirthDate   *time.Time
	Sex         string
	CivilStatus string
	NationalID  string
	Address     string
	JobTitle    string
	Phone       string
}

// NewUser builds a non-admin user from profile data and an already hashed password.
func NewUser(email string, profile Profile, passwordHash string) *User {
	return &User{
		Names:        profile.Names,
		Surnames:     profile.Surnames,
		BirthDate:    profile.BirthDate,
		Sex:          profile.Sex,
		CivilStatus:  profile.CivilStatus,
		NationalID:   profile.NationalID,
		Address:      profile.Address,
		JobTitle:     profile.JobTitle,
		Email:        email,
		Phone:        profile.Phone,
		PasswordHash: passwordHash,
	}
}
