package dto

import (
	"strings"
	"time"

	domainErrors "github.com/polkiloo/authkeeper/internal/domain/errors"
	"github.com/polkiloo/authkeeper/internal/domain/model"
)

const birthDateLayout = "2006-01-02"

// RegisterRequest is the registration payload. Keys match the existing client contract.
type RegisterRequest struct {
	Names       string `json:"nombres"`
	Surnames    string `json:"apellidos"`
	BirthDate   string `json:"fechaNacimiento"`
	Sex         string `json:"sexo"`
	CivilStatus string `json:"estadoCivil"`
	NationalID  string `json:"rut"`
	Address     string `json:"direccion"`
	JobTitle    string `json:"cargo"`
	Email       string `json:"email"`
	Phone       string `json:"telefono"`
	Password    string `json:"password"`
}

// Profile converts the payload into domain profile data.
func (r RegisterRequest) Profile() (model.Profile, error) {
	birthDate, err := ParseBirthDate(r.BirthDate)
	if err != nil {
		return model.Profile{}, err
	}
	return model.Profile{
		Names:       r.Names,
		Surnames:    r.Surnames,
		BirthDate:   birthDate,
		Sex:         r.Sex,
		CivilStatus: r.CivilStatus,
		NationalID:  r.NationalID,
		Address:     r.Address,
		JobTitle:    r.JobTitle,
		Phone:       r.Phone,
	}, nil
}

// ParseBirthDate accepts a calendar date or an RFC 3339 timestamp. Empty input means no date.
// The result is always midnight UTC of the calendar date as written, so every
// store keeps the same value.
func ParseBirthDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(birthDateLayout, value)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, value); err != nil {
			return nil, domainErrors.ErrInvalidInput
		}
	}
	y, m, d := t.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &date, nil
}

// LoginRequest describes email/password payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type TokenValidityResponse struct {
	Valid bool `json:"valid"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse tags err with its kind; message overrides err's text when set.
func NewErrorResponse(err error, message string) ErrorResponse {
	if message == "" {
		message = err.Error()
	}
	return ErrorResponse{Code: string(domainErrors.KindOf(err)), Message: message}
}
