package dto

import (
	"errors"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/authkeeper/internal/domain/errors"
)

func TestParseBirthDate(t *testing.T) {
	got, err := ParseBirthDate("")
	if err != nil || got != nil {
		t.Fatalf("expected no date for empty input, got %v %v", got, err)
	}

	got, err = ParseBirthDate("1990-05-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(time.Date(1990, time.May, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %v", got)
	}

	for _, stamp := range []string{"1990-05-01T03:00:00-03:00", "1990-05-01T23:30:00-05:00", "1990-05-01T00:00:00Z"} {
		got, err = ParseBirthDate(stamp)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", stamp, err)
		}
		if !got.Equal(time.Date(1990, time.May, 1, 0, 0, 0, 0, time.UTC)) || got.Location() != time.UTC {
			t.Fatalf("expected timestamp %q truncated to its calendar date, got %v", stamp, got)
		}
	}

	if _, err := ParseBirthDate("01/05/1990"); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestRegisterRequestProfile(t *testing.T) {
	req := RegisterRequest{
		Names:       "Ana",
		Surnames:    "Rojas",
		BirthDate:   "1990-05-01",
		Sex:         "F",
		CivilStatus: "soltera",
		NationalID:  "12.345.678-9",
		Address:     "Calle 1",
		JobTitle:    "electrician",
		Email:       "a@x.com",
		Phone:       "+56 9 1234 5678",
		Password:    "secret1",
	}
	profile, err := req.Profile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Names != "Ana" || profile.NationalID != "12.345.678-9" || profile.Phone != "+56 9 1234 5678" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if profile.BirthDate == nil {
		t.Fatal("expected birth date")
	}

	req.BirthDate = "yesterday"
	if _, err := req.Profile(); err == nil {
		t.Fatal("expected error for invalid birth date")
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(domainErrors.ErrAlreadyExists, "")
	if resp.Code != "duplicate_email" || resp.Message != "email already registered" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	resp = NewErrorResponse(errors.New("boom"), "error logging in: boom")
	if resp.Code != "internal" || resp.Message != "error logging in: boom" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
