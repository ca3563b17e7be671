package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/authkeeper/internal/domain/errors"
	"github.com/polkiloo/authkeeper/internal/domain/model"
	pkgAuth "github.com/polkiloo/authkeeper/internal/pkg/auth"
	"github.com/polkiloo/authkeeper/internal/server/http/dto"
	"github.com/polkiloo/authkeeper/internal/server/http/middleware"
	testhelpers "github.com/polkiloo/authkeeper/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type eventRecorderStub struct {
	events []string
}

func (r *eventRecorderStub) AuthEvent(event string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = string(domainErrors.KindOf(err))
	}
	r.events = append(r.events, event+":"+outcome)
}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, path, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", resp.Body.String(), err)
	}
	return body
}

func TestAuthHandlerRegister(t *testing.T) {
	email := testhelpers.RandomASCIIString(7, 14) + "@x.com"
	password := testhelpers.RandomASCIIString(16, 32)
	var gotProfile model.Profile
	facade := testhelpers.AuthFacadeStub{RegisterFn: func(_ context.Context, gotEmail, gotPassword string, profile model.Profile) (*model.User, error) {
		if gotEmail != email || gotPassword != password {
			t.Fatalf("unexpected credentials passed to facade: %q %q", gotEmail, gotPassword)
		}
		gotProfile = profile
		return model.NewUser(gotEmail, profile, "hash"), nil
	}}
	events := &eventRecorderStub{}

	body, _ := json.Marshal(map[string]string{
		"nombres":         "Ana",
		"apellidos":       "Rojas",
		"fechaNacimiento": "1990-05-01",
		"rut":             "12.345.678-9",
		"cargo":           "electrician",
		"email":           email,
		"password":        password,
	})
	resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(facade, events).Register, nil, body, jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if resp.Body.String() != "user registered successfully" {
		t.Fatalf("unexpected body %q", resp.Body.String())
	}
	if gotProfile.Names != "Ana" || gotProfile.NationalID != "12.345.678-9" || gotProfile.JobTitle != "electrician" {
		t.Fatalf("profile not forwarded: %+v", gotProfile)
	}
	if gotProfile.BirthDate == nil || !gotProfile.BirthDate.Equal(time.Date(1990, time.May, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("birth date not parsed: %v", gotProfile.BirthDate)
	}
	if len(events.events) != 1 || events.events[0] != "register:ok" {
		t.Fatalf("unexpected events %v", events.events)
	}
}

func TestAuthHandlerRegisterErrors(t *testing.T) {
	cases := []struct {
		name    string
		body    []byte
		err     error
		status  int
		code    string
		message string
	}{
		{name: "malformed json", body: []byte("{"), status: http.StatusBadRequest, code: "invalid_input"},
		{name: "bad birth date", body: []byte(`{"email":"a@x.com","password":"p","fechaNacimiento":"soon"}`), status: http.StatusBadRequest, code: "invalid_input"},
		{name: "validation", body: []byte(`{"email":"","password":"p"}`), err: domainErrors.ErrInvalidInput, status: http.StatusBadRequest, code: "invalid_input"},
		{name: "duplicate", body: []byte(`{"email":"a@x.com","password":"p"}`), err: domainErrors.ErrAlreadyExists, status: http.StatusBadRequest, code: "duplicate_email", message: "email already registered"},
		{name: "internal", body: []byte(`{"email":"a@x.com","password":"p"}`), err: errors.New("db down"), status: http.StatusInternalServerError, code: "internal", message: "error registering user: db down"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			facade := testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, model.Profile) (*model.User, error) {
				if tc.err == nil {
					t.Fatal("facade must not be called")
				}
				return nil, tc.err
			}}
			events := &eventRecorderStub{}
			resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(facade, events).Register, nil, tc.body, jsonHeaders)
			if resp.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, resp.Code)
			}
			body := decodeError(t, resp)
			if body.Code != tc.code {
				t.Fatalf("expected code %q, got %q", tc.code, body.Code)
			}
			if tc.message != "" && body.Message != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, body.Message)
			}
			if len(events.events) != 1 || events.events[0] != "register:"+tc.code {
				t.Fatalf("unexpected events %v", events.events)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	facade := testhelpers.AuthFacadeStub{AuthenticateFn: func(_ context.Context, email, password string) (string, error) {
		if email != "a@x.com" || password != "secret1" {
			t.Fatalf("unexpected credentials %q %q", email, password)
		}
		return "signed-token", nil
	}}
	body, _ := json.Marshal(dto.LoginRequest{Email: "a@x.com", Password: "secret1"})
	resp := performRequest(t, http.MethodPost, "/login", NewAuthHandler(facade, &eventRecorderStub{}).Login, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var got dto.LoginResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Token != "signed-token" || got.Message != "login successful" {
		t.Fatalf("unexpected response %+v", got)
	}
}

func TestAuthHandlerLoginErrors(t *testing.T) {
	cases := []struct {
		name    string
		body    []byte
		err     error
		status  int
		code    string
		message string
	}{
		{name: "malformed json", body: []byte("nope"), status: http.StatusBadRequest, code: "invalid_input"},
		{name: "not found", body: []byte(`{"email":"a@x.com","password":"p"}`), err: domainErrors.ErrNotFound, status: http.StatusBadRequest, code: "user_not_found", message: "user not found"},
		{name: "wrong password", body: []byte(`{"email":"a@x.com","password":"p"}`), err: domainErrors.ErrIncorrectPassword, status: http.StatusBadRequest, code: "incorrect_password", message: "incorrect password"},
		{name: "internal", body: []byte(`{"email":"a@x.com","password":"p"}`), err: errors.New("timeout"), status: http.StatusInternalServerError, code: "internal", message: "error logging in: timeout"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			facade := testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
				if tc.err == nil {
					t.Fatal("facade must not be called")
				}
				return "", tc.err
			}}
			resp := performRequest(t, http.MethodPost, "/login", NewAuthHandler(facade, &eventRecorderStub{}).Login, nil, tc.body, jsonHeaders)
			if resp.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, resp.Code)
			}
			body := decodeError(t, resp)
			if body.Code != tc.code {
				t.Fatalf("expected code %q, got %q", tc.code, body.Code)
			}
			if tc.message != "" && body.Message != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, body.Message)
			}
		})
	}
}

func TestAuthHandlerCheckTokenValidity(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/check", NewAuthHandler(testhelpers.AuthFacadeStub{}, &eventRecorderStub{}).CheckTokenValidity, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Body.String() != `{"valid":true}` {
		t.Fatalf("unexpected body %q", resp.Body.String())
	}
}

func TestAuthHandlerLogout(t *testing.T) {
	claims := testhelpers.NewClaims("1", "jti-1", time.Now().Add(time.Hour))
	var revoked *pkgAuth.Claims
	facade := testhelpers.AuthFacadeStub{RevokeFn: func(_ context.Context, c *pkgAuth.Claims) error {
		revoked = c
		return nil
	}}
	setup := func(c *gin.Context) { c.Set(middleware.ClaimsContextKey, claims) }

	resp := performRequest(t, http.MethodPost, "/logout", NewAuthHandler(facade, &eventRecorderStub{}).Logout, setup, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if revoked != claims {
		t.Fatal("expected claims to be revoked")
	}
	if resp.Body.String() != `{"message":"logged out"}` {
		t.Fatalf("unexpected body %q", resp.Body.String())
	}
}

func TestAuthHandlerLogoutErrors(t *testing.T) {
	resp := performRequest(t, http.MethodPost, "/logout", NewAuthHandler(testhelpers.AuthFacadeStub{}, &eventRecorderStub{}).Logout, nil, nil, nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without claims, got %d", resp.Code)
	}

	facade := testhelpers.AuthFacadeStub{RevokeFn: func(context.Context, *pkgAuth.Claims) error {
		return errors.New("redis down")
	}}
	setup := func(c *gin.Context) {
		c.Set(middleware.ClaimsContextKey, testhelpers.NewClaims("1", "jti", time.Now().Add(time.Hour)))
	}
	resp = performRequest(t, http.MethodPost, "/logout", NewAuthHandler(facade, &eventRecorderStub{}).Logout, setup, nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if body := decodeError(t, resp); body.Message != "error logging out: redis down" {
		t.Fatalf("unexpected message %q", body.Message)
	}
}

func TestStatusFor(t *testing.T) {
	cases := map[domainErrors.Kind]int{
		domainErrors.KindInvalidInput:      http.StatusBadRequest,
		domainErrors.KindDuplicateEmail:    http.StatusBadRequest,
		domainErrors.KindUserNotFound:      http.StatusBadRequest,
		domainErrors.KindIncorrectPassword: http.StatusBadRequest,
		domainErrors.KindTokenMissing:      http.StatusForbidden,
		domainErrors.KindTokenInvalid:      http.StatusForbidden,
		domainErrors.KindInternal:          http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := statusFor(kind); got != want {
			t.Fatalf("kind %s: expected %d, got %d", kind, want, got)
		}
	}
}
