package echoapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/campushq/placetrack/core"
	"github.com/campushq/placetrack/core/user"
	testutil "github.com/campushq/placetrack/tests"
)

func Test_authApi_userRegister(t *testing.T) {
	app := setup(t)
	testutil.CreateUser(t, usrRepo, "Jane Doe", "jane@test.cd", "LeSecret", user.RoleStudent)

	tests := []httpTest{
		{
			name: "empty body", body: []byte("{}"), wantCode: http.StatusBadRequest,
			wantData: jsonErr("",
				core.FieldError{Field: "name", Error: "this field is required"},
				core.FieldError{Field: "email", Error: "this field is required"},
				core.FieldError{Field: "password", Error: "this field is required"},
			),
		},
		{
			name: "invalid email", body: []byte(`{"name":"John","email":"nope","password":"S3kr3tW0rd"}`),
			wantCode: http.StatusBadRequest,
			wantData: jsonErr("", core.FieldError{Field: "email", Error: "email must be a valid email address"}),
		},
		{
			name: "short password", body: []byte(`{"name":"John","email":"john@test.cd","password":"ab1"}`),
			wantCode: http.StatusBadRequest,
			wantData: jsonErr("", core.FieldError{Field: "password", Error: "password must contain at least 6 characters"}),
		},
		{
			name: "all numeric password", body: []byte(`{"name":"John","email":"john@test.cd","password":"19941994"}`),
			wantCode: http.StatusBadRequest,
			wantData: jsonErr("", core.FieldError{Field: "password", Error: "password cannot be entirely numeric"}),
		},
		{
			name: "password similar to email", body: []byte(`{"name":"John","email":"john@test.cd","password":"john@test.cd"}`),
			wantCode: http.StatusBadRequest,
			wantData: jsonErr("", core.FieldError{Field: "password", Error: "password cannot be similar to user attributes"}),
		},
		{
			name: "email taken", body: []byte(`{"name":"Jane Bis","email":"jane@test.cd","password":"LeSecret2"}`),
			wantCode: http.StatusBadRequest,
			wantData: jsonErr("", core.FieldError{Field: "email", Error: "a user with this email already exists"}),
		},
		{
			name: "email is normalized", body: []byte(`{"name":"Jane Bis","email":" JANE@test.cd ","password":"LeSecret2"}`),
			wantCode: http.StatusBadRequest,
			wantData: jsonErr("", core.FieldError{Field: "email", Error: "a user with this email already exists"}),
		},
		{
			name: "registration ok", body: []byte(`{"name":"John","email":"john@test.cd","password":"S3kr3tW0rd","college":"MIT","graduationYear":2026}`),
			wantCode: http.StatusCreated, wantData: jsonMsg(t, "User registered successfully"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/auth/register", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	// registration never grants admin
	usr, err := usrRepo.GetUserByEmail(context.Background(), "john@test.cd")
	if err != nil {
		t.Fatalf("GetUserByEmail() failed: %v", err)
	}
	if usr.Role != user.RoleStudent {
		t.Errorf("registered role = %v; want %v", usr.Role, user.RoleStudent)
	}
}

func Test_authApi_userLogin(t *testing.T) {
	app := setup(t)
	testutil.CreateUser(t, usrRepo, "Jane Doe", "jane@test.cd", "LeSecret", user.RoleStudent)

	invalidCreds := jsonErr("invalid credentials")
	tests := []httpTest{
		{
			name: "empty body", body: []byte("{}"), wantCode: http.StatusBadRequest,
			wantData: jsonErr("",
				core.FieldError{Field: "email", Error: "this field is required"},
				core.FieldError{Field: "password", Error: "this field is required"},
			),
		},
		{name: "unknown email", body: []byte(`{"email":"ghost@test.cd","password":"LeSecret"}`), wantCode: http.StatusUnauthorized, wantData: invalidCreds},
		{name: "wrong password", body: []byte(`{"email":"jane@test.cd","password":"NotIt"}`), wantCode: http.StatusUnauthorized, wantData: invalidCreds},
		{name: "login ok", body: []byte(`{"email":"jane@test.cd","password":"LeSecret"}`), wantCode: http.StatusOK, wantData: jsonMsg(t, "Login successful"), extra: true},
		{name: "email case-insensitive", body: []byte(`{"email":" Jane@Test.CD ","password":"LeSecret"}`), wantCode: http.StatusOK, wantData: jsonMsg(t, "Login successful"), extra: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/auth/login", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			wantCookie, _ := tt.extra.(bool)
			cookie := findTokenCookie(rec)
			if wantCookie {
				if cookie == nil {
					t.Fatal("expected a session cookie; got none")
				}
				if cookie.Value == "" {
					t.Error("session cookie has no value")
				}
				if !cookie.HttpOnly {
					t.Error("session cookie must be HttpOnly")
				}
			} else if cookie != nil {
				t.Errorf("unexpected session cookie: %v", cookie)
			}
		})
	}
}

func Test_authApi_userLogout(t *testing.T) {
	app := setup(t)
	usr := testutil.CreateUser(t, usrRepo, "Jane Doe", "jane@test.cd", "LeSecret", user.RoleStudent)

	tests := []httpTest{
		{name: "logout ok", token: getToken(t, usr), wantCode: http.StatusOK, wantData: jsonMsg(t, "Logged out successfully")},
		{name: "logout is idempotent", wantCode: http.StatusOK, wantData: jsonMsg(t, "Logged out successfully")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/auth/logout", tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			cookie := findTokenCookie(rec)
			if cookie == nil {
				t.Fatal("expected an expiring session cookie; got none")
			}
			if cookie.MaxAge >= 0 {
				t.Errorf("cookie.MaxAge = %v; want < 0", cookie.MaxAge)
			}
		})
	}
}

func Test_authApi_userMe(t *testing.T) {
	app := setup(t)
	student := testutil.CreateUser(t, usrRepo, "Jane Doe", "jane@test.cd", "LeSecret", user.RoleStudent)
	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin@test.cd", "LeSecret", user.RoleAdmin)

	tests := []httpTest{
		{name: "auth required", wantCode: http.StatusUnauthorized, wantData: errNotAuthenticated},
		{name: "garbage token", token: "no.pe.nope", wantCode: http.StatusUnauthorized, wantData: jsonErr("invalid or expired jwt")},
		{
			name: "student", token: getToken(t, student), wantCode: http.StatusOK,
			wantData: jsonData(t, map[string]string{"userId": student.ID, "role": user.RoleStudent}),
		},
		{
			name: "admin", token: getToken(t, admin), wantCode: http.StatusOK,
			wantData: jsonData(t, map[string]string{"userId": admin.ID, "role": user.RoleAdmin}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/v1/auth/me", tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func findTokenCookie(rec interface{ Result() *http.Response }) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == core.Conf.Server.JWTCookieName {
			return c
		}
	}
	return nil
}
