package echoapi

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campushq/placetrack/core"
	"github.com/campushq/placetrack/core/analytics"
	"github.com/campushq/placetrack/core/application"
	"github.com/campushq/placetrack/core/user"
	emailsvc "github.com/campushq/placetrack/services/email"
	logsvc "github.com/campushq/placetrack/services/logger"
	dummydb "github.com/campushq/placetrack/storage/database/dummy"
)

var (
	usrRepo user.Repository
	appRepo application.Repository

	errNotAuthenticated = jsonErr("user not authenticated")
	errPermissionDenied = jsonErr("permission denied")
)

func setup(t *testing.T) Server {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	usrRepo = dummydb.NewUserRepository(db)
	appRepo = dummydb.NewApplicationRepository(db)
	anRepo := dummydb.NewAnalyticsRepository(db)

	mailSvc := emailsvc.NewConsoleServiceMock()
	usrSvc := user.NewService(usrRepo, mailSvc)
	appSvc := application.NewService(appRepo, usrRepo, nil)
	anSvc := analytics.NewService(anRepo, usrRepo, appRepo, nil)

	return NewServer(
		&Options{
			DisableReqLogs: true,
			Logger:         logsvc.NewStdLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags)),
			SignalShutdown: func() {},
			UserSvc:        usrSvc,
			AppSvc:         appSvc,
			AnalyticsSvc:   anSvc,
		},
	)
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: core.Conf.Server.JWTCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	claims := GetUserClaims(usr)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonErr(msg string, fields ...core.FieldError) []byte {
	data, _ := json.Marshal(response{Message: msg, Errors: fields})
	return data
}

func jsonData(t *testing.T, data interface{}) []byte {
	return marchallObj(t, response{Success: true, Data: data})
}

func jsonMsg(t *testing.T, msg string) []byte {
	return marchallObj(t, response{Success: true, Message: msg})
}

func jsonPage(t *testing.T, items interface{}, p application.Pagination) []byte {
	return marchallObj(t, response{Success: true, Data: items, Pagination: &p})
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
