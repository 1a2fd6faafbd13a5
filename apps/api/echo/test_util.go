package echoapi

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/kingsolomonjunior/admissions/core"
	"github.com/kingsolomonjunior/admissions/core/enrollment"
	"github.com/kingsolomonjunior/admissions/core/notification"
	emailsvc "github.com/kingsolomonjunior/admissions/services/email"
	exportsvc "github.com/kingsolomonjunior/admissions/services/export"
	smssvc "github.com/kingsolomonjunior/admissions/services/sms"
	inmemdb "github.com/kingsolomonjunior/admissions/storage/database/inmem"
)

const (
	testAdminEmail    = "admissions@test.ksj"
	testAdminPassword = "0p3n-s3sam3!"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

type testLogger struct{}

func (testLogger) Debug(msg string, args ...interface{}) {}
func (testLogger) Info(msg string, args ...interface{})  {}
func (testLogger) Warn(msg string, args ...interface{})  {}
func (testLogger) Error(msg string, args ...interface{}) {}
func (testLogger) Fatal(msg string, args ...interface{}) {}

func setupServer(t *testing.T) (Server, *enrollment.Service, *notification.Service) {
	t.Helper()

	core.Conf.Debug = false
	core.Conf.TestMode = true
	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("setupServer() failed: %v", err)
	}
	core.Conf.Admin = core.AdminConfig{Email: testAdminEmail, PasswordHash: string(hash)}

	emailsvc.ClearSentMessages()
	smssvc.ClearSentMessages()

	db, err := inmemdb.Open("") // memory only
	if err != nil {
		t.Fatalf("setupServer() failed: %v", err)
	}
	notifSvc := notification.NewService(
		inmemdb.NewNotificationLog(db),
		emailsvc.NewConsoleServiceMock(),
		smssvc.NewConsoleServiceMock(),
	)
	enrollSvc := enrollment.NewService(inmemdb.NewApplicationRepository(db), notifSvc, testLogger{})

	srv := NewServer(&Options{
		DisableReqLogs: true,
		Logger:         testLogger{},
		EnrollSvc:      enrollSvc,
		NotifSvc:       notifSvc,
		ExportSvc:      exportsvc.NewService(testLogger{}),
	})
	return srv, enrollSvc, notifSvc
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

type upload struct {
	field       string
	name        string
	contentType string
	data        []byte
}

func newMultipartRequest(t *testing.T, path string, fields map[string]string, uploads ...upload) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for field, value := range fields {
		if err := w.WriteField(field, value); err != nil {
			t.Fatalf("newMultipartRequest() failed: %v", err)
		}
	}
	for _, up := range uploads {
		hdr := make(map[string][]string)
		hdr["Content-Disposition"] = []string{`form-data; name="` + up.field + `"; filename="` + up.name + `"`}
		hdr["Content-Type"] = []string{up.contentType}
		part, err := w.CreatePart(hdr)
		if err != nil {
			t.Fatalf("newMultipartRequest() failed: %v", err)
		}
		if _, err := io.Copy(part, bytes.NewReader(up.data)); err != nil {
			t.Fatalf("newMultipartRequest() failed: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("newMultipartRequest() failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	return req, rec
}

func getAdminToken(t *testing.T) string {
	token, err := GenerateToken(GetAdminClaims(testAdminEmail))
	if err != nil {
		t.Fatalf("getAdminToken() failed: %v", err)
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
