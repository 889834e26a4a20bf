package echoapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/sessionbook/core"
	"github.com/trezcool/sessionbook/core/contact"
	"github.com/trezcool/sessionbook/core/school"
	"github.com/trezcool/sessionbook/core/session"
	"github.com/trezcool/sessionbook/core/sessionedit"
	"github.com/trezcool/sessionbook/core/user"
	emailsvc "github.com/trezcool/sessionbook/services/email"
	logsvc "github.com/trezcool/sessionbook/services/logger"
	dummydb "github.com/trezcool/sessionbook/storage/database/dummy"
)

const testToken = "s3cr3t-t0k3n"

var (
	schRepo  school.Repository
	usrRepo  user.Repository
	sessRepo session.Repository
	editRepo sessionedit.Repository
	contRepo contact.Repository

	errMissingToken = httpErr{Error: "unauthorized"}
	errBadID        = httpErr{Error: "invalid id"}
)

func testConfig() *core.Config {
	return &core.Config{
		Env:      core.EnvTest,
		TestMode: true,
		AppName:  "Sessionbook",
		Build:    "test",
		Server: core.ServerConfig{
			DisableReqLogs: true,
			APIToken:       testToken,
		},
		DefaultFromEmail:  mail.Address{Name: "Sessionbook", Address: "noreply@sessionbook.test"},
		ContactRecipients: []mail.Address{{Address: "office@sessionbook.test"}},
	}
}

// setup returns a Server backed by a fresh in-memory store. Repositories may be
// swapped through wrap, e.g. to observe the calls reaching the store.
func setup(t *testing.T, wrap ...func(*ServerDeps)) *Server {
	t.Helper()
	conf := testConfig()

	// set up DB & repos
	db, err := dummydb.Open()
	require.NoError(t, err)
	schRepo = dummydb.NewSchoolRepository(db)
	usrRepo = dummydb.NewUserRepository(db)
	sessRepo = dummydb.NewSessionRepository(db)
	editRepo = dummydb.NewSessionEditRepository(db)
	contRepo = dummydb.NewContactRepository(db)

	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	logger.Enable(false)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	require.NoError(t, core.ParseEmailTemplates())

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(conf, logger)

	deps := ServerDeps{
		Conf:       conf,
		Logger:     logger,
		SchoolSvc:  school.NewService(schRepo),
		UserSvc:    user.NewService(usrRepo),
		SessionSvc: session.NewService(sessRepo),
		EditSvc:    sessionedit.NewService(editRepo),
		ContactSvc: contact.NewService(contRepo, mailSvc, conf.ContactRecipients),
		Validate:   validate,
		Translator: translator,
	}
	for _, w := range wrap {
		w(&deps)
	}

	srv := NewServer(deps)
	t.Cleanup(func() { _ = srv.Close() })
	return srv
}

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
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

// checkCodeAndData compares status codes and JSON bodies; list order matters.
func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, tt.wantCode, rec.Code, "body: %s", rec.Body.String())
	if tt.wantData != nil {
		assert.JSONEq(t, string(tt.wantData), rec.Body.String())
	}
}

// runHTTPTests serves every test case; cases default to 200 with the API token.
func runHTTPTests(t *testing.T, app *Server, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}
		if tt.token == "" {
			tt.token = testToken
		} else if tt.token == "-" {
			tt.token = ""
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

// decode reads a JSON response into dst.
func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), "body: %s", rec.Body.String())
}
