package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/core"
	"github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/core/analytics"
	aisvc "github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/services/ai"
	emailsvc "github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/services/email"
	logsvc "github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/services/logger"
	inmemdb "github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/storage/database/inmem"
)

type testApp struct {
	Server
	mailSvc *emailsvc.ConsoleServiceMock
}

// newTestApp builds a server over a freshly seeded store.
func newTestApp(t *testing.T) testApp {
	conf := &core.Config{
		AppName:          "Skill Gap Analytics",
		Env:              "TEST",
		TestMode:         true,
		DefaultFromEmail: "noreply@school.edu",
		Server:           core.ServerConfig{DisableReqLogs: true},
		Alerts: core.AlertsConfig{
			NotifyEmail:      "ops@school.edu",
			NotifySeverities: []string{analytics.SeverityCritical, analytics.SeverityHigh},
		},
	}
	logger := logsvc.NewRollbarLogger(zap.NewNop().Sugar(), conf)

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open(): %v", err)
	}
	inmemdb.Seed(db, time.Now())

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	analytics.InitValidators(validate, translator)

	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	svc := analytics.NewService(
		inmemdb.NewRepository(db),
		aisvc.NewMockEngine(aisvc.NewRandSource(1)),
		mailSvc,
		logger,
		conf,
	)

	return testApp{
		Server: NewServer(ServerDeps{
			Conf:       conf,
			Logger:     logger,
			Svc:        svc,
			Validate:   validate,
			Translator: translator,
		}),
		mailSvc: mailSvc,
	}
}

type httpErr struct {
	Error   string            `json:"error"`
	Details []core.FieldError `json:"details,omitempty"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

// do sends the request to the app & decodes the response body into out (when not nil).
func (app testApp) do(t *testing.T, method, path string, body []byte, out interface{}) *httptest.ResponseRecorder {
	t.Helper()
	req, rec := newRequest(method, path, body)
	app.ServeHTTP(rec, req)
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decoding %s %s response %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, app testApp, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
