package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	echoapi "github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/apps/api/echo"
	"github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/core"
	"github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/core/analytics"
	aisvc "github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/services/ai"
	emailsvc "github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/services/email"
	logsvc "github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/services/logger"
	inmemdb "github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/storage/database/inmem"
)

// setup starts an API over a freshly seeded store.
// It returns a CLI writing to the returned buffer & the API's base URL.
func setup(t *testing.T) (*commandLine, *bytes.Buffer, string) {
	conf := &core.Config{TestMode: true, Server: core.ServerConfig{DisableReqLogs: true}}
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

	svc := analytics.NewService(
		inmemdb.NewRepository(db),
		aisvc.NewMockEngine(aisvc.NewRandSource(1)),
		emailsvc.NewConsoleServiceMock(conf),
		logger,
		conf,
	)
	srv := httptest.NewServer(echoapi.NewServer(echoapi.ServerDeps{
		Conf:       conf,
		Logger:     logger,
		Svc:        svc,
		Validate:   validate,
		Translator: translator,
	}))
	t.Cleanup(srv.Close)

	out := new(bytes.Buffer)
	return newCommandLine(out), out, srv.URL
}

type cliTest struct {
	name       string
	args       []string // without program name & --addr
	wantErrStr string
	check      func(t *testing.T, out []byte)
}

func Test_commandLine_run(t *testing.T) {
	tests := []cliTest{
		{
			name: "health",
			args: []string{"health"},
			check: func(t *testing.T, out []byte) {
				var status map[string]string
				require.NoError(t, json.Unmarshal(out, &status))
				assert.Equal(t, "healthy", status["status"])
			},
		},
		{
			name: "metrics",
			args: []string{"metrics"},
			check: func(t *testing.T, out []byte) {
				var metrics analytics.DashboardMetrics
				require.NoError(t, json.Unmarshal(out, &metrics))
				assert.Equal(t, analytics.DashboardMetrics{TotalStudents: 3, AssessmentsCompleted: 2, AvgMasteryScore: 68}, metrics)
				assert.Contains(t, string(out), "\n  \"totalStudents\": 3,")
			},
		},
		{
			name: "students",
			args: []string{"students"},
			check: func(t *testing.T, out []byte) {
				var stats []analytics.StudentWithStats
				require.NoError(t, json.Unmarshal(out, &stats))
				assert.Len(t, stats, 3)
			},
		},
		{
			name: "student by code",
			args: []string{"student", "ST001236"},
			check: func(t *testing.T, out []byte) {
				var std analytics.Student
				require.NoError(t, json.Unmarshal(out, &std))
				assert.Equal(t, "3", std.ID)
			},
		},
		{
			name:       "unknown student",
			args:       []string{"student", "ST0"},
			wantErrStr: "GET /api/students/code/ST0: 404 student not found",
		},
		{
			name: "alerts",
			args: []string{"alerts"},
			check: func(t *testing.T, out []byte) {
				var alerts []analytics.Alert
				require.NoError(t, json.Unmarshal(out, &alerts))
				assert.Len(t, alerts, 3)
			},
		},
		{
			name: "read alert",
			args: []string{"read", "alert-1"},
			check: func(t *testing.T, out []byte) {
				var alert analytics.Alert
				require.NoError(t, json.Unmarshal(out, &alert))
				assert.True(t, alert.IsRead)
			},
		},
		{
			name:       "read unknown alert",
			args:       []string{"read", "nope"},
			wantErrStr: "PATCH /api/alerts/nope/read: 404 alert not found",
		},
		{
			name:       "read without id",
			args:       []string{"read"},
			wantErrStr: "accepts 1 arg(s), received 0",
		},
		{
			name:       "unknown command",
			args:       []string{"lol"},
			wantErrStr: `unknown command "lol" for "dashctl"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, out, addr := setup(t)

			err := cli.run(append(tt.args, "--addr", addr))
			if tt.wantErrStr != "" {
				if assert.Error(t, err) {
					assert.Equal(t, tt.wantErrStr, err.Error())
				}
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, out.Bytes())
			}
		})
	}
}

func Test_commandLine_unreadAlerts(t *testing.T) {
	cli, out, addr := setup(t)

	require.NoError(t, cli.run([]string{"read", "alert-2", "--addr", addr}))
	out.Reset()

	require.NoError(t, cli.run([]string{"alerts", "--unread", "--addr", addr}))
	var alerts []analytics.Alert
	require.NoError(t, json.Unmarshal(out.Bytes(), &alerts))
	ids := make([]string, 0, len(alerts))
	for _, a := range alerts {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"alert-1", "alert-3"}, ids)
	assert.False(t, strings.Contains(out.String(), "alert-2"))
}
