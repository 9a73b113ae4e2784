package analytics_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/core"
	"github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/core/analytics"
	aisvc "github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/services/ai"
	emailsvc "github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/services/email"
	inmemdb "github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/storage/database/inmem"
)

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

type fixture struct {
	svc     *analytics.Service
	mailSvc *emailsvc.ConsoleServiceMock
}

// setup builds a service over a fresh store (seeded when seed is true), with the clock frozen at testNow.
func setup(t *testing.T, seed bool) fixture {
	restore := analytics.SetNowFunc(func() time.Time { return testNow })
	t.Cleanup(restore)

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	if seed {
		inmemdb.Seed(db, testNow)
	}

	conf := &core.Config{
		AppName: "Skill Gap Analytics",
		Alerts: core.AlertsConfig{
			NotifyEmail:      "Ops <ops@school.edu>, head@school.edu",
			NotifySeverities: []string{analytics.SeverityCritical},
		},
	}
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	svc := analytics.NewService(
		inmemdb.NewRepository(db),
		aisvc.NewMockEngine(aisvc.NewRandSource(7)),
		mailSvc,
		nil, /* logger */
		conf,
	)
	return fixture{svc: svc, mailSvc: mailSvc}
}

func newValidator() *validator.Validate {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	analytics.InitValidators(validate, translator)
	return validate
}

func scorePtr(f float64) *core.Score {
	s := core.NewScore(f)
	return &s
}

func intPtr(i int) *int { return &i }

func nullInt(i int) null.Int { return null.IntFrom(i) }

func TestService_CreateStudent(t *testing.T) {
	fx := setup(t, true)

	std, err := fx.svc.CreateStudent(analytics.NewStudent{StudentCode: "ST9", FirstName: "Ada", LastName: "Lovelace", Grade: "6th Grade"})
	require.NoError(t, err)
	assert.Equal(t, analytics.RiskLow, std.RiskLevel)
	assert.Equal(t, testNow, std.CreatedAt)
	assert.Equal(t, testNow, std.UpdatedAt)

	got, err := fx.svc.GetStudentByCode(" ST9 ")
	require.NoError(t, err)
	assert.Equal(t, std, got)

	metrics, err := fx.svc.DashboardMetrics()
	require.NoError(t, err)
	assert.Equal(t, 4, metrics.TotalStudents)
}

func TestService_notFound(t *testing.T) {
	fx := setup(t, false)

	_, err := fx.svc.GetStudent("nope")
	assert.True(t, core.IsNotFound(err))
	assert.EqualError(t, err, "student not found")

	_, err = fx.svc.UpdateStudent("nope", analytics.UpdateStudent{})
	assert.True(t, core.IsNotFound(err))

	_, err = fx.svc.GetSkill("nope")
	assert.True(t, core.IsNotFound(err))

	_, err = fx.svc.MarkAlertRead("nope")
	assert.True(t, core.IsNotFound(err))
	assert.EqualError(t, err, "alert not found")
}

func TestService_UpdateStudent(t *testing.T) {
	fx := setup(t, true)
	later := testNow.Add(time.Hour)
	defer analytics.SetNowFunc(func() time.Time { return later })()

	risk, email := analytics.RiskMedium, "sarah@school.edu"
	validate := newValidator()
	upd := analytics.UpdateStudent{RiskLevel: &risk}
	upd.Email.SetValid(email)
	orig, err := fx.svc.GetStudent("1")
	require.NoError(t, err)
	require.NoError(t, upd.Validate(orig, validate, fx.svc))

	std, err := fx.svc.UpdateStudent("1", upd)
	require.NoError(t, err)
	assert.Equal(t, analytics.RiskMedium, std.RiskLevel)
	assert.Equal(t, email, std.Email.String)
	assert.Equal(t, "Sarah", std.FirstName)
	assert.Equal(t, testNow, std.CreatedAt)
	assert.Equal(t, later, std.UpdatedAt)
}

func TestService_UpdateSkillMastery(t *testing.T) {
	fx := setup(t, true)

	first, err := fx.svc.UpdateSkillMastery("1", "skill-1", analytics.UpdateSkillMastery{Confidence: scorePtr(30)})
	require.NoError(t, err)
	assert.Equal(t, "0.00", first.MasteryScore.String()) // defaulted
	assert.Equal(t, "30.00", first.Confidence.String())

	later := testNow.Add(time.Minute)
	defer analytics.SetNowFunc(func() time.Time { return later })()

	second, err := fx.svc.UpdateSkillMastery("1", "skill-1", analytics.UpdateSkillMastery{MasteryScore: scorePtr(72.345)})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "72.35", second.MasteryScore.String())
	assert.Equal(t, "30.00", second.Confidence.String()) // merged
	assert.Equal(t, later, second.LastAssessed)

	records, err := fx.svc.StudentSkillMastery("1")
	require.NoError(t, err)
	if assert.Len(t, records, 1) {
		assert.Equal(t, second, records[0])
	}
}

func TestService_CreateProgress(t *testing.T) {
	fx := setup(t, false)

	tests := []struct {
		name            string
		previous        *core.Score
		current         *core.Score
		improvement     *core.Score
		wantImprovement string // empty: nil
	}{
		{name: "computed", previous: scorePtr(40), current: scorePtr(55.5), wantImprovement: "15.50"},
		{name: "regression", previous: scorePtr(60), current: scorePtr(45.25), wantImprovement: "-14.75"},
		{name: "explicit", previous: scorePtr(40), current: scorePtr(55), improvement: scorePtr(3), wantImprovement: "3.00"},
		{name: "first record", current: scorePtr(20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress, err := fx.svc.CreateProgress(analytics.NewProgressTracking{
				StudentID:     "1",
				SkillID:       "skill-1",
				PreviousScore: tt.previous,
				CurrentScore:  tt.current,
				Improvement:   tt.improvement,
			})
			require.NoError(t, err)
			if tt.wantImprovement == "" {
				assert.Nil(t, progress.Improvement)
				return
			}
			if assert.NotNil(t, progress.Improvement) {
				assert.Equal(t, tt.wantImprovement, progress.Improvement.String())
			}
		})
	}

	all, err := fx.svc.StudentProgress("1")
	require.NoError(t, err)
	assert.Len(t, all, len(tests))
}

func TestService_CreateCurriculumPlan(t *testing.T) {
	fx := setup(t, false)

	plan, err := fx.svc.CreateCurriculumPlan(analytics.NewCurriculumPlan{
		StudentID: "1",
		Subject:   "science",
		TimeFrame: "1 month",
		Weeks: []analytics.CurriculumWeek{
			{Week: 1, Title: "Cells", Hours: 3},
			{Week: 2, Title: "Organs", Hours: 4},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 7, plan.TotalHours)
	assert.False(t, plan.AIRecommendation.Valid)

	empty, err := fx.svc.CreateCurriculumPlan(analytics.NewCurriculumPlan{StudentID: "1", Subject: "science", TimeFrame: "1 week"})
	require.NoError(t, err)
	assert.Zero(t, empty.TotalHours)
	assert.NotNil(t, empty.Weeks)

	plans, err := fx.svc.StudentCurriculumPlans("1")
	require.NoError(t, err)
	assert.Len(t, plans, 2)
}

func TestService_GenerateCurriculum(t *testing.T) {
	fx := setup(t, true)

	plan, err := fx.svc.GenerateCurriculum(analytics.GenerateCurriculumRequest{StudentID: "1", Subject: "mathematics", TimeFrame: "2 weeks"})
	require.NoError(t, err)
	assert.Len(t, plan.Weeks, 2)
	assert.Equal(t, 18, plan.TotalHours)
	assert.Equal(t, testNow, plan.CreatedAt)
	assert.True(t, plan.AIRecommendation.Valid)
}

func TestService_AssessSkills(t *testing.T) {
	fx := setup(t, true)

	req := analytics.AssessSkillsRequest{
		StudentID:    "2",
		AssessmentID: "assess-2",
		Responses:    []json.RawMessage{json.RawMessage(`"a"`), json.RawMessage(`"b"`), json.RawMessage(`"c"`)},
	}
	result, err := fx.svc.AssessSkills(req)
	require.NoError(t, err)
	assert.Equal(t, "2", result.StudentID)
	require.Len(t, result.Mastery, 3)

	again, err := fx.svc.AssessSkills(req)
	require.NoError(t, err)

	records, err := fx.svc.StudentSkillMastery("2")
	require.NoError(t, err)
	require.Len(t, records, 3)
	// skill-3 is not a known skill, its reference is stored as is
	assert.Equal(t, []string{"skill-1", "skill-2", "skill-3"}, []string{records[0].SkillID, records[1].SkillID, records[2].SkillID})
	assert.Equal(t, core.NewScore(again.Mastery[0].MasteryScore), records[0].MasteryScore)

	gaps, err := fx.svc.StudentSkillGaps("2")
	require.NoError(t, err)
	require.Len(t, gaps, 2)
	// the response keeps the engine's skill code, the stored gap points at the skill id
	require.Len(t, again.Gaps, 1)
	assert.Equal(t, "math.algebra.basic", again.Gaps[0].SkillID)
	assert.Equal(t, "skill-1", gaps[1].SkillID)
}

func TestService_alerts(t *testing.T) {
	fx := setup(t, true)

	critical, err := fx.svc.CreateAlert(analytics.NewAlert{
		StudentID:   "1",
		Type:        "critical_gap",
		Title:       "Critical Gap Detected",
		Description: "Sarah Johnson - Fractions",
		Severity:    analytics.SeverityCritical,
	})
	require.NoError(t, err)
	_, err = fx.svc.CreateAlert(analytics.NewAlert{
		StudentID:   "1",
		Type:        "assessment_overdue",
		Title:       "Assessment Overdue",
		Description: "Sarah Johnson - Reading",
		Severity:    analytics.SeverityHigh,
	})
	require.NoError(t, err)

	// only critical alerts are mailed with this config
	sent := fx.mailSvc.SentMessages()
	if assert.Len(t, sent, 1) {
		assert.Equal(t, "[CRITICAL] Critical Gap Detected", sent[0].Subject)
		assert.Len(t, sent[0].To, 2)
		assert.Equal(t, "Ops", sent[0].To[0].Name)
		assert.Contains(t, sent[0].Body, "Student:  Sarah Johnson (ST001234)")
		assert.Equal(t, []string{"alert", "critical_gap", analytics.SeverityCritical}, sent[0].Categories)
	}

	read, err := fx.svc.MarkAlertRead(critical.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	unread, err := fx.svc.UnreadAlerts()
	require.NoError(t, err)
	for _, a := range unread {
		assert.NotEqual(t, critical.ID, a.ID)
	}
	assert.Len(t, unread, 4)
}

func TestNewAssessment_Validate(t *testing.T) {
	validate := newValidator()

	tests := []struct {
		name       string
		data       analytics.NewAssessment
		wantFields []string
	}{
		{
			name: "valid",
			data: analytics.NewAssessment{StudentID: "1", Subject: "Mathematics", AssessmentType: "mcq", TotalQuestions: intPtr(20), CorrectAnswers: intPtr(9), Score: scorePtr(45)},
		},
		{
			name:       "too many correct answers",
			data:       analytics.NewAssessment{StudentID: "1", Subject: "mathematics", AssessmentType: "mcq", TotalQuestions: intPtr(5), CorrectAnswers: intPtr(9), Score: scorePtr(45)},
			wantFields: []string{"correctAnswers"},
		},
		{
			name:       "missing everything",
			data:       analytics.NewAssessment{},
			wantFields: []string{"studentId", "subject", "assessmentType", "totalQuestions", "correctAnswers", "score"},
		},
		{
			name:       "negative time spent",
			data:       analytics.NewAssessment{StudentID: "1", Subject: "mathematics", AssessmentType: "mcq", TotalQuestions: intPtr(5), CorrectAnswers: intPtr(1), Score: scorePtr(20), TimeSpent: nullInt(-3)},
			wantFields: []string{"timeSpent"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.data.Validate(validate)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantFields, fieldsOf(err))
		})
	}
}

func fieldsOf(err error) []string {
	var fields []string
	switch e := err.(type) {
	case validator.ValidationErrors:
		for _, fe := range e {
			fields = append(fields, fe.Field())
		}
	case *core.ValidationError:
		for _, fe := range e.Fields {
			fields = append(fields, fe.Field)
		}
	}
	return fields
}
