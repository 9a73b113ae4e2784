package analytics

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/core"
)

var (
	nowFunc = func() time.Time { return time.Now().UTC() } // mockable

	errStudentCodeExists = errors.New("a student with this studentId already exists")
	errSkillCodeExists   = errors.New("a skill with this skillId already exists")
)

type Service struct {
	repo    Repository
	engine  Engine
	mailSvc core.EmailService
	logger  core.Logger

	notifyTo         []mail.Address
	notifySeverities []string
}

func NewService(repo Repository, engine Engine, mailSvc core.EmailService, logger core.Logger, conf *core.Config) *Service {
	return &Service{
		repo:             repo,
		engine:           engine,
		mailSvc:          mailSvc,
		logger:           logger,
		notifyTo:         core.ParseAddressList(conf.Alerts.NotifyEmail),
		notifySeverities: conf.Alerts.NotifySeverities,
	}
}

// notFound turns the repository's ErrNotFound into a core.NotFoundError for the given entity.
func notFound(err error, entity, id string) error {
	if errors.Cause(err) == ErrNotFound {
		return core.NewNotFoundError(entity, id)
	}
	return err
}

// Students

func (svc *Service) checkStudentCodeUniqueness(code string) error {
	_, err := svc.repo.GetStudentByCode(code)
	switch {
	case err == nil:
		return core.NewValidationError(
			errStudentCodeExists,
			core.FieldError{Field: "studentId", Error: errStudentCodeExists.Error()},
		)
	case errors.Cause(err) != ErrNotFound:
		return errors.Wrap(err, "checking student code")
	}
	return nil
}

func (svc *Service) CreateStudent(ns NewStudent) (Student, error) {
	riskLevel := ns.RiskLevel
	if riskLevel == "" {
		riskLevel = RiskLow
	}
	now := nowFunc()
	return svc.repo.CreateStudent(Student{
		StudentCode: ns.StudentCode,
		FirstName:   ns.FirstName,
		LastName:    ns.LastName,
		Grade:       ns.Grade,
		Email:       ns.Email,
		RiskLevel:   riskLevel,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (svc *Service) GetStudent(id string) (Student, error) {
	std, err := svc.repo.GetStudent(id)
	return std, notFound(err, "student", id)
}

func (svc *Service) GetStudentByCode(code string) (Student, error) {
	std, err := svc.repo.GetStudentByCode(core.CleanString(code))
	return std, notFound(err, "student", code)
}

func (svc *Service) QueryStudents() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) UpdateStudent(id string, us UpdateStudent) (Student, error) {
	std, err := svc.repo.UpdateStudent(id, func(std *Student) {
		if us.StudentCode != nil {
			std.StudentCode = *us.StudentCode
		}
		if us.FirstName != nil {
			std.FirstName = *us.FirstName
		}
		if us.LastName != nil {
			std.LastName = *us.LastName
		}
		if us.Grade != nil {
			std.Grade = *us.Grade
		}
		if us.Email.Valid {
			std.Email = us.Email
		}
		if us.RiskLevel != nil {
			std.RiskLevel = *us.RiskLevel
		}
		std.UpdatedAt = nowFunc()
	})
	return std, notFound(err, "student", id)
}

// Skills

func (svc *Service) checkSkillCodeUniqueness(code string) error {
	_, err := svc.repo.GetSkillByCode(code)
	switch {
	case err == nil:
		return core.NewValidationError(
			errSkillCodeExists,
			core.FieldError{Field: "skillId", Error: errSkillCodeExists.Error()},
		)
	case errors.Cause(err) != ErrNotFound:
		return errors.Wrap(err, "checking skill code")
	}
	return nil
}

func (svc *Service) CreateSkill(ns NewSkill) (Skill, error) {
	prereqs := ns.Prerequisites
	if prereqs == nil {
		prereqs = []string{}
	}
	return svc.repo.CreateSkill(Skill{
		SkillCode:     ns.SkillCode,
		Name:          ns.Name,
		Subject:       ns.Subject,
		Category:      ns.Category,
		Description:   ns.Description,
		Prerequisites: prereqs,
	})
}

func (svc *Service) GetSkill(id string) (Skill, error) {
	skill, err := svc.repo.GetSkill(id)
	return skill, notFound(err, "skill", id)
}

// QuerySkills returns all skills, or only those of subject when it is set.
func (svc *Service) QuerySkills(subject string) ([]Skill, error) {
	if subject = core.CleanString(subject, true /* lower */); subject != "" {
		return svc.repo.QuerySkillsBySubject(subject)
	}
	return svc.repo.QueryAllSkills()
}

// resolveSkillRef maps a skill reference (id or external skill code) to a skill id.
// Unknown references are kept as they are.
// AssessSkills stores the resolved id but still returns the engine's reference, so a stored gap
// may read "skill-1" where the response said "math.algebra.basic".
func (svc *Service) resolveSkillRef(ref string) string {
	if _, err := svc.repo.GetSkill(ref); err == nil {
		return ref
	}
	if skill, err := svc.repo.GetSkillByCode(ref); err == nil {
		return skill.ID
	}
	return ref
}

// Assessments

func (svc *Service) CreateAssessment(na NewAssessment) (Assessment, error) {
	return svc.repo.CreateAssessment(Assessment{
		StudentID:      na.StudentID,
		Subject:        na.Subject,
		AssessmentType: na.AssessmentType,
		TotalQuestions: *na.TotalQuestions,
		CorrectAnswers: *na.CorrectAnswers,
		Score:          core.NewScore(na.Score.Float64()),
		TimeSpent:      na.TimeSpent,
		CompletedAt:    nowFunc(),
	})
}

func (svc *Service) QueryAssessments() ([]Assessment, error) {
	return svc.repo.QueryAllAssessments()
}

func (svc *Service) StudentAssessments(studentID string) ([]Assessment, error) {
	return svc.repo.QueryAssessmentsByStudent(studentID)
}

// Skill mastery

func (svc *Service) CreateSkillMastery(nm NewSkillMastery) (SkillMastery, error) {
	return svc.repo.CreateSkillMastery(SkillMastery{
		StudentID:    nm.StudentID,
		SkillID:      nm.SkillID,
		MasteryScore: core.NewScore(nm.MasteryScore.Float64()),
		Confidence:   core.NewScore(nm.Confidence.Float64()),
		LastAssessed: nowFunc(),
	})
}

func (svc *Service) QuerySkillMastery() ([]SkillMastery, error) {
	return svc.repo.QueryAllSkillMastery()
}

func (svc *Service) StudentSkillMastery(studentID string) ([]SkillMastery, error) {
	return svc.repo.QuerySkillMasteryByStudent(studentID)
}

// UpdateSkillMastery upserts the mastery record of the (studentID, skillID) pair:
// a missing record is created with scores defaulting to 0, an existing one has um merged over it.
func (svc *Service) UpdateSkillMastery(studentID, skillID string, um UpdateSkillMastery) (SkillMastery, error) {
	return svc.repo.UpsertSkillMastery(studentID, skillID, func(mastery *SkillMastery, isNew bool) {
		if isNew {
			mastery.MasteryScore = 0
			mastery.Confidence = 0
		}
		if um.MasteryScore != nil {
			mastery.MasteryScore = core.NewScore(um.MasteryScore.Float64())
		}
		if um.Confidence != nil {
			mastery.Confidence = core.NewScore(um.Confidence.Float64())
		}
		mastery.LastAssessed = nowFunc()
	})
}

// Skill gaps

func (svc *Service) CreateSkillGap(ng NewSkillGap) (SkillGap, error) {
	return svc.repo.CreateSkillGap(SkillGap{
		StudentID:      ng.StudentID,
		SkillID:        ng.SkillID,
		Severity:       ng.Severity,
		Recommendation: ng.Recommendation,
		IdentifiedAt:   nowFunc(),
	})
}

func (svc *Service) QuerySkillGaps() ([]SkillGap, error) {
	return svc.repo.QueryAllSkillGaps()
}

func (svc *Service) StudentSkillGaps(studentID string) ([]SkillGap, error) {
	return svc.repo.QuerySkillGapsByStudent(studentID)
}

// Curriculum plans

func (svc *Service) CreateCurriculumPlan(np NewCurriculumPlan) (CurriculumPlan, error) {
	weeks := np.Weeks
	if weeks == nil {
		weeks = []CurriculumWeek{}
	}
	return svc.repo.CreateCurriculumPlan(CurriculumPlan{
		StudentID:        np.StudentID,
		Subject:          np.Subject,
		TimeFrame:        np.TimeFrame,
		TotalHours:       TotalHours(weeks),
		Weeks:            weeks,
		AIRecommendation: np.AIRecommendation,
		CreatedAt:        nowFunc(),
	})
}

func (svc *Service) StudentCurriculumPlans(studentID string) ([]CurriculumPlan, error) {
	return svc.repo.QueryCurriculumPlansByStudent(studentID)
}

// TotalHours sums the hours of all weeks.
func TotalHours(weeks []CurriculumWeek) int {
	var total int
	for _, w := range weeks {
		total += w.Hours
	}
	return total
}

// Progress tracking

func (svc *Service) CreateProgress(np NewProgressTracking) (ProgressTracking, error) {
	progress := ProgressTracking{
		StudentID:    np.StudentID,
		SkillID:      np.SkillID,
		CurrentScore: core.NewScore(np.CurrentScore.Float64()),
		TrackedAt:    nowFunc(),
	}
	if np.PreviousScore != nil {
		prev := core.NewScore(np.PreviousScore.Float64())
		progress.PreviousScore = &prev
	}
	switch {
	case np.Improvement != nil:
		imp := core.NewScore(np.Improvement.Float64())
		progress.Improvement = &imp
	case progress.PreviousScore != nil:
		imp := core.NewScore(progress.CurrentScore.Float64() - progress.PreviousScore.Float64())
		progress.Improvement = &imp
	}
	return svc.repo.CreateProgress(progress)
}

func (svc *Service) StudentProgress(studentID string) ([]ProgressTracking, error) {
	return svc.repo.QueryProgressByStudent(studentID)
}

// Alerts

func (svc *Service) CreateAlert(na NewAlert) (Alert, error) {
	alert, err := svc.repo.CreateAlert(Alert{
		StudentID:   na.StudentID,
		Type:        na.Type,
		Title:       na.Title,
		Description: na.Description,
		Severity:    na.Severity,
		IsRead:      na.IsRead,
		CreatedAt:   nowFunc(),
	})
	if err != nil {
		return Alert{}, err
	}
	svc.notifyAlert(alert)
	return alert, nil
}

// QueryAlerts returns all alerts, most recent first.
func (svc *Service) QueryAlerts() ([]Alert, error) {
	return svc.repo.QueryAllAlerts()
}

// UnreadAlerts returns unread alerts, most recent first.
func (svc *Service) UnreadAlerts() ([]Alert, error) {
	alerts, err := svc.repo.QueryAllAlerts()
	if err != nil {
		return nil, err
	}
	unread := make([]Alert, 0, len(alerts))
	for _, a := range alerts {
		if !a.IsRead {
			unread = append(unread, a)
		}
	}
	return unread, nil
}

// MarkAlertRead flags the alert as read. Reading is one-way & idempotent.
func (svc *Service) MarkAlertRead(id string) (Alert, error) {
	alert, err := svc.repo.UpdateAlert(id, func(a *Alert) { a.IsRead = true })
	return alert, notFound(err, "alert", id)
}

// notifyAlert mails the dashboard operator about alerts of the configured severities.
func (svc *Service) notifyAlert(alert Alert) {
	if svc.mailSvc == nil || len(svc.notifyTo) == 0 || !core.StringInSlice(alert.Severity, svc.notifySeverities) {
		return
	}

	about := alert.StudentID
	if std, err := svc.repo.GetStudent(alert.StudentID); err == nil {
		about = fmt.Sprintf("%s (%s)", std.FullName(), std.StudentCode)
	}
	body := new(strings.Builder)
	_, _ = fmt.Fprintf(body, "%s\n\n", alert.Description)
	_, _ = fmt.Fprintf(body, "Student:  %s\n", about)
	_, _ = fmt.Fprintf(body, "Type:     %s\n", alert.Type)
	_, _ = fmt.Fprintf(body, "Severity: %s\n", alert.Severity)
	_, _ = fmt.Fprintf(body, "Raised:   %s\n", alert.CreatedAt.Format(time.RFC1123))

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:         svc.notifyTo,
		Subject:    fmt.Sprintf("[%s] %s", strings.ToUpper(alert.Severity), alert.Title),
		Body:       body.String(),
		Categories: []string{"alert", alert.Type, alert.Severity},
	})
	if svc.logger != nil {
		svc.logger.Info("alert notification sent", map[string]interface{}{"alert": alert.ID, "severity": alert.Severity})
	}
}

func nullStringFrom(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
