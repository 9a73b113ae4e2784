package analytics

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/core"
)

// Risk levels
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Severities
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Curriculum topic statuses
const (
	TopicCompleted  = "completed"
	TopicInProgress = "in_progress"
	TopicPending    = "pending"
)

// Subjects
const (
	SubjectMathematics   = "mathematics"
	SubjectLanguageArts  = "language_arts"
	SubjectScience       = "science"
	SubjectSocialStudies = "social_studies"
)

var (
	RiskLevels    = []string{RiskLow, RiskMedium, RiskHigh}
	Severities    = []string{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
	TopicStatuses = []string{TopicCompleted, TopicInProgress, TopicPending}
)

type Student struct {
	ID          string      `json:"id"`
	StudentCode string      `json:"studentId"`
	FirstName   string      `json:"firstName"`
	LastName    string      `json:"lastName"`
	Grade       string      `json:"grade"`
	Email       null.String `json:"email"`
	RiskLevel   string      `json:"riskLevel"`
	CreatedAt   time.Time   `json:"createdAt"` // UTC
	UpdatedAt   time.Time   `json:"updatedAt"` // UTC
}

func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

type Skill struct {
	ID            string      `json:"id"`
	SkillCode     string      `json:"skillId"`
	Name          string      `json:"name"`
	Subject       string      `json:"subject"`
	Category      string      `json:"category"`
	Description   null.String `json:"description"`
	Prerequisites []string    `json:"prerequisites"` // skill codes, in order
}

type Assessment struct {
	ID             string     `json:"id"`
	StudentID      string     `json:"studentId"`
	Subject        string     `json:"subject"`
	AssessmentType string     `json:"assessmentType"` // mcq, open_ended, numeric
	TotalQuestions int        `json:"totalQuestions"`
	CorrectAnswers int        `json:"correctAnswers"`
	Score          core.Score `json:"score"`
	TimeSpent      null.Int   `json:"timeSpent"` // minutes
	CompletedAt    time.Time  `json:"completedAt"`
}

type SkillMastery struct {
	ID           string     `json:"id"`
	StudentID    string     `json:"studentId"`
	SkillID      string     `json:"skillId"`
	MasteryScore core.Score `json:"masteryScore"`
	Confidence   core.Score `json:"confidence"`
	LastAssessed time.Time  `json:"lastAssessed"`
}

type SkillGap struct {
	ID             string    `json:"id"`
	StudentID      string    `json:"studentId"`
	SkillID        string    `json:"skillId"`
	Severity       string    `json:"severity"`
	Recommendation string    `json:"recommendation"`
	IdentifiedAt   time.Time `json:"identifiedAt"`
}

type CurriculumTopic struct {
	Title          string `json:"title" validate:"required,notblank"`
	Status         string `json:"status" validate:"required,topicstatus"`
	EstimatedHours int    `json:"estimatedHours" validate:"min=0"`
}

type CurriculumWeek struct {
	Week        int               `json:"week" validate:"min=1"`
	Title       string            `json:"title" validate:"required,notblank"`
	Hours       int               `json:"hours" validate:"min=0"`
	Description string            `json:"description"`
	Topics      []CurriculumTopic `json:"topics" validate:"dive"`
}

type CurriculumPlan struct {
	ID               string           `json:"id"`
	StudentID        string           `json:"studentId"`
	Subject          string           `json:"subject"`
	TimeFrame        string           `json:"timeFrame"`
	TotalHours       int              `json:"totalHours"`
	Weeks            []CurriculumWeek `json:"weeks"`
	AIRecommendation null.String      `json:"aiRecommendation"`
	CreatedAt        time.Time        `json:"createdAt"`
}

type ProgressTracking struct {
	ID            string      `json:"id"`
	StudentID     string      `json:"studentId"`
	SkillID       string      `json:"skillId"`
	PreviousScore *core.Score `json:"previousScore"`
	CurrentScore  core.Score  `json:"currentScore"`
	Improvement   *core.Score `json:"improvement"`
	TrackedAt     time.Time   `json:"trackedAt"`
}

type Alert struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"studentId"`
	Type        string    `json:"type"` // critical_gap, assessment_overdue, improvement_detected
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Severity    string    `json:"severity"`
	IsRead      bool      `json:"isRead"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Derived views

type StudentWithStats struct {
	ID                string  `json:"id"`
	StudentCode       string  `json:"studentId"`
	FirstName         string  `json:"firstName"`
	LastName          string  `json:"lastName"`
	Grade             string  `json:"grade"`
	RiskLevel         string  `json:"riskLevel"`
	MathematicsScore  float64 `json:"mathematicsScore"`
	LanguageArtsScore float64 `json:"languageArtsScore"`
	ScienceScore      float64 `json:"scienceScore"`
	LastAssessment    string  `json:"lastAssessment"`
}

type DashboardMetrics struct {
	TotalStudents        int     `json:"totalStudents"`
	AssessmentsCompleted int     `json:"assessmentsCompleted"`
	SkillGapsIdentified  int     `json:"skillGapsIdentified"`
	AvgMasteryScore      float64 `json:"avgMasteryScore"`
}

type (
	ChartDataset struct {
		Label           string    `json:"label"`
		Data            []float64 `json:"data"`
		BackgroundColor string    `json:"backgroundColor"`
		BorderColor     string    `json:"borderColor"`
		BorderWidth     int       `json:"borderWidth"`
		BorderRadius    int       `json:"borderRadius"`
	}

	ChartData struct {
		Labels   []string       `json:"labels"`
		Datasets []ChartDataset `json:"datasets"`
	}
)

// Payloads

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	StudentCode string      `json:"studentId" validate:"required,notblank"`
	FirstName   string      `json:"firstName" validate:"required,notblank"`
	LastName    string      `json:"lastName" validate:"required,notblank"`
	Grade       string      `json:"grade" validate:"required,notblank"`
	Email       null.String `json:"email" validate:"omitempty,email"`
	RiskLevel   string      `json:"riskLevel" validate:"omitempty,risklevel"`
}

func (ns *NewStudent) Validate(validate *validator.Validate, svc *Service) error {
	ns.StudentCode = core.CleanString(ns.StudentCode)
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.LastName = core.CleanString(ns.LastName)
	ns.Grade = core.CleanString(ns.Grade)
	ns.RiskLevel = core.CleanString(ns.RiskLevel, true /* lower */)
	ns.Email = cleanNullString(ns.Email, true /* lower */)

	if err := validate.Struct(ns); err != nil {
		return err
	}
	return svc.checkStudentCodeUniqueness(ns.StudentCode)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// nil fields are left untouched.
type UpdateStudent struct {
	StudentCode *string     `json:"studentId" validate:"omitempty,notblank"`
	FirstName   *string     `json:"firstName" validate:"omitempty,notblank"`
	LastName    *string     `json:"lastName" validate:"omitempty,notblank"`
	Grade       *string     `json:"grade" validate:"omitempty,notblank"`
	Email       null.String `json:"email" validate:"omitempty,email"`
	RiskLevel   *string     `json:"riskLevel" validate:"omitempty,risklevel"`
}

func (us *UpdateStudent) Validate(origStd Student, validate *validator.Validate, svc *Service) error {
	clean := func(s *string, lower ...bool) {
		if s != nil {
			*s = core.CleanString(*s, lower...)
		}
	}
	clean(us.StudentCode)
	clean(us.FirstName)
	clean(us.LastName)
	clean(us.Grade)
	clean(us.RiskLevel, true /* lower */)
	us.Email = cleanNullString(us.Email, true /* lower */)

	if err := validate.Struct(us); err != nil {
		return err
	}
	if us.StudentCode != nil && *us.StudentCode != origStd.StudentCode {
		return svc.checkStudentCodeUniqueness(*us.StudentCode)
	}
	return nil
}

// cleanNullString cleans a nullable string; blank values become null.
func cleanNullString(s null.String, lower ...bool) null.String {
	if !s.Valid {
		return s
	}
	if str := core.CleanString(s.String, lower...); str != "" {
		return null.StringFrom(str)
	}
	return null.String{}
}

type NewSkill struct {
	SkillCode     string      `json:"skillId" validate:"required,notblank"`
	Name          string      `json:"name" validate:"required,notblank"`
	Subject       string      `json:"subject" validate:"required,notblank"`
	Category      string      `json:"category" validate:"required,notblank"`
	Description   null.String `json:"description"`
	Prerequisites []string    `json:"prerequisites" validate:"omitempty,dive,notblank"`
}

func (ns *NewSkill) Validate(validate *validator.Validate, svc *Service) error {
	ns.SkillCode = core.CleanString(ns.SkillCode)
	ns.Name = core.CleanString(ns.Name)
	ns.Subject = core.CleanString(ns.Subject, true /* lower */)
	ns.Category = core.CleanString(ns.Category, true /* lower */)
	ns.Description = cleanNullString(ns.Description)

	if err := validate.Struct(ns); err != nil {
		return err
	}
	return svc.checkSkillCodeUniqueness(ns.SkillCode)
}

type NewAssessment struct {
	StudentID      string      `json:"studentId" validate:"required,notblank"`
	Subject        string      `json:"subject" validate:"required,notblank"`
	AssessmentType string      `json:"assessmentType" validate:"required,notblank"`
	TotalQuestions *int        `json:"totalQuestions" validate:"required,min=0"`
	CorrectAnswers *int        `json:"correctAnswers" validate:"required,min=0"`
	Score          *core.Score `json:"score" validate:"required,min=0,max=100"`
	TimeSpent      null.Int    `json:"timeSpent" validate:"omitempty,min=0"`
}

func (na *NewAssessment) Validate(validate *validator.Validate) error {
	na.StudentID = core.CleanString(na.StudentID)
	na.Subject = core.CleanString(na.Subject, true /* lower */)
	na.AssessmentType = core.CleanString(na.AssessmentType, true /* lower */)

	if err := validate.Struct(na); err != nil {
		return err
	}
	if *na.CorrectAnswers > *na.TotalQuestions {
		return core.NewValidationError(nil, core.FieldError{Field: "correctAnswers", Error: errTooManyCorrect})
	}
	return nil
}

type NewSkillMastery struct {
	StudentID    string      `json:"studentId" validate:"required,notblank"`
	SkillID      string      `json:"skillId" validate:"required,notblank"`
	MasteryScore *core.Score `json:"masteryScore" validate:"required,min=0,max=100"`
	Confidence   *core.Score `json:"confidence" validate:"required,min=0,max=100"`
}

func (nm *NewSkillMastery) Validate(validate *validator.Validate) error {
	nm.StudentID = core.CleanString(nm.StudentID)
	nm.SkillID = core.CleanString(nm.SkillID)
	return validate.Struct(nm)
}

// UpdateSkillMastery holds the fields merged over a (student, skill) mastery record.
type UpdateSkillMastery struct {
	MasteryScore *core.Score `json:"masteryScore" validate:"omitempty,min=0,max=100"`
	Confidence   *core.Score `json:"confidence" validate:"omitempty,min=0,max=100"`
}

type NewSkillGap struct {
	StudentID      string `json:"studentId" validate:"required,notblank"`
	SkillID        string `json:"skillId" validate:"required,notblank"`
	Severity       string `json:"severity" validate:"required,severity"`
	Recommendation string `json:"recommendation" validate:"required,notblank"`
}

func (ng *NewSkillGap) Validate(validate *validator.Validate) error {
	ng.StudentID = core.CleanString(ng.StudentID)
	ng.SkillID = core.CleanString(ng.SkillID)
	ng.Severity = core.CleanString(ng.Severity, true /* lower */)
	ng.Recommendation = core.CleanString(ng.Recommendation)
	return validate.Struct(ng)
}

type NewCurriculumPlan struct {
	StudentID        string           `json:"studentId" validate:"required,notblank"`
	Subject          string           `json:"subject" validate:"required,notblank"`
	TimeFrame        string           `json:"timeFrame" validate:"required,notblank"`
	Weeks            []CurriculumWeek `json:"weeks" validate:"dive"`
	AIRecommendation null.String      `json:"aiRecommendation"`
}

func (np *NewCurriculumPlan) Validate(validate *validator.Validate) error {
	np.StudentID = core.CleanString(np.StudentID)
	np.Subject = core.CleanString(np.Subject, true /* lower */)
	np.TimeFrame = core.CleanString(np.TimeFrame)
	np.AIRecommendation = cleanNullString(np.AIRecommendation)
	return validate.Struct(np)
}

type NewProgressTracking struct {
	StudentID     string      `json:"studentId" validate:"required,notblank"`
	SkillID       string      `json:"skillId" validate:"required,notblank"`
	PreviousScore *core.Score `json:"previousScore" validate:"omitempty,min=0,max=100"`
	CurrentScore  *core.Score `json:"currentScore" validate:"required,min=0,max=100"`
	Improvement   *core.Score `json:"improvement"`
}

func (np *NewProgressTracking) Validate(validate *validator.Validate) error {
	np.StudentID = core.CleanString(np.StudentID)
	np.SkillID = core.CleanString(np.SkillID)
	return validate.Struct(np)
}

type NewAlert struct {
	StudentID   string `json:"studentId" validate:"required,notblank"`
	Type        string `json:"type" validate:"required,notblank"`
	Title       string `json:"title" validate:"required,notblank"`
	Description string `json:"description" validate:"required,notblank"`
	Severity    string `json:"severity" validate:"required,severity"`
	IsRead      bool   `json:"isRead"`
}

func (na *NewAlert) Validate(validate *validator.Validate) error {
	na.StudentID = core.CleanString(na.StudentID)
	na.Type = core.CleanString(na.Type, true /* lower */)
	na.Title = core.CleanString(na.Title)
	na.Description = core.CleanString(na.Description)
	na.Severity = core.CleanString(na.Severity, true /* lower */)
	return validate.Struct(na)
}
