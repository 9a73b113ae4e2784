package analytics

import "errors"

var (
	// errors
	ErrNotFound = errors.New("record not found")
)

// Repository is the entity store backing the analytics Service.
// Get* and Update* return ErrNotFound when the id is unknown.
// Create* assign a fresh unique id; timestamps & defaults are set by the Service.
// QueryAllAlerts returns alerts by creation time, most recent first.
type Repository interface {
	// Students
	CreateStudent(std Student) (Student, error)
	GetStudent(id string) (Student, error)
	GetStudentByCode(code string) (Student, error)
	QueryAllStudents() ([]Student, error)
	UpdateStudent(id string, fn func(*Student)) (Student, error)
	CountStudents() (int, error)

	// Skills
	CreateSkill(skill Skill) (Skill, error)
	GetSkill(id string) (Skill, error)
	GetSkillByCode(code string) (Skill, error)
	QueryAllSkills() ([]Skill, error)
	QuerySkillsBySubject(subject string) ([]Skill, error)

	// Assessments
	CreateAssessment(asmt Assessment) (Assessment, error)
	QueryAllAssessments() ([]Assessment, error)
	QueryAssessmentsByStudent(studentID string) ([]Assessment, error)

	// Skill mastery
	CreateSkillMastery(mastery SkillMastery) (SkillMastery, error)
	QueryAllSkillMastery() ([]SkillMastery, error)
	QuerySkillMasteryByStudent(studentID string) ([]SkillMastery, error)
	// UpsertSkillMastery applies fn to the (studentID, skillID) record, or to a fresh record when none exists
	// (isNew is then true), and stores the result atomically.
	UpsertSkillMastery(studentID, skillID string, fn func(mastery *SkillMastery, isNew bool)) (SkillMastery, error)

	// Skill gaps
	CreateSkillGap(gap SkillGap) (SkillGap, error)
	QueryAllSkillGaps() ([]SkillGap, error)
	QuerySkillGapsByStudent(studentID string) ([]SkillGap, error)
	CountSkillGaps() (int, error)

	// Curriculum plans
	CreateCurriculumPlan(plan CurriculumPlan) (CurriculumPlan, error)
	QueryCurriculumPlansByStudent(studentID string) ([]CurriculumPlan, error)

	// Progress tracking
	CreateProgress(progress ProgressTracking) (ProgressTracking, error)
	QueryProgressByStudent(studentID string) ([]ProgressTracking, error)

	// Alerts
	CreateAlert(alert Alert) (Alert, error)
	QueryAllAlerts() ([]Alert, error)
	UpdateAlert(id string, fn func(*Alert)) (Alert, error)
}
