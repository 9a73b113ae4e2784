package inmemdb

import (
	"sort"

	"github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/core/analytics"
)

type repository struct {
	db *DB
}

var _ analytics.Repository = (*repository)(nil) // interface compliance check

func NewRepository(db *DB) analytics.Repository {
	return &repository{db: db}
}

// Students

func (repo *repository) CreateStudent(std analytics.Student) (analytics.Student, error) {
	repo.db.student.Lock()
	defer repo.db.student.Unlock()

	std.ID = newID()
	repo.db.student.insert(std.ID, std)
	return std, nil
}

func (repo *repository) GetStudent(id string) (analytics.Student, error) {
	return repo.db.student.get(id)
}

func (repo *repository) GetStudentByCode(code string) (analytics.Student, error) {
	return repo.db.student.find(func(std *analytics.Student) bool { return std.StudentCode == code })
}

func (repo *repository) QueryAllStudents() ([]analytics.Student, error) {
	return repo.db.student.all(nil), nil
}

func (repo *repository) UpdateStudent(id string, fn func(*analytics.Student)) (analytics.Student, error) {
	return repo.db.student.update(id, func(std *analytics.Student) {
		fn(std)
		std.ID = id
	})
}

func (repo *repository) CountStudents() (int, error) {
	return repo.db.student.count(), nil
}

// Skills

func (repo *repository) CreateSkill(skill analytics.Skill) (analytics.Skill, error) {
	repo.db.skill.Lock()
	defer repo.db.skill.Unlock()

	skill.ID = newID()
	repo.db.skill.insert(skill.ID, skill)
	return skill, nil
}

func (repo *repository) GetSkill(id string) (analytics.Skill, error) {
	return repo.db.skill.get(id)
}

func (repo *repository) GetSkillByCode(code string) (analytics.Skill, error) {
	return repo.db.skill.find(func(skill *analytics.Skill) bool { return skill.SkillCode == code })
}

func (repo *repository) QueryAllSkills() ([]analytics.Skill, error) {
	return repo.db.skill.all(nil), nil
}

func (repo *repository) QuerySkillsBySubject(subject string) ([]analytics.Skill, error) {
	return repo.db.skill.all(func(skill *analytics.Skill) bool { return skill.Subject == subject }), nil
}

// Assessments

func (repo *repository) CreateAssessment(asmt analytics.Assessment) (analytics.Assessment, error) {
	repo.db.assessment.Lock()
	defer repo.db.assessment.Unlock()

	asmt.ID = newID()
	repo.db.assessment.insert(asmt.ID, asmt)
	return asmt, nil
}

func (repo *repository) QueryAllAssessments() ([]analytics.Assessment, error) {
	return repo.db.assessment.all(nil), nil
}

func (repo *repository) QueryAssessmentsByStudent(studentID string) ([]analytics.Assessment, error) {
	return repo.db.assessment.all(func(a *analytics.Assessment) bool { return a.StudentID == studentID }), nil
}

// Skill mastery

func (repo *repository) CreateSkillMastery(mastery analytics.SkillMastery) (analytics.SkillMastery, error) {
	repo.db.mastery.Lock()
	defer repo.db.mastery.Unlock()

	mastery.ID = newID()
	repo.db.mastery.insertIndexed(mastery)
	return mastery, nil
}

func (repo *repository) QueryAllSkillMastery() ([]analytics.SkillMastery, error) {
	return repo.db.mastery.all(nil), nil
}

func (repo *repository) QuerySkillMasteryByStudent(studentID string) ([]analytics.SkillMastery, error) {
	return repo.db.mastery.all(func(m *analytics.SkillMastery) bool { return m.StudentID == studentID }), nil
}

func (repo *repository) UpsertSkillMastery(
	studentID, skillID string,
	fn func(mastery *analytics.SkillMastery, isNew bool),
) (analytics.SkillMastery, error) {
	repo.db.mastery.Lock()
	defer repo.db.mastery.Unlock()

	if id, ok := repo.db.mastery.byPair[masteryKey{studentID, skillID}]; ok {
		updated := *repo.db.mastery.rows[id]
		fn(&updated, false)
		updated.ID, updated.StudentID, updated.SkillID = id, studentID, skillID
		repo.db.mastery.rows[id] = &updated
		return updated, nil
	}

	mastery := analytics.SkillMastery{StudentID: studentID, SkillID: skillID}
	fn(&mastery, true)
	mastery.ID, mastery.StudentID, mastery.SkillID = newID(), studentID, skillID
	repo.db.mastery.insertIndexed(mastery)
	return mastery, nil
}

// insertIndexed stores the record & indexes it when it is the first of its pair.
// Callers must hold the write lock.
func (t *masteryTable) insertIndexed(mastery analytics.SkillMastery) {
	t.insert(mastery.ID, mastery)
	key := masteryKey{mastery.StudentID, mastery.SkillID}
	if _, exists := t.byPair[key]; !exists {
		t.byPair[key] = mastery.ID
	}
}

// Skill gaps

func (repo *repository) CreateSkillGap(gap analytics.SkillGap) (analytics.SkillGap, error) {
	repo.db.gap.Lock()
	defer repo.db.gap.Unlock()

	gap.ID = newID()
	repo.db.gap.insert(gap.ID, gap)
	return gap, nil
}

func (repo *repository) QueryAllSkillGaps() ([]analytics.SkillGap, error) {
	return repo.db.gap.all(nil), nil
}

func (repo *repository) QuerySkillGapsByStudent(studentID string) ([]analytics.SkillGap, error) {
	return repo.db.gap.all(func(g *analytics.SkillGap) bool { return g.StudentID == studentID }), nil
}

func (repo *repository) CountSkillGaps() (int, error) {
	return repo.db.gap.count(), nil
}

// Curriculum plans

func (repo *repository) CreateCurriculumPlan(plan analytics.CurriculumPlan) (analytics.CurriculumPlan, error) {
	repo.db.curriculum.Lock()
	defer repo.db.curriculum.Unlock()

	plan.ID = newID()
	repo.db.curriculum.insert(plan.ID, plan)
	return plan, nil
}

func (repo *repository) QueryCurriculumPlansByStudent(studentID string) ([]analytics.CurriculumPlan, error) {
	return repo.db.curriculum.all(func(p *analytics.CurriculumPlan) bool { return p.StudentID == studentID }), nil
}

// Progress tracking

func (repo *repository) CreateProgress(progress analytics.ProgressTracking) (analytics.ProgressTracking, error) {
	repo.db.progress.Lock()
	defer repo.db.progress.Unlock()

	progress.ID = newID()
	repo.db.progress.insert(progress.ID, progress)
	return progress, nil
}

func (repo *repository) QueryProgressByStudent(studentID string) ([]analytics.ProgressTracking, error) {
	return repo.db.progress.all(func(p *analytics.ProgressTracking) bool { return p.StudentID == studentID }), nil
}

// Alerts

func (repo *repository) CreateAlert(alert analytics.Alert) (analytics.Alert, error) {
	repo.db.alert.Lock()
	defer repo.db.alert.Unlock()

	alert.ID = newID()
	repo.db.alert.insert(alert.ID, alert)
	return alert, nil
}

func (repo *repository) QueryAllAlerts() ([]analytics.Alert, error) {
	alerts := repo.db.alert.all(nil)
	// zero timestamps sort last, as the oldest
	sort.SliceStable(alerts, func(i, j int) bool { return alerts[i].CreatedAt.After(alerts[j].CreatedAt) })
	return alerts, nil
}

func (repo *repository) UpdateAlert(id string, fn func(*analytics.Alert)) (analytics.Alert, error) {
	return repo.db.alert.update(id, func(alert *analytics.Alert) {
		fn(alert)
		alert.ID = id
	})
}
