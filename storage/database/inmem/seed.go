package inmemdb

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/core"
	"github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/core/analytics"
)

// Seed loads the reference data set the dashboard starts with.
// Rows keep their fixed ids; timestamps are relative to now.
func Seed(db *DB, now time.Time) {
	now = now.UTC()

	students := []analytics.Student{
		{ID: "1", StudentCode: "ST001234", FirstName: "Sarah", LastName: "Johnson", Grade: "8th Grade", RiskLevel: analytics.RiskHigh},
		{ID: "2", StudentCode: "ST001235", FirstName: "Mike", LastName: "Chen", Grade: "7th Grade", RiskLevel: analytics.RiskMedium},
		{ID: "3", StudentCode: "ST001236", FirstName: "Emma", LastName: "Davis", Grade: "9th Grade", RiskLevel: analytics.RiskLow},
	}
	db.student.Lock()
	for _, std := range students {
		std.Email = null.StringFrom(lower(std.FirstName) + "." + lower(std.LastName) + "@school.edu")
		std.CreatedAt, std.UpdatedAt = now, now
		db.student.insert(std.ID, std)
	}
	db.student.Unlock()

	skills := []analytics.Skill{
		{
			ID:            "skill-1",
			SkillCode:     "math.algebra.basic",
			Name:          "Basic Algebra",
			Subject:       analytics.SubjectMathematics,
			Category:      "algebra",
			Description:   null.StringFrom("Fundamental algebraic operations and concepts"),
			Prerequisites: []string{},
		},
		{
			ID:            "skill-2",
			SkillCode:     "math.geometry.area",
			Name:          "Area Calculation",
			Subject:       analytics.SubjectMathematics,
			Category:      "geometry",
			Description:   null.StringFrom("Calculate area of various shapes"),
			Prerequisites: []string{"math.algebra.basic"},
		},
	}
	db.skill.Lock()
	for _, skill := range skills {
		db.skill.insert(skill.ID, skill)
	}
	db.skill.Unlock()

	day := 24 * time.Hour
	assessments := []analytics.Assessment{
		{
			ID:             "assess-1",
			StudentID:      "1",
			Subject:        analytics.SubjectMathematics,
			AssessmentType: "mcq",
			TotalQuestions: 20,
			CorrectAnswers: 9,
			Score:          45,
			TimeSpent:      null.IntFrom(35),
			CompletedAt:    now.Add(-2 * day),
		},
		{
			ID:             "assess-2",
			StudentID:      "2",
			Subject:        analytics.SubjectMathematics,
			AssessmentType: "mcq",
			TotalQuestions: 25,
			CorrectAnswers: 23,
			Score:          91,
			TimeSpent:      null.IntFrom(28),
			CompletedAt:    now.Add(-day),
		},
	}
	db.assessment.Lock()
	for _, a := range assessments {
		db.assessment.insert(a.ID, a)
	}
	db.assessment.Unlock()

	alerts := []analytics.Alert{
		{
			ID:          "alert-1",
			StudentID:   "1",
			Type:        "critical_gap",
			Title:       "Critical Gap Detected",
			Description: "Sarah Johnson - Algebra fundamentals",
			Severity:    analytics.SeverityCritical,
			CreatedAt:   now.Add(-2 * time.Hour),
		},
		{
			ID:          "alert-2",
			StudentID:   "2",
			Type:        "assessment_overdue",
			Title:       "Assessment Overdue",
			Description: "Mike Chen - Reading comprehension",
			Severity:    analytics.SeverityMedium,
			CreatedAt:   now.Add(-5 * time.Hour),
		},
		{
			ID:          "alert-3",
			StudentID:   "3",
			Type:        "improvement_detected",
			Title:       "Improvement Detected",
			Description: "Emma Davis - Geometry mastery",
			Severity:    analytics.SeverityLow,
			CreatedAt:   now.Add(-day),
		},
	}
	db.alert.Lock()
	for _, alert := range alerts {
		db.alert.insert(alert.ID, alert)
	}
	db.alert.Unlock()
}

func lower(s string) string {
	return core.CleanString(s, true /* lower */)
}
