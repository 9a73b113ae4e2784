package analytics

import (
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/core"
)

const neverAssessed = "never"

// DashboardMetrics aggregates the store's counters.
// AvgMasteryScore is the mean of all assessment scores, rounded to 1 decimal (0 without assessments).
func (svc *Service) DashboardMetrics() (DashboardMetrics, error) {
	var (
		metrics DashboardMetrics
		err     error
	)
	if metrics.TotalStudents, err = svc.repo.CountStudents(); err != nil {
		return DashboardMetrics{}, errors.Wrap(err, "counting students")
	}
	if metrics.SkillGapsIdentified, err = svc.repo.CountSkillGaps(); err != nil {
		return DashboardMetrics{}, errors.Wrap(err, "counting skill gaps")
	}

	assessments, err := svc.repo.QueryAllAssessments()
	if err != nil {
		return DashboardMetrics{}, errors.Wrap(err, "querying assessments")
	}
	metrics.AssessmentsCompleted = len(assessments)
	if len(assessments) > 0 {
		var total float64
		for _, a := range assessments {
			total += a.Score.Float64()
		}
		metrics.AvgMasteryScore = core.Round(total/float64(len(assessments)), 1)
	}
	return metrics, nil
}

// StudentsWithStats joins every student with the score of their most recent assessment
// in mathematics, language arts & science, and how long ago they were last assessed.
func (svc *Service) StudentsWithStats() ([]StudentWithStats, error) {
	students, err := svc.repo.QueryAllStudents()
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	assessments, err := svc.repo.QueryAllAssessments()
	if err != nil {
		return nil, errors.Wrap(err, "querying assessments")
	}

	type history struct {
		latest    Assessment            // overall
		bySubject map[string]Assessment // latest per subject
	}
	histories := make(map[string]*history, len(students))
	for _, a := range assessments {
		h, ok := histories[a.StudentID]
		if !ok {
			h = &history{latest: a, bySubject: make(map[string]Assessment)}
			histories[a.StudentID] = h
		}
		if a.CompletedAt.After(h.latest.CompletedAt) {
			h.latest = a
		}
		if prev, ok := h.bySubject[a.Subject]; !ok || a.CompletedAt.After(prev.CompletedAt) {
			h.bySubject[a.Subject] = a
		}
	}

	now := nowFunc()
	stats := make([]StudentWithStats, 0, len(students))
	for _, std := range students {
		st := StudentWithStats{
			ID:             std.ID,
			StudentCode:    std.StudentCode,
			FirstName:      std.FirstName,
			LastName:       std.LastName,
			Grade:          std.Grade,
			RiskLevel:      std.RiskLevel,
			LastAssessment: neverAssessed,
		}
		if h, ok := histories[std.ID]; ok {
			st.MathematicsScore = h.bySubject[SubjectMathematics].Score.Float64()
			st.LanguageArtsScore = h.bySubject[SubjectLanguageArts].Score.Float64()
			st.ScienceScore = h.bySubject[SubjectScience].Score.Float64()
			st.LastAssessment = humanize.RelTime(h.latest.CompletedAt, now, "ago", "from now")
		}
		stats = append(stats, st)
	}
	return stats, nil
}

// SkillMasteryChart returns the dataset of the dashboard's skill mastery bar chart.
func (svc *Service) SkillMasteryChart() ChartData {
	return ChartData{
		Labels: []string{
			"Algebra", "Geometry", "Statistics",
			"Reading Comp.", "Writing", "Grammar",
			"Biology", "Chemistry", "Physics",
		},
		Datasets: []ChartDataset{
			{
				Label:           "Mastery Level (%)",
				Data:            []float64{65, 78, 82, 74, 69, 88, 91, 76, 83},
				BackgroundColor: "rgba(14, 165, 233, 0.8)",
				BorderColor:     "rgba(14, 165, 233, 1)",
				BorderWidth:     1,
				BorderRadius:    4,
			},
		},
	}
}
