package analytics

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/core"
)

// Engine is the (simulated) inference backend producing skill assessments & curriculum plans.
type Engine interface {
	// AssessSkills estimates one skill mastery per response.
	AssessSkills(responses []json.RawMessage) SkillAssessment
	// Curriculum builds the weekly plan of a student for subject over timeFrame.
	Curriculum(studentID, subject, timeFrame string, focusAreas []string) []CurriculumWeek
	// Recommendation picks a teaching recommendation for the student.
	Recommendation(studentID string) string
}

type (
	MasteryEstimate struct {
		SkillID      string  `json:"skillId"`
		MasteryScore float64 `json:"masteryScore"`
		Confidence   float64 `json:"confidence"`
	}

	GapFinding struct {
		SkillID        string `json:"skillId"`
		Severity       string `json:"severity"`
		Recommendation string `json:"recommendation"`
	}

	SkillAssessment struct {
		Mastery        []MasteryEstimate `json:"mastery"`
		Gaps           []GapFinding      `json:"gaps"`
		ProcessingTime int               `json:"processingTime"` // ms
	}

	SkillAssessmentResult struct {
		StudentID string `json:"studentId"`
		SkillAssessment
	}
)

type AssessSkillsRequest struct {
	StudentID    string            `json:"studentId" validate:"required,notblank"`
	AssessmentID string            `json:"assessmentId" validate:"required,notblank"`
	Responses    []json.RawMessage `json:"responses" validate:"required"`
}

func (r *AssessSkillsRequest) Validate(validate *validator.Validate) error {
	r.StudentID = core.CleanString(r.StudentID)
	r.AssessmentID = core.CleanString(r.AssessmentID)
	return validate.Struct(r)
}

type GenerateCurriculumRequest struct {
	StudentID  string   `json:"studentId" validate:"required,notblank"`
	Subject    string   `json:"subject" validate:"required,notblank"`
	TimeFrame  string   `json:"timeFrame" validate:"required,notblank"`
	FocusAreas []string `json:"focusAreas"`
}

func (r *GenerateCurriculumRequest) Validate(validate *validator.Validate) error {
	r.StudentID = core.CleanString(r.StudentID)
	r.Subject = core.CleanString(r.Subject, true /* lower */)
	r.TimeFrame = core.CleanString(r.TimeFrame)
	return validate.Struct(r)
}

// AssessSkills runs the engine over the responses, upserts every mastery estimate
// and records the identified gaps.
func (svc *Service) AssessSkills(req AssessSkillsRequest) (SkillAssessmentResult, error) {
	result := svc.engine.AssessSkills(req.Responses)

	for _, est := range result.Mastery {
		masteryScore := core.NewScore(est.MasteryScore)
		confidence := core.NewScore(est.Confidence)
		_, err := svc.UpdateSkillMastery(req.StudentID, svc.resolveSkillRef(est.SkillID), UpdateSkillMastery{
			MasteryScore: &masteryScore,
			Confidence:   &confidence,
		})
		if err != nil {
			return SkillAssessmentResult{}, errors.Wrap(err, "storing skill mastery")
		}
	}

	for _, gap := range result.Gaps {
		_, err := svc.CreateSkillGap(NewSkillGap{
			StudentID:      req.StudentID,
			SkillID:        svc.resolveSkillRef(gap.SkillID),
			Severity:       gap.Severity,
			Recommendation: gap.Recommendation,
		})
		if err != nil {
			return SkillAssessmentResult{}, errors.Wrap(err, "storing skill gap")
		}
	}

	return SkillAssessmentResult{StudentID: req.StudentID, SkillAssessment: result}, nil
}

// GenerateCurriculum builds a curriculum plan with the engine and stores it.
func (svc *Service) GenerateCurriculum(req GenerateCurriculumRequest) (CurriculumPlan, error) {
	weeks := svc.engine.Curriculum(req.StudentID, req.Subject, req.TimeFrame, req.FocusAreas)
	plan, err := svc.CreateCurriculumPlan(NewCurriculumPlan{
		StudentID:        req.StudentID,
		Subject:          req.Subject,
		TimeFrame:        req.TimeFrame,
		Weeks:            weeks,
		AIRecommendation: nullStringFrom(svc.engine.Recommendation(req.StudentID)),
	})
	if err != nil {
		return CurriculumPlan{}, errors.Wrap(err, "storing curriculum plan")
	}
	return plan, nil
}
