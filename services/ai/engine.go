package aisvc

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/core/analytics"
)

// RandSource is the noise behind the simulated inference.
type RandSource interface {
	Float64() float64 // [0.0,1.0)
	Intn(n int) int   // [0,n)
}

type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandSource returns a goroutine-safe source; a zero seed seeds from the clock.
func NewRandSource(seed int64) RandSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRand{rnd: rand.New(rand.NewSource(seed))}
}

func (r *lockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Float64()
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(n)
}

const (
	minProcessingTime   = 500  // ms
	processingTimeRange = 2000 // ms
)

var recommendations = []string{
	"Include visual aids and manipulatives for better concept understanding based on student's learning profile.",
	"Focus on hands-on activities to improve engagement and retention.",
	"Implement peer learning sessions to enhance collaborative understanding.",
	"Use gamification techniques to increase motivation and participation.",
	"Provide additional scaffolding for complex problem-solving tasks.",
}

type mockEngine struct {
	rnd RandSource
}

var _ analytics.Engine = (*mockEngine)(nil) // interface compliance check

// NewMockEngine returns an Engine producing fixed-shape results with random scores.
func NewMockEngine(rnd RandSource) analytics.Engine {
	return &mockEngine{rnd: rnd}
}

func (eng *mockEngine) AssessSkills(responses []json.RawMessage) analytics.SkillAssessment {
	mastery := make([]analytics.MasteryEstimate, 0, len(responses))
	for i := range responses {
		mastery = append(mastery, analytics.MasteryEstimate{
			SkillID:      fmt.Sprintf("skill-%d", i+1),
			MasteryScore: eng.rnd.Float64() * 100,
			Confidence:   eng.rnd.Float64() * 100,
		})
	}
	return analytics.SkillAssessment{
		Mastery: mastery,
		Gaps: []analytics.GapFinding{
			{
				SkillID:        "math.algebra.basic",
				Severity:       analytics.SeverityHigh,
				Recommendation: "Focus on fundamental algebraic operations",
			},
		},
		ProcessingTime: minProcessingTime + eng.rnd.Intn(processingTimeRange),
	}
}

// Curriculum returns the same two-week template whatever the input.
func (eng *mockEngine) Curriculum(_, _, _ string, _ []string) []analytics.CurriculumWeek {
	return []analytics.CurriculumWeek{
		{
			Week:        1,
			Title:       "Algebra Fundamentals",
			Hours:       8,
			Description: "Focus on basic algebraic operations and equation solving",
			Topics: []analytics.CurriculumTopic{
				{Title: "Introduction to variables and expressions", Status: analytics.TopicCompleted, EstimatedHours: 2},
				{Title: "Solving simple linear equations", Status: analytics.TopicInProgress, EstimatedHours: 3},
				{Title: "Practice problems and assessment", Status: analytics.TopicPending, EstimatedHours: 3},
			},
		},
		{
			Week:        2,
			Title:       "Advanced Equations",
			Hours:       10,
			Description: "Multi-step equations and problem-solving strategies",
			Topics: []analytics.CurriculumTopic{
				{Title: "Multi-step linear equations", Status: analytics.TopicPending, EstimatedHours: 4},
				{Title: "Word problems and applications", Status: analytics.TopicPending, EstimatedHours: 3},
				{Title: "Final assessment and review", Status: analytics.TopicPending, EstimatedHours: 3},
			},
		},
	}
}

func (eng *mockEngine) Recommendation(_ string) string {
	return recommendations[eng.rnd.Intn(len(recommendations))]
}
