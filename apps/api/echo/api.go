package echoapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/core/analytics"
)

type analyticsApi struct {
	svc      *analytics.Service
	validate *validator.Validate
}

func registerAnalyticsAPI(g *echo.Group, svc *analytics.Service, validate *validator.Validate) {
	api := analyticsApi{
		svc:      svc,
		validate: validate,
	}

	dg := g.Group("/dashboard")
	dg.GET("/metrics", api.metrics)
	dg.GET("/skill-mastery-chart", api.skillMasteryChart)

	sg := g.Group("/students")
	sg.GET("", api.queryStudents)
	sg.POST("", api.createStudent)
	sg.GET("/code/:code", api.retrieveStudentByCode)
	sg.GET("/:id", api.retrieveStudent)
	sg.PATCH("/:id", api.updateStudent)
	sg.GET("/:id/assessments", api.studentAssessments)
	sg.GET("/:id/mastery", api.studentMastery)
	sg.GET("/:id/skill-gaps", api.studentSkillGaps)
	sg.GET("/:id/curriculum", api.studentCurriculum)
	sg.GET("/:id/progress", api.studentProgress)

	g.GET("/assessments", api.queryAssessments)
	g.POST("/assessments", api.createAssessment)

	g.GET("/skills", api.querySkills)
	g.POST("/skills", api.createSkill)
	g.GET("/skills/:id", api.retrieveSkill)

	g.GET("/mastery", api.queryMastery)
	g.POST("/mastery", api.createMastery)

	g.GET("/skill-gaps", api.querySkillGaps)
	g.POST("/skill-gaps", api.createSkillGap)

	g.POST("/progress", api.createProgress)

	ag := g.Group("/alerts")
	ag.GET("", api.queryAlerts)
	ag.POST("", api.createAlert)
	ag.GET("/unread", api.unreadAlerts)
	ag.PATCH("/:id/read", api.markAlertRead)

	aig := g.Group("/ai")
	aig.POST("/assess-skills", api.assessSkills)
	aig.POST("/generate-curriculum", api.generateCurriculum)
}

type healthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// health is the liveness probe.
func health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, healthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}
