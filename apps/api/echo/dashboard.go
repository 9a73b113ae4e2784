package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/core/analytics"
)

func (api *analyticsApi) metrics(ctx echo.Context) error {
	metrics, err := api.svc.DashboardMetrics()
	if err != nil {
		return errors.Wrap(err, "computing dashboard metrics")
	}
	return ctx.JSON(http.StatusOK, metrics)
}

func (api *analyticsApi) skillMasteryChart(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.SkillMasteryChart())
}

// AI

func (api *analyticsApi) assessSkills(ctx echo.Context) error {
	var data analytics.AssessSkillsRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AssessSkillsRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	result, err := api.svc.AssessSkills(data)
	if err != nil {
		return errors.Wrap(err, "assessing skills")
	}
	return ctx.JSON(http.StatusOK, result)
}

func (api *analyticsApi) generateCurriculum(ctx echo.Context) error {
	var data analytics.GenerateCurriculumRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GenerateCurriculumRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	plan, err := api.svc.GenerateCurriculum(data)
	if err != nil {
		return errors.Wrap(err, "generating curriculum")
	}
	return ctx.JSON(http.StatusOK, plan)
}
