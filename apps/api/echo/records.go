package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/core/analytics"
)

// Assessments

func (api *analyticsApi) queryAssessments(ctx echo.Context) error {
	assessments, err := api.svc.QueryAssessments()
	if err != nil {
		return errors.Wrap(err, "querying assessments")
	}
	return ctx.JSON(http.StatusOK, assessments)
}

func (api *analyticsApi) createAssessment(ctx echo.Context) error {
	var data analytics.NewAssessment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssessment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	asmt, err := api.svc.CreateAssessment(data)
	if err != nil {
		return errors.Wrap(err, "creating assessment")
	}
	return ctx.JSON(http.StatusCreated, asmt)
}

// Skills

func (api *analyticsApi) querySkills(ctx echo.Context) error {
	var filter SkillFilter
	filter.Bind(ctx)

	skills, err := api.svc.QuerySkills(filter.Subject)
	if err != nil {
		return errors.Wrap(err, "querying skills")
	}
	return ctx.JSON(http.StatusOK, skills)
}

func (api *analyticsApi) createSkill(ctx echo.Context) error {
	var data analytics.NewSkill
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSkill")
	}
	if err := data.Validate(api.validate, api.svc); err != nil {
		return err
	}

	skill, err := api.svc.CreateSkill(data)
	if err != nil {
		return errors.Wrap(err, "creating skill")
	}
	return ctx.JSON(http.StatusCreated, skill)
}

func (api *analyticsApi) retrieveSkill(ctx echo.Context) error {
	skill, err := api.svc.GetSkill(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, skill)
}

// Skill mastery

func (api *analyticsApi) queryMastery(ctx echo.Context) error {
	mastery, err := api.svc.QuerySkillMastery()
	if err != nil {
		return errors.Wrap(err, "querying skill mastery")
	}
	return ctx.JSON(http.StatusOK, mastery)
}

func (api *analyticsApi) createMastery(ctx echo.Context) error {
	var data analytics.NewSkillMastery
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSkillMastery")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	mastery, err := api.svc.CreateSkillMastery(data)
	if err != nil {
		return errors.Wrap(err, "creating skill mastery")
	}
	return ctx.JSON(http.StatusCreated, mastery)
}

// Skill gaps

func (api *analyticsApi) querySkillGaps(ctx echo.Context) error {
	gaps, err := api.svc.QuerySkillGaps()
	if err != nil {
		return errors.Wrap(err, "querying skill gaps")
	}
	return ctx.JSON(http.StatusOK, gaps)
}

func (api *analyticsApi) createSkillGap(ctx echo.Context) error {
	var data analytics.NewSkillGap
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSkillGap")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	gap, err := api.svc.CreateSkillGap(data)
	if err != nil {
		return errors.Wrap(err, "creating skill gap")
	}
	return ctx.JSON(http.StatusCreated, gap)
}

// Progress tracking

func (api *analyticsApi) createProgress(ctx echo.Context) error {
	var data analytics.NewProgressTracking
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProgressTracking")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	progress, err := api.svc.CreateProgress(data)
	if err != nil {
		return errors.Wrap(err, "creating progress record")
	}
	return ctx.JSON(http.StatusCreated, progress)
}
