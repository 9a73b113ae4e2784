package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/core/analytics"
)

func (api *analyticsApi) queryStudents(ctx echo.Context) error {
	students, err := api.svc.StudentsWithStats()
	if err != nil {
		return errors.Wrap(err, "querying students with stats")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *analyticsApi) createStudent(ctx echo.Context) error {
	var data analytics.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.validate, api.svc); err != nil {
		return err
	}

	std, err := api.svc.CreateStudent(data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, std)
}

func (api *analyticsApi) retrieveStudent(ctx echo.Context) error {
	std, err := api.svc.GetStudent(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *analyticsApi) retrieveStudentByCode(ctx echo.Context) error {
	std, err := api.svc.GetStudentByCode(ctx.Param("code"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *analyticsApi) updateStudent(ctx echo.Context) error {
	origStd, err := api.svc.GetStudent(ctx.Param("id"))
	if err != nil {
		return err
	}

	var data analytics.UpdateStudent
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err = data.Validate(origStd, api.validate, api.svc); err != nil {
		return err
	}

	std, err := api.svc.UpdateStudent(origStd.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *analyticsApi) studentAssessments(ctx echo.Context) error {
	assessments, err := api.svc.StudentAssessments(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying student assessments")
	}
	return ctx.JSON(http.StatusOK, assessments)
}

func (api *analyticsApi) studentMastery(ctx echo.Context) error {
	mastery, err := api.svc.StudentSkillMastery(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying student skill mastery")
	}
	return ctx.JSON(http.StatusOK, mastery)
}

func (api *analyticsApi) studentSkillGaps(ctx echo.Context) error {
	gaps, err := api.svc.StudentSkillGaps(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying student skill gaps")
	}
	return ctx.JSON(http.StatusOK, gaps)
}

func (api *analyticsApi) studentCurriculum(ctx echo.Context) error {
	plans, err := api.svc.StudentCurriculumPlans(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying student curriculum plans")
	}
	return ctx.JSON(http.StatusOK, plans)
}

func (api *analyticsApi) studentProgress(ctx echo.Context) error {
	progress, err := api.svc.StudentProgress(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying student progress")
	}
	return ctx.JSON(http.StatusOK, progress)
}
