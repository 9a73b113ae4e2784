package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/core/analytics"
)

func (api *analyticsApi) queryAlerts(ctx echo.Context) error {
	var filter AlertFilter
	filter.Bind(ctx)

	var (
		alerts []analytics.Alert
		err    error
	)
	if filter.UnreadOnly {
		alerts, err = api.svc.UnreadAlerts()
	} else {
		alerts, err = api.svc.QueryAlerts()
	}
	if err != nil {
		return errors.Wrap(err, "querying alerts")
	}
	return ctx.JSON(http.StatusOK, alerts)
}

func (api *analyticsApi) unreadAlerts(ctx echo.Context) error {
	alerts, err := api.svc.UnreadAlerts()
	if err != nil {
		return errors.Wrap(err, "querying unread alerts")
	}
	return ctx.JSON(http.StatusOK, alerts)
}

func (api *analyticsApi) createAlert(ctx echo.Context) error {
	var data analytics.NewAlert
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAlert")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	alert, err := api.svc.CreateAlert(data)
	if err != nil {
		return errors.Wrap(err, "creating alert")
	}
	return ctx.JSON(http.StatusCreated, alert)
}

func (api *analyticsApi) markAlertRead(ctx echo.Context) error {
	alert, err := api.svc.MarkAlertRead(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, alert)
}
