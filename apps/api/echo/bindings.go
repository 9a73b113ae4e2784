package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

var (
	subjectParam = "subject"
	unreadParam  = "unread"
)

// SkillFilter narrows skill listings down to one subject.
type SkillFilter struct {
	Subject string
}

func (f *SkillFilter) Bind(ctx echo.Context) {
	f.Subject = ctx.QueryParam(subjectParam)
}

// AlertFilter selects unread alerts only when `unread` is truthy.
type AlertFilter struct {
	UnreadOnly bool
}

func (f *AlertFilter) Bind(ctx echo.Context) {
	if val := ctx.QueryParam(unreadParam); val != "" {
		f.UnreadOnly, _ = strconv.ParseBool(val)
	}
}
