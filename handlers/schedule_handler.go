package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/branegg/dyspo/database"
	"github.com/branegg/dyspo/models"
	"github.com/branegg/dyspo/scheduling"
)

type ScheduleHandler struct{}

func NewScheduleHandler() *ScheduleHandler { return &ScheduleHandler{} }

type saveScheduleReq struct {
	Year        int                    `json:"year" validate:"required"`
	Month       int                    `json:"month" validate:"required,min=1,max=12"`
	Assignments []models.DayAssignment `json:"assignments" validate:"required"`
}

// load + project one month's schedule; (nil, nil) when no schedule exists
func projectedSchedule(year, month int) (*scheduling.ScheduleView, error) {
	var sched models.Schedule
	err := database.DB.Where("year = ? AND month = ?", year, month).First(&sched).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	refs, err := userRefs(database.DB, scheduling.ReferencedUserIDs(&sched))
	if err != nil {
		return nil, err
	}
	return scheduling.Project(&sched, refs), nil
}

/* ====================== Admin ====================== */

// GET /api/admin/schedule?year=&month=
// Null schedule means "not published yet", not an error.
func (h *ScheduleHandler) AdminGet(c echo.Context) error {
	year, month := yearMonthParams(c)

	view, err := projectedSchedule(year, month)
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}
	if view == nil {
		return c.JSON(http.StatusOK, map[string]any{"schedule": nil})
	}
	return c.JSON(http.StatusOK, map[string]any{"schedule": view})
}

// POST /api/admin/schedule
// Validates the whole batch, then replaces the month's assignment list
// wholesale. A rule violation rejects the request with zero writes.
func (h *ScheduleHandler) AdminSave(c echo.Context) error {
	var req saveScheduleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":   "MISSING_FIELDS",
			"message": "year, month and assignments are required",
		})
	}

	assignments, err := scheduling.Validate(req.Year, req.Month, req.Assignments)
	if err != nil {
		var rule *scheduling.RuleError
		if errors.As(err, &rule) {
			return c.JSON(http.StatusBadRequest, map[string]any{
				"error":   "INVALID_ASSIGNMENT",
				"message": rule.Reason,
				"day":     rule.Day,
			})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}

	var existing models.Schedule
	err = database.DB.Where("year = ? AND month = ?", req.Year, req.Month).First(&existing).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}

	if err == gorm.ErrRecordNotFound {
		rec := models.Schedule{Year: req.Year, Month: req.Month, Assignments: assignments}
		if err := database.DB.Create(&rec).Error; err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
		}
		return c.JSON(http.StatusOK, map[string]any{"message": "schedule saved"})
	}

	existing.Assignments = assignments
	if err := database.DB.Save(&existing).Error; err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "schedule updated"})
}

/* ====================== Employee ====================== */

// GET /api/schedule?year=&month=
// Employee view of the published month. 404 when nothing is published.
func (h *ScheduleHandler) Get(c echo.Context) error {
	year := atoiOr(c.QueryParam("year"), 0)
	month := atoiOr(c.QueryParam("month"), 0)
	if year == 0 || month < 1 || month > 12 {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":   "INVALID_PARAMS",
			"message": "valid year and month are required",
		})
	}

	view, err := projectedSchedule(year, month)
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}
	if view == nil {
		return c.JSON(http.StatusNotFound, map[string]any{
			"error":   "SCHEDULE_NOT_FOUND",
			"message": "no schedule published for this month",
		})
	}
	return c.JSON(http.StatusOK, view)
}

/* ====================== Stats ====================== */

// GET /api/stats?year=&month=&userId=
// Assigned days and hours for one employee in one month; userId override is
// admin only. Zeros when no schedule is published.
func (h *ScheduleHandler) Stats(c echo.Context) error {
	year, month := yearMonthParams(c)

	targetID, _ := getUserID(c)
	if requested := c.QueryParam("userId"); requested != "" && isAdmin(c) {
		targetID = uint(atoiOr(requested, 0))
	}

	var sched models.Schedule
	err := database.DB.Where("year = ? AND month = ?", year, month).First(&sched).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusOK, scheduling.StatsView{})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}
	return c.JSON(http.StatusOK, scheduling.Stats(targetID, &sched))
}
