package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/branegg/dyspo/database"
	"github.com/branegg/dyspo/models"
)

type HourLogHandler struct{}

func NewHourLogHandler() *HourLogHandler { return &HourLogHandler{} }

type createHourLogReq struct {
	Year     int     `json:"year" validate:"required"`
	Month    int     `json:"month" validate:"required,min=1,max=12"`
	Day      int     `json:"day" validate:"required,min=1,max=31"`
	Hours    float64 `json:"hours" validate:"required,gt=0"`
	Location string  `json:"location" validate:"required,oneof=bagiety widok"`
	Notes    string  `json:"notes"`
}

type updateHourLogReq struct {
	Hours    float64 `json:"hours" validate:"required,gt=0"`
	Location string  `json:"location" validate:"required,oneof=bagiety widok"`
	Notes    string  `json:"notes"`
}

// GET /api/hours?year=&month=
func (h *HourLogHandler) List(c echo.Context) error {
	userID, _ := getUserID(c)
	year, month := yearMonthParams(c)

	var rows []models.HourLog
	if err := database.DB.
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Order("day ASC").Find(&rows).Error; err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}
	return c.JSON(http.StatusOK, map[string]any{"hourLogs": rows})
}

// POST /api/hours
func (h *HourLogHandler) Create(c echo.Context) error {
	userID, _ := getUserID(c)

	var req createHourLogReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":   "VALIDATION_FAILED",
			"message": "year, month, day, positive hours and a valid location are required",
		})
	}

	var dup models.HourLog
	err := database.DB.
		Where("user_id = ? AND year = ? AND month = ? AND day = ? AND location = ?",
			userID, req.Year, req.Month, req.Day, req.Location).
		First(&dup).Error
	if err == nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":   "HOUR_LOG_EXISTS",
			"message": "an entry for this day and location already exists, edit it instead",
		})
	}
	if err != gorm.ErrRecordNotFound {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}

	rec := models.HourLog{
		UserID:   userID,
		Year:     req.Year,
		Month:    req.Month,
		Day:      req.Day,
		Hours:    req.Hours,
		Location: req.Location,
		Notes:    strings.TrimSpace(req.Notes),
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "hours saved"})
}

// PUT /api/hours/:id — only the owner may edit
func (h *HourLogHandler) Update(c echo.Context) error {
	userID, _ := getUserID(c)
	id := atoiOr(c.Param("id"), 0)
	if id <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}

	var req updateHourLogReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":   "VALIDATION_FAILED",
			"message": "positive hours and a valid location are required",
		})
	}

	var rec models.HourLog
	if err := database.DB.Where("id = ? AND user_id = ?", uint(id), userID).First(&rec).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}

	rec.Hours = req.Hours
	rec.Location = req.Location
	rec.Notes = strings.TrimSpace(req.Notes)
	if err := database.DB.Save(&rec).Error; err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "entry updated"})
}

// DELETE /api/hours/:id — only the owner may delete
func (h *HourLogHandler) Delete(c echo.Context) error {
	userID, _ := getUserID(c)
	id := atoiOr(c.Param("id"), 0)
	if id <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}

	var rec models.HourLog
	if err := database.DB.Where("id = ? AND user_id = ?", uint(id), userID).First(&rec).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}

	if err := database.DB.Delete(&rec).Error; err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "entry deleted"})
}

// GET /api/admin/hours?year=&month=
// Month ledger across all employees, joined with identity, ordered by
// employee name then day.
func (h *HourLogHandler) AdminList(c echo.Context) error {
	year, month := yearMonthParams(c)

	var rows []models.HourLog
	if err := database.DB.Where("year = ? AND month = ?", year, month).
		Order("user_id ASC, day ASC").Find(&rows).Error; err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}

	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.UserID)
	}
	refs, err := userRefs(database.DB, ids)
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}

	out := make([]models.HourLogWithUser, 0, len(rows))
	for _, r := range rows {
		ref, ok := refs[r.UserID]
		if !ok {
			continue
		}
		row := models.HourLogWithUser{HourLog: r}
		row.User.Name = ref.Name
		row.User.Email = ref.Email
		out = append(out, row)
	}
	return c.JSON(http.StatusOK, map[string]any{"hourLogs": out})
}
