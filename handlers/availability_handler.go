package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/branegg/dyspo/database"
	"github.com/branegg/dyspo/models"
)

type AvailabilityHandler struct{}

func NewAvailabilityHandler() *AvailabilityHandler { return &AvailabilityHandler{} }

/* ====================== DTOs ====================== */

type saveAvailabilityReq struct {
	Year          int   `json:"year" validate:"required"`
	Month         int   `json:"month" validate:"required,min=1,max=12"`
	AvailableDays []int `json:"availableDays" validate:"required"`
}

type lockAvailabilityReq struct {
	UserID uint `json:"userId" validate:"required"`
	Year   int  `json:"year" validate:"required"`
	Month  int  `json:"month" validate:"required,min=1,max=12"`
}

/* ====================== Employee ====================== */

// GET /api/availability?year=&month=&userId=
// Returns the caller's record; admins may read any employee via userId.
// A missing record is a valid state and comes back as null.
func (h *AvailabilityHandler) Get(c echo.Context) error {
	year, month := yearMonthParams(c)

	targetID, _ := getUserID(c)
	if requested := c.QueryParam("userId"); requested != "" && isAdmin(c) {
		targetID = uint(atoiOr(requested, 0))
	}

	var rec models.Availability
	err := database.DB.Where("user_id = ? AND year = ? AND month = ?", targetID, year, month).
		First(&rec).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusOK, map[string]any{"availability": nil})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}
	return c.JSON(http.StatusOK, map[string]any{"availability": rec})
}

// POST /api/availability
// Employees only. A successful save always locks the record; further edits
// need an admin unlock.
func (h *AvailabilityHandler) Save(c echo.Context) error {
	if getRole(c) != models.RoleEmployee {
		return c.JSON(http.StatusForbidden, map[string]any{
			"error":   "EMPLOYEES_ONLY",
			"message": "only employees can submit their own availability",
		})
	}

	var req saveAvailabilityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":   "MISSING_FIELDS",
			"message": "year, month and availableDays are required",
		})
	}

	userID, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "INVALID_TOKEN"})
	}

	// keep only real calendar days, silently
	days := make([]int, 0, len(req.AvailableDays))
	for _, d := range req.AvailableDays {
		if d >= 1 && d <= 31 {
			days = append(days, d)
		}
	}

	var existing models.Availability
	err := database.DB.Where("user_id = ? AND year = ? AND month = ?", userID, req.Year, req.Month).
		First(&existing).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}

	if err == nil && existing.Locked() {
		return c.JSON(http.StatusForbidden, map[string]any{
			"error":   "AVAILABILITY_LOCKED",
			"message": "availability for this month is locked, contact an administrator",
		})
	}

	locked := true
	if err == gorm.ErrRecordNotFound {
		rec := models.Availability{
			UserID:        userID,
			Year:          req.Year,
			Month:         req.Month,
			AvailableDays: days,
			IsLocked:      &locked,
		}
		if err := database.DB.Create(&rec).Error; err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
		}
	} else {
		existing.AvailableDays = days
		existing.IsLocked = &locked
		if err := database.DB.Save(&existing).Error; err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
		}
	}

	return c.JSON(http.StatusOK, map[string]any{"message": "availability saved and locked"})
}

/* ====================== Admin ====================== */

// GET /api/admin/availability?year=&month=
// All records for the month, joined with employee identity in one batch
// lookup. Records whose owner was deleted are skipped.
func (h *AvailabilityHandler) AdminList(c echo.Context) error {
	year, month := yearMonthParams(c)

	var recs []models.Availability
	if err := database.DB.Where("year = ? AND month = ?", year, month).
		Order("user_id ASC").Find(&recs).Error; err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}

	ids := make([]uint, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.UserID)
	}
	refs, err := userRefs(database.DB, ids)
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}

	out := make([]models.AvailabilityWithUser, 0, len(recs))
	for _, r := range recs {
		ref, ok := refs[r.UserID]
		if !ok {
			continue
		}
		row := models.AvailabilityWithUser{Availability: r}
		row.User.Name = ref.Name
		row.User.Email = ref.Email
		out = append(out, row)
	}
	return c.JSON(http.StatusOK, map[string]any{"availability": out})
}

// POST /api/admin/availability/lock
func (h *AvailabilityHandler) Lock(c echo.Context) error {
	return h.setLocked(c, true, "availability locked")
}

// POST /api/admin/availability/unlock
func (h *AvailabilityHandler) Unlock(c echo.Context) error {
	return h.setLocked(c, false, "availability unlocked")
}

func (h *AvailabilityHandler) setLocked(c echo.Context, locked bool, msg string) error {
	var req lockAvailabilityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":   "MISSING_FIELDS",
			"message": "userId, year and month are required",
		})
	}

	var rec models.Availability
	err := database.DB.Where("user_id = ? AND year = ? AND month = ?", req.UserID, req.Year, req.Month).
		First(&rec).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{
				"error":   "NOT_FOUND",
				"message": "no availability record for this employee and month",
			})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}

	if err := database.DB.Model(&rec).Update("is_locked", &locked).Error; err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": msg})
}

// POST /api/admin/availability/lock-all
// One-time backfill: rows missing the flag (legacy data) or explicitly
// unlocked all become locked.
func (h *AvailabilityHandler) LockAll(c echo.Context) error {
	locked := true
	res := database.DB.Model(&models.Availability{}).
		Where("is_locked IS NULL OR is_locked = ?", false).
		Update("is_locked", &locked)
	if res.Error != nil {
		c.Logger().Error(res.Error)
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":       true,
		"modifiedCount": res.RowsAffected,
	})
}
