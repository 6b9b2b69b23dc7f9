package handlers

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/branegg/dyspo/models"
	"github.com/branegg/dyspo/scheduling"
)

// string -> int with a fallback when the value is missing or malformed
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// year/month query params with "current month" defaults, original behavior
func yearMonthParams(c echo.Context) (int, int) {
	now := time.Now()
	year := atoiOr(c.QueryParam("year"), now.Year())
	month := atoiOr(c.QueryParam("month"), int(now.Month()))
	return year, month
}

// read user_id set by the JWT middleware
func getUserID(c echo.Context) (uint, bool) {
	switch v := c.Get("user_id").(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	default:
		return 0, false
	}
}

func getRole(c echo.Context) string {
	role, _ := c.Get("role").(string)
	return role
}

func isAdmin(c echo.Context) bool {
	return getRole(c) == models.RoleAdmin
}

// userRefs resolves display identities for a set of user ids in one query.
// Ids that no longer exist are simply absent from the map.
func userRefs(db *gorm.DB, ids []uint) (map[uint]scheduling.UserRef, error) {
	refs := make(map[uint]scheduling.UserRef, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}
	var rows []models.User
	if err := db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, u := range rows {
		refs[u.ID] = scheduling.UserRef{Name: u.Name, Email: u.Email}
	}
	return refs, nil
}
