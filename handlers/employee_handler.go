package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/branegg/dyspo/database"
	"github.com/branegg/dyspo/models"
)

// Admin management of employee accounts.
type EmployeeHandler struct{}

func NewEmployeeHandler() *EmployeeHandler { return &EmployeeHandler{} }

type createEmployeeReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

type updateEmployeeReq struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Name     string `json:"name"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

// GET /api/admin/employees
func (h *EmployeeHandler) List(c echo.Context) error {
	var rows []models.User
	if err := database.DB.Where("role = ?", models.RoleEmployee).
		Order("name ASC").Find(&rows).Error; err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}
	return c.JSON(http.StatusOK, map[string]any{"employees": rows})
}

// POST /api/admin/employees
func (h *EmployeeHandler) Create(c echo.Context) error {
	var req createEmployeeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":   "VALIDATION_FAILED",
			"message": "email, password (min 6 characters) and name are required",
		})
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))

	var dup models.User
	if err := database.DB.Where("email = ?", email).First(&dup).Error; err == nil {
		return c.JSON(http.StatusConflict, map[string]any{
			"error":   "EMAIL_EXISTS",
			"message": "a user with this email address already exists",
		})
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}
	rec := models.User{
		Email:    email,
		Name:     strings.TrimSpace(req.Name),
		Password: hash,
		Role:     models.RoleEmployee,
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "employee created",
		"userId":  rec.ID,
	})
}

// PUT /api/admin/employees/:id
// Partial update of name/email; a non-empty password is re-hashed.
func (h *EmployeeHandler) Update(c echo.Context) error {
	id := atoiOr(c.Param("id"), 0)
	if id <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}

	var req updateEmployeeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":   "VALIDATION_FAILED",
			"message": "email must be valid and password at least 6 characters",
		})
	}

	var u models.User
	if err := database.DB.First(&u, uint(id)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}

	if req.Email != "" {
		email := strings.TrimSpace(strings.ToLower(req.Email))
		if email != u.Email {
			var dup models.User
			if err := database.DB.Where("email = ? AND id <> ?", email, u.ID).First(&dup).Error; err == nil {
				return c.JSON(http.StatusConflict, map[string]any{
					"error":   "EMAIL_EXISTS",
					"message": "a user with this email address already exists",
				})
			}
			u.Email = email
		}
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		u.Name = name
	}
	if req.Password != "" {
		hash, err := hashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
		}
		u.Password = hash
	}

	if err := database.DB.Save(&u).Error; err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "employee updated"})
}
