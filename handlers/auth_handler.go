package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/branegg/dyspo/database"
	"github.com/branegg/dyspo/models"
)

/* ====================== Config & Helpers ====================== */

type AuthHandler struct {
	JWTSecret string
}

func NewAuthHandler(secret string) *AuthHandler {
	return &AuthHandler{JWTSecret: secret}
}

func (h *AuthHandler) signJWT(u *models.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"role":  u.Role,
		"name":  u.Name,
		"email": u.Email,
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(h.JWTSecret))
}

func hashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

/* ====================== DTOs ====================== */

type RegisterReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=employee admin"`
}

type LoginReq struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

/* ====================== Handlers ====================== */

// POST /auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterReq
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
	role := req.Role
	if role == "" {
		role = models.RoleEmployee
	}

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
		Role:     role,
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "user created",
		"userId":  rec.ID,
	})
}

// POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))

	var u models.User
	if err := database.DB.Where("email = ?", email).First(&u).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, map[string]any{"error": "SERVER_ERROR"})
		}
		// same answer as a bad password, do not reveal which
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)) != nil {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	}

	token, err := h.signJWT(&u, 7*24*time.Hour)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "TOKEN_GEN_FAILED"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"token": token,
		"user":  map[string]any{"id": u.ID, "email": u.Email, "name": u.Name, "role": u.Role},
	})
}
