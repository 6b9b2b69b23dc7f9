package handlers

import (
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/branegg/dyspo/database"
	"github.com/branegg/dyspo/models"
)

func TestRegister_CreatesEmployeeByDefault(t *testing.T) {
	setupTestDB(t)
	e := newEcho()
	h := NewAuthHandler("test-secret")

	c, rec := newContext(t, e, http.MethodPost, "/auth/register", map[string]any{
		"email": "Jan@Example.com", "password": "secret1", "name": "Jan Kowalski",
	})
	require.NoError(t, h.Register(c))
	requireStatus(t, rec, http.StatusCreated)

	var u models.User
	require.NoError(t, database.DB.Where("email = ?", "jan@example.com").First(&u).Error)
	assert.Equal(t, models.RoleEmployee, u.Role)
	assert.NotEqual(t, "secret1", u.Password, "password must be stored hashed")
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	setupTestDB(t)
	e := newEcho()
	h := NewAuthHandler("test-secret")

	c, rec := newContext(t, e, http.MethodPost, "/auth/register", map[string]any{
		"email": "jan@example.com", "password": "abc", "name": "Jan",
	})
	require.NoError(t, h.Register(c))
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	setupTestDB(t)
	createUser(t, "Jan Kowalski", "jan@example.com", models.RoleEmployee)
	e := newEcho()
	h := NewAuthHandler("test-secret")

	c, rec := newContext(t, e, http.MethodPost, "/auth/register", map[string]any{
		"email": "jan@example.com", "password": "secret1", "name": "Jan II",
	})
	require.NoError(t, h.Register(c))
	requireStatus(t, rec, http.StatusConflict)
	assert.Equal(t, "EMAIL_EXISTS", decodeBody(t, rec)["error"])
}

func TestLogin_IssuesTokenWithClaims(t *testing.T) {
	setupTestDB(t)
	e := newEcho()
	h := NewAuthHandler("test-secret")

	// register through the real path so the stored hash is genuine
	c, rec := newContext(t, e, http.MethodPost, "/auth/register", map[string]any{
		"email": "jan@example.com", "password": "secret1", "name": "Jan Kowalski",
	})
	require.NoError(t, h.Register(c))
	requireStatus(t, rec, http.StatusCreated)

	c, rec = newContext(t, e, http.MethodPost, "/auth/login", map[string]any{
		"email": "jan@example.com", "password": "secret1",
	})
	require.NoError(t, h.Login(c))
	requireStatus(t, rec, http.StatusOK)

	body := decodeBody(t, rec)
	tokenStr, _ := body["token"].(string)
	require.NotEmpty(t, tokenStr)

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "employee", claims["role"])
	assert.Equal(t, "Jan Kowalski", claims["name"])

	user := body["user"].(map[string]any)
	assert.Equal(t, "jan@example.com", user["email"])
	assert.NotContains(t, user, "password")
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	setupTestDB(t)
	e := newEcho()
	h := NewAuthHandler("test-secret")

	c, _ := newContext(t, e, http.MethodPost, "/auth/register", map[string]any{
		"email": "jan@example.com", "password": "secret1", "name": "Jan",
	})
	require.NoError(t, h.Register(c))

	c, rec1 := newContext(t, e, http.MethodPost, "/auth/login", map[string]any{
		"email": "jan@example.com", "password": "wrong-password",
	})
	require.NoError(t, h.Login(c))
	requireStatus(t, rec1, http.StatusUnauthorized)

	c, rec2 := newContext(t, e, http.MethodPost, "/auth/login", map[string]any{
		"email": "nobody@example.com", "password": "secret1",
	})
	require.NoError(t, h.Login(c))
	requireStatus(t, rec2, http.StatusUnauthorized)

	// identical error payloads: do not reveal which half was wrong
	assert.Equal(t, decodeBody(t, rec1)["error"], decodeBody(t, rec2)["error"])
}
