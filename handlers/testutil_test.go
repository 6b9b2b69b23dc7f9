package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/branegg/dyspo/database"
	"github.com/branegg/dyspo/models"
)

var testDBSeq atomic.Int64

// setupTestDB points the package-global DB at a fresh in-memory database.
func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db
}

type testValidator struct {
	v *validator.Validate
}

func (tv *testValidator) Validate(i any) error { return tv.v.Struct(i) }

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{v: validator.New()}
	return e
}

// newContext builds an echo context for a direct handler call.
func newContext(t *testing.T, e *echo.Echo, method, target string, body any) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// asUser mimics what the JWT middleware attaches to the context.
func asUser(c echo.Context, u *models.User) {
	c.Set("user_id", u.ID)
	c.Set("role", u.Role)
	c.Set("name", u.Name)
	c.Set("email", u.Email)
}

func createUser(t *testing.T, name, email, role string) *models.User {
	t.Helper()
	u := models.User{
		Email:    email,
		Name:     name,
		Password: "$2a$10$not.a.real.hash.for.tests.only",
		Role:     role,
	}
	require.NoError(t, database.DB.Create(&u).Error)
	return &u
}

func itoa(v uint) string { return strconv.FormatUint(uint64(v), 10) }

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "body: %s", rec.Body.String())
}
