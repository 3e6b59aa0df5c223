package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/employeems/employee-management-api/internal/constants"
	"github.com/employeems/employee-management-api/internal/database"
	"github.com/employeems/employee-management-api/internal/middleware"
	"github.com/employeems/employee-management-api/internal/models"
	"github.com/employeems/employee-management-api/internal/repository"
	"github.com/employeems/employee-management-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testSecret = []byte("test_secret")

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Admin{},
		&models.Category{},
		&models.Employee{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	adminRepo := repository.NewAdminRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	authService := services.NewAuthService(adminRepo, employeeRepo, testSecret, 24*time.Hour)
	handler := NewAuthHandler(authService, false)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	gin.SetMode(gin.TestMode)

	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
	}
}

func newAuthRouter(env authTestEnv) *gin.Engine {
	r := gin.New()
	r.POST("/auth/adminregister", env.handler.AdminRegister)
	r.POST("/auth/adminlogin", env.handler.AdminLogin)
	r.POST("/employee/employee_login", env.handler.EmployeeLogin)
	r.POST("/employee/register", env.handler.EmployeeRegister)
	r.GET("/auth/logout", env.handler.Logout)
	r.GET("/verify", middleware.RequireAuth(testSecret), env.handler.Verify)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == constants.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestAuthHandler_AdminRegister(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	w := postJSON(t, r, "/auth/adminregister", map[string]string{
		"email":    "admin@example.com",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var count int64
	env.db.Model(&models.Admin{}).Count(&count)
	require.EqualValues(t, 1, count)

	var admin models.Admin
	require.NoError(t, env.db.First(&admin).Error)
	require.Equal(t, "admin@example.com", admin.Email)
	require.NotEqual(t, "supersecret", admin.PasswordHash)
}

func TestAuthHandler_AdminRegister_DuplicateEmail(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	w := postJSON(t, r, "/auth/adminregister", map[string]string{
		"email":    "admin@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Same address in a different case is still a duplicate.
	w = postJSON(t, r, "/auth/adminregister", map[string]string{
		"email":    "Admin@Example.com",
		"password": "othersecret",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	var count int64
	env.db.Model(&models.Admin{}).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestAuthHandler_AdminRegister_ShortPassword(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	w := postJSON(t, r, "/auth/adminregister", map[string]string{
		"email":    "admin@example.com",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	env.db.Model(&models.Admin{}).Count(&count)
	require.EqualValues(t, 0, count)
}

func TestAuthHandler_AdminLogin(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	_, err := env.authService.RegisterAdmin("admin@example.com", "supersecret")
	require.NoError(t, err)

	w := postJSON(t, r, "/auth/adminlogin", map[string]string{
		"email":    "admin@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, true, response["login_status"])
	require.Equal(t, constants.RoleAdmin, response["role"])

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	require.NotEmpty(t, cookie.Value)
	require.True(t, cookie.HttpOnly)

	// The cookie is enough to pass verification.
	req := httptest.NewRequest(http.MethodGet, "/verify", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var verify map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verify))
	require.Equal(t, true, verify["status"])
	require.Equal(t, constants.RoleAdmin, verify["role"])
	require.EqualValues(t, 1, verify["id"])
}

func TestAuthHandler_AdminLogin_WrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	_, err := env.authService.RegisterAdmin("admin@example.com", "supersecret")
	require.NoError(t, err)

	w := postJSON(t, r, "/auth/adminlogin", map[string]string{
		"email":    "admin@example.com",
		"password": "wrongpassword",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Nil(t, sessionCookie(w))
}

func TestAuthHandler_EmployeeRegisterAndLogin(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	w := postJSON(t, r, "/employee/register", map[string]string{
		"name":     "Jordan Smith",
		"email":    "jordan@example.com",
		"password": "supersecret",
		"address":  "12 Elm Street",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, r, "/employee/employee_login", map[string]string{
		"email":    "jordan@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, true, response["login_status"])
	require.Equal(t, constants.RoleEmployee, response["role"])

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/verify", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var verify map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verify))
	require.Equal(t, constants.RoleEmployee, verify["role"])
}

func TestAuthHandler_Logout(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	req := httptest.NewRequest(http.MethodGet, "/auth/logout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	require.Empty(t, cookie.Value)
	require.Negative(t, cookie.MaxAge)
}
