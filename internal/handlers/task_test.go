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
	"github.com/employeems/employee-management-api/internal/storage"
	"github.com/employeems/employee-management-api/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
	router  *gin.Engine
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.Admin{},
		&models.Category{},
		&models.Employee{},
		&models.Task{},
		&models.TaskAttachment{},
	)
	suite.Require().NoError(err)

	// Set the test DB as the default database
	database.SetDB(suite.db)

	store, err := storage.New(suite.T().TempDir())
	suite.Require().NoError(err)

	taskRepo := repository.NewTaskRepository(suite.db)
	employeeRepo := repository.NewEmployeeRepository(suite.db)
	taskService := services.NewTaskService(taskRepo, employeeRepo)
	suite.handler = NewTaskHandler(taskService, store)

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)

	// Create router
	suite.router = gin.New()
	tasks := suite.router.Group("/api/tasks", middleware.RequireAuth(testSecret))
	{
		tasks.GET("", suite.handler.ListTasks)
		tasks.POST("", suite.handler.CreateTask)
		tasks.GET("/:id", suite.handler.GetTask)
		tasks.PUT("/:id", suite.handler.UpdateTask)
		tasks.DELETE("/:id", suite.handler.DeleteTask)
	}
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data
func (suite *TaskHandlerTestSuite) createTestAdmin(email string) *models.Admin {
	admin := &models.Admin{
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(admin)
	return admin
}

func (suite *TaskHandlerTestSuite) createTestEmployee(email string) *models.Employee {
	employee := &models.Employee{
		Name:         "Test Employee",
		Email:        email,
		PasswordHash: "hashedpassword",
		Salary:       50000,
	}
	suite.db.Create(employee)
	return employee
}

func (suite *TaskHandlerTestSuite) createTestTask(title string, assigneeID, adminID uint64) *models.Task {
	task := &models.Task{
		Title:      title,
		AssignedTo: assigneeID,
		AssignedBy: adminID,
		Status:     models.TaskStatusTodo,
		Priority:   models.TaskPriorityMedium,
	}
	suite.db.Create(task)
	return task
}

func (suite *TaskHandlerTestSuite) cookieFor(role string, id uint64, email string) *http.Cookie {
	token, err := utils.IssueSessionToken(testSecret, role, id, email, time.Hour)
	suite.Require().NoError(err)
	return &http.Cookie{Name: constants.SessionCookieName, Value: token}
}

func (suite *TaskHandlerTestSuite) doJSON(method, path string, payload any, cookie *http.Cookie) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		suite.Require().NoError(err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TaskHandlerTestSuite) TestCreateTask_ForcesStatusTodo() {
	admin := suite.createTestAdmin("admin@example.com")
	employee := suite.createTestEmployee("worker@example.com")
	cookie := suite.cookieFor(constants.RoleAdmin, admin.ID, admin.Email)

	// Status in the payload must be ignored.
	w := suite.doJSON(http.MethodPost, "/api/tasks", map[string]any{
		"title":       "Write report",
		"assigned_to": employee.ID,
		"status":      "done",
	}, cookie)

	suite.Equal(http.StatusCreated, w.Code)

	var task models.Task
	suite.Require().NoError(suite.db.First(&task).Error)
	suite.Equal(models.TaskStatusTodo, task.Status)
	suite.Equal(models.TaskPriorityMedium, task.Priority)
	suite.Equal(admin.ID, task.AssignedBy)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_EmployeeForbidden() {
	suite.createTestAdmin("admin@example.com")
	employee := suite.createTestEmployee("worker@example.com")
	cookie := suite.cookieFor(constants.RoleEmployee, employee.ID, employee.Email)

	w := suite.doJSON(http.MethodPost, "/api/tasks", map[string]any{
		"title":       "Write report",
		"assigned_to": employee.ID,
	}, cookie)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_UnknownAssignee() {
	admin := suite.createTestAdmin("admin@example.com")
	cookie := suite.cookieFor(constants.RoleAdmin, admin.ID, admin.Email)

	w := suite.doJSON(http.MethodPost, "/api/tasks", map[string]any{
		"title":       "Write report",
		"assigned_to": 999,
	}, cookie)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_AssigneeUpdatesStatus() {
	admin := suite.createTestAdmin("admin@example.com")
	employee := suite.createTestEmployee("worker@example.com")
	task := suite.createTestTask("Write report", employee.ID, admin.ID)
	cookie := suite.cookieFor(constants.RoleEmployee, employee.ID, employee.Email)

	w := suite.doJSON(http.MethodPut, "/api/tasks/1", map[string]any{
		"status": "in_progress",
	}, cookie)

	suite.Equal(http.StatusOK, w.Code)

	var updated models.Task
	suite.Require().NoError(suite.db.First(&updated, task.ID).Error)
	suite.Equal(models.TaskStatusInProgress, updated.Status)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_EmployeeCannotTouchOtherFields() {
	admin := suite.createTestAdmin("admin@example.com")
	employee := suite.createTestEmployee("worker@example.com")
	task := suite.createTestTask("Write report", employee.ID, admin.ID)
	cookie := suite.cookieFor(constants.RoleEmployee, employee.ID, employee.Email)

	w := suite.doJSON(http.MethodPut, "/api/tasks/1", map[string]any{
		"status": "done",
		"title":  "Renamed",
	}, cookie)

	suite.Equal(http.StatusForbidden, w.Code)

	var unchanged models.Task
	suite.Require().NoError(suite.db.First(&unchanged, task.ID).Error)
	suite.Equal("Write report", unchanged.Title)
	suite.Equal(models.TaskStatusTodo, unchanged.Status)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_NonAssigneeForbidden() {
	admin := suite.createTestAdmin("admin@example.com")
	assignee := suite.createTestEmployee("worker@example.com")
	other := suite.createTestEmployee("other@example.com")
	suite.createTestTask("Write report", assignee.ID, admin.ID)
	cookie := suite.cookieFor(constants.RoleEmployee, other.ID, other.Email)

	w := suite.doJSON(http.MethodPut, "/api/tasks/1", map[string]any{
		"status": "done",
	}, cookie)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_InvalidStatusRejected() {
	admin := suite.createTestAdmin("admin@example.com")
	employee := suite.createTestEmployee("worker@example.com")
	suite.createTestTask("Write report", employee.ID, admin.ID)
	cookie := suite.cookieFor(constants.RoleEmployee, employee.ID, employee.Email)

	w := suite.doJSON(http.MethodPut, "/api/tasks/1", map[string]any{
		"status": "finished",
	}, cookie)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_AdminClearsDueDate() {
	admin := suite.createTestAdmin("admin@example.com")
	employee := suite.createTestEmployee("worker@example.com")
	task := suite.createTestTask("Write report", employee.ID, admin.ID)
	due := time.Now().Add(48 * time.Hour)
	suite.db.Model(task).Update("due_date", due)
	cookie := suite.cookieFor(constants.RoleAdmin, admin.ID, admin.Email)

	// Explicit null clears the field; absent fields keep their value.
	w := suite.doJSON(http.MethodPut, "/api/tasks/1", map[string]any{
		"due_date": nil,
		"priority": "high",
	}, cookie)

	suite.Equal(http.StatusOK, w.Code)

	var updated models.Task
	suite.Require().NoError(suite.db.First(&updated, task.ID).Error)
	suite.Nil(updated.DueDate)
	suite.Equal(models.TaskPriorityHigh, updated.Priority)
	suite.Equal("Write report", updated.Title)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_NotFound() {
	admin := suite.createTestAdmin("admin@example.com")
	cookie := suite.cookieFor(constants.RoleAdmin, admin.ID, admin.Email)

	w := suite.doJSON(http.MethodDelete, "/api/tasks/999", nil, cookie)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_RemovedFromListing() {
	admin := suite.createTestAdmin("admin@example.com")
	employee := suite.createTestEmployee("worker@example.com")
	suite.createTestTask("Write report", employee.ID, admin.ID)
	cookie := suite.cookieFor(constants.RoleAdmin, admin.ID, admin.Email)

	w := suite.doJSON(http.MethodDelete, "/api/tasks/1", nil, cookie)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.doJSON(http.MethodGet, "/api/tasks", nil, cookie)
	suite.Equal(http.StatusOK, w.Code)

	var response struct {
		Tasks []json.RawMessage `json:"tasks"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Empty(response.Tasks)
}

func (suite *TaskHandlerTestSuite) TestListTasks_EmployeeSeesOnlyOwn() {
	admin := suite.createTestAdmin("admin@example.com")
	assignee := suite.createTestEmployee("worker@example.com")
	other := suite.createTestEmployee("other@example.com")
	suite.createTestTask("Mine", assignee.ID, admin.ID)
	suite.createTestTask("Someone else's", other.ID, admin.ID)
	cookie := suite.cookieFor(constants.RoleEmployee, assignee.ID, assignee.Email)

	w := suite.doJSON(http.MethodGet, "/api/tasks", nil, cookie)
	suite.Equal(http.StatusOK, w.Code)

	var response struct {
		Tasks []struct {
			Title string `json:"title"`
		} `json:"tasks"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Tasks, 1)
	suite.Equal("Mine", response.Tasks[0].Title)
}

func (suite *TaskHandlerTestSuite) TestGetTask_EmployeeCannotSeeForeignTask() {
	admin := suite.createTestAdmin("admin@example.com")
	assignee := suite.createTestEmployee("worker@example.com")
	other := suite.createTestEmployee("other@example.com")
	suite.createTestTask("Write report", assignee.ID, admin.ID)

	w := suite.doJSON(http.MethodGet, "/api/tasks/1", nil,
		suite.cookieFor(constants.RoleEmployee, other.ID, other.Email))
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.doJSON(http.MethodGet, "/api/tasks/1", nil,
		suite.cookieFor(constants.RoleAdmin, admin.ID, admin.Email))
	suite.Equal(http.StatusOK, w.Code)
}

// TestTaskHandlerTestSuite runs the test suite
func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
