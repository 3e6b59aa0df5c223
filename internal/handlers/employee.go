package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/employeems/employee-management-api/internal/dto"
	apierrors "github.com/employeems/employee-management-api/internal/errors"
	"github.com/employeems/employee-management-api/internal/middleware"
	"github.com/employeems/employee-management-api/internal/services"
	"github.com/employeems/employee-management-api/internal/storage"
	"github.com/gin-gonic/gin"
)

// EmployeeHandler coordinates category and employee management handlers.
type EmployeeHandler struct {
	employeeService *services.EmployeeService
	store           *storage.Store
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(employeeService *services.EmployeeService, store *storage.Store) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
		store:           store,
	}
}

// ListCategories returns all categories.
func (h *EmployeeHandler) ListCategories(c *gin.Context) {
	categories, err := h.employeeService.ListCategories()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": dto.ToCategoryDTOs(categories),
	})
}

// AddCategory creates a category. Admin only.
func (h *EmployeeHandler) AddCategory(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type AddCategoryRequest struct {
		Category string `json:"category" binding:"required"`
	}

	var req AddCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Category name is required")
		return
	}

	category, err := h.employeeService.CreateCategory(identity, req.Category)
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryDTO(*category))
}

// AddEmployee creates an employee from the multipart form. Admin only;
// the profile image is required.
func (h *EmployeeHandler) AddEmployee(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	salary, err := strconv.ParseFloat(c.PostForm("salary"), 64)
	if err != nil {
		apierrors.BadRequest(c, "Salary must be a valid positive number")
		return
	}
	categoryID, err := strconv.ParseUint(c.PostForm("category_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid category_id")
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		apierrors.BadRequest(c, "Image file is required")
		return
	}
	image, err := h.store.SaveImage(c, fh)
	if err != nil {
		respondStorageError(c, err)
		return
	}

	employee, err := h.employeeService.CreateEmployee(identity, services.CreateEmployeeInput{
		Name:       c.PostForm("name"),
		Email:      c.PostForm("email"),
		Password:   c.PostForm("password"),
		Salary:     salary,
		Address:    c.PostForm("address"),
		CategoryID: categoryID,
		Image:      image,
	})
	if err != nil {
		// The image is already on disk; drop it so a rejected form
		// does not leak files.
		_ = h.store.Remove("images/" + image)
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEmployeeDTO(*employee))
}

// ListEmployees returns all employees with their categories.
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	employees, err := h.employeeService.ListEmployees()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch employees")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employees": dto.ToEmployeeDTOs(employees),
	})
}

// GetEmployee returns one employee by id.
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	employee, err := h.employeeService.GetEmployee(id)
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee))
}

// GetEmployeeDetail returns the caller's own record (any record for
// admins).
func (h *EmployeeHandler) GetEmployeeDetail(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	employee, err := h.employeeService.GetEmployeeDetail(identity, id)
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee))
}

// EditEmployee updates an employee record. Admin only.
func (h *EmployeeHandler) EditEmployee(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type EditEmployeeRequest struct {
		Name       string  `json:"name" binding:"required"`
		Email      string  `json:"email" binding:"required"`
		Salary     float64 `json:"salary"`
		Address    string  `json:"address"`
		CategoryID uint64  `json:"category_id" binding:"required"`
	}

	var req EditEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "All required fields must be filled")
		return
	}

	employee, err := h.employeeService.UpdateEmployee(identity, id, services.UpdateEmployeeInput{
		Name:       req.Name,
		Email:      req.Email,
		Salary:     req.Salary,
		Address:    req.Address,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee))
}

// DeleteEmployee removes an employee record. Admin only.
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.employeeService.DeleteEmployee(identity, id); err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Employee deleted successfully",
	})
}

// AdminCount returns the number of admin accounts.
func (h *EmployeeHandler) AdminCount(c *gin.Context) {
	count, err := h.employeeService.AdminCount()
	if err != nil {
		apierrors.InternalError(c, "Failed to count admins")
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin_count": count})
}

// EmployeeCount returns the number of employee records.
func (h *EmployeeHandler) EmployeeCount(c *gin.Context) {
	count, err := h.employeeService.EmployeeCount()
	if err != nil {
		apierrors.InternalError(c, "Failed to count employees")
		return
	}
	c.JSON(http.StatusOK, gin.H{"employee_count": count})
}

// SalaryCount returns the sum of all employee salaries.
func (h *EmployeeHandler) SalaryCount(c *gin.Context) {
	total, err := h.employeeService.SalaryTotal()
	if err != nil {
		apierrors.InternalError(c, "Failed to sum salaries")
		return
	}
	c.JSON(http.StatusOK, gin.H{"salary_total": total})
}

// AdminRecords returns all admin accounts. Admin only.
func (h *EmployeeHandler) AdminRecords(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	admins, err := h.employeeService.AdminRecords(identity)
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"admins": dto.ToAdminDTOs(admins),
	})
}

func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}

func respondEmployeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPermissionDenied):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrCategoryRequired),
		errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrInvalidSalary),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrEmployeeImageNeeds):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrEmployeeNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}

func respondStorageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrMissingFile),
		errors.Is(err, storage.ErrFileTooLarge),
		errors.Is(err, storage.ErrNotAnImage):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Failed to store uploaded file")
	}
}
