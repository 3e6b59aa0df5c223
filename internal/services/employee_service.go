package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/employeems/employee-management-api/internal/authz"
	"github.com/employeems/employee-management-api/internal/models"
	"github.com/employeems/employee-management-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrPermissionDenied   = errors.New("permission denied")
	ErrCategoryRequired   = errors.New("category name is required")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrMissingFields      = errors.New("all required fields must be filled")
	ErrInvalidSalary      = errors.New("salary must be a valid positive number")
	ErrEmployeeImageNeeds = errors.New("image file is required")
)

// EmployeeService handles category and employee management plus the
// dashboard statistics.
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
	categoryRepo repository.CategoryRepository
	adminRepo    repository.AdminRepository
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(employeeRepo repository.EmployeeRepository, categoryRepo repository.CategoryRepository, adminRepo repository.AdminRepository) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		categoryRepo: categoryRepo,
		adminRepo:    adminRepo,
	}
}

// CreateCategory creates a category. Admin only.
func (s *EmployeeService) CreateCategory(actor authz.Identity, name string) (*models.Category, error) {
	if !authz.Can(actor, authz.ActionCategoryCreate, 0) {
		return nil, ErrPermissionDenied
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryRequired
	}

	category := &models.Category{Name: name}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// ListCategories returns all categories.
func (s *EmployeeService) ListCategories() ([]models.Category, error) {
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateEmployeeInput holds the fields of the admin create-employee form.
type CreateEmployeeInput struct {
	Name       string
	Email      string
	Password   string
	Salary     float64
	Address    string
	CategoryID uint64
	Image      string
}

// CreateEmployee creates an employee record. Admin only.
func (s *EmployeeService) CreateEmployee(actor authz.Identity, input CreateEmployeeInput) (*models.Employee, error) {
	if !authz.Can(actor, authz.ActionEmployeeManage, 0) {
		return nil, ErrPermissionDenied
	}

	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" || input.CategoryID == 0 {
		return nil, ErrMissingFields
	}
	if !emailRx.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if input.Salary < 0 {
		return nil, ErrInvalidSalary
	}
	if input.Image == "" {
		return nil, ErrEmployeeImageNeeds
	}

	if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to check category: %w", err)
	}

	if _, err := s.employeeRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	categoryID := input.CategoryID
	employee := &models.Employee{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Salary:       input.Salary,
		Address:      strings.TrimSpace(input.Address),
		CategoryID:   &categoryID,
		Image:        input.Image,
	}
	if err := s.employeeRepo.Create(employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	return employee, nil
}

// ListEmployees returns all employees with their categories.
func (s *EmployeeService) ListEmployees() ([]models.Employee, error) {
	employees, err := s.employeeRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

// GetEmployee returns one employee with their category.
func (s *EmployeeService) GetEmployee(id uint64) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByID(id, "Category")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return employee, nil
}

// GetEmployeeDetail returns an employee's own record. Employees may only
// read themselves, admins anyone.
func (s *EmployeeService) GetEmployeeDetail(actor authz.Identity, id uint64) (*models.Employee, error) {
	if !authz.Can(actor, authz.ActionEmployeeViewSelf, id) {
		return nil, ErrPermissionDenied
	}
	return s.GetEmployee(id)
}

// UpdateEmployeeInput holds the editable employee fields.
type UpdateEmployeeInput struct {
	Name       string
	Email      string
	Salary     float64
	Address    string
	CategoryID uint64
}

// UpdateEmployee edits an employee record. Admin only.
func (s *EmployeeService) UpdateEmployee(actor authz.Identity, id uint64, input UpdateEmployeeInput) (*models.Employee, error) {
	if !authz.Can(actor, authz.ActionEmployeeManage, 0) {
		return nil, ErrPermissionDenied
	}

	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	if name == "" || email == "" || input.CategoryID == 0 {
		return nil, ErrMissingFields
	}
	if !emailRx.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if input.Salary < 0 {
		return nil, ErrInvalidSalary
	}

	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}

	categoryID := input.CategoryID
	employee.Name = name
	employee.Email = email
	employee.Salary = input.Salary
	employee.Address = strings.TrimSpace(input.Address)
	employee.CategoryID = &categoryID

	if err := s.employeeRepo.Update(employee); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	return s.GetEmployee(employee.ID)
}

// DeleteEmployee removes an employee record. Admin only.
func (s *EmployeeService) DeleteEmployee(actor authz.Identity, id uint64) error {
	if !authz.Can(actor, authz.ActionEmployeeManage, 0) {
		return ErrPermissionDenied
	}

	if err := s.employeeRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return nil
}

// AdminCount returns the number of admin accounts.
func (s *EmployeeService) AdminCount() (int64, error) {
	return s.adminRepo.Count()
}

// EmployeeCount returns the number of employee records.
func (s *EmployeeService) EmployeeCount() (int64, error) {
	return s.employeeRepo.Count()
}

// SalaryTotal returns the sum of all employee salaries.
func (s *EmployeeService) SalaryTotal() (float64, error) {
	return s.employeeRepo.SalaryTotal()
}

// AdminRecords returns all admin accounts. Admin only.
func (s *EmployeeService) AdminRecords(actor authz.Identity) ([]models.Admin, error) {
	if !authz.Can(actor, authz.ActionAdminRecords, 0) {
		return nil, ErrPermissionDenied
	}
	admins, err := s.adminRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	return admins, nil
}
