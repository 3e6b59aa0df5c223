package dto

import (
	"time"

	"github.com/employeems/employee-management-api/internal/models"
)

// AdminDTO represents an admin account in API responses
type AdminDTO struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryDTO represents a category in API responses
type CategoryDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// EmployeeDTO represents an employee in API responses
type EmployeeDTO struct {
	ID         uint64       `json:"id"`
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Salary     float64      `json:"salary"`
	Address    string       `json:"address"`
	CategoryID *uint64      `json:"category_id"`
	Category   *CategoryDTO `json:"category,omitempty"`
	Image      string       `json:"image"`
	CreatedAt  time.Time    `json:"created_at"`
}

// ToAdminDTO converts an Admin model to AdminDTO
func ToAdminDTO(admin models.Admin) AdminDTO {
	return AdminDTO{
		ID:        admin.ID,
		Email:     admin.Email,
		CreatedAt: admin.CreatedAt,
	}
}

// ToAdminDTOs converts a slice of admins
func ToAdminDTOs(admins []models.Admin) []AdminDTO {
	dtos := make([]AdminDTO, len(admins))
	for i, a := range admins {
		dtos[i] = ToAdminDTO(a)
	}
	return dtos
}

// ToCategoryDTO converts a Category model to CategoryDTO
func ToCategoryDTO(category models.Category) CategoryDTO {
	return CategoryDTO{
		ID:   category.ID,
		Name: category.Name,
	}
}

// ToCategoryDTOs converts a slice of categories
func ToCategoryDTOs(categories []models.Category) []CategoryDTO {
	dtos := make([]CategoryDTO, len(categories))
	for i, c := range categories {
		dtos[i] = ToCategoryDTO(c)
	}
	return dtos
}

// ToEmployeeDTO converts an Employee model to EmployeeDTO
func ToEmployeeDTO(employee models.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:         employee.ID,
		Name:       employee.Name,
		Email:      employee.Email,
		Salary:     employee.Salary,
		Address:    employee.Address,
		CategoryID: employee.CategoryID,
		Image:      employee.Image,
		CreatedAt:  employee.CreatedAt,
	}

	// Include category if preloaded
	if employee.Category != nil {
		category := ToCategoryDTO(*employee.Category)
		dto.Category = &category
	}

	return dto
}

// ToEmployeeDTOs converts a slice of employees
func ToEmployeeDTOs(employees []models.Employee) []EmployeeDTO {
	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = ToEmployeeDTO(e)
	}
	return dtos
}
