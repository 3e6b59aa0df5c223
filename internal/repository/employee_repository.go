package repository

import (
	"github.com/employeems/employee-management-api/internal/models"
	"gorm.io/gorm"
)

// GormEmployeeRepository is a GORM implementation of EmployeeRepository
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new EmployeeRepository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// Create creates a new employee
func (r *GormEmployeeRepository) Create(employee *models.Employee) error {
	return r.db.Create(employee).Error
}

// FindByID finds an employee by ID with optional preloading
func (r *GormEmployeeRepository) FindByID(id uint64, preload ...string) (*models.Employee, error) {
	var employee models.Employee
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&employee, id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// FindByEmail finds an employee by email
func (r *GormEmployeeRepository) FindByEmail(email string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.Where("email = ?", email).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// List returns all employees with their categories
func (r *GormEmployeeRepository) List() ([]models.Employee, error) {
	var employees []models.Employee
	if err := r.db.Preload("Category").Order("id ASC").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// Update updates an employee
func (r *GormEmployeeRepository) Update(employee *models.Employee) error {
	return r.db.Save(employee).Error
}

// Delete removes an employee
func (r *GormEmployeeRepository) Delete(id uint64) error {
	result := r.db.Delete(&models.Employee{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Count returns the number of employees
func (r *GormEmployeeRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Employee{}).Count(&count).Error
	return count, err
}

// SalaryTotal returns the sum of all employee salaries
func (r *GormEmployeeRepository) SalaryTotal() (float64, error) {
	var total float64
	err := r.db.Model(&models.Employee{}).
		Select("COALESCE(SUM(salary), 0)").
		Scan(&total).Error
	return total, err
}
