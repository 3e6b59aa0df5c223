package repository

import (
	"time"

	"github.com/employeems/employee-management-api/internal/models"
)

// AdminRepository defines the interface for admin data access
type AdminRepository interface {
	// Create creates a new admin
	Create(admin *models.Admin) error

	// FindByID finds an admin by ID
	FindByID(id uint64) (*models.Admin, error)

	// FindByEmail finds an admin by email
	FindByEmail(email string) (*models.Admin, error)

	// List returns all admin records
	List() ([]models.Admin, error)

	// Count returns the number of admin records
	Count() (int64, error)
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	// Create creates a new category
	Create(category *models.Category) error

	// FindByID finds a category by ID
	FindByID(id uint64) (*models.Category, error)

	// List returns all categories
	List() ([]models.Category, error)
}

// EmployeeRepository defines the interface for employee data access
type EmployeeRepository interface {
	// Create creates a new employee
	Create(employee *models.Employee) error

	// FindByID finds an employee by ID
	FindByID(id uint64, preload ...string) (*models.Employee, error)

	// FindByEmail finds an employee by email
	FindByEmail(email string) (*models.Employee, error)

	// List returns all employees with their categories
	List() ([]models.Employee, error)

	// Update updates an employee
	Update(employee *models.Employee) error

	// Delete removes an employee
	Delete(id uint64) error

	// Count returns the number of employees
	Count() (int64, error)

	// SalaryTotal returns the sum of all employee salaries
	SalaryTotal() (float64, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	AssigneeID *uint64
	Page       int
	PageSize   int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination,
	// newest first
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete removes a task and its attachment rows
	Delete(id uint64) error

	// CreateAttachment records an uploaded file against a task
	CreateAttachment(attachment *models.TaskAttachment) error
}

// SubmissionFilter holds filtering options for listing submissions
type SubmissionFilter struct {
	SubmittedBy *uint64
	Page        int
	PageSize    int
}

// SubmissionSummary is one row of the submission listing: submission
// fields joined with project and employee identity plus the file count.
type SubmissionSummary struct {
	ID                 uint64                  `json:"id"`
	ProjectID          uint64                  `json:"project_id"`
	SubmittedBy        uint64                  `json:"submitted_by"`
	Version            int                     `json:"version"`
	Status             models.SubmissionStatus `json:"status"`
	Notes              string                  `json:"notes"`
	CreatedAt          time.Time               `json:"created_at"`
	ProjectName        string                  `json:"project_name"`
	ProjectDescription string                  `json:"project_description"`
	EmployeeName       string                  `json:"employee_name"`
	EmployeeEmail      string                  `json:"employee_email"`
	FileCount          int64                   `json:"file_count"`
}

// SubmissionRepository defines the interface for submission data access
type SubmissionRepository interface {
	// CreateWithFiles creates (or reuses) the project, computes the next
	// version, and inserts the submission and its file rows in a single
	// transaction.
	CreateWithFiles(submission *models.Submission, projectName, projectDescription string, files []models.SubmissionFile) error

	// List retrieves submission summaries with filtering and pagination,
	// newest first
	List(filter SubmissionFilter) ([]SubmissionSummary, int64, error)

	// FindByID finds a submission with its project, employee and files.
	// A non-nil ownerID restricts the lookup to that employee's rows.
	FindByID(id uint64, ownerID *uint64) (*models.Submission, error)

	// Update updates a submission
	Update(submission *models.Submission) error

	// Delete removes a submission, its file rows, and the project when
	// this was its last submission, in a single transaction
	Delete(id uint64) error
}
