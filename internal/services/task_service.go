package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/employeems/employee-management-api/internal/authz"
	"github.com/employeems/employee-management-api/internal/models"
	"github.com/employeems/employee-management-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTitleRequired     = errors.New("title and assigned_to are required")
	ErrInvalidAssignee   = errors.New("assigned employee does not exist")
	ErrInvalidStatus     = errors.New("status must be one of: todo, in_progress, done")
	ErrInvalidPriority   = errors.New("priority must be one of: low, medium, high")
	ErrStatusOnly        = errors.New("employees can only update task status")
	ErrNotTaskAssignee   = errors.New("only the assigned employee can update this task")
	ErrAttachmentDenied  = errors.New("only the assignee or an admin can attach files to this task")
)

// TaskService handles the task workflow: admin-authored tasks moving
// through a free-form three-state status.
type TaskService struct {
	taskRepo     repository.TaskRepository
	employeeRepo repository.EmployeeRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, employeeRepo repository.EmployeeRepository) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		employeeRepo: employeeRepo,
	}
}

// ListTasks returns tasks visible to the caller: all of them for admins,
// only the caller's assignments for employees. Newest first.
func (s *TaskService) ListTasks(actor authz.Identity, page, pageSize int) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		Page:     page,
		PageSize: pageSize,
	}
	if !actor.IsAdmin() {
		filter.AssigneeID = &actor.ID
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// GetTask returns a task with its relations. Employees only see tasks
// assigned to them.
func (s *TaskService) GetTask(actor authz.Identity, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Assignee", "Assigner", "Attachments")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !actor.IsAdmin() && task.AssignedTo != actor.ID {
		// Hide foreign tasks rather than acknowledging them.
		return nil, ErrTaskNotFound
	}

	return task, nil
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	AssignedTo  uint64
	DueDate     *time.Time
	Priority    models.TaskPriority
}

// CreateTask creates a task. Admin only; the initial status is always
// todo regardless of input, and priority defaults to medium.
func (s *TaskService) CreateTask(actor authz.Identity, input CreateTaskInput) (*models.Task, error) {
	if !authz.Can(actor, authz.ActionTaskCreate, 0) {
		return nil, ErrPermissionDenied
	}

	title := strings.TrimSpace(input.Title)
	if title == "" || input.AssignedTo == 0 {
		return nil, ErrTitleRequired
	}

	if _, err := s.employeeRepo.FindByID(input.AssignedTo); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidAssignee
		}
		return nil, fmt.Errorf("failed to check assignee: %w", err)
	}

	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !models.ValidTaskPriority(priority) {
		return nil, ErrInvalidPriority
	}

	task := &models.Task{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		AssignedTo:  input.AssignedTo,
		AssignedBy:  actor.ID,
		DueDate:     input.DueDate,
		Priority:    priority,
		Status:      models.TaskStatusTodo,
	}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Assignee", "Assigner")
}

// UpdateTaskInput carries partial-update fields. A nil pointer means the
// field was absent from the request and keeps its prior value; Clear
// flags mark fields that were sent as explicit nulls.
type UpdateTaskInput struct {
	Title            *string
	Description      *string
	ClearDescription bool
	AssignedTo       *uint64
	DueDate          *time.Time
	ClearDueDate     bool
	Priority         *models.TaskPriority
	Status           *models.TaskStatus
}

// TouchesNonStatus reports whether any field other than status is set.
func (in UpdateTaskInput) TouchesNonStatus() bool {
	return in.Title != nil || in.Description != nil || in.ClearDescription ||
		in.AssignedTo != nil || in.DueDate != nil || in.ClearDueDate ||
		in.Priority != nil
}

// UpdateTask applies an update. Admins may change any field; employees
// may only change status, and only on tasks assigned to them.
func (s *TaskService) UpdateTask(actor authz.Identity, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !actor.IsAdmin() {
		if input.TouchesNonStatus() {
			return nil, ErrStatusOnly
		}
		if input.Status == nil || !models.ValidTaskStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		if !authz.Can(actor, authz.ActionTaskEditStatus, task.AssignedTo) {
			return nil, ErrNotTaskAssignee
		}

		task.Status = *input.Status
		if err := s.taskRepo.Update(task); err != nil {
			return nil, fmt.Errorf("failed to update task: %w", err)
		}
		return s.taskRepo.FindByID(task.ID, "Assignee", "Assigner")
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		task.Title = title
	}
	if input.ClearDescription {
		task.Description = ""
	} else if input.Description != nil {
		task.Description = strings.TrimSpace(*input.Description)
	}
	if input.AssignedTo != nil {
		if _, err := s.employeeRepo.FindByID(*input.AssignedTo); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidAssignee
			}
			return nil, fmt.Errorf("failed to check assignee: %w", err)
		}
		task.AssignedTo = *input.AssignedTo
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.Priority != nil {
		if !models.ValidTaskPriority(*input.Priority) {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.Status != nil {
		if !models.ValidTaskStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Assignee", "Assigner")
}

// DeleteTask removes a task. Admin only; a missing id is a not-found.
func (s *TaskService) DeleteTask(actor authz.Identity, taskID uint64) error {
	if !authz.Can(actor, authz.ActionTaskDelete, 0) {
		return ErrPermissionDenied
	}

	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// AddAttachment records an uploaded file against a task. The uploader
// must be the task's assignee or an admin.
func (s *TaskService) AddAttachment(actor authz.Identity, taskID uint64, filename, path string) (*models.TaskAttachment, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !authz.Can(actor, authz.ActionTaskAttach, task.AssignedTo) {
		return nil, ErrAttachmentDenied
	}

	attachment := &models.TaskAttachment{
		TaskID:     task.ID,
		Filename:   filename,
		Path:       path,
		UploadedBy: actor.ID,
	}
	if err := s.taskRepo.CreateAttachment(attachment); err != nil {
		return nil, fmt.Errorf("failed to record attachment: %w", err)
	}
	return attachment, nil
}
