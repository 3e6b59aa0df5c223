package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/employeems/employee-management-api/internal/dto"
	apierrors "github.com/employeems/employee-management-api/internal/errors"
	"github.com/employeems/employee-management-api/internal/middleware"
	"github.com/employeems/employee-management-api/internal/models"
	"github.com/employeems/employee-management-api/internal/services"
	"github.com/employeems/employee-management-api/internal/storage"
	"github.com/employeems/employee-management-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// TaskHandler coordinates task workflow handlers.
type TaskHandler struct {
	taskService *services.TaskService
	store       *storage.Store
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService, store *storage.Store) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		store:       store,
	}
}

// ListTasks returns tasks visible to the caller, newest first. Admins see
// every task, employees only their own assignments.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)
	tasks, total, err := h.taskService.ListTasks(identity, params.Page, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetTask returns a single task with its attachments.
func (h *TaskHandler) GetTask(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(identity, id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a task. Admin only; status is forced to todo.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title       string              `json:"title" binding:"required"`
		Description string              `json:"description"`
		AssignedTo  uint64              `json:"assigned_to" binding:"required"`
		DueDate     *time.Time          `json:"due_date"`
		Priority    models.TaskPriority `json:"priority"`
		// Status is deliberately not bound: new tasks always start
		// at todo.
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Title and assigned_to are required")
		return
	}

	task, err := h.taskService.CreateTask(identity, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update. The raw JSON is inspected so an
// absent field keeps its value while an explicit null clears it.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, err := buildTaskUpdateInput(rawReq)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.UpdateTask(identity, id, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task. Admin only.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(identity, id); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// UploadAttachment stores a file against a task.
func (h *TaskHandler) UploadAttachment(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		apierrors.BadRequest(c, "No file uploaded")
		return
	}

	_, relPath, err := h.store.SaveTaskAttachment(c, fh)
	if err != nil {
		respondStorageError(c, err)
		return
	}

	attachment, err := h.taskService.AddAttachment(identity, id, fh.Filename, relPath)
	if err != nil {
		_ = h.store.Remove(relPath)
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "File uploaded successfully",
		"attachment": dto.ToTaskAttachmentDTO(*attachment),
	})
}

// buildTaskUpdateInput turns the raw JSON body into partial-update
// fields, distinguishing absent keys from explicit nulls.
func buildTaskUpdateInput(raw map[string]any) (services.UpdateTaskInput, error) {
	var input services.UpdateTaskInput

	if v, ok := raw["title"]; ok {
		s, ok := v.(string)
		if !ok {
			return input, errors.New("title must be a string")
		}
		input.Title = &s
	}
	if v, ok := raw["description"]; ok {
		if v == nil {
			input.ClearDescription = true
		} else if s, ok := v.(string); ok {
			input.Description = &s
		} else {
			return input, errors.New("description must be a string")
		}
	}
	if v, ok := raw["assigned_to"]; ok {
		f, ok := v.(float64)
		if !ok || f < 1 {
			return input, errors.New("assigned_to must be an employee id")
		}
		id := uint64(f)
		input.AssignedTo = &id
	}
	if v, ok := raw["due_date"]; ok {
		if v == nil {
			input.ClearDueDate = true
		} else if s, ok := v.(string); ok {
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				return input, errors.New("due_date must be an RFC 3339 timestamp")
			}
			input.DueDate = &t
		} else {
			return input, errors.New("due_date must be a timestamp or null")
		}
	}
	if v, ok := raw["priority"]; ok {
		s, ok := v.(string)
		if !ok {
			return input, errors.New("priority must be a string")
		}
		p := models.TaskPriority(s)
		input.Priority = &p
	}
	if v, ok := raw["status"]; ok {
		s, ok := v.(string)
		if !ok {
			return input, errors.New("status must be a string")
		}
		st := models.TaskStatus(s)
		input.Status = &st
	}

	return input, nil
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPermissionDenied),
		errors.Is(err, services.ErrStatusOnly),
		errors.Is(err, services.ErrNotTaskAssignee),
		errors.Is(err, services.ErrAttachmentDenied):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrInvalidAssignee),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPriority):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
