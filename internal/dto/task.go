package dto

import (
	"time"

	"github.com/employeems/employee-management-api/internal/models"
)

// TaskAttachmentDTO represents a task attachment in API responses
type TaskAttachmentDTO struct {
	ID         uint64    `json:"id"`
	Filename   string    `json:"filename"`
	Path       string    `json:"path"`
	UploadedBy uint64    `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID            uint64              `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	AssignedTo    uint64              `json:"assigned_to"`
	AssignedBy    uint64              `json:"assigned_by"`
	DueDate       *time.Time          `json:"due_date"`
	Priority      models.TaskPriority `json:"priority"`
	Status        models.TaskStatus   `json:"status"`
	AssigneeName  string              `json:"assignee_name,omitempty"`
	AssigneeEmail string              `json:"assignee_email,omitempty"`
	AssignerEmail string              `json:"assigner_email,omitempty"`
	Attachments   []TaskAttachmentDTO `json:"attachments,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// ToTaskAttachmentDTO converts a TaskAttachment model to its DTO
func ToTaskAttachmentDTO(attachment models.TaskAttachment) TaskAttachmentDTO {
	return TaskAttachmentDTO{
		ID:         attachment.ID,
		Filename:   attachment.Filename,
		Path:       attachment.Path,
		UploadedBy: attachment.UploadedBy,
		CreatedAt:  attachment.CreatedAt,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		AssignedTo:  task.AssignedTo,
		AssignedBy:  task.AssignedBy,
		DueDate:     task.DueDate,
		Priority:    task.Priority,
		Status:      task.Status,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	// Include assignee and assigner identity if preloaded
	if task.Assignee.ID != 0 {
		dto.AssigneeName = task.Assignee.Name
		dto.AssigneeEmail = task.Assignee.Email
	}
	if task.Assigner.ID != 0 {
		dto.AssignerEmail = task.Assigner.Email
	}

	if len(task.Attachments) > 0 {
		dto.Attachments = make([]TaskAttachmentDTO, len(task.Attachments))
		for i, a := range task.Attachments {
			dto.Attachments[i] = ToTaskAttachmentDTO(a)
		}
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = ToTaskDTO(t)
	}
	return dtos
}
