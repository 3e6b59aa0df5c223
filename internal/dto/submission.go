package dto

import (
	"time"

	"github.com/employeems/employee-management-api/internal/models"
)

// SubmissionFileDTO represents one file of a submission
type SubmissionFileDTO struct {
	ID       uint64 `json:"id"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// SubmissionDTO represents a submission with its files in API responses
type SubmissionDTO struct {
	ID                 uint64                  `json:"id"`
	ProjectID          uint64                  `json:"project_id"`
	ProjectName        string                  `json:"project_name,omitempty"`
	ProjectDescription string                  `json:"project_description,omitempty"`
	SubmittedBy        uint64                  `json:"submitted_by"`
	EmployeeName       string                  `json:"employee_name,omitempty"`
	EmployeeEmail      string                  `json:"employee_email,omitempty"`
	Version            int                     `json:"version"`
	Status             models.SubmissionStatus `json:"status"`
	Notes              string                  `json:"notes"`
	Files              []SubmissionFileDTO     `json:"files"`
	CreatedAt          time.Time               `json:"created_at"`
	UpdatedAt          time.Time               `json:"updated_at"`
}

// ToSubmissionFileDTO converts a SubmissionFile model to its DTO
func ToSubmissionFileDTO(file models.SubmissionFile) SubmissionFileDTO {
	return SubmissionFileDTO{
		ID:       file.ID,
		Filename: file.Filename,
		Path:     file.Path,
	}
}

// ToSubmissionDTO converts a Submission model to SubmissionDTO
func ToSubmissionDTO(submission models.Submission) SubmissionDTO {
	dto := SubmissionDTO{
		ID:          submission.ID,
		ProjectID:   submission.ProjectID,
		SubmittedBy: submission.SubmittedBy,
		Version:     submission.Version,
		Status:      submission.Status,
		Notes:       submission.Notes,
		Files:       make([]SubmissionFileDTO, len(submission.Files)),
		CreatedAt:   submission.CreatedAt,
		UpdatedAt:   submission.UpdatedAt,
	}

	// Include project and employee identity if preloaded
	if submission.Project.ID != 0 {
		dto.ProjectName = submission.Project.Name
		dto.ProjectDescription = submission.Project.Description
	}
	if submission.Employee.ID != 0 {
		dto.EmployeeName = submission.Employee.Name
		dto.EmployeeEmail = submission.Employee.Email
	}

	for i, f := range submission.Files {
		dto.Files[i] = ToSubmissionFileDTO(f)
	}

	return dto
}
