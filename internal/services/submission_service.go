package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/employeems/employee-management-api/internal/authz"
	"github.com/employeems/employee-management-api/internal/constants"
	"github.com/employeems/employee-management-api/internal/models"
	"github.com/employeems/employee-management-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrSubmissionNotFound      = errors.New("submission not found")
	ErrSubmissionTitleRequired = errors.New("title is required")
	ErrNoFiles                 = errors.New("at least one file is required")
	ErrTooManyFiles            = fmt.Errorf("at most %d files are allowed", constants.MaxSubmissionFiles)
	ErrInvalidSubmissionStatus = errors.New("status must be one of: pending, approved, changes")
)

// SubmissionService handles the versioned project-deliverable workflow:
// employee-authored file bundles reviewed by admins.
type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(submissionRepo repository.SubmissionRepository) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
	}
}

// CreateSubmissionInput holds a new submission's fields. Files must
// already be persisted to storage; only their metadata is recorded here.
type CreateSubmissionInput struct {
	Title       string
	Description string
	Notes       string
	Files       []models.SubmissionFile
}

// CreateSubmission creates a versioned submission. Employee only. The
// project is looked up by title and owner so repeated submissions of the
// same deliverable advance its version; the first one starts at 1.
func (s *SubmissionService) CreateSubmission(actor authz.Identity, input CreateSubmissionInput) (*models.Submission, error) {
	if !authz.Can(actor, authz.ActionSubmissionCreate, 0) {
		return nil, ErrPermissionDenied
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrSubmissionTitleRequired
	}
	if len(input.Files) == 0 {
		return nil, ErrNoFiles
	}
	if len(input.Files) > constants.MaxSubmissionFiles {
		return nil, ErrTooManyFiles
	}

	submission := &models.Submission{
		SubmittedBy: actor.ID,
		Notes:       strings.TrimSpace(input.Notes),
	}
	if err := s.submissionRepo.CreateWithFiles(submission, title, strings.TrimSpace(input.Description), input.Files); err != nil {
		return nil, err
	}

	return s.submissionRepo.FindByID(submission.ID, nil)
}

// ListSubmissions returns submission summaries visible to the caller:
// all of them for admins, the caller's own for employees. Newest first.
func (s *SubmissionService) ListSubmissions(actor authz.Identity, page, pageSize int) ([]repository.SubmissionSummary, int64, error) {
	filter := repository.SubmissionFilter{
		Page:     page,
		PageSize: pageSize,
	}
	if !actor.IsAdmin() {
		filter.SubmittedBy = &actor.ID
	}

	summaries, total, err := s.submissionRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list submissions: %w", err)
	}
	return summaries, total, nil
}

// GetSubmission returns one submission with its files. The ownership
// predicate is part of the query for employees, so a foreign submission
// reads as not found.
func (s *SubmissionService) GetSubmission(actor authz.Identity, id uint64) (*models.Submission, error) {
	var ownerID *uint64
	if !actor.IsAdmin() {
		ownerID = &actor.ID
	}

	submission, err := s.submissionRepo.FindByID(id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}
	return submission, nil
}

// UpdateStatus sets a submission's review status and notes. Admin only.
func (s *SubmissionService) UpdateStatus(actor authz.Identity, id uint64, status models.SubmissionStatus, notes string) (*models.Submission, error) {
	if !authz.Can(actor, authz.ActionSubmissionReview, 0) {
		return nil, ErrPermissionDenied
	}
	if !models.ValidSubmissionStatus(status) {
		return nil, ErrInvalidSubmissionStatus
	}

	submission, err := s.submissionRepo.FindByID(id, nil)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}

	submission.Status = status
	submission.Notes = strings.TrimSpace(notes)
	if err := s.submissionRepo.Update(submission); err != nil {
		return nil, fmt.Errorf("failed to update submission: %w", err)
	}

	return submission, nil
}

// DeleteSubmission removes a submission. Admins may delete any; an
// employee only their own.
func (s *SubmissionService) DeleteSubmission(actor authz.Identity, id uint64) error {
	submission, err := s.submissionRepo.FindByID(id, nil)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubmissionNotFound
		}
		return fmt.Errorf("failed to find submission: %w", err)
	}

	if !authz.Can(actor, authz.ActionSubmissionDelete, submission.SubmittedBy) {
		return ErrPermissionDenied
	}

	if err := s.submissionRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}
	return nil
}
