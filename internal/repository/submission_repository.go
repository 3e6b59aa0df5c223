package repository

import (
	"errors"
	"fmt"

	"github.com/employeems/employee-management-api/internal/database"
	"github.com/employeems/employee-management-api/internal/models"
	"github.com/employeems/employee-management-api/internal/utils"
	"gorm.io/gorm"
)

var (
	// ErrCreateProject is returned when the project insert fails inside the submission transaction.
	ErrCreateProject = errors.New("submission repository: create project failed")
	// ErrCreateSubmission is returned when the submission insert fails inside the transaction.
	ErrCreateSubmission = errors.New("submission repository: create submission failed")
	// ErrCreateSubmissionFiles is returned when the file inserts fail inside the transaction.
	ErrCreateSubmissionFiles = errors.New("submission repository: create submission files failed")
)

// GormSubmissionRepository is a GORM implementation of SubmissionRepository
type GormSubmissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &GormSubmissionRepository{db: db}
}

// CreateWithFiles creates (or reuses) the project, computes the next
// version, and inserts the submission and its file rows. The whole
// sequence runs in one transaction so a failing step leaves no orphans.
func (r *GormSubmissionRepository) CreateWithFiles(submission *models.Submission, projectName, projectDescription string, files []models.SubmissionFile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		err := tx.Where("name = ? AND owner_id = ?", projectName, submission.SubmittedBy).
			First(&project).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			project = models.Project{
				Name:        projectName,
				Description: projectDescription,
				OwnerID:     submission.SubmittedBy,
			}
			if err := tx.Create(&project).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrCreateProject, err)
			}
		case err != nil:
			return fmt.Errorf("failed to look up project: %w", err)
		}

		var maxVersion int
		if err := tx.Model(&models.Submission{}).
			Where("project_id = ?", project.ID).
			Select("COALESCE(MAX(version), 0)").
			Scan(&maxVersion).Error; err != nil {
			return fmt.Errorf("failed to compute next version: %w", err)
		}

		submission.ProjectID = project.ID
		submission.Version = maxVersion + 1
		submission.Status = models.SubmissionStatusPending

		if err := tx.Create(submission).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateSubmission, err)
		}

		for i := range files {
			files[i].SubmissionID = submission.ID
		}
		if err := tx.Create(&files).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateSubmissionFiles, err)
		}

		return nil
	})
}

// List retrieves submission summaries with filtering and pagination, newest first
func (r *GormSubmissionRepository) List(filter SubmissionFilter) ([]SubmissionSummary, int64, error) {
	countQuery := r.db.Model(&models.Submission{})
	if filter.SubmittedBy != nil {
		countQuery = countQuery.Where("submissions.submitted_by = ?", *filter.SubmittedBy)
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.Model(&models.Submission{}).
		Select(`submissions.id, submissions.project_id, submissions.submitted_by,
			submissions.version, submissions.status, submissions.notes, submissions.created_at,
			projects.name AS project_name, projects.description AS project_description,
			employees.name AS employee_name, employees.email AS employee_email,
			COUNT(submission_files.id) AS file_count`).
		Joins("LEFT JOIN projects ON projects.id = submissions.project_id").
		Joins("LEFT JOIN employees ON employees.id = submissions.submitted_by").
		Joins("LEFT JOIN submission_files ON submission_files.submission_id = submissions.id").
		Group(`submissions.id, submissions.project_id, submissions.submitted_by,
			submissions.version, submissions.status, submissions.notes, submissions.created_at,
			projects.name, projects.description, employees.name, employees.email`).
		Order("submissions.created_at DESC")

	if filter.SubmittedBy != nil {
		query = query.Where("submissions.submitted_by = ?", *filter.SubmittedBy)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Scopes(database.Paginate(utils.PaginationParams{
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	var summaries []SubmissionSummary
	if err := query.Scan(&summaries).Error; err != nil {
		return nil, 0, err
	}

	return summaries, total, nil
}

// FindByID finds a submission with its project, employee and files. A
// non-nil ownerID adds the ownership predicate to the query, so a foreign
// submission is indistinguishable from a missing one.
func (r *GormSubmissionRepository) FindByID(id uint64, ownerID *uint64) (*models.Submission, error) {
	var submission models.Submission
	query := r.db.
		Preload("Project").
		Preload("Employee").
		Preload("Files").
		Where("id = ?", id)
	if ownerID != nil {
		query = query.Where("submitted_by = ?", *ownerID)
	}
	if err := query.First(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// Update updates a submission
func (r *GormSubmissionRepository) Update(submission *models.Submission) error {
	return r.db.Save(submission).Error
}

// Delete removes a submission, its file rows, and the project when this
// was its last submission, in a single transaction
func (r *GormSubmissionRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var submission models.Submission
		if err := tx.First(&submission, id).Error; err != nil {
			return err
		}

		if err := tx.Where("submission_id = ?", id).Delete(&models.SubmissionFile{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Submission{}, id).Error; err != nil {
			return err
		}

		var remaining int64
		if err := tx.Model(&models.Submission{}).
			Where("project_id = ?", submission.ProjectID).
			Count(&remaining).Error; err != nil {
			return err
		}
		if remaining == 0 {
			if err := tx.Delete(&models.Project{}, submission.ProjectID).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
