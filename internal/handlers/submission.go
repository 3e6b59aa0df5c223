package handlers

import (
	"errors"
	"net/http"

	"github.com/employeems/employee-management-api/internal/constants"
	"github.com/employeems/employee-management-api/internal/dto"
	apierrors "github.com/employeems/employee-management-api/internal/errors"
	"github.com/employeems/employee-management-api/internal/middleware"
	"github.com/employeems/employee-management-api/internal/models"
	"github.com/employeems/employee-management-api/internal/services"
	"github.com/employeems/employee-management-api/internal/storage"
	"github.com/employeems/employee-management-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// SubmissionHandler coordinates versioned submission handlers.
type SubmissionHandler struct {
	submissionService *services.SubmissionService
	store             *storage.Store
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(submissionService *services.SubmissionService, store *storage.Store) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
		store:             store,
	}
}

// CreateSubmission accepts a multipart form with title, optional
// description and notes, and 1-10 files. Files are persisted first and
// removed again if the database write fails, so storage and rows stay in
// step.
func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		apierrors.BadRequest(c, "Invalid multipart form")
		return
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		apierrors.BadRequest(c, services.ErrNoFiles.Error())
		return
	}
	if len(fileHeaders) > constants.MaxSubmissionFiles {
		apierrors.BadRequest(c, services.ErrTooManyFiles.Error())
		return
	}

	var files []models.SubmissionFile
	var savedPaths []string
	cleanup := func() {
		for _, p := range savedPaths {
			_ = h.store.Remove(p)
		}
	}

	for _, fh := range fileHeaders {
		relPath, err := h.store.SaveSubmissionFile(c, fh)
		if err != nil {
			cleanup()
			respondStorageError(c, err)
			return
		}
		savedPaths = append(savedPaths, relPath)
		files = append(files, models.SubmissionFile{
			Filename: fh.Filename,
			Path:     relPath,
		})
	}

	submission, err := h.submissionService.CreateSubmission(identity, services.CreateSubmissionInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Notes:       c.PostForm("notes"),
		Files:       files,
	})
	if err != nil {
		cleanup()
		respondSubmissionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Submission created successfully",
		"submission": dto.ToSubmissionDTO(*submission),
	})
}

// ListSubmissions returns submission summaries, newest first. Admins see
// all submissions, employees only their own.
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)
	summaries, total, err := h.submissionService.ListSubmissions(identity, params.Page, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch submissions")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submissions": summaries,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetSubmission returns one submission with its project, author and
// files.
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	submission, err := h.submissionService.GetSubmission(identity, id)
	if err != nil {
		respondSubmissionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubmissionDTO(*submission))
}

// UpdateStatus reviews a submission. Admin only.
func (h *SubmissionHandler) UpdateStatus(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateStatusRequest struct {
		Status models.SubmissionStatus `json:"status" binding:"required"`
		Notes  string                  `json:"notes"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Status is required")
		return
	}

	submission, err := h.submissionService.UpdateStatus(identity, id, req.Status, req.Notes)
	if err != nil {
		respondSubmissionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubmissionDTO(*submission))
}

// DeleteSubmission removes a submission, its files and, when it was the
// project's last one, the project itself. Stored files are removed after
// the rows so a failed delete leaves them reachable.
func (h *SubmissionHandler) DeleteSubmission(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	submission, err := h.submissionService.GetSubmission(identity, id)
	if err != nil {
		respondSubmissionError(c, err)
		return
	}

	if err := h.submissionService.DeleteSubmission(identity, id); err != nil {
		respondSubmissionError(c, err)
		return
	}

	for _, file := range submission.Files {
		_ = h.store.Remove(file.Path)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Submission deleted successfully",
	})
}

func respondSubmissionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPermissionDenied):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrSubmissionTitleRequired),
		errors.Is(err, services.ErrNoFiles),
		errors.Is(err, services.ErrTooManyFiles),
		errors.Is(err, services.ErrInvalidSubmissionStatus):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrSubmissionNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
