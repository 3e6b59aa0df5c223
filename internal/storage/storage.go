package storage

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/employeems/employee-management-api/internal/constants"
	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

// Subdirectories under the upload root. Their contents are served
// statically under /public.
const (
	imageDir          = "images"
	taskAttachmentDir = "uploads/tasks"
	submissionDir     = "uploads/submissions"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds the size limit")
	ErrNotAnImage      = errors.New("only image files (jpeg, jpg, png, gif, webp) are allowed")
	ErrMissingFile     = errors.New("file is required")
	ErrFailedToPersist = errors.New("failed to persist uploaded file")
)

var imageExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Store saves uploaded files under a single root directory. Stored names
// are generated, never taken from the client; the original filename is
// recorded in the database instead.
type Store struct {
	root string
}

func New(root string) (*Store, error) {
	for _, dir := range []string{imageDir, taskAttachmentDir, submissionDir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
		}
	}
	return &Store{root: root}, nil
}

// Root returns the upload root directory.
func (s *Store) Root() string {
	return s.root
}

// SaveImage stores a profile image and returns its stored filename.
func (s *Store) SaveImage(c *gin.Context, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", ErrMissingFile
	}
	if fh.Size > constants.MaxImageSize {
		return "", ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !imageExtensions[ext] {
		return "", ErrNotAnImage
	}

	name := generatedName("image", ext)
	if err := c.SaveUploadedFile(fh, filepath.Join(s.root, imageDir, name)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToPersist, err)
	}
	return name, nil
}

// SaveTaskAttachment stores a task attachment and returns its stored
// filename and root-relative path.
func (s *Store) SaveTaskAttachment(c *gin.Context, fh *multipart.FileHeader) (string, string, error) {
	if fh == nil {
		return "", "", ErrMissingFile
	}
	if fh.Size > constants.MaxAttachmentSize {
		return "", "", ErrFileTooLarge
	}

	name := generatedName("task", filepath.Ext(fh.Filename))
	relPath := filepath.ToSlash(filepath.Join(taskAttachmentDir, name))
	if err := c.SaveUploadedFile(fh, filepath.Join(s.root, taskAttachmentDir, name)); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrFailedToPersist, err)
	}
	return name, relPath, nil
}

// SaveSubmissionFile stores a submission file and returns its
// root-relative path.
func (s *Store) SaveSubmissionFile(c *gin.Context, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", ErrMissingFile
	}
	if fh.Size > constants.MaxSubmissionFileSize {
		return "", ErrFileTooLarge
	}

	name := generatedName("submission", filepath.Ext(fh.Filename))
	relPath := filepath.ToSlash(filepath.Join(submissionDir, name))
	if err := c.SaveUploadedFile(fh, filepath.Join(s.root, submissionDir, name)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToPersist, err)
	}
	return relPath, nil
}

// Remove deletes a stored file by its root-relative path. Missing files
// are not an error.
func (s *Store) Remove(relPath string) error {
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(relPath)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func generatedName(prefix, ext string) string {
	id, err := uuid.NewV4()
	if err != nil {
		// NewV4 only fails when the system entropy source does; fall
		// back to a nil UUID rather than aborting the upload.
		id = uuid.Nil
	}
	return prefix + "_" + id.String() + strings.ToLower(ext)
}
