package http

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"vidsocial/domain/apperror"
	"vidsocial/infrastructure/logger"
)

// Spooler writes multipart parts to a temp directory under random names
// before they are handed to the media store.
type Spooler struct {
	dir      string
	maxBytes int64
}

func NewSpooler(dir string, maxUploadMB int64) *Spooler {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Spooler{dir: dir, maxBytes: maxUploadMB << 20}
}

// Spool saves the part named field and returns its local path. A missing part
// or a non-multipart body yields an empty path.
func (s *Spooler) Spool(c *gin.Context, field string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", apperror.BadRequest(fmt.Sprintf("Invalid %s upload", field)).Wrap(err)
	}
	if s.maxBytes > 0 && fh.Size > s.maxBytes {
		return "", apperror.New(http.StatusRequestEntityTooLarge, fmt.Sprintf("%s exceeds the upload limit", field))
	}
	path := filepath.Join(s.dir, uuid.NewString()+strings.ToLower(filepath.Ext(fh.Filename)))
	if err := c.SaveUploadedFile(fh, path); err != nil {
		return "", apperror.Internal("Error while saving upload").Wrap(err)
	}
	return path, nil
}

// SpoolAll spools every field in order. On failure the parts already written
// are removed.
func (s *Spooler) SpoolAll(c *gin.Context, fields ...string) ([]string, error) {
	paths := make([]string, 0, len(fields))
	for _, f := range fields {
		p, err := s.Spool(c, f)
		if err != nil {
			s.Discard(c, paths...)
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func (s *Spooler) Discard(c *gin.Context, paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			logger.FromContext(c.Request.Context()).WithField("error", err).WithField("path", p).Warn("Failed to remove spooled upload")
		}
	}
}
