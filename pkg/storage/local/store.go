// Package local stores uploaded model files on the local filesystem and
// serves them back under a public URL path.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"

	pkgerrors "github.com/printlabth/printlab-backend/pkg/errors"
)

var (
	errDirRequired        = errors.New("storage directory is required")
	errPublicPathRequired = errors.New("storage public path is required")
)

// Store writes uploaded files to disk under a flat directory. Stored names
// are prefixed with a random id so concurrent uploads of the same filename
// never collide.
type Store struct {
	dir        string
	publicPath string
}

// NewStore creates the upload directory if needed and returns a Store.
func NewStore(dir, publicPath string) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errDirRequired
	}
	publicPath = strings.TrimSpace(publicPath)
	if publicPath == "" {
		return nil, errPublicPathRequired
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %q: %w", dir, err)
	}
	return &Store{
		dir:        dir,
		publicPath: "/" + strings.Trim(publicPath, "/"),
	}, nil
}

// Dir reports the directory files are written into.
func (s *Store) Dir() string {
	return s.dir
}

// Save streams r to disk and returns the public URL of the stored file
// along with the number of bytes written.
func (s *Store) Save(ctx context.Context, r io.Reader, fileName string) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "store file")
	}

	clean := sanitizeFileName(fileName)
	if clean == "" {
		clean = "upload"
	}
	stored := fmt.Sprintf("%s-%s", uuid.NewString(), clean)

	fullpath := filepath.Join(s.dir, stored)
	f, err := os.OpenFile(fullpath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", 0, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "create file")
	}

	written, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(fullpath)
		return "", 0, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "write file")
	}
	if err := f.Close(); err != nil {
		os.Remove(fullpath)
		return "", 0, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "close file")
	}

	return fmt.Sprintf("%s/%s", s.publicPath, stored), written, nil
}

// Remove deletes a previously stored file addressed by its public URL.
// Missing files are not an error.
func (s *Store) Remove(ctx context.Context, fileURL string) error {
	name := path.Base(fileURL)
	if name == "" || name == "." || name == "/" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "remove file")
	}
	return nil
}

func sanitizeFileName(name string) string {
	if name == "" {
		return ""
	}
	clean := path.Base(strings.TrimSpace(name))
	if clean == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(clean))
	for _, r := range clean {
		switch {
		case r == '/' || r == '\\' || unicode.IsControl(r):
			continue
		case unicode.IsSpace(r):
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-_.")
}
