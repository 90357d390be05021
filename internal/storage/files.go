package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Upload categories. Each maps to a subdirectory under the store root.
const (
	CategoryPatients      = "patients"
	CategoryExams         = "exams"
	CategoryPrescriptions = "prescriptions"
	CategoryTemp          = "temp"
)

// Store manages the category-partitioned upload directory tree.
type Store struct {
	root string
}

func New(root string) (*Store, error) {
	for _, category := range []string{CategoryPatients, CategoryExams, CategoryPrescriptions, CategoryTemp} {
		if err := os.MkdirAll(filepath.Join(root, category), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory: %w", err)
		}
	}
	return &Store{root: root}, nil
}

func (s *Store) Root() string {
	return s.root
}

// TempPath returns a path under the temp category for staging uploads.
func (s *Store) TempPath(filename string) string {
	return filepath.Join(s.root, CategoryTemp, filename)
}

// AbsPath resolves a stored relative path against the store root.
func (s *Store) AbsPath(relPath string) string {
	return filepath.Join(s.root, relPath)
}

// Save moves src into the category directory under filename and returns
// the stored relative path. Rename is tried first; on failure (typically
// a cross-device link error) it falls back to copy-then-delete, removing
// the source only after the destination is fully written.
func (s *Store) Save(category, filename, src string) (string, error) {
	relPath := filepath.Join(category, filename)
	dst := filepath.Join(s.root, relPath)

	if err := os.Rename(src, dst); err == nil {
		return relPath, nil
	}

	if err := copyFile(src, dst); err != nil {
		// Leave the source in place so the upload is not lost.
		os.Remove(dst)
		return "", fmt.Errorf("failed to store file: %w", err)
	}
	if err := os.Remove(src); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to remove staged file: %w", err)
	}
	return relPath, nil
}

// Remove deletes a stored file. A file already absent is not an error.
func (s *Store) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	if err := os.Remove(s.AbsPath(relPath)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// SanitizeName reduces a free-text name to a filesystem-safe token:
// letters, digits and dashes, everything else collapsed to underscores.
func SanitizeName(name string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}
