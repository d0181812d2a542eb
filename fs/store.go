// Package fs provides file-based storage for extracted page text.
package fs

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/pagetext"
)

// URLToPath converts a page URL to a relative file path rooted at the host.
// Example: https://example.com/docs/api/users → example.com/docs/api/users.txt
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", pagetext.Errorf(pagetext.EINVALID, "invalid url %q: %v", rawURL, err)
	}
	if u.Host == "" {
		return "", pagetext.Errorf(pagetext.EINVALID, "url %q has no host", rawURL)
	}

	host := strings.ReplaceAll(u.Host, ":", "_")
	path := strings.TrimPrefix(u.Path, "/")

	switch {
	case path == "":
		path = "index.txt"
	case strings.HasSuffix(path, "/"):
		// Trailing slash becomes index.txt in that directory
		path += "index.txt"
	default:
		path = strings.TrimSuffix(strings.TrimSuffix(path, ".html"), ".htm") + ".txt"
	}

	return filepath.Join(host, filepath.FromSlash(path)), nil
}

// FormatRecord formats a record with a YAML frontmatter header.
func FormatRecord(rec *pagetext.Record) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(rec.URL)
	b.WriteString("\nmode: ")
	b.WriteString(string(rec.Mode))
	b.WriteString("\nhash: ")
	b.WriteString(rec.Hash)
	b.WriteString("\nextracted: ")
	b.WriteString(rec.ExtractedAt.Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(rec.Text)
	b.WriteString("\n")
	return b.String()
}

// Ensure FileStore implements pagetext.RecordStore at compile time.
var _ pagetext.RecordStore = (*FileStore)(nil)

// FileStore implements pagetext.RecordStore with atomic update semantics.
// Records are saved to a temporary directory, then moved atomically on Commit.
type FileStore struct {
	baseDir string
	name    string
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes rec into the temporary directory.
func (s *FileStore) Save(ctx context.Context, rec *pagetext.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(rec.URL)
	if err != nil {
		return err
	}

	tmp := s.tempDir()
	fullPath := filepath.Join(tmp, relPath)
	if rel, err := filepath.Rel(tmp, fullPath); err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return pagetext.Errorf(pagetext.EINVALID, "path traversal in url %q", rec.URL)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, []byte(FormatRecord(rec)), 0644)
}

// Commit replaces the output directory with the temporary one. When nothing
// was saved the output directory is left untouched.
func (s *FileStore) Commit() error {
	if _, err := os.Stat(s.tempDir()); errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards everything saved since the store was created.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
