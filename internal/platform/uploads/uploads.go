package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/yungbote/prepgenius-backend/internal/platform/logger"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename reduces a client-supplied name to a safe ASCII basename:
// compatibility-decomposed, non-ASCII dropped, path separators and whitespace
// folded to "_", anything outside [A-Za-z0-9_.-] removed, and leading or
// trailing dots and underscores trimmed. It may return "".
func SanitizeFilename(name string) string {
	name = norm.NFKD.String(name)

	var b strings.Builder
	for _, r := range name {
		if r < 0x80 {
			b.WriteRune(r)
		}
	}
	name = b.String()
	name = strings.NewReplacer("/", " ", `\`, " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}

// Saved describes a stored upload.
type Saved struct {
	Name string
	Path string
}

// Store writes uploads into a single directory. Same-named uploads overwrite
// each other.
type Store struct {
	dir string
	log *logger.Logger
}

func NewStore(dir string, log *logger.Logger) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Store{dir: dir, log: log.With("component", "UploadStore")}, nil
}

func (s *Store) Dir() string { return s.dir }

func (s *Store) Save(fh *multipart.FileHeader) (Saved, error) {
	name := SanitizeFilename(fh.Filename)
	if name == "" {
		name = "upload-" + uuid.NewString() + ".pdf"
	}
	dst := filepath.Join(s.dir, name)

	src, err := fh.Open()
	if err != nil {
		return Saved{}, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return Saved{}, fmt.Errorf("create %s: %w", dst, err)
	}
	n, err := io.Copy(out, src)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return Saved{}, fmt.Errorf("write %s: %w", dst, err)
	}

	s.log.Debug("upload stored", "file", name, "bytes", n)
	return Saved{Name: name, Path: dst}, nil
}
