package attachment

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/kingsolomonjunior/admissions/core"
)

// MaxFileSize is the per-file upload limit.
const MaxFileSize = 5 << 20 // 5 MiB

var allowedContentTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/jpg":       {},
	"image/png":       {},
}

type (
	// File is a validated upload belonging to a draft application.
	File struct {
		Field       string // upload field it was submitted under
		Name        string
		ContentType string
		Size        int64
		Data        []byte
	}

	// Preview is the client-facing projection of a File held in a List.
	Preview struct {
		ID          string `json:"id"`
		Field       string `json:"field"`
		Name        string `json:"name"`
		ContentType string `json:"type"`
		Size        string `json:"size"`
		IsImage     bool   `json:"is_image"`
	}

	// List holds the validated attachments of one draft, in insertion order.
	// Only files that pass Validate ever enter the list.
	List struct {
		mu      sync.Mutex
		entries []listEntry
	}

	listEntry struct {
		id   string
		file File
	}
)

func (f File) IsImage() bool { return strings.HasPrefix(f.ContentType, "image/") }

// Validate enforces the upload constraints on a single file. A failure never
// aborts the rest of a batch; callers surface the message per file.
func Validate(name, contentType string, size int64) error {
	if size > MaxFileSize {
		return core.NewValidationError(
			fmt.Errorf("file size must be less than %s", core.FormatByteSize(MaxFileSize)),
			core.FieldError{Field: name, Error: "file size must be less than 5 MB"},
		)
	}
	if _, ok := allowedContentTypes[contentType]; !ok {
		return core.NewValidationError(
			fmt.Errorf("only PDF, JPG, and PNG files are allowed"),
			core.FieldError{Field: name, Error: "only PDF, JPG, and PNG files are allowed"},
		)
	}
	return nil
}

func NewList() *List { return &List{} }

// Add validates f and, on success, appends it and returns its preview entry.
func (l *List) Add(f File) (Preview, error) {
	if err := Validate(f.Name, f.ContentType, f.Size); err != nil {
		return Preview{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entry := listEntry{id: uuid.New().String(), file: f}
	l.entries = append(l.entries, entry)
	return entry.preview(), nil
}

// Remove drops the entry with the given preview ID. Other entries keep their
// positions. It reports whether an entry was removed.
func (l *List) Remove(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, e := range l.entries {
		if e.id == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Files returns the attached files in insertion order.
func (l *List) Files() []File {
	l.mu.Lock()
	defer l.mu.Unlock()

	files := make([]File, 0, len(l.entries))
	for _, e := range l.entries {
		files = append(files, e.file)
	}
	return files
}

// Previews returns the preview projections in insertion order.
func (l *List) Previews() []Preview {
	l.mu.Lock()
	defer l.mu.Unlock()

	previews := make([]Preview, 0, len(l.entries))
	for _, e := range l.entries {
		previews = append(previews, e.preview())
	}
	return previews
}

func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (e listEntry) preview() Preview {
	return Preview{
		ID:          e.id,
		Field:       e.file.Field,
		Name:        e.file.Name,
		ContentType: e.file.ContentType,
		Size:        core.FormatByteSize(e.file.Size),
		IsImage:     e.file.IsImage(),
	}
}
