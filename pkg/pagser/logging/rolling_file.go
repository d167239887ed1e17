package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const dayLayout = "2006-01-02"

// RollingFile is an io.WriteCloser that appends to <dir>/<prefix>.<YYYY-MM-DD> and
// switches to a new file on the first write of each day.
type RollingFile struct {
	dir    string
	prefix string
	now    func() time.Time

	mu   sync.Mutex
	day  string
	file *os.File
}

// NewRollingFile creates dir if needed. No file is opened until the first write.
func NewRollingFile(dir, prefix string) (*RollingFile, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory %q: %w", dir, err)
	}

	return &RollingFile{dir: dir, prefix: prefix, now: time.Now}, nil
}

func (r *RollingFile) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := r.now().Format(dayLayout)
	if r.file == nil || day != r.day {
		if err := r.rotate(day); err != nil {
			return 0, err
		}
	}

	return r.file.Write(p)
}

func (r *RollingFile) rotate(day string) error {
	if r.file != nil {
		_ = r.file.Close()
		r.file = nil
	}

	f, err := os.OpenFile(r.path(day), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	r.file = f
	r.day = day

	return nil
}

func (r *RollingFile) path(day string) string {
	return filepath.Join(r.dir, r.prefix+"."+day)
}

// Close closes the current file, if any.
func (r *RollingFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}

	err := r.file.Close()
	r.file = nil

	return err
}
