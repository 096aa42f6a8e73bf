package cart

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// SlotKey is the name the cart is stored under.
const SlotKey = "mbj-cart"

// Slot is a single string-keyed entry of device-local storage.
type Slot interface {
	// Read returns the stored value and whether one exists.
	Read() (string, bool, error)
	Write(value string) error
}

// FileSlot keeps the slot in <dir>/<SlotKey>.json.
type FileSlot struct {
	path string
}

func NewFileSlot(dir string) *FileSlot {
	return &FileSlot{path: filepath.Join(dir, SlotKey+".json")}
}

// DefaultFileSlot places the slot under the user config dir.
func DefaultFileSlot() (*FileSlot, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return NewFileSlot(filepath.Join(dir, "couture")), nil
}

func (s *FileSlot) Path() string { return s.path }

func (s *FileSlot) Read() (string, bool, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(b), true, nil
}

func (s *FileSlot) Write(value string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// MemorySlot is an in-process slot, mostly for tests.
type MemorySlot struct {
	mu    sync.Mutex
	value string
	set   bool
}

func NewMemorySlot(initial ...string) *MemorySlot {
	s := &MemorySlot{}
	if len(initial) > 0 {
		s.value, s.set = initial[0], true
	}
	return s
}

func (s *MemorySlot) Read() (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.set, nil
}

func (s *MemorySlot) Write(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value, s.set = value, true
	return nil
}
