// Package panel is the side panel celebrations are drawn on. The daemon
// serves it as a small page that polls for the current frame.
package panel

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"sync"

	"github.com/aouyang1/errorparty/assets"
	"github.com/aouyang1/errorparty/util"
)

var ErrClosed = errors.New("panel is closed")

// Frame is what the panel currently shows. An empty Image is the blank frame.
type Frame struct {
	Revision uint64 `json:"revision"`
	Image    string `json:"image,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

type Surface struct {
	mu       sync.RWMutex
	open     bool
	image    string
	revision uint64
}

// NewSurface returns an open, blank surface.
func NewSurface() *Surface {
	return &Surface{open: true}
}

func (s *Surface) Available() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.open
}

// Open makes the surface available again after Close.
func (s *Surface) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.open {
		return
	}
	s.open = true
	s.image = ""
	s.revision++
	slog.Info("panel opened")
}

// Close disposes the surface. Later renders fail with ErrClosed.
func (s *Surface) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return
	}
	s.open = false
	s.image = ""
	s.revision++
	slog.Info("panel closed")
}

func (s *Surface) ShowImage(path string) error {
	if !util.HasExt(util.ImageExt, path) {
		return fmt.Errorf("not an image: %s", path)
	}
	return s.set(path)
}

func (s *Surface) ShowBlank() error {
	return s.set("")
}

func (s *Surface) set(image string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return ErrClosed
	}
	s.image = image
	s.revision++
	return nil
}

// Frame returns the current frame.
func (s *Surface) Frame() Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f := Frame{Revision: s.revision, Image: s.image}
	if s.image != "" {
		f.ImageURL = Reference(s.image)
	}
	return f
}

// Reference converts a local asset path into the URL the daemon serves it at.
func Reference(path string) string {
	category := assets.Image
	if util.HasExt(util.SoundExt, path) {
		category = assets.Sound
	}
	return AssetURL(category, filepath.Base(path))
}

func AssetURL(category assets.Category, name string) string {
	return fmt.Sprintf("/assets/%s/%s", category, url.PathEscape(name))
}
