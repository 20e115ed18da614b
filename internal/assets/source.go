// Package assets resolves logical asset paths (levels, backgrounds, skins,
// sounds) against an ordered list of search roots and caches decoded images.
package assets

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	_ "golang.org/x/image/bmp" // register BMP decoder
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ErrNotFound is returned when a logical path is absent from every root.
var ErrNotFound = errors.New("assets: not found")

// Source looks assets up in its roots, first match wins.
// A Source is safe for concurrent use.
type Source struct {
	roots  []fs.FS
	names  []string
	logger *log.Logger

	mu     sync.Mutex
	images map[string]image.Image
	scaled map[scaledKey]image.Image
}

type scaledKey struct {
	path string
	w, h int
}

// NewSource creates a source over directory roots, highest priority first.
// Roots that do not exist are kept; lookups in them simply miss.
func NewSource(logger *log.Logger, dirs ...string) *Source {
	roots := make([]fs.FS, 0, len(dirs))
	names := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if d == "" {
			continue
		}
		roots = append(roots, os.DirFS(d))
		names = append(names, d)
	}
	return newSource(logger, roots, names)
}

// NewFSSource creates a source over arbitrary file systems (embedded packs,
// fstest.MapFS in tests).
func NewFSSource(logger *log.Logger, roots ...fs.FS) *Source {
	names := make([]string, len(roots))
	for i := range roots {
		names[i] = fmt.Sprintf("fs#%d", i)
	}
	return newSource(logger, roots, names)
}

func newSource(logger *log.Logger, roots []fs.FS, names []string) *Source {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Source{
		roots:  roots,
		names:  names,
		logger: logger,
		images: make(map[string]image.Image),
		scaled: make(map[scaledKey]image.Image),
	}
}

// Open returns the first root's file for a logical path.
// Logical paths always use forward slashes.
func (s *Source) Open(path string) (io.ReadCloser, error) {
	clean := strings.TrimPrefix(filepath.ToSlash(path), "/")
	if !fs.ValidPath(clean) {
		return nil, fmt.Errorf("assets: invalid path %q: %w", path, ErrNotFound)
	}

	var ioErr error
	for i, root := range s.roots {
		f, err := root.Open(clean)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) && ioErr == nil {
			ioErr = fmt.Errorf("assets: open %s in %s: %w", clean, s.names[i], err)
		}
	}
	if ioErr != nil {
		return nil, ioErr
	}
	return nil, fmt.Errorf("assets: %s: %w", clean, ErrNotFound)
}

// LoadImage decodes an image, caching the result by path for the lifetime
// of the source. Failures are not cached so a later retry can succeed.
func (s *Source) LoadImage(path string) (image.Image, error) {
	s.mu.Lock()
	img, ok := s.images[path]
	s.mu.Unlock()
	if ok {
		return img, nil
	}

	f, err := s.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	b := img.Bounds()
	s.logger.Debug("image decoded", "path", path, "format", format, "width", b.Dx(), "height", b.Dy())

	s.mu.Lock()
	s.images[path] = img
	s.mu.Unlock()
	return img, nil
}

// LoadScaled returns the image at path resized to w×h, cached per size.
func (s *Source) LoadScaled(path string, w, h int) (image.Image, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("assets: bad size %dx%d for %s", w, h, path)
	}
	key := scaledKey{path: path, w: w, h: h}

	s.mu.Lock()
	img, ok := s.scaled[key]
	s.mu.Unlock()
	if ok {
		return img, nil
	}

	src, err := s.LoadImage(path)
	if err != nil {
		return nil, err
	}
	img = Scale(src, w, h)

	s.mu.Lock()
	s.scaled[key] = img
	s.mu.Unlock()
	return img, nil
}

// LoadLines reads a text asset and returns its trimmed, non-empty lines.
func (s *Source) LoadLines(path string) ([]string, error) {
	f, err := s.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", path, err)
	}
	return lines, nil
}

// Scale resizes img to w×h with Catmull-Rom resampling.
func Scale(img image.Image, w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}
