package resample

import (
	"image"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// Resampler resizes an RGBA8 image to exactly width x height pixels.
// Implementations must not modify src.
type Resampler interface {
	// Name identifies the backend, e.g. in configuration files.
	Name() string
	// Resize returns a new straight-alpha image of the requested size.
	Resize(src *image.NRGBA, width, height int) (*image.NRGBA, error)
}

// DefaultBackend is the resampler used when none is configured.
const DefaultBackend = "nfnt"

// ErrUnknownBackend is returned by New for unregistered backend names.
var ErrUnknownBackend = errors.New("unknown resampler backend")

var (
	backendsMu sync.RWMutex
	backends   = map[string]func() Resampler{}
)

// Register makes a resampler backend available by name. Backends register
// themselves from init.
func Register(name string, factory func() Resampler) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[name] = factory
}

// New returns the backend registered under name. The empty name selects
// DefaultBackend.
func New(name string) (Resampler, error) {
	if name == "" {
		name = DefaultBackend
	}
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	factory, ok := backends[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownBackend, "%q", name)
	}
	return factory(), nil
}

// Backends lists the registered backend names in sorted order.
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func validateSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Wrapf(ErrInvalidSize, "%dx%d", width, height)
	}
	return nil
}

// ToNRGBA converts any image to a straight-alpha RGBA8 image anchored at the
// origin. It returns img itself when no conversion is needed.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) && n.Stride == n.Rect.Dx()*4 {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
