//go:build gocv

package resample

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

func init() {
	Register("opencv", func() Resampler { return NewOpenCV() })
}

// OpenCV resizes with OpenCV's 8x8 Lanczos interpolation. It is only built
// with the gocv tag since it requires a local OpenCV installation.
type OpenCV struct{}

// NewOpenCV returns an OpenCV-backed resampler.
func NewOpenCV() *OpenCV {
	return &OpenCV{}
}

// Name implements Resampler.
func (*OpenCV) Name() string { return "opencv" }

// Resize implements Resampler.
func (*OpenCV) Resize(src *image.NRGBA, width, height int) (*image.NRGBA, error) {
	if err := validateSize(width, height); err != nil {
		return nil, err
	}

	mat, err := gocv.ImageToMatRGBA(src)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert image to mat")
	}
	defer mat.Close()

	resized := gocv.NewMat()
	defer resized.Close()

	gocv.Resize(mat, &resized, image.Point{X: width, Y: height}, 0, 0, gocv.InterpolationLanczos4)
	if resized.Empty() {
		return nil, errors.New("opencv resize produced an empty mat")
	}

	out, err := resized.ToImage()
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert mat to image")
	}
	return ToNRGBA(out), nil
}
