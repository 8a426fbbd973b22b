package transcode

import (
	"fmt"

	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"
	"github.com/cocosip/go-jpegls/jpegls/common"
)

// ConfigFromFrameInfo derives the external layout of an uncompressed DICOM
// frame. Color-by-pixel frames (PlanarConfiguration 0) are sample-interleaved;
// color-by-plane frames (PlanarConfiguration 1) are coded one component at a
// time.
func ConfigFromFrameInfo(fi *imagetypes.FrameInfo) (Config, error) {
	if fi == nil {
		return Config{}, fmt.Errorf("%w: nil frame info", common.ErrInvalidConfiguration)
	}

	components := int(fi.SamplesPerPixel)
	bits := int(fi.BitsAllocated)
	width := int(fi.Width)

	if width <= 0 {
		return Config{}, fmt.Errorf("%w: frame width %d", common.ErrInvalidConfiguration, width)
	}
	if bits != 8 && bits != 16 {
		return Config{}, fmt.Errorf("%w: %w: bits allocated %d (must be 8 or 16)",
			common.ErrInvalidConfiguration, common.ErrInvalidBitDepth, bits)
	}
	if int(fi.BitsStored) > bits {
		return Config{}, fmt.Errorf("%w: %w: bits stored %d exceeds bits allocated %d",
			common.ErrInvalidConfiguration, common.ErrInvalidBitDepth, fi.BitsStored, bits)
	}

	cfg := Config{
		Components: components,
		Interleave: InterleaveNone,
		SampleBits: bits,
	}

	samplesPerLine := width
	if components > 1 && fi.PlanarConfiguration == 0 {
		cfg.Interleave = InterleaveSample
		samplesPerLine = width * components
	}
	cfg.BytesPerLine = samplesPerLine * bits / 8

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
