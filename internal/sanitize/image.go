// Package sanitize validates untrusted notification input before it is
// allowed to cross into a request for the privileged notification service.
package sanitize

import "errors"

// Validation limits for icon image data. These are policy constants, not
// runtime configuration: 255x255 keeps all stride arithmetic well inside
// the positive int32 range, and 2 MiB caps the worst-case payload no
// matter what the geometry claims.
const (
	MaxPayloadBytes = 1 << 21
	MaxWidth        = 255
	MaxHeight       = 255
)

// Image validation failures. Each check has its own error so callers can
// log exactly which field was wrong.
var (
	ErrGeometryTooSmall          = errors.New("width, height, or row stride too small")
	ErrPayloadTooLarge           = errors.New("image data exceeds payload limit")
	ErrUnsupportedSampleDepth    = errors.New("only 8 bits per sample is supported")
	ErrChannelCountMismatch      = errors.New("channel count does not match alpha flag")
	ErrDimensionTooLarge         = errors.New("width or height too large")
	ErrBufferTooSmallForHeight   = errors.New("image data too short for declared height")
	ErrRowStrideTooSmallForWidth = errors.New("row stride too small for declared width")
)

// ImageDescriptor is a raw image whose geometry has been checked against
// its backing buffer. Only validated descriptors may be handed to the
// notification service; the fields are the validated copies, never the
// caller's originals.
type ImageDescriptor struct {
	Width         int32
	Height        int32
	RowStride     int32
	HasAlpha      bool
	BitsPerSample int32
	Channels      int32
	Data          []byte
}

// ValidateImage checks untrusted image geometry against its backing
// buffer and returns a descriptor safe to forward, or the first check
// that failed.
//
// The check order matters: the structural checks establish height >= 1
// and channels >= 3 before either value is used as a divisor, so neither
// division below can trap or be skewed by a non-positive divisor. The
// two buffer checks guarantee the receiver can read height rows of
// rowStride bytes, each holding at least width pixels, without running
// off the end of data.
//
// The data slice is referenced, not copied. Callers must not mutate it
// after a successful return.
func ValidateImage(
	width, height, rowStride int32,
	hasAlpha bool,
	bitsPerSample, channels int32,
	data []byte,
) (*ImageDescriptor, error) {
	if width < 1 || height < 1 || rowStride < 3 {
		return nil, ErrGeometryTooSmall
	}

	if len(data) > MaxPayloadBytes {
		return nil, ErrPayloadTooLarge
	}

	if bitsPerSample != 8 {
		return nil, ErrUnsupportedSampleDepth
	}

	wantChannels := int32(3)
	if hasAlpha {
		wantChannels = 4
	}
	if channels != wantChannels {
		return nil, ErrChannelCountMismatch
	}

	if width > MaxWidth || height > MaxHeight {
		return nil, ErrDimensionTooLarge
	}

	if int32(len(data))/height < rowStride {
		return nil, ErrBufferTooSmallForHeight
	}

	if rowStride/wantChannels < width {
		return nil, ErrRowStrideTooSmallForWidth
	}

	return &ImageDescriptor{
		Width:         width,
		Height:        height,
		RowStride:     rowStride,
		HasAlpha:      hasAlpha,
		BitsPerSample: bitsPerSample,
		Channels:      wantChannels,
		Data:          data,
	}, nil
}
