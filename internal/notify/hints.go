package notify

import (
	"github.com/godbus/dbus/v5"

	"github.com/llehouerou/notifygate/internal/sanitize"
)

// imageData is the wire shape of a raster icon hint. The field order is a
// format contract with the notification server and must not change:
// (width, height, rowstride, has_alpha, bits_per_sample, channels, data).
type imageData struct {
	Width         int32
	Height        int32
	RowStride     int32
	HasAlpha      bool
	BitsPerSample int32
	Channels      int32
	Data          []byte
}

// hints builds the hint map for a request. Urgency, when set, is the
// single "urgency" byte entry; a validated icon becomes "image-data".
// Nothing else is ever set.
func (r *Request) hints() map[string]dbus.Variant {
	h := map[string]dbus.Variant{}
	if r.Urgency != nil {
		h["urgency"] = dbus.MakeVariant(r.Urgency.wireCode())
	}
	if r.Icon != nil {
		h["image-data"] = dbus.MakeVariant(encodeImage(r.Icon))
	}
	return h
}

func encodeImage(img *sanitize.ImageDescriptor) imageData {
	return imageData{
		Width:         img.Width,
		Height:        img.Height,
		RowStride:     img.RowStride,
		HasAlpha:      img.HasAlpha,
		BitsPerSample: img.BitsPerSample,
		Channels:      img.Channels,
		Data:          img.Data,
	}
}
