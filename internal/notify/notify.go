// Package notify builds validated notification requests and delivers them
// to org.freedesktop.Notifications over D-Bus.
package notify

import (
	"context"
	"errors"

	"github.com/llehouerou/notifygate/internal/sanitize"
)

// ErrUnsupportedTimeout rejects expire timeouts below -1. -1 means "use
// the server default"; anything smaller has no defined meaning.
var ErrUnsupportedTimeout = errors.New("expire timeout must be >= -1")

// Urgency represents notification priority levels per freedesktop spec.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// wireCode maps an urgency to its numeric hint value. The switch is kept
// exhaustive so a new level cannot ship without a wire code.
func (u Urgency) wireCode() byte {
	switch u {
	case UrgencyLow:
		return 0
	case UrgencyNormal:
		return 1
	case UrgencyCritical:
		return 2
	}
	panic("notify: unknown urgency level")
}

// Request is a fully validated notification, ready to hand to a Notifier.
// Text fields only enter through sanitize.TrustedString and the icon only
// through sanitize.ValidateImage, so holding a Request implies every
// field has crossed the sanitization gate.
type Request struct {
	// AppName and IconName are fixed empty placeholders: a per-caller
	// application name and icon name would themselves need validation,
	// which is deferred. An empty icon string means "no icon".
	AppName  string
	IconName string

	// ReplacesID is forwarded as-is. Any uint32 is structurally safe; a
	// stale or unknown id is the server's case to define.
	ReplacesID uint32

	Summary string
	Body    string

	// Actions alternate key, label, key, label as the server expects.
	Actions []string

	// Urgency, when present, becomes the single "urgency" hint entry.
	Urgency *Urgency

	// Icon, when present, becomes the "image-data" hint.
	Icon *sanitize.ImageDescriptor

	// ExpireTimeout in ms. -1 = server default, 0 = never expire.
	ExpireTimeout int32
}

// BuildRequest assembles a Request from sanitized fields. The only
// scalar left to check at this point is the expire timeout; everything
// textual already carries the TrustedString mark. BuildRequest performs
// no I/O.
func BuildRequest(
	replacesID uint32,
	summary, body sanitize.TrustedString,
	actions []sanitize.TrustedString,
	urgency *Urgency,
	expireTimeout int32,
) (*Request, error) {
	if expireTimeout < -1 {
		return nil, ErrUnsupportedTimeout
	}

	flat := make([]string, 0, len(actions))
	for _, a := range actions {
		flat = append(flat, a.Inner())
	}

	return &Request{
		ReplacesID:    replacesID,
		Summary:       summary.Inner(),
		Body:          body.Inner(),
		Actions:       flat,
		Urgency:       urgency,
		ExpireTimeout: expireTimeout,
	}, nil
}

// WithIcon attaches a validated image descriptor to the request.
func (r *Request) WithIcon(img *sanitize.ImageDescriptor) *Request {
	r.Icon = img
	return r
}

// ServerInfo describes the notification server.
type ServerInfo struct {
	Name        string
	Vendor      string
	Version     string
	SpecVersion string
}

// Close reason codes reported by the NotificationClosed signal.
const (
	ClosedExpired   uint32 = 1
	ClosedDismissed uint32 = 2
	ClosedByCall    uint32 = 3
	ClosedUndefined uint32 = 4
)

// EventKind selects which signal an Event carries.
type EventKind int

const (
	EventClosed EventKind = iota
	EventActionInvoked
)

// Event is a server signal: a notification was closed, or one of its
// actions was invoked. Reason is set for EventClosed, ActionKey for
// EventActionInvoked.
type Event struct {
	Kind      EventKind
	ID        uint32
	Reason    uint32
	ActionKey string
}

// Notifier delivers validated requests to the notification service.
type Notifier interface {
	// Notify sends a request and returns the server-assigned id. The
	// send is the one blocking point in the path; canceling ctx aborts
	// the in-flight call.
	Notify(ctx context.Context, r *Request) (uint32, error)
	// Close closes a notification by id.
	Close(id uint32) error
	// Capabilities returns the server's capability strings.
	Capabilities() ([]string, error)
	// ServerInformation returns name, vendor and version details.
	ServerInformation() (ServerInfo, error)
	// Events returns the stream of closed/action-invoked signals. It
	// feeds bookkeeping only; the validation path never consumes it.
	Events() (<-chan Event, error)
}
