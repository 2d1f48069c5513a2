//go:build linux

package notify

import (
	"context"

	"github.com/godbus/dbus/v5"
)

const (
	dbusNotifyDest      = "org.freedesktop.Notifications"
	dbusNotifyPath      = "/org/freedesktop/Notifications"
	dbusNotifyInterface = "org.freedesktop.Notifications"
)

// dbusNotifier sends notifications via D-Bus.
type dbusNotifier struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// New creates a Notifier that talks to the session notification service.
// Returns a no-op notifier if D-Bus is unavailable.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		// D-Bus not available, return no-op notifier (intentional graceful degradation)
		return &stubNotifier{}, nil //nolint:nilerr // graceful fallback when D-Bus unavailable
	}

	obj := conn.Object(dbusNotifyDest, dbusNotifyPath)
	return &dbusNotifier{conn: conn, obj: obj}, nil
}

// Notify sends a validated request. Validation happens strictly before
// this point; by the time a Request exists there is nothing left to
// check, only the call shape to honor:
// Notify(app_name, replaces_id, app_icon, summary, body, actions, hints, timeout) -> id
// Canceling ctx aborts the in-flight bus call.
func (n *dbusNotifier) Notify(ctx context.Context, r *Request) (uint32, error) {
	call := n.obj.CallWithContext(
		ctx,
		dbusNotifyInterface+".Notify",
		0,
		r.AppName,
		r.ReplacesID,
		r.IconName,
		r.Summary,
		r.Body,
		r.Actions,
		r.hints(),
		r.ExpireTimeout,
	)

	if call.Err != nil {
		return 0, call.Err
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, err
	}

	return id, nil
}

// Close closes a notification by ID.
func (n *dbusNotifier) Close(id uint32) error {
	call := n.obj.Call(dbusNotifyInterface+".CloseNotification", 0, id)
	return call.Err
}

// Capabilities returns the server's capability strings.
func (n *dbusNotifier) Capabilities() ([]string, error) {
	call := n.obj.Call(dbusNotifyInterface+".GetCapabilities", 0)
	if call.Err != nil {
		return nil, call.Err
	}

	var caps []string
	if err := call.Store(&caps); err != nil {
		return nil, err
	}
	return caps, nil
}

// ServerInformation returns the server's name, vendor and versions.
func (n *dbusNotifier) ServerInformation() (ServerInfo, error) {
	call := n.obj.Call(dbusNotifyInterface+".GetServerInformation", 0)
	if call.Err != nil {
		return ServerInfo{}, call.Err
	}

	var info ServerInfo
	if err := call.Store(&info.Name, &info.Vendor, &info.Version, &info.SpecVersion); err != nil {
		return ServerInfo{}, err
	}
	return info, nil
}

// Events subscribes to NotificationClosed and ActionInvoked and returns
// them as a typed stream. The raw signal channel is drained in a
// goroutine that exits when the connection closes the channel.
func (n *dbusNotifier) Events() (<-chan Event, error) {
	if err := n.conn.AddMatchSignal(
		dbus.WithMatchInterface(dbusNotifyInterface),
		dbus.WithMatchObjectPath(dbusNotifyPath),
	); err != nil {
		return nil, err
	}

	raw := make(chan *dbus.Signal, 16)
	n.conn.Signal(raw)

	out := make(chan Event, 16)
	go forwardSignals(raw, out)

	return out, nil
}

// forwardSignals decodes raw bus signals onto out until raw closes.
// Events are dropped when out is full so an absent or slow consumer
// cannot wedge the pump.
func forwardSignals(raw <-chan *dbus.Signal, out chan<- Event) {
	defer close(out)
	for sig := range raw {
		ev, ok := decodeSignal(sig)
		if !ok {
			continue
		}
		select {
		case out <- ev:
		default:
		}
	}
}

func decodeSignal(sig *dbus.Signal) (Event, bool) {
	switch sig.Name {
	case dbusNotifyInterface + ".NotificationClosed":
		if len(sig.Body) != 2 {
			return Event{}, false
		}
		id, ok1 := sig.Body[0].(uint32)
		reason, ok2 := sig.Body[1].(uint32)
		if !ok1 || !ok2 {
			return Event{}, false
		}
		return Event{Kind: EventClosed, ID: id, Reason: reason}, true
	case dbusNotifyInterface + ".ActionInvoked":
		if len(sig.Body) != 2 {
			return Event{}, false
		}
		id, ok1 := sig.Body[0].(uint32)
		key, ok2 := sig.Body[1].(string)
		if !ok1 || !ok2 {
			return Event{}, false
		}
		return Event{Kind: EventActionInvoked, ID: id, ActionKey: key}, true
	}
	return Event{}, false
}

// stubNotifier is used when D-Bus is unavailable.
type stubNotifier struct{}

func (s *stubNotifier) Notify(_ context.Context, _ *Request) (uint32, error) {
	return 0, nil
}

func (s *stubNotifier) Close(_ uint32) error {
	return nil
}

func (s *stubNotifier) Capabilities() ([]string, error) {
	return nil, nil
}

func (s *stubNotifier) ServerInformation() (ServerInfo, error) {
	return ServerInfo{}, nil
}

func (s *stubNotifier) Events() (<-chan Event, error) {
	ch := make(chan Event)
	close(ch)
	return ch, nil
}
