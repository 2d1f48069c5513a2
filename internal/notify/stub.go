//go:build !linux

package notify

import "context"

// stubNotifier is a no-op notifier for non-Linux platforms.
type stubNotifier struct{}

// New returns a no-op notifier on non-Linux platforms.
func New() (Notifier, error) {
	return &stubNotifier{}, nil
}

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
