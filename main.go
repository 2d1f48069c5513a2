package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/notifygate/internal/config"
	"github.com/llehouerou/notifygate/internal/iconload"
	"github.com/llehouerou/notifygate/internal/notify"
	"github.com/llehouerou/notifygate/internal/sanitize"
	"github.com/llehouerou/notifygate/internal/state"
)

// envelope is the untrusted request read from stdin. Every field in here
// is hostile until it has passed the sanitization gate.
type envelope struct {
	Summary         string   `json:"summary"`
	Body            string   `json:"body"`
	Actions         []string `json:"actions"`
	Urgency         *string  `json:"urgency"`
	ReplacesID      uint32   `json:"replaces_id"`
	ExpireTimeoutMs *int32   `json:"expire_timeout_ms"`
	Icon            *rawIcon `json:"icon"`
}

// rawIcon is caller-declared image geometry plus base64 pixel data; the
// declared values are checked against the buffer, never trusted.
type rawIcon struct {
	Width         int32  `json:"width"`
	Height        int32  `json:"height"`
	RowStride     int32  `json:"row_stride"`
	HasAlpha      bool   `json:"has_alpha"`
	BitsPerSample int32  `json:"bits_per_sample"`
	Channels      int32  `json:"channels"`
	Data          []byte `json:"data"`
}

func main() {
	iconPath := flag.String("icon", "", "attach an icon from a PNG or JPEG file")
	waitClose := flag.Bool("wait-close", false, "wait for the notification to close before exiting")
	flag.Parse()

	if err := run(*iconPath, *waitClose); err != nil {
		fmt.Fprintf(os.Stderr, "notifygate: %v\n", err)
		os.Exit(1)
	}
}

func run(iconPath string, waitClose bool) error {
	// An interrupt cancels the in-flight bus call rather than killing
	// the process mid-send.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var env envelope
	dec := json.NewDecoder(os.Stdin)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&env); err != nil {
		return fmt.Errorf("read request: %w", err)
	}

	req, err := buildRequest(cfg, &env)
	if err != nil {
		return err
	}

	if iconPath != "" {
		img, err := iconload.FromFile(iconPath)
		if err != nil {
			return fmt.Errorf("load icon: %w", err)
		}
		req.WithIcon(img)
	}

	notifier, err := notify.New()
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	// Subscribe before sending so the close signal cannot race the send.
	var events <-chan notify.Event
	if waitClose {
		events, err = notifier.Events()
		if err != nil {
			return fmt.Errorf("subscribe: %w", err)
		}
	}

	id, err := notifier.Notify(ctx, req)
	if err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	fmt.Println(id)

	var journal *state.Manager
	if cfg.Journal.Enabled {
		journal, err = state.Open(cfg.Journal.Path)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer journal.Close()

		var urg *byte
		if req.Urgency != nil {
			b := byte(*req.Urgency)
			urg = &b
		}
		if err := journal.Record(id, cfg.AppName, req.Summary, urg, req.ReplacesID); err != nil {
			return fmt.Errorf("journal: %w", err)
		}
	}

	if !waitClose {
		return nil
	}

	for ev := range events {
		if ev.ID != id {
			continue
		}
		switch ev.Kind {
		case notify.EventActionInvoked:
			if journal != nil {
				if err := journal.MarkAction(id, ev.ActionKey); err != nil {
					fmt.Fprintf(os.Stderr, "notifygate: journal: %v\n", err)
				}
			}
		case notify.EventClosed:
			if journal != nil {
				if err := journal.MarkClosed(id, ev.Reason); err != nil {
					fmt.Fprintf(os.Stderr, "notifygate: journal: %v\n", err)
				}
			}
			return nil
		}
	}
	return nil
}

// buildRequest passes every untrusted field through the sanitization
// layer and assembles the outgoing request. Any failure here means the
// bus is never called.
func buildRequest(cfg *config.Config, env *envelope) (*notify.Request, error) {
	summary := sanitize.Mark(env.Summary)
	body := sanitize.Mark(env.Body)

	actions := make([]sanitize.TrustedString, 0, len(env.Actions))
	for _, a := range env.Actions {
		actions = append(actions, sanitize.Mark(a))
	}

	urgency, err := resolveUrgency(cfg, env)
	if err != nil {
		return nil, err
	}

	timeout := cfg.DefaultTimeoutMillis
	if env.ExpireTimeoutMs != nil {
		timeout = *env.ExpireTimeoutMs
	}

	req, err := notify.BuildRequest(env.ReplacesID, summary, body, actions, urgency, timeout)
	if err != nil {
		return nil, err
	}

	if env.Icon != nil {
		img, err := sanitize.ValidateImage(
			env.Icon.Width, env.Icon.Height, env.Icon.RowStride,
			env.Icon.HasAlpha, env.Icon.BitsPerSample, env.Icon.Channels,
			env.Icon.Data,
		)
		if err != nil {
			if errors.Is(err, sanitize.ErrPayloadTooLarge) {
				return nil, fmt.Errorf("icon: %w (%s data, limit %s)", err,
					humanize.IBytes(uint64(len(env.Icon.Data))),
					humanize.IBytes(uint64(sanitize.MaxPayloadBytes)))
			}
			return nil, fmt.Errorf("icon: %w", err)
		}
		req.WithIcon(img)
	}

	return req, nil
}

func resolveUrgency(cfg *config.Config, env *envelope) (*notify.Urgency, error) {
	name := cfg.DefaultUrgency
	if env.Urgency != nil {
		name = *env.Urgency
	}

	switch name {
	case "":
		return nil, nil
	case "low":
		u := notify.UrgencyLow
		return &u, nil
	case "normal":
		u := notify.UrgencyNormal
		return &u, nil
	case "critical":
		u := notify.UrgencyCritical
		return &u, nil
	}
	return nil, fmt.Errorf("unknown urgency %q", name)
}
