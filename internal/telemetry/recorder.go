package telemetry

import (
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/posthog/posthog-go"
)

// Recorder records usage events. Implementations never block the CLI.
type Recorder interface {
	// Track queues an event. It is a no-op when telemetry is disabled.
	Track(event Event)

	// Close flushes pending events.
	Close() error
}

// enqueuer is the subset of the PostHog client we use, so tests can
// capture messages.
type enqueuer interface {
	io.Closer
	Enqueue(msg posthog.Message) error
}

// Options configures NewRecorder.
type Options struct {
	// APIKey is the PostHog project key. Empty disables sending.
	APIKey string

	// Endpoint overrides the PostHog endpoint (self-hosted).
	Endpoint string

	// Version is reported with every event.
	Version string

	// Settings carry the opt-in state and anonymous id.
	Settings *Settings
}

// PostHogRecorder sends events to PostHog.
type PostHogRecorder struct {
	client   enqueuer
	settings *Settings
	version  string
	mu       sync.Mutex
}

// NewRecorder returns a PostHog recorder, or a Noop when the user has not
// opted in or no API key is configured.
func NewRecorder(opts Options) (Recorder, error) {
	if opts.APIKey == "" || opts.Settings == nil || !opts.Settings.Enabled {
		return Noop{}, nil
	}

	cfg := posthog.Config{
		BatchSize: 10,
		Interval:  1 * time.Second,
		Logger:    quietLogger{},
	}
	if opts.Endpoint != "" {
		cfg.Endpoint = opts.Endpoint
	}

	client, err := posthog.NewWithConfig(opts.APIKey, cfg)
	if err != nil {
		return nil, err
	}
	return &PostHogRecorder{client: client, settings: opts.Settings, version: opts.Version}, nil
}

// Track implements Recorder.
func (r *PostHogRecorder) Track(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client == nil || r.settings == nil || !r.settings.Enabled {
		return
	}

	props := posthog.NewProperties()
	for k, v := range event.Props {
		props.Set(k, v)
	}
	props.Set("os", runtime.GOOS)
	props.Set("arch", runtime.GOARCH)
	props.Set("cli_version", r.version)
	// no person profiles
	props.Set("$process_person_profile", false)

	_ = r.client.Enqueue(posthog.Capture{
		DistinctId: r.settings.AnonymousID,
		Event:      event.Name,
		Timestamp:  event.Timestamp,
		Properties: props,
	})
}

// Close implements Recorder.
func (r *PostHogRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client == nil {
		return nil
	}
	err := r.client.Close()
	r.client = nil
	return err
}

// Noop discards events.
type Noop struct{}

// Track is a no-op.
func (Noop) Track(Event) {}

// Close is a no-op.
func (Noop) Close() error { return nil }

type quietLogger struct{}

func (quietLogger) Debugf(string, ...interface{}) {}
func (quietLogger) Logf(string, ...interface{})   {}
func (quietLogger) Warnf(string, ...interface{})  {}
func (quietLogger) Errorf(string, ...interface{}) {}
