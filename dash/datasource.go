package dash

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/felixgeelhaar/fortify/retry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gopkg.in/yaml.v3"
)

const (
	DashboardPath = "/api/dashboard"
	tracerName    = "github.com/midbel/barchart/dash"
)

var (
	ErrUpstream   = errors.New("upstream failure")
	ErrNoSnapshot = errors.New("no snapshot available")
	errRejected   = errors.New("request rejected")
)

type Source interface {
	Fetch(context.Context) (*Snapshot, error)
}

type SourceFunc func(context.Context) (*Snapshot, error)

func (f SourceFunc) Fetch(ctx context.Context) (*Snapshot, error) {
	return f(ctx)
}

type HTTPOptions struct {
	Timeout   time.Duration
	Attempts  int
	Delay     time.Duration
	Failures  uint32
	OpenDelay time.Duration
}

func DefaultHTTPOptions() HTTPOptions {
	return HTTPOptions{
		Timeout:   5 * time.Second,
		Attempts:  3,
		Delay:     200 * time.Millisecond,
		Failures:  5,
		OpenDelay: 30 * time.Second,
	}
}

// HTTPSource fetches the snapshot from the BFF. Transient failures are
// retried and repeated failures open a circuit breaker.
type HTTPSource struct {
	endpoint string
	client   *http.Client
	retrier  retry.Retry[*Snapshot]
	breaker  circuitbreaker.CircuitBreaker[*Snapshot]
}

func NewHTTPSource(base string, opts HTTPOptions) (*HTTPSource, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("bff url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("bff url %q: missing scheme or host", base)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + DashboardPath

	if opts.Attempts < 1 {
		opts.Attempts = 1
	}
	if opts.Failures == 0 {
		opts.Failures = 1
	}
	failures := opts.Failures
	src := HTTPSource{
		endpoint: u.String(),
		client: &http.Client{
			Timeout: opts.Timeout,
		},
		retrier: retry.New[*Snapshot](retry.Config{
			MaxAttempts:        opts.Attempts,
			InitialDelay:       opts.Delay,
			BackoffPolicy:      retry.BackoffExponential,
			Multiplier:         2,
			NonRetryableErrors: []error{errRejected},
		}),
		breaker: circuitbreaker.New[*Snapshot](circuitbreaker.Config{
			MaxRequests: 1,
			Interval:    opts.OpenDelay,
			Timeout:     opts.OpenDelay,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
		}),
	}
	return &src, nil
}

func (s *HTTPSource) Endpoint() string {
	return s.endpoint
}

func (s *HTTPSource) Fetch(ctx context.Context) (*Snapshot, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "snapshot.fetch")
	defer span.End()
	span.SetAttributes(attribute.String("http.url", s.endpoint))

	snap, err := s.breaker.Execute(ctx, func(ctx context.Context) (*Snapshot, error) {
		return s.retrier.Do(ctx, s.fetch)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, ErrUpstream) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return snap, nil
}

func (s *HTTPSource) fetch(ctx context.Context) (*Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errRejected, err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode >= http.StatusInternalServerError:
		io.Copy(io.Discard, res.Body)
		return nil, fmt.Errorf("%w: %s", ErrUpstream, res.Status)
	case res.StatusCode >= http.StatusBadRequest:
		io.Copy(io.Discard, res.Body)
		return nil, fmt.Errorf("%w: %s", errRejected, res.Status)
	}
	return Decode(res.Body)
}

// FileSource reads a snapshot saved as JSON or YAML.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(_ context.Context) (*Snapshot, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	switch filepath.Ext(s.Path) {
	case ".yaml", ".yml":
		var snap Snapshot
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("decode snapshot: %w", err)
		}
		return &snap, nil
	default:
		return Decode(bytes.NewReader(data))
	}
}

func SaveSnapshot(path string, snap *Snapshot) error {
	var (
		data []byte
		err  error
	)
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(snap)
	default:
		data, err = json.MarshalIndent(snap, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// OpenSource picks a file source for local paths and an HTTP source for urls.
func OpenSource(location string, opts HTTPOptions) (Source, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPSource(location, opts)
	}
	if _, err := os.Stat(location); err != nil {
		return nil, fmt.Errorf("snapshot file: %w", err)
	}
	return FileSource{Path: location}, nil
}
