package mytimetable

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/blang/semver"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/eveoh/mytimetable-api-client/config"
	"github.com/eveoh/mytimetable-api-client/mapper"
	"github.com/eveoh/mytimetable-api-client/model"
	"github.com/eveoh/mytimetable-api-client/request"
)

const (
	defaultUserAgent = "mytimetable-api-client-go"
	apiKeyHeader     = "apiToken"
	maxErrorBody     = 4096
)

// searchVersion is the first server version exposing timetable search and filter attributes
var searchVersion = semver.MustParse("3.0.0")

// Client represents a MyTimetable API client
type Client struct {
	cfg        *config.Configuration
	endpoints  []*url.URL
	httpClient Doer
	transport  *http.Transport
	userAgent  string
	version    semver.Version
	logger     zerolog.Logger

	// preferred is the index of the endpoint that answered last
	preferred atomic.Int32
	closed    atomic.Bool
	closeOnce sync.Once
}

// NewClient creates a new client from a resolved configuration.
// No request is made until the first operation is called.
func NewClient(cfg *config.Configuration, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: configuration is required", ErrInvalidArgument)
	}

	endpoints := parseEndpoints(cfg.APIEndpointURIs, logger)
	if len(endpoints) == 0 {
		return nil, ErrNoEndpoints
	}

	options := clientOptions{userAgent: defaultUserAgent}
	for _, opt := range opts {
		opt(&options)
	}

	version, err := semver.ParseTolerant(cfg.MyTimetableVersion)
	if err != nil {
		logger.Warn().
			Err(err).
			Str("version", cfg.MyTimetableVersion).
			Msg("Invalid MyTimetable version, assuming " + searchVersion.String())
		version = searchVersion
	}

	c := &Client{
		cfg:       cfg,
		endpoints: endpoints,
		userAgent: options.userAgent,
		version:   version,
		logger:    logger,
	}

	if options.doer != nil {
		c.httpClient = options.doer
	} else {
		c.httpClient, c.transport = newPooledClient(cfg)
	}

	return c, nil
}

// parseEndpoints keeps the absolute URIs, in order
func parseEndpoints(uris []string, logger zerolog.Logger) []*url.URL {
	var endpoints []*url.URL
	for _, raw := range uris {
		u, err := url.Parse(strings.TrimSpace(raw))
		if err != nil || u.Scheme == "" || u.Host == "" {
			logger.Warn().Str("uri", raw).Msg("Ignoring invalid API endpoint URI")
			continue
		}
		endpoints = append(endpoints, u)
	}
	return endpoints
}

// Configuration returns the configuration the client was created with
func (c *Client) Configuration() *config.Configuration {
	return c.cfg
}

// do executes req against the endpoints, starting with the one that answered last.
// Only transport failures move on to the next endpoint.
func (c *Client) do(ctx context.Context, req *request.Request, locale language.Tag) (*http.Response, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	start := int(c.preferred.Load())
	var lastErr error

	for i := range c.endpoints {
		idx := (start + i) % len(c.endpoints)
		target := req.URL(c.endpoints[idx])

		httpReq, err := http.NewRequestWithContext(ctx, req.Method, target.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		httpReq.Header.Set(apiKeyHeader, c.cfg.APIKey)
		httpReq.Header.Set("Accept", "application/json")
		httpReq.Header.Set("User-Agent", c.userAgent)
		if locale != language.Und {
			httpReq.Header.Set("Accept-Language", locale.String())
		}

		c.logger.Debug().
			Str("method", req.Method).
			Str("url", target.Redacted()).
			Int("endpoint", idx).
			Msg("Making MyTimetable API request")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			lastErr = &TransportError{URL: target.Redacted(), Err: err}
			if ctx.Err() != nil {
				return nil, lastErr
			}
			c.logger.Warn().
				Err(err).
				Str("endpoint", c.endpoints[idx].Redacted()).
				Msg("API endpoint unreachable, trying next")
			continue
		}

		c.preferred.Store(int32(idx))

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			resp.Body.Close()
			return nil, &StatusError{
				StatusCode: resp.StatusCode,
				Status:     resp.Status,
				URL:        target.Redacted(),
				Body:       string(body),
			}
		}

		return resp, nil
	}

	return nil, lastErr
}

// fetch executes req and maps a successful response body with decode
func fetch[T any](ctx context.Context, c *Client, req *request.Request, locale language.Tag, decode func(io.Reader) (T, error)) (T, error) {
	var zero T

	resp, err := c.do(ctx, req, locale)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	out, err := decode(resp.Body)
	if err != nil {
		return zero, err
	}

	// Drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)

	return out, nil
}

// requireVersion fails when the configured server version is older than minimum
func (c *Client) requireVersion(minimum semver.Version, operation string) error {
	if c.version.LT(minimum) {
		return fmt.Errorf("%w: %s requires %s, configured %s", ErrUnsupportedVersion, operation, minimum, c.version)
	}
	return nil
}

// GetUpcomingEvents returns the upcoming events of a user
func (c *Client) GetUpcomingEvents(ctx context.Context, username string) ([]model.Event, error) {
	return c.GetUpcomingEventsWithLocale(ctx, username, language.Und)
}

// GetUpcomingEventsWithLocale returns the upcoming events of a user in the given locale
func (c *Client) GetUpcomingEventsWithLocale(ctx context.Context, username string, locale language.Tag) ([]model.Event, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidArgument)
	}

	req, err := request.UpcomingEvents(request.UpcomingEventsQuery{
		User:           c.cfg.DecorateUsername(username),
		Locale:         locale,
		Limit:          c.cfg.EventLimit(),
		TimetableTypes: c.cfg.TimetableTypes,
	})
	if err != nil {
		return nil, err
	}

	events, err := fetch(ctx, c, req, locale, func(r io.Reader) ([]model.Event, error) {
		return mapper.List[model.Event](r, mapper.RootEvent)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming events: %w", err)
	}

	c.logger.Debug().
		Str("username", username).
		Int("count", len(events)).
		Msg("Retrieved upcoming events")

	return events, nil
}

// GetTimetables searches timetables
func (c *Client) GetTimetables(ctx context.Context, query request.TimetablesQuery) ([]model.Timetable, error) {
	req, err := request.Timetables(query)
	if err != nil {
		return nil, err
	}
	if err := c.requireVersion(searchVersion, "timetable search"); err != nil {
		return nil, err
	}

	timetables, err := fetch(ctx, c, req, language.Und, func(r io.Reader) ([]model.Timetable, error) {
		return mapper.List[model.Timetable](r, mapper.RootTimetable)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get timetables: %w", err)
	}

	c.logger.Debug().
		Str("type", query.Type).
		Int("count", len(timetables)).
		Msg("Retrieved timetables")

	return timetables, nil
}

// GetTimetable retrieves a single timetable by id
func (c *Client) GetTimetable(ctx context.Context, id string) (model.Timetable, error) {
	req, err := request.Timetable(id)
	if err != nil {
		return model.Timetable{}, err
	}
	if err := c.requireVersion(searchVersion, "timetable lookup"); err != nil {
		return model.Timetable{}, err
	}

	timetable, err := fetch(ctx, c, req, language.Und, func(r io.Reader) (model.Timetable, error) {
		return mapper.One[model.Timetable](r, mapper.RootTimetable)
	})
	if err != nil {
		return model.Timetable{}, fmt.Errorf("failed to get timetable %s: %w", id, err)
	}

	return timetable, nil
}

// GetTimetableFilterTypes lists the filter attributes of a timetable type
func (c *Client) GetTimetableFilterTypes(ctx context.Context, timetableType string) ([]model.TimetableFilterType, error) {
	req, err := request.FilterTypes(timetableType)
	if err != nil {
		return nil, err
	}
	if err := c.requireVersion(searchVersion, "filter attributes"); err != nil {
		return nil, err
	}

	types, err := fetch(ctx, c, req, language.Und, func(r io.Reader) ([]model.TimetableFilterType, error) {
		return mapper.List[model.TimetableFilterType](r, mapper.RootFilterAttribute)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get filter types: %w", err)
	}

	return types, nil
}

// GetTimetableFilterTypeIndex returns the filter attributes of a timetable type keyed by id
func (c *Client) GetTimetableFilterTypeIndex(ctx context.Context, timetableType string) (map[string]model.TimetableFilterType, error) {
	req, err := request.FilterTypes(timetableType)
	if err != nil {
		return nil, err
	}
	if err := c.requireVersion(searchVersion, "filter attributes"); err != nil {
		return nil, err
	}

	index, err := fetch(ctx, c, req, language.Und, func(r io.Reader) (map[string]model.TimetableFilterType, error) {
		return mapper.Map(r, mapper.RootFilterAttribute, func(ft model.TimetableFilterType) string { return ft.ID })
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get filter types: %w", err)
	}

	return index, nil
}

// Close releases idle pooled connections. It is safe to call more than once.
// Requests already in flight are left to the transport.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)

		if c.transport != nil {
			c.transport.CloseIdleConnections()
			return
		}
		if closer, ok := c.httpClient.(interface{ CloseIdleConnections() }); ok {
			closer.CloseIdleConnections()
		}
	})
	return nil
}
