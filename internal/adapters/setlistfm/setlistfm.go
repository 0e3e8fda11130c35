package setlistfm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/jpp0ca/SetlistStats-API/internal/domain"
	"github.com/jpp0ca/SetlistStats-API/internal/metrics"
)

const (
	DefaultBaseURL = "https://api.setlist.fm/rest/1.0"
	maxRetries     = 3
	maxErrorBody   = 512
)

// Options configures the setlist.fm provider.
type Options struct {
	BaseURL    string
	APIKey     string
	ArtistMBID string
	// RequestsPerSecond throttles outgoing requests; <= 0 disables throttling.
	RequestsPerSecond float64
	// NewBackOff returns the retry policy for one request. Defaults to an
	// exponential backoff.
	NewBackOff func() backoff.BackOff
}

// Provider implements ports.SetlistSource against the setlist.fm REST API.
type Provider struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	artistMBID string
	limiter    *rate.Limiter
	newBackOff func() backoff.BackOff
	metrics    *metrics.Metrics
	log        zerolog.Logger
}

// NewProvider creates a new setlist.fm provider with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewProvider(client *http.Client, opts Options, m *metrics.Metrics, log zerolog.Logger) *Provider {
	if client == nil {
		client = http.DefaultClient
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.NewBackOff == nil {
		opts.NewBackOff = func() backoff.BackOff {
			return backoff.NewExponentialBackOff(
				backoff.WithInitialInterval(500*time.Millisecond),
				backoff.WithMaxInterval(5*time.Second),
			)
		}
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &Provider{
		client:     client,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		artistMBID: opts.ArtistMBID,
		limiter:    rate.NewLimiter(limit, 1),
		newBackOff: opts.NewBackOff,
		metrics:    m,
		log:        log.With().Str("component", "setlistfm").Logger(),
	}
}

func (p *Provider) Name() string {
	return "setlistfm"
}

// -- SetlistSource implementation --------------------------------------------

func (p *Provider) ArtistSetlists(ctx context.Context, page int) (*domain.SetlistPage, error) {
	if page < 1 {
		page = 1
	}
	endpoint := fmt.Sprintf("%s/artist/%s/setlists?p=%d", p.baseURL, url.PathEscape(p.artistMBID), page)

	body, err := p.doGet(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("setlistfm: failed to get artist setlists: %w", err)
	}

	var resp domain.SetlistPage
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("setlistfm: failed to parse setlists response: %w", err)
	}
	return &resp, nil
}

func (p *Provider) Setlist(ctx context.Context, id string) (*domain.Setlist, error) {
	endpoint := fmt.Sprintf("%s/setlist/%s", p.baseURL, url.PathEscape(id))

	body, err := p.doGet(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("setlistfm: failed to get setlist %s: %w", id, err)
	}

	var resp domain.Setlist
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("setlistfm: failed to parse setlist response: %w", err)
	}
	return &resp, nil
}

func (p *Provider) SearchSetlists(ctx context.Context, query domain.SearchQuery) (*domain.SetlistPage, error) {
	endpoint := fmt.Sprintf("%s/search/setlists?%s", p.baseURL, searchParams(query).Encode())

	body, err := p.doGet(ctx, endpoint)
	if errors.Is(err, domain.ErrNotFound) {
		// setlist.fm answers 404 when a search has no results
		return &domain.SetlistPage{Page: max(query.Page, 1), Setlist: []domain.Setlist{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("setlistfm: search failed: %w", err)
	}

	var resp domain.SetlistPage
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("setlistfm: failed to parse search response: %w", err)
	}
	return &resp, nil
}

// Forward performs a GET for an arbitrary API path (e.g. "/setlist/abc")
// and returns the raw upstream body.
func (p *Provider) Forward(ctx context.Context, path, rawQuery string) ([]byte, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	endpoint := p.baseURL + path
	if rawQuery != "" {
		endpoint += "?" + rawQuery
	}
	return p.doGet(ctx, endpoint)
}

// -- HTTP helpers ------------------------------------------------------------

func (p *Provider) doGet(ctx context.Context, endpoint string) ([]byte, error) {
	var body []byte

	op := func() error {
		if err := p.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("x-api-key", p.apiKey)
		req.Header.Set("Accept", "application/json")

		start := time.Now()
		resp, err := p.client.Do(req)
		if err != nil {
			p.metrics.Upstream("error", time.Since(start).Seconds())
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return fmt.Errorf("%w: %w", domain.ErrUpstream, err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		p.metrics.Upstream(strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())
		if err != nil {
			return fmt.Errorf("%w: reading body: %w", domain.ErrUpstream, err)
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			body = data
			return nil
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(domain.ErrNotFound)
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return statusError(resp.StatusCode, data)
		default:
			return backoff.Permanent(statusError(resp.StatusCode, data))
		}
	}

	b := backoff.WithContext(backoff.WithMaxRetries(p.newBackOff(), maxRetries), ctx)
	err := backoff.RetryNotify(op, b, func(err error, d time.Duration) {
		p.log.Warn().
			Err(err).
			Dur("backoff", d).
			Str("endpoint", endpoint).
			Msg("setlist.fm request failed, retrying")
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func statusError(code int, body []byte) error {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return fmt.Errorf("%w: setlist.fm API returned status %d: %s", domain.ErrUpstream, code, string(body))
}

func searchParams(q domain.SearchQuery) url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set("artistName", q.ArtistName)
	set("artistMbid", q.ArtistMBID)
	if q.Year > 0 {
		v.Set("year", strconv.Itoa(q.Year))
	}
	set("date", q.Date)
	set("cityName", q.CityName)
	set("countryCode", q.CountryCode)
	set("venueId", q.VenueID)
	set("tourName", q.TourName)
	v.Set("p", strconv.Itoa(max(q.Page, 1)))
	return v
}
