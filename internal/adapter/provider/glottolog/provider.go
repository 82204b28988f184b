// Package glottolog looks up language coordinates in the Glottolog
// gazetteer.
package glottolog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/heartmarshall/abaevdict/internal/config"
	"github.com/heartmarshall/abaevdict/internal/domain"
)

// ErrNoCoordinates is returned when Glottolog knows the languoid but has
// no location for it.
var ErrNoCoordinates = errors.New("glottolog: no coordinates")

// Coords is a geographic point.
type Coords struct {
	Latitude  float64
	Longitude float64
}

type languoid struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Provider fetches languoid records from Glottolog.
type Provider struct {
	baseURL    string
	retries    uint64
	backoff    time.Duration
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider from the gazetteer config.
func NewProvider(cfg config.GazetteerConfig, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    cfg.BaseURL,
		retries:    cfg.Retries,
		backoff:    500 * time.Millisecond,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("adapter", "glottolog"),
	}
}

// FetchCoords returns the coordinates of glottocode. A code Glottolog does
// not know yields domain.ErrNotFound.
func (p *Provider) FetchCoords(ctx context.Context, glottocode string) (Coords, error) {
	reqURL := p.baseURL + "/" + url.PathEscape(glottocode) + ".json"

	p.log.DebugContext(ctx, "glottolog request", slog.String("glottocode", glottocode))

	var lang languoid
	b := retry.WithMaxRetries(p.retries, retry.NewExponential(p.backoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		var err error
		lang, err = p.fetch(ctx, reqURL)
		var re *retryable
		if errors.As(err, &re) {
			p.log.WarnContext(ctx, "glottolog retry",
				slog.String("glottocode", glottocode), slog.String("reason", re.Error()))
			return retry.RetryableError(re.err)
		}
		return err
	})
	if err != nil {
		return Coords{}, fmt.Errorf("glottolog %s: %w", glottocode, err)
	}

	if lang.Latitude == nil || lang.Longitude == nil {
		return Coords{}, fmt.Errorf("%s: %w", glottocode, ErrNoCoordinates)
	}
	return Coords{Latitude: *lang.Latitude, Longitude: *lang.Longitude}, nil
}

// retryable marks network failures and 5xx responses.
type retryable struct{ err error }

func (r *retryable) Error() string { return r.err.Error() }

func (p *Provider) fetch(ctx context.Context, reqURL string) (languoid, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return languoid{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return languoid{}, ctx.Err()
		}
		return languoid{}, &retryable{err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return languoid{}, domain.ErrNotFound
	case resp.StatusCode >= 500:
		return languoid{}, &retryable{err: fmt.Errorf("status %d", resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		return languoid{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return languoid{}, fmt.Errorf("read body: %w", err)
	}

	var lang languoid
	if err := json.Unmarshal(body, &lang); err != nil {
		return languoid{}, fmt.Errorf("decode json: %w", err)
	}
	return lang, nil
}

// FillResult summarizes a FillCoords pass.
type FillResult struct {
	Updated int
	Skipped int
	Failed  int
}

// FillCoords looks up coordinates for every language that has a glottocode
// but no coordinates and returns the updated table. Lookup failures are
// logged and counted; only context cancellation aborts the pass.
func (p *Provider) FillCoords(ctx context.Context, langs domain.Languages) (domain.Languages, FillResult, error) {
	out := make(domain.Languages, len(langs))
	var res FillResult

	for _, l := range langs.Sorted() {
		if l.HasCoords() || l.Glottocode == "" {
			out[l.Code] = l
			res.Skipped++
			continue
		}

		c, err := p.FetchCoords(ctx, l.Glottocode)
		if err != nil {
			if ctx.Err() != nil {
				return nil, res, ctx.Err()
			}
			p.log.WarnContext(ctx, "no coordinates",
				slog.String("code", l.Code), slog.String("glottocode", l.Glottocode), slog.String("error", err.Error()))
			out[l.Code] = l
			res.Failed++
			continue
		}

		l.Latitude, l.Longitude = &c.Latitude, &c.Longitude
		out[l.Code] = l
		res.Updated++
	}

	p.log.InfoContext(ctx, "coordinates filled",
		slog.Int("updated", res.Updated), slog.Int("skipped", res.Skipped), slog.Int("failed", res.Failed))
	return out, res, nil
}
