// Package gaia is a client for TAP-speaking astronomical catalogs such as
// the ESA Gaia archive. It issues synchronous ADQL queries and decodes
// the TAP JSON table format.
package gaia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/astrovis/starfield/internal/domain"
	"github.com/astrovis/starfield/internal/domain/query"
	"github.com/astrovis/starfield/internal/metrics"
)

// DefaultBaseURL is the ESA Gaia archive TAP endpoint.
const DefaultBaseURL = "https://gea.esac.esa.int/tap-server/tap"

// Client executes synchronous TAP queries.
type Client struct {
	http    *http.Client
	baseURL string
	logger  *zap.Logger
}

// Config holds the catalog client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewClient creates a TAP catalog client.
func NewClient(cfg *Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// Query runs the descriptor against the /sync TAP endpoint and returns
// the decoded rows. An empty result is valid and returned as-is.
// HTTP 400 responses wrap domain.ErrQuerySyntax; transport failures and
// server-side errors wrap domain.ErrCatalogUnavailable. No retries.
func (c *Client) Query(ctx context.Context, desc query.Descriptor) (domain.ResultSet, error) {
	adql := desc.ADQL()
	form := url.Values{
		"REQUEST": {"doQuery"},
		"LANG":    {"ADQL"},
		"FORMAT":  {"json"},
		"QUERY":   {adql},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/sync", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)

	if err != nil {
		metrics.CatalogRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("tap request failed: %v: %w", err, domain.ErrCatalogUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		metrics.CatalogRequestsTotal.WithLabelValues("error").Inc()
		return nil, c.statusError(resp)
	}

	rows, err := decodeTable(resp.Body)
	if err != nil {
		metrics.CatalogRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("decode tap response: %v: %w", err, domain.ErrCatalogUnavailable)
	}

	metrics.CatalogRequestsTotal.WithLabelValues("success").Inc()
	metrics.CatalogRequestDuration.WithLabelValues(desc.Table).Observe(duration.Seconds())
	metrics.CatalogRowsTotal.Add(float64(len(rows)))

	c.logger.Debug("catalog query complete",
		zap.String("table", desc.Table),
		zap.Float64("min_parallax_mas", desc.MinParallaxMas),
		zap.Int("rows", len(rows)),
		zap.Duration("latency", duration),
	)
	return rows, nil
}

// statusError maps a non-200 TAP response onto the domain error taxonomy.
// TAP services report ADQL errors as 400 with a VOTable error document.
func (c *Client) statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	detail := extractVOTableMessage(body)
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}

	if resp.StatusCode == http.StatusBadRequest {
		return fmt.Errorf("tap service rejected query: %s: %w", detail, domain.ErrQuerySyntax)
	}
	return fmt.Errorf("tap service error %d: %s: %w", resp.StatusCode, detail, domain.ErrCatalogUnavailable)
}

// extractVOTableMessage pulls the text of the QUERY_STATUS INFO element
// out of a VOTable error document. Best effort: an empty string means
// the body carried no recognizable message.
func extractVOTableMessage(body []byte) string {
	s := string(body)
	const marker = `value="ERROR"`
	i := strings.Index(s, marker)
	if i < 0 {
		return ""
	}
	rest := s[i+len(marker):]
	open := strings.Index(rest, ">")
	closing := strings.Index(rest, "</INFO>")
	if open < 0 || closing < 0 || open >= closing {
		return ""
	}
	return strings.TrimSpace(rest[open+1 : closing])
}

// tapTable is the TAP JSON table envelope: column metadata plus rows of
// positional cell values.
type tapTable struct {
	Metadata []struct {
		Name string `json:"name"`
	} `json:"metadata"`
	Data [][]json.RawMessage `json:"data"`
}

// decodeTable converts a TAP JSON table into catalog rows. Columns are
// resolved by metadata name, not position, so SELECT order and extra
// columns do not matter. A null parallax decodes to NaN and is dropped
// later by the projection filter.
func decodeTable(r io.Reader) (domain.ResultSet, error) {
	var table tapTable
	if err := json.NewDecoder(r).Decode(&table); err != nil {
		return nil, fmt.Errorf("parse json table: %w", err)
	}

	cols := make(map[string]int, len(table.Metadata))
	for i, m := range table.Metadata {
		cols[strings.ToLower(m.Name)] = i
	}
	for _, required := range []string{"source_id", "ra", "dec", "parallax"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("response missing column %q", required)
		}
	}

	rows := make(domain.ResultSet, 0, len(table.Data))
	for i, cells := range table.Data {
		if len(cells) < len(table.Metadata) {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i, len(cells), len(table.Metadata))
		}
		var row domain.CatalogRow
		if err := json.Unmarshal(cells[cols["source_id"]], &row.SourceID); err != nil {
			return nil, fmt.Errorf("row %d source_id: %w", i, err)
		}
		var err error
		if row.RA, err = decodeFloat(cells[cols["ra"]]); err != nil {
			return nil, fmt.Errorf("row %d ra: %w", i, err)
		}
		if row.Dec, err = decodeFloat(cells[cols["dec"]]); err != nil {
			return nil, fmt.Errorf("row %d dec: %w", i, err)
		}
		if row.Parallax, err = decodeFloat(cells[cols["parallax"]]); err != nil {
			return nil, fmt.Errorf("row %d parallax: %w", i, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// decodeFloat parses a numeric cell; JSON null becomes NaN.
func decodeFloat(raw json.RawMessage) (float64, error) {
	if string(raw) == "null" {
		return math.NaN(), nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, err
	}
	return v, nil
}
