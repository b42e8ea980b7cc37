// Package blockpalettes is a client for the Block Palettes website. It wraps
// the JSON endpoints under /api/palettes and scrapes the HTML palette pages.
package blockpalettes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"blockpalettes/pkg/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

const (
	DefaultBaseUrl       = "https://www.blockpalettes.com"
	DefaultTimeout       = 30 * time.Second
	DefaultUserAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
	DefaultBlockSelector = ".single-block"
	DefaultCardSelector  = ".palette-card"
)

const (
	report_client_search_blocks       = "client.search-blocks"
	report_client_popular_blocks      = "client.popular-blocks"
	report_client_palettes            = "client.palettes"
	report_client_palettes_with_block = "client.palettes-with-blocks"
	report_client_palette             = "client.palette"
	report_client_similar_palettes    = "client.similar-palettes"
	report_client_scrape_palette_page = "client.scrape-palette-page"
)

type ClientOptions struct {
	// BaseUrl defaults to DefaultBaseUrl.
	BaseUrl string
	// Timeout is applied to every request, it defaults to DefaultTimeout.
	// Cancelling the context passed to a method also aborts the request.
	Timeout   time.Duration
	UserAgent string
	// CloudflareBypass wraps the transport so requests look like they come
	// from a browser.
	CloudflareBypass bool

	// BlockSelector and CardSelector override the CSS selectors used by
	// ScrapePalettePage.
	BlockSelector string
	CardSelector  string

	// Telemetry defaults to telemetry.SlogAPI.
	Telemetry telemetry.API
	// InstrumentOutput receives a dump of every HTTP message when set.
	InstrumentOutput telemetry.InstrumentOutput
}

// Client is safe for concurrent use, it holds nothing but the HTTP client and
// its settings.
type Client struct {
	BaseUrl *url.URL

	http          *resty.Client
	blockSelector string
	cardSelector  string
	tel           telemetry.API
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.BlockSelector == "" {
		opts.BlockSelector = DefaultBlockSelector
	}
	if opts.CardSelector == "" {
		opts.CardSelector = DefaultCardSelector
	}
	if opts.Telemetry == nil {
		opts.Telemetry = telemetry.SlogAPI{}
	}

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, fmt.Errorf("%w: base url: %w", ErrInvalidArgument, err)
	}
	if baseUrl.Scheme == "" || baseUrl.Host == "" {
		return nil, fmt.Errorf("%w: base url %q is not absolute", ErrInvalidArgument, opts.BaseUrl)
	}

	tel := telemetry.NewScopedAPI("blockpalettes_client", opts.Telemetry)

	httpClient := resty.New()
	httpClient.SetBaseURL(baseUrl.String())
	httpClient.SetTimeout(opts.Timeout)
	httpClient.SetHeader("user-agent", opts.UserAgent)
	if opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}

	telemetry.InstrumentResty(httpClient, tel, opts.InstrumentOutput)

	return &Client{
		BaseUrl:       baseUrl,
		http:          httpClient,
		blockSelector: opts.BlockSelector,
		cardSelector:  opts.CardSelector,
		tel:           tel,
	}, nil
}

// getJSON fetches `endpoint` and decodes its body into `out`.
//
// The body is decoded even on a non-2xx status since the upstream reports
// some failures as `success: false` along with an error status. A body missing
// a required field counts as undecodable.
func getJSON[O any](
	ctx context.Context,
	c *Client,
	op, reportId, endpoint string,
	query map[string]string,
	out *O,
) error {
	c.tel.ReportDebug(reportId, endpoint, query)

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		SetHeader("accept", "application/json").
		Get(endpoint)
	if err != nil {
		c.tel.ReportBroken(
			reportId,
			fmt.Errorf("fetch: %w", err),
			endpoint,
		)
		return wrapError(op, err)
	}

	err = decodeBody(res.Body(), out)
	if err == nil {
		return nil
	}
	if res.IsError() {
		statusErr := &StatusError{StatusCode: res.StatusCode(), Status: res.Status()}
		c.tel.ReportBroken(reportId, statusErr, endpoint)
		return wrapError(op, statusErr)
	}
	c.tel.ReportBroken(
		reportId,
		fmt.Errorf("unmarshal json: %w", err),
		endpoint,
	)
	return wrapError(op, fmt.Errorf("%w: %w", ErrMalformedResponse, err))
}

// checker is implemented by response envelopes with required fields.
type checker interface {
	check() error
}

// decodeBody unmarshals `body` into `out` and, when `out` is a checker,
// rejects bodies missing a required field.
func decodeBody[O any](body []byte, out *O) error {
	err := json.Unmarshal(body, out)
	if err != nil {
		return err
	}
	if c, ok := any(out).(checker); ok {
		return c.check()
	}
	return nil
}
