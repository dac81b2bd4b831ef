package restcountries

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultBaseURL is the public REST Countries v3.1 endpoint.
const DefaultBaseURL = "https://restcountries.com/v3.1"

// The API caps the number of fields per request, so the full document set is
// assembled from two calls with disjoint field lists, merged index-wise.
const (
	profileFields = "name,currencies,idd,capital,region,subregion"
	factsFields   = "languages,area,population,continents,independent,unMember,startOfWeek"
)

// Client fetches country documents from the REST Countries API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client against the given base URL. An empty baseURL
// selects DefaultBaseURL; a nil httpClient selects a client with a 30s
// timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// FetchAll retrieves the complete country set. Both API calls are issued
// together; if either fails, the whole fetch fails and no documents are
// returned.
func (c *Client) FetchAll(ctx context.Context) ([]Country, error) {
	var (
		profiles []profileDoc
		facts    []factsDoc
	)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return c.getAll(ctx, profileFields, &profiles)
	})
	group.Go(func() error {
		return c.getAll(ctx, factsFields, &facts)
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return mergeDocs(profiles, facts), nil
}

// getAll issues GET {baseURL}/all?fields={fields} and decodes the JSON array
// into out. Any non-2xx status is an error.
func (c *Client) getAll(ctx context.Context, fields string, out any) error {
	u := fmt.Sprintf("%s/all?fields=%s", c.baseURL, url.QueryEscape(fields))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Include a short body excerpt; the API returns JSON error documents.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s: unexpected status %d: %s", u, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", u, err)
	}
	return nil
}
