// Package tvmaze resolves a television show's TVmaze identifier from
// whatever identifying information a release carries: a TVDB ID, an
// IMDb ID, or just a title. Transport and status failures are treated
// as "no data" and logged, never returned; the TVmaze API is a best
// effort enrichment source, not a hard dependency.
package tvmaze

import (
	"context"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/audionut/upload-assistant-go/internal/httpclient"
)

const (
	// DefaultBaseURL is the public TVmaze API root.
	DefaultBaseURL = "https://api.tvmaze.com"

	requestTimeout = 10 * time.Second
)

// Externals holds a show's cross-references into other catalogs.
type Externals struct {
	TVRage  int    `json:"tvrage"`
	TheTVDB int    `json:"thetvdb"`
	IMDb    string `json:"imdb"`
}

// Show is one catalog record, fetched per request and discarded after
// resolution.
type Show struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Premiered string    `json:"premiered"`
	Externals Externals `json:"externals"`
}

// Client queries the TVmaze API.
type Client struct {
	api *httpclient.Client
}

// NewClient creates a TVmaze client. Redirects are followed (the
// default transport behavior); every call is bounded by a 10 second
// timeout.
func NewClient() *Client {
	return &Client{
		api: httpclient.New(DefaultBaseURL, "upload-assistant-go", &http.Client{Timeout: requestTimeout}),
	}
}

// SetBaseURLForTesting points the client at a test server.
func (c *Client) SetBaseURLForTesting(newURL string) {
	c.api.SetBaseURL(newURL)
}

type lookupParams struct {
	TheTVDB int    `url:"thetvdb,omitempty"`
	IMDb    string `url:"imdb,omitempty"`
}

type searchParams struct {
	Query string `url:"q"`
}

type searchResult struct {
	Score float64 `json:"score"`
	Show  *Show   `json:"show"`
}

// LookupByTVDB fetches the single show cross-referenced to a TVDB ID.
// An unknown ID or any request failure yields an empty slice.
func (c *Client) LookupByTVDB(ctx context.Context, tvdbID int) []Show {
	var show Show
	if err := c.api.Get(ctx, "/lookup/shows", lookupParams{TheTVDB: tvdbID}, &show); err != nil {
		log.Warnf("TVmaze lookup by TVDB ID %d failed: %v", tvdbID, err)
		return nil
	}
	return []Show{show}
}

// LookupByIMDb fetches the single show cross-referenced to an IMDb ID
// (numeric, without the tt prefix). Failures yield an empty slice.
func (c *Client) LookupByIMDb(ctx context.Context, imdbID int) []Show {
	var show Show
	params := lookupParams{IMDb: fmt.Sprintf("tt%07d", imdbID)}
	if err := c.api.Get(ctx, "/lookup/shows", params, &show); err != nil {
		log.Warnf("TVmaze lookup by IMDb ID tt%07d failed: %v", imdbID, err)
		return nil
	}
	return []Show{show}
}

// SearchByTitle runs the free-text show search. Failures yield an
// empty slice.
func (c *Client) SearchByTitle(ctx context.Context, title string) []Show {
	var wrapped []searchResult
	if err := c.api.Get(ctx, "/search/shows", searchParams{Query: title}, &wrapped); err != nil {
		log.Warnf("TVmaze search for %q failed: %v", title, err)
		return nil
	}
	shows := make([]Show, 0, len(wrapped))
	for _, each := range wrapped {
		if each.Show != nil {
			shows = append(shows, *each.Show)
		}
	}
	return shows
}
