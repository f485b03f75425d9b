package unit3d

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/audionut/upload-assistant-go/pkg/core/release"
)

// Content policy for this tracker. Releases failing a gate are marked
// skipped and never reach the network.
var (
	allowedGenres = []string{"Animation", "Family"}

	disallowedKeywords = map[string]struct{}{
		"xxx":             {},
		"erotic":          {},
		"porn":            {},
		"hentai":          {},
		"adult animation": {},
		"orgy":            {},
		"softcore":        {},
	}
)

type filterParams struct {
	APIToken    string   `url:"api_token"`
	TMDBID      int      `url:"tmdbId"`
	Categories  []string `url:"categories[]"`
	Types       []string `url:"types[]"`
	Resolutions []string `url:"resolutions[]"`
	Name        string   `url:"name"`
}

type filterResponse struct {
	Data []struct {
		Attributes struct {
			Name string `json:"name"`
		} `json:"attributes"`
	} `json:"data"`
}

// SearchExisting decides whether the release is eligible for this
// tracker and, if so, queries for conflicting listings. The three
// outcomes are distinct: a policy rejection sets r.Skipping and
// returns (nil, nil); an eligible release with no conflicts returns an
// empty non-nil slice; a failed search returns a non-nil error and the
// caller must not treat it as "no duplicates".
func (c *Client) SearchExisting(ctx context.Context, r *release.Release) ([]string, error) {
	if !r.HasGenre(allowedGenres...) {
		log.Warnf("[%s] content outside the allowed genres, skipping", c.cfg.Name)
		r.Skipping = c.cfg.Name
		return nil, nil
	}
	for _, kw := range r.Keywords {
		if _, banned := disallowedKeywords[strings.ToLower(kw)]; banned {
			log.Warnf("[%s] adult content not allowed, skipping", c.cfg.Name)
			r.Skipping = c.cfg.Name
			return nil, nil
		}
	}
	if r.SD && strings.Contains(r.Source, "BluRay") {
		log.Warnf("[%s] SD content from HD source not allowed, skipping", c.cfg.Name)
		r.Skipping = c.cfg.Name
		return nil, nil
	}

	name := ""
	if r.Category == release.CategoryTV {
		name += " " + r.Season
	}
	if r.Edition != "" {
		name += " " + r.Edition
	}

	params := filterParams{
		APIToken:    c.cfg.APIKey,
		TMDBID:      r.TMDBID,
		Categories:  []string{CategoryID(r.Category)},
		Types:       []string{TypeID(r.Type)},
		Resolutions: []string{ResolutionID(r.Resolution)},
		Name:        strings.TrimSpace(name),
	}

	log.Infof("[%s] searching for existing torrents...", c.cfg.Name)

	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	var resp filterResponse
	if err := c.api.Get(ctx, filterPath, params, &resp); err != nil {
		log.Warnf("[%s] duplicate search failed: %v", c.cfg.Name, err)
		return nil, err
	}

	dupes := make([]string, 0, len(resp.Data))
	for _, each := range resp.Data {
		dupes = append(dupes, each.Attributes.Name)
	}
	return dupes, nil
}
