package tvmaze

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Query carries everything known about the show being resolved.
type Query struct {
	Title  string
	TVDBID string // raw, "" or "0" mean unknown
	IMDbID string // raw, may carry the tt prefix

	// ManualID, when set, bypasses all lookups.
	ManualID string

	// DateHint is the manual release-date disambiguation hint. When
	// present every lookup stage runs and the operator picks the match
	// interactively; when absent the stages short-circuit and the first
	// candidate wins.
	DateHint string
}

// Resolver turns a Query into a TVmaze show ID.
type Resolver struct {
	client *Client

	// In and Out are the interactive disambiguation console. They
	// default to stdin/stdout and are swapped out in tests.
	In  io.Reader
	Out io.Writer
}

// NewResolver creates a resolver on top of a TVmaze client.
func NewResolver(client *Client) *Resolver {
	return &Resolver{client: client, In: os.Stdin, Out: os.Stdout}
}

// NormalizeTVDBID parses a raw TVDB ID. Empty, "0" and malformed
// inputs all mean unknown (0); malformed input is logged, never an
// error.
func NormalizeTVDBID(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "0" {
		return 0
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		log.Warnf("TVDB ID is not a valid integer: %q", raw)
		return 0
	}
	return id
}

// NormalizeIMDbID parses a raw IMDb ID, with or without the tt prefix,
// into its numeric form. Empty, "0" and malformed inputs all mean
// unknown (0); malformed input is logged, never an error.
func NormalizeIMDbID(raw string) int {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "tt")
	if raw == "" || raw == "0" {
		return 0
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		log.Warnf("IMDb ID is not a valid integer: %q", raw)
		return 0
	}
	return id
}

// Dedupe removes repeated show IDs, preserving first-seen order. The
// order doubles as the relevance rank: ID-based lookups run before the
// title search, so their candidates come out first.
func Dedupe(shows []Show) []Show {
	seen := make(map[int]struct{}, len(shows))
	unique := make([]Show, 0, len(shows))
	for _, s := range shows {
		if _, ok := seen[s.ID]; ok {
			continue
		}
		seen[s.ID] = struct{}{}
		unique = append(unique, s)
	}
	return unique
}

// Resolve returns the show's TVmaze ID, 0 when nothing matched.
func (r *Resolver) Resolve(ctx context.Context, q Query) int {
	id, _, _ := r.ResolveIDs(ctx, q)
	return id
}

// ResolveIDs returns the TVmaze ID plus the normalized IMDb and TVDB
// IDs the resolution worked from. The IDs are returned even when no
// show matched (TVmaze ID 0).
func (r *Resolver) ResolveIDs(ctx context.Context, q Query) (tvmazeID, imdbID, tvdbID int) {
	tvdbID = NormalizeTVDBID(q.TVDBID)
	imdbID = NormalizeIMDbID(q.IMDbID)

	if q.ManualID != "" {
		manual, err := strconv.Atoi(strings.TrimSpace(q.ManualID))
		if err != nil {
			log.Warnf("manual TVmaze ID is not a valid integer: %q", q.ManualID)
			manual = 0
		}
		return manual, imdbID, tvdbID
	}

	var results []Show
	if q.DateHint == "" {
		// Short-circuit chain: each stage runs only when the previous
		// produced nothing.
		if tvdbID != 0 {
			results = append(results, r.client.LookupByTVDB(ctx, tvdbID)...)
		}
		if len(results) == 0 && imdbID != 0 {
			results = append(results, r.client.LookupByIMDb(ctx, imdbID)...)
		}
		if len(results) == 0 {
			results = append(results, r.client.SearchByTitle(ctx, q.Title)...)
		}
	} else {
		// A date hint means the operator disambiguates, so gather every
		// candidate from every stage.
		if tvdbID != 0 {
			results = append(results, r.client.LookupByTVDB(ctx, tvdbID)...)
		}
		if imdbID != 0 {
			results = append(results, r.client.LookupByIMDb(ctx, imdbID)...)
		}
		results = append(results, r.client.SearchByTitle(ctx, q.Title)...)
	}

	unique := Dedupe(results)
	if len(unique) == 0 {
		log.Debugf("no TVmaze results for %q", q.Title)
		return 0, imdbID, tvdbID
	}

	if q.DateHint != "" {
		return r.selectInteractive(unique), imdbID, tvdbID
	}

	selected := unique[0]
	log.Debugf("automatically selected show %q (TVmaze ID %d)", selected.Name, selected.ID)
	return selected.ID, imdbID, tvdbID
}

// selectInteractive presents a numbered candidate list and blocks on
// operator input. 0 skips; anything else out of range or non-numeric
// reprompts. EOF on the input behaves like a skip.
func (r *Resolver) selectInteractive(shows []Show) int {
	fmt.Fprintln(r.Out, "Search results:")
	for i, show := range shows {
		fmt.Fprintf(r.Out, "%d. %s (TVmaze ID: %d)\n", i+1, show.Name, show.ID)
		fmt.Fprintf(r.Out, "   Premiered: %s\n", premieredOrUnknown(show.Premiered))
		externals, _ := json.Marshal(show.Externals)
		fmt.Fprintf(r.Out, "   Externals: %s\n", externals)
	}

	scanner := bufio.NewScanner(r.In)
	for {
		fmt.Fprintf(r.Out, "Enter the number of the correct show (1-%d) or 0 to skip: ", len(shows))
		if !scanner.Scan() {
			fmt.Fprintln(r.Out, "Skipping selection.")
			return 0
		}
		choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Fprintln(r.Out, "Invalid input. Please enter a number.")
			continue
		}
		if choice == 0 {
			fmt.Fprintln(r.Out, "Skipping selection.")
			return 0
		}
		if choice >= 1 && choice <= len(shows) {
			selected := shows[choice-1]
			fmt.Fprintf(r.Out, "Selected show: %s (TVmaze ID: %d)\n", selected.Name, selected.ID)
			return selected.ID
		}
		fmt.Fprintf(r.Out, "Invalid choice. Please choose a number between 1 and %d, or 0 to skip.\n", len(shows))
	}
}

func premieredOrUnknown(premiered string) string {
	if premiered == "" {
		return "Unknown"
	}
	return premiered
}
