// Package unit3d is the upload and duplicate-search adapter for a
// UNIT3D-based private tracker. It maps release metadata onto the
// tracker's numeric enum codes, posts the staged torrent plus form
// fields to the upload endpoint, and queries the filter endpoint for
// conflicting listings.
package unit3d

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/audionut/upload-assistant-go/internal/httpclient"
	"github.com/audionut/upload-assistant-go/pkg/core/release"
	"github.com/audionut/upload-assistant-go/pkg/core/staging"
	"github.com/audionut/upload-assistant-go/pkg/core/torrent"
)

const (
	uploadPath = "/api/torrents/upload"
	filterPath = "/api/torrents/filter"

	searchTimeout = 5 * time.Second
)

// ErrUploadUnconfirmed is returned when the upload POST went out but
// the response could not be interpreted. The torrent may well be live
// on the tracker; the caller should check by hand rather than retry.
var ErrUploadUnconfirmed = errors.New("unit3d: upload response not understood, it may have uploaded")

// UserAgent identifies this tool to the tracker.
var UserAgent = fmt.Sprintf("Upload Assistant/2.2 (%s %s)", runtime.GOOS, runtime.GOARCH)

// Config carries the per-tracker settings, normally read from the
// trackers.<name> section of the config file.
type Config struct {
	Name           string // tracker short name, e.g. "OTW"
	SourceFlag     string // source tag stamped into per-tracker torrents
	BaseURL        string // e.g. "https://oldtoons.world"
	APIKey         string
	AnnounceURL    string
	Anonymous      bool     // force anonymous uploads for this tracker
	Internal       bool     // allow flagging internal releases
	InternalGroups []string // group tags allowed to be flagged internal
}

// Client talks to one UNIT3D tracker.
type Client struct {
	cfg        Config
	api        *httpclient.Client
	httpClient *http.Client
}

// New creates a tracker client from its config.
func New(cfg Config) *Client {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.SourceFlag == "" {
		cfg.SourceFlag = cfg.Name
	}
	return &Client{
		cfg:        cfg,
		api:        httpclient.New(cfg.BaseURL, UserAgent, &http.Client{Timeout: searchTimeout}),
		httpClient: &http.Client{},
	}
}

// Name returns the tracker short name.
func (c *Client) Name() string { return c.cfg.Name }

// SetBaseURLForTesting points the client at a test server and returns
// the previous base URL so it can be restored.
func (c *Client) SetBaseURLForTesting(newURL string) string {
	oldURL := c.cfg.BaseURL
	c.cfg.BaseURL = newURL
	c.api.SetBaseURL(newURL)
	return oldURL
}

// EditName produces the display name for this tracker: the alternate
// title token is stripped, the tracker lists the primary title only.
func (c *Client) EditName(r *release.Release) string {
	name := r.Name
	if r.AKA != "" {
		name = strings.ReplaceAll(name, r.AKA, "")
	}
	return strings.Join(strings.Fields(name), " ")
}

// ExtractTorrentID recovers the torrent ID from the upload response's
// data URL using the tracker's fixed format: second dot-separated
// segment, fourth slash-separated element. The format is undocumented;
// a shape change comes back as an error, not a panic.
func ExtractTorrentID(data string) (string, error) {
	dotParts := strings.Split(data, ".")
	if len(dotParts) < 2 {
		return "", fmt.Errorf("unexpected data URL %q", data)
	}
	slashParts := strings.Split(dotParts[1], "/")
	if len(slashParts) < 4 {
		return "", fmt.Errorf("unexpected data URL %q", data)
	}
	return slashParts[3], nil
}

type uploadResponse struct {
	Success bool   `json:"success"`
	Data    string `json:"data"`
	Message string `json:"message"`
}

type formField struct {
	key   string
	value string
}

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// buildForm assembles the upload form fields in a stable order.
func (c *Client) buildForm(r *release.Release, name, desc, miDump, bdDump string) []formField {
	anon := r.Anonymous || c.cfg.Anonymous

	internal := false
	if c.cfg.Internal && r.GroupTag() != "" {
		for _, g := range c.cfg.InternalGroups {
			if g == r.GroupTag() {
				internal = true
				break
			}
		}
	}

	fields := []formField{
		{"name", name},
		{"description", desc},
		{"mediainfo", miDump},
		{"bdinfo", bdDump},
		{"category_id", CategoryID(r.Category)},
		{"type_id", TypeID(r.Type)},
		{"resolution_id", ResolutionID(r.Resolution)},
		{"tmdb", strconv.Itoa(r.TMDBID)},
		{"imdb", r.IMDbID},
		{"tvdb", r.TVDBID},
		{"mal", strconv.Itoa(r.MALID)},
		{"igdb", "0"},
		{"anonymous", boolField(anon)},
		{"stream", boolField(r.Stream)},
		{"sd", boolField(r.SD)},
		{"keywords", strings.Join(r.Keywords, ", ")},
		{"personal_release", boolField(r.PersonalRelease)},
		{"internal", boolField(internal)},
		{"featured", "0"},
		{"free", "0"},
		{"doubleup", "0"},
		{"sticky", "0"},
	}

	if id := RegionID(r.Region); id != 0 {
		fields = append(fields, formField{"region_id", strconv.Itoa(id)})
	}
	if id := DistributorID(r.Distributor); id != 0 {
		fields = append(fields, formField{"distributor_id", strconv.Itoa(id)})
	}
	if r.Category == release.CategoryTV {
		fields = append(fields,
			formField{"season_number", strconv.Itoa(r.SeasonInt)},
			formField{"episode_number", strconv.Itoa(r.EpisodeInt)},
		)
	}
	return fields
}

// Upload posts the staged release to the tracker and returns the
// canonical torrent URL. In debug mode the form is logged and nothing
// is sent. Missing staged files are fatal and propagate unwrapped.
func (c *Client) Upload(ctx context.Context, r *release.Release) (string, error) {
	if reason, banned := BannedGroupReason(r.GroupTag()); banned {
		if reason != "" {
			return "", fmt.Errorf("group %s is banned from %s (%s)", r.GroupTag(), c.cfg.Name, reason)
		}
		return "", fmt.Errorf("group %s is banned from %s", r.GroupTag(), c.cfg.Name)
	}

	job := staging.Job{BaseDir: r.BaseDir, UUID: r.UUID, Tracker: c.cfg.Name}
	name := c.EditName(r)

	var miDump, bdDump string
	var err error
	if r.HasBDInfo {
		if bdDump, err = job.BDSummary(); err != nil {
			return "", err
		}
	} else {
		if miDump, err = job.MediaInfo(); err != nil {
			return "", err
		}
	}
	desc, err := job.Description()
	if err != nil {
		return "", err
	}

	torrentPath := job.TorrentPath(r.CleanName)
	if err := torrent.Rebrand(torrentPath, c.cfg.AnnounceURL, c.cfg.SourceFlag); err != nil {
		return "", err
	}

	fields := c.buildForm(r, name, desc, miDump, bdDump)

	if r.Debug {
		log.Infof("[%s] debug mode, request not sent", c.cfg.Name)
		for _, f := range fields {
			log.Infof("  %s=%s", f.key, f.value)
		}
		return "", nil
	}

	openTorrent, err := os.Open(torrentPath)
	if err != nil {
		return "", err
	}
	defer openTorrent.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("torrent", name+".torrent")
	if err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, openTorrent); err != nil {
		return "", fmt.Errorf("read torrent file: %w", err)
	}

	nfoPath, err := job.FindNFO()
	if err != nil {
		return "", err
	}
	if nfoPath != "" {
		nfoData, err := os.ReadFile(nfoPath)
		if err != nil {
			return "", err
		}
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", `form-data; name="nfo"; filename="nfo_file.nfo"`)
		hdr.Set("Content-Type", "text/plain")
		nfoPart, err := writer.CreatePart(hdr)
		if err != nil {
			return "", fmt.Errorf("build upload form: %w", err)
		}
		if _, err := nfoPart.Write(nfoData); err != nil {
			return "", fmt.Errorf("build upload form: %w", err)
		}
	}

	for _, f := range fields {
		if err := writer.WriteField(f.key, f.value); err != nil {
			return "", fmt.Errorf("build upload form: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}

	uploadURL := c.cfg.BaseURL + uploadPath + "?" + url.Values{"api_token": {c.cfg.APIKey}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, &body)
	if err != nil {
		return "", fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload to %s: %w", c.cfg.Name, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrUploadUnconfirmed, err)
	}

	var parsed uploadResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v (body: %s)", ErrUploadUnconfirmed, err, string(respBody))
	}
	log.Infof("[%s] upload response: %s", c.cfg.Name, parsed.Message)

	id, err := ExtractTorrentID(parsed.Data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadUnconfirmed, err)
	}

	torrentURL := c.cfg.BaseURL + "/torrents/" + id
	r.RegisterTrackerURL(c.cfg.Name, torrentURL)
	if err := torrent.SetComment(torrentPath, torrentURL); err != nil {
		log.Warnf("[%s] failed to write torrent comment: %v", c.cfg.Name, err)
	}
	return torrentURL, nil
}
