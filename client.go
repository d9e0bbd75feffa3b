// Package gaggiuino provides a typed client for the HTTP API exposed by
// Gaggiuino espresso machine firmware (machine status, shot history and
// brewing profiles)
package gaggiuino

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

const (

	// DefaultBaseURL denotes the well-known local hostname of the machine
	DefaultBaseURL = "http://gaggiuino.local"

	// DefaultTimeout denotes the default per-request timeout
	DefaultTimeout = 5 * time.Second

	// DefaultShotFetchTimeout denotes the default overall timeout when
	// retrieving multiple shots concurrently
	DefaultShotFetchTimeout = 10 * time.Second

	// DefaultRecentShotLimit denotes the default number of shots retrieved by
	// RecentShots()
	DefaultRecentShotLimit = 10
)

// API endpoint paths (relative to the base address)
const (
	pathSystemStatus  = "/api/system/status"
	pathLatestShot    = "/api/shots/latest"
	pathShotByID      = "/api/shots/%d"
	pathAllProfiles   = "/api/profiles/all"
	pathProfileSelect = "/api/profile-select/%d"
)

// Client denotes a client for the HTTP API of a Gaggiuino espresso machine.
// It holds no mutable state and is safe for concurrent use.
type Client struct {
	baseURL          string
	timeout          time.Duration
	shotFetchTimeout time.Duration

	httpClient *http.Client
	logger     Logger
}

// New initializes a new machine client instance
func New(options ...func(*Client)) (*Client, error) {
	c := &Client{
		baseURL:          DefaultBaseURL,
		timeout:          DefaultTimeout,
		shotFetchTimeout: DefaultShotFetchTimeout,
		logger:           nopLogger{},
	}

	// Execute functional options, if any
	for _, opt := range options {
		opt(c)
	}

	c.baseURL = strings.TrimRight(c.baseURL, "/")
	if u, err := url.ParseRequestURI(c.baseURL); err != nil || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid base address `%s`", ErrInvalidConfig, c.baseURL)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Timeout: c.timeout,
		}
	}

	return c, nil
}

// BaseURL returns the effective (normalized) base address of the machine
func (c *Client) BaseURL() string {
	return c.baseURL
}

// IsHealthy probes the machine by performing a status read, converting any
// error into a negative result (this is the only operation that swallows
// errors)
func (c *Client) IsHealthy(ctx context.Context) bool {
	if _, err := c.Status(ctx); err != nil {
		c.logger.Debugf("Health check failed: %s", err)
		return false
	}

	return true
}

// Status retrieves the current machine status
func (c *Client) Status(ctx context.Context) (*MachineStatus, error) {
	body, err := c.do(ctx, http.MethodGet, pathSystemStatus)
	if err != nil {
		return nil, err
	}

	var list []MachineStatus
	if err := jsoniter.Unmarshal(body, &list); err != nil {
		return nil, decodeErr("machine status", err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: empty machine status list", ErrInvalidResponse)
	}

	return &list[0], nil
}

// LatestShotID retrieves the identifier of the most recent shot
func (c *Client) LatestShotID(ctx context.Context) (int64, error) {
	body, err := c.do(ctx, http.MethodGet, pathLatestShot)
	if err != nil {
		return 0, err
	}

	var list []struct {
		LastShotID FlexInt `json:"lastShotId"`
	}
	if err := jsoniter.Unmarshal(body, &list); err != nil {
		return 0, decodeErr("latest shot id", err)
	}
	if len(list) == 0 {
		return 0, fmt.Errorf("%w: empty latest shot list", ErrInvalidResponse)
	}

	return int64(list[0].LastShotID), nil
}

// ShotByID retrieves a single shot (including its telemetry) by identifier
func (c *Client) ShotByID(ctx context.Context, id int64) (*Shot, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf(pathShotByID, id))
	if err != nil {
		return nil, err
	}

	var shot Shot
	if err := jsoniter.Unmarshal(body, &shot); err != nil {
		return nil, decodeErr("shot", err)
	}

	return &shot, nil
}

// ShotsByIDs retrieves multiple shots concurrently (one request per id),
// returning them sorted ascending by identifier. If any single request fails
// the whole operation fails.
func (c *Client) ShotsByIDs(ctx context.Context, ids []int64) ([]Shot, error) {
	shots := make([]Shot, 0, len(ids))
	if len(ids) == 0 {
		return shots, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.shotFetchTimeout)
	defer cancel()

	type result struct {
		shot *Shot
		err  error
	}
	resChan := make(chan result, len(ids))

	for _, id := range ids {
		go func(id int64) {
			shot, err := c.ShotByID(ctx, id)
			resChan <- result{shot: shot, err: err}
		}(id)
	}

	// Collect all results (completion order is arbitrary)
	var firstErr error
	for range ids {
		res := <-resChan
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		shots = append(shots, *res.shot)
	}
	if firstErr != nil {
		return nil, firstErr
	}

	sort.Slice(shots, func(i, j int) bool {
		return shots[i].ID < shots[j].ID
	})

	return shots, nil
}

// RecentShots retrieves the most recent shots up to the provided limit
// (DefaultRecentShotLimit if zero or negative), never reaching below shot id 1
func (c *Client) RecentShots(ctx context.Context, limit int) ([]Shot, error) {
	if limit <= 0 {
		limit = DefaultRecentShotLimit
	}

	latest, err := c.LatestShotID(ctx)
	if err != nil {
		return nil, err
	}
	if latest < 1 {
		return []Shot{}, nil
	}

	start := latest - int64(limit) + 1
	if start < 1 {
		start = 1
	}

	ids := make([]int64, 0, latest-start+1)
	for id := start; id <= latest; id++ {
		ids = append(ids, id)
	}

	return c.ShotsByIDs(ctx, ids)
}

// Profiles retrieves all brewing profiles stored on the machine
func (c *Client) Profiles(ctx context.Context) ([]Profile, error) {
	body, err := c.do(ctx, http.MethodGet, pathAllProfiles)
	if err != nil {
		return nil, err
	}

	var profiles []Profile
	if err := jsoniter.Unmarshal(body, &profiles); err != nil {
		return nil, decodeErr("profiles", err)
	}

	return profiles, nil
}

// SelectProfile activates the profile with the provided identifier
func (c *Client) SelectProfile(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf(pathProfileSelect, id))

	return err
}

// DeleteProfile removes the profile with the provided identifier
func (c *Client) DeleteProfile(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf(pathProfileSelect, id))

	return err
}

// do performs a single HTTP round trip against the machine, validating the
// response status and returning the raw body
func (c *Client) do(ctx context.Context, method, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %s %s", ErrTimeout, method, path)
		}
		return nil, fmt.Errorf("%w: %s", ErrConnectionFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrConnectionFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %s %s", ErrTimeout, method, path)
		}
		return nil, fmt.Errorf("%w: %s", ErrConnectionFailed, err)
	}

	return body, nil
}

// isTimeout checks and returns if an error denotes an exceeded deadline
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// decodeErr wraps an unmarshalling failure into the decoding error class
func decodeErr(entity string, err error) error {
	var dErr *DecodeError
	if errors.As(err, &dErr) {
		return fmt.Errorf("failed to decode %s: %w", entity, dErr)
	}

	return fmt.Errorf("failed to decode %s: %w: %s", entity, ErrDecodingFailed, err)
}
