package ode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultBaseURL is the livegds endpoint of the ODE REST interface.
const DefaultBaseURL = "https://oderest.rsl.wustl.edu/livegds"

// downloadConcurrency bounds parallel result-file fetches.
const downloadConcurrency = 4

// Results is the GDSResults payload of a livegds response.
type Results struct {
	Status       string        `json:"Status"`
	Error        string        `json:"Error"`
	JobID        string        `json:"JobId"`
	Count        string        `json:"Count"`
	StatusNote   string        `json:"StatusNote"`
	StateSummary *StateSummary `json:"StateSummary"`
	ResultFiles  *ResultFiles  `json:"ResultFiles"`
}

type StateSummary struct {
	State string `json:"State"`
}

type ResultFiles struct {
	ResultFile []ResultFile `json:"ResultFile"`
}

type ResultFile struct {
	URL string `json:"URL"`
}

type envelope struct {
	GDSResults Results `json:"GDSResults"`
}

// State reports the job state, preferring the StateSummary when present.
func (r *Results) State() string {
	if r.StateSummary != nil {
		return r.StateSummary.State
	}
	return r.Status
}

// Finished reports whether an asynchronous job has reached a terminal state.
func (r *Results) Finished() bool {
	return strings.EqualFold(r.State(), "Finished")
}

// PointFiles returns the URLs of the point CSV products. The ODE response
// lists every rendering of the result set; only the pts_csv files are of use
// downstream.
func (r *Results) PointFiles() []string {
	if r.ResultFiles == nil {
		return nil
	}
	var urls []string
	for _, f := range r.ResultFiles.ResultFile {
		if strings.Contains(f.URL, "pts_csv") {
			urls = append(urls, f.URL)
		}
	}
	return urls
}

// Client talks to the ODE REST interface.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// NewClient returns a client for the given livegds endpoint. An empty baseURL
// selects DefaultBaseURL; a nil logger is replaced with a no-op one.
func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Submit runs a product search. For synchronous queries the returned Results
// carries the result files directly; for asynchronous queries it carries the
// job id to poll with JobStatus.
func (c *Client) Submit(ctx context.Context, q Query) (*Results, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	c.log.Info("submitting ODE query",
		zap.String("target", string(q.Target)),
		zap.Bool("async", q.Async))
	return c.get(ctx, q.params())
}

// JobStatus fetches the current state of an asynchronous job.
func (c *Client) JobStatus(ctx context.Context, jobID string) (*Results, error) {
	if jobID == "" {
		return nil, fmt.Errorf("empty job id")
	}
	v := url.Values{}
	v.Set("jobid", jobID)
	v.Set("output", "json")
	return c.get(ctx, v)
}

// WaitForJob polls an asynchronous job until it finishes or ctx is done.
func (c *Client) WaitForJob(ctx context.Context, jobID string, interval time.Duration) (*Results, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		res, err := c.JobStatus(ctx, jobID)
		if err != nil {
			return nil, err
		}
		if res.Finished() {
			return res, nil
		}
		c.log.Info("job still running",
			zap.String("jobid", jobID),
			zap.String("state", res.State()))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// DownloadPointFiles fetches the pts_csv products of a finished result set
// into dir, returning the paths written. Files are fetched concurrently.
func (c *Client) DownloadPointFiles(ctx context.Context, res *Results, dir string) ([]string, error) {
	urls := res.PointFiles()
	if len(urls) == 0 {
		return nil, fmt.Errorf("result set contains no point CSV files")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	paths := make([]string, len(urls))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(downloadConcurrency)
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			dest := filepath.Join(dir, path.Base(u))
			if err := c.download(ctx, u, dest); err != nil {
				return fmt.Errorf("download %s: %w", u, err)
			}
			paths[i] = dest
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func (c *Client) download(ctx context.Context, rawURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return err
	}
	c.log.Info("downloaded result file", zap.String("path", dest))
	return f.Close()
}

func (c *Client) get(ctx context.Context, params url.Values) (*Results, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ODE returned %s", resp.Status)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding ODE response: %w", err)
	}
	res := env.GDSResults
	if res.Error != "" {
		return nil, fmt.Errorf("ODE reported an error: %s", res.Error)
	}
	return &res, nil
}
