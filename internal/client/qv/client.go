package qv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/14kear/qv-duplicate-report/internal/entity"
	"github.com/cenkalti/backoff/v4"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxBodySize = 64 << 20

var (
	ErrNetwork    = errors.New("network error")
	ErrHTTPStatus = errors.New("unexpected http status")
	ErrDecode     = errors.New("malformed election document")
)

// Client reads election documents from the quadratic voting API.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	retries       uint64
	retryInterval time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the default client built from the timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func NewClient(baseURL string, timeout time.Duration, retries uint64, retryInterval time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    &http.Client{Timeout: timeout},
		retries:       retries,
		retryInterval: retryInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type electionDocument struct {
	ID     string `json:"id"`
	Config struct {
		Name   string `json:"name"`
		Budget int    `json:"budget"`
	} `json:"config"`
	Candidates []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"candidates"`
	Votes []struct {
		Voter string `json:"voter"`
		ID    string `json:"id"`
		TTL   int64  `json:"ttl"`
		Votes []struct {
			Candidate int `json:"candidate"`
			Vote      int `json:"vote"`
		} `json:"votes"`
	} `json:"votes"`
}

// Election fetches one election. Transport failures and 5xx, 408 and 429
// responses are retried with exponential backoff; everything else fails
// on the first attempt.
func (c *Client) Election(ctx context.Context, electionID string) (entity.Election, error) {
	const op = "qv.Client.Election"

	endpoint := c.baseURL + "/election/" + url.PathEscape(electionID)

	var body []byte
	fetch := func() error {
		b, err := c.get(ctx, endpoint)
		if err != nil {
			return err
		}
		body = b
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryInterval
	if err := backoff.Retry(fetch, backoff.WithContext(backoff.WithMaxRetries(policy, c.retries), ctx)); err != nil {
		return entity.Election{}, fmt.Errorf("%s: %w", op, err)
	}

	election, err := decode(body)
	if err != nil {
		return entity.Election{}, fmt.Errorf("%s: %w", op, err)
	}

	return election, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(fmt.Errorf("%w: %w", ErrNetwork, err))
		}
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		statusErr := fmt.Errorf("%w: %d %s", ErrHTTPStatus, resp.StatusCode, http.StatusText(resp.StatusCode))
		if retryable(resp.StatusCode) {
			return nil, statusErr
		}
		return nil, backoff.Permanent(statusErr)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrNetwork, err)
	}

	return body, nil
}

func retryable(code int) bool {
	return code >= 500 || code == http.StatusRequestTimeout || code == http.StatusTooManyRequests
}

func decode(body []byte) (entity.Election, error) {
	var doc electionDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return entity.Election{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	election := entity.Election{
		ID: doc.ID,
		Config: entity.ElectionConfig{
			Name:   doc.Config.Name,
			Budget: doc.Config.Budget,
		},
		Candidates: make([]entity.Candidate, 0, len(doc.Candidates)),
		Votes:      make([]entity.VoteRecord, 0, len(doc.Votes)),
		Raw:        body,
	}

	for i, c := range doc.Candidates {
		election.Candidates = append(election.Candidates, entity.Candidate{
			Index:       i,
			Title:       c.Title,
			Description: c.Description,
		})
	}

	for _, v := range doc.Votes {
		record := entity.VoteRecord{
			VoterID: v.Voter,
			VoteID:  v.ID,
			TTL:     v.TTL,
			Votes:   make(map[int]int, len(v.Votes)),
		}
		for _, vd := range v.Votes {
			if vd.Vote < 0 {
				return entity.Election{}, fmt.Errorf("%w: vote %s has negative weight for candidate %d", ErrDecode, v.ID, vd.Candidate)
			}
			record.Votes[vd.Candidate] += vd.Vote
		}
		election.Votes = append(election.Votes, record)
	}

	return election, nil
}
