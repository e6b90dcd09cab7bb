// Package github is a small client for the read-only parts of the GitHub
// REST API that colab needs: repository languages, contributors, public
// profile email and repository visibility.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	gh "github.com/google/go-github/v66/github"
)

// ErrNotFound is wrapped by the APIError returned for 404 responses.
var ErrNotFound = errors.New("github: not found")

// MetadataClient is the set of calls the rest of the application makes.
type MetadataClient interface {
	Languages(ctx context.Context, repo string) ([]string, error)
	Contributors(ctx context.Context, repo string) ([]string, error)
	VerifyHandleOwnership(ctx context.Context, handle, email string, isOrg bool) (bool, error)
	RepositoryExists(ctx context.Context, repo string) (bool, error)
}

// Config represents the configuration for the GitHub client
type Config struct {
	// BaseURL is the base URL of the REST API
	BaseURL string
	// Token is sent as a bearer token when set
	Token string
	// HTTPClient is an optional custom HTTP client
	HTTPClient *http.Client
	// Timeout is the default request timeout
	Timeout time.Duration
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    "https://api.github.com",
		HTTPClient: http.DefaultClient,
		Timeout:    10 * time.Second,
	}
}

// Client is the GitHub REST client
type Client struct {
	api     *gh.Client
	timeout time.Duration
}

var _ MetadataClient = (*Client)(nil)

// NewClient creates a new client with the given configuration
func NewClient(config *Config) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	api := gh.NewClient(httpClient)
	if config.Token != "" {
		api = api.WithAuthToken(config.Token)
	}

	if config.BaseURL != "" {
		// the REST client resolves paths relative to BaseURL, which needs a trailing slash
		baseURL, err := url.Parse(strings.TrimRight(config.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", config.BaseURL, err)
		}
		api.BaseURL = baseURL
	}

	return &Client{
		api:     api,
		timeout: config.Timeout,
	}, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return ctx, func() {}
}

// Languages returns the languages GitHub detected in repo, sorted by name.
// A repository without detected languages yields an empty slice and no error.
func (c *Client) Languages(ctx context.Context, repo string) ([]string, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, _, err := c.api.Repositories.ListLanguages(ctx, owner, name)
	if err != nil {
		return nil, fmt.Errorf("fetching languages for %s: %w", repo, apiError(err))
	}

	languages := make([]string, 0, len(resp))
	for language := range resp {
		languages = append(languages, language)
	}
	sort.Strings(languages)

	return languages, nil
}

// Contributors returns the login of each contributor to repo, first page
// only. Anonymous contributors have no login and are left out.
func (c *Client) Contributors(ctx context.Context, repo string) ([]string, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	opts := &gh.ListContributorsOptions{ListOptions: gh.ListOptions{PerPage: 100}}
	contributors, _, err := c.api.Repositories.ListContributors(ctx, owner, name, opts)
	if err != nil {
		return nil, fmt.Errorf("fetching contributors for %s: %w", repo, apiError(err))
	}

	logins := make([]string, 0, len(contributors))
	for _, contrib := range contributors {
		if login := contrib.GetLogin(); login != "" {
			logins = append(logins, login)
		}
	}

	return logins, nil
}

// VerifyHandleOwnership reports whether the public email of the account
// (an organisation when isOrg is set, a user otherwise) equals email.
func (c *Client) VerifyHandleOwnership(ctx context.Context, handle, email string, isOrg bool) (bool, error) {
	if handle == "" || strings.Contains(handle, "/") {
		return false, fmt.Errorf("invalid account handle %q", handle)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var public string
	if isOrg {
		org, _, err := c.api.Organizations.Get(ctx, url.PathEscape(handle))
		if err != nil {
			return false, fmt.Errorf("fetching organisation %s: %w", handle, apiError(err))
		}
		public = org.GetEmail()
	} else {
		user, _, err := c.api.Users.Get(ctx, url.PathEscape(handle))
		if err != nil {
			return false, fmt.Errorf("fetching user %s: %w", handle, apiError(err))
		}
		public = user.GetEmail()
	}

	if public == "" {
		return false, nil
	}

	return strings.EqualFold(strings.TrimSpace(public), strings.TrimSpace(email)), nil
}

// RepositoryExists reports whether repo exists and is public. A missing
// repository is not an error.
func (c *Client) RepositoryExists(ctx context.Context, repo string) (bool, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return false, err
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	repository, _, err := c.api.Repositories.Get(ctx, owner, name)
	if err != nil {
		err = apiError(err)
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("fetching repository %s: %w", repo, err)
	}

	return !repository.GetPrivate(), nil
}

// splitRepo checks that repo looks like "owner/name".
func splitRepo(repo string) (string, string, error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid repository %q, expected owner/name", repo)
	}
	return owner, name, nil
}

// APIError is returned for non-2xx responses
type APIError struct {
	StatusCode  int
	Message     string
	RateLimited bool
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (Status: %d)", e.Message, e.StatusCode)
}

// Unwrap lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// apiError converts the REST client's typed errors into an APIError.
// Transport failures are returned unchanged.
func apiError(err error) error {
	var (
		rateErr  *gh.RateLimitError
		abuseErr *gh.AbuseRateLimitError
		respErr  *gh.ErrorResponse
	)

	switch {
	case errors.As(err, &rateErr):
		return newAPIError(rateErr.Response, rateErr.Message, true)
	case errors.As(err, &abuseErr):
		return newAPIError(abuseErr.Response, abuseErr.Message, true)
	case errors.As(err, &respErr):
		return newAPIError(respErr.Response, respErr.Message, false)
	}
	return err
}

func newAPIError(resp *http.Response, message string, rateLimited bool) *APIError {
	apiErr := &APIError{Message: message, RateLimited: rateLimited}
	if resp != nil {
		apiErr.StatusCode = resp.StatusCode
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("request failed with status code %d", apiErr.StatusCode)
	}
	return apiErr
}
