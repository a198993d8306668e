// Package gitignore fetches .gitignore templates from the GitHub API and
// lets the user pick one.
package gitignore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/google/go-github/v45/github"
	"golang.org/x/oauth2"
)

// ErrTemplateNotFound is returned by Write for an unknown template name.
var ErrTemplateNotFound = errors.New("gitignore template not found")

// Options configures a Service.
type Options struct {
	BaseURL    string // API root; empty uses api.github.com
	Token      string // optional; templates are public
	UserAgent  string
	HTTPClient *http.Client
	Logger     *slog.Logger
	Out        io.Writer // where the chooser prints; default os.Stdout
}

// Service lists and writes gitignore templates.
type Service struct {
	gh     *github.Client
	logger *slog.Logger
	out    io.Writer

	mu    sync.Mutex
	types []string // memoized for the process lifetime
}

// NewService builds a Service. ctx only carries the base HTTP client into
// the oauth2 transport.
func NewService(ctx context.Context, opts Options) (*Service, error) {
	httpClient := opts.HTTPClient
	if opts.Token != "" {
		if httpClient != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		}
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token, TokenType: "token"})
		httpClient = oauth2.NewClient(ctx, ts)
	}

	gh := github.NewClient(httpClient)
	if opts.BaseURL != "" {
		base, err := url.Parse(strings.TrimSuffix(opts.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parsing base url: %w", err)
		}
		gh.BaseURL = base
	}
	if opts.UserAgent != "" {
		gh.UserAgent = opts.UserAgent
	}

	s := &Service{gh: gh, logger: opts.Logger, out: opts.Out}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	return s, nil
}

// Types returns the available template names. The first successful result
// is cached; failures are not.
func (s *Service) Types(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.types) > 0 {
		return s.types, nil
	}

	types, _, err := s.gh.Gitignores.List(ctx)
	if err != nil {
		s.logger.Error("error fetching gitignore types", "err", err)
		return nil, fmt.Errorf("listing gitignore templates: %w", err)
	}
	s.logger.Debug("fetched gitignore types", "count", len(types))
	s.types = types
	return types, nil
}

// Write fetches the template called name and writes its source to path.
func (s *Service) Write(ctx context.Context, name, path string) error {
	tmpl, _, err := s.gh.Gitignores.Get(ctx, name)
	if err != nil {
		var ghErr *github.ErrorResponse
		if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%s: %w", name, ErrTemplateNotFound)
		}
		return fmt.Errorf("fetching gitignore template %s: %w", name, err)
	}
	if err := os.WriteFile(path, []byte(tmpl.GetSource()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
