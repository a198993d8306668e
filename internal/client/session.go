package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/go-github/v45/github"
)

// Defaults applied by NewSession when the corresponding Options field is empty.
const (
	DefaultBaseURL   = "https://api.github.com"
	DefaultUserAgent = "randywick/gita"
)

// State is the lifecycle state of a Session.
type State int

const (
	StateInitializing State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrInitFailed is matched by the error AwaitReady returns when the initial
// profile fetch failed.
var ErrInitFailed = errors.New("session initialization failed")

// InitError carries the cause of a failed initialization.
type InitError struct {
	Err error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("%v: %v", ErrInitFailed, e.Err)
}

func (e *InitError) Unwrap() []error { return []error{ErrInitFailed, e.Err} }

// Options configures a Session.
type Options struct {
	BaseURL    string       // API root, default DefaultBaseURL
	Token      string       // API token; empty sends requests unauthenticated
	UserAgent  string       // default DefaultUserAgent
	HTTPClient *http.Client // default &http.Client{}
	Logger     *slog.Logger // default discards
}

// Session is one authenticated client lifecycle. It starts fetching the
// authenticated user's profile as soon as it is created; repository
// operations block until that fetch has settled.
type Session struct {
	baseURL    string
	token      string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger

	// done is closed exactly once, after state/user/err have been written.
	done  chan struct{}
	state State
	user  *github.User
	err   error
}

// NewSession creates a session and begins authenticating in the background.
// ctx bounds the initial profile request only.
func NewSession(ctx context.Context, opts Options) *Session {
	s := &Session{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		token:      opts.Token,
		userAgent:  opts.UserAgent,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		done:       make(chan struct{}),
	}
	if s.baseURL == "" {
		s.baseURL = DefaultBaseURL
	}
	if s.userAgent == "" {
		s.userAgent = DefaultUserAgent
	}
	if s.httpClient == nil {
		s.httpClient = &http.Client{}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	go s.init(ctx)
	return s
}

func (s *Session) init(ctx context.Context) {
	s.logger.Debug("requesting user")

	user, err := s.fetchUser(ctx)
	if err != nil {
		s.logger.Error("session init failed", "err", err)
		s.err = err
		s.state = StateFailed
		close(s.done)
		return
	}

	s.logger.Debug("user retrieved", "login", user.GetLogin(), "id", user.GetID())
	s.user = user
	s.state = StateReady
	close(s.done)
}

func (s *Session) fetchUser(ctx context.Context) (*github.User, error) {
	resp, err := s.MakeRequest(ctx, http.MethodGet, "/user", nil)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, newAPIError(resp)
	}
	var user github.User
	if err := json.Unmarshal(resp.Body, &user); err != nil {
		return nil, fmt.Errorf("decoding user: %w", err)
	}
	if user.GetID() == 0 {
		return nil, fmt.Errorf("decoding user: response has no id")
	}
	return &user, nil
}

// AwaitReady blocks until the session is ready and returns it. It returns an
// *InitError if initialization failed, or ctx.Err() if ctx ends first.
// Any number of goroutines may wait at once.
func (s *Session) AwaitReady(ctx context.Context) (*Session, error) {
	select {
	case <-s.done:
	default:
		s.logger.Debug("waiting for session")
		select {
		case <-s.done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.state != StateReady {
		return nil, &InitError{Err: s.err}
	}
	return s, nil
}

// OnReady calls fn on its own goroutine once the session is ready. fn is
// never called if initialization fails.
func (s *Session) OnReady(fn func(*Session)) {
	go func() {
		if _, err := s.AwaitReady(context.Background()); err == nil {
			fn(s)
		}
	}()
}

// State reports the current lifecycle state without blocking.
func (s *Session) State() State {
	select {
	case <-s.done:
		return s.state
	default:
		return StateInitializing
	}
}

// User returns the authenticated profile, or nil until the session is ready.
func (s *Session) User() *github.User {
	if s.State() != StateReady {
		return nil
	}
	return s.user
}

// Err returns the initialization error once the session has failed.
func (s *Session) Err() error {
	if s.State() != StateFailed {
		return nil
	}
	return s.err
}
