// Package client provides the authenticated GitHub session used by every gita
// command: a one-shot readiness gate around the initial profile fetch, a raw
// request primitive, and the repository list/create operations built on it.
package client

import (
	"context"
)

// RepositoryService is the interface the gita CLI uses to talk to the
// hosting API. It is implemented by *Session.
type RepositoryService interface {
	// GetRepositories lists the authenticated user's repositories, split
	// into the ones they own and everything else they can see.
	GetRepositories(ctx context.Context) (*RepositoryListing, error)

	// CreateRepository creates a repository for the authenticated user and
	// returns the raw response so callers can branch on the status code.
	CreateRepository(ctx context.Context, req *CreateRepositoryRequest) (*Response, error)
}

// Response is the raw result of a request. Non-2xx statuses are reported
// here rather than as errors.
type Response struct {
	Body       []byte
	StatusCode int
}

// OK reports whether the response carries a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Err returns nil for a 2xx response and an *APIError otherwise.
func (r *Response) Err() error {
	if r.OK() {
		return nil
	}
	return newAPIError(r)
}

// Owner identifies the account that owns a repository.
type Owner struct {
	ID    int64  `json:"id"`
	Login string `json:"login,omitempty"`
}

// RepositorySummary is the minimal projection of a repository list entry.
type RepositorySummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Owner Owner  `json:"owner"`
}

// RepositoryListing is the response from GetRepositories.
// len(All) == len(Mine) + len(Others).
type RepositoryListing struct {
	All    []RepositorySummary `json:"all"`
	Mine   []RepositorySummary `json:"mine"`
	Others []RepositorySummary `json:"others"`
}

// CreateRepositoryRequest holds parameters for creating a repository. Field
// order is the wire order.
type CreateRepositoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Private     bool   `json:"private"`
}
