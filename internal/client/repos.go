package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/go-github/v45/github"
)

var _ RepositoryService = (*Session)(nil)

// GetRepositories waits for readiness, lists /user/repos and partitions the
// result by whether the authenticated user owns each repository.
func (s *Session) GetRepositories(ctx context.Context) (*RepositoryListing, error) {
	if _, err := s.AwaitReady(ctx); err != nil {
		return nil, err
	}

	resp, err := s.MakeRequest(ctx, http.MethodGet, "/user/repos", nil)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, newAPIError(resp)
	}

	var repos []*github.Repository
	if err := json.Unmarshal(resp.Body, &repos); err != nil {
		return nil, fmt.Errorf("decoding repositories: %w", err)
	}

	return partition(repos, s.user.GetID()), nil
}

func partition(repos []*github.Repository, userID int64) *RepositoryListing {
	listing := &RepositoryListing{
		All:    make([]RepositorySummary, 0, len(repos)),
		Mine:   []RepositorySummary{},
		Others: []RepositorySummary{},
	}
	for _, r := range repos {
		summary := RepositorySummary{
			ID:   r.GetID(),
			Name: r.GetName(),
			Owner: Owner{
				ID:    r.GetOwner().GetID(),
				Login: r.GetOwner().GetLogin(),
			},
		}
		listing.All = append(listing.All, summary)
		if summary.Owner.ID == userID {
			listing.Mine = append(listing.Mine, summary)
		} else {
			listing.Others = append(listing.Others, summary)
		}
	}
	return listing
}

// CreateRepository waits for readiness and POSTs /user/repos. The raw
// response is returned for both success and validation failures.
func (s *Session) CreateRepository(ctx context.Context, req *CreateRepositoryRequest) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request body: %w", err)
	}

	if _, err := s.AwaitReady(ctx); err != nil {
		return nil, err
	}
	return s.MakeRequest(ctx, http.MethodPost, "/user/repos", body)
}
