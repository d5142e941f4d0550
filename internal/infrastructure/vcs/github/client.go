package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/mutabay/readme-agent/internal/domain/models"
	"github.com/mutabay/readme-agent/internal/domain/ports"
)

var _ ports.CodeHost = (*Client)(nil)

// Narrow views over the go-github services, one per API area the client
// touches, so tests can swap them out.

type UsersService interface {
	Get(ctx context.Context, user string) (*github.User, *github.Response, error)
}

type RepositoriesService interface {
	ListByAuthenticatedUser(ctx context.Context, opts *github.RepositoryListByAuthenticatedUserOptions) ([]*github.Repository, *github.Response, error)
	Get(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error)
	ListLanguages(ctx context.Context, owner, repo string) (map[string]int, *github.Response, error)
	GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error)
	CreateFile(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentFileOptions) (*github.RepositoryContentResponse, *github.Response, error)
	UpdateFile(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentFileOptions) (*github.RepositoryContentResponse, *github.Response, error)
}

type GitService interface {
	GetRef(ctx context.Context, owner, repo, ref string) (*github.Reference, *github.Response, error)
	CreateRef(ctx context.Context, owner, repo string, ref github.CreateRef) (*github.Reference, *github.Response, error)
}

type PullRequestsService interface {
	Create(ctx context.Context, owner, repo string, pull *github.NewPullRequest) (*github.PullRequest, *github.Response, error)
}

// Client implements the code host port against the GitHub REST API.
type Client struct {
	users UsersService
	repos RepositoriesService
	git   GitService
	pulls PullRequestsService
}

func NewClient(token string) *Client {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	gh := github.NewClient(httpClient)
	return &Client{
		users: gh.Users,
		repos: gh.Repositories,
		git:   gh.Git,
		pulls: gh.PullRequests,
	}
}

// NewClientWithServices wires explicit service implementations, used by
// tests.
func NewClientWithServices(users UsersService, repos RepositoriesService, git GitService, pulls PullRequestsService) *Client {
	return &Client{users: users, repos: repos, git: git, pulls: pulls}
}

func (c *Client) GetAuthenticatedUser(ctx context.Context) (models.User, error) {
	user, _, err := c.users.Get(ctx, "")
	if err != nil {
		return models.User{}, fmt.Errorf("fetching authenticated user: %w", err)
	}

	return models.User{
		Login:        user.GetLogin(),
		Name:         user.GetName(),
		AvatarURL:    user.GetAvatarURL(),
		PublicRepos:  user.GetPublicRepos(),
		PrivateRepos: int(user.GetOwnedPrivateRepos()),
	}, nil
}

func (c *Client) ListRepositories(ctx context.Context) ([]models.RepoSummary, error) {
	opts := &github.RepositoryListByAuthenticatedUserOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var all []models.RepoSummary
	for {
		repos, resp, err := c.repos.ListByAuthenticatedUser(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("listing repositories: %w", err)
		}
		for _, r := range repos {
			all = append(all, toRepoSummary(r))
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

func (c *Client) GetRepository(ctx context.Context, fullName string) (models.RepoSummary, error) {
	owner, name, err := splitFullName(fullName)
	if err != nil {
		return models.RepoSummary{}, err
	}

	repo, _, err := c.repos.Get(ctx, owner, name)
	if err != nil {
		return models.RepoSummary{}, fmt.Errorf("fetching repository %s: %w", fullName, err)
	}
	return toRepoSummary(repo), nil
}

func (c *Client) GetLanguages(ctx context.Context, fullName string) (map[string]int, error) {
	owner, name, err := splitFullName(fullName)
	if err != nil {
		return nil, err
	}

	languages, _, err := c.repos.ListLanguages(ctx, owner, name)
	if err != nil {
		return nil, fmt.Errorf("fetching languages for %s: %w", fullName, err)
	}
	return languages, nil
}

func (c *Client) ListDirectory(ctx context.Context, fullName, path, branch string) ([]models.DirEntry, error) {
	owner, name, err := splitFullName(fullName)
	if err != nil {
		return nil, err
	}

	_, dirContent, _, err := c.repos.GetContents(ctx, owner, name, path, contentOpts(branch))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s in %s: %w", path, fullName, err)
	}

	entries := make([]models.DirEntry, 0, len(dirContent))
	for _, item := range dirContent {
		entries = append(entries, models.DirEntry{
			Name: item.GetName(),
			Path: item.GetPath(),
			Type: item.GetType(),
			Size: item.GetSize(),
		})
	}
	return entries, nil
}

func (c *Client) GetFileContent(ctx context.Context, fullName, path, branch string) (string, bool, error) {
	owner, name, err := splitFullName(fullName)
	if err != nil {
		return "", false, err
	}

	fileContent, _, _, err := c.repos.GetContents(ctx, owner, name, path, contentOpts(branch))
	if err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("fetching %s from %s: %w", path, fullName, err)
	}
	if fileContent == nil {
		return "", false, nil
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return "", false, fmt.Errorf("decoding %s from %s: %w", path, fullName, err)
	}
	return content, true, nil
}

func (c *Client) CommitFile(ctx context.Context, fullName, path, content, message, branch string) (models.CommitResult, error) {
	owner, name, err := splitFullName(fullName)
	if err != nil {
		return models.CommitResult{}, err
	}

	opts := &github.RepositoryContentFileOptions{
		Message: github.Ptr(message),
		Content: []byte(content),
	}
	if branch != "" {
		opts.Branch = github.Ptr(branch)
	}

	existing, _, _, err := c.repos.GetContents(ctx, owner, name, path, contentOpts(branch))
	if err != nil && !isNotFound(err) {
		return models.CommitResult{}, fmt.Errorf("checking %s in %s: %w", path, fullName, err)
	}

	action := "created"
	var resp *github.RepositoryContentResponse
	if existing != nil {
		action = "updated"
		opts.SHA = github.Ptr(existing.GetSHA())
		resp, _, err = c.repos.UpdateFile(ctx, owner, name, path, opts)
	} else {
		resp, _, err = c.repos.CreateFile(ctx, owner, name, path, opts)
	}
	if err != nil {
		return models.CommitResult{}, fmt.Errorf("committing %s to %s: %w", path, fullName, err)
	}

	return models.CommitResult{
		Action:    action,
		CommitSHA: resp.Commit.GetSHA(),
		CommitURL: resp.Commit.GetHTMLURL(),
	}, nil
}

func (c *Client) CreateBranch(ctx context.Context, fullName, branch, fromBranch string) error {
	owner, name, err := splitFullName(fullName)
	if err != nil {
		return err
	}

	base, _, err := c.git.GetRef(ctx, owner, name, "refs/heads/"+fromBranch)
	if err != nil {
		return fmt.Errorf("resolving branch %s in %s: %w", fromBranch, fullName, err)
	}

	_, _, err = c.git.CreateRef(ctx, owner, name, github.CreateRef{
		Ref: "refs/heads/" + branch,
		SHA: base.Object.GetSHA(),
	})
	if err != nil {
		return fmt.Errorf("creating branch %s in %s: %w", branch, fullName, err)
	}
	return nil
}

func (c *Client) CreatePullRequest(ctx context.Context, fullName, title, body, head, base string) (models.PullRequestInfo, error) {
	owner, name, err := splitFullName(fullName)
	if err != nil {
		return models.PullRequestInfo{}, err
	}

	pr, _, err := c.pulls.Create(ctx, owner, name, &github.NewPullRequest{
		Title: github.Ptr(title),
		Body:  github.Ptr(body),
		Head:  github.Ptr(head),
		Base:  github.Ptr(base),
	})
	if err != nil {
		return models.PullRequestInfo{}, fmt.Errorf("creating pull request in %s: %w", fullName, err)
	}

	return models.PullRequestInfo{
		Number: pr.GetNumber(),
		URL:    pr.GetHTMLURL(),
		State:  pr.GetState(),
	}, nil
}

func toRepoSummary(r *github.Repository) models.RepoSummary {
	return models.RepoSummary{
		Name:          r.GetName(),
		FullName:      r.GetFullName(),
		Description:   r.GetDescription(),
		Language:      r.GetLanguage(),
		Stars:         r.GetStargazersCount(),
		Forks:         r.GetForksCount(),
		UpdatedAt:     r.GetUpdatedAt().Time,
		HTMLURL:       r.GetHTMLURL(),
		DefaultBranch: r.GetDefaultBranch(),
		Topics:        r.Topics,
		Private:       r.GetPrivate(),
		Size:          r.GetSize(),
		OpenIssues:    r.GetOpenIssuesCount(),
	}
}

func contentOpts(branch string) *github.RepositoryContentGetOptions {
	if branch == "" {
		return nil
	}
	return &github.RepositoryContentGetOptions{Ref: branch}
}

func splitFullName(fullName string) (string, string, error) {
	parts := strings.SplitN(fullName, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository name %q, expected owner/name", fullName)
	}
	return parts[0], parts[1], nil
}

func isNotFound(err error) bool {
	var ghErr *github.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
}
