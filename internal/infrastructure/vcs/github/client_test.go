package github

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestClient() (*MockUsersService, *MockRepositoriesService, *MockGitService, *MockPullRequestsService, *Client) {
	users := new(MockUsersService)
	repos := new(MockRepositoriesService)
	git := new(MockGitService)
	pulls := new(MockPullRequestsService)
	return users, repos, git, pulls, NewClientWithServices(users, repos, git, pulls)
}

func notFoundErr() error {
	return &github.ErrorResponse{Response: &http.Response{StatusCode: http.StatusNotFound}}
}

func TestGetAuthenticatedUser(t *testing.T) {
	users, _, _, _, client := newTestClient()
	users.On("Get", mock.Anything, "").Return(&github.User{
		Login:       github.Ptr("alice"),
		Name:        github.Ptr("Alice"),
		PublicRepos: github.Ptr(12),
	}, nil, nil)

	user, err := client.GetAuthenticatedUser(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Login)
	assert.Equal(t, 12, user.PublicRepos)
}

func TestListRepositoriesPaginates(t *testing.T) {
	_, repos, _, _, client := newTestClient()

	first := []*github.Repository{{Name: github.Ptr("one"), FullName: github.Ptr("alice/one")}}
	second := []*github.Repository{{Name: github.Ptr("two"), FullName: github.Ptr("alice/two")}}

	repos.On("ListByAuthenticatedUser", mock.Anything, mock.MatchedBy(func(opts *github.RepositoryListByAuthenticatedUserOptions) bool {
		return opts.Page == 0
	})).Return(first, &github.Response{NextPage: 2}, nil).Once()
	repos.On("ListByAuthenticatedUser", mock.Anything, mock.MatchedBy(func(opts *github.RepositoryListByAuthenticatedUserOptions) bool {
		return opts.Page == 2
	})).Return(second, &github.Response{NextPage: 0}, nil).Once()

	all, err := client.ListRepositories(context.Background())

	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "alice/one", all[0].FullName)
	assert.Equal(t, "alice/two", all[1].FullName)
}

func TestGetRepositoryRejectsBadName(t *testing.T) {
	_, _, _, _, client := newTestClient()

	_, err := client.GetRepository(context.Background(), "not-a-full-name")
	assert.Error(t, err)
}

func TestGetFileContentMissingFile(t *testing.T) {
	_, repos, _, _, client := newTestClient()
	repos.On("GetContents", mock.Anything, "alice", "proj", "README.md", mock.Anything).
		Return(nil, nil, nil, notFoundErr())

	content, ok, err := client.GetFileContent(context.Background(), "alice/proj", "README.md", "main")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, content)
}

func TestGetFileContentDecodes(t *testing.T) {
	_, repos, _, _, client := newTestClient()
	repos.On("GetContents", mock.Anything, "alice", "proj", "README.md", mock.Anything).
		Return(&github.RepositoryContent{
			Content:  github.Ptr("# proj"),
			Encoding: github.Ptr(""),
		}, nil, nil, nil)

	content, ok, err := client.GetFileContent(context.Background(), "alice/proj", "README.md", "main")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "# proj", content)
}

func TestCommitFileCreatesWhenMissing(t *testing.T) {
	_, repos, _, _, client := newTestClient()
	repos.On("GetContents", mock.Anything, "alice", "proj", "README.md", mock.Anything).
		Return(nil, nil, nil, notFoundErr())
	repos.On("CreateFile", mock.Anything, "alice", "proj", "README.md", mock.MatchedBy(func(opts *github.RepositoryContentFileOptions) bool {
		return opts.SHA == nil && string(opts.Content) == "# new"
	})).Return(&github.RepositoryContentResponse{
		Commit: github.Commit{SHA: github.Ptr("abc")},
	}, nil, nil)

	result, err := client.CommitFile(context.Background(), "alice/proj", "README.md", "# new", "docs: add README", "main")

	require.NoError(t, err)
	assert.Equal(t, "created", result.Action)
	assert.Equal(t, "abc", result.CommitSHA)
}

func TestCommitFileUpdatesInPlace(t *testing.T) {
	_, repos, _, _, client := newTestClient()
	repos.On("GetContents", mock.Anything, "alice", "proj", "README.md", mock.Anything).
		Return(&github.RepositoryContent{SHA: github.Ptr("oldsha")}, nil, nil, nil)
	repos.On("UpdateFile", mock.Anything, "alice", "proj", "README.md", mock.MatchedBy(func(opts *github.RepositoryContentFileOptions) bool {
		return opts.GetSHA() == "oldsha"
	})).Return(&github.RepositoryContentResponse{
		Commit: github.Commit{SHA: github.Ptr("def")},
	}, nil, nil)

	result, err := client.CommitFile(context.Background(), "alice/proj", "README.md", "# updated", "docs: update README", "main")

	require.NoError(t, err)
	assert.Equal(t, "updated", result.Action)
	repos.AssertNotCalled(t, "CreateFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBranch(t *testing.T) {
	_, _, git, _, client := newTestClient()
	git.On("GetRef", mock.Anything, "alice", "proj", "refs/heads/main").
		Return(&github.Reference{Object: &github.GitObject{SHA: github.Ptr("headsha")}}, nil, nil)
	git.On("CreateRef", mock.Anything, "alice", "proj", mock.MatchedBy(func(ref github.CreateRef) bool {
		return ref.Ref == "refs/heads/readme-update-x" && ref.SHA == "headsha"
	})).Return(&github.Reference{}, nil, nil)

	err := client.CreateBranch(context.Background(), "alice/proj", "readme-update-x", "main")

	require.NoError(t, err)
	git.AssertExpectations(t)
}

func TestCreatePullRequest(t *testing.T) {
	_, _, _, pulls, client := newTestClient()
	pulls.On("Create", mock.Anything, "alice", "proj", mock.MatchedBy(func(pr *github.NewPullRequest) bool {
		return pr.GetHead() == "feature" && pr.GetBase() == "main"
	})).Return(&github.PullRequest{
		Number:  github.Ptr(42),
		HTMLURL: github.Ptr("https://github.com/alice/proj/pull/42"),
		State:   github.Ptr("open"),
	}, nil, nil)

	info, err := client.CreatePullRequest(context.Background(), "alice/proj", "title", "body", "feature", "main")

	require.NoError(t, err)
	assert.Equal(t, 42, info.Number)
	assert.Equal(t, "open", info.State)
}
