package ports

import (
	"context"

	"github.com/mutabay/readme-agent/internal/domain/models"
)

// CodeHost is the contract with the repository hosting API. It is a
// black box to the core: list repos, read files, write files, create
// branches and pull requests.
type CodeHost interface {
	GetAuthenticatedUser(ctx context.Context) (models.User, error)
	ListRepositories(ctx context.Context) ([]models.RepoSummary, error)
	GetRepository(ctx context.Context, fullName string) (models.RepoSummary, error)
	GetLanguages(ctx context.Context, fullName string) (map[string]int, error)
	ListDirectory(ctx context.Context, fullName, path, branch string) ([]models.DirEntry, error)

	// GetFileContent returns the decoded file content and whether the file
	// exists. A missing file is not an error.
	GetFileContent(ctx context.Context, fullName, path, branch string) (string, bool, error)

	// CommitFile creates the file or updates it in place when it already
	// exists at the given path.
	CommitFile(ctx context.Context, fullName, path, content, message, branch string) (models.CommitResult, error)
	CreateBranch(ctx context.Context, fullName, branch, fromBranch string) error
	CreatePullRequest(ctx context.Context, fullName, title, body, head, base string) (models.PullRequestInfo, error)
}
