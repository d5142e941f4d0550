package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mutabay/readme-agent/internal/domain/models"
	"github.com/mutabay/readme-agent/internal/domain/ports"
	"github.com/mutabay/readme-agent/internal/logger"
)

// PublishResult describes what publishing a README actually did: the
// commit, the branch it landed on, and the pull request when one was
// opened.
type PublishResult struct {
	Commit models.CommitResult
	Branch string
	PR     *models.PullRequestInfo
}

// PublisherService writes a README back to the code host, either as a
// direct commit to the default branch or through a fresh branch plus pull
// request.
type PublisherService struct {
	host         ports.CodeHost
	branchPrefix string
	now          func() time.Time
}

func NewPublisherService(host ports.CodeHost, branchPrefix string) *PublisherService {
	return &PublisherService{host: host, branchPrefix: branchPrefix, now: time.Now}
}

// Publish commits content as README.md. With viaPR a timestamped branch is
// created from the default branch and a pull request is opened.
func (s *PublisherService) Publish(ctx context.Context, fullName, content, message string, viaPR bool) (PublishResult, error) {
	repo, err := s.host.GetRepository(ctx, fullName)
	if err != nil {
		return PublishResult{}, fmt.Errorf("fetching repository %s: %w", fullName, err)
	}
	base := repo.DefaultBranch

	if !viaPR {
		commit, err := s.host.CommitFile(ctx, fullName, "README.md", content, message, base)
		if err != nil {
			return PublishResult{}, fmt.Errorf("committing README to %s: %w", fullName, err)
		}
		logger.Info(ctx, "README committed", "repo", fullName, "branch", base, "action", commit.Action)
		return PublishResult{Commit: commit, Branch: base}, nil
	}

	branch := fmt.Sprintf("%s-%s", s.branchPrefix, s.now().UTC().Format("20060102-150405"))
	if err := s.host.CreateBranch(ctx, fullName, branch, base); err != nil {
		return PublishResult{}, fmt.Errorf("creating branch %s: %w", branch, err)
	}

	commit, err := s.host.CommitFile(ctx, fullName, "README.md", content, message, branch)
	if err != nil {
		return PublishResult{}, fmt.Errorf("committing README to %s: %w", branch, err)
	}

	pr, err := s.host.CreatePullRequest(ctx, fullName,
		"docs: update README",
		"Automated README refresh. Review the generated content before merging.",
		branch, base)
	if err != nil {
		return PublishResult{}, fmt.Errorf("opening pull request for %s: %w", fullName, err)
	}

	logger.Info(ctx, "pull request opened", "repo", fullName, "branch", branch, "pr", pr.Number)
	return PublishResult{Commit: commit, Branch: branch, PR: &pr}, nil
}
