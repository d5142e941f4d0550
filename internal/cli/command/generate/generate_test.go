package generate

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mutabay/readme-agent/internal/config"
	"github.com/mutabay/readme-agent/internal/domain/models"
	"github.com/mutabay/readme-agent/internal/i18n"
	"github.com/mutabay/readme-agent/internal/services"
)

type MockPipeline struct {
	mock.Mock
}

func (m *MockPipeline) Run(ctx context.Context, selected []string) []models.RepoResult {
	args := m.Called(ctx, selected)
	return args.Get(0).([]models.RepoResult)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, fullName, content, message string, viaPR bool) (services.PublishResult, error) {
	args := m.Called(ctx, fullName, content, message, viaPR)
	return args.Get(0).(services.PublishResult), args.Error(1)
}

func setupTestEnv(t *testing.T) (*config.Config, *i18n.Translations) {
	t.Helper()
	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)
	return &config.Config{Language: "en"}, translations
}

func TestGenerateRequiresRepos(t *testing.T) {
	cfg, translations := setupTestEnv(t)
	factory := NewCommandFactory(new(MockPipeline), new(MockPublisher))
	cmd := factory.CreateCommand(translations, cfg)

	err := cmd.Run(context.Background(), []string{"generate"})
	assert.Error(t, err)
}

func TestGenerateRejectsBareRepoName(t *testing.T) {
	cfg, translations := setupTestEnv(t)
	factory := NewCommandFactory(new(MockPipeline), new(MockPublisher))
	cmd := factory.CreateCommand(translations, cfg)

	err := cmd.Run(context.Background(), []string{"generate", "--repo", "just-a-name"})
	assert.Error(t, err)
}

func TestGenerateRejectsCommitWithPR(t *testing.T) {
	cfg, translations := setupTestEnv(t)
	factory := NewCommandFactory(new(MockPipeline), new(MockPublisher))
	cmd := factory.CreateCommand(translations, cfg)

	err := cmd.Run(context.Background(), []string{"generate", "--repo", "alice/proj", "--commit", "--pr"})
	assert.Error(t, err)
}

func TestGeneratePreviewDoesNotPublish(t *testing.T) {
	cfg, translations := setupTestEnv(t)
	pipeline := new(MockPipeline)
	publisher := new(MockPublisher)

	pipeline.On("Run", mock.Anything, []string{"alice/proj"}).Return([]models.RepoResult{
		{RepoName: "alice/proj", Success: true, Readme: "# proj", Signal: models.SignalLLMReviewed, QualityScore: 80},
	})

	factory := NewCommandFactory(pipeline, publisher)
	cmd := factory.CreateCommand(translations, cfg)

	err := cmd.Run(context.Background(), []string{"generate", "--repo", "alice/proj"})

	require.NoError(t, err)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateCommitsWhenAsked(t *testing.T) {
	cfg, translations := setupTestEnv(t)
	pipeline := new(MockPipeline)
	publisher := new(MockPublisher)

	pipeline.On("Run", mock.Anything, []string{"alice/proj"}).Return([]models.RepoResult{
		{RepoName: "alice/proj", Success: true, Readme: "# proj", Signal: models.SignalLLMReviewed, QualityScore: 80},
	})
	publisher.On("Publish", mock.Anything, "alice/proj", "# proj", "docs: update README.md", false).
		Return(services.PublishResult{
			Commit: models.CommitResult{Action: "updated"},
			Branch: "main",
		}, nil)

	factory := NewCommandFactory(pipeline, publisher)
	cmd := factory.CreateCommand(translations, cfg)

	err := cmd.Run(context.Background(), []string{"generate", "--repo", "alice/proj", "--commit"})

	require.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestGenerateOpensPullRequest(t *testing.T) {
	cfg, translations := setupTestEnv(t)
	pipeline := new(MockPipeline)
	publisher := new(MockPublisher)

	pipeline.On("Run", mock.Anything, []string{"alice/proj"}).Return([]models.RepoResult{
		{RepoName: "alice/proj", Success: true, Readme: "# proj", Signal: models.SignalFallbackTemplate, QualityScore: 40},
	})
	publisher.On("Publish", mock.Anything, "alice/proj", "# proj", "docs: update README.md", true).
		Return(services.PublishResult{
			Commit: models.CommitResult{Action: "created"},
			Branch: "readme-update-20260301-120000",
			PR:     &models.PullRequestInfo{Number: 3, URL: "https://github.com/alice/proj/pull/3"},
		}, nil)

	factory := NewCommandFactory(pipeline, publisher)
	cmd := factory.CreateCommand(translations, cfg)

	err := cmd.Run(context.Background(), []string{"generate", "--repo", "alice/proj", "--pr"})

	require.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestGenerateFailsWhenNothingSucceeded(t *testing.T) {
	cfg, translations := setupTestEnv(t)
	pipeline := new(MockPipeline)

	pipeline.On("Run", mock.Anything, []string{"alice/proj"}).Return([]models.RepoResult{
		{RepoName: "alice/proj", Err: fmt.Errorf("404")},
	})

	factory := NewCommandFactory(pipeline, new(MockPublisher))
	cmd := factory.CreateCommand(translations, cfg)

	err := cmd.Run(context.Background(), []string{"generate", "--repo", "alice/proj"})
	assert.Error(t, err)
}
