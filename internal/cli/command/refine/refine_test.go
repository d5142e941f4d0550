package refine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mutabay/readme-agent/internal/config"
	"github.com/mutabay/readme-agent/internal/domain/models"
	"github.com/mutabay/readme-agent/internal/i18n"
	"github.com/mutabay/readme-agent/internal/services"
)

type MockHost struct {
	mock.Mock
}

func (m *MockHost) GetFileContent(ctx context.Context, fullName, path, branch string) (string, bool, error) {
	args := m.Called(ctx, fullName, path, branch)
	return args.String(0), args.Bool(1), args.Error(2)
}

type MockRefiner struct {
	mock.Mock
}

func (m *MockRefiner) Refine(ctx context.Context, currentReadme, feedback string) (string, error) {
	args := m.Called(ctx, currentReadme, feedback)
	return args.String(0), args.Error(1)
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

func TestRefinePreview(t *testing.T) {
	cfg, translations := setupTestEnv(t)
	host := new(MockHost)
	refiner := new(MockRefiner)
	publisher := new(MockPublisher)

	host.On("GetFileContent", mock.Anything, "alice/proj", "README.md", "").
		Return("# proj", true, nil)
	refiner.On("Refine", mock.Anything, "# proj", "add badges").
		Return("# proj\n\nWith badges.", nil)

	factory := NewCommandFactory(host, refiner, publisher)
	cmd := factory.CreateCommand(translations, cfg)

	err := cmd.Run(context.Background(), []string{"refine", "--repo", "alice/proj", "--feedback", "add badges"})

	require.NoError(t, err)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRefineCommits(t *testing.T) {
	cfg, translations := setupTestEnv(t)
	host := new(MockHost)
	refiner := new(MockRefiner)
	publisher := new(MockPublisher)

	host.On("GetFileContent", mock.Anything, "alice/proj", "README.md", "").
		Return("# proj", true, nil)
	refiner.On("Refine", mock.Anything, "# proj", "shorter").
		Return("# proj, short", nil)
	publisher.On("Publish", mock.Anything, "alice/proj", "# proj, short", "docs: refine README.md", false).
		Return(services.PublishResult{
			Commit: models.CommitResult{Action: "updated"},
			Branch: "main",
		}, nil)

	factory := NewCommandFactory(host, refiner, publisher)
	cmd := factory.CreateCommand(translations, cfg)

	err := cmd.Run(context.Background(), []string{"refine", "--repo", "alice/proj", "--feedback", "shorter", "--commit"})

	require.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestRefineRequiresExistingReadme(t *testing.T) {
	cfg, translations := setupTestEnv(t)
	host := new(MockHost)

	host.On("GetFileContent", mock.Anything, "alice/proj", "README.md", "").
		Return("", false, nil)

	factory := NewCommandFactory(host, new(MockRefiner), new(MockPublisher))
	cmd := factory.CreateCommand(translations, cfg)

	err := cmd.Run(context.Background(), []string{"refine", "--repo", "alice/proj", "--feedback", "anything"})
	assert.Error(t, err)
}
