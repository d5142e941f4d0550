package repos

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mutabay/readme-agent/internal/config"
	"github.com/mutabay/readme-agent/internal/domain/models"
	"github.com/mutabay/readme-agent/internal/i18n"
	"github.com/mutabay/readme-agent/internal/services"
)

type MockDiscovery struct {
	mock.Mock
}

func (m *MockDiscovery) User(ctx context.Context) (models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockDiscovery) ListRepositories(ctx context.Context, filter services.RepoFilter) ([]models.RepoSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RepoSummary), args.Error(1)
}

func setupTestEnv(t *testing.T) (*config.Config, *i18n.Translations) {
	t.Helper()
	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)
	return &config.Config{Language: "en"}, translations
}

func TestReposListsWithFilters(t *testing.T) {
	cfg, translations := setupTestEnv(t)
	discovery := new(MockDiscovery)

	discovery.On("User", mock.Anything).Return(models.User{Login: "alice"}, nil)
	discovery.On("ListRepositories", mock.Anything, services.RepoFilter{
		Language: "go", Sort: "stars", Limit: 5,
	}).Return([]models.RepoSummary{
		{Name: "proj", FullName: "alice/proj", Language: "Go", Stars: 3, UpdatedAt: time.Now()},
	}, nil)

	factory := NewCommandFactory(discovery)
	cmd := factory.CreateCommand(translations, cfg)

	err := cmd.Run(context.Background(), []string{"repos", "--language", "go", "--sort", "stars", "--limit", "5"})

	require.NoError(t, err)
	discovery.AssertExpectations(t)
}

func TestReposHandlesEmptyResult(t *testing.T) {
	cfg, translations := setupTestEnv(t)
	discovery := new(MockDiscovery)

	discovery.On("User", mock.Anything).Return(models.User{Login: "alice"}, nil)
	discovery.On("ListRepositories", mock.Anything, mock.Anything).Return([]models.RepoSummary{}, nil)

	factory := NewCommandFactory(discovery)
	cmd := factory.CreateCommand(translations, cfg)

	err := cmd.Run(context.Background(), []string{"repos"})
	assert.NoError(t, err)
}

func TestReposFailsWithoutConnection(t *testing.T) {
	cfg, translations := setupTestEnv(t)
	discovery := new(MockDiscovery)

	discovery.On("User", mock.Anything).Return(models.User{}, assert.AnError)

	factory := NewCommandFactory(discovery)
	cmd := factory.CreateCommand(translations, cfg)

	err := cmd.Run(context.Background(), []string{"repos"})
	assert.Error(t, err)
}
