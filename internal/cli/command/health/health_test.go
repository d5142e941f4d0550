package health

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

type MockUserFetcher struct {
	mock.Mock
}

func (m *MockUserFetcher) GetAuthenticatedUser(ctx context.Context) (models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.User), args.Error(1)
}

func setupTestEnv(t *testing.T) (*config.Config, *i18n.Translations) {
	t.Helper()
	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)
	return &config.Config{Language: "en"}, translations
}

func TestHealthAllGood(t *testing.T) {
	cfg, translations := setupTestEnv(t)
	provider := new(services.MockAIProvider)
	host := new(MockUserFetcher)

	provider.On("TestConnection", mock.Anything).Return(models.ConnectionStatus{
		Connected: true, Provider: "ollama", Model: "llama3.1:8b", Models: []string{"llama3.1:8b"},
	})
	host.On("GetAuthenticatedUser", mock.Anything).Return(models.User{Login: "alice"}, nil)

	factory := NewCommandFactory(provider, host)
	cmd := factory.CreateCommand(translations, cfg)

	err := cmd.Run(context.Background(), []string{"health"})
	assert.NoError(t, err)
}

func TestHealthProviderDown(t *testing.T) {
	cfg, translations := setupTestEnv(t)
	provider := new(services.MockAIProvider)
	host := new(MockUserFetcher)

	provider.On("TestConnection", mock.Anything).Return(models.ConnectionStatus{
		Connected: false, Provider: "ollama", Model: "llama3.1:8b", Error: "connection refused",
	})
	host.On("GetAuthenticatedUser", mock.Anything).Return(models.User{Login: "alice"}, nil)

	factory := NewCommandFactory(provider, host)
	cmd := factory.CreateCommand(translations, cfg)

	err := cmd.Run(context.Background(), []string{"health"})
	assert.Error(t, err)
}

func TestHealthGitHubDown(t *testing.T) {
	cfg, translations := setupTestEnv(t)
	provider := new(services.MockAIProvider)
	host := new(MockUserFetcher)

	provider.On("TestConnection", mock.Anything).Return(models.ConnectionStatus{
		Connected: true, Provider: "ollama", Model: "llama3.1:8b",
	})
	host.On("GetAuthenticatedUser", mock.Anything).Return(models.User{}, assert.AnError)

	factory := NewCommandFactory(provider, host)
	cmd := factory.CreateCommand(translations, cfg)

	err := cmd.Run(context.Background(), []string{"health"})
	assert.Error(t, err)
}
