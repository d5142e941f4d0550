package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mutabay/readme-agent/internal/domain/models"
	"github.com/mutabay/readme-agent/internal/domain/ports"
)

// Mocks for the port interfaces, shared by the service and CLI tests.

type MockAIProvider struct {
	mock.Mock
}

func (m *MockAIProvider) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockAIProvider) Generate(ctx context.Context, prompt string, opts ports.GenerateOptions) (string, error) {
	args := m.Called(ctx, prompt, opts)
	return args.String(0), args.Error(1)
}

func (m *MockAIProvider) TestConnection(ctx context.Context) models.ConnectionStatus {
	args := m.Called(ctx)
	return args.Get(0).(models.ConnectionStatus)
}

type MockCodeHost struct {
	mock.Mock
}

func (m *MockCodeHost) GetAuthenticatedUser(ctx context.Context) (models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockCodeHost) ListRepositories(ctx context.Context) ([]models.RepoSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RepoSummary), args.Error(1)
}

func (m *MockCodeHost) GetRepository(ctx context.Context, fullName string) (models.RepoSummary, error) {
	args := m.Called(ctx, fullName)
	return args.Get(0).(models.RepoSummary), args.Error(1)
}

func (m *MockCodeHost) GetLanguages(ctx context.Context, fullName string) (map[string]int, error) {
	args := m.Called(ctx, fullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockCodeHost) ListDirectory(ctx context.Context, fullName, path, branch string) ([]models.DirEntry, error) {
	args := m.Called(ctx, fullName, path, branch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DirEntry), args.Error(1)
}

func (m *MockCodeHost) GetFileContent(ctx context.Context, fullName, path, branch string) (string, bool, error) {
	args := m.Called(ctx, fullName, path, branch)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockCodeHost) CommitFile(ctx context.Context, fullName, path, content, message, branch string) (models.CommitResult, error) {
	args := m.Called(ctx, fullName, path, content, message, branch)
	return args.Get(0).(models.CommitResult), args.Error(1)
}

func (m *MockCodeHost) CreateBranch(ctx context.Context, fullName, branch, fromBranch string) error {
	args := m.Called(ctx, fullName, branch, fromBranch)
	return args.Error(0)
}

func (m *MockCodeHost) CreatePullRequest(ctx context.Context, fullName, title, body, head, base string) (models.PullRequestInfo, error) {
	args := m.Called(ctx, fullName, title, body, head, base)
	return args.Get(0).(models.PullRequestInfo), args.Error(1)
}

type MockBackupStore struct {
	mock.Mock
}

func (m *MockBackupStore) Save(repoFullName, content string) (models.BackupRecord, error) {
	args := m.Called(repoFullName, content)
	return args.Get(0).(models.BackupRecord), args.Error(1)
}

func (m *MockBackupStore) ListAll() ([]models.BackupRecord, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BackupRecord), args.Error(1)
}

func (m *MockBackupStore) ListForRepo(repoFullName string) ([]models.BackupRecord, error) {
	args := m.Called(repoFullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BackupRecord), args.Error(1)
}

func (m *MockBackupStore) Read(id string) (models.BackupRecord, bool, error) {
	args := m.Called(id)
	return args.Get(0).(models.BackupRecord), args.Bool(1), args.Error(2)
}

func (m *MockBackupStore) Delete(id string) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBackupStore) Cleanup(keepLast int) (int, error) {
	args := m.Called(keepLast)
	return args.Int(0), args.Error(1)
}

type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(ctx context.Context, in ports.AnalyzerInput) *models.RepositoryFacts {
	args := m.Called(ctx, in)
	return args.Get(0).(*models.RepositoryFacts)
}

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, facts *models.RepositoryFacts) models.GeneratedDocument {
	args := m.Called(ctx, facts)
	return args.Get(0).(models.GeneratedDocument)
}

type MockReviewer struct {
	mock.Mock
}

func (m *MockReviewer) Review(ctx context.Context, doc models.GeneratedDocument, facts *models.RepositoryFacts) models.GeneratedDocument {
	args := m.Called(ctx, doc, facts)
	return args.Get(0).(models.GeneratedDocument)
}

func (m *MockReviewer) Score(content string) models.QualityReport {
	args := m.Called(content)
	return args.Get(0).(models.QualityReport)
}
