package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/mutabay/readme-agent/internal/domain/models"
	"github.com/mutabay/readme-agent/internal/domain/ports"
	"github.com/mutabay/readme-agent/internal/logger"
)

// filesToFetch is the bounded set of files read from each repository root.
// Manifests feed the dependency detector, entry files feed the insight
// prompt, README.md feeds the keep-or-regenerate decision.
var filesToFetch = []string{
	"README.md",
	"requirements.txt",
	"package.json",
	"pyproject.toml",
	"Gemfile",
	"Cargo.toml",
	"app.py",
	"main.py",
	"index.js",
	"main.go",
}

// PipelineService orchestrates one run: analyze, back up, generate, review
// and score each selected repository. Repositories are processed
// sequentially and failures are isolated, one bad repo never aborts the
// run.
type PipelineService struct {
	host      ports.CodeHost
	backups   ports.BackupStore
	analyzer  ports.Analyzer
	generator ports.Generator
	reviewer  ports.Reviewer
}

func NewPipelineService(host ports.CodeHost, backups ports.BackupStore, analyzer ports.Analyzer, generator ports.Generator, reviewer ports.Reviewer) *PipelineService {
	return &PipelineService{
		host:      host,
		backups:   backups,
		analyzer:  analyzer,
		generator: generator,
		reviewer:  reviewer,
	}
}

// Run processes the selected repositories (owner/name) in order and
// returns exactly one result per repository.
func (s *PipelineService) Run(ctx context.Context, selected []string) []models.RepoResult {
	results := make([]models.RepoResult, 0, len(selected))
	for _, fullName := range selected {
		logger.Info(ctx, "processing repository", "repo", fullName)

		result, err := s.processRepo(ctx, fullName)
		if err != nil {
			logger.Error(ctx, "repository failed", err, "repo", fullName)
			results = append(results, models.RepoResult{RepoName: fullName, Err: err})
			continue
		}
		results = append(results, result)
	}
	return results
}

func (s *PipelineService) processRepo(ctx context.Context, fullName string) (models.RepoResult, error) {
	repo, err := s.host.GetRepository(ctx, fullName)
	if err != nil {
		return models.RepoResult{}, fmt.Errorf("fetching repository %s: %w", fullName, err)
	}

	branch := repo.DefaultBranch

	languages, err := s.host.GetLanguages(ctx, fullName)
	if err != nil {
		logger.Warn(ctx, "language stats unavailable", "repo", fullName, "error", err)
		languages = nil
	}

	structure, err := s.host.ListDirectory(ctx, fullName, "", branch)
	if err != nil {
		logger.Warn(ctx, "directory listing unavailable", "repo", fullName, "error", err)
		structure = nil
	}

	fileContents := s.fetchFiles(ctx, fullName, branch, structure)

	var backup *models.BackupRecord
	if readme, ok := fileContents["README.md"]; ok && strings.TrimSpace(readme) != "" {
		if rec, err := s.backups.Save(fullName, readme); err != nil {
			logger.Warn(ctx, "backup failed", "repo", fullName, "error", err)
		} else {
			backup = &rec
		}
	}

	facts := s.analyzer.Analyze(ctx, ports.AnalyzerInput{
		Repo:         repo,
		Owner:        ownerOf(fullName),
		Languages:    languages,
		Structure:    structure,
		FileContents: fileContents,
	})

	doc := s.generator.Generate(ctx, facts)
	if doc.Signal == models.SignalLLMFresh {
		doc = s.reviewer.Review(ctx, doc, facts)
	}
	report := s.reviewer.Score(doc.Content)

	logger.Info(ctx, "repository done",
		"repo", fullName, "signal", string(doc.Signal), "score", report.Score)

	return models.RepoResult{
		RepoName:     fullName,
		Success:      true,
		Readme:       doc.Content,
		Signal:       doc.Signal,
		QualityScore: report.Score,
		Backup:       backup,
	}, nil
}

// fetchFiles reads the bounded file set, skipping files the root listing
// does not mention. Individual fetch errors are tolerated.
func (s *PipelineService) fetchFiles(ctx context.Context, fullName, branch string, structure []models.DirEntry) map[string]string {
	present := make(map[string]bool, len(structure))
	for _, e := range structure {
		if !e.IsDir() {
			present[e.Name] = true
		}
	}

	contents := make(map[string]string)
	for _, name := range filesToFetch {
		if len(structure) > 0 && !present[name] {
			continue
		}
		content, ok, err := s.host.GetFileContent(ctx, fullName, name, branch)
		if err != nil {
			logger.Debug(ctx, "file fetch failed", "repo", fullName, "file", name, "error", err)
			continue
		}
		if ok {
			contents[name] = content
		}
	}
	return contents
}

func ownerOf(fullName string) string {
	if i := strings.Index(fullName, "/"); i > 0 {
		return fullName[:i]
	}
	return ""
}
