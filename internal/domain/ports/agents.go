package ports

import (
	"context"

	"github.com/mutabay/readme-agent/internal/domain/models"
)

// AnalyzerInput bundles everything the analyzer needs: repository
// metadata, the language byte counts, the root directory listing, and the
// pre-fetched contents of a bounded set of manifest and entry files.
// Fetching those files is the caller's job, not the analyzer's.
type AnalyzerInput struct {
	Repo         models.RepoSummary
	Owner        string
	Languages    map[string]int
	Structure    []models.DirEntry
	FileContents map[string]string
}

// Analyzer assembles the deterministic fact sheet and, best effort,
// augments it with LLM insight.
type Analyzer interface {
	Analyze(ctx context.Context, in AnalyzerInput) *models.RepositoryFacts
}

// Generator synthesizes a README document from a fact sheet.
type Generator interface {
	Generate(ctx context.Context, facts *models.RepositoryFacts) models.GeneratedDocument
}

// Reviewer runs the corrective second pass and scores documents.
type Reviewer interface {
	Review(ctx context.Context, doc models.GeneratedDocument, facts *models.RepositoryFacts) models.GeneratedDocument
	Score(content string) models.QualityReport
}
