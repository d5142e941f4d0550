package services

import (
	"context"
	"strings"

	"github.com/mutabay/readme-agent/internal/domain/models"
	"github.com/mutabay/readme-agent/internal/domain/ports"
	"github.com/mutabay/readme-agent/internal/logger"
)

// ReviewerService runs the corrective second pass over freshly generated
// READMEs and computes the deterministic quality score. The review is
// fail-open: if the model is unreachable or returns nothing usable, the
// document passes through unchanged.
type ReviewerService struct {
	ai ports.AIProvider
	th Thresholds
}

func NewReviewerService(ai ports.AIProvider, th Thresholds) *ReviewerService {
	return &ReviewerService{ai: ai, th: th}
}

func (s *ReviewerService) Review(ctx context.Context, doc models.GeneratedDocument, facts *models.RepositoryFacts) models.GeneratedDocument {
	prompt := buildReviewPrompt(doc.Content, facts, s.th)

	raw, err := s.ai.Generate(ctx, prompt, ports.GenerateOptions{Temperature: 0.3, MaxTokens: 2048})
	if err != nil {
		logger.Warn(ctx, "review pass failed, keeping original", "repo", facts.FullName, "error", err)
		return doc
	}

	improved := stripCodeFences(raw)
	if strings.TrimSpace(improved) == "" {
		logger.Warn(ctx, "review pass returned empty content, keeping original", "repo", facts.FullName)
		return doc
	}

	return models.GeneratedDocument{Content: improved, Signal: models.SignalLLMReviewed}
}

// Score rates a README on a 0-100 scale from purely textual features.
// The weights favor actionable sections (installation, usage) over polish.
func (s *ReviewerService) Score(content string) models.QualityReport {
	lowered := strings.ToLower(content)

	report := models.QualityReport{
		HasDescription:  len(content) > 200,
		HasInstallation: strings.Contains(lowered, "install"),
		HasUsage:        strings.Contains(lowered, "usage"),
		HasCodeBlocks:   strings.Contains(content, "```"),
		HasBadges:       strings.Contains(content, "shields.io") || strings.Contains(content, "!["),
		WordCount:       len(strings.Fields(content)),
		SectionCount:    strings.Count(content, "## "),
	}
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "# ") {
			report.HasTitle = true
			break
		}
	}

	score := 0
	if report.HasTitle {
		score += 20
	}
	if report.HasDescription {
		score += 15
	}
	if report.HasInstallation {
		score += 20
	}
	if report.HasUsage {
		score += 15
	}
	if report.HasCodeBlocks {
		score += 15
	}
	if report.HasBadges {
		score += 5
	}
	sectionPoints := report.SectionCount * 2
	if sectionPoints > 10 {
		sectionPoints = 10
	}
	score += sectionPoints

	report.Score = score
	return report
}
