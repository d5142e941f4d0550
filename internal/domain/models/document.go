package models

// QualitySignal records which code path produced the final document.
type QualitySignal string

const (
	// SignalLLMFresh marks content straight from the generation pass.
	SignalLLMFresh QualitySignal = "llm-fresh"
	// SignalLLMReviewed marks content that went through the review pass.
	SignalLLMReviewed QualitySignal = "llm-reviewed"
	// SignalFallbackTemplate marks the deterministic template document.
	SignalFallbackTemplate QualitySignal = "fallback-template"
	// SignalExistingKept marks a pre-existing README returned verbatim.
	SignalExistingKept QualitySignal = "existing-kept"
)

// GeneratedDocument is the final README text plus its provenance tag.
type GeneratedDocument struct {
	Content string
	Signal  QualitySignal
}

// QualityReport is the deterministic, non-LLM quality breakdown of a
// document. The score is advisory telemetry, not a gate.
type QualityReport struct {
	HasTitle        bool
	HasDescription  bool
	HasInstallation bool
	HasUsage        bool
	HasCodeBlocks   bool
	HasBadges       bool
	WordCount       int
	SectionCount    int
	Score           int
}
