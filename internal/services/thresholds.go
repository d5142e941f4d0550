package services

// Thresholds collects the numeric limits of the analysis and generation
// pipeline in one place so tests can tighten them.
type Thresholds struct {
	// Dependency detection.
	MaxDependencies int // overall cap after merging every manifest
	MaxFileDeps     int // per requirements-style file
	MaxRuntimeDeps  int // package.json dependencies
	MaxDevDeps      int // package.json devDependencies

	// Generation and quality gate.
	MinKeepReadmeChars int // existing README at least this long can be kept as-is
	MinGeneratedChars  int // shorter LLM output is rejected
	MaxUnknownTokens   int // "unknown" occurrences that mark low quality
	MaxNATokens        int // "n/a" occurrences that mark low quality

	// Prompt rendering.
	MaxStructureItems  int // directory tree entries shown in prompts
	SnippetChars       int // code sample excerpt length
	ReadmeContextChars int // existing README excerpt in the insight prompt
	PromptReadmeChars  int // existing README excerpt in the generation prompt
	ReviewContentChars int // README excerpt handed to the reviewer
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxDependencies:    20,
		MaxFileDeps:        15,
		MaxRuntimeDeps:     10,
		MaxDevDeps:         5,
		MinKeepReadmeChars: 100,
		MinGeneratedChars:  50,
		MaxUnknownTokens:   6,
		MaxNATokens:        4,
		MaxStructureItems:  20,
		SnippetChars:       800,
		ReadmeContextChars: 500,
		PromptReadmeChars:  800,
		ReviewContentChars: 2500,
	}
}
