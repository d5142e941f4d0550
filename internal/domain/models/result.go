package models

// User is the authenticated code-host account.
type User struct {
	Login        string `json:"login"`
	Name         string `json:"name"`
	AvatarURL    string `json:"avatar_url"`
	PublicRepos  int    `json:"public_repos"`
	PrivateRepos int    `json:"private_repos"`
}

// CommitResult reports the outcome of a commit-or-update of a single file.
type CommitResult struct {
	Action    string `json:"action"` // "created" or "updated"
	CommitSHA string `json:"commit_sha"`
	CommitURL string `json:"commit_url"`
}

// PullRequestInfo describes a created pull request.
type PullRequestInfo struct {
	Number int    `json:"number"`
	URL    string `json:"url"`
	State  string `json:"state"`
}

// ConnectionStatus is the result of an LLM provider health probe.
type ConnectionStatus struct {
	Connected bool     `json:"connected"`
	Provider  string   `json:"provider"`
	Model     string   `json:"model"`
	Models    []string `json:"models,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// RepoResult is the per-repository outcome of a pipeline run. Exactly one
// result is produced per selected repository, failed or not.
type RepoResult struct {
	RepoName     string
	Success      bool
	Readme       string
	Signal       QualitySignal
	QualityScore int
	Backup       *BackupRecord
	Err          error
}
