package ports

import "github.com/mutabay/readme-agent/internal/domain/models"

// BackupStore persists README snapshots taken before an overwrite. Records
// are write-once: saved, read, listed, deleted, never mutated.
type BackupStore interface {
	Save(repoFullName, content string) (models.BackupRecord, error)
	ListAll() ([]models.BackupRecord, error)
	ListForRepo(repoFullName string) ([]models.BackupRecord, error)

	// Read returns the full record including content, and whether a backup
	// with that ID exists.
	Read(id string) (models.BackupRecord, bool, error)
	Delete(id string) (bool, error)

	// Cleanup removes old backups keeping the most recent keepLast per
	// repository, returning the number deleted.
	Cleanup(keepLast int) (int, error)
}
