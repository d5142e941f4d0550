package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/mutabay/readme-agent/internal/domain/models"
	"github.com/mutabay/readme-agent/internal/domain/ports"
)

var _ ports.BackupStore = (*FileStore)(nil)

const (
	timestampLayout = "20060102_150405"
	previewChars    = 120
)

// backupName matches <repo>_<date>_<time>.md where repo is the full name
// with the slash replaced by an underscore.
var backupName = regexp.MustCompile(`^(.+)_(\d{8})_(\d{6})\.md$`)

// FileStore keeps README snapshots as plain markdown files in a single
// directory. The filename carries the repository and the timestamp, so the
// directory itself is the index. GitHub owner names cannot contain
// underscores, which makes the slash-to-underscore mapping reversible.
type FileStore struct {
	dir string
	now func() time.Time
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating backup directory: %w", err)
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

func (s *FileStore) Save(repoFullName, content string) (models.BackupRecord, error) {
	createdAt := s.now().UTC()
	id := strings.ReplaceAll(repoFullName, "/", "_") + "_" + createdAt.Format(timestampLayout) + ".md"

	path := filepath.Join(s.dir, id)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return models.BackupRecord{}, fmt.Errorf("writing backup %s: %w", id, err)
	}

	return models.BackupRecord{
		ID:        id,
		RepoName:  repoFullName,
		Content:   content,
		Preview:   preview(content),
		Size:      int64(len(content)),
		CreatedAt: createdAt,
	}, nil
}

// ListAll returns every backup, newest first, without loading full
// contents.
func (s *FileStore) ListAll() ([]models.BackupRecord, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading backup directory: %w", err)
	}

	records := make([]models.BackupRecord, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		record, ok := s.describe(entry.Name())
		if !ok {
			continue
		}
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (s *FileStore) ListForRepo(repoFullName string) ([]models.BackupRecord, error) {
	all, err := s.ListAll()
	if err != nil {
		return nil, err
	}

	records := make([]models.BackupRecord, 0, len(all))
	for _, r := range all {
		if r.RepoName == repoFullName {
			records = append(records, r)
		}
	}
	return records, nil
}

func (s *FileStore) Read(id string) (models.BackupRecord, bool, error) {
	record, ok := s.describe(id)
	if !ok {
		return models.BackupRecord{}, false, nil
	}

	data, err := os.ReadFile(filepath.Join(s.dir, id))
	if os.IsNotExist(err) {
		return models.BackupRecord{}, false, nil
	}
	if err != nil {
		return models.BackupRecord{}, false, fmt.Errorf("reading backup %s: %w", id, err)
	}

	record.Content = string(data)
	return record, true, nil
}

func (s *FileStore) Delete(id string) (bool, error) {
	if !backupName.MatchString(id) {
		return false, nil
	}

	err := os.Remove(filepath.Join(s.dir, id))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("deleting backup %s: %w", id, err)
	}
	return true, nil
}

func (s *FileStore) Cleanup(keepLast int) (int, error) {
	all, err := s.ListAll()
	if err != nil {
		return 0, err
	}

	perRepo := make(map[string][]models.BackupRecord)
	for _, r := range all {
		perRepo[r.RepoName] = append(perRepo[r.RepoName], r)
	}

	deleted := 0
	for _, records := range perRepo {
		// Already newest first from ListAll.
		for _, r := range records[min(keepLast, len(records)):] {
			if err := os.Remove(filepath.Join(s.dir, r.ID)); err != nil {
				return deleted, fmt.Errorf("deleting backup %s: %w", r.ID, err)
			}
			deleted++
		}
	}
	return deleted, nil
}

// describe builds a record from the filename and file metadata alone,
// leaving Content empty.
func (s *FileStore) describe(id string) (models.BackupRecord, bool) {
	m := backupName.FindStringSubmatch(id)
	if m == nil {
		return models.BackupRecord{}, false
	}

	createdAt, err := time.Parse(timestampLayout, m[2]+"_"+m[3])
	if err != nil {
		return models.BackupRecord{}, false
	}

	info, err := os.Stat(filepath.Join(s.dir, id))
	if err != nil {
		return models.BackupRecord{}, false
	}

	record := models.BackupRecord{
		ID:        id,
		RepoName:  strings.Replace(m[1], "_", "/", 1),
		Size:      info.Size(),
		CreatedAt: createdAt,
	}

	if data, err := os.ReadFile(filepath.Join(s.dir, id)); err == nil {
		record.Preview = preview(string(data))
	}
	return record, true
}

func preview(content string) string {
	collapsed := strings.Join(strings.Fields(content), " ")
	if len(collapsed) > previewChars {
		return collapsed[:previewChars] + "..."
	}
	return collapsed
}
