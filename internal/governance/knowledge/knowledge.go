// Package knowledge manages numbered knowledge-base articles: the same
// index/record/Markdown shape as internal/governance/decision, applied to
// KnowledgeArticle instead of Decision (spec.md §4.6).
package knowledge

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/marmotdata/schemakit/internal/format/yamlcodec"
	"github.com/marmotdata/schemakit/internal/model"
)

const timestampThreshold = 1_000_000_000

// NumberingMode selects how new article numbers are generated.
type NumberingMode string

const (
	Sequential NumberingMode = "sequential"
	Timestamp  NumberingMode = "timestamp"
)

// DetectMode classifies an existing number by spec.md §4.6's threshold.
func DetectMode(number int64) NumberingMode {
	if number >= timestampThreshold {
		return Timestamp
	}
	return Sequential
}

// IndexEntry is one row of the knowledge.yaml index.
type IndexEntry struct {
	Number int64               `yaml:"number"`
	ID     string              `yaml:"id"`
	Title  string              `yaml:"title"`
	Type   model.KnowledgeType `yaml:"type"`
	Status model.KnowledgeStatus `yaml:"status"`
}

// Index is the knowledge.yaml document.
type Index struct {
	Mode    NumberingMode `yaml:"numbering_mode"`
	Next    int64         `yaml:"next,omitempty"`
	Records []IndexEntry  `yaml:"articles"`
}

func (idx *Index) nextNumber() int64 {
	if idx.Mode == Timestamp {
		return timestampNow()
	}
	if idx.Next == 0 {
		idx.Next = 1
	}
	n := idx.Next
	idx.Next++
	return n
}

func timestampNow() int64 {
	var n int64
	fmt.Sscanf(time.Now().UTC().Format("0601021504"), "%d", &n)
	return n
}

func (idx *Index) entryFor(number int64) *IndexEntry {
	for i := range idx.Records {
		if idx.Records[i].Number == number {
			return &idx.Records[i]
		}
	}
	return nil
}

func (idx *Index) upsert(a *model.KnowledgeArticle) {
	if e := idx.entryFor(a.Number); e != nil {
		e.ID, e.Title, e.Type, e.Status = a.ID, a.Title, a.Type, a.Status
		return
	}
	idx.Records = append(idx.Records, IndexEntry{Number: a.Number, ID: a.ID, Title: a.Title, Type: a.Type, Status: a.Status})
}

// Store manages the knowledge.yaml index and per-article files beneath a
// workspace directory's "knowledge/" subdirectory.
type Store struct {
	directory string
}

// Open returns a Store rooted at a workspace directory.
func Open(directory string) *Store {
	return &Store{directory: directory}
}

func (s *Store) indexPath() string { return filepath.Join(s.directory, "knowledge.yaml") }
func (s *Store) recordDir() string { return filepath.Join(s.directory, "knowledge") }
func (s *Store) recordPath(n int64) string {
	return filepath.Join(s.recordDir(), fmt.Sprintf("%d.yaml", n))
}

// LoadIndex reads knowledge.yaml, returning an empty sequential index if
// it doesn't exist yet.
func (s *Store) LoadIndex() (*Index, error) {
	data, err := os.ReadFile(s.indexPath())
	if os.IsNotExist(err) {
		return &Index{Mode: Sequential}, nil
	}
	if err != nil {
		return nil, err
	}
	idx := &Index{}
	if err := yamlcodec.Unmarshal(data, idx); err != nil {
		return nil, fmt.Errorf("knowledge: parsing index: %w", err)
	}
	return idx, nil
}

func (s *Store) saveIndex(idx *Index) error {
	return writeAtomic(s.indexPath(), idx)
}

// Create allocates the next number, constructs a KnowledgeArticle of the
// given type, persists it, and updates the index.
func (s *Store) Create(title string, kind model.KnowledgeType, mode NumberingMode) (*model.KnowledgeArticle, error) {
	idx, err := s.LoadIndex()
	if err != nil {
		return nil, err
	}
	if len(idx.Records) == 0 {
		idx.Mode = mode
	}

	number := idx.nextNumber()
	a := model.NewKnowledgeArticle(number, title, kind)

	if err := os.MkdirAll(s.recordDir(), 0o755); err != nil {
		return nil, err
	}
	if err := writeAtomic(s.recordPath(number), a); err != nil {
		return nil, err
	}

	idx.upsert(a)
	if err := s.saveIndex(idx); err != nil {
		return nil, err
	}
	return a, nil
}

// Get loads a single article by number.
func (s *Store) Get(number int64) (*model.KnowledgeArticle, error) {
	data, err := os.ReadFile(s.recordPath(number))
	if err != nil {
		return nil, fmt.Errorf("knowledge: reading %d: %w", number, err)
	}
	a := &model.KnowledgeArticle{}
	if err := yamlcodec.Unmarshal(data, a); err != nil {
		return nil, fmt.Errorf("knowledge: parsing %d: %w", number, err)
	}
	return a, nil
}

// List returns the index's summary rows, in index order.
func (s *Store) List() ([]IndexEntry, error) {
	idx, err := s.LoadIndex()
	if err != nil {
		return nil, err
	}
	return idx.Records, nil
}

// Save persists an article that already has its number and refreshes its
// index row.
func (s *Store) Save(a *model.KnowledgeArticle) error {
	if err := os.MkdirAll(s.recordDir(), 0o755); err != nil {
		return err
	}
	if err := writeAtomic(s.recordPath(a.Number), a); err != nil {
		return err
	}
	idx, err := s.LoadIndex()
	if err != nil {
		return err
	}
	idx.upsert(a)
	return s.saveIndex(idx)
}

// Relate loads both articles by number, links them via
// model.KnowledgeArticle.Relate, and saves both.
func (s *Store) Relate(number, other int64) error {
	a, err := s.Get(number)
	if err != nil {
		return err
	}
	b, err := s.Get(other)
	if err != nil {
		return err
	}
	a.Relate(b)
	if err := s.Save(a); err != nil {
		return err
	}
	return s.Save(b)
}

func writeAtomic(path string, v interface{}) error {
	data, err := yamlcodec.Marshal(v)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
