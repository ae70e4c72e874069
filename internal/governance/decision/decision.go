// Package decision manages MADR-shaped architecture decision records: a
// numbered index (spec.md §4.6), round-trip YAML for each record, and a
// one-way Markdown rendering.
package decision

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/marmotdata/schemakit/internal/format/yamlcodec"
	"github.com/marmotdata/schemakit/internal/model"
)

// timestampThreshold is the boundary spec.md §4.6 gives for numbering-mode
// detection: any number at or above this is timestamp-mode (YYMMDDHHMM).
const timestampThreshold = 1_000_000_000

// NumberingMode selects how new decision numbers are generated.
type NumberingMode string

const (
	Sequential NumberingMode = "sequential"
	Timestamp  NumberingMode = "timestamp"
)

// DetectMode classifies an existing number by spec.md §4.6's threshold,
// independent of the index's configured mode — useful when importing
// records numbered by some other tool.
func DetectMode(number int64) NumberingMode {
	if number >= timestampThreshold {
		return Timestamp
	}
	return Sequential
}

// IndexEntry is one row of the decisions.yaml index.
type IndexEntry struct {
	Number int64              `yaml:"number"`
	ID     string             `yaml:"id"`
	Title  string             `yaml:"title"`
	Status model.DecisionStatus `yaml:"status"`
}

// Index is the decisions.yaml document: numbering state plus a summary
// row per record.
type Index struct {
	Mode    NumberingMode `yaml:"numbering_mode"`
	Next    int64         `yaml:"next,omitempty"`
	Records []IndexEntry  `yaml:"decisions"`
}

// nextNumber advances the index's numbering state and returns the number
// to assign to a new record.
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

func (idx *Index) upsert(d *model.Decision) {
	if e := idx.entryFor(d.Number); e != nil {
		e.ID, e.Title, e.Status = d.ID, d.Title, d.Status
		return
	}
	idx.Records = append(idx.Records, IndexEntry{Number: d.Number, ID: d.ID, Title: d.Title, Status: d.Status})
}

// Store manages the decisions.yaml index and the per-record files beneath
// a workspace directory's "decisions/" subdirectory.
type Store struct {
	directory string
}

// Open returns a Store rooted at a workspace directory. No I/O happens
// until a method is called.
func Open(directory string) *Store {
	return &Store{directory: directory}
}

func (s *Store) indexPath() string   { return filepath.Join(s.directory, "decisions.yaml") }
func (s *Store) recordDir() string   { return filepath.Join(s.directory, "decisions") }
func (s *Store) recordPath(n int64) string {
	return filepath.Join(s.recordDir(), fmt.Sprintf("%d.yaml", n))
}

// LoadIndex reads decisions.yaml, returning an empty sequential index if
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
		return nil, fmt.Errorf("decision: parsing index: %w", err)
	}
	return idx, nil
}

func (s *Store) saveIndex(idx *Index) error {
	return writeAtomic(s.indexPath(), idx)
}

// Create allocates the next number from the index (per its configured
// mode), constructs a Decision, persists it, and updates the index.
func (s *Store) Create(title string, mode NumberingMode) (*model.Decision, error) {
	idx, err := s.LoadIndex()
	if err != nil {
		return nil, err
	}
	if len(idx.Records) == 0 {
		idx.Mode = mode
	}

	number := idx.nextNumber()
	d := model.NewDecision(number, title)

	if err := os.MkdirAll(s.recordDir(), 0o755); err != nil {
		return nil, err
	}
	if err := writeAtomic(s.recordPath(number), d); err != nil {
		return nil, err
	}

	idx.upsert(d)
	if err := s.saveIndex(idx); err != nil {
		return nil, err
	}
	return d, nil
}

// Get loads a single decision record by number.
func (s *Store) Get(number int64) (*model.Decision, error) {
	data, err := os.ReadFile(s.recordPath(number))
	if err != nil {
		return nil, fmt.Errorf("decision: reading %d: %w", number, err)
	}
	d := &model.Decision{}
	if err := yamlcodec.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("decision: parsing %d: %w", number, err)
	}
	return d, nil
}

// List returns the index's summary rows, in index order.
func (s *Store) List() ([]IndexEntry, error) {
	idx, err := s.LoadIndex()
	if err != nil {
		return nil, err
	}
	return idx.Records, nil
}

// Save persists a record that already has its number (e.g. after Supersede
// has mutated it) and refreshes its index row.
func (s *Store) Save(d *model.Decision) error {
	if err := os.MkdirAll(s.recordDir(), 0o755); err != nil {
		return err
	}
	if err := writeAtomic(s.recordPath(d.Number), d); err != nil {
		return err
	}
	idx, err := s.LoadIndex()
	if err != nil {
		return err
	}
	idx.upsert(d)
	return s.saveIndex(idx)
}

// Supersede loads the record numbered `by`, the record numbered `number`,
// links them via model.Decision.Supersede, and saves both.
func (s *Store) Supersede(number, by int64) error {
	old, err := s.Get(number)
	if err != nil {
		return err
	}
	replacement, err := s.Get(by)
	if err != nil {
		return err
	}
	old.Supersede(replacement)
	if err := s.Save(old); err != nil {
		return err
	}
	return s.Save(replacement)
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
