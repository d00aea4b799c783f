package hiscore

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// FileName is the name of the hiscore file inside the executable directory.
const FileName = "hiscores.txt"

var (
	// ErrMalformed is returned when the hiscore file exists but a line
	// is not "<name> <score>".
	ErrMalformed = errors.New("hiscore: malformed record")

	// ErrEmptyList is returned if merging produced no entries.
	ErrEmptyList = errors.New("hiscore: empty list after merge")
)

// fileLocks serializes load-merge-persist per file path. Engines are
// single-goroutine, but several engines (one per SSH session) may share a file.
var fileLocks sync.Map // map[string]*sync.Mutex

func lockFor(path string) *sync.Mutex {
	mu, _ := fileLocks.LoadOrStore(path, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Store persists a List as a line-oriented text file, one "<name> <score>"
// record per line. Names cannot contain whitespace in this format; Save
// replaces inner whitespace with underscores.
type Store struct {
	path string
}

// NewStore returns a store for the hiscore file in dir.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, FileName)}
}

// NewStoreAt returns a store for an explicit file path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the location of the hiscore file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the ranked list. A missing file is an empty list, not an error.
// Blank lines are skipped.
func (s *Store) Load() (List, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return List{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("hiscore: cannot open %s: %w", s.path, err)
	}
	defer f.Close()

	var list List
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		item, err := parseRecord(line)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", ErrMalformed, s.path, lineNo, err)
		}
		list = append(list, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("hiscore: cannot read %s: %w", s.path, err)
	}
	if list == nil {
		list = List{}
	}
	return list, nil
}

func parseRecord(line string) (Item, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Item{}, fmt.Errorf("expected 2 fields, got %d", len(fields))
	}
	score, err := strconv.Atoi(fields[1])
	if err != nil {
		return Item{}, fmt.Errorf("bad score %q", fields[1])
	}
	return Item{Name: fields[0], Score: score}, nil
}

// Save writes list to the hiscore file. It writes a temporary file in the same
// directory and renames it over the old one, so a failed write leaves the
// previous file untouched.
func (s *Store) Save(list List) error {
	var sb strings.Builder
	for _, item := range list {
		sb.WriteString(normalizeName(item.Name))
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(item.Score))
		sb.WriteByte('\n')
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("hiscore: cannot create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(sb.String()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("hiscore: cannot write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("hiscore: cannot write %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("hiscore: cannot chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("hiscore: cannot replace %s: %w", s.path, err)
	}
	return nil
}

// Submit loads the stored list, merges item into it and writes the result
// back. It returns the new list and the rank of item (-1 if it did not make
// the cut). A read failure aborts before the file is touched.
func (s *Store) Submit(item Item) (List, int, error) {
	mu := lockFor(s.path)
	mu.Lock()
	defer mu.Unlock()

	list, err := s.Load()
	if err != nil {
		return nil, -1, err
	}

	item.Name = normalizeName(item.Name)
	merged, rank := Merge(list, item)
	if len(merged) == 0 {
		return nil, -1, ErrEmptyList
	}

	if err := s.Save(merged); err != nil {
		return merged, rank, err
	}
	return merged, rank, nil
}
