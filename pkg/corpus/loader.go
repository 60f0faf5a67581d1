package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bastiangx/wordhint/internal/utils"
	"github.com/bastiangx/wordhint/pkg/rank"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// SnapshotVersion is written into every snapshot; readers reject other versions.
const SnapshotVersion = 1

// Snapshot is the msgpack form of a corpus, entries sorted by descending frequency.
type Snapshot struct {
	Version int                `msgpack:"v"`
	Entries []rank.MatchResult `msgpack:"e"`
}

// Load reads a corpus file in any supported format and indexes it.
func Load(path string) (*Index, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus %s: %w", path, err)
	}
	defer file.Close()

	var entries []rank.MatchResult
	switch format {
	case FormatText:
		entries, err = ReadText(file)
	case FormatSnapshot:
		entries, err = ReadSnapshot(file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus %s: %w", path, err)
	}

	log.Debugf("Loaded %d corpus entries from %s (%s)", len(entries), path, format)
	return NewIndex(entries), nil
}

// ReadText parses "word frequency" lines. Blank lines are skipped and a repeated
// word keeps its first frequency.
func ReadText(r io.Reader) ([]rank.MatchResult, error) {
	list := newEntryList()

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected \"word frequency\", got %d fields", lineNo, len(fields))
		}
		freq, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad frequency %q: %w", lineNo, fields[1], err)
		}
		if err := list.add(fields[0], freq); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return list.entries, nil
}

// entryList collects corpus entries with lower-cased words, keeping the first
// occurrence of each word.
type entryList struct {
	filter  *utils.SeenFilter
	entries []rank.MatchResult
}

func newEntryList() *entryList {
	return &entryList{filter: utils.NewSeenFilter()}
}

func (l *entryList) add(word string, freq int64) error {
	if freq < 0 {
		return fmt.Errorf("negative frequency %d for %q", freq, word)
	}
	word = strings.ToLower(word)
	if !l.filter.ShouldInclude(word) {
		log.Debugf("Skipping duplicate corpus word %q", word)
		return nil
	}
	l.entries = append(l.entries, rank.MatchResult{Word: word, Frequency: freq})
	return nil
}

// WriteText writes entries as "word frequency" lines.
func WriteText(w io.Writer, entries []rank.MatchResult) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%s %d\n", e.Word, e.Frequency); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadSnapshot decodes a msgpack snapshot. Entries are cleaned the same way as
// ReadText's lines.
func ReadSnapshot(r io.Reader) ([]rank.MatchResult, error) {
	var snap Snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d (want %d)", snap.Version, SnapshotVersion)
	}

	list := newEntryList()
	for i, e := range snap.Entries {
		if err := list.add(e.Word, e.Frequency); err != nil {
			return nil, fmt.Errorf("snapshot entry %d: %w", i, err)
		}
	}
	return list.entries, nil
}

// WriteSnapshot encodes entries as a msgpack snapshot.
func WriteSnapshot(w io.Writer, entries []rank.MatchResult) error {
	return msgpack.NewEncoder(w).Encode(Snapshot{Version: SnapshotVersion, Entries: entries})
}

// SaveFile writes entries to path in the given format.
func SaveFile(path string, format FileFormat, entries []rank.MatchResult) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	switch format {
	case FormatText:
		err = WriteText(file, entries)
	case FormatSnapshot:
		err = WriteSnapshot(file, entries)
	default:
		err = fmt.Errorf("%w: %d", ErrUnknownFormat, format)
	}
	if err != nil {
		return err
	}
	return file.Close()
}
