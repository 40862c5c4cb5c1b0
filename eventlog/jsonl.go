package eventlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Writer appends events to a JSONL stream, assigning sequence numbers.
type Writer struct {
	mu      sync.Mutex
	out     io.Writer
	closer  io.Closer
	session string
	seq     int
}

// NewWriter creates a journal writer for a session.
func NewWriter(out io.Writer, session string) *Writer {
	w := &Writer{out: out, session: session}
	if c, ok := out.(io.Closer); ok {
		w.closer = c
	}
	return w
}

// OpenFile opens (or creates) a journal file for appending.
func OpenFile(path, session string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("eventlog: open journal: %w", err)
	}
	return NewWriter(f, session), nil
}

// Record appends one event. It satisfies the tracker's journal hook.
func (w *Writer) Record(kind, name string, count int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.seq++
	ev := Event{
		Session: w.session,
		Seq:     w.seq,
		Kind:    kind,
		Name:    name,
		Count:   count,
		At:      time.Now().UTC(),
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("eventlog: encode event: %w", err)
	}
	if _, err := w.out.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("eventlog: write event: %w", err)
	}
	return nil
}

// Close closes the underlying file, if the writer owns one.
func (w *Writer) Close() error {
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}

// ReadFile parses a journal file.
func ReadFile(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("eventlog: open journal: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses a JSONL journal from a reader. Empty lines are skipped;
// a malformed line is an error carrying its line number.
func Read(r io.Reader) ([]Event, error) {
	var events []Event
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}
		var ev Event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			return nil, fmt.Errorf("eventlog: line %d: invalid JSON: %w", lineNum, err)
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("eventlog: read journal: %w", err)
	}
	return events, nil
}
