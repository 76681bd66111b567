package replay

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"euphoria/game"
	"euphoria/gamemaster"

	"github.com/klauspost/compress/zstd"
)

// Writer records every game it is attached to as <dir>/<game>.jsonl.zst.
// Lines are flushed as they are written, so an interrupted game leaves a
// readable file without a trailer.
type Writer struct {
	dir string

	mu   sync.Mutex
	path string
	f    *os.File
	enc  *zstd.Encoder
	w    *bufio.Writer
}

var _ gamemaster.Recorder = (*Writer)(nil)

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Path is the file of the game being recorded, or of the last one.
func (w *Writer) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

func (w *Writer) Start(id string, opts game.Options) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.closeLocked(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(w.dir, id+".jsonl.zst")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.path = path
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 64*1024)

	return w.writeLocked(Entry{Kind: KindHeader, Header: &Header{Game: id, Started: time.Now().UTC(), Options: NewOptions(opts)}})
}

func (w *Writer) Record(u gamemaster.Update) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writeLocked(Entry{Kind: KindStep, Step: &Step{N: u.Step, Player: u.Player, Intent: u.Intent, Digest: u.Digest}})
}

func (w *Writer) Finish(gs *game.GameState) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	trailer := &Trailer{Winner: gs.Winner(), Turns: gs.Turns, Digest: gs.Digest(), Ended: time.Now().UTC()}
	for _, seat := range gs.Ranking {
		trailer.Ranking = append(trailer.Ranking, gs.Names[seat])
	}
	if err := w.writeLocked(Entry{Kind: KindTrailer, Trailer: trailer}); err != nil {
		return err
	}
	return w.closeLocked()
}

// Close ends the current file without a trailer.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

// writeLocked writes one line and pushes it through the compressor so it
// survives a crash.
func (w *Writer) writeLocked(e Entry) error {
	if w.w == nil {
		return fmt.Errorf("no game being recorded")
	}
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	if err := w.w.Flush(); err != nil {
		return err
	}
	return w.enc.Flush()
}

func (w *Writer) closeLocked() error {
	var err error
	if w.w != nil {
		err = w.w.Flush()
		w.w = nil
	}
	if w.enc != nil {
		if cerr := w.enc.Close(); err == nil {
			err = cerr
		}
		w.enc = nil
	}
	if w.f != nil {
		if cerr := w.f.Close(); err == nil {
			err = cerr
		}
		w.f = nil
	}
	return err
}
