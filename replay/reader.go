package replay

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"euphoria/game"

	"github.com/klauspost/compress/zstd"
)

// Open reads a replay file.
func Open(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Decode reads a zstd compressed replay from r. A file whose writer was
// never closed reads up to the last flushed line.
func Decode(r io.Reader) (*Replay, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	out := &Replay{}
	sawHeader := false
	scanner := bufio.NewScanner(dec)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for line := 1; scanner.Scan(); line++ {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		switch {
		case e.Kind == KindHeader && e.Header != nil && !sawHeader:
			out.Header = *e.Header
			sawHeader = true
		case e.Kind == KindStep && e.Step != nil && sawHeader:
			out.Steps = append(out.Steps, *e.Step)
		case e.Kind == KindTrailer && e.Trailer != nil && sawHeader:
			out.Trailer = e.Trailer
		default:
			return nil, fmt.Errorf("line %d: unexpected %q entry", line, e.Kind)
		}
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	if !sawHeader {
		return nil, fmt.Errorf("missing header")
	}
	return out, nil
}

// Mismatch reports the first step whose replayed state differs from the
// recording.
type Mismatch struct {
	Step     int
	Expected uint64
	Actual   uint64
	Err      error
}

func (m *Mismatch) Error() string {
	if m.Err != nil {
		return fmt.Sprintf("step %d: %v", m.Step, m.Err)
	}
	return fmt.Sprintf("step %d: digest %016x, recorded %016x", m.Step, m.Actual, m.Expected)
}

func (m *Mismatch) Unwrap() error { return m.Err }

// Verify replays every recorded intent on a fresh game and compares the
// digests. It returns the final state.
func Verify(r *Replay) (*game.GameState, error) {
	opts, err := r.Header.Options.GameOptions()
	if err != nil {
		return nil, err
	}
	gs := game.NewGameState(opts)
	for _, s := range r.Steps {
		if s.Player != gs.Player() {
			return gs, &Mismatch{Step: s.N, Err: fmt.Errorf("recorded %s to move, replay has %s", s.Player, gs.Player())}
		}
		if err := gs.Apply(s.Intent); err != nil {
			return gs, &Mismatch{Step: s.N, Err: err}
		}
		if d := gs.Digest(); d != s.Digest {
			return gs, &Mismatch{Step: s.N, Expected: s.Digest, Actual: d}
		}
	}
	if t := r.Trailer; t != nil {
		if !gs.IsOver() {
			return gs, fmt.Errorf("recorded as finished after %d steps, replay is in %s", len(r.Steps), gs.Phase)
		}
		if gs.Winner() != t.Winner {
			return gs, fmt.Errorf("recorded winner %s, replay has %s", t.Winner, gs.Winner())
		}
		if d := gs.Digest(); d != t.Digest {
			return gs, &Mismatch{Step: len(r.Steps), Expected: t.Digest, Actual: d}
		}
	}
	return gs, nil
}
