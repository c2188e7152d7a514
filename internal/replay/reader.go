// Package replay reads and writes recorded landmark sessions.
//
// A recording is one JSON object per line, each line a full landmark frame,
// optionally zstd-compressed when the file name ends in .zst. The reader is
// the upstream boundary the state machines rely on for frame ordering: it
// drops malformed lines and any frame whose timestamp does not strictly
// increase, so duplicates and out-of-order frames never reach a pipeline.
package replay

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/marinocj/repstream/internal/logging"
	"github.com/marinocj/repstream/internal/pose"
)

// maxLineBytes bounds a single recorded frame line (33 landmarks is ~2KB;
// this leaves generous headroom).
const maxLineBytes = 1 << 20

// Reader streams frames from one recorded session.
type Reader struct {
	scanner *bufio.Scanner
	closers []io.Closer
	decoder *zstd.Decoder

	lastT float64
	seen  bool
}

// NewReader wraps an uncompressed JSONL stream.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &Reader{scanner: sc}
}

// Open opens a recorded session file, transparently decompressing when the
// path ends in .zst.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}

	var src io.Reader = f
	r := &Reader{closers: []io.Closer{f}}
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open zstd stream: %w", err)
		}
		r.decoder = dec
		src = dec
	}

	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	r.scanner = sc
	return r, nil
}

// Next returns the next well-formed, in-order frame. It returns io.EOF
// when the stream is exhausted.
func (r *Reader) Next() (pose.Frame, error) {
	for r.scanner.Scan() {
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}

		var frame pose.Frame
		if err := json.Unmarshal([]byte(line), &frame); err != nil {
			logging.Debug(fmt.Sprintf("replay: skipping malformed line: %v", err))
			continue
		}

		if r.seen && frame.Timestamp <= r.lastT {
			logging.Debug(fmt.Sprintf("replay: dropping stale frame t=%.3f (last %.3f)", frame.Timestamp, r.lastT))
			continue
		}
		r.lastT = frame.Timestamp
		r.seen = true
		return frame, nil
	}

	if err := r.scanner.Err(); err != nil {
		return pose.Frame{}, fmt.Errorf("read recording: %w", err)
	}
	return pose.Frame{}, io.EOF
}

// Close releases the underlying file, if any.
func (r *Reader) Close() error {
	if r.decoder != nil {
		r.decoder.Close()
	}
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// ReadAll loads every frame of a recorded session into memory.
func ReadAll(path string) ([]pose.Frame, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var frames []pose.Frame
	for {
		frame, err := r.Next()
		if err == io.EOF {
			return frames, nil
		}
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}
}
