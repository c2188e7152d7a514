package replay

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/marinocj/repstream/internal/pose"
)

// Writer records landmark frames as JSONL, one frame per line.
type Writer struct {
	w       *bufio.Writer
	encoder *zstd.Encoder
	file    *os.File
}

// NewWriter wraps an uncompressed output stream.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Create creates a recording file, compressing with zstd when the path
// ends in .zst.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create recording: %w", err)
	}

	if strings.HasSuffix(path, ".zst") {
		enc, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("create zstd stream: %w", err)
		}
		return &Writer{w: bufio.NewWriter(enc), encoder: enc, file: f}, nil
	}
	return &Writer{w: bufio.NewWriter(f), file: f}, nil
}

// Write appends one frame to the recording.
func (w *Writer) Write(frame pose.Frame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}
	if _, err := w.w.Write(data); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Close flushes and closes the recording.
func (w *Writer) Close() error {
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("flush recording: %w", err)
	}
	if w.encoder != nil {
		if err := w.encoder.Close(); err != nil {
			return fmt.Errorf("close zstd stream: %w", err)
		}
	}
	if w.file != nil {
		if err := w.file.Close(); err != nil {
			return fmt.Errorf("close recording: %w", err)
		}
	}
	return nil
}
