package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
)

// XZWriter streams data through the xz compressor to produce .xz files.
// It spawns an external xz process and pipes data through stdin.
type XZWriter struct {
	file    *os.File
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	path    string
	mu      sync.Mutex
	closed  bool
	waitErr error
	waitCh  chan struct{}
}

// XZWriterConfig holds configuration for the XZ writer
type XZWriterConfig struct {
	// Directory where the file will be created
	OutputDir string
	// Filename with its extension (e.g., "result.json" -> "result.json.xz")
	Filename string
	// Compression preset 0-9 (default: 6). Higher = smaller but slower
	Preset int
}

// NewXZWriter creates a streaming XZ compressor that pipes data through
// the external xz command. ".xz" is appended to the configured filename.
func NewXZWriter(cfg XZWriterConfig) (*XZWriter, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(cfg.OutputDir, cfg.Filename+".xz")
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file %s: %w", path, err)
	}

	preset := cfg.Preset
	if preset < 0 || preset > 9 {
		preset = 6
	}

	// -c = write to stdout, -<N> = compression level
	cmd := exec.Command("xz", "-c", fmt.Sprintf("-%d", preset))
	cmd.Stdout = file
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		file.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to create stdin pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		stdin.Close()
		file.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to start xz: %w", err)
	}

	w := &XZWriter{
		file:   file,
		cmd:    cmd,
		stdin:  stdin,
		path:   path,
		waitCh: make(chan struct{}),
	}

	go func() {
		w.waitErr = cmd.Wait()
		close(w.waitCh)
	}()

	return w, nil
}

// Write implements io.Writer, streaming data to the xz compressor
func (w *XZWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, fmt.Errorf("writer is closed")
	}

	return w.stdin.Write(p)
}

// Close signals EOF to xz, waits for it to exit, then closes the output file.
func (w *XZWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.stdin.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("failed to close xz stdin: %w", err)
	}

	<-w.waitCh

	fileErr := w.file.Close()

	// xz error takes precedence
	if w.waitErr != nil {
		return fmt.Errorf("xz process failed: %w", w.waitErr)
	}
	if fileErr != nil {
		return fmt.Errorf("failed to close output file: %w", fileErr)
	}

	return nil
}

// Path returns the full path to the .xz file
func (w *XZWriter) Path() string {
	return w.path
}

// CheckXZAvailable verifies that xz is installed and accessible.
// Returns nil if xz is available, or an error with installation guidance.
func CheckXZAvailable() error {
	cmd := exec.Command("xz", "--version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("xz not found: %w\nInstall with: apt install xz-utils (Linux) or brew install xz (macOS)", err)
	}
	return nil
}

// decompressXZ returns the decompressed contents of an .xz file
func decompressXZ(ctx context.Context, path string) ([]byte, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, "xz", "-d", "-c", path)
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("xz decompression failed: %w", err)
	}
	return out.Bytes(), nil
}
