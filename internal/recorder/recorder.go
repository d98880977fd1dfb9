// ABOUTME: Recording controller owning the exclusive audio capture session
// ABOUTME: Drives an external capture tool via os/exec with a two-state machine
package recorder

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/harper/voicememo/internal/verr"
)

// scratchPrefix names temporary recording artifacts so PurgeScratch can
// recognize them without touching anything else in the directory.
const scratchPrefix = "memo_"

// Recorder captures audio to a file by running an external capture binary
// (ffmpeg by default). Exactly one recording may be in flight; a recording in
// progress when the process dies is lost.
type Recorder struct {
	bin  string
	args func(destPath string) []string

	mu          sync.Mutex
	cmd         *exec.Cmd
	currentPath string
	recording   bool
}

// New creates a Recorder using the given capture binary. An empty bin falls
// back to ffmpeg with default microphone capture arguments.
func New(bin string) *Recorder {
	if bin == "" {
		bin = "ffmpeg"
	}
	return &Recorder{
		bin: bin,
		args: func(destPath string) []string {
			return []string{"-hide_banner", "-loglevel", "error", "-f", defaultCaptureFormat(), "-i", "default", "-y", destPath}
		},
	}
}

// defaultCaptureFormat picks the ffmpeg input device family for the host OS.
func defaultCaptureFormat() string {
	switch runtime.GOOS {
	case "darwin":
		return "avfoundation"
	case "windows":
		return "dshow"
	default:
		return "alsa"
	}
}

// NewWithArgs creates a Recorder with a custom argument builder, used by
// tests to substitute a harmless long-running command.
func NewWithArgs(bin string, args func(destPath string) []string) *Recorder {
	return &Recorder{bin: bin, args: args}
}

// Start begins capturing audio to destPath. It fails with a state conflict
// if a session is already active. Cancelling ctx kills the capture process;
// a cancelled session is lost, not finalized.
func (r *Recorder) Start(ctx context.Context, destPath string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		return fmt.Errorf("recording already in progress: %w", verr.ErrStateConflict)
	}

	cmd := exec.CommandContext(ctx, r.bin, r.args(destPath)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", r.bin, err)
	}

	r.cmd = cmd
	r.currentPath = destPath
	r.recording = true
	return nil
}

// Stop finalizes the capture and releases the session. It fails with a state
// conflict if no session is active. The remembered path is cleared; callers
// hand the destination path they chose at Start to the pipeline themselves.
func (r *Recorder) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopLocked()
}

func (r *Recorder) stopLocked() error {
	if !r.recording {
		return fmt.Errorf("no recording in progress: %w", verr.ErrStateConflict)
	}

	// Interrupt lets the capture tool flush and finalize the container.
	if err := r.cmd.Process.Signal(os.Interrupt); err != nil {
		_ = r.cmd.Process.Kill()
	}
	err := r.cmd.Wait()
	path := r.currentPath

	r.cmd = nil
	r.recording = false
	r.currentPath = ""

	// ffmpeg exits non-zero on SIGINT even after a clean flush; only surface
	// errors that left no usable file behind.
	if err != nil {
		if _, statErr := os.Stat(path); statErr != nil {
			return fmt.Errorf("capture failed: %w", err)
		}
	}
	return nil
}

// Delete is idempotent: an active session is force-stopped (stop errors are
// swallowed), the backing file is removed if present, and the remembered path
// is always cleared.
func (r *Recorder) Delete() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	path := r.currentPath
	if r.recording {
		if err := r.stopLocked(); err != nil {
			log.Printf("recorder: swallowing stop error during delete: %v", err)
		}
	}

	if path != "" {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			r.currentPath = ""
			return fmt.Errorf("removing recording: %w", err)
		}
	}
	r.currentPath = ""
	return nil
}

// CurrentFilePath returns the path of the in-flight or just-finished
// recording, and whether one is remembered.
func (r *Recorder) CurrentFilePath() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentPath, r.currentPath != ""
}

// IsRecording reports whether a capture session is active.
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// NewScratchPath returns a fresh destination path in dir for a recording.
func NewScratchPath(dir string) string {
	return filepath.Join(dir, fmt.Sprintf("%s%s.m4a", scratchPrefix, uuid.New().String()))
}

// PurgeScratch removes leftover recording artifacts from dir. Only files
// matching the recorder's own naming pattern are touched.
func PurgeScratch(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading scratch dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), scratchPrefix) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			log.Printf("recorder: failed to purge %s: %v", entry.Name(), err)
		}
	}
	return nil
}
