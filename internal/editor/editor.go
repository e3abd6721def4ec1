// Package editor opens diary entries in the user's text editor.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/MikeBiancalana/pepys/internal/logger"
)

// shellMetacharacters are rejected so an editor setting can never smuggle in a shell command.
const shellMetacharacters = ";|&$()<>"

// SpawnError reports that the editor could not be started or exited with an error.
type SpawnError struct {
	Editor string
	Path   string
	Err    error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to open %s in editor %q: %v", e.Path, e.Editor, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// Launcher opens a file for editing and blocks until the editor exits.
type Launcher interface {
	Launch(ctx context.Context, path string) error
}

// DefaultEditor is used when neither config nor environment names one.
func DefaultEditor() string {
	if runtime.GOOS == "windows" {
		return "notepad"
	}
	return "vi"
}

// Resolve picks the editor command: configured, then $VISUAL, then $EDITOR, then DefaultEditor.
func Resolve(configured string) string {
	for _, candidate := range []string{configured, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return DefaultEditor()
}

// Command validates editor and splits it into a program and arguments with path appended.
func Command(editor, path string) (string, []string, error) {
	if strings.ContainsAny(editor, shellMetacharacters) {
		return "", nil, fmt.Errorf("invalid editor command: contains shell metacharacters")
	}

	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return "", nil, fmt.Errorf("empty editor command")
	}

	args := make([]string, 0, len(parts))
	args = append(args, parts[1:]...)
	args = append(args, path)
	return parts[0], args, nil
}

// ExecLauncher runs the editor as a foreground child process.
type ExecLauncher struct {
	Editor string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// LookPath and Run default to exec.LookPath and (*exec.Cmd).Run.
	LookPath func(file string) (string, error)
	Run      func(cmd *exec.Cmd) error
}

// NewExecLauncher creates a launcher for editor attached to the current terminal.
func NewExecLauncher(editor string) *ExecLauncher {
	return &ExecLauncher{
		Editor: editor,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Launch opens path and waits for the editor to exit. Every failure is a *SpawnError.
func (l *ExecLauncher) Launch(ctx context.Context, path string) error {
	name, args, err := Command(l.Editor, path)
	if err != nil {
		return &SpawnError{Editor: l.Editor, Path: path, Err: err}
	}

	lookPath := l.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if _, err := lookPath(name); err != nil {
		return &SpawnError{Editor: l.Editor, Path: path, Err: fmt.Errorf("editor not found: %s", name)}
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	run := l.Run
	if run == nil {
		run = (*exec.Cmd).Run
	}

	logger.Debug("launching editor", "editor", name, "args", args)
	if err := run(cmd); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			err = fmt.Errorf("editor exited with status %d", exitErr.ExitCode())
		}
		return &SpawnError{Editor: l.Editor, Path: path, Err: err}
	}

	return nil
}
