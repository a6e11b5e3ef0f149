package ports

import "os/exec"

// EditorOpener opens default documents in an external editor
type EditorOpener interface {
	// OpenFile opens path in the user's editor and waits for it to exit.
	// $VISUAL takes precedence over $EDITOR.
	OpenFile(path string) error

	// Command returns the editor invocation without running it
	Command(path string) (*exec.Cmd, error)
}
