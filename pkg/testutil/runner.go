package testutil

import (
	"strings"
	"sync"
)

// RunnerCall records a single command handed to a RecordingRunner.
type RunnerCall struct {
	Argv  []string
	Title string
}

// Script returns the script body of a `bash -c` call, or the empty
// string if the call is not one.
func (c RunnerCall) Script() string {
	if len(c.Argv) == 3 && c.Argv[0] == "bash" && c.Argv[1] == "-c" {
		return c.Argv[2]
	}
	return ""
}

// RecordingRunner is an execution delegate that records commands instead of
// spawning processes. Intended for tests and never touches the filesystem.
type RecordingRunner struct {
	mu sync.Mutex

	Calls []RunnerCall

	// Dry reports dry-run mode to the code under test.
	Dry bool

	// FailOn maps a command title to the error Run should return for it.
	FailOn map[string]error
}

func (r *RecordingRunner) Run(argv []string, title string) error {
	r.mu.Lock()
	r.Calls = append(r.Calls, RunnerCall{Argv: argv, Title: title})
	r.mu.Unlock()

	if r.FailOn != nil {
		if err, ok := r.FailOn[title]; ok {
			return err
		}
	}
	return nil
}

func (r *RecordingRunner) DryRun() bool {
	return r.Dry
}

// Titles returns the titles of all recorded calls in order.
func (r *RecordingRunner) Titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	titles := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		titles[i] = c.Title
	}
	return titles
}

// CommandLines renders each recorded call as a space-joined line, which is
// convenient for substring assertions.
func (r *RecordingRunner) CommandLines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		lines[i] = strings.Join(c.Argv, " ")
	}
	return lines
}
