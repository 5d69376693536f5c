// Package procstat reads cumulative CPU time-in-state counters from the OS.
package procstat

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Snapshot holds one atomic reading of the cumulative CPU counters.
// Fields are kernel ticks and are monotonically non-decreasing between reads.
type Snapshot struct {
	User    uint64
	Nice    uint64
	System  uint64
	Idle    uint64
	IOWait  uint64
	IRQ     uint64
	SoftIRQ uint64
}

// Total returns the total CPU time.
func (s Snapshot) Total() uint64 {
	return s.User + s.Nice + s.System + s.Idle + s.IOWait + s.IRQ + s.SoftIRQ
}

// IdleTotal returns the time the CPU spent doing nothing, including waiting
// on I/O.
func (s Snapshot) IdleTotal() uint64 {
	return s.Idle + s.IOWait
}

// Source provides snapshots of the CPU counters.
type Source interface {
	Read() (Snapshot, error)
}

// ReadError reports that the counter source could not be read. Callers
// should skip the current tick and try again on the next one.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("cannot read cpu counters from %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// ProcSource reads counters from /proc/stat under the given root.
type ProcSource struct {
	path string
}

// NewProcSource creates a source rooted at the given directory. Pass "/" for
// the real procfs; tests point this at a fixture tree.
func NewProcSource(root string) *ProcSource {
	return &ProcSource{path: filepath.Join(root, "proc", "stat")}
}

// Read parses the aggregate "cpu " line.
func (p *ProcSource) Read() (Snapshot, error) {
	file, err := os.Open(p.path)
	if err != nil {
		return Snapshot{}, &ReadError{Path: p.path, Err: err}
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "cpu ") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 8 {
			return Snapshot{}, &ReadError{Path: p.path, Err: fmt.Errorf("unexpected format: %q", line)}
		}

		snap := Snapshot{}
		snap.User, _ = strconv.ParseUint(fields[1], 10, 64)
		snap.Nice, _ = strconv.ParseUint(fields[2], 10, 64)
		snap.System, _ = strconv.ParseUint(fields[3], 10, 64)
		snap.Idle, _ = strconv.ParseUint(fields[4], 10, 64)
		snap.IOWait, _ = strconv.ParseUint(fields[5], 10, 64)
		snap.IRQ, _ = strconv.ParseUint(fields[6], 10, 64)
		snap.SoftIRQ, _ = strconv.ParseUint(fields[7], 10, 64)
		return snap, nil
	}
	if err := scanner.Err(); err != nil {
		return Snapshot{}, &ReadError{Path: p.path, Err: err}
	}

	return Snapshot{}, &ReadError{Path: p.path, Err: fmt.Errorf("cpu line not found")}
}
