//go:build darwin

package procstat

import (
	"errors"

	"github.com/shirou/gopsutil/v4/cpu"
)

var errNoCPUTimes = errors.New("no cpu times reported")

// darwin has no procfs; gopsutil wraps host_processor_info and reports
// cumulative seconds per state.
const ticksPerSecond = 100

// HostSource reads counters through gopsutil.
type HostSource struct{}

// NewHostSource creates the darwin counter source.
func NewHostSource() *HostSource {
	return &HostSource{}
}

// Read returns the aggregate counters converted to ticks.
func (h *HostSource) Read() (Snapshot, error) {
	times, err := cpu.Times(false)
	if err != nil {
		return Snapshot{}, &ReadError{Path: "host_processor_info", Err: err}
	}
	if len(times) == 0 {
		return Snapshot{}, &ReadError{Path: "host_processor_info", Err: errNoCPUTimes}
	}

	t := times[0]
	return Snapshot{
		User:    toTicks(t.User),
		Nice:    toTicks(t.Nice),
		System:  toTicks(t.System),
		Idle:    toTicks(t.Idle),
		IOWait:  toTicks(t.Iowait),
		IRQ:     toTicks(t.Irq),
		SoftIRQ: toTicks(t.Softirq),
	}, nil
}

func toTicks(seconds float64) uint64 {
	return uint64(seconds * ticksPerSecond)
}

// DefaultSource returns the platform counter source.
func DefaultSource() Source {
	return NewHostSource()
}
