//go:build linux

package procstat

// DefaultSource returns the platform counter source. On Linux that is the
// real procfs.
func DefaultSource() Source {
	return NewProcSource("/")
}
