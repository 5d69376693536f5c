// Package samplelog persists utilization samples to an append-only CSV log.
//
// The log is one record per line: an RFC 3339 timestamp with millisecond
// precision and the utilization fraction with four decimal places. A
// "timestamp,utilization" header is written when the file is created or
// empty. Every append is forced to stable storage before it returns, so a
// record that Append acknowledged survives an immediate crash.
package samplelog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/danpilch/sampled/pkg/sampler"
)

const (
	header     = "timestamp,utilization"
	timeLayout = "2006-01-02T15:04:05.000Z07:00"
)

// Log is an open sample log. It is not safe for concurrent use; the
// consumer task owns it exclusively.
type Log struct {
	path   string
	file   *os.File
	closed bool
}

// Open opens the log for appending, creating it if needed. Failure here is
// fatal to the pipeline: there is no sink to collect into.
func Open(path string) (*Log, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("cannot open sample log %q: %w", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("cannot stat sample log %q: %w", path, err)
	}

	l := &Log{path: path, file: file}
	if info.Size() == 0 {
		if err := l.writeLine(header); err != nil {
			file.Close()
			return nil, err
		}
	}
	return l, nil
}

// Path returns the log file path.
func (l *Log) Path() string {
	return l.path
}

// Append writes one record and forces it to stable storage before
// returning. A failure means the sample was not durably recorded and the
// pipeline must not continue as if it were.
func (l *Log) Append(s sampler.Sample) error {
	line := s.Time.UTC().Format(timeLayout) + "," + strconv.FormatFloat(s.Utilization, 'f', 4, 64)
	return l.writeLine(line)
}

func (l *Log) writeLine(line string) error {
	if _, err := l.file.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("cannot append to sample log %q: %w", l.path, err)
	}
	if err := flush(l.file); err != nil {
		return fmt.Errorf("cannot flush sample log %q: %w", l.path, err)
	}
	return nil
}

// Close syncs and releases the log. Calls after the first return nil.
func (l *Log) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true

	if err := flush(l.file); err != nil {
		l.file.Close()
		return fmt.Errorf("cannot flush sample log %q: %w", l.path, err)
	}
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("cannot close sample log %q: %w", l.path, err)
	}
	return nil
}

// ReadAll loads every sample from a log file. The header row and blank
// lines are skipped; a malformed record is an error.
func ReadAll(path string) ([]sampler.Sample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read sample log %q: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 2

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot parse sample log %q: %w", path, err)
	}

	var samples []sampler.Sample
	for _, rec := range records {
		if rec[0] == "timestamp" {
			continue
		}
		t, err := time.Parse(timeLayout, rec[0])
		if err != nil {
			return nil, fmt.Errorf("cannot parse sample log %q: bad timestamp %q: %w", path, rec[0], err)
		}
		util, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse sample log %q: bad utilization %q: %w", path, rec[1], err)
		}
		samples = append(samples, sampler.Sample{Time: t, Utilization: util})
	}
	return samples, nil
}
