// Package workload loads process definitions for the simulator.
//
// A workload is a CSV file with one process per row: id, burst, arrival and an optional
// fourth priority column that is accepted and ignored. Lines starting with '#' are comments.
// Sources are local paths or http(s) URLs.
package workload

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bradleyombachi/rrsim/sim"
)

var (
	ErrFetch     = errors.New("fetching workload")
	ErrMalformed = errors.New("malformed workload line")
)

// Load opens source and parses the processes it holds.
func Load(ctx context.Context, source string) ([]sim.Process, error) {
	rc, err := Open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			logrus.Warnf("closing workload %s: %v", source, cerr)
		}
	}()
	processes, err := LoadProcesses(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	logrus.Infof("loaded %d processes from %s", len(processes), source)
	return processes, nil
}

// Open returns a reader over source: an HTTP GET for http(s) URLs, the file otherwise.
func Open(ctx context.Context, source string) (io.ReadCloser, error) {
	if isURL(source) {
		return fetch(ctx, source)
	}
	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("opening workload file: %w", err)
	}
	return f, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %s returned %s", ErrFetch, url, resp.Status)
	}
	logrus.Debugf("fetched workload from %s", url)
	return resp.Body, nil
}

// LoadProcesses parses CSV rows of id, burst, arrival[, priority] into processes with
// unset start and finish times, in file order.
func LoadProcesses(r io.Reader) ([]sim.Process, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var processes []sim.Process
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		row, _ := reader.FieldPos(0)
		if len(record) < 3 || len(record) > 4 {
			return nil, fmt.Errorf("%w %d: want 3 or 4 fields, got %d", ErrMalformed, row, len(record))
		}
		id, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			return nil, fmt.Errorf("%w %d: id: %v", ErrMalformed, row, err)
		}
		burst, err := parseInt(record[1])
		if err != nil {
			return nil, fmt.Errorf("%w %d: burst: %v", ErrMalformed, row, err)
		}
		arrival, err := parseInt(record[2])
		if err != nil {
			return nil, fmt.Errorf("%w %d: arrival: %v", ErrMalformed, row, err)
		}
		if len(record) == 4 {
			logrus.Debugf("line %d: ignoring priority %q", row, record[3])
		}
		processes = append(processes, sim.NewProcess(id, arrival, burst))
	}
	return processes, nil
}

func parseInt(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}
