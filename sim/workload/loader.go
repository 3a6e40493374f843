// Package workload loads process sets for the scheduling engine.
//
// Two formats are supported:
//   - text: one "arrival burst priority" triple per line, whitespace separated
//   - YAML: a WorkloadSpec with a processes list (files ending in .yaml or .yml)
package workload

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/schedsim/sim"
)

// ErrNoProcesses is returned when a workload source yields no process at all.
// It is a usage-level failure, distinct from running an empty process set.
var ErrNoProcesses = errors.New("no processes loaded")

// ParseWorkload reads whitespace-separated "arrival burst priority" triples.
// Lines whose first three fields do not parse as integers (blank lines,
// comments, headers, garbage) are skipped without aborting the load; fields
// after the third are ignored. PIDs are assigned sequentially from 1 in the
// order records are accepted. Lines of any length are accepted.
func ParseWorkload(r io.Reader) ([]sim.Process, error) {
	reader := bufio.NewReader(r)
	var procs []sim.Process
	lineNo := 0
	for {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("reading workload: %w", err)
		}
		if line != "" {
			lineNo++
			if triple, ok := parseTriple(line); ok {
				procs = append(procs, sim.NewProcess(len(procs)+1, triple[0], triple[1], int(triple[2])))
			} else {
				logrus.Debugf("workload: skipping line %d (%d bytes)", lineNo, len(line))
			}
		}
		if err == io.EOF {
			break
		}
	}
	if len(procs) == 0 {
		return nil, ErrNoProcesses
	}
	return procs, nil
}

// parseTriple extracts three integers from the start of a line.
func parseTriple(line string) ([3]int64, bool) {
	var out [3]int64
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return out, false
	}
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseInt(fields[i], 10, 64)
		if err != nil {
			return out, false
		}
		out[i] = v
	}
	return out, true
}

// LoadWorkload reads a workload file. Files ending in .yaml or .yml are decoded
// as a WorkloadSpec; anything else is parsed as text triples.
func LoadWorkload(path string) ([]sim.Process, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		spec, err := LoadWorkloadSpec(path)
		if err != nil {
			return nil, err
		}
		return spec.ToProcesses()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening workload %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // read-only file

	procs, err := ParseWorkload(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logrus.Infof("Loaded %d processes from %s", len(procs), path)
	return procs, nil
}
