package observation

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// #region load

// maxLineBytes bounds a single log line. Lines carrying a memoized
// 768-dim embedding run long.
const maxLineBytes = 4 * 1024 * 1024

// LoadFile reads a JSONL day log and returns its observations sorted by
// timestamp. Blank lines are skipped; a line that fails to parse aborts
// the load.
func LoadFile(path string) ([]Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var entries []Observation
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var obs Observation
		if err := json.Unmarshal([]byte(line), &obs); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", filepath.Base(path), lineNum, err)
		}
		entries = append(entries, obs)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TS.Before(entries[j].TS)
	})
	return entries, nil
}

// #endregion load

// #region latest

const (
	logPrefix = "screen_log_"
	logSuffix = ".jsonl"
	legacyLog = "screen_log.jsonl"
)

// LatestLogPath finds the newest dated day log in dir, falling back to the
// legacy undated log name.
func LatestLogPath(dir string) (string, error) {
	names, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read log dir: %w", err)
	}

	best := ""
	for _, entry := range names {
		name := entry.Name()
		if !strings.HasPrefix(name, logPrefix) || !strings.HasSuffix(name, logSuffix) {
			continue
		}
		// Dated names sort lexicographically in date order.
		if name > best {
			best = name
		}
	}
	if best != "" {
		return filepath.Join(dir, best), nil
	}

	legacy := filepath.Join(dir, legacyLog)
	if _, err := os.Stat(legacy); err == nil {
		return legacy, nil
	}
	return "", fmt.Errorf("no day logs found in %s", dir)
}

// #endregion latest
