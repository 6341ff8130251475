package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"

	"github.com/danielpatrickdp/behavior-twin/internal/runlog"
	"github.com/danielpatrickdp/behavior-twin/internal/twinstate"
)

// #region main

// twin-inspect dumps the persisted incremental state and, when a run log
// is given, the most recent batch analysis runs.
func main() {
	statePath := flag.String("state", "logs/digital_twin_state.json", "twin state file")
	dbPath := flag.String("db", "", "optional run-log SQLite database")
	limit := flag.Int("n", 5, "number of recent runs to show")
	flag.Parse()

	printState(*statePath)

	if *dbPath != "" {
		if err := printRuns(*dbPath, *limit); err != nil {
			log.Fatalf("run log: %v", err)
		}
	}
}

// #endregion main

// #region state

func printState(path string) {
	store := twinstate.NewStore(path)
	state := store.Load()

	fmt.Printf("state: %s\n", path)
	fmt.Printf("  events: %d\n", state.Events)
	if state.LastMode != nil {
		fmt.Printf("  last mode: %s\n", *state.LastMode)
	}

	hours := make([]int, 0, len(state.HourlyProductivity))
	for key := range state.HourlyProductivity {
		h, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		hours = append(hours, h)
	}
	sort.Ints(hours)
	for _, h := range hours {
		bucket := state.HourlyProductivity[strconv.Itoa(h)]
		avg := 0.0
		if bucket.Count > 0 {
			avg = bucket.Sum / float64(bucket.Count)
		}
		fmt.Printf("  %02d:00  avg productivity %.3f over %d ticks\n", h, avg, bucket.Count)
	}

	if len(state.ModeTransitions) > 0 {
		fmt.Println("  mode transitions:")
		keys := make([]string, 0, len(state.ModeTransitions))
		for k := range state.ModeTransitions {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("    %s: %d\n", k, state.ModeTransitions[k])
		}
	}
}

// #endregion state

// #region runs

func printRuns(dbPath string, limit int) error {
	if _, err := os.Stat(dbPath); err != nil {
		return err
	}
	rl, err := runlog.Open(dbPath)
	if err != nil {
		return err
	}
	defer rl.Close()

	runs, err := rl.Recent(limit)
	if err != nil {
		return err
	}

	fmt.Printf("\nrecent runs (%d):\n", len(runs))
	for _, run := range runs {
		fmt.Printf("  %s  day=%s obs=%d algo=%s clusters=%d flow=%.3f\n",
			run.CreatedAt.Format("2006-01-02 15:04:05"), run.Day,
			run.Observations, run.Algorithm, run.Clusters, run.Flow)
		for _, line := range run.Insights {
			fmt.Println("      - " + line)
		}
	}
	return nil
}

// #endregion runs
