package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/danielpatrickdp/behavior-twin/internal/observation"
	"github.com/danielpatrickdp/behavior-twin/internal/signals"
	"github.com/danielpatrickdp/behavior-twin/internal/twinstate"
)

// #region main

// twin-live consumes observation JSON lines from stdin (one per line, as
// the observer writes them) and folds each into the incremental twin
// state, so live counters survive restarts between batch passes.
func main() {
	statePath := envOr("TWIN_STATE", "logs/digital_twin_state.json")
	store := twinstate.NewStore(statePath)

	fmt.Printf("twin-live: state at %s\n", statePath)

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var obs observation.Observation
		if err := json.Unmarshal([]byte(line), &obs); err != nil {
			log.Printf("skip line: %v", err)
			continue
		}
		if obs.Mode != "" && !observation.KnownMode(obs.Mode) {
			log.Printf("unrecognized mode %q", obs.Mode)
		}

		if err := store.Apply(obs); err != nil {
			log.Printf("state update: %v", err)
			continue
		}

		sig := signals.Extract(obs)
		fmt.Printf("[%s] mode=%s productivity=%.3f\n",
			obs.TS.Format("15:04:05"), sig.Mode, signals.ProductivityScore(sig))
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("read stdin: %v", err)
	}
}

// #endregion main

// #region helpers

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion helpers
