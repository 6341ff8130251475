package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/danielpatrickdp/behavior-twin/internal/behavior"
	"github.com/danielpatrickdp/behavior-twin/internal/cluster"
	"github.com/danielpatrickdp/behavior-twin/internal/feature"
	"github.com/danielpatrickdp/behavior-twin/internal/forecast"
	"github.com/danielpatrickdp/behavior-twin/internal/observation"
	"github.com/danielpatrickdp/behavior-twin/internal/profile"
	"github.com/danielpatrickdp/behavior-twin/internal/runlog"
	"github.com/danielpatrickdp/behavior-twin/internal/twin"
)

// #region report-output

// report is the JSON shape printed with -json. Feature rows are omitted:
// the renderer consumes aggregates, not per-tick data.
type report struct {
	Day             string                  `json:"day"`
	Observations    int                     `json:"observations"`
	Algorithm       string                  `json:"algorithm"`
	Clusters        map[int]profile.Profile `json:"clusters"`
	Flow            float64                 `json:"flow_state_likelihood"`
	Anomalies       []int                   `json:"anomaly_indices,omitempty"`
	ShortTerm       forecast.Result         `json:"short_term"`
	HourAhead       forecast.Result         `json:"hour_ahead"`
	BestHours       []twin.Window           `json:"best_hours"`
	WorstHours      []twin.Window           `json:"worst_hours"`
	TriggerApps     []twin.Trigger          `json:"trigger_apps"`
	TriggerContexts []twin.Trigger          `json:"trigger_contexts"`
	Stress          twin.Stress             `json:"stress"`
	Alignment       twin.Alignment          `json:"alignment"`
	Insights        []string                `json:"insights"`
}

// #endregion report-output

// #region main

func main() {
	logPath := flag.String("log", "", "path to a day log (JSONL)")
	logDir := flag.String("dir", "logs", "log directory; newest day log is used when -log is unset")
	configPath := flag.String("config", "", "optional YAML config overriding blend weights")
	dbPath := flag.String("db", "", "optional run-log SQLite database")
	asJSON := flag.Bool("json", false, "print the full report as JSON")
	flag.Parse()

	path := *logPath
	if path == "" {
		var err error
		path, err = observation.LatestLogPath(*logDir)
		if err != nil {
			log.Fatalf("resolve day log: %v", err)
		}
	}

	obs, err := observation.LoadFile(path)
	if err != nil {
		log.Fatalf("load day log: %v", err)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	analysis := behavior.Analyze(obs, cluster.DefaultEngine())
	features := feature.Build(obs, analysis.Labels)
	hourAhead := forecast.NewChain(cfg.Forecast).Run(features)
	t := twin.Build(obs, analysis, hourAhead, cfg)

	day := ""
	if len(obs) > 0 {
		day = obs[0].TS.Format("2006-01-02")
	}

	rep := report{
		Day:             day,
		Observations:    len(obs),
		Algorithm:       analysis.Algorithm,
		Clusters:        analysis.Clusters,
		Flow:            analysis.FlowStateLikelihood,
		Anomalies:       analysis.AnomalyIndices,
		ShortTerm:       t.ShortTerm,
		HourAhead:       t.HourAhead,
		BestHours:       t.BestHours,
		WorstHours:      t.WorstHours,
		TriggerApps:     t.TriggerApps,
		TriggerContexts: t.TriggerContexts,
		Stress:          t.Stress,
		Alignment:       t.Alignment,
		Insights:        t.Insights,
	}

	if *dbPath != "" {
		if err := recordRun(*dbPath, rep); err != nil {
			log.Printf("run log: %v", err)
		}
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			log.Fatalf("encode report: %v", err)
		}
		return
	}

	fmt.Printf("Day %s: %d observations, %d clusters via %s (flow %.3f)\n",
		rep.Day, rep.Observations, len(rep.Clusters), rep.Algorithm, rep.Flow)
	for _, line := range rep.Insights {
		fmt.Println("  - " + line)
	}
}

// #endregion main

// #region runlog

// recordRun appends this pass to the run provenance log.
func recordRun(dbPath string, rep report) error {
	rl, err := runlog.Open(dbPath)
	if err != nil {
		return err
	}
	defer rl.Close()

	return rl.Record(runlog.Run{
		Day:          rep.Day,
		Observations: rep.Observations,
		Algorithm:    rep.Algorithm,
		Clusters:     len(rep.Clusters),
		Flow:         rep.Flow,
		Predicted:    rep.ShortTerm.Predicted,
		Insights:     rep.Insights,
	})
}

// #endregion runlog
