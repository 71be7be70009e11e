package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/davidahmann/steward/internal/eval"
	"github.com/davidahmann/steward/internal/procedure"
	"github.com/davidahmann/steward/internal/publish"
	"github.com/davidahmann/steward/internal/runner"
	"github.com/davidahmann/steward/pkg/types"
)

const (
	defaultRecordsDir     = "data/processed/judgment_records"
	defaultEscalationsDir = "data/processed/escalations"
	defaultPagesDir       = "docs/data"
)

func main() {
	exitFn(run(os.Args, os.Stdout, os.Stderr))
}

var exitFn = os.Exit

func run(args []string, stdout io.Writer, stderr io.Writer) int {
	if len(args) < 2 {
		usage(stderr)
		return 2
	}

	switch args[1] {
	case "run":
		return handleRun(args[2:], stdout, stderr)
	case "latest":
		return handleLatest(args[2:], stdout, stderr)
	case "publish":
		return handlePublish(args[2:], stdout, stderr)
	case "eval":
		return handleEval(args[2:], stdout, stderr)
	default:
		usage(stderr)
		return 2
	}
}

func handleRun(args []string, stdout io.Writer, stderr io.Writer) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	mandatePath := fs.String("mandate", "", "path to mandate YAML")
	scenarioPath := fs.String("scenario", "", "path to scenario YAML")
	thresholdsPath := fs.String("thresholds", "", "path to procedure thresholds YAML")
	outDir := fs.String("out-dir", defaultRecordsDir, "output directory for judgment records")
	escalationsDir := fs.String("escalations-dir", defaultEscalationsDir, "output directory for escalation stubs")
	if err := fs.Parse(args); err != nil {
		fs.Usage()
		return 2
	}
	if *mandatePath == "" || *scenarioPath == "" {
		fmt.Fprintln(stderr, "run requires --mandate and --scenario")
		fs.Usage()
		return 2
	}

	record, recordPath, err := runner.Run(runner.Paths{
		Mandate:        *mandatePath,
		Scenario:       *scenarioPath,
		Thresholds:     *thresholdsPath,
		RecordsDir:     *outDir,
		EscalationsDir: *escalationsDir,
	})
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}

	fmt.Fprintf(stdout, "Wrote judgment record: %s\n", recordPath)
	if record.Escalation != nil {
		fmt.Fprintln(stdout, "Escalation routed for human review.")
	}
	return 0
}

func handleLatest(args []string, stdout io.Writer, stderr io.Writer) int {
	fs := flag.NewFlagSet("latest", flag.ContinueOnError)
	fs.SetOutput(stderr)
	recordsDir := fs.String("records-dir", defaultRecordsDir, "directory of judgment records")
	if err := fs.Parse(args); err != nil {
		fs.Usage()
		return 2
	}

	count := 2
	if fs.NArg() == 1 {
		parsed, err := strconv.Atoi(fs.Arg(0))
		if err != nil || parsed < 1 {
			fmt.Fprintln(stderr, "latest takes an optional positive count")
			return 2
		}
		count = parsed
	} else if fs.NArg() > 1 {
		fmt.Fprintln(stderr, "latest takes an optional count")
		return 2
	}

	if _, err := os.Stat(*recordsDir); err != nil {
		fmt.Fprintf(stderr, "no records directory found at %s\n", *recordsDir)
		return 1
	}

	paths, err := filepath.Glob(filepath.Join(*recordsDir, "*.yaml"))
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}
	if len(paths) == 0 {
		fmt.Fprintln(stderr, "no judgment records found")
		return 1
	}

	// Filenames start with the compact timestamp, so name order is time order.
	sort.Strings(paths)
	if len(paths) > count {
		paths = paths[len(paths)-count:]
	}
	for i := len(paths) - 1; i >= 0; i-- {
		if err := printSummary(stdout, paths[i]); err != nil {
			fmt.Fprintln(stderr, err.Error())
			return 1
		}
	}
	return 0
}

func printSummary(stdout io.Writer, path string) error {
	// #nosec G304 -- path comes from the operator-provided records directory.
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var record types.JudgmentRecord
	if err := yaml.Unmarshal(raw, &record); err != nil {
		return fmt.Errorf("record %s: %w", path, err)
	}

	fmt.Fprintln(stdout, path)
	fmt.Fprintf(stdout, "  authority.mandate_id: %s\n", record.Authority.MandateID)
	fmt.Fprintf(stdout, "  authority.procedure_id: %s\n", record.Authority.ProcedureID)
	fmt.Fprintf(stdout, "  outcome.type: %s\n", outcomeLabel(record.Outcome.Type))
	fmt.Fprintf(stdout, "  confidence.level: %.2f\n", record.Confidence.Level)
	fmt.Fprintf(stdout, "  constraints.hard_constraints_breached: %t\n", record.Constraints.HardConstraintsBreached)
	fmt.Fprintf(stdout, "  behavior.inaction: %t\n", record.Behavior.Inaction)
	fmt.Fprintf(stdout, "  behavior.escalated: %t\n", record.Behavior.Escalated)
	return nil
}

func outcomeLabel(outcome types.OutcomeType) string {
	switch outcome {
	case types.OutcomeEscalate:
		return color.New(color.FgRed).Sprint(string(outcome))
	case types.OutcomeRecommendAdjustment:
		return color.New(color.FgYellow).Sprint(string(outcome))
	case types.OutcomeAffirmAlignment:
		return color.New(color.FgGreen).Sprint(string(outcome))
	default:
		return string(outcome)
	}
}

func handlePublish(args []string, stdout io.Writer, stderr io.Writer) int {
	fs := flag.NewFlagSet("publish", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inDir := fs.String("in-dir", defaultRecordsDir, "input directory of YAML judgment records")
	outDir := fs.String("out-dir", defaultPagesDir, "output directory for the JSON snapshot")
	clean := fs.Bool("clean", false, "remove existing records output before publishing")
	if err := fs.Parse(args); err != nil {
		fs.Usage()
		return 2
	}

	index, err := publish.Publish(publish.Options{InDir: *inDir, OutDir: *outDir, Clean: *clean})
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}
	fmt.Fprintf(stdout, "Published %d index entries to %s\n", len(index.Records), *outDir)
	return 0
}

func handleEval(args []string, stdout io.Writer, stderr io.Writer) int {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	fs.SetOutput(stderr)
	casesPath := fs.String("cases", "", "path to expected outcomes YAML")
	thresholdsPath := fs.String("thresholds", "", "path to procedure thresholds YAML")
	if err := fs.Parse(args); err != nil {
		fs.Usage()
		return 2
	}
	if *casesPath == "" {
		fmt.Fprintln(stderr, "eval requires --cases")
		fs.Usage()
		return 2
	}

	thresholds := procedure.DefaultThresholds()
	if *thresholdsPath != "" {
		loaded, err := procedure.LoadThresholds(*thresholdsPath)
		if err != nil {
			fmt.Fprintln(stderr, err.Error())
			return 1
		}
		thresholds = loaded
	}

	if err := eval.EvaluateExpectedOutcomes(*casesPath, thresholds); err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}
	fmt.Fprintln(stdout, "All expected outcomes satisfied.")
	return 0
}

func usage(w io.Writer) {
	fmt.Fprint(w, `Steward CLI

Usage:
  steward run --mandate PATH --scenario PATH [--thresholds PATH] [--out-dir DIR] [--escalations-dir DIR]
  steward latest [COUNT] [--records-dir DIR]
  steward publish [--in-dir DIR] [--out-dir DIR] [--clean]
  steward eval --cases PATH [--thresholds PATH]
`)
}
