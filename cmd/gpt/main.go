// Command gpt runs the generator/processor example (spec.md's canonical
// walkthrough model, examples/gpt) as a virtual simulation until no
// further event is scheduled, and prints a summary table of every state and event record observed,
// grounded on the teacher's testbench-main convention (see e.g.
// test/testbench/axpy/main.go): configure slog to a JSON log file, run
// the model, then report results on stdout.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/sarchlab/xdevs/engine"
	"github.com/sarchlab/xdevs/examples/gpt"
	"github.com/sarchlab/xdevs/transducer"
)

func main() {
	var (
		period     = flag.Float64("period", 2, "generator inter-arrival period")
		procTime   = flag.Float64("proc-time", 6, "processor service time")
		obsTime    = flag.Float64("obs-time", 100, "transducer observation window; the generator stops after it elapses")
		logPath    = flag.String("log", "gpt.json.log", "path to the JSON trace log")
		exhaustive = flag.Bool("exhaustive", false, "sample every target every cycle instead of only imminent ones")
	)
	flag.Parse()

	logFile, err := os.Create(*logPath)
	if err != nil {
		panic(err)
	}
	defer logFile.Close()
	slog.SetDefault(slog.New(slog.NewJSONHandler(logFile, nil)))

	exp, err := gpt.NewExperiment("GPT", *period, *procTime, *obsTime)
	if err != nil {
		panic(err)
	}

	table := transducer.NewTableTransducer("summary", *exhaustive, os.Stdout)
	table.AddTargetComponent(exp.Generator)
	table.AddTargetComponent(exp.Processor)
	table.AddTargetComponent(exp.Transducer)
	table.AddTargetPort(exp.Out)

	root := engine.NewRootCoordinator(exp.Coupled, false)
	if err := root.AddTransducer(table); err != nil {
		panic(err)
	}

	if err := root.Initialize(); err != nil {
		panic(err)
	}
	if err := root.RunUnbounded(); err != nil {
		panic(err)
	}
	if err := root.Exit(); err != nil {
		panic(err)
	}

	slog.Info("gpt: run complete",
		"jobs_arrived", exp.Transducer.Arrived(),
		"jobs_solved", exp.Transducer.Solved())
}
