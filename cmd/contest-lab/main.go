package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager"
	"github.com/scooter-solver/contest/config"
	"github.com/scooter-solver/contest/simulation"
	"github.com/scooter-solver/contest/simulation/laboratory"
	"github.com/scooter-solver/contest/simulation/visualization"
	"github.com/scooter-solver/contest/strategies"
	"github.com/tedsuo/ifrit"
	"github.com/tedsuo/ifrit/sigmon"
)

var configPath = flag.String("config", "", "path to a TOML config file")
var units = flag.String("units", "35", "comma separated units of the custom bids, in priority order")
var consideration = flag.String("consideration", "2", "comma separated consideration per unit of the custom bids")
var samples = flag.Int("samples", 0, "number of contests to sample (overrides the config)")
var workers = flag.Int("workers", 0, "number of concurrent contests (overrides the config)")
var seed = flag.Uint64("seed", 0, "base seed (overrides the config)")
var aggressive = flag.Int("aggressive", -1, "number of aggressive rivals (overrides the config)")
var neutral = flag.Int("neutral", -1, "number of neutral rivals (overrides the config)")
var multiplicative = flag.Bool("multiplicative", false, "multiply the partial utilities instead of adding them")
var svgPath = flag.String("svg", "", "write an SVG report card to this path")
var debug = flag.Bool("debug", false, "log every contest stage")

var errBidMismatch = errors.New("-units and -consideration need the same number of values")

func main() {
	flag.Parse()

	logLevel := lager.INFO
	if *debug {
		logLevel = lager.DEBUG
	}
	logger := lager.NewLogger("contest-lab")
	logger.RegisterSink(lager.NewWriterSink(os.Stdout, logLevel))

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatal("failed-to-load-config", err)
	}

	params, err := parseParams(*units, *consideration)
	if err != nil {
		logger.Fatal("failed-to-parse-bids", err)
	}

	builder := laboratory.NewExperimentBuilder(len(params.Units), "contest-lab")
	if !builder.Build().Satisfies(builder.Encode(params)) {
		logger.Info("bids-outside-search-space", lager.Data{"units": params.Units, "consideration": params.Consideration})
	}

	namer := strategies.NewNamer(logger, cfg.Namer.WordFile)
	f := simulation.NewIndependentUtilityFunction(logger, clock.NewClock(), namer, params, *cfg)

	process := ifrit.Invoke(sigmon.New(ifrit.RunFunc(func(signals <-chan os.Signal, ready chan<- struct{}) error {
		close(ready)

		type result struct {
			batch simulation.Batch
			err   error
		}
		done := make(chan result, 1)
		go func() {
			batch, err := f.Sample(cfg.Sampler.Samples)
			done <- result{batch, err}
		}()

		select {
		case r := <-done:
			if r.err != nil {
				return r.err
			}
			return writeReport(r.batch)
		case signal := <-signals:
			logger.Info("interrupted", lager.Data{"signal": signal.String()})
			return nil
		}
	})))

	err = <-process.Wait()
	if err != nil {
		logger.Fatal("failed-to-sample", err)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}

	if *samples > 0 {
		cfg.Sampler.Samples = *samples
	}
	if *workers > 0 {
		cfg.Sampler.Workers = *workers
	}
	if *seed > 0 {
		cfg.Sampler.Seed = *seed
	}
	if *aggressive >= 0 {
		cfg.Rivals.Aggressive = *aggressive
	}
	if *neutral >= 0 {
		cfg.Rivals.Neutral = *neutral
	}
	if *multiplicative {
		cfg.Sampler.Additive = false
	}

	return cfg, cfg.Validate()
}

func parseParams(units, consideration string) (strategies.CustomParams, error) {
	params := strategies.CustomParams{}
	for _, field := range strings.Split(units, ",") {
		u, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return strategies.CustomParams{}, err
		}
		params.Units = append(params.Units, u)
	}
	for _, field := range strings.Split(consideration, ",") {
		c, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return strategies.CustomParams{}, err
		}
		params.Consideration = append(params.Consideration, c)
	}

	if len(params.Units) != len(params.Consideration) {
		return strategies.CustomParams{}, errBidMismatch
	}
	return params, nil
}

func writeReport(batch simulation.Batch) error {
	report := visualization.NewReport(fmt.Sprintf("units=%s consideration=%s", *units, *consideration), batch)
	visualization.PrintReport(os.Stdout, report)

	if *svgPath == "" {
		return nil
	}
	return writeSVG(*svgPath, report)
}

// writeSVG reports write and close failures so a truncated report card is not
// mistaken for a complete one.
func writeSVG(path string, report *visualization.Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := f.Close()
		if err == nil {
			err = closeErr
		}
	}()

	w := bufio.NewWriter(f)
	svgReport := visualization.NewSVGReport(w, 1)
	svgReport.DrawHeader("Contest Lab")
	svgReport.DrawReportCard(report)
	svgReport.Done()

	return w.Flush()
}
