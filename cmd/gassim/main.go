package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gassim/internal/config"
	"github.com/san-kum/gassim/internal/engine"
	"github.com/san-kum/gassim/internal/metrics"
	"github.com/san-kum/gassim/internal/particle"
	"github.com/san-kum/gassim/internal/spawn"
	"github.com/san-kum/gassim/internal/storage"
	"github.com/san-kum/gassim/internal/stream"
	"github.com/san-kum/gassim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	count      int
	horizon    float64
	frequency  float64
	seed       int64
	tracer     bool
	configFile string
	preset     string
	quiet      bool
	// Frame rate for live view and serve pacing
	frameRate int
	// Listen address for serve
	addr string
)

// main registers commands and flags for the gassim CLI and executes the root
// command. It exits the process with status 1 if command execution returns
// an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "gassim",
		Short: "event-driven hard-sphere gas simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gassim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation and print temperature per tick",
		RunE:  runGas,
	}
	addSimFlags(runCmd)
	runCmd.Flags().BoolVar(&quiet, "quiet", false, "suppress per-tick output")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live terminal visualization",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "run simulation and stream snapshots over websocket",
		RunE:  runServe,
	}
	addSimFlags(serveCmd)
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	serveCmd.Flags().IntVar(&frameRate, "fps", 30, "ticks per wall-clock second")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run's temperature series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, serveCmd, listCmd, plotCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&count, "particles", "n", config.DefaultCount, "number of gas particles")
	cmd.Flags().Float64Var(&horizon, "time", config.DefaultHorizon, "simulated time to run")
	cmd.Flags().Float64Var(&frequency, "frequency", config.DefaultFrequency, "ticks per simulated time unit")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().BoolVar(&tracer, "tracer", true, "include the heavy Brownian tracer")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig merges preset, config file, and flags, in increasing
// priority: flags explicitly set on the command line always win.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("particles") {
		cfg.Count = count
	}
	if cmd.Flags().Changed("time") {
		cfg.Horizon = horizon
	}
	if cmd.Flags().Changed("frequency") {
		cfg.Frequency = frequency
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("tracer") {
		cfg.Tracer.Enabled = tracer
		if cfg.Tracer.Radius == 0 {
			cfg.Tracer.Radius = config.DefaultTracerRadius
		}
		if cfg.Tracer.Mass == 0 {
			cfg.Tracer.Mass = config.DefaultTracerMass
		}
	}

	return cfg, nil
}

func buildEngine(cmd *cobra.Command) (*engine.Engine, *config.Config, []*particle.Particle, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	particles, err := spawn.FromConfig(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	eng, err := engine.New(particles, engine.Config{Horizon: cfg.Horizon, Frequency: cfg.Frequency})
	if err != nil {
		return nil, nil, nil, err
	}
	return eng, cfg, particles, nil
}

func runGas(cmd *cobra.Command, args []string) error {
	eng, cfg, particles, err := buildEngine(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	temp := metrics.NewTemperature()
	drift := metrics.NewTemperatureDrift()

	var times, temps []float64
	eng.SetTickFunc(func(t float64, snaps []particle.Snapshot) (engine.Decision, error) {
		temp.Observe(t, snaps)
		drift.Observe(t, snaps)
		times = append(times, t)
		temps = append(temps, temp.Value())
		if !quiet {
			fmt.Printf("t=%10.2f  T=%.6e\n", t, temp.Value())
		}
		return engine.Continue, nil
	})

	fmt.Printf("running %d particles to t=%.0f...\n", len(particles), cfg.Horizon)
	start := time.Now()

	if err := eng.Run(context.Background()); err != nil {
		return err
	}

	elapsed := time.Since(start)

	metricVals := map[string]float64{
		temp.Name():  temp.Value(),
		drift.Name(): drift.Value(),
	}
	runID, err := st.Save(cfg.Seed, len(particles), cfg.Horizon, cfg.Frequency, times, temps, metricVals)
	if err != nil {
		return err
	}

	fmt.Printf("\ncompleted in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", len(times))
	fmt.Println("\nmetrics:")
	for name, val := range metricVals {
		fmt.Printf("  %s: %.6e\n", name, val)
	}

	if len(temps) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(temps,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("system temperature"),
		))
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	eng, _, _, err := buildEngine(cmd)
	if err != nil {
		return err
	}
	return viz.RunLive(eng, frameRate)
}

func runServe(cmd *cobra.Command, args []string) error {
	eng, cfg, particles, err := buildEngine(cmd)
	if err != nil {
		return err
	}

	b := stream.NewBroadcaster()
	defer b.Close()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", b.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		}
	}()
	defer srv.Shutdown(context.Background())

	interval := time.Duration(0)
	if frameRate > 0 {
		interval = time.Second / time.Duration(frameRate)
	}

	eng.SetTickFunc(func(t float64, snaps []particle.Snapshot) (engine.Decision, error) {
		frame := stream.NewFrame(t, metrics.System(snaps), snaps)
		if err := b.Publish(context.Background(), frame); err != nil {
			return engine.Stop, err
		}
		// pace simulated ticks against wall-clock time
		if interval > 0 {
			time.Sleep(interval)
		}
		return engine.Continue, nil
	})

	fmt.Printf("streaming %d particles on ws://%s/ws to t=%.0f\n", len(particles), addr, cfg.Horizon)
	return eng.Run(context.Background())
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tPARTICLES\tHORIZON\tFREQ\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.0f\t%.2f\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Particles,
			run.Horizon,
			run.Frequency,
			run.Seed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, temps, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(temps) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("particles: %d\n", meta.Particles)
	fmt.Printf("ticks: %d\n\n", len(temps))

	fmt.Println(asciigraph.Plot(temps,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("system temperature vs tick"),
	))

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
