package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/rocketsim/internal/analysis"
	"github.com/san-kum/rocketsim/internal/config"
	"github.com/san-kum/rocketsim/internal/export"
	"github.com/san-kum/rocketsim/internal/gnc"
	"github.com/san-kum/rocketsim/internal/gravity"
	"github.com/san-kum/rocketsim/internal/metrics"
	"github.com/san-kum/rocketsim/internal/orbital"
	"github.com/san-kum/rocketsim/internal/sim"
	"github.com/san-kum/rocketsim/internal/storage"
	"github.com/san-kum/rocketsim/internal/tui"
	"github.com/san-kum/rocketsim/internal/vehicle"
	"github.com/san-kum/rocketsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	dt         float64
	duration   float64
	controller string
	kp         float64
	ki         float64
	kd         float64
	csvPath    string
	jsonPath   string
	svgPath    string
	saveRun    bool
	live       bool
	frameRate  int
	replay     bool
	// Orbit parameters
	orbitAlt float64
	orbitInc float64
	useJ2    bool
	// Transfer parameters
	fromAlt float64
	toAlt   float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rocketsim",
		Short: "multi-stage rocket flight simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rocketsim", "data directory")

	flyCmd := &cobra.Command{
		Use:   "fly [preset]",
		Short: "fly a mission",
		Args:  cobra.MaximumNArgs(1),
		RunE:  flyMission,
	}
	flyCmd.Flags().StringVar(&configFile, "config", "", "mission file path (yaml)")
	flyCmd.Flags().Float64Var(&dt, "dt", 0.005, "timestep")
	flyCmd.Flags().Float64Var(&duration, "time", 600.0, "time limit")
	flyCmd.Flags().StringVar(&controller, "controller", "tvc", "controller (tvc, bangbang, zero)")
	flyCmd.Flags().Float64Var(&kp, "kp", 2.0, "pid kp")
	flyCmd.Flags().Float64Var(&ki, "ki", 0.1, "pid ki")
	flyCmd.Flags().Float64Var(&kd, "kd", 0.5, "pid kd")
	flyCmd.Flags().StringVar(&csvPath, "csv", "", "write trajectory CSV to path")
	flyCmd.Flags().StringVar(&jsonPath, "json", "", "write flight report JSON to path")
	flyCmd.Flags().StringVar(&svgPath, "svg", "", "write ascent profile SVG to path")
	flyCmd.Flags().BoolVar(&saveRun, "save", false, "archive the run in the data directory")
	flyCmd.Flags().BoolVar(&live, "live", false, "render the ascent live in the terminal")
	flyCmd.Flags().IntVar(&frameRate, "fps", 30, "live view frame rate")
	flyCmd.Flags().BoolVar(&replay, "replay", false, "open the replay viewer after the flight")

	compareCmd := &cobra.Command{
		Use:   "compare [preset] [preset] ...",
		Short: "fly several presets concurrently and compare them",
		Args:  cobra.MinimumNArgs(2),
		RunE:  comparePresets,
	}
	compareCmd.Flags().Float64Var(&dt, "dt", 0.005, "timestep")
	compareCmd.Flags().Float64Var(&duration, "time", 600.0, "time limit")

	orbitCmd := &cobra.Command{
		Use:   "orbit",
		Short: "propagate a circular orbit",
		RunE:  propagateOrbit,
	}
	orbitCmd.Flags().Float64Var(&orbitAlt, "alt", 400, "altitude [km]")
	orbitCmd.Flags().Float64Var(&orbitInc, "inc", 51.6, "inclination [deg]")
	orbitCmd.Flags().Float64Var(&duration, "time", 0, "duration [s] (0 = one period)")
	orbitCmd.Flags().Float64Var(&dt, "dt", 1.0, "timestep")
	orbitCmd.Flags().BoolVar(&useJ2, "j2", false, "include J2 oblateness perturbation")

	transferCmd := &cobra.Command{
		Use:   "transfer",
		Short: "compute a Hohmann transfer between circular orbits",
		RunE:  hohmannTransfer,
	}
	transferCmd.Flags().Float64Var(&fromAlt, "from", 400, "departure altitude [km]")
	transferCmd.Flags().Float64Var(&toAlt, "to", 35786, "arrival altitude [km]")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list mission presets",
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list archived runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot an archived run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the attitude control loop",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	replayCmd := &cobra.Command{
		Use:   "replay [run_id]",
		Short: "replay an archived run",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRun,
	}

	rootCmd.AddCommand(flyCmd, compareCmd, orbitCmd, transferCmd, presetsCmd, listCmd, plotCmd, exportCmd, analyzeCmd, replayCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func flyMission(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if len(args) == 1 {
		cfg = config.Preset(args[0])
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load mission file: %w", err)
		}
		cfg = loaded
	}

	// CLI flags override both preset and file.
	if cmd.Flags().Changed("dt") {
		cfg.Sim.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Sim.MaxTime = duration
	}
	if cmd.Flags().Changed("controller") {
		cfg.Controller.Kind = controller
	}
	if cmd.Flags().Changed("kp") {
		cfg.Controller.Kp = kp
	}
	if cmd.Flags().Changed("ki") {
		cfg.Controller.Ki = ki
	}
	if cmd.Flags().Changed("kd") {
		cfg.Controller.Kd = kd
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	mission, err := cfg.ToMission()
	if err != nil {
		return err
	}
	ctrl, err := cfg.ToController()
	if err != nil {
		return err
	}

	runner := sim.New(mission, ctrl)
	runner.AddMetric(&metrics.MaxQ{})
	runner.AddMetric(&metrics.ControlEffort{})
	runner.AddDetector(sim.ApogeeDetector{})

	var renderer *tui.LiveRenderer
	if live {
		renderer = tui.NewLiveRenderer(mission.Name, frameRate)
		renderer.Start()
		runner.AddObserver(renderer)
	}

	fmt.Printf("flying %s (%d stages, %.0f m/s ideal delta-v)...\n",
		mission.Name, len(mission.Stages), mission.TotalDeltaV())
	start := time.Now()

	result, err := runner.Run(cfg.ToSim())
	if renderer != nil {
		renderer.Stop()
	}
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	fmt.Printf("completed in %v (%d samples)\n\n", elapsed, len(result.Trajectory))

	printSummary(result)
	printEvents(result)
	plotAltitude(result)

	if csvPath != "" {
		if err := export.WriteTrajectoryFile(csvPath, result.Trajectory); err != nil {
			return err
		}
		fmt.Printf("trajectory written to %s\n", csvPath)
	}
	if jsonPath != "" {
		if err := export.WriteSummaryFile(jsonPath, mission, export.Summarize(result.Trajectory)); err != nil {
			return err
		}
		fmt.Printf("report written to %s\n", jsonPath)
	}
	if svgPath != "" {
		if err := export.WriteProfileSVGFile(svgPath, result.Trajectory, 800, 400); err != nil {
			return err
		}
		fmt.Printf("profile written to %s\n", svgPath)
	}

	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(mission.Name, len(mission.Stages), cfg.ToSim(), cfg.Controller.Kind, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	if replay {
		p := tea.NewProgram(viz.NewModel(mission.Name, result))
		if _, err := p.Run(); err != nil {
			return err
		}
	}

	return nil
}

func printSummary(result *sim.Result) {
	summary := export.Summarize(result.Trajectory)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "APOGEE\tMAX SPEED\tMAX MACH\tMAX ACCEL\tFLIGHT TIME\tIMPACT SPEED")
	fmt.Fprintf(w, "%.0f m\t%.1f m/s\t%.2f\t%.1f g\t%.1f s\t%.1f m/s\n",
		summary.ApogeeM,
		summary.MaxSpeed,
		summary.MaxMach,
		summary.MaxAccelG,
		summary.FlightTime,
		summary.ImpactSpeed,
	)
	w.Flush()

	if len(result.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		for name, val := range result.Metrics {
			fmt.Printf("  %s: %.3f\n", name, val)
		}
	}
	fmt.Println()
}

func printEvents(result *sim.Result) {
	if len(result.Events) == 0 {
		return
	}
	fmt.Println("events:")
	for _, ev := range result.Events {
		fmt.Printf("  %s\n", ev.String())
	}
	fmt.Println()
}

func plotAltitude(result *sim.Result) {
	const samples = 400
	n := len(result.Trajectory)
	if n < 2 {
		return
	}

	stride := n / samples
	if stride < 1 {
		stride = 1
	}
	data := make([]float64, 0, samples+1)
	for i := 0; i < n; i += stride {
		data = append(data, result.Trajectory[i].Altitude())
	}

	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("altitude [m]"),
	))
	fmt.Println()
}

func comparePresets(cmd *cobra.Command, args []string) error {
	missions := make([]vehicle.Mission, 0, len(args))
	for _, name := range args {
		cfg := config.Preset(name)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
		m, err := cfg.ToMission()
		if err != nil {
			return err
		}
		missions = append(missions, m)
	}

	batch := sim.NewBatch(missions, func() gnc.Controller { return gnc.NewTVC() })

	cfg := sim.Config{Dt: dt, MaxTime: duration}
	results, err := batch.Run(context.Background(), cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSTAGES\tDELTA-V\tAPOGEE\tMAX SPEED\tFLIGHT TIME")
	for i, res := range results {
		summary := export.Summarize(res.Trajectory)
		fmt.Fprintf(w, "%s\t%d\t%.0f m/s\t%.0f m\t%.1f m/s\t%.1f s\n",
			args[i],
			len(missions[i].Stages),
			missions[i].TotalDeltaV(),
			summary.ApogeeM,
			summary.MaxSpeed,
			summary.FlightTime,
		)
	}
	return w.Flush()
}

func propagateOrbit(cmd *cobra.Command, args []string) error {
	elements := orbital.Circular(orbitAlt*1000, orbitInc*math.Pi/180)
	pos, vel := elements.StateVector()

	initial := orbital.State{Pos: pos, Vel: vel}
	dur := duration
	if dur <= 0 {
		dur = elements.Period()
	}

	fmt.Printf("propagating %.0f km x %.1f° orbit for %.0f s (J2: %v)\n\n",
		orbitAlt, orbitInc, dur, useJ2)

	states := orbital.Propagate(initial, dt, dur, useJ2)
	final := states[len(states)-1]
	finalElements := orbital.FromStateVector(final.Pos, final.Vel)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tSMA\tECC\tINC\tRAAN\tPERIOD")
	fmt.Fprintf(w, "initial\t%.1f km\t%.6f\t%.3f°\t%.3f°\t%.1f s\n",
		elements.SMA/1000, elements.Ecc, elements.Inc*180/math.Pi,
		elements.RAAN*180/math.Pi, elements.Period())
	fmt.Fprintf(w, "final\t%.1f km\t%.6f\t%.3f°\t%.3f°\t%.1f s\n",
		finalElements.SMA/1000, finalElements.Ecc, finalElements.Inc*180/math.Pi,
		finalElements.RAAN*180/math.Pi, finalElements.Period())
	w.Flush()

	const samples = 400
	stride := len(states) / samples
	if stride < 1 {
		stride = 1
	}
	data := make([]float64, 0, samples+1)
	for i := 0; i < len(states); i += stride {
		data = append(data, states[i].Altitude()/1000)
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("altitude [km]"),
	))
	return nil
}

func hohmannTransfer(cmd *cobra.Command, args []string) error {
	r1 := gravity.REarthECI + fromAlt*1000
	r2 := gravity.REarthECI + toAlt*1000
	transfer := orbital.Hohmann(r1, r2)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "departure\t%.0f km circular (%.1f m/s)\n", fromAlt, orbital.CircularVelocity(r1))
	fmt.Fprintf(w, "arrival\t%.0f km circular (%.1f m/s)\n", toAlt, orbital.CircularVelocity(r2))
	fmt.Fprintf(w, "burn 1\t%.1f m/s\n", transfer.DV1)
	fmt.Fprintf(w, "burn 2\t%.1f m/s\n", transfer.DV2)
	fmt.Fprintf(w, "total\t%.1f m/s\n", transfer.TotalDV)
	fmt.Fprintf(w, "transfer time\t%.0f s (%.2f h)\n", transfer.TransferTime, transfer.TransferTime/3600)
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSTAGES\tMASS\tDELTA-V")
	for _, name := range config.ListPresets() {
		cfg := config.Preset(name)
		m, err := cfg.ToMission()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%.1f kg\t%.0f m/s\n",
			name, len(m.Stages), m.TotalMass(), m.TotalDeltaV())
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tMISSION\tTIME\tCTRL\tAPOGEE\tFLIGHT TIME")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f m\t%.1f s\n",
			run.ID,
			run.Mission,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Controller,
			run.Summary.ApogeeM,
			run.Summary.FlightTime,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trajectory, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(trajectory) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("mission: %s\n", meta.Mission)
	fmt.Printf("samples: %d\n\n", len(trajectory))

	const samples = 400
	stride := len(trajectory) / samples
	if stride < 1 {
		stride = 1
	}

	plots := []struct {
		caption string
		value   func(i int) float64
	}{
		{"altitude [m]", func(i int) float64 { return trajectory[i].Altitude() }},
		{"speed [m/s]", func(i int) float64 { return trajectory[i].Speed() }},
		{"pitch [deg]", func(i int) float64 { return trajectory[i].Pitch() * 180 / math.Pi }},
		{"mass [kg]", func(i int) float64 { return trajectory[i].Mass }},
	}

	for _, p := range plots {
		data := make([]float64, 0, samples+1)
		for i := 0; i < len(trajectory); i += stride {
			data = append(data, p.value(i))
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		))
		fmt.Println()
	}
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

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trajectory, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(trajectory) < 2 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("mission: %s\n\n", meta.Mission)

	ps, freq := analysis.PitchSpectrum(trajectory)

	plotData := ps[:len(ps)/4]
	fmt.Println(asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("pitch power spectrum"),
	))
	fmt.Println()

	fmt.Printf("dominant pitch oscillation: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	return nil
}

func replayRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trajectory, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	result := &sim.Result{Trajectory: trajectory}
	p := tea.NewProgram(viz.NewModel(meta.Mission, result))
	_, err = p.Run()
	return err
}
