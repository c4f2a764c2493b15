package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/ballpit/internal/analysis"
	"github.com/san-kum/ballpit/internal/automation"
	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/export"
	"github.com/san-kum/ballpit/internal/gui"
	"github.com/san-kum/ballpit/internal/metrics"
	"github.com/san-kum/ballpit/internal/sim"
	"github.com/san-kum/ballpit/internal/storage"
	"github.com/san-kum/ballpit/internal/term"
	"github.com/san-kum/ballpit/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	dataDir    string
	configFile string
	debug      bool
	preset     string
	// Frontend flags
	frameRate int
	seed      int64
	theme     string
	rainbow   bool
	sound     bool
	pick      bool
	// Headless flags
	frames      int
	recordEvery int
	numRuns     int
	noSave      bool
	// Sweep flags
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	// Output flags
	ball     int
	field    string
	output   string
	braille  bool
	writeCfg string
)

// main registers the ballpit commands and runs the terminal frontend when no
// subcommand is given. It exits with status 1 if a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:   "ballpit",
		Short: "click to drop bouncing balls",
		RunE:  runPlay,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write diagnostics to ballpit-debug.log")
	addFrontendFlags(rootCmd)

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "bubble tea terminal frontend",
		RunE:  runPlay,
	}
	addFrontendFlags(playCmd)
	playCmd.Flags().BoolVar(&pick, "pick", false, "choose a preset from a menu first")

	termCmd := &cobra.Command{
		Use:   "term",
		Short: "raw tcell terminal frontend",
		RunE:  runTerm,
	}
	addFrontendFlags(termCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "desktop window frontend",
		RunE:  runGUI,
	}
	addFrontendFlags(guiCmd)

	runCmd := &cobra.Command{
		Use:   "run [scenario.yaml]",
		Short: "run a scenario headless and record it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	addHeadlessFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "print metrics without recording the run")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [scenario.yaml]",
		Short: "run a scenario under consecutive seeds in parallel",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnsemble,
	}
	addHeadlessFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 8, "number of seeds")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario.yaml]",
		Short: "replay a scenario across a range of one physics parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addHeadlessFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "bounce", "parameter (gravity, bounce, friction)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.1, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.9, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot one ball of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&ball, "ball", 0, "ball index")
	plotCmd.Flags().StringVar(&field, "field", "y", "x, y, vx or vy")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and samples to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export ball trajectories to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().BoolVar(&braille, "braille", false, "export the last frame as a braille dot picture")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list physics presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		RunE:  showConfig,
	}
	addFrontendFlags(configCmd)
	configCmd.Flags().StringVar(&writeCfg, "write", "", "also save it to this path (.yaml or .toml)")

	rootCmd.AddCommand(playCmd, termCmd, guiCmd, runCmd, ensembleCmd, sweepCmd, listCmd, plotCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addFrontendFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "physics preset")
	cmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	cmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	cmd.Flags().BoolVar(&rainbow, "rainbow", false, "give every ball its own color")
	cmd.Flags().BoolVar(&sound, "sound", false, "click on floor impacts")
}

func addHeadlessFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "physics preset (overrides the scenario)")
	cmd.Flags().IntVar(&frames, "frames", 0, "frames to run (overrides the scenario)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (overrides the scenario)")
	cmd.Flags().IntVar(&recordEvery, "record-every", 0, "record one sample every n frames")
}

// loadConfig layers defaults, the config file, the preset, and explicitly
// set flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if preset != "" {
		p, ok := config.Presets[preset]
		if !ok {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Physics = p
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("rainbow") {
		cfg.Rainbow = rainbow
	}
	if flags.Changed("sound") {
		cfg.Sound = sound
	}
	if flags.Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	return cfg, cfg.Validate()
}

// liveConfig is loadConfig with a clock seed when none was chosen.
func liveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

// interactiveLogging keeps log output off the screen: it goes to a file with
// --debug and nowhere otherwise.
func interactiveLogging() (func(), error) {
	if !debug {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile("ballpit-debug.log", "ballpit")
	if err != nil {
		return nil, err
	}
	return func() { f.Close() }, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := liveConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := interactiveLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	if pick {
		return viz.RunPicker(cfg)
	}
	return viz.RunLive(viz.OptionsFromConfig(cfg, preset))
}

func runTerm(cmd *cobra.Command, args []string) error {
	cfg, err := liveConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := interactiveLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := term.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := liveConfig(cmd)
	if err != nil {
		return err
	}
	log.Printf("opening %.0fx%.0f window at %d fps", cfg.Width, cfg.Height, cfg.FPS)
	gui.Run(cfg)
	return nil
}

// headlessRun is a scenario layered over the config file and flags.
type headlessRun struct {
	scenario *automation.Scenario
	base     sim.Config
	cfg      sim.Config
	dataDir  string
}

// loadScenario reads the scenario file, or the demo when none is given,
// applies the headless flags, and layers it over the config file. Values the
// scenario leaves unset come from the config.
func loadScenario(cmd *cobra.Command, args []string) (*headlessRun, error) {
	fileCfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	sc := automation.Demo()
	if len(args) > 0 {
		loaded, err := automation.LoadScenario(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to load scenario: %w", err)
		}
		sc = loaded
	}
	if sc.Name == "" {
		sc.Name = "scenario"
	}

	flags := cmd.Flags()
	if flags.Changed("preset") {
		sc.Preset = preset
		sc.Physics = yaml.Node{}
	}
	if flags.Changed("frames") {
		sc.Frames = frames
	}
	if flags.Changed("seed") {
		sc.Seed = seed
	}
	if flags.Changed("record-every") {
		sc.RecordEvery = recordEvery
	}

	run := &headlessRun{
		scenario: sc,
		base:     automation.BaseConfig(fileCfg),
		dataDir:  fileCfg.DataDir,
	}
	run.cfg, err = sc.SimConfigOver(run.base)
	if err != nil {
		return nil, err
	}
	return run, nil
}

// openStore opens the run store named by --data or the config file.
func openStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.DataDir), nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	run, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	sc, cfg := run.scenario, run.cfg

	fmt.Printf("running %s (%d frames)...\n", sc.Name, cfg.Frames)
	start := time.Now()

	result, err := automation.Run(cmd.Context(), sc.Name, cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	if !noSave {
		st := storage.New(run.dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(sc.Name, cfg, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	fmt.Printf("balls: %d\n", result.Balls)
	fmt.Printf("samples: %d\n", len(result.Samples))
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	run, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	cfg := run.cfg
	cfg.RecordEvery = cfg.Frames

	newSim := func() *sim.Simulator {
		s := sim.New()
		for _, m := range metrics.Default() {
			s.AddMetric(m)
		}
		return s
	}
	results, err := sim.NewEnsemble(newSim, numRuns, cfg.Seed).Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	names := metrics.Names()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\t"+strings.ToUpper(strings.Join(names, "\t")))
	for i, r := range results {
		row := []string{fmt.Sprintf("%d", cfg.Seed+int64(i))}
		for _, name := range names {
			row = append(row, fmt.Sprintf("%.3f", r.Metrics[name]))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	run, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(cmd.Context(), &automation.ParameterSweep{
		Scenario:  run.scenario,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
		Base:      &run.base,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFLOOR_CONTACTS\tSETTLE_FRAME\tFINAL_ENERGY\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		settle := "-"
		if r.SettleFrame >= 0 {
			settle = fmt.Sprintf("%d", r.SettleFrame)
		}
		fmt.Fprintf(w, "%.3f\t%d\t%s\t%.2f\n", r.ParamValue, r.FloorContacts, settle, r.FinalEnergy)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tFRAMES\tBALLS\tVIEWPORT\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.0fx%.0f\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Balls,
			run.Viewport.Width,
			run.Viewport.Height,
			run.Seed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	series, ok := analysis.Series(samples, ball, field)
	if !ok {
		return fmt.Errorf("unknown field: %s (use x, y, vx or vy)", field)
	}
	if len(series) == 0 {
		return fmt.Errorf("no samples for ball %d", ball)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(series))
	fmt.Println(analysis.Plot(series, fmt.Sprintf("ball %d %s", ball, field)))

	// Each apex is measured from the floor in effect at its frame.
	floorAt := analysis.FloorFunc(meta.FloorAt)
	apexes := analysis.Apexes(samples, ball)
	fmt.Printf("\nbounces: %d\n", len(apexes))
	for i, a := range apexes {
		if i == 5 {
			fmt.Printf("  ... %d more\n", len(apexes)-i)
			break
		}
		fmt.Printf("  frame %5d  height %.1f\n", a.Frame, a.Height(floorAt))
	}
	if r := analysis.Restitution(apexes, floorAt); !math.IsNaN(r) {
		fmt.Printf("rebound ratio: %.3f\n", r)
	}
	if frame, ok := analysis.SettleFrame(samples, ball, floorAt, meta.Params.Gravity); ok {
		fmt.Printf("settled at frame %d\n", frame)
	} else {
		fmt.Println("still moving at the end of the run")
	}
	return nil
}

// openOutput returns stdout unless --output names a file.
func openOutput() (io.Writer, func() error, error) {
	if output == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(output)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	w, done, err := openOutput()
	if err != nil {
		return err
	}
	if err := storage.WriteSamplesCSV(w, samples); err != nil {
		done()
		return err
	}
	return done()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	w, done, err := openOutput()
	if err != nil {
		return err
	}
	if err := storage.ExportJSON(w, meta, samples); err != nil {
		done()
		return err
	}
	return done()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	var svg string
	if braille {
		cfg := config.DefaultConfig()
		svg = export.CanvasToSVG(lastFrameCanvas(samples, meta, cfg.CellWidth, cfg.CellHeight), 4)
	} else {
		svg = export.TrajectorySVG(samples, meta.Viewport)
	}

	w, done, err := openOutput()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, svg); err != nil {
		done()
		return err
	}
	return done()
}

// lastFrameCanvas rasterises every ball's final sample onto a braille
// canvas sized to the run's viewport.
func lastFrameCanvas(samples []sim.Sample, meta *storage.RunMetadata, cellW, cellH float64) *viz.Canvas {
	cols := int(meta.Viewport.Width / cellW)
	rows := int(meta.Viewport.Height / cellH)
	canvas := viz.NewPixelCanvas(cols, rows, cellW, cellH)

	last := make(map[int]sim.Sample)
	for _, s := range samples {
		if prev, ok := last[s.Ball]; !ok || s.Frame >= prev.Frame {
			last[s.Ball] = s
		}
	}
	for _, s := range last {
		canvas.FillCircle(s.X, s.Y, meta.Params.Radius, meta.Params.Color)
	}
	return canvas
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tGRAVITY\tBOUNCE\tFRICTION\tRADIUS\tCOLOR")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.0f\t%s\n", name, p.Gravity, p.Bounce, p.Friction, p.Radius, p.Color)
	}
	return w.Flush()
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))

	if writeCfg != "" {
		if err := config.Save(writeCfg, cfg); err != nil {
			return err
		}
		fmt.Printf("\nsaved to %s\n", writeCfg)
	}
	return nil
}
