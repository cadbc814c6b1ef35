package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	toon "github.com/Dicklesworthstone/toon-go"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/vanderheijden86/listview/pkg/agents"
	"github.com/vanderheijden86/listview/pkg/analysis"
	"github.com/vanderheijden86/listview/pkg/baseline"
	"github.com/vanderheijden86/listview/pkg/config"
	"github.com/vanderheijden86/listview/pkg/drift"
	"github.com/vanderheijden86/listview/pkg/export"
	"github.com/vanderheijden86/listview/pkg/loader"
	"github.com/vanderheijden86/listview/pkg/model"
	"github.com/vanderheijden86/listview/pkg/preset"
	"github.com/vanderheijden86/listview/pkg/storage"
	"github.com/vanderheijden86/listview/pkg/ui"
	"github.com/vanderheijden86/listview/pkg/version"
	"github.com/vanderheijden86/listview/pkg/vlist"
	"github.com/vanderheijden86/listview/pkg/watch"
)

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	robotHelp := flag.Bool("robot-help", false, "Show AI agent help")
	dataPath := flag.String("data", "", "Items file (default: discovered .lv/items.jsonl)")
	dbPath := flag.String("db", "", "SQLite database file (overrides --data)")
	demoCount := flag.Int("demo", 0, "Generate N demo items instead of loading from disk")
	presetName := flag.String("preset", "", "Apply named preset (e.g., urgent, high-value, stale)")
	presetShort := flag.String("p", "", "Shorthand for --preset")
	virtualFlag := flag.Bool("virtual", false, "Start with windowed rendering enabled")
	renderAll := flag.Bool("render-all", false, "Start with windowed rendering disabled")
	itemHeight := flag.Int("item-height", 0, "Row height in screen rows (default from config, else 1)")
	viewportHeight := flag.Int("viewport-height", 24, "Viewport height in rows for --robot-range")
	scrollOffset := flag.Int("scroll-offset", 0, "Scroll offset in rows for --robot-range")
	robotStats := flag.Bool("robot-stats", false, "Output collection stats and window geometry as JSON")
	robotItems := flag.Bool("robot-items", false, "Output the working set as JSON")
	robotRange := flag.Bool("robot-range", false, "Output the computed render window as JSON")
	robotPresets := flag.Bool("robot-presets", false, "Output available presets as JSON")
	robotInsights := flag.Bool("robot-insights", false, "Output collection insights as JSON")
	toonFlag := flag.Bool("toon", false, "Emit robot output as TOON instead of JSON (needs the tru binary)")
	saveBaseline := flag.Bool("save-baseline", false, "Save current collection metrics as the baseline")
	baselineInfo := flag.Bool("baseline-info", false, "Show information about the saved baseline")
	checkDrift := flag.Bool("check-drift", false, "Check for drift from baseline (exit codes: 0=OK, 1=critical, 2=warning)")
	robotDrift := flag.Bool("robot-drift", false, "Output drift check as JSON (use with --check-drift)")
	exportMD := flag.String("export-md", "", "Export items to a Markdown report (e.g., report.md)")
	exportSVG := flag.String("export-svg", "", "Export category histogram as SVG")
	exportChart := flag.String("export-chart", "", "Export value distribution chart as PNG")
	exportBundle := flag.String("export-bundle", "", "Export md+svg+png+json bundle into a directory")
	profileStartup := flag.Bool("profile-startup", false, "Output startup timing profile for diagnostics")
	profileJSON := flag.Bool("profile-json", false, "Output profile in JSON format (use with --profile-startup)")
	noWatch := flag.Bool("no-watch", false, "Disable live reload when the items file changes")
	agentsSetup := flag.Bool("agents-setup", false, "Add or update the lv section in AGENTS.md/CLAUDE.md")
	flag.Parse()

	// Handle -p shorthand
	if *presetShort != "" && *presetName == "" {
		*presetName = *presetShort
	}
	toonOutput = *toonFlag

	if *help {
		fmt.Println("Usage: lv [options]")
		fmt.Println("\nA virtualized TUI viewer for item collections.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *robotHelp {
		printRobotHelp()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("lv %s\n", version.Version)
		os.Exit(0)
	}

	if *agentsSetup {
		if err := runAgentsSetup(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Project configuration (.lv/config.yaml), discovered upward from
	// the working directory. Flags override config.
	cfg, root, err := config.Discover("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		defaults := config.Default()
		cfg = &defaults
		root, _ = os.Getwd()
	}

	if *itemHeight <= 0 {
		*itemHeight = cfg.ItemHeight
	}
	if *presetName == "" {
		*presetName = cfg.Preset
	}

	virtual := cfg.IsVirtual()
	virtualExplicit := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "virtual" || f.Name == "render-all" {
			virtualExplicit = true
		}
	})
	if *virtualFlag {
		virtual = true
	}
	if *renderAll {
		virtual = false
	}

	// Resolve the backing store. --db forces sqlite; --data picks the
	// backend by extension; otherwise the configured path applies.
	var store storage.Store
	switch {
	case *dbPath != "":
		store, err = storage.NewSQLiteStore(*dbPath)
	case *dataPath != "":
		store, err = storage.Open(*dataPath)
	default:
		store, err = storage.Open(cfg.DataPath(root))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Load items (timed for --profile-startup)
	loadStart := time.Now()
	var items []model.Item
	if *demoCount > 0 {
		items = loader.GenerateItems(*demoCount, time.Now())
		if *dataPath != "" || *dbPath != "" {
			if err := store.Save(context.Background(), items); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing demo items: %v\n", err)
				os.Exit(1)
			}
		}
	} else {
		items, err = store.Load(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading items from %s: %v\n", store.Path(), err)
			fmt.Fprintln(os.Stderr, "Run 'lv --demo 100 --data .lv/items.jsonl' to create a sample collection.")
			os.Exit(1)
		}
	}
	loadDuration := time.Since(loadStart)

	// Presets: user-defined .lv/presets.yaml overlays the builtins.
	userPresets, err := preset.LoadFile(filepath.Join(root, ".lv", "presets.yaml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	presets := preset.Merge(preset.BuiltinPresets(), userPresets)

	// Validate the preset name before any mode consumes it.
	var activePreset *preset.Preset
	if *presetName != "" {
		p, ok := preset.Find(presets, *presetName)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: Unknown preset '%s'\n\n", *presetName)
			fmt.Fprintln(os.Stderr, "Available presets:")
			for _, name := range preset.Names(presets) {
				q, _ := preset.Find(presets, name)
				fmt.Fprintf(os.Stderr, "  %-12s %s\n", name, q.Description)
			}
			os.Exit(1)
		}
		activePreset = &p
	}

	// Robot modes honor --preset: the working set they report is the
	// same one the TUI would show.
	working := items
	if activePreset != nil {
		working = applyPresetScope(items, *activePreset, time.Now())
	}

	if *profileStartup {
		runProfileStartup(items, store.Path(), loadDuration, *profileJSON)
		os.Exit(0)
	}

	if *robotPresets {
		printRobotPresets(presets)
		os.Exit(0)
	}

	if *robotStats {
		printRobotStats(working, store.Path(), *presetName, *scrollOffset, *viewportHeight, *itemHeight)
		os.Exit(0)
	}

	if *robotItems {
		printRobotItems(working, *presetName)
		os.Exit(0)
	}

	if *robotRange {
		printRobotRange(len(working), *scrollOffset, *viewportHeight, *itemHeight)
		os.Exit(0)
	}

	if *robotInsights {
		ins := analysis.Compute(working, time.Now())
		emitPayload(ins)
		os.Exit(0)
	}

	baselinePath := baseline.DefaultPath(root)

	if *baselineInfo {
		if !baseline.Exists(baselinePath) {
			fmt.Println("No baseline found.")
			fmt.Println("Create one with: lv --save-baseline")
			os.Exit(0)
		}
		bl, err := baseline.Load(baselinePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading baseline: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(bl.Summary())
		os.Exit(0)
	}

	if *saveBaseline {
		bl := baseline.New(items, time.Now())
		if err := baseline.Save(baselinePath, bl); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving baseline: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Baseline saved to %s\n", baselinePath)
		fmt.Print(bl.Summary())
		os.Exit(0)
	}

	if *checkDrift {
		if !baseline.Exists(baselinePath) {
			fmt.Fprintln(os.Stderr, "Error: No baseline found.")
			fmt.Fprintln(os.Stderr, "Create one with: lv --save-baseline")
			os.Exit(1)
		}
		bl, err := baseline.Load(baselinePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading baseline: %v\n", err)
			os.Exit(1)
		}

		driftConfig, err := drift.LoadConfig(drift.DefaultConfigPath(root))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			driftConfig = drift.DefaultConfig()
		}

		current := baseline.New(items, time.Now())
		result := drift.NewCalculator(bl, current, driftConfig).Calculate()

		if *robotDrift {
			printRobotDrift(result, bl)
		} else {
			fmt.Print(result.Summary())
		}
		os.Exit(result.ExitCode())
	}

	if *exportMD != "" {
		if err := export.SaveMarkdownToFile(working, *exportMD); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting markdown: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported %d items to %s\n", len(working), *exportMD)
		os.Exit(0)
	}

	if *exportSVG != "" {
		if err := export.SaveCategorySVG(working, *exportSVG); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting SVG: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported category histogram to %s\n", *exportSVG)
		os.Exit(0)
	}

	if *exportChart != "" {
		if err := export.SaveValueChart(working, *exportChart); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting chart: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported value chart to %s\n", *exportChart)
		os.Exit(0)
	}

	if *exportBundle != "" {
		if err := export.SaveBundle(working, *exportBundle); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting bundle: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported bundle to %s\n", *exportBundle)
		os.Exit(0)
	}

	// Everything past this point is the interactive TUI.
	envRobot := os.Getenv("LV_ROBOT") != ""
	envTest := os.Getenv("LV_TEST") != ""
	if agents.ShouldSuppressTTYQueries(os.Args[1:], envRobot, envTest) {
		fmt.Fprintln(os.Stderr, "Error: refusing to start the TUI with terminal queries suppressed (LV_ROBOT/LV_TEST set).")
		fmt.Fprintln(os.Stderr, "Use the --robot-* modes for machine-readable output.")
		os.Exit(1)
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: stdout is not a terminal.")
		fmt.Fprintln(os.Stderr, "Use the --robot-* modes for machine-readable output.")
		os.Exit(1)
	}

	if err := loader.EnsureLVInGitignore(root); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not update .gitignore: %v\n", err)
	}

	// Demo collections without an explicit path stay in memory; edits
	// would be written to a file nobody asked for.
	writeStore := store
	if *demoCount > 0 && *dataPath == "" && *dbPath == "" {
		writeStore = nil
	}

	m, err := ui.NewModel(items, ui.Options{
		Store:           writeStore,
		Presets:         presets,
		Preset:          *presetName,
		Theme:           cfg.Theme,
		Virtual:         virtual,
		VirtualExplicit: virtualExplicit,
		ItemHeight:      *itemHeight,
		StateDir:        filepath.Join(root, ".lv"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer m.Stop()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	// Live reload: only meaningful for the file backend, since sqlite
	// writes do not land in a watchable single file rename.
	watchEnabled := cfg.IsWatch() && !*noWatch && *dbPath == "" && *demoCount == 0
	if _, ok := store.(*storage.SQLiteStore); ok {
		watchEnabled = false
	}
	if watchEnabled {
		worker, err := watch.NewWorker(watch.Config{
			Path:     store.Path(),
			Notifier: p,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: live reload disabled: %v\n", err)
		} else {
			if err := worker.Start(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: live reload disabled: %v\n", err)
			} else {
				defer worker.Stop()
			}
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running lv: %v\n", err)
		os.Exit(1)
	}
}

// applyPresetScope narrows and orders a collection the way the TUI
// would under the given preset.
func applyPresetScope(items []model.Item, p preset.Preset, now time.Time) []model.Item {
	out := preset.FilterItems(items, p.Filters, now)
	field, dir := p.SortField()
	out = vlist.Apply(out, "", field, dir)
	if p.View.MaxItems > 0 && len(out) > p.View.MaxItems {
		out = out[:p.View.MaxItems]
	}
	return out
}

// toonOutput is set by --toon. Robot payloads then go out as TOON,
// which costs agents fewer tokens than JSON for the same data.
var toonOutput bool

// emitPayload writes a robot payload to stdout: indented JSON by
// default, TOON when --toon is set and the tru binary is reachable.
func emitPayload(v any) {
	if toonOutput {
		s, err := toon.Encode(v)
		if err == nil {
			fmt.Println(s)
			return
		}
		fmt.Fprintf(os.Stderr, "Warning: TOON unavailable (%v), falling back to JSON\n", err)
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}

func printRobotPresets(presets []preset.Preset) {
	sorted := make([]preset.Preset, len(presets))
	copy(sorted, presets)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	output := struct {
		Presets []preset.Preset `json:"presets"`
	}{
		Presets: sorted,
	}
	emitPayload(output)
}

func printRobotStats(working []model.Item, dataPath, presetName string, scrollOffset, viewportHeight, itemHeight int) {
	selected := 0
	categories := make(map[string]int, 3)
	for _, c := range model.Categories() {
		categories[string(c)] = 0
	}
	for _, it := range working {
		if it.Selected {
			selected++
		}
		categories[string(it.Category)]++
	}

	rng, err := vlist.ComputeRange(scrollOffset, viewportHeight, itemHeight, len(working))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	output := struct {
		GeneratedAt string         `json:"generated_at"`
		DataPath    string         `json:"data_path"`
		Preset      string         `json:"preset,omitempty"`
		TotalItems  int            `json:"total_items"`
		Selected    int            `json:"selected"`
		Categories  map[string]int `json:"categories"`
		Window      vlist.Range    `json:"window"`
	}{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		DataPath:    dataPath,
		Preset:      presetName,
		TotalItems:  len(working),
		Selected:    selected,
		Categories:  categories,
		Window:      rng,
	}
	emitPayload(output)
}

func printRobotItems(working []model.Item, presetName string) {
	output := struct {
		GeneratedAt string       `json:"generated_at"`
		Preset      string       `json:"preset,omitempty"`
		Count       int          `json:"count"`
		Items       []model.Item `json:"items"`
	}{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Preset:      presetName,
		Count:       len(working),
		Items:       working,
	}
	emitPayload(output)
}

func printRobotRange(itemCount, scrollOffset, viewportHeight, itemHeight int) {
	rng, err := vlist.ComputeRange(scrollOffset, viewportHeight, itemHeight, itemCount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	output := struct {
		GeneratedAt string      `json:"generated_at"`
		Geometry    struct {
			ScrollOffset   int `json:"scroll_offset"`
			ViewportHeight int `json:"viewport_height"`
			ItemHeight     int `json:"item_height"`
			ItemCount      int `json:"item_count"`
		} `json:"geometry"`
		Window vlist.Range `json:"window"`
	}{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Window:      rng,
	}
	output.Geometry.ScrollOffset = scrollOffset
	output.Geometry.ViewportHeight = viewportHeight
	output.Geometry.ItemHeight = itemHeight
	output.Geometry.ItemCount = itemCount
	emitPayload(output)
}

func printRobotDrift(result *drift.Result, bl *baseline.Baseline) {
	output := struct {
		GeneratedAt string `json:"generated_at"`
		HasDrift    bool   `json:"has_drift"`
		ExitCode    int    `json:"exit_code"`
		Summary     struct {
			Critical int `json:"critical"`
			Warning  int `json:"warning"`
			Info     int `json:"info"`
		} `json:"summary"`
		Alerts   []drift.Alert `json:"alerts"`
		Baseline struct {
			SavedAt string `json:"saved_at"`
		} `json:"baseline"`
	}{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		HasDrift:    result.HasDrift,
		ExitCode:    result.ExitCode(),
		Alerts:      result.Alerts,
	}
	output.Summary.Critical = result.CriticalCount
	output.Summary.Warning = result.WarningCount
	output.Summary.Info = result.InfoCount
	output.Baseline.SavedAt = bl.SavedAt.Format(time.RFC3339)
	emitPayload(output)
}

// runAgentsSetup injects or refreshes the lv section in whichever agent
// instruction files the project carries, creating AGENTS.md when none
// exist.
func runAgentsSetup() error {
	found := false
	for _, name := range agents.SupportedAgentFiles {
		data, err := os.ReadFile(name)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return err
		}
		found = true

		content := string(data)
		switch {
		case !agents.ContainsBlurb(content):
			content = agents.AppendBlurb(content)
			fmt.Printf("Added lv section to %s\n", name)
		case agents.NeedsUpdate(content):
			content = agents.UpdateBlurb(content)
			fmt.Printf("Updated lv section in %s\n", name)
		default:
			fmt.Printf("%s is already up to date\n", name)
			continue
		}
		if err := os.WriteFile(name, []byte(content), 0644); err != nil {
			return err
		}
	}

	if !found {
		content := agents.AppendBlurb("# AGENTS.md\n")
		if err := os.WriteFile("AGENTS.md", []byte(content), 0644); err != nil {
			return err
		}
		fmt.Println("Created AGENTS.md with the lv section")
	}
	return nil
}

// runProfileStartup times the post-load work a session performs and
// prints the breakdown.
func runProfileStartup(items []model.Item, dataPath string, loadDuration time.Duration, jsonOutput bool) {
	profile := analysis.ProfileStartup(items)
	profile.Load = loadDuration
	totalWithLoad := loadDuration + profile.Total

	if jsonOutput {
		output := struct {
			GeneratedAt     string                   `json:"generated_at"`
			DataPath        string                   `json:"data_path"`
			Profile         *analysis.StartupProfile `json:"profile"`
			TotalWithLoad   string                   `json:"total_with_load"`
			Recommendations []string                 `json:"recommendations"`
		}{
			GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
			DataPath:        dataPath,
			Profile:         profile,
			TotalWithLoad:   totalWithLoad.String(),
			Recommendations: profileRecommendations(profile, totalWithLoad),
		}
		emitPayload(output)
		return
	}

	fmt.Println("Startup Profile")
	fmt.Println("===============")
	fmt.Printf("Data: %d items (%s)\n\n", profile.ItemCount, getSizeTier(profile.ItemCount))
	fmt.Printf("  Load:        %v\n", formatDuration(loadDuration))
	fmt.Printf("  Validate:    %v\n", formatDuration(profile.Validate))
	fmt.Printf("  Filter:      %v\n", formatDuration(profile.Filter))
	fmt.Printf("  Sort:        %v\n", formatDuration(profile.Sort))
	fmt.Printf("  Insights:    %v\n", formatDuration(profile.Insights))
	fmt.Printf("  Total:       %v\n\n", formatDuration(totalWithLoad))

	recommendations := profileRecommendations(profile, totalWithLoad)
	if len(recommendations) > 0 {
		fmt.Println("Recommendations:")
		for _, rec := range recommendations {
			fmt.Printf("  %s\n", rec)
		}
	}
}

func profileRecommendations(profile *analysis.StartupProfile, totalWithLoad time.Duration) []string {
	var recs []string

	switch {
	case totalWithLoad < 100*time.Millisecond:
		recs = append(recs, "✓ Startup within acceptable range (<100ms)")
	case totalWithLoad < 500*time.Millisecond:
		recs = append(recs, "✓ Startup acceptable (<500ms)")
	default:
		recs = append(recs, "⚠ Startup is slow (>500ms) - consider the sqlite backend for large collections")
	}

	if profile.ItemCount >= 10000 {
		recs = append(recs, "⚠ Large collection - run with --virtual to keep the render window flat")
	}

	if profile.Load > profile.Total {
		recs = append(recs, "⚠ Load dominates startup - I/O, not processing, is the bottleneck")
	}

	return recs
}

// formatDuration formats a duration for display, right-aligned
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%6.2fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%6dms", d.Milliseconds())
}

// getSizeTier returns the size tier name based on item count
func getSizeTier(itemCount int) string {
	switch {
	case itemCount < 1000:
		return "Small (<1k items)"
	case itemCount < 10000:
		return "Medium (1k-10k items)"
	case itemCount < 100000:
		return "Large (10k-100k items)"
	default:
		return "XL (>100k items)"
	}
}

func printRobotHelp() {
	fmt.Println("lv (List Viewer) AI Agent Interface")
	fmt.Println("===================================")
	fmt.Println("This tool renders item collections with windowed virtual scrolling.")
	fmt.Println("Use these commands to read collection state without parsing the TUI.")
	fmt.Println("")
	fmt.Println("All robot modes honor --preset NAME, so the JSON matches what the")
	fmt.Println("TUI would show under that preset.")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  --robot-stats")
	fmt.Println("      Collection counts plus the current render window.")
	fmt.Println("      Key fields:")
	fmt.Println("      - total_items, selected: working set size and selection count")
	fmt.Println("      - categories: item count per category (urgent, normal, low)")
	fmt.Println("      - window: the [start, end) index range that would hold live handles")
	fmt.Println("")
	fmt.Println("  --robot-items")
	fmt.Println("      The working set as a JSON array, filtered and sorted.")
	fmt.Println("      Combine with --preset to scope: lv --robot-items -p high-value")
	fmt.Println("")
	fmt.Println("  --robot-range")
	fmt.Println("      The render window for an explicit geometry. Inputs:")
	fmt.Println("      --scroll-offset N, --viewport-height N, --item-height N (all in rows)")
	fmt.Println("      Output window covers the viewport plus one viewport of buffer")
	fmt.Println("      on each side, clamped to the collection bounds.")
	fmt.Println("")
	fmt.Println("  --robot-presets")
	fmt.Println("      Available presets as JSON: builtins plus .lv/presets.yaml.")
	fmt.Println("      Output: {presets: [{name, description, filters, sort, view}]}")
	fmt.Println("")
	fmt.Println("  --robot-insights")
	fmt.Println("      Value statistics (mean, stddev, median, p90), per-category")
	fmt.Println("      breakdowns, stale and undated counts, top items by value.")
	fmt.Println("")
	fmt.Println("  --save-baseline")
	fmt.Println("      Snapshot current metrics to .lv/baseline.json.")
	fmt.Println("")
	fmt.Println("  --baseline-info")
	fmt.Println("      Show the saved baseline: date, counts, value stats.")
	fmt.Println("")
	fmt.Println("  --check-drift")
	fmt.Println("      Compare current metrics against the baseline.")
	fmt.Println("      Exit codes for CI integration:")
	fmt.Println("        0 = No critical or warning alerts (info-only OK)")
	fmt.Println("        1 = Critical alerts (collection shrank, category vanished)")
	fmt.Println("        2 = Warning alerts (value drift, stale growth)")
	fmt.Println("      Human-readable by default, use --robot-drift for JSON.")
	fmt.Println("")
	fmt.Println("  --robot-drift")
	fmt.Println("      Output drift check as JSON (use with --check-drift).")
	fmt.Println("      Output: {has_drift, exit_code, summary, alerts, baseline}")
	fmt.Println("")
	fmt.Println("  Drift thresholds (.lv/drift.yaml)")
	fmt.Println("      - item_drop_critical_pct: 25   # Critical if 25% fewer items")
	fmt.Println("      - mean_shift_warning_pct: 30   # Warn if mean value moves 30%")
	fmt.Println("      Run 'lv --baseline-info' to see the saved state.")
	fmt.Println("")
	fmt.Println("  --export-md FILE / --export-svg FILE / --export-chart FILE")
	fmt.Println("      Reports: Markdown summary, category histogram SVG,")
	fmt.Println("      value-distribution PNG. Honor --preset.")
	fmt.Println("")
	fmt.Println("  --export-bundle DIR")
	fmt.Println("      All three reports plus items.json, written concurrently.")
	fmt.Println("")
	fmt.Println("  --demo N")
	fmt.Println("      Generate N deterministic demo items in memory.")
	fmt.Println("      With --data/--db, write them to that store first.")
	fmt.Println("")
	fmt.Println("  --profile-startup")
	fmt.Println("      Startup timing breakdown (load, validate, filter, sort,")
	fmt.Println("      insights). Use with --profile-json for machine output.")
	fmt.Println("")
	fmt.Println("  --agents-setup")
	fmt.Println("      Inject or refresh this interface description in AGENTS.md")
	fmt.Println("      or CLAUDE.md so coding agents discover the robot modes.")
	fmt.Println("")
	fmt.Println("  --toon")
	fmt.Println("      Emit robot output as TOON instead of JSON. Needs the tru")
	fmt.Println("      binary on PATH (or TOON_TRU_BIN); falls back to JSON with")
	fmt.Println("      a warning when it is missing.")
	fmt.Println("")
	fmt.Println("Set LV_ROBOT=1 in automated environments; lv will then refuse to")
	fmt.Println("start the TUI and will never query the terminal.")
}
