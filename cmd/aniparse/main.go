package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"

	"github.com/Nomadcxx/aniparse"
	"github.com/Nomadcxx/aniparse/internal/config"
	"github.com/Nomadcxx/aniparse/internal/library"
	"github.com/Nomadcxx/aniparse/internal/logging"
	"github.com/Nomadcxx/aniparse/internal/reporter"
	"github.com/Nomadcxx/aniparse/internal/ui"
)

var (
	jsonOutput bool
	verbose    bool

	// Version information (set via -ldflags during build)
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "aniparse [filename...]",
	Short: "Extract structured metadata from anime/TV release file names",
	Long: `aniparse parses release file names like

  [TaigaSubs]_Toradora!_(2008)_-_01v2_-_Tiger_and_Dragon_[1280x720_H.264_FLAC][1234ABCD]

into structured metadata: title, season, episode, release group, video and
audio terms, checksum and more. Names are read from the arguments, or from
stdin when no arguments are given.`,
	Run: runParse,
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan configured media libraries and write a parse report",
	Run:   runScan,
}

var viewCmd = &cobra.Command{
	Use:   "view <report-file>",
	Short: "Browse a scan report in the TUI",
	Args:  cobra.ExactArgs(1),
	Run:   runView,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration file location and contents",
	Run:   runConfig,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("aniparse %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
	},
}

func init() {
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit results as JSON records")
	scanCmd.Flags().BoolVar(&verbose, "verbose", false, "detailed output (debug info)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runParse parses the names given as arguments, or stdin line by line
func runParse(cmd *cobra.Command, args []string) {
	opts := aniparse.DefaultOptions()
	if cfg, err := config.Load(); err == nil {
		opts = cfg.Parser.Options()
	}

	names := args
	if len(names) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := scanner.Text(); line != "" {
				names = append(names, line)
			}
		}
		if err := scanner.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
	}

	encoder := json.NewEncoder(os.Stdout)
	for i, name := range names {
		elements := aniparse.ParseWithOptions(norm.NFC.String(name), opts)

		if jsonOutput {
			if err := encoder.Encode(elements.ToRecord()); err != nil {
				fmt.Fprintf(os.Stderr, "Error encoding record: %v\n", err)
				os.Exit(1)
			}
			continue
		}

		if i > 0 {
			fmt.Println()
		}
		fmt.Println(ui.StatStyle.Render(name))
		fmt.Print(ui.RenderRecord(elements.ToRecord(), "  "))
	}
}

// runScan performs a library scan and writes a report
func runScan(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	if len(cfg.Libraries.Paths) == 0 {
		configFile, _ := config.ConfigPath()
		fmt.Fprintf(os.Stderr, "No library paths configured. Edit %s\n", configFile)
		os.Exit(1)
	}

	level := cfg.Daemon.LogLevel
	if verbose {
		level = "debug"
	}
	log := logging.New(logging.Config{Level: level})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\naniparse: Cancelling scan...")
		cancel()
	}()

	scanner := library.NewScanner()
	scanner.Options = cfg.Parser.Options()
	scanner.Log = log

	result, err := scanner.Scan(ctx, cfg.Libraries.Paths, nil)
	if err != nil {
		if err == context.Canceled {
			fmt.Fprintln(os.Stderr, "Scan cancelled by signal")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
		os.Exit(1)
	}

	reportPath, err := reporter.Generate(reporter.Report{
		Timestamp:    time.Now(),
		LibraryPaths: cfg.Libraries.Paths,
		Result:       *result,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write report: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(ui.FormatStatusOK(fmt.Sprintf("Parsed %d files into %d titles", len(result.Files), len(result.Groups))))
	if len(result.Unparsed) > 0 {
		fmt.Println(ui.FormatStatusWarn(fmt.Sprintf("%d files had no recognizable title", len(result.Unparsed))))
	}

	fmt.Println()
	fmt.Println(ui.TitleStyle.Render("Largest titles"))
	for i, summary := range reporter.Summarize(*result, 10) {
		fmt.Printf("%2d. %s - %d files, %s\n", i+1, summary.Title, summary.FileCount, reporter.FormatBytes(summary.TotalSize))
	}

	fmt.Println()
	fmt.Printf("Report saved to: %s\n", reportPath)
	fmt.Printf("View it with: aniparse view %s\n", reportPath)
}

// runView opens a report in the TUI browser
func runView(cmd *cobra.Command, args []string) {
	report, err := reporter.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading report: %v\n", err)
		os.Exit(1)
	}

	program := tea.NewProgram(ui.NewBrowser(report), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// runConfig shows the config file location and contents
func runConfig(cmd *cobra.Command, args []string) {
	configFile, err := config.ConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Config file: %s\n\n", configFile)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		fmt.Println("Config file does not exist yet. Parsing a name or running a scan creates it with defaults.")
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(string(data))
}
