package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/IvanShishkin/webtrail/internal/ai"
	"github.com/IvanShishkin/webtrail/internal/api"
	"github.com/IvanShishkin/webtrail/internal/config"
	"github.com/IvanShishkin/webtrail/internal/core"
	"github.com/IvanShishkin/webtrail/internal/diff"
	"github.com/IvanShishkin/webtrail/internal/logging"
	"github.com/IvanShishkin/webtrail/internal/report"
	"github.com/IvanShishkin/webtrail/internal/store"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorOrange = "\033[38;5;208m"
	colorYellow = "\033[38;5;220m"
	colorGray   = "\033[38;5;245m"
	colorCyan   = "\033[36m"
)

var (
	version    = core.Version
	logger     *zap.Logger
	verbose    bool
	configFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "webtrail",
		Short: "Webtrail - content change auditor for shared hosting",
		Long: `Snapshots the content of every hosted domain on a shared hosting server,
probes the live sites and diffs successive snapshots per user.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			printMainBanner()
			cmd.Help()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (YAML)")

	// Disable built-in help command
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(changesetsCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(diffCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(helpCmd())

	err := rootCmd.Execute()
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%sError:%s %v\n", colorRed, colorReset, err)
		os.Exit(1)
	}
}

// setup loads configuration and builds the logger shared by all commands
func setup() (*config.Config, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}

	logger, err = logging.New(logging.Options{
		Verbose:    verbose,
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// printMainBanner prints the main banner
func printMainBanner() {
	fmt.Println()
	fmt.Printf("%s", colorOrange)
	fmt.Println("██     ██ ███████ ██████  ████████ ██████   █████  ██ ██")
	fmt.Println("██  █  ██ ██      ██   ██    ██    ██   ██ ██   ██ ██ ██")
	fmt.Println(" ███ ███  ███████ ██████     ██    ██   ██ ██   ██ ██ ███████")
	fmt.Printf("%s", colorReset)
	fmt.Println()
	fmt.Printf("%sContent Change Auditor v%s%s\n", colorGray, version, colorReset)
	fmt.Println()
}

// scanCmd creates the scan command
func scanCmd() *cobra.Command {
	var (
		homeRoot     string
		storeRoot    string
		workers      int
		exclude      []string
		reportFormat string
		outputFile   string
		linkParent   bool
		noJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "scan [users...]",
		Short: "Snapshot the domain content of hosted users",
		Long: `Walk every user's content root, fingerprint each domain file, probe the live
site over http and https and store one changeset per user.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFlags(reportFormat, "", "", ""); err != nil {
				fmt.Printf("\n  %s✗ Invalid parameter:%s %s\n\n", colorRed, colorReset, err.Error())
				return err
			}

			cfg, err := setup()
			if err != nil {
				return err
			}

			// Override config with CLI flags
			if homeRoot != "" {
				cfg.HomeRoot = homeRoot
			}
			if storeRoot != "" {
				cfg.StoreRoot = storeRoot
			}
			if workers > 0 {
				cfg.Workers = workers
			}
			if len(exclude) > 0 {
				cfg.Exclude = exclude
			}
			if reportFormat != "" {
				cfg.ReportFormat = reportFormat
			}
			if outputFile != "" {
				cfg.OutputFile = outputFile
			}
			if linkParent {
				cfg.LinkParent = true
			}
			if noJSON {
				cfg.WriteJSON = false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			printBanner(cfg.HomeRoot, cfg.StoreRoot)

			ctx, stop := signalContext()
			defer stop()

			scanner := core.NewScanner(cfg, logger)

			lastPhase := ""
			scanner.SetProgressCallback(func(phase string, current, total int, message string) {
				// Clear previous line if same phase
				if lastPhase == phase && phase == "scanning" {
					fmt.Print("\033[1A\033[K")
				}
				lastPhase = phase

				switch phase {
				case "users":
					if total > 0 {
						fmt.Printf("  %sUsers:%s     %s\n", colorGray, colorReset, message)
					}
				case "scanning":
					if total > 0 {
						pct := float64(current) / float64(total) * 100
						barWidth := 30
						filled := int(float64(barWidth) * float64(current) / float64(total))
						bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
						fmt.Printf("  %sScanning:%s  [%s%s%s] %s%.1f%%%s (%d/%d) %s%s%s\n",
							colorGray, colorReset, colorOrange, bar, colorReset, colorOrange, pct, colorReset,
							current, total, colorGray, shorten(message, 40), colorReset)
					}
				}
			})

			summary, err := scanner.Scan(ctx, args)
			if errors.Is(err, context.Canceled) {
				fmt.Printf("\n  %s⚠ Scan interrupted, partial results below%s\n", colorYellow, colorReset)
			} else if err != nil {
				logger.Error("Scan failed", zap.Error(err))
				return err
			}

			generator, err := report.NewGenerator(cfg, logger)
			if err != nil {
				return err
			}
			reportPath, err := generator.Generate(summary)
			if err != nil {
				return err
			}

			if reportPath != "" {
				fmt.Printf("  %sReport:%s    %s%s%s\n", colorGray, colorReset, colorOrange, reportPath, colorReset)
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&homeRoot, "home", "", "Parent directory of user content roots (default: /home)")
	cmd.Flags().StringVar(&storeRoot, "store", "", "Changeset store directory (default: .changesets)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of concurrent user tasks (default: CPU cores * 2)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Directories to exclude (comma-separated)")
	cmd.Flags().StringVarP(&reportFormat, "report", "r", "", "Report format: txt, json, md (default: console output)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path")
	cmd.Flags().BoolVar(&linkParent, "link-parent", false, "Chain each changeset to the user's previous one")
	cmd.Flags().BoolVar(&noJSON, "no-json", false, "Do not mirror changesets as JSON")

	return cmd
}

// openStore builds the changeset store from config and an optional flag override
func openStore(storeRoot string) (*config.Config, *store.Store, error) {
	cfg, err := setup()
	if err != nil {
		return nil, nil, err
	}
	if storeRoot != "" {
		cfg.StoreRoot = storeRoot
	}
	return cfg, store.New(cfg, logger), nil
}

// changesetsCmd lists the stored changesets of a user
func changesetsCmd() *cobra.Command {
	var storeRoot string

	cmd := &cobra.Command{
		Use:   "changesets <user>",
		Short: "List stored changesets of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := openStore(storeRoot)
			if err != nil {
				return err
			}

			user := args[0]
			all := st.All(user)
			if len(all) == 0 {
				fmt.Printf("  %sNo changesets stored for %s%s\n", colorGray, user, colorReset)
				return nil
			}

			fmt.Println()
			for _, cs := range all {
				s := cs.Summary()
				marker := ""
				if !s.Valid {
					marker = fmt.Sprintf(" %s(unreadable)%s", colorRed, colorReset)
				}
				fmt.Printf("  %s%s%s  %s%s%s  %4d entries  %s%s\n",
					colorBold, s.UUID, colorReset,
					colorGray, time.UnixMilli(s.Timestamp).Format("2006-01-02 15:04:05"), colorReset,
					s.Entries, strings.Join(s.Domains, ", "), marker)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&storeRoot, "store", "", "Changeset store directory")
	return cmd
}

// showCmd prints one changeset as JSON
func showCmd() *cobra.Command {
	var storeRoot string

	cmd := &cobra.Command{
		Use:   "show <user> <uuid>",
		Short: "Print a stored changeset as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[1])
			if err != nil {
				return fmt.Errorf("invalid changeset id %q: %w", args[1], err)
			}
			_, st, err := openStore(storeRoot)
			if err != nil {
				return err
			}

			cs, err := st.Find(args[0], id)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(cs)
		},
	}

	cmd.Flags().StringVar(&storeRoot, "store", "", "Changeset store directory")
	return cmd
}

// diffCmd diffs two changesets of a user
func diffCmd() *cobra.Command {
	var (
		storeRoot string
		ext       string
		mode      string
		htmlFile  string
		noColor   bool
		asJSON    bool
		// AI flags
		explain bool
		aiModel string
		aiToken string
		aiLang  string
	)

	cmd := &cobra.Command{
		Use:   "diff <user> [old-uuid new-uuid]",
		Short: "Diff the content of two changesets",
		Long: `Diff the retained file content of two changesets of a user. Without ids the two
most recent changesets are compared.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 && len(args) != 3 {
				return fmt.Errorf("accepts a user, optionally followed by two changeset ids (got %d args)", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFlags("", mode, aiModel, aiLang); err != nil {
				fmt.Printf("\n  %s✗ Invalid parameter:%s %s\n\n", colorRed, colorReset, err.Error())
				return err
			}

			cfg, st, err := openStore(storeRoot)
			if err != nil {
				return err
			}
			if mode == "" {
				mode = cfg.DiffMode
			}

			user := args[0]
			engine := diff.NewEngine(st)
			opts := diff.Options{Filter: diff.ExtensionFilter(ext), Mode: diff.Mode(mode)}

			var result *diff.Result
			if len(args) == 3 {
				a, errA := uuid.Parse(args[1])
				b, errB := uuid.Parse(args[2])
				if errA != nil || errB != nil {
					return fmt.Errorf("invalid changeset id")
				}
				result, err = engine.DiffByID(user, a, b, opts)
			} else {
				result, err = engine.DiffLatest(user, opts)
			}
			if err != nil {
				return err
			}

			switch {
			case asJSON:
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			default:
				color := !noColor && term.IsTerminal(int(os.Stdout.Fd()))
				diff.RenderTerminal(os.Stdout, result, color)
			}

			if htmlFile != "" {
				if err := writeHTML(htmlFile, user, result); err != nil {
					return err
				}
				fmt.Printf("  %sHTML:%s      %s%s%s\n", colorGray, colorReset, colorOrange, htmlFile, colorReset)
			}

			if !explain {
				return nil
			}

			// AI configuration overrides
			cfg.AI.Enabled = true
			if aiModel != "" {
				cfg.AI.Model = aiModel
			}
			if aiToken != "" {
				cfg.AI.APIToken = aiToken
			}
			if aiLang != "" {
				cfg.AI.Language = aiLang
			}
			return explainDiff(cfg, user, result)
		},
	}

	cmd.Flags().StringVar(&storeRoot, "store", "", "Changeset store directory")
	cmd.Flags().StringVar(&ext, "ext", "", "Only diff files with this extension (e.g. php)")
	cmd.Flags().StringVar(&mode, "mode", "", "Diff granularity: char, line (default: char)")
	cmd.Flags().StringVar(&htmlFile, "html", "", "Also write the diff as an HTML page to this file")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the diff as JSON")

	// AI flags
	cmd.Flags().BoolVar(&explain, "explain", false, "Describe the changes with AI")
	cmd.Flags().StringVar(&aiModel, "ai-model", "", "AI model: haiku, sonnet, opus (default: haiku)")
	cmd.Flags().StringVar(&aiToken, "ai-token", "", "Anthropic API token (or set ANTHROPIC_API_KEY)")
	cmd.Flags().StringVar(&aiLang, "ai-lang", "", "Summary language: en, ru, es, de, zh, pl (default: en)")

	return cmd
}

func writeHTML(path, user string, result *diff.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := diff.RenderHTML(f, user, result); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// explainDiff prints an AI description of the diff
func explainDiff(cfg *config.Config, user string, result *diff.Result) error {
	if !result.Stats.Changed() {
		fmt.Printf("\n  %s⊘ Nothing changed, AI summary skipped%s\n\n", colorGray, colorReset)
		return nil
	}

	summarizer, err := ai.NewSummarizer(&cfg.AI, logger)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	fmt.Printf("\n  %s%sAI Summary%s %s(%s)%s\n", colorBold, colorRed, colorReset, colorGray, ai.GetLanguageName(cfg.AI.Language), colorReset)
	summary, err := summarizer.Summarize(ctx, user, result)
	if err != nil {
		fmt.Printf("  %s⚠ %v%s\n\n", colorYellow, err, colorReset)
		return err
	}

	fmt.Println()
	for _, line := range strings.Split(summary.Text, "\n") {
		fmt.Printf("  %s\n", line)
	}
	fmt.Println()
	note := ""
	if summary.Truncated {
		note = ", diff truncated"
	}
	fmt.Printf("  %s✓ %s, %d tokens used%s%s\n\n", colorRed, summary.Model, summary.TokensUsed, note, colorReset)
	return nil
}

// serveCmd runs the read-only HTTP API
func serveCmd() *cobra.Command {
	var (
		storeRoot string
		port      int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored changesets and diffs over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, st, err := openStore(storeRoot)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.ListenPort = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signalContext()
			defer stop()

			api.Version = version
			server := api.NewServer(st, cfg.ListenPort, diff.Mode(cfg.DiffMode), logger)
			fmt.Printf("  %sListening:%s %shttp://localhost%s%s\n", colorGray, colorReset, colorOrange, server.Addr(), colorReset)
			fmt.Printf("  %sStore:%s     %s\n\n", colorGray, colorReset, st.Root())
			return server.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&storeRoot, "store", "", "Changeset store directory")
	cmd.Flags().IntVar(&port, "port", 0, "Listen port (default: 3000)")
	return cmd
}

// validateFlags validates CLI flag values
func validateFlags(reportFormat, mode, aiModel, aiLang string) error {
	if reportFormat != "" {
		validFormats := []string{"text", "txt", "json", "md", "markdown"}
		if !contains(validFormats, reportFormat) {
			return fmt.Errorf("--report must be one of: %s (got: %s)", strings.Join(validFormats, ", "), reportFormat)
		}
	}

	if mode != "" {
		validModes := []string{"char", "line"}
		if !contains(validModes, mode) {
			return fmt.Errorf("--mode must be one of: %s (got: %s)", strings.Join(validModes, ", "), mode)
		}
	}

	if aiModel != "" {
		validModels := []string{"haiku", "sonnet", "opus"}
		if !contains(validModels, aiModel) {
			return fmt.Errorf("--ai-model must be one of: %s (got: %s)", strings.Join(validModels, ", "), aiModel)
		}
	}

	if aiLang != "" {
		validLangs := []string{"en", "ru", "es", "de", "zh", "pl"}
		if !contains(validLangs, aiLang) {
			return fmt.Errorf("--ai-lang must be one of: %s (got: %s)", strings.Join(validLangs, ", "), aiLang)
		}
	}

	return nil
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// shorten truncates a progress message
func shorten(msg string, max int) string {
	r := []rune(msg)
	if len(r) <= max {
		return msg
	}
	return string(r[:max-3]) + "..."
}

// printBanner prints the startup banner
func printBanner(homeRoot, storeRoot string) {
	printMainBanner()
	fmt.Printf("  %sHome:%s      %s\n", colorGray, colorReset, homeRoot)
	fmt.Printf("  %sStore:%s     %s\n", colorGray, colorReset, storeRoot)
	fmt.Println()
}

// helpCmd creates a detailed help command
func helpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help",
		Short: "Show detailed help and documentation",
		Long:  `Display complete documentation including all commands, flags, and examples.`,
		Run: func(cmd *cobra.Command, args []string) {
			printMainBanner()

			fmt.Printf("%s%sABOUT%s\n\n", colorBold, colorOrange, colorReset)
			fmt.Printf("  Webtrail keeps a history of what every hosted domain serves. Each scan\n")
			fmt.Printf("  samples the files under ~user/domains/<domain>/public_html, fetches the\n")
			fmt.Printf("  live site over http and https and stores the result as a changeset.\n\n")

			fmt.Printf("  %sKey features:%s\n", colorBold, colorReset)
			fmt.Printf("  • One concurrent task per user with a shared open-file budget\n")
			fmt.Printf("  • Encoding and language detection for every sampled file\n")
			fmt.Printf("  • Compressed changeset store with optional JSON mirror\n")
			fmt.Printf("  • Character and line diffs in the terminal, as HTML or over HTTP\n")
			fmt.Printf("  • Optional AI description of what changed\n\n")

			fmt.Printf("%s%sCOMMANDS%s\n\n", colorBold, colorOrange, colorReset)

			fmt.Printf("  %sscan [users...]%s          Snapshot all users, or only the named ones\n", colorBold, colorReset)
			fmt.Printf("  %schangesets <user>%s        List stored changesets\n", colorBold, colorReset)
			fmt.Printf("  %sshow <user> <uuid>%s       Print one changeset as JSON\n", colorBold, colorReset)
			fmt.Printf("  %sdiff <user> [a b]%s        Diff two changesets (default: the two latest)\n", colorBold, colorReset)
			fmt.Printf("  %sserve%s                    Read-only HTTP API and HTML history\n", colorBold, colorReset)

			fmt.Printf("\n%s%sSCAN FLAGS%s\n\n", colorBold, colorOrange, colorReset)

			fmt.Printf("  %s--home%s <dir>       Parent of user content roots (default: /home)\n", colorBold, colorReset)
			fmt.Printf("  %s--store%s <dir>      Changeset store (default: .changesets)\n", colorBold, colorReset)
			fmt.Printf("  %s--workers%s <n>      Concurrent user tasks (default: CPU cores × 2)\n", colorBold, colorReset)
			fmt.Printf("  %s--exclude%s          Directories to exclude (comma-separated)\n", colorBold, colorReset)
			fmt.Printf("  %s--link-parent%s      Chain each changeset to the previous one\n", colorBold, colorReset)
			fmt.Printf("  %s--no-json%s          Skip the JSON mirror of each changeset\n", colorBold, colorReset)
			fmt.Printf("  %s-r, --report%s <fmt> Report format: %stxt%s, %sjson%s, %smd%s\n",
				colorBold, colorReset, colorCyan, colorReset, colorCyan, colorReset, colorCyan, colorReset)
			fmt.Printf("  %s-o, --output%s <file> Output file path\n", colorBold, colorReset)

			fmt.Printf("\n%s%sDIFF FLAGS%s\n\n", colorBold, colorOrange, colorReset)

			fmt.Printf("  %s--ext%s <ext>        Only diff files with this extension\n", colorBold, colorReset)
			fmt.Printf("  %s--mode%s <mode>      Granularity: %schar%s (default), %sline%s\n",
				colorBold, colorReset, colorCyan, colorReset, colorCyan, colorReset)
			fmt.Printf("  %s--html%s <file>      Also write an HTML page\n", colorBold, colorReset)
			fmt.Printf("  %s--json%s             Print the diff as JSON\n", colorBold, colorReset)
			fmt.Printf("  %s--no-color%s         Plain [-removed-] {+added+} markers\n", colorBold, colorReset)
			fmt.Printf("  %s--explain%s          Describe the changes with AI\n", colorBold, colorReset)
			fmt.Printf("  %s--ai-model%s <model> AI model: %shaiku%s (default), %ssonnet%s, %sopus%s\n",
				colorBold, colorReset, colorCyan, colorReset, colorCyan, colorReset, colorCyan, colorReset)
			fmt.Printf("  %s--ai-token%s <token> Anthropic API token (or set ANTHROPIC_API_KEY env)\n", colorBold, colorReset)
			fmt.Printf("  %s--ai-lang%s <lang>   Summary language: en, ru, es, de, zh, pl\n", colorBold, colorReset)

			fmt.Printf("\n%s%sGLOBAL FLAGS%s\n\n", colorBold, colorOrange, colorReset)

			fmt.Printf("  %s-v, --verbose%s      Enable verbose logging\n", colorBold, colorReset)
			fmt.Printf("  %s--config%s <file>    YAML config file (env: WEBTRAIL_*)\n", colorBold, colorReset)
			fmt.Printf("  %s-h, --help%s         Show help for any command\n", colorBold, colorReset)
			fmt.Printf("  %s--version%s          Show version\n", colorBold, colorReset)

			fmt.Printf("\n%s%sEXAMPLES%s\n\n", colorBold, colorOrange, colorReset)

			fmt.Printf("  %s# Snapshot every account%s\n", colorGray, colorReset)
			fmt.Printf("  webtrail scan\n\n")

			fmt.Printf("  %s# Snapshot two users and write a JSON report%s\n", colorGray, colorReset)
			fmt.Printf("  webtrail scan alice bob --report=json\n\n")

			fmt.Printf("  %s# What changed in alice's PHP files since the last scan%s\n", colorGray, colorReset)
			fmt.Printf("  webtrail diff alice --ext=php --mode=line\n\n")

			fmt.Printf("  %s# Same, explained by AI%s\n", colorGray, colorReset)
			fmt.Printf("  webtrail diff alice --explain\n\n")

			fmt.Printf("  %s# Browse history at http://localhost:3000/history/alice%s\n", colorGray, colorReset)
			fmt.Printf("  webtrail serve\n\n")
		},
	}
}
