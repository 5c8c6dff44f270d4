package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/jk/internal/config"
	"github.com/nikbrunner/jk/internal/jokeapi"
	"github.com/nikbrunner/jk/internal/logging"
	"github.com/nikbrunner/jk/internal/model"
	"github.com/nikbrunner/jk/internal/picker"
	"github.com/nikbrunner/jk/internal/tui"
	"github.com/spf13/pflag"
)

const defaultPickCount = 5

// options holds the command line flags. Zero values fall back to the
// config file.
type options struct {
	configPath string
	apiURL     string
	timeout    time.Duration
	logFile    string
	logLevel   string
}

func main() {
	var opts options
	flagSet := newFlagSet(&opts)

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return
	}

	args := flagSet.Args()
	if len(args) == 0 {
		runTUI(opts)
		return
	}

	switch args[0] {
	case "help":
		printHelp(flagSet)
	case "random":
		runRandom(opts)
	case "pick":
		count := defaultPickCount
		if len(args) >= 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				fmt.Fprintf(os.Stderr, "Usage: jk pick [n]  (n must be a positive number)\n")
				os.Exit(1)
			}
			count = n
		}
		runPick(opts, count)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args[0])
		printHelp(flagSet)
		os.Exit(1)
	}
}

// newFlagSet binds the command line flags to opts. help is a regular
// flag, so Parse never returns pflag.ErrHelp.
func newFlagSet(opts *options) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("jk", pflag.ContinueOnError)
	flagSet.StringVar(&opts.configPath, "config", "", "path to config file (default: ~/.config/jk/config.json)")
	flagSet.StringVar(&opts.apiURL, "api-url", "", "joke API base URL")
	flagSet.DurationVar(&opts.timeout, "timeout", 0, "request timeout (e.g. 5s)")
	flagSet.StringVar(&opts.logFile, "log-file", "", "write JSON log records to this file (default: ~/.config/jk/jk.log)")
	flagSet.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flagSet.BoolP("help", "h", false, "show help")
	return flagSet
}

func printHelp(flagSet *pflag.FlagSet) {
	help := `jk - terminal joke browser

Usage:
  jk [flags]            Open interactive TUI
  jk random             Print one random joke
  jk pick [n]           Fetch n jokes (default 5), pick one, copy it
  jk help               Show this help

TUI Keybindings:
  Jokes:
    f/space     Get random joke
    h/l         Previous/next joke
    g/G         First/last joke
    e           Edit setup and punchline (enter save, alt+enter newline)
    d           Remove joke
    y           Copy joke to clipboard

  Favorites:
    a           Add to favorites
    tab         Focus favorites (j/k move, x remove, enter show)
    E           Export favorites to HTML

  Other:
    /           Fuzzy search fetched jokes
    c           Toggle remove confirmations
    ?           Show help overlay
    q           Quit

Flags:
`
	fmt.Print(help)
	fmt.Print(flagSet.FlagUsages())
	fmt.Print(`
Config:
  ~/.config/jk/config.json
`)
}

// setup loads the config, applies flag overrides and opens the log.
// The returned func closes the log file.
func setup(opts options) (*config.Config, *slog.Logger, func()) {
	configPath := opts.configPath
	if configPath == "" {
		var err error
		configPath, err = config.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting config path: %v\n", err)
			os.Exit(1)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if opts.apiURL != "" {
		cfg.APIURL = opts.apiURL
	}
	if opts.timeout > 0 {
		cfg.TimeoutSeconds = max(1, int(opts.timeout.Round(time.Second)/time.Second))
	}
	if opts.logFile != "" {
		cfg.LogFile = opts.logFile
	}

	logPath := cfg.LogFile
	if logPath == "" {
		logPath, err = config.DefaultLogPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting log path: %v\n", err)
			os.Exit(1)
		}
	}

	logger, closeLog, err := logging.Open(logPath, logging.ParseLevel(opts.logLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}

	return cfg, logger, closeLog
}

func newClient(cfg *config.Config, logger *slog.Logger) *jokeapi.Client {
	return jokeapi.NewClient(jokeapi.ClientParams{
		BaseURL: cfg.APIURL,
		Timeout: cfg.Timeout(),
		Logger:  logger,
	})
}

// runTUI runs the full interactive TUI.
func runTUI(opts options) {
	cfg, logger, closeLog := setup(opts)
	defer closeLog()

	session := model.NewSession()
	logger.Info("session started", "session", session.ID(), "api_url", cfg.APIURL)

	app := tui.NewApp(tui.AppParams{
		Session:       session,
		Source:        newClient(cfg, logger),
		Logger:        logger,
		ConfirmRemove: cfg.ShouldConfirmRemove(),
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		closeLog()
		os.Exit(1)
	}

	logger.Info("session ended",
		"session", session.ID(),
		"jokes", session.Len(),
		"favorites", len(session.Favorites()),
	)
}

// runRandom prints a single joke.
func runRandom(opts options) {
	cfg, logger, closeLog := setup(opts)
	defer closeLog()

	joke, err := newClient(cfg, logger).RandomJoke(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeLog()
		os.Exit(1)
	}

	fmt.Println(joke.String())
}

// runPick fetches a batch of jokes and lets the user choose one.
func runPick(opts options, count int) {
	cfg, logger, closeLog := setup(opts)
	defer closeLog()

	jokes, err := newClient(cfg, logger).RandomJokes(context.Background(), count)
	if err != nil {
		if len(jokes) == 0 {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			closeLog()
			os.Exit(1)
		}
		// Partial batch is still worth picking from
		fmt.Fprintf(os.Stderr, "Warning: fetched %d of %d jokes: %v\n", len(jokes), count, err)
	}

	p := picker.New(jokes, "Pick a joke")
	finalModel, err := tea.NewProgram(p).Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
		closeLog()
		os.Exit(1)
	}

	joke, ok := finalModel.(picker.Picker).Selected()
	if !ok {
		return
	}

	fmt.Println(joke.String())
	if err := clipboard.WriteAll(joke.String()); err != nil {
		logger.Warn("clipboard write failed", "error", err)
		fmt.Fprintf(os.Stderr, "Could not copy to clipboard: %v\n", err)
		return
	}
	fmt.Fprintln(os.Stderr, "Copied to clipboard.")
}
