// Package cli wires the specview command line: flag handling, config and
// logger setup, input detection, and mode selection.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/dkoosis/specview/internal/config"
	"github.com/dkoosis/specview/internal/logging"
	"github.com/dkoosis/specview/internal/tui"
	"github.com/dkoosis/specview/pkg/describe"
	"github.com/dkoosis/specview/pkg/gotestjson"
	"github.com/dkoosis/specview/pkg/render"
	"github.com/dkoosis/specview/pkg/spec"
	"github.com/dkoosis/specview/pkg/stream"
)

const (
	envPrefix = "SPECVIEW"

	themeFlagName   = "theme"
	formatFlagName  = "format"
	noColorFlagName = "no-color"
	logFileFlagName = "log-file"
	verboseFlagName = "verbose"

	noColorConfigKey = "no_color"
	logFileConfigKey = "log.file"
	verboseConfigKey = "log.verbose"
)

var (
	themeFlag   string
	formatFlag  string
	noColorFlag bool
	logFileFlag string
	verboseFlag bool
)

// exitCode carries the session result out of RunE, which can only return
// an error.
var exitCode int

const rootLongDescription = `Specview renders go test -json output as a readable spec narrative:
described objects, their contexts, and one line per test.

  go test -json ./... | specview

Test and subtest names are turned into descriptions, so
TestCar/WithoutFuel/test_cannot_move reads as

  a Car
    without fuel
      ✗ cannot move`

var rootCmd = &cobra.Command{
	Use:           "specview",
	Short:         "Readable spec narrative for go test -json output",
	Long:          rootLongDescription,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&themeFlag, themeFlagName, "t", "", "color theme: default, orca, mono")
	flags.StringVarP(&formatFlag, formatFlagName, "f", "auto", "output mode: auto, plain, live, tui")
	flags.BoolVar(&noColorFlag, noColorFlagName, false, "disable colors")
	flags.StringVar(&logFileFlag, logFileFlagName, "", "write debug logs to this file")
	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", false, "log at debug level")

	bindFlagToConfig(flags.Lookup(themeFlagName), themeFlagName)
	bindFlagToConfig(flags.Lookup(formatFlagName), formatFlagName)
	bindFlagToConfig(flags.Lookup(noColorFlagName), noColorConfigKey)
	bindFlagToConfig(flags.Lookup(logFileFlagName), logFileConfigKey)
	bindFlagToConfig(flags.Lookup(verboseFlagName), verboseConfigKey)

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(versionCmd)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so env values feed
// the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "specview: %v\n", err)
		return 2
	}
	return exitCode
}

func runRoot(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "specview: warning: %s: %v\n", config.FileName, err)
	}
	applyFlags(cfg)

	logging.Setup(cfg.Logging, verboseFlag)

	// Peek stdin to verify the input format without consuming it.
	br := bufio.NewReaderSize(os.Stdin, 8*1024)
	peeked, _ := br.Peek(4096)
	if len(peeked) == 0 {
		return fmt.Errorf("no input on stdin (pipe go test -json into specview)")
	}
	if !gotestjson.Sniff(peeked) {
		return fmt.Errorf("stdin does not look like go test -json output")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	// Close stdin on cancel to unblock the stream's scanner goroutine;
	// bufio.Reader does not implement io.Closer.
	stopClose := context.AfterFunc(ctx, func() { _ = os.Stdin.Close() })
	defer stopClose()

	exitCode = runMode(ctx, resolveMode(formatFlag, os.Stdout), cfg, br)
	return nil
}

// applyFlags resolves the effective option values. Each value is read back
// through viper, so precedence is: explicit flag, then SPECVIEW_* env var,
// then .specview.yaml, then the built-in default. The NO_COLOR convention
// is honored regardless.
func applyFlags(cfg *config.AppConfig) {
	themeFlag = viper.GetString(themeFlagName)
	if themeFlag == "" {
		themeFlag = cfg.Theme
	}
	formatFlag = viper.GetString(formatFlagName)
	noColorFlag = viper.GetBool(noColorConfigKey) || cfg.NoColor
	if os.Getenv("NO_COLOR") != "" {
		noColorFlag = true
	}
	logFileFlag = viper.GetString(logFileConfigKey)
	if logFileFlag == "" {
		logFileFlag = cfg.Logging.File
	}
	cfg.Logging.File = logFileFlag
	verboseFlag = viper.GetBool(verboseConfigKey)
}

// resolveMode picks the output mode: auto means live when stdout is a
// terminal, plain when piped.
func resolveMode(format string, stdout io.Writer) string {
	switch format {
	case "plain", "live", "tui":
		return format
	}
	if isTTYWriter(stdout) {
		return "live"
	}
	return "plain"
}

func runMode(ctx context.Context, mode string, cfg *config.AppConfig, input io.Reader) int {
	theme := activeTheme()
	resolver := describe.New(
		describe.WithExtraStripPrefixes(cfg.StripPrefixes...),
		describe.WithExtraMinorWords(cfg.MinorWords...),
	)
	sessionCfg := stream.Config{
		Out:         os.Stdout,
		Style:       theme.Style(),
		Glyphs:      render.Glyphs{Pass: cfg.Glyphs.Pass, Fail: cfg.Glyphs.Fail, Pending: cfg.Glyphs.Pending},
		Resolver:    resolver,
		Annotations: spec.NewAnnotations(),
	}

	switch mode {
	case "tui":
		feed := tui.NewFeed()
		sessionCfg.Out = feed
		sessionCfg.Notify = feed.SetActive
		session := stream.NewSession(sessionCfg)
		go func() {
			feed.Finish(session.Run(ctx, input))
		}()
		code, err := tui.Run(ctx, feed, theme)
		if err != nil {
			if ctx.Err() != nil {
				return 130
			}
			fmt.Fprintf(os.Stderr, "specview: %v\n", err)
			return 2
		}
		return code

	case "live":
		sessionCfg.Live = true
		sessionCfg.Width, sessionCfg.Height = termSize(os.Stdout)
		return stream.NewSession(sessionCfg).Run(ctx, input)

	default:
		return stream.NewSession(sessionCfg).Run(ctx, input)
	}
}

func activeTheme() render.Theme {
	if noColorFlag {
		return render.MonoTheme()
	}
	return render.ThemeByName(themeFlag)
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termSize returns the terminal dimensions for w, defaulting to 80x24.
func termSize(w io.Writer) (width, height int) {
	width, height = 80, 24
	if f, ok := w.(*os.File); ok {
		if tw, th, err := term.GetSize(int(f.Fd())); err == nil {
			if tw > 0 {
				width = tw
			}
			if th > 0 {
				height = th
			}
		}
	}
	return width, height
}
