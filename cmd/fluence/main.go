// Package main provides the CLI entrypoint for fluence.
package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/fluence/internal/app"
	"github.com/verte-zerg/fluence/internal/config"
	"github.com/verte-zerg/fluence/internal/fluency"
	"github.com/verte-zerg/fluence/internal/lang"
	"github.com/verte-zerg/fluence/internal/model"
	"github.com/verte-zerg/fluence/internal/report"
	"github.com/verte-zerg/fluence/internal/wordsource"
)

const (
	defaultDuration = int(fluency.DefaultDuration / time.Second)
	maxDuration     = 3600
)

var (
	testDuration int
	testLang     string
	testTextsDir string
	testNoMouse  bool
	testFile     string
	testBuiltin  bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fluence",
		Short:         "TUI reading fluency test",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runTestCmd,
	}

	rootCmd.Flags().IntVar(&testDuration, "duration", defaultDuration, "test duration in seconds")
	rootCmd.Flags().StringVar(&testLang, "lang", lang.Default, "interface language ("+strings.Join(lang.Codes(), ", ")+")")
	rootCmd.Flags().BoolVar(&testNoMouse, "no-mouse", false, "disable mouse input")
	rootCmd.Flags().StringVar(&testFile, "file", "", "start directly with this .txt file")
	rootCmd.Flags().BoolVar(&testBuiltin, "builtin", false, "start directly with the bundled text")
	rootCmd.MarkFlagsMutuallyExclusive("file", "builtin")
	rootCmd.PersistentFlags().StringVar(&testTextsDir, "texts-dir", "", "directory of .txt texts (default: $XDG_CONFIG_HOME/fluence/texts)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newTextsCmd())
	rootCmd.AddCommand(newPreviewCmd())

	return rootCmd
}

func runTestCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadTestConfig(cmd)
	if err != nil {
		return err
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	strs, err := lang.Lookup(cfg.Lang)
	if err != nil {
		return err
	}

	opts := app.Options{
		Strings:  strs,
		Duration: time.Duration(cfg.DurationSeconds) * time.Second,
	}
	switch {
	case cfg.Builtin:
		opts.Tokens, err = wordsource.Builtin().Load()
	case cfg.File != "":
		opts.Tokens, err = wordsource.File(cfg.File).Load()
	default:
		opts.Texts, opts.ListErr = wordsource.ListTexts(cfg.TextsDir)
		if opts.ListErr != nil {
			logErrln("warning:", opts.ListErr)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to load text: %w", err)
	}

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	program := tea.NewProgram(app.New(opts), programOpts...)
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return printFinalResult(cmd.OutOrStdout(), final, strs)
}

// printFinalResult prints the score of the test left on screen, if any, once
// the alternate screen is gone.
func printFinalResult(w io.Writer, final tea.Model, s lang.Strings) error {
	root, ok := final.(*app.Model)
	if !ok || root.Test() == nil {
		return nil
	}
	res, ok := root.Test().Result()
	if !ok {
		return nil
	}
	if err := report.RenderResult(w, res, s); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

// loadTestConfig merges the config file under the command line flags.
func loadTestConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "duration", &testDuration, fileCfg.Test.Duration)
	applyStringConfig(cmd, "lang", &testLang, fileCfg.Test.Lang)
	applyStringConfig(cmd, "texts-dir", &testTextsDir, fileCfg.Test.TextsDir)
	if fileCfg.Test.Mouse != nil {
		noMouse := !*fileCfg.Test.Mouse
		applyBoolConfig(cmd, "no-mouse", &testNoMouse, &noMouse)
	}

	cfg := model.Config{
		DurationSeconds: testDuration,
		Lang:            testLang,
		TextsDir:        testTextsDir,
		Mouse:           !testNoMouse,
		File:            testFile,
		Builtin:         testBuiltin,
	}
	if cfg.TextsDir == "" {
		cfg.TextsDir = config.DefaultTextsDir()
	}
	return cfg, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newTextsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "texts",
		Short: "List available texts",
		Args:  cobra.NoArgs,
		RunE:  runTextsCmd,
	}
}

func runTextsCmd(cmd *cobra.Command, _ []string) error {
	dir, err := resolveTextsDir(cmd)
	if err != nil {
		return err
	}
	texts, err := wordsource.ListTexts(dir)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "%s (built-in)\n", wordsource.BuiltinText().Title()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	for _, text := range texts {
		if _, err := fmt.Fprintln(out, text.Path); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if len(texts) == 0 {
		logErrf("No texts in %s. Add .txt files there, one word per line.\n", dir)
	}
	return nil
}

func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview [PATH]",
		Short: "Print the words of a text with their indices",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPreviewCmd,
	}
}

func runPreviewCmd(cmd *cobra.Command, args []string) error {
	var src wordsource.Source = wordsource.Builtin()
	if len(args) == 1 {
		src = wordsource.File(args[0])
	}
	tokens, err := src.Load()
	if err != nil {
		return fmt.Errorf("failed to load text: %w", err)
	}
	return report.RenderTokenTable(cmd.OutOrStdout(), tokens, report.TerminalWidth(os.Stdout))
}

func resolveTextsDir(cmd *cobra.Command) (string, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "texts-dir", &testTextsDir, fileCfg.Test.TextsDir)
	if testTextsDir == "" {
		return config.DefaultTextsDir(), nil
	}
	return testTextsDir, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# fluence configuration
# Uncomment a value to enable it. CLI flags override config values.

[test]
# duration = %d           # Test duration in seconds
# lang = %q             # Interface language (%s)
# texts-dir = %q         # Directory of .txt texts
# mouse = true            # Enable mouse input
`,
		defaultDuration,
		lang.Default,
		strings.Join(lang.Codes(), ", "),
		config.DefaultTextsDir(),
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.DurationSeconds <= 0 {
		return fmt.Errorf("--duration must be > 0")
	}
	if cfg.DurationSeconds > maxDuration {
		return fmt.Errorf("--duration must be <= %d", maxDuration)
	}
	if _, err := lang.Lookup(cfg.Lang); err != nil {
		return fmt.Errorf("--lang: %w", err)
	}
	if cfg.File != "" && cfg.Builtin {
		return fmt.Errorf("--file and --builtin are mutually exclusive")
	}
	if cfg.File != "" && !wordsource.IsTextFile(cfg.File) {
		return fmt.Errorf("--file must be a .txt file")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
