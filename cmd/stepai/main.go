// Package main provides the CLI entrypoint for stepai.
package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/verte-zerg/stepai/internal/config"
	"github.com/verte-zerg/stepai/internal/gpio"
	"github.com/verte-zerg/stepai/internal/ledger"
	"github.com/verte-zerg/stepai/internal/logger"
	"github.com/verte-zerg/stepai/internal/model"
	"github.com/verte-zerg/stepai/internal/switchui"
	"github.com/verte-zerg/stepai/internal/tui"
)

const (
	defaultSteps          = 5000
	defaultStepsPerMinute = 1000
	defaultWalk           = 1000
	defaultPin            = 5
	defaultLogLevel       = "info"
	defaultLogMaxSize     = 5
	defaultLogMaxBackups  = 3
	defaultLogMaxAge      = 28
)

var (
	exchangeSteps          int
	exchangeStepsPerMinute int
	exchangeWalk           int

	switchPin int

	statusRedeem bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "stepai",
		Short:         "Exchange walked steps for minutes",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runExchangeCmd,
	}
	addExchangeFlags(rootCmd)

	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newSwitchCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func addExchangeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&exchangeSteps, "steps", defaultSteps, "initial total steps")
	cmd.Flags().IntVar(&exchangeStepsPerMinute, "steps-per-minute", defaultStepsPerMinute, "steps exchanged for one minute")
	cmd.Flags().IntVar(&exchangeWalk, "walk", defaultWalk, "steps added by each walk")
}

func runExchangeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := resolveExchangeConfig(cmd, fileCfg)
	if err := validateExchangeConfig(cfg); err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		l, err := newLedger(cfg, zap.NewNop())
		if err != nil {
			return err
		}
		return printStatus(cmd.OutOrStdout(), l.Snapshot())
	}

	log, err := newLogger(fileCfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	l, err := newLedger(cfg, log)
	if err != nil {
		return err
	}
	program := tea.NewProgram(tui.NewModel(l, uint32(cfg.Walk), log), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	log.Info("exchange screen closed", zap.Uint32("exchanged_total", l.Snapshot().RedeemedMinutes))
	return nil
}

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print step and exchange totals",
		Args:  cobra.NoArgs,
		RunE:  runStatusCmd,
	}
	addExchangeFlags(cmd)
	cmd.Flags().BoolVar(&statusRedeem, "redeem", false, "exchange all available minutes before printing")
	return cmd
}

func runStatusCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := resolveExchangeConfig(cmd, fileCfg)
	if err := validateExchangeConfig(cfg); err != nil {
		return err
	}
	log, err := newLogger(fileCfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	l, err := newLedger(cfg, log)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if statusRedeem {
		amount := l.RedeemAll()
		log.Info("status redeem", zap.Uint32("minutes", amount))
		if err := printRedeem(out, amount); err != nil {
			return err
		}
	}
	return printStatus(out, l.Snapshot())
}

func newSwitchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "switch",
		Short: "Toggle an output pin from an on-screen switch",
		Args:  cobra.NoArgs,
		RunE:  runSwitchCmd,
	}
	cmd.Flags().IntVar(&switchPin, "pin", defaultPin, "output pin number (-1 = not connected)")
	return cmd
}

func runSwitchCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "pin", &switchPin, fileCfg.Switch.Pin)
	cfg := model.SwitchConfig{Pin: switchPin}
	if cfg.Pin < gpio.NotConnected {
		return fmt.Errorf("--pin must be >= %d", gpio.NotConnected)
	}

	log, err := newLogger(fileCfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Info("switch screen started")
	pin := gpio.NewSimulatedPin(cfg.Pin, log)
	program := tea.NewProgram(switchui.NewModel(pin, log), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
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

func resolveExchangeConfig(cmd *cobra.Command, fileCfg config.FileConfig) model.ExchangeConfig {
	applyIntConfig(cmd, "steps", &exchangeSteps, fileCfg.Exchange.Steps)
	applyIntConfig(cmd, "steps-per-minute", &exchangeStepsPerMinute, fileCfg.Exchange.StepsPerMinute)
	applyIntConfig(cmd, "walk", &exchangeWalk, fileCfg.Exchange.Walk)
	return model.ExchangeConfig{
		Steps:          exchangeSteps,
		StepsPerMinute: exchangeStepsPerMinute,
		Walk:           exchangeWalk,
	}
}

func resolveLogConfig(fileCfg config.FileConfig) model.LogConfig {
	cfg := model.LogConfig{
		Level:      defaultLogLevel,
		File:       config.DefaultLogPath(),
		MaxSize:    defaultLogMaxSize,
		MaxBackups: defaultLogMaxBackups,
		MaxAge:     defaultLogMaxAge,
	}
	if v := fileCfg.Log.Level; v != nil {
		cfg.Level = *v
	}
	if v := fileCfg.Log.File; v != nil {
		cfg.File = *v
	}
	if v := fileCfg.Log.MaxSize; v != nil {
		cfg.MaxSize = *v
	}
	if v := fileCfg.Log.MaxBackups; v != nil {
		cfg.MaxBackups = *v
	}
	if v := fileCfg.Log.MaxAge; v != nil {
		cfg.MaxAge = *v
	}
	return cfg
}

func newLogger(fileCfg config.FileConfig) (*zap.Logger, error) {
	cfg := resolveLogConfig(fileCfg)
	log, err := logger.New(logger.Config{
		Level:      cfg.Level,
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	return log, nil
}

func newLedger(cfg model.ExchangeConfig, log *zap.Logger) (*ledger.Ledger, error) {
	l, err := ledger.New(uint32(cfg.Steps), uint32(cfg.StepsPerMinute))
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger: %w", err)
	}
	log.Info("ledger ready",
		zap.Int("total_steps", cfg.Steps),
		zap.Int("steps_per_minute", cfg.StepsPerMinute),
		zap.Uint32("exchangeable", l.Recompute()),
	)
	return l, nil
}

func printStatus(w io.Writer, snap ledger.Snapshot) error {
	_, err := fmt.Fprintf(w, "Total: %d steps\nExchanged: %d min\nExchangeable: %d min\n",
		snap.TotalUnits, snap.RedeemedMinutes, snap.RedeemableMinutes)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func printRedeem(w io.Writer, amount uint32) error {
	msg := "No Power"
	if amount > 0 {
		msg = fmt.Sprintf("Success: exchanged %d min", amount)
	}
	if _, err := fmt.Fprintln(w, msg); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
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

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# stepai configuration
# Uncomment a value to enable it. CLI flags override config values.

[exchange]
# steps = %d               # Initial total steps
# steps-per-minute = %d    # Steps exchanged for one minute
# walk = %d                # Steps added by each walk

[switch]
# pin = %d                    # Output pin number (-1 = not connected)

[log]
# level = %q             # debug, info, warn, error
# file = %q
# max-size = %d               # Megabytes before rotation
# max-backups = %d
# max-age = %d               # Days
`,
		defaultSteps,
		defaultStepsPerMinute,
		defaultWalk,
		defaultPin,
		defaultLogLevel,
		config.DefaultLogPath(),
		defaultLogMaxSize,
		defaultLogMaxBackups,
		defaultLogMaxAge,
	)
}

func validateExchangeConfig(cfg model.ExchangeConfig) error {
	if cfg.Steps < 0 || uint64(cfg.Steps) > maxUnits {
		return fmt.Errorf("--steps must be between 0 and %d", maxUnits)
	}
	if cfg.StepsPerMinute <= 0 || uint64(cfg.StepsPerMinute) > maxUnits {
		return fmt.Errorf("--steps-per-minute must be between 1 and %d", maxUnits)
	}
	if cfg.Walk <= 0 || uint64(cfg.Walk) > maxUnits {
		return fmt.Errorf("--walk must be between 1 and %d", maxUnits)
	}
	return nil
}

const maxUnits = 1<<32 - 1
