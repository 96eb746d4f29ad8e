package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dekarrin/barescript/internal/script"
)

// file main.go is the bsrun CLI entry point (C12): a two-subcommand cobra
// program (run/eval) wiring command-line and TOML config settings into a
// script.Host and reporting ParseError/RuntimeError with distinct exit
// codes.

var log = logrus.New()

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := newRootCommand()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		if code, ok := err.(exitCode); ok {
			return int(code)
		}
		log.WithError(err).Error("bsrun")
		return 1
	}
	return 0
}

// exitCode lets a subcommand's RunE communicate a specific process exit
// status (2 for ParseError, 3 for RuntimeError) through cobra's plain error
// return.
type exitCode int

func (e exitCode) Error() string { return fmt.Sprintf("exit code %d", int(e)) }

func newRootCommand() *cobra.Command {
	cfg := &cliConfig{}

	root := &cobra.Command{
		Use:   "bsrun",
		Short: "Parse and run barescript source from the command line",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd, cfg)
		},
	}

	flags := root.PersistentFlags()
	flags.String("log-level", "info", "logrus level: debug, info, warn, error")
	flags.Int("max-statements", 10_000_000, "statement budget; 0 = unbounded")
	flags.String("config", "", "path to a bsrun.toml config file")

	root.AddCommand(newRunCommand(cfg))
	root.AddCommand(newEvalCommand(cfg))
	return root
}

// cliConfig is the resolved settings record: flags override config file
// values, which override the built-in defaults loadConfig sets ("info",
// 10,000,000).
type cliConfig struct {
	LogLevel      string `toml:"log_level"`
	MaxStatements int    `toml:"max_statements"`
}

// loadConfig reads --config (if given) via BurntSushi/toml into defaults,
// then lets explicitly-set pflags take precedence, and applies the
// resulting log level to the package logger.
func loadConfig(cmd *cobra.Command, cfg *cliConfig) error {
	cfg.LogLevel = "info"
	cfg.MaxStatements = 10_000_000

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if err := decodeTOMLFile(path, cfg); err != nil {
			return fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("max-statements") {
		cfg.MaxStatements, _ = cmd.Flags().GetInt("max-statements")
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", cfg.LogLevel, err)
	}
	log.SetLevel(level)
	return nil
}

func newRunCommand(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Parse and execute a script file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(cfg, args[0])
		},
	}
}

func newEvalCommand(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expr>",
		Short: "Parse and evaluate a single expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return evalExpr(cfg, args[0])
		},
	}
}

func runFile(cfg *cliConfig, path string) error {
	text, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	parsed, err := script.ParseScript(string(text))
	if err != nil {
		log.WithError(err).Error("parse error")
		return exitCode(2)
	}

	host := newHost(cfg)
	result, err := script.ExecuteScript(parsed, host)
	if err != nil {
		log.WithError(err).Error("runtime error")
		return exitCode(3)
	}

	fmt.Println(script.Stringify(result))
	return nil
}

func evalExpr(cfg *cliConfig, text string) error {
	expr, err := script.ParseExpression(text)
	if err != nil {
		log.WithError(err).Error("parse error")
		return exitCode(2)
	}

	host := newHost(cfg)
	result, err := script.EvaluateExpression(expr, host, nil)
	if err != nil {
		log.WithError(err).Error("runtime error")
		return exitCode(3)
	}

	fmt.Println(script.Stringify(result))
	return nil
}

func newHost(cfg *cliConfig) *script.Host {
	host := script.NewHost()
	host.MaxStatements = cfg.MaxStatements
	host.LogFn = func(text string) { log.Info(text) }
	host.Ctx = context.Background()
	return host
}
