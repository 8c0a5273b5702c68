package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"github.com/takoeight0821/lox/config"
	"github.com/takoeight0821/lox/driver"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	inputPath   string
	configPath  string
	prompt      string
	traceTokens bool
	traceAST    bool
}

func newRootCmd() *cobra.Command {
	const (
		inputUsage = "input file path"
	)
	var opts options

	root := &cobra.Command{
		Use:           "lox",
		Short:         "Evaluate lox expressions",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if opts.inputPath == "" {
				return RunPrompt(cfg)
			}

			return RunFile(cfg, opts.inputPath, cmd.OutOrStdout())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.inputPath, "input", "i", "", inputUsage)
	flags.StringVar(&opts.configPath, "config", config.DefaultPath(), "config file path")
	flags.StringVar(&opts.prompt, "prompt", "", "REPL prompt")
	flags.BoolVar(&opts.traceTokens, "tokens", false, "print tokens before parsing")
	flags.BoolVar(&opts.traceAST, "ast", false, "print the syntax tree before evaluation")

	root.AddCommand(
		&cobra.Command{
			Use:   "tokens [source]",
			Short: "Print the tokens of a source text",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				source, err := readSource(opts.inputPath, args)
				if err != nil {
					return err
				}

				return driver.DumpTokens(cmd.OutOrStdout(), source)
			},
		},
		&cobra.Command{
			Use:   "ast [source]",
			Short: "Print the syntax tree of an expression",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				source, err := readSource(opts.inputPath, args)
				if err != nil {
					return err
				}
				node, err := driver.NewRunner().Parse(source)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), node)

				return nil
			},
		},
		&cobra.Command{
			Use:   "eval [source]",
			Short: "Evaluate an expression and print its value",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig(cmd, opts)
				if err != nil {
					return err
				}
				source, err := readSource(opts.inputPath, args)
				if err != nil {
					return err
				}

				return run(newRunner(cfg, cmd.ErrOrStderr()), source, cmd.OutOrStdout())
			},
		},
	)

	return root
}

// loadConfig reads the config file and applies the flags the user set.
func loadConfig(cmd *cobra.Command, opts options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("prompt") {
		cfg.Prompt = opts.prompt
	}
	if flags.Changed("tokens") {
		cfg.TraceTokens = opts.traceTokens
	}
	if flags.Changed("ast") {
		cfg.TraceAST = opts.traceAST
	}

	return cfg, nil
}

func readSource(path string, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if path == "" {
		return "", errors.New("no source: pass an expression or --input")
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}

func newRunner(cfg config.Config, trace io.Writer) *driver.Runner {
	r := driver.NewRunner()
	r.Trace = trace
	r.TraceTokens = cfg.TraceTokens
	r.TraceAST = cfg.TraceAST

	return r
}

func run(r *driver.Runner, source string, out io.Writer) error {
	v, err := r.RunSource(source)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, v)

	return nil
}

func printError(w io.Writer, err error) {
	var errs interface{ Unwrap() []error }
	if errors.As(err, &errs) {
		for _, err := range errs.Unwrap() {
			fmt.Fprintf(w, "Error: %v\n", err)
		}

		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

func RunPrompt(cfg config.Config) error {
	line := liner.NewLiner()
	defer func() {
		if cfg.HistoryFile != "" {
			saveHistory(line, cfg.HistoryFile)
		}
		line.Close()
	}()

	if cfg.HistoryFile != "" {
		if f, err := os.Open(cfg.HistoryFile); err == nil {
			defer f.Close()
			if _, err := line.ReadHistory(f); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
	}

	r := newRunner(cfg, os.Stderr)
	for {
		input, err := line.Prompt(cfg.Prompt)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)
		if err := run(r, input, os.Stdout); err != nil {
			printError(os.Stderr, err)
		}
	}
}

func saveHistory(line *liner.State, path string) {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		fmt.Fprintln(os.Stderr, err)

		return
	}
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return
	}
	defer f.Close()
	if _, err := line.WriteHistory(f); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

func RunFile(cfg config.Config, path string, out io.Writer) error {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return run(newRunner(cfg, os.Stderr), string(bytes), out)
}
