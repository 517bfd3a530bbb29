package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/restkit/config"
	"github.com/kbukum/restkit/version"
)

// Exit codes.
const (
	exitOK        = 0
	exitFailure   = 1
	exitUsage     = 2
	exitCancelled = 130
)

var errCallFailed = errors.New("call failed")

type flags struct {
	configFile string
	envFile    string
	baseURL    string
	engine     string
	timeout    string
	retries    int
	data       string
	headers    []string
	query      []string
	otlp       string
	verbose    bool
	progress   bool
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(stderr, "cancelled")
		return exitCancelled
	case errors.Is(err, errCallFailed):
		return exitFailure
	default:
		fmt.Fprintln(stderr, "error:", err)
		return exitUsage
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:           "apicall",
		Short:         "Send a JSON API call and print the classified outcome",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&f.configFile, "config", "", "config file (default: apicall.yml in the usual locations)")
	pf.StringVar(&f.envFile, "env-file", "", ".env file to load")
	pf.StringVar(&f.baseURL, "base-url", "", "base URL prepended to the request path")
	pf.StringVar(&f.engine, "engine", "", "transport engine: std or resty")
	pf.StringVar(&f.timeout, "timeout", "", "request timeout, e.g. 10s")
	pf.IntVar(&f.retries, "retries", -1, "retries on server errors")
	pf.StringArrayVarP(&f.headers, "header", "H", nil, "request header as key=value (repeatable)")
	pf.StringArrayVarP(&f.query, "query", "q", nil, "query parameter as key=value (repeatable)")
	pf.StringVar(&f.otlp, "otlp-endpoint", "", "export traces and metrics to this OTLP/HTTP host:port")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
	pf.BoolVar(&f.progress, "progress", false, "report loading state on stderr")

	for _, method := range []string{"get", "delete"} {
		root.AddCommand(newCallCmd(method, f, false))
	}
	for _, method := range []string{"post", "put", "patch"} {
		root.AddCommand(newCallCmd(method, f, true))
	}
	root.AddCommand(newVersionCmd())
	return root
}

func newCallCmd(method string, f *flags, withBody bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   method + " PATH",
		Short: "Send a " + strings.ToUpper(method) + " request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(f)
			if err != nil {
				return err
			}
			return call(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, f, strings.ToUpper(method), args[0])
		},
	}
	if withBody {
		cmd.Flags().StringVarP(&f.data, "data", "d", "", "JSON request body, or @file to read it from a file")
	}
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "apicall", version.Get().String())
		},
	}
}

// loadConfig layers defaults, the config file, the environment and flags.
func loadConfig(f *flags) (*cliConfig, error) {
	cfg := defaultCLIConfig()
	var opts []config.LoaderOption
	if f.configFile != "" {
		opts = append(opts, config.WithConfigFile(f.configFile))
	}
	if f.envFile != "" {
		opts = append(opts, config.WithEnvFile(f.envFile))
	}
	if err := config.LoadConfig("apicall", &cfg, opts...); err != nil {
		return nil, err
	}
	if err := applyFlags(&cfg, f); err != nil {
		return nil, err
	}
	return &cfg, nil
}
