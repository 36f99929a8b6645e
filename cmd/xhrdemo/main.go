// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command xhrdemo walks one request through its lifecycle, printing
// every step, state change and event as it happens.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/gogama/xhr"
	"github.com/gogama/xhr/internal/config"
	"github.com/gogama/xhr/internal/logging"
	"github.com/gogama/xhr/metrics"
	"github.com/gogama/xhr/request"
)

const longHelp = `Walk one request through its lifecycle and print every step.

The request is opened, sent, held in HeadersReceived for the configured
delay, then performed over HTTP while in Loading. Each state change and
the terminal load, error or abort event are printed as they happen.

Configuration is layered: built-in defaults, then the TOML file
($HOME/.xhr/config.toml unless --config is given), then XHR_*
environment variables, then flags.`

var exampleUsage = strings.TrimSpace(`
  xhrdemo https://jsonplaceholder.typicode.com/posts/1
  xhrdemo --method POST --data '{"title":"x"}' --delay 0s https://example.com/
  xhrdemo --abort-after 200ms --metrics https://example.com/slow
`)

// previewLimit caps how much of the response body is printed.
const previewLimit = 512

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	cfg := config.Default()
	var cfgPath string

	root := &cobra.Command{
		Use:          "xhrdemo [flags] URL",
		Short:        "Walk one request through its lifecycle and print every step",
		Long:         longHelp,
		Example:      exampleUsage,
		Version:      fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })
			if len(args) > 0 {
				cfg.URL = args[0]
				changed["url"] = true
			}

			if err := loadConfig(&cfg, cfgPath, changed); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, stderr)
			if err != nil {
				return err
			}
			logger.Debug().Interface("config", cfg).Msg("configuration")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, &cfg, &logger, stdout)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.xhr/config.toml)")
	root.Flags().StringVarP(&cfg.Method, "method", "X", cfg.Method, "request method")
	root.Flags().StringVarP(&cfg.Data, "data", "d", cfg.Data, "request body")
	root.Flags().DurationVar(&cfg.Delay, "delay", cfg.Delay, "time spent in HeadersReceived before loading (0 for none)")
	root.Flags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout of each HTTP attempt")
	root.Flags().IntVar(&cfg.Retries, "retries", cfg.Retries, "retries on throttling, gateway errors and transient errors")
	root.Flags().DurationVar(&cfg.AbortAfter, "abort-after", cfg.AbortAfter, "abort the request after this long (0 to never abort)")
	root.Flags().BoolVar(&cfg.H2C, "h2c", cfg.H2C, "use HTTP/2 over cleartext")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	root.Flags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format ("+strings.Join(logging.Formats, ", ")+")")
	root.Flags().BoolVar(&cfg.Metrics, "metrics", cfg.Metrics, "print Prometheus metrics when done")

	return root
}

func loadConfig(cfg *config.Config, path string, changed map[string]bool) error {
	explicit := path != ""
	if !explicit {
		path = config.DefaultPath()
	}
	if path != "" && (explicit || config.FileExists(path)) {
		fc, err := config.LoadFileConfig(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := config.ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	}
	return config.ApplyEnvConfig(cfg, changed)
}

func run(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, w io.Writer) error {
	reg := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(reg, "xhr")
	if err != nil {
		return err
	}
	var handlers xhr.HandlerGroup
	collector.Install(&handlers)

	client := cfg.Client(logger, &handlers)

	sep(w, "XHR CONSOLE DEMO STARTED")
	r := client.NewRequestContext(ctx)
	sep(w, "XHR CREATED")
	step(w, 0, "state = %d (%s)", r.State(), r.State())

	r.OnStateChange(func(s xhr.State) {
		fmt.Fprintf(w, "EVENT: state = %d (%s)\n", s, s)
	})
	r.OnLoad(func(o *request.Outcome) {
		sep(w, "ONLOAD EVENT")
		step(w, 4, "HTTP STATUS = %d", o.Status)
		step(w, 4, "RESPONSE SIZE = %s", humanize.Bytes(uint64(len(o.Body))))
		fmt.Fprintln(w, "Response preview:")
		fmt.Fprintln(w, preview(o.Text()))
	})
	r.OnError(func(err error) {
		sep(w, "ONERROR EVENT")
		fmt.Fprintln(w, "ERROR:", err)
	})
	r.OnAbort(func() {
		sep(w, "ONABORT EVENT")
	})

	sep(w, "OPEN() CALLED")
	step(w, 1, "Method = %s", cfg.Method)
	step(w, 1, "URL = %s", cfg.URL)
	if err = r.Open(cfg.Method, cfg.URL, true); err != nil {
		return err
	}

	sep(w, "SEND() CALLED")
	var body interface{}
	if cfg.Data != "" {
		step(w, 2, "Body = %s", cfg.Data)
		body = cfg.Data
	}
	if err = r.Send(body); err != nil {
		return err
	}
	if cfg.AbortAfter > 0 {
		stopAbort := r.AbortAfter(cfg.AbortAfter)
		defer stopAbort()
	}

	o, err := r.Wait(ctx)
	if o == nil {
		logger.Warn().Err(err).Msg("interrupted, aborting")
		r.Abort()
		o, err = r.Wait(context.Background())
	}

	sep(w, "DONE")
	step(w, 4, "OUTCOME = %s", o.Tag)
	if o.Tag == request.Success {
		step(w, 4, "TRANSFERRED = %s", humanize.Bytes(uint64(len(o.Body))))
	}
	step(w, 4, "DURATION = %s", r.Duration().Round(time.Millisecond))

	if cfg.Metrics {
		sep(w, "METRICS")
		if werr := metrics.WriteText(w, reg); werr != nil {
			return werr
		}
	}

	if errors.Is(err, xhr.ErrAborted) {
		return errors.New("request aborted")
	}
	return err
}

func sep(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, "==================================================")
}

func step(w io.Writer, n int, format string, a ...interface{}) {
	fmt.Fprintf(w, "STEP %d: %s\n", n, fmt.Sprintf(format, a...))
}

func preview(s string) string {
	if len(s) <= previewLimit {
		return s
	}
	return s[:previewLimit] + "..."
}
