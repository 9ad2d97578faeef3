// Command atns is a CLI client for the ATNS alumni-network backend.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/and161185/atns-client/internal/api"
	"github.com/and161185/atns-client/internal/config"
	"github.com/and161185/atns-client/internal/gateway"
	"github.com/and161185/atns-client/internal/guard"
	"github.com/and161185/atns-client/internal/metrics"
	"github.com/and161185/atns-client/internal/session"
	"github.com/and161185/atns-client/internal/storage/backend"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

const cmdTimeout = 30 * time.Second

var errUsage = errors.New("usage")

func usage(w io.Writer) {
	fmt.Fprint(w, `atns CLI
Usage:
  atns [-config file] [-base-url URL] [-storage backend] [-debug] <cmd> [args]

Session:
  version
  login             -email <email> -p <password> [-force]
  logout
  whoami
  config            [-write]
  change-email-init -email <new email>
  change-email-verify -email <new email> -code <otp>
  register-init     -email <email>
  register-verify   -email <email> -code <otp>
  register-complete -email <email> -u <username> -p <password>
  resend-otp        -email <email>
  forgot-password   -email <email>
  reset-password    -email <email> -code <otp> -p <new password>
  change-password   -old <password> -new <password>

Profiles and network:
  me | my-skills | profiles | profile -id <id>
  profile-create -file <json> | profile-update -file <json>
  follow -target <id> | unfollow -target <id> | following | followers | status -target <id>

Events:
  events | event -id <id> | my-events | upcoming | event-search -q <text>
  event-create -file <json> | event-update -id <id> -file <json>
  event-delete -id <id> | event-toggle -id <id> | events-by -organizer <id>

Jobs and skills:
  jobs [-active] [-company c] [-location l] | job -id <id> | my-jobs
  job-create -file <json> | job-update -id <id> -file <json> | job-delete -id <id>
  job-search [-title] [-company] [-location] [-skills a,b]
  job-recommend [-limit n] | skills | skill -id <id>
  skill-add -name <name> [-desc text] | skill-update -id <id> -name <name> [-desc text]

Recommendations:
  recommend-events [-limit n] | recommend-users [-limit n] | dashboard [-limit n]

Diagnostics:
  metrics <cmd> [args]   run <cmd>, then print the client metrics
`)
}

// main dispatches subcommands; all wiring lives in run so tests can drive it.
func main() {
	err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
	if errors.Is(err, errUsage) {
		os.Exit(2)
	}
	if err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

type globalFlags struct {
	configPath string
	baseURL    string
	storage    string
	debug      bool
	timeout    time.Duration
}

func parseGlobal(args []string, stderr io.Writer) (globalFlags, map[string]bool, []string, error) {
	var g globalFlags
	fs := flag.NewFlagSet("atns", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	fs.StringVar(&g.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/atns/config.yaml)")
	fs.StringVar(&g.baseURL, "base-url", "", "backend API root")
	fs.StringVar(&g.storage, "storage", "", "session storage: file|memory|redis|postgres")
	fs.BoolVar(&g.debug, "debug", false, "development logging")
	fs.DurationVar(&g.timeout, "timeout", 0, "per-request HTTP timeout (0 = none)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return g, nil, nil, err
		}
		return g, nil, nil, errUsage
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return g, set, fs.Args(), nil
}

// loadConfig layers flags over env over file over defaults.
func loadConfig(g globalFlags, set map[string]bool) (config.Config, error) {
	cfg, err := config.Load(g.configPath, os.Getenv)
	if err != nil {
		return cfg, err
	}
	if set["base-url"] {
		cfg.BaseURL = g.baseURL
	}
	if set["storage"] {
		cfg.Storage.Backend = g.storage
	}
	if set["debug"] {
		cfg.Debug = g.debug
	}
	if set["timeout"] {
		cfg.Timeout = g.timeout
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	g, set, rest, err := parseGlobal(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(rest) < 1 {
		usage(stderr)
		return errUsage
	}
	cmd, cmdArgs := rest[0], rest[1:]

	switch cmd {
	case "version":
		fmt.Fprintf(stdout, "atns %s (%s)\n", version, buildDate)
		return nil
	case "help", "-h", "--help":
		usage(stdout)
		return nil
	}

	withMetrics := false
	if cmd == "metrics" {
		if len(cmdArgs) < 1 {
			usage(stderr)
			return errUsage
		}
		withMetrics = true
		cmd, cmdArgs = cmdArgs[0], cmdArgs[1:]
	}

	h, ok := commands[cmd]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		usage(stderr)
		return errUsage
	}

	cfg, err := loadConfig(g, set)
	if err != nil {
		return err
	}
	a, err := newApp(ctx, cfg, stdout, stderr)
	if err != nil {
		return err
	}
	defer a.close()
	a.cfgPath = g.configPath

	cctx, cancel := withTimeout(ctx)
	defer cancel()

	if h.protected {
		err = a.guard.Require()
	}
	if err == nil {
		err = h.run(cctx, a, cmdArgs)
	}
	if errors.Is(err, flag.ErrHelp) {
		err = nil
	}
	if err != nil && cmd != "login" && a.nav.Last() == gateway.LoginPath {
		err = fmt.Errorf("%w; run `atns login` to sign in", err)
	}
	if withMetrics {
		if merr := a.printMetrics(); merr != nil && err == nil {
			err = merr
		}
	}
	return err
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, cmdTimeout)
}

// app is everything a command needs, built once per invocation.
type app struct {
	cfg     config.Config
	cfgPath string
	log     *zap.Logger
	reg     *prometheus.Registry
	metrics *metrics.Metrics
	store   *session.Store
	nav     *gateway.Recorder
	guard   *guard.Guard
	api     *api.Client
	out     io.Writer
	errOut  io.Writer
	closers []func()
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	return zc.Build()
}

func newApp(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) (*app, error) {
	log, err := newLogger(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	a := &app{cfg: cfg, log: log, out: stdout, errOut: stderr}
	a.closers = append(a.closers, func() { _ = log.Sync() })

	a.reg = prometheus.NewRegistry()
	a.metrics = metrics.New(a.reg)

	kv, closeKV, err := backend.Open(ctx, cfg.Storage, log.Named("storage"))
	if err != nil {
		a.close()
		return nil, err
	}
	a.closers = append(a.closers, closeKV)

	a.store, err = session.Open(ctx, kv, cfg.Storage.Key, log.Named("session"), a.metrics)
	if err != nil {
		a.close()
		return nil, err
	}

	a.nav = &gateway.Recorder{}
	gw, err := gateway.New(cfg.BaseURL, a.store,
		gateway.WithLogger(log.Named("http")),
		gateway.WithMetrics(a.metrics),
		gateway.WithNavigator(a.nav),
		gateway.WithTimeout(cfg.Timeout),
	)
	if err != nil {
		a.close()
		return nil, err
	}
	a.guard = guard.New(a.store, a.nav)
	a.api = api.New(gw, log.Named("api"))
	return a, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

type metricRow struct {
	Name   string            `json:"name"`
	Labels map[string]string `json:"labels,omitempty"`
	Value  float64           `json:"value"`
}

func (a *app) printMetrics() error {
	families, err := a.reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	var rows []metricRow
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			r := metricRow{Name: mf.GetName()}
			for _, lp := range m.GetLabel() {
				if r.Labels == nil {
					r.Labels = map[string]string{}
				}
				r.Labels[lp.GetName()] = lp.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				r.Value = m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				r.Name += "_count"
				r.Value = float64(m.GetHistogram().GetSampleCount())
			case m.GetGauge() != nil:
				r.Value = m.GetGauge().GetValue()
			}
			rows = append(rows, r)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return printJSON(a.errOut, rows)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
