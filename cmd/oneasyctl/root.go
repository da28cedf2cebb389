package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"oneasy-portal/internal/apiclient"
	"oneasy-portal/internal/kvstore"
	"oneasy-portal/internal/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	envAPIURL   = "ONEASY_API_URL"
	envState    = "ONEASY_STATE"
	envRedisURL = "ONEASY_REDIS_URL"
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	apiURL    string
	statePath string
	redisURL  string
	logLevel  string

	log    *zap.Logger
	store  kvstore.Store
	client *apiclient.Client
	closer func() error
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".oneasy/state.json"
	}
	return filepath.Join(home, ".oneasy", "state.json")
}

func newRootCmd() *cobra.Command {
	_ = godotenv.Load()
	a := &app{}

	root := &cobra.Command{
		Use:           "oneasyctl",
		Short:         "Oneasy portal command line client",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `oneasyctl talks to the Oneasy registration portal API.

Session state (token, user, selected package, payment, draft ticket) is kept
in a JSON file, or in Redis when ONEASY_REDIS_URL is set, so a draft started
on one machine can be resumed on another.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.apiURL, "api", getEnv(envAPIURL, "http://localhost:8000"), "portal API base URL ($"+envAPIURL+")")
	pf.StringVar(&a.statePath, "state", getEnv(envState, defaultStatePath()), "session state file ($"+envState+")")
	pf.StringVar(&a.redisURL, "redis", os.Getenv(envRedisURL), "keep session state in Redis ($"+envRedisURL+")")
	pf.StringVar(&a.logLevel, "log-level", getEnv("LOG_LEVEL", "warn"), "debug, info, warn or error")

	root.AddCommand(
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.routeCmd(),
		a.packagesCmd(),
		a.payCmd(),
		a.draftCmd(),
		a.noticesCmd(),
		a.clientsCmd(),
		a.directorsCmd(),
		a.fillCmd(),
		a.usersCmd(),
	)
	return root
}

func (a *app) init() error {
	log, err := logging.New(a.logLevel, true)
	if err != nil {
		return err
	}
	a.log = log

	if a.redisURL != "" {
		r, err := kvstore.NewRedis(a.redisURL, "oneasyctl", 30*24*time.Hour)
		if err != nil {
			return fmt.Errorf("redis state: %w", err)
		}
		a.store, a.closer = r, r.Close
	} else {
		f, err := kvstore.NewFile(a.statePath)
		if err != nil {
			return err
		}
		a.store = f
	}
	a.client = apiclient.New(a.apiURL, a.store, apiclient.WithLogger(log))
	a.log.Debug("client ready", zap.String("api", a.apiURL))
	return nil
}

func (a *app) close() {
	if a.closer != nil {
		_ = a.closer()
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

func printYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
