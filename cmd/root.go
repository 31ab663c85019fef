package cmd

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"geolookup/config"
	"geolookup/logger"
)

var (
	ErrVendorFailure = errors.New("vendor reported a failed lookup")
	ErrUnknownVendor = errors.New("unknown vendor")
	ErrUnknownOutput = errors.New("output must be json or text")
)

type options struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
	EnvFile    string

	Vendor    string
	AccessKey string
	Endpoint  string
	Lang      string
	Fields    []string
	Timeout   string
	Output    string

	Listen string
}

// app is the state shared by subcommands once the root has loaded settings.
type app struct {
	opts   *options
	cfg    *config.Config
	logger *logrus.Logger
}

// NewCmd builds the geolookup command tree. Every call starts from fresh flag
// state.
func NewCmd() *cobra.Command {
	a := &app{opts: &options{EnvFile: ".env", Output: "json"}}

	root := &cobra.Command{
		Use:           "geolookup",
		Short:         "geolookup resolves IP addresses and hostnames to locations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.opts.ConfigPath, "config", "", "path to a YAML configuration file")
	pf.StringVar(&a.opts.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&a.opts.LogFormat, "log-format", "", "log format (text or json)")
	pf.StringVar(&a.opts.EnvFile, "env-file", a.opts.EnvFile, "dotenv file with vendor credentials; a missing file is ignored")
	pf.StringVar(&a.opts.Vendor, "vendor", "", "vendor to query (ipapi, ipapicom, ipwhois)")
	pf.StringVar(&a.opts.AccessKey, "access-key", "", "vendor credential; defaults to the vendor's environment variable")
	pf.StringVar(&a.opts.Endpoint, "endpoint", "", "vendor base URL override")
	pf.StringVar(&a.opts.Lang, "lang", "", "response language")
	pf.StringSliceVar(&a.opts.Fields, "fields", nil, "comma-separated field selection")
	pf.StringVar(&a.opts.Timeout, "timeout", "", "per-lookup timeout, e.g. 5s")

	root.AddCommand(newLookupCmd(a), newServeCmd(a))
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	if err := godotenv.Load(a.opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	cfg := config.Default()
	if a.opts.ConfigPath != "" {
		var err error
		if cfg, err = config.ReadConfig(a.opts.ConfigPath); err != nil {
			return err
		}
	}
	if err := a.applyFlags(cmd, cfg); err != nil {
		return err
	}
	if !config.KnownVendor(cfg.Vendor) {
		return ErrUnknownVendor
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger.New(cfg.Log.Level, cfg.Log.Format)
	a.logger.SetOutput(cmd.ErrOrStderr())
	return nil
}

// applyFlags overrides file settings with the flags that were set explicitly.
func (a *app) applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("vendor") {
		cfg.Vendor = a.opts.Vendor
	}
	if flags.Changed("access-key") {
		cfg.AccessKey = a.opts.AccessKey
	}
	if flags.Changed("endpoint") {
		cfg.Endpoint = a.opts.Endpoint
	}
	if flags.Changed("lang") {
		cfg.Lang = a.opts.Lang
	}
	if flags.Changed("fields") {
		cfg.Fields = a.opts.Fields
	}
	if flags.Changed("timeout") {
		d, err := parseTimeout(a.opts.Timeout)
		if err != nil {
			return err
		}
		cfg.Timeout = d
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.opts.LogLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.opts.LogFormat
	}
	if flags.Changed("listen") {
		cfg.Server.Listen = a.opts.Listen
	}
	return nil
}
