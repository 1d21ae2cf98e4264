package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"objtree/backend"
	"objtree/internal/config"
)

const (
	Version   = "0.3.0"
	envPrefix = "objtree"
	stdStream = "-"
)

// app is the state shared by the subcommands of one invocation.
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	logger *zap.Logger
	out    io.Writer
}

func newRootCommand(out io.Writer) *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop(), out: out}

	root := &cobra.Command{
		Use:   "objtree",
		Short: "inspect and convert persisted object trees",
		Long: fmt.Sprintf(`objtree (v%s)

Works on object trees written by the objtree serializer. Every flag can also be
set in the YAML file given by --config or through OBJTREE_<KEY> variables,
for example OBJTREE_BACKEND_OUTPUT=json.`, Version),
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
		PersistentPostRun: func(*cobra.Command, []string) { _ = a.logger.Sync() },
	}

	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.String("config", "", "YAML config file")
	flags.String("from", config.DefaultBackend, "input backend ("+strings.Join(backend.Names(), ", ")+")")
	flags.String("to", "", "output backend (default from config, else text)")
	flags.String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	flags.Bool("log-development", false, "human readable development logging")

	a.bind(flags.Lookup("config"), "config")
	a.bind(flags.Lookup("from"), config.KeyBackendInput)
	a.bind(flags.Lookup("to"), config.KeyBackendOutput)
	a.bind(flags.Lookup("log-level"), config.KeyLogLevel)
	a.bind(flags.Lookup("log-development"), config.KeyLogDevelopment)

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(a.convertCommand(), a.inspectCommand(), versionCommand())

	return root
}

func (a *app) bind(flag *pflag.Flag, key string) {
	if err := a.v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

// load merges file, environment and flags into the config, in rising priority.
func (a *app) load(*cobra.Command, []string) error {
	cfg := config.Default()

	if path := a.v.GetString("config"); path != "" {
		var err error
		if cfg, err = config.LoadFile(path); err != nil {
			return err
		}
	}

	a.v.SetDefault(config.KeyBackendInput, cfg.Backend.Input)
	a.v.SetDefault(config.KeyBackendOutput, cfg.Backend.Output)
	a.v.SetDefault(config.KeyLogLevel, cfg.Log.Level)
	a.v.SetDefault(config.KeyLogDevelopment, cfg.Log.Development)
	a.v.SetDefault(config.KeyInspectMaxDepth, cfg.Inspect.MaxDepth)

	merged := &config.Config{
		Backend: config.Backend{
			Input:  a.v.GetString(config.KeyBackendInput),
			Output: a.v.GetString(config.KeyBackendOutput),
		},
		Log: config.Log{
			Level:       strings.ToLower(a.v.GetString(config.KeyLogLevel)),
			Development: a.v.GetBool(config.KeyLogDevelopment),
		},
		Inspect: config.Inspect{MaxDepth: a.v.GetInt(config.KeyInspectMaxDepth)},
	}

	if err := merged.Validate(); err != nil {
		return err
	}

	logger, err := merged.Logger()
	if err != nil {
		return err
	}

	a.cfg, a.logger = merged, logger
	a.logger.Debug("configuration loaded",
		zap.String("input", merged.Backend.Input),
		zap.String("output", merged.Backend.Output))

	return nil
}

// readTree decodes path with the configured input backend.
func (a *app) readTree(path string) (backend.Backend, error) {
	b, err := backend.New(a.cfg.Backend.Input)
	if err != nil {
		return nil, err
	}

	in := io.Reader(os.Stdin)
	if path != stdStream {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open %s", path)
		}
		defer f.Close()

		in = f
	}

	if err := b.Read(in); err != nil {
		return nil, errors.Wrapf(err, "failed to read %s as %s", path, b.ImplementationName())
	}

	a.logger.Debug("tree read",
		zap.String("path", path),
		zap.String("backend", b.ImplementationName()),
		zap.Int("nodes", b.Tree().Count()))

	return b, nil
}
