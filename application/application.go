package application

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/lk2023060901/rentit-go/internal/jsonfmt"
	zlog "github.com/lk2023060901/rentit-go/pkg/log"
	"github.com/lk2023060901/rentit-go/pkg/util/merr"
	zviper "github.com/lk2023060901/rentit-go/pkg/util/viper"
)

const (
	// ConfigPathEnv 指定配置文件路径的环境变量。
	ConfigPathEnv = "RENTIT_CONFIG_FILE_PATH"

	defaultConfigPath = "./config.yaml"

	logKey        = "log"
	moduleLogsKey = "logging"
	jsonfmtKey    = "jsonfmt"
)

// Application is the main runtime container for a RentIt service.
// It owns configuration and manages common dependencies.
type Application struct {
	cfg     *zviper.Config
	loggers map[string]*zlog.MLogger
}

// New creates a new Application instance.
func New() *Application {
	return &Application{}
}

// Run is the entry of RentIt application.
// It parses command-line arguments (os.Args) and loads configuration file
// using the following priority:
//  1. Default: ./config.yaml
//  2. Env: RENTIT_CONFIG_FILE_PATH
//  3. CLI: --config <path> or --config=<path>
func (a *Application) Run() error {
	return a.RunWithArgs(os.Args[1:])
}

// RunWithArgs is the same as Run but reads the CLI flags from args.
func (a *Application) RunWithArgs(args []string) error {
	cfg, err := a.loadConfig(args)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := a.initLogging(); err != nil {
		return err
	}

	return nil
}

// Config returns the loaded configuration, if any.
func (a *Application) Config() *zviper.Config {
	return a.cfg
}

// Logger returns a named logger created from configuration.
// If the name is unknown, it falls back to the global logger.
func (a *Application) Logger(name string) *zlog.MLogger {
	if a.loggers == nil {
		return &zlog.MLogger{Logger: zlog.L()}
	}
	if lg, ok := a.loggers[name]; ok && lg != nil {
		return lg
	}
	return &zlog.MLogger{Logger: zlog.L()}
}

// SerializerConfig 读取 "jsonfmt" 段，未出现的项取 jsonfmt.DefaultConfig 的值。
//
// Example:
//
//	jsonfmt:
//	  maxDepth: 32
//	  checkNested: true
//	  escapeHTML: true
//	  verifyOutput: false
func (a *Application) SerializerConfig() (jsonfmt.Config, error) {
	cfg := jsonfmt.DefaultConfig()
	if a.cfg == nil || !a.cfg.IsSet(jsonfmtKey) {
		return cfg, nil
	}
	if err := a.cfg.UnmarshalKey(jsonfmtKey, &cfg); err != nil {
		return jsonfmt.Config{}, merr.WrapErrParameterInvalidMsg("bad %s section: %s", jsonfmtKey, err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return jsonfmt.Config{}, err
	}
	return cfg, nil
}

// NewSerializer 按配置创建 Serializer。
func (a *Application) NewSerializer(registry *jsonfmt.Registry) (*jsonfmt.Serializer, error) {
	cfg, err := a.SerializerConfig()
	if err != nil {
		return nil, err
	}
	s, err := jsonfmt.NewSerializer(registry, jsonfmt.WithConfig(cfg))
	if err != nil {
		return nil, err
	}
	if lg, ok := a.loggers[jsonfmtKey]; ok {
		s.SetLogger(lg.With(zlog.FieldComponent(jsonfmtKey)))
	}
	return s, nil
}

// loadConfig resolves config file path and loads it via viper wrapper.
func (a *Application) loadConfig(args []string) (*zviper.Config, error) {
	configPath := defaultConfigPath

	if envPath := os.Getenv(ConfigPathEnv); envPath != "" {
		configPath = envPath
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--config" {
			if i+1 >= len(args) {
				return nil, merr.WrapErrParameterMissing("--config", "missing value after --config")
			}
			configPath = args[i+1]
			i++
			continue
		}
		if strings.HasPrefix(arg, "--config=") {
			val := strings.TrimPrefix(arg, "--config=")
			if val != "" {
				configPath = val
			}
			continue
		}
	}

	cfg := zviper.New()
	if err := cfg.LoadFile(configPath); err != nil {
		return nil, merr.WrapErrIoFailed(configPath, err)
	}

	return cfg, nil
}

// initLogging initializes global and module-level loggers.
func (a *Application) initLogging() error {
	if err := a.initGlobalLogger(); err != nil {
		return err
	}
	if err := a.initModuleLoggersFromConfig(); err != nil {
		return err
	}
	return nil
}

// initGlobalLogger configures the process-wide logger from the "log" key,
// falling back to RENTIT_LOG_* env vars when the key is absent.
func (a *Application) initGlobalLogger() error {
	cfg := globalLogConfigFromEnv()
	if a.cfg != nil && a.cfg.IsSet(logKey) {
		if err := a.cfg.UnmarshalKey(logKey, cfg); err != nil {
			return errors.Wrap(err, "unmarshal log config")
		}
	}

	logger, props, err := zlog.InitLogger(cfg)
	if err != nil {
		return errors.Wrap(err, "init global logger")
	}
	zlog.ReplaceGlobals(logger, props)
	return nil
}

// globalLogConfigFromEnv builds the global logger config from RENTIT_LOG_* env vars.
//
//   - RENTIT_LOG_ENABLE: "1"/"true" to enable outputs; others treated as disabled.
//   - RENTIT_LOG_LEVEL: log level (default "info").
//   - RENTIT_LOG_STDOUT: whether to log to stdout (default false).
//   - RENTIT_LOG_FILE_DIR: log directory.
//   - RENTIT_LOG_FILE: log file name (empty means no file).
//   - RENTIT_LOG_FORMAT: log format ("text" or "json", default "text").
func globalLogConfigFromEnv() *zlog.Config {
	cfg := &zlog.Config{
		Level:  getenvDefault("RENTIT_LOG_LEVEL", "info"),
		Format: getenvDefault("RENTIT_LOG_FORMAT", "text"),
		Stdout: getenvBool("RENTIT_LOG_STDOUT", false),
		File: zlog.FileLogConfig{
			RootPath: getenvDefault("RENTIT_LOG_FILE_DIR", ""),
			Filename: getenvDefault("RENTIT_LOG_FILE", ""),
		},
	}

	// When not enabled, direct all outputs to a discarded sink.
	if !getenvBool("RENTIT_LOG_ENABLE", false) {
		cfg.Stdout = false
		cfg.File.Filename = ""
	}
	return cfg
}

// initModuleLoggersFromConfig creates named loggers from YAML config under "logging" key.
//
// Example:
//
//	logging:
//	  jsonfmt:
//	    level: debug
//	    stdout: true
//	    file:
//	      rootpath: ./logs
//	      filename: jsonfmt.log
func (a *Application) initModuleLoggersFromConfig() error {
	if a.cfg == nil {
		return nil
	}

	raw := make(map[string]zlog.Config)
	if err := a.cfg.UnmarshalKey(moduleLogsKey, &raw); err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}

	a.loggers = make(map[string]*zlog.MLogger, len(raw))
	for name, lc := range raw {
		cfgCopy := lc
		if cfgCopy.Level == "" {
			cfgCopy.Level = "info"
		}
		logger, _, err := zlog.InitLogger(&cfgCopy)
		if err != nil {
			return errors.Wrapf(err, "init module logger %q", name)
		}
		a.loggers[name] = &zlog.MLogger{Logger: logger}
	}

	return nil
}

func getenvDefault(key, def string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return def
	}
	return val
}

func getenvBool(key string, def bool) bool {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return def
	}
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}
