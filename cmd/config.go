package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"ghostscan.dev/pkg/ghostscan/internal/domain"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "ghostscan"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	rootFlagName     = "root"
	pythonFlagName   = "python"
	commandFlagName  = "command"
	timeoutFlagName  = "timeout"
	parallelFlagName = "parallel"
	skipFlagName     = "skip"
	tuiFlagName      = "tui"
	summaryFlagName  = "summary"
	verboseFlagName  = "verbose"
	logFileFlagName  = "log-file"

	rootConfigKey     = "scan.root"
	pythonConfigKey   = "scan.python"
	commandConfigKey  = "scan.command"
	timeoutConfigKey  = "scan.timeout"
	spillDirConfigKey = "scan.spill_dir"
	parallelConfigKey = "run.parallel"
	skipConfigKey     = "paths.skip"
	tuiConfigKey      = "ui.tui"
	summaryConfigKey  = "ui.summary"

	// defaultTimeoutSeconds matches domain.DefaultTimeout.
	defaultTimeoutSeconds = 10
	// defaultParallel of zero sizes the pool to the CPU count.
	defaultParallel = 0

	envPrefix = "GHOSTSCAN"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".ghostscan.log"
	defaultLogLevel      = "info"
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(rootConfigKey, "")
	viper.SetDefault(pythonConfigKey, domain.DefaultPython)
	viper.SetDefault(commandConfigKey, domain.DefaultCommand)
	viper.SetDefault(timeoutConfigKey, defaultTimeoutSeconds)
	viper.SetDefault(spillDirConfigKey, "")
	viper.SetDefault(parallelConfigKey, defaultParallel)
	viper.SetDefault(skipConfigKey, []string{})
	viper.SetDefault(tuiConfigKey, false)
	viper.SetDefault(summaryConfigKey, false)

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, false)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		// A missing explicit config file surfaces as a PathError; both mean "no config".
		slog.Debug("No config file loaded", "error", err)
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger points the global slog logger at a rotating log file.
// Stdout carries the module list, so nothing is ever logged there.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	logLevel := parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	if verbose {
		logLevel = slog.LevelDebug
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
