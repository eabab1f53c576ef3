package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	m "github.com/mouse-blink/heft/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "heft"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName  = "output"
	excludeFlagName = "exclude"
	verboseFlagName = "verbose"

	runParallelFlagName = "parallel"
	topFlagName         = "top"

	runParallelConfigKey = "run.parallel"
	topConfigKey         = "run.top"
	excludeConfigKey     = "paths.exclude"

	scoringBranchKey      = "scoring.branch"
	scoringEmptyBranchKey = "scoring.empty_branch"
	scoringFunctionKey    = "scoring.function"
	scoringCallKey        = "scoring.call"

	defaultReportsDir  = ".heft-reports"
	defaultRunParallel = 1
	defaultTop         = 0

	envPrefix = "HEFT"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".heft.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
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
	viper.SetDefault(outputFlagName, defaultReportsDir)
	viper.SetDefault(runParallelConfigKey, defaultRunParallel)
	viper.SetDefault(topConfigKey, defaultTop)
	viper.SetDefault(excludeConfigKey, []string{})

	weights := m.DefaultWeights()
	viper.SetDefault(scoringBranchKey, weights.Branch)
	viper.SetDefault(scoringEmptyBranchKey, weights.EmptyBranch)
	viper.SetDefault(scoringFunctionKey, weights.Function)
	viper.SetDefault(scoringCallKey, weights.Call)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	// A missing heft.yaml leaves the defaults in force; a malformed one is
	// a hard error.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			cobra.CheckErr(fmt.Errorf("read %s: %w", configFileName, err))
		}
	}
}

// weightsFromConfig resolves the scoring weights, letting heft.yaml or
// HEFT_SCORING_* environment values override the built-in defaults.
func weightsFromConfig() m.Weights {
	return m.Weights{
		Branch:      viper.GetInt(scoringBranchKey),
		EmptyBranch: viper.GetInt(scoringEmptyBranchKey),
		Function:    viper.GetInt(scoringFunctionKey),
		Call:        viper.GetInt(scoringCallKey),
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

// configureLogger routes the global slog logger to a rotating file so log
// lines never interleave with terminal output. Verbose mode forces Debug.
func configureLogger() {
	logPath := strings.TrimSpace(viper.GetString(logFilenameKey))
	if logPath == "" {
		logPath = defaultLogFilename
	}

	logLevel := parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	if viper.GetBool(logVerboseKey) {
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
