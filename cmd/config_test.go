package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/heft/internal/model"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "heft", configBaseName)
	assert.Equal(t, "heft.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "output", outputFlagName)
	assert.Equal(t, "exclude", excludeFlagName)
	assert.Equal(t, "verbose", verboseFlagName)
	assert.Equal(t, "parallel", runParallelFlagName)
	assert.Equal(t, "top", topFlagName)
	assert.Equal(t, "run.parallel", runParallelConfigKey)
	assert.Equal(t, "run.top", topConfigKey)
	assert.Equal(t, "paths.exclude", excludeConfigKey)
	assert.Equal(t, ".heft-reports", defaultReportsDir)
	assert.Equal(t, 1, defaultRunParallel)
	assert.Equal(t, 0, defaultTop)
	assert.Equal(t, "HEFT", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestWeightsFromConfig_Defaults(t *testing.T) {
	assert.Equal(t, m.DefaultWeights(), weightsFromConfig())
}

func TestWeightsFromConfig_ConfigOverrides(t *testing.T) {
	viper.Set(scoringBranchKey, 25)
	viper.Set(scoringCallKey, 2)
	defer func() {
		weights := m.DefaultWeights()
		viper.Set(scoringBranchKey, weights.Branch)
		viper.Set(scoringCallKey, weights.Call)
	}()

	got := weightsFromConfig()

	assert.Equal(t, 25, got.Branch)
	assert.Equal(t, 2, got.Call)
	assert.Equal(t, m.DefaultWeights().EmptyBranch, got.EmptyBranch)
	assert.Equal(t, m.DefaultWeights().Function, got.Function)
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  slog.Level
	}{
		{"empty uses default", "", slog.LevelWarn},
		{"debug", "debug", slog.LevelDebug},
		{"uppercase", "DEBUG", slog.LevelDebug},
		{"padded", " info ", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"warning alias", "warning", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"numeric debug", "-4", slog.LevelDebug},
		{"numeric error", "8", slog.LevelError},
		{"garbage uses default", "loud", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelWarn))
		})
	}
}

func TestConfigureLogger_WritesToConfiguredFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "heft-test.log")

	viper.Set(logFilenameKey, logPath)
	defer func() {
		viper.Set(logFilenameKey, defaultLogFilename)
		configureLogger()
	}()

	configureLogger()
	require.NotNil(t, globalLogger)

	slog.Info("logger configured", "check", true)

	contents, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "logger configured")
	assert.Contains(t, string(contents), "check=true")
}

func TestConfigureLogger_LevelFromConfig(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "heft-debug.log")

	viper.Set(logFilenameKey, logPath)
	viper.Set(logLevelKey, "debug")
	defer func() {
		viper.Set(logFilenameKey, defaultLogFilename)
		viper.Set(logLevelKey, defaultLogLevel)
		configureLogger()
	}()

	configureLogger()

	slog.Debug("debug detail")

	contents, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "debug detail")
}
