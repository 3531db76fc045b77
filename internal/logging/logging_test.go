package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bingo.log")
	log, err := New(Config{Level: "debug", Encoding: "json", OutputPath: path})
	require.NoError(t, err)

	log.Debug("hello", zap.String("source", "event.json"))
	_ = log.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(b)
	require.Contains(t, out, `"level":"DEBUG"`)
	require.Contains(t, out, `"msg":"hello"`)
	require.Contains(t, out, `"source":"event.json"`)
	require.Contains(t, out, `"timestamp":`)
}

func TestNew_LevelFilters(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bingo.log")
	log, err := New(Config{Level: "WARN", Encoding: "json", OutputPath: path})
	require.NoError(t, err)

	log.Info("quiet")
	log.Warn("loud")
	_ = log.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.False(t, strings.Contains(string(b), "quiet"))
	require.Contains(t, string(b), "loud")
}

func TestNew_InvalidLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Level: "chatty"})
	require.Error(t, err)
	_, err = NewForTUI(Config{Level: "chatty"})
	require.Error(t, err)
}

func TestNewForTUI_NoFileIsNop(t *testing.T) {
	t.Parallel()

	log, err := NewForTUI(Config{Level: "debug", OutputPath: "stderr"})
	require.NoError(t, err)
	require.False(t, log.Core().Enabled(zapcore.DebugLevel))

	path := filepath.Join(t.TempDir(), "tui.log")
	log, err = NewForTUI(Config{OutputPath: path})
	require.NoError(t, err)
	log.Info("to file")
	_ = log.Sync()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), "to file")
}
