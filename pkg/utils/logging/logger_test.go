package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFilePath(t *testing.T) {
	at := time.Date(2024, time.July, 6, 9, 30, 15, 0, time.UTC)
	assert.Equal(t, filepath.Join("logs", "dev_2024-07-06_09-30-15.log"), LogFilePath("logs", "dev", at))
}

func TestInitLogger_WritesJSONFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := InitLogger("test", Options{Dir: dir})
	require.NoError(t, err)

	logger.Debug("composed month")
	logger.Sync()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"composed month"`)
	assert.Contains(t, string(data), `"env":"test"`)
}
