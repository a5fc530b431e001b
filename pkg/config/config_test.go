package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0666))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("Missing file", func(t *testing.T) {
		config, err := Load(filepath.Join(t.TempDir(), "config.json"))

		require.NoError(t, err)
		assert.Equal(t, Default(), config)
	})

	t.Run("Correct flow", func(t *testing.T) {
		//** Arrange
		path := writeConfig(t, `{"strategy": "randomized", "workers": "8", "seed": 7, "maxTime": "1m30s", "delimiter": ";"}`)

		//** Act
		config, err := Load(path)

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, Config{
			Strategy:  "randomized",
			Workers:   8,
			Seed:      7,
			MaxTime:   90 * time.Second,
			Delimiter: ";",
		}, config)
	})

	t.Run("Error flow", func(t *testing.T) {
		contents := []string{
			`{"strategy": "backtracking"}`,
			`{"workers": 0}`,
			`{"delimiter": ";;"}`,
			`{"maxTime": "soon"}`,
			`{"strategy": `,
		}

		for _, content := range contents {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err, content)
		}
	})
}
