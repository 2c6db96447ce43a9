package dsprep

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv(ConfigEnv, "")
	t.Setenv(DataPathEnv, "")

	t.Run("defaults", func(t *testing.T) {
		conf, err := LoadConfig(afero.NewMemMapFs(), "")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), conf)
	})

	t.Run("default file", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, DefaultConfigFile, []byte("data_path: /data\nworkers: 8\n"), 0644))
		conf, err := LoadConfig(fs, "")
		require.NoError(t, err)
		assert.Equal(t, Config{DataPath: "/data", Workers: 8}, conf)
	})

	t.Run("explicit file must exist", func(t *testing.T) {
		_, err := LoadConfig(afero.NewMemMapFs(), "/etc/dsprep.yaml")
		assert.True(t, errors.Is(err, ErrConfig))
	})

	t.Run("environment", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/etc/dsprep.yaml", []byte("data_path: /data\nworkers: -1\n"), 0644))
		t.Setenv(ConfigEnv, "/etc/dsprep.yaml")
		t.Setenv(DataPathEnv, "/mnt/datasets")
		conf, err := LoadConfig(fs, "")
		require.NoError(t, err)
		assert.Equal(t, Config{DataPath: "/mnt/datasets", Workers: NumWorkers}, conf)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/bad.yaml", []byte("workers: [1\n"), 0644))
		_, err := LoadConfig(fs, "/bad.yaml")
		assert.True(t, errors.Is(err, ErrConfig))
	})
}
