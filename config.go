package dsprep

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Configuration sources.
const (
	ConfigEnv         = "DSPREP_CONFIG"
	DataPathEnv       = "DSPREP_DATA_PATH"
	DefaultConfigFile = "dsprep.yaml"
)

// Config holds the settings shared by all commands.
type Config struct {
	DataPath string `yaml:"data_path"` // Directory containing the dataset folders.
	Workers  int    `yaml:"workers"`   // Concurrent image reads and writes.
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{DataPath: ".", Workers: NumWorkers}
}

// LoadConfig reads the configuration from path. An empty path selects $DSPREP_CONFIG, then
// ./dsprep.yaml. Only an explicitly named file has to exist. $DSPREP_DATA_PATH overrides the data
// path.
func LoadConfig(fs afero.Fs, path string) (Config, error) {
	conf := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(ConfigEnv)
		explicit = path != ""
	}
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := afero.ReadFile(fs, path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &conf); err != nil {
			return Config{}, errors.Wrapf(ErrConfig, "cannot parse config %q: %v", path, err)
		}
	case explicit || !os.IsNotExist(err):
		return Config{}, errors.Wrapf(ErrConfig, "cannot read config %q: %v", path, err)
	}

	if p := os.Getenv(DataPathEnv); p != "" {
		conf.DataPath = p
	}
	if conf.DataPath == "" {
		conf.DataPath = "."
	}
	if conf.Workers <= 0 {
		conf.Workers = NumWorkers
	}
	return conf, nil
}
