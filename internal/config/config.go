// Package config loads the dataprep configuration from defaults, an optional YAML file and the environment.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/askiada/go-dataprep/pkg/bpe"
)

// Config is the root configuration for dataprep.
type Config struct {
	Log     LogConfig        `mapstructure:"log"`
	Dataset DatasetConfig    `mapstructure:"dataset"`
	BPE     bpe.CustomConfig `mapstructure:"bpe"`
	Workers WorkersConfig    `mapstructure:"workers"`
	Draw    string           `mapstructure:"draw"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type DatasetConfig struct {
	Name    string `mapstructure:"name"`
	RawPath string `mapstructure:"raw_path"`
	WorkDir string `mapstructure:"work_dir"`
}

type WorkersConfig struct {
	Parser    CommandConfig `mapstructure:"parser"`
	Converter CommandConfig `mapstructure:"converter"`
	Vocab     CommandConfig `mapstructure:"vocab"`
}

// CommandConfig is an external program run by a worker.
// Args are text/template strings rendered with the data of the stage.
type CommandConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
	Dir     string   `mapstructure:"dir"`
	Env     []string `mapstructure:"env"`
}

// Load reads config from the optional YAML file at path, then overlays
// environment variables with the DATAPREP_ prefix (e.g. DATAPREP_DATASET_RAW_PATH).
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("DATAPREP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)

		err := v.ReadInConfig()
		if err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", path)
		}
	}

	var cfg Config

	err := v.Unmarshal(&cfg)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshalling config")
	}

	return &cfg, nil
}

// CustomBPE returns the configured custom bpe config, nil when none is configured.
func (c *Config) CustomBPE() (*bpe.CustomConfig, error) {
	return bpe.NewCustomConfig(c.BPE.ID, c.BPE.Merges, c.BPE.MergesFile, c.BPE.MergesCacheFile)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("dataset.name", "")
	v.SetDefault("dataset.raw_path", "")
	v.SetDefault("dataset.work_dir", "work")

	v.SetDefault("bpe.id", "")
	v.SetDefault("bpe.merges", 0)
	v.SetDefault("bpe.merges_file", "")
	v.SetDefault("bpe.merges_cache_file", "")

	v.SetDefault("draw", "")

	v.SetDefault("workers.parser.command", "dataprep-parse")
	v.SetDefault("workers.parser.args", []string{"--src", "{{.Src}}", "--dest", "{{.Dest}}"})

	v.SetDefault("workers.converter.command", "dataprep-repr")
	v.SetDefault("workers.converter.args", []string{
		"--src", "{{.Src}}", "--dest", "{{.Dest}}",
		"{{with .BPE}}--bpe-id={{.ID}}{{end}}",
		"{{with .BPE}}{{if .Merges}}--bpe-merges={{.Merges}}{{end}}{{end}}",
	})

	v.SetDefault("workers.vocab.command", "dataprep-vocab")
	v.SetDefault("workers.vocab.args", []string{"--src", "{{.Src}}", "--files-from", "{{.FilesList}}", "--dest", "{{.Dest}}"})
}
