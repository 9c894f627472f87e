package config

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"

	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/utils"
)

// Config is the contents of a project's config.json.
type Config struct {
	Constraints       `json:",squash"`
	RobotLengthMeters float64 `json:"robot_length_meters"`
	RobotWidthMeters  float64 `json:"robot_width_meters"`

	// Unused lists keys present in the source that no field consumed.
	Unused []string `json:"-"`
}

// Default returns the configuration of a fresh project.
func Default() *Config {
	return &Config{
		RobotLengthMeters: DefaultRobotLengthMeters,
		RobotWidthMeters:  DefaultRobotWidthMeters,
	}
}

// FromMap decodes attributes onto the defaults. Numbers given as strings are accepted.
func FromMap(attributes map[string]interface{}) (*Config, error) {
	cfg := Default()
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           cfg,
		Metadata:         &md,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attributes); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	if cfg.RobotLengthMeters <= 0 {
		cfg.RobotLengthMeters = DefaultRobotLengthMeters
	}
	if cfg.RobotWidthMeters <= 0 {
		cfg.RobotWidthMeters = DefaultRobotWidthMeters
	}
	sort.Strings(md.Unused)
	cfg.Unused = md.Unused
	return cfg, nil
}

// Read loads a config.json file. A missing file yields the defaults.
func Read(file string) (*Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Wrapf(err, "reading config %q", file)
	}
	attributes := map[string]interface{}{}
	if err := json.Unmarshal(data, &attributes); err != nil {
		return nil, errors.Wrapf(err, "config %q is not a JSON object", file)
	}
	cfg, err := FromMap(attributes)
	if err != nil {
		return nil, errors.Wrapf(err, "config %q", file)
	}
	return cfg, nil
}

// Write stores cfg as indented JSON.
func (cfg *Config) Write(file string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return utils.WriteFileAtomic(file, append(data, '\n'), 0o644)
}
