package config

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/mitchellh/mapstructure"
)

var (
	ConfigPath      = "config.json"
	ValidStrategies = []string{"greedy", "randomized"}
)

type Config struct {
	Strategy  string        // Blocker used by default, either "greedy" or "randomized"
	Workers   int           // Concurrent runs per round of the randomized blocker
	Seed      uint64        // Seed of the randomized blocker
	MaxTime   time.Duration // Default computation time, if the input does not provide one
	Delimiter string        // Field delimiter of CSV output
	Debug     bool
}

func Default() Config {
	return Config{
		Strategy:  "greedy",
		Workers:   4,
		Seed:      1,
		MaxTime:   time.Second,
		Delimiter: ",",
	}
}

// Load reads the config file on top of the defaults. A missing file yields the defaults
func Load(path string) (Config, error) {
	config := Default()

	bytes, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	} else if err != nil {
		return Config{}, fmt.Errorf("cannot read config file: %v", err)
	}

	var configJson map[string]any
	if err := json.Unmarshal(bytes, &configJson); err != nil {
		return Config{}, fmt.Errorf("cannot parse config file: %v", err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           &config,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(configJson); err != nil {
		return Config{}, fmt.Errorf("cannot decode config file: %v", err)
	}

	if !slices.Contains(ValidStrategies, config.Strategy) {
		return Config{}, fmt.Errorf("%v is not a valid strategy", config.Strategy)
	} else if config.Workers < 1 {
		return Config{}, fmt.Errorf("workers must be positive: %v", config.Workers)
	} else if len([]rune(config.Delimiter)) != 1 {
		return Config{}, fmt.Errorf("delimiter must be a single character: %q", config.Delimiter)
	}
	return config, nil
}
