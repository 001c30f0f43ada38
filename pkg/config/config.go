package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"

	"github.com/autobrr/qbtc/pkg/logger"
	"github.com/autobrr/qbtc/pkg/stringutils"
)

const envPrefix = "QBTC__"

type Configuration struct {
	Clients map[string]map[string]interface{}
	Filters map[string]FilterConfiguration
}

/* Vars */

var (
	cfgPath = ""

	Delimiter = "."
	Config    *Configuration
	K         = koanf.New(Delimiter)

	// Internal
	log = logger.GetLogger("cfg")
)

/* Public */

func Init(configFilePath string) error {
	// set package variables
	cfgPath = configFilePath

	// load config
	if err := K.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
		return fmt.Errorf("load file: %w", err)
	}

	// load environment variables
	if err := K.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	// unmarshal config
	if err := K.Unmarshal("", &Config); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}

	log.Debugf("Loaded %d client(s) and %d filter(s)", len(Config.Clients), len(Config.Filters))
	return nil
}

// envKey maps QBTC__CLIENTS__SEEDBOX__URL to clients.seedbox.url.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
}

func ShowUsing() {
	log.Infof("Using %s = %q", stringutils.LeftJust("CONFIG", " ", 10), cfgPath)
}

// ClientKey is the koanf path of a named client section.
func ClientKey(name string) string {
	return fmt.Sprintf("clients%s%s", Delimiter, name)
}

func Filter(name string) (*FilterConfiguration, error) {
	if Config == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}

	f, ok := Config.Filters[name]
	if !ok {
		return nil, fmt.Errorf("filter not found: %s", name)
	}

	return &f, nil
}
