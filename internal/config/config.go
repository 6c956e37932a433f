// Package config builds the immutable configuration record the CLI
// entry points (cmd/start-secc, cmd/start-evcc) load once at startup
// (spec §6 "Configuration", §9 "module-level state... an immutable
// configuration record built once at startup and injected; no globals
// in the core"). Viper does the env binding; everything downstream of
// Load only ever sees the plain Config struct.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the rendered, immutable view of spec §6's environment table.
// Nothing below internal/config imports viper directly.
type Config struct {
	NetworkInterface string

	SECCControllerSim bool
	SECCEnforceTLS    bool

	EVCCControllerSim bool
	EVCCUseTLS        bool
	EVCCEnforceTLS    bool

	PKIPath string

	RedisHost string
	RedisPort int

	LogLevel string
	LogFile  string
}

// defaults lists every recognized env var with its default, so AutomaticEnv
// plus an explicit BindEnv/SetDefault pair covers the whole table even
// when a key is entirely unset.
var defaults = map[string]interface{}{
	"network_interface":   "",
	"secc_controller_sim": true,
	"secc_enforce_tls":    false,
	"evcc_controller_sim": true,
	"evcc_use_tls":        false,
	"evcc_enforce_tls":    false,
	"pki_path":            "",
	"redis_host":          "",
	"redis_port":          6379,
	"log_level":           "info",
	"log_file":            "",
}

// Load reads the process environment into a Config. It never reads a
// file; every key in spec §6's table is an env var, bound explicitly so
// AutomaticEnv's implicit matching can't silently miss one.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	for key, def := range defaults {
		v.SetDefault(key, def)
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("config: bind %s: %w", key, err)
		}
	}

	cfg := Config{
		NetworkInterface:  v.GetString("network_interface"),
		SECCControllerSim: v.GetBool("secc_controller_sim"),
		SECCEnforceTLS:    v.GetBool("secc_enforce_tls"),
		EVCCControllerSim: v.GetBool("evcc_controller_sim"),
		EVCCUseTLS:        v.GetBool("evcc_use_tls"),
		EVCCEnforceTLS:    v.GetBool("evcc_enforce_tls"),
		PKIPath:           v.GetString("pki_path"),
		RedisHost:         v.GetString("redis_host"),
		RedisPort:         v.GetInt("redis_port"),
		LogLevel:          v.GetString("log_level"),
		LogFile:           v.GetString("log_file"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate rejects the combinations spec §7's ConfigError kind covers:
// malformed env or a TLS policy that cannot be satisfied without PKI
// material on disk.
func (c Config) validate() error {
	if c.RedisHost != "" && (c.RedisPort <= 0 || c.RedisPort > 65535) {
		return fmt.Errorf("config: invalid REDIS_PORT %d", c.RedisPort)
	}
	if (c.SECCEnforceTLS || c.EVCCUseTLS || c.EVCCEnforceTLS) && c.PKIPath == "" {
		return fmt.Errorf("config: PKI_PATH is required when TLS is requested or enforced")
	}
	return nil
}
