package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds everything earshot needs to talk to the catalog API. The
// access token is expected to be a ready-to-use user token with the
// user-top-read, user-read-recently-played, and user-follow-read scopes;
// earshot does not manage token refresh.
type Config struct {
	AccessToken string `koanf:"access_token"`
	Market      string `koanf:"market"`
	DBPath      string `koanf:"db_path"`
	ListenAddr  string `koanf:"listen_addr"`
}

// Load reads config from ~/.config/earshot/config.toml, then ./config.toml,
// then EARSHOT_* environment variables, last wins.
func Load() (*Config, error) {
	k := koanf.New(".")

	for _, path := range configPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	if err := k.Load(env.Provider("EARSHOT_", ".", func(s string) string {
		return envKey(s)
	}), nil); err != nil {
		return nil, err
	}

	cfg := &Config{
		Market:     "US",
		DBPath:     "earshot.db",
		ListenAddr: ":8723",
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func configPaths() []string {
	paths := []string{}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "earshot", "config.toml"))
	}

	// ./config.toml wins over the home-dir file
	paths = append(paths, "config.toml")

	return paths
}

// envKey maps EARSHOT_ACCESS_TOKEN to access_token, and so on.
func envKey(s string) string {
	key := make([]byte, 0, len(s))
	for i := len("EARSHOT_"); i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		key = append(key, c)
	}
	return string(key)
}
