package formctl

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	defaultProfile = "default"
	defaultAddr    = "localhost:8090"
)

// Profiles is the formctl config file: named form service targets.
type Profiles struct {
	CurrentProfile string              `json:"current_profile" yaml:"current_profile"`
	Profiles       map[string]*Profile `json:"profiles" yaml:"profiles"`
	path           string
}

// Profile is one form service target.
type Profile struct {
	Addr string `json:"addr" yaml:"addr"`
	Lang string `json:"lang,omitempty" yaml:"lang,omitempty"`
}

// DefaultProfiles returns an empty config using the default profile.
func DefaultProfiles() *Profiles {
	return &Profiles{
		CurrentProfile: defaultProfile,
		Profiles:       make(map[string]*Profile),
	}
}

// DefaultConfigPath returns ~/.formctl/config.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".formctl", "config.yaml"), nil
}

// LoadProfiles reads path, returning defaults when the file does not exist.
func LoadProfiles(path string) (*Profiles, error) {
	if path == "" {
		var err error
		if path, err = DefaultConfigPath(); err != nil {
			return nil, err
		}
	}

	cfg := DefaultProfiles()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]*Profile)
	}
	return cfg, nil
}

// Save writes the config back to its path.
func (c *Profiles) Save() error {
	if c.path == "" {
		path, err := DefaultConfigPath()
		if err != nil {
			return err
		}
		c.path = path
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(c.path, data, 0o600)
}

// SetAddr points profile name at addr and makes it current.
func (c *Profiles) SetAddr(name, addr string) error {
	if name == "" {
		name = c.CurrentProfile
	}
	if name == "" {
		name = defaultProfile
	}
	profile, ok := c.Profiles[name]
	if !ok {
		profile = &Profile{}
		c.Profiles[name] = profile
	}
	profile.Addr = addr
	c.CurrentProfile = name
	return c.Save()
}

// Profile returns the named profile, or the current one when name is empty.
func (c *Profiles) Profile(name string) (*Profile, error) {
	if name == "" {
		name = c.CurrentProfile
	}
	profile, ok := c.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("profile %q not found", name)
	}
	return profile, nil
}
