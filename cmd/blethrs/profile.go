package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Profile holds per-device defaults loaded from a YAML file, so repeated
// invocations against the same device don't need the full flag set.
type Profile struct {
	Hostname        string `yaml:"hostname"`
	Port            int    `yaml:"port"`
	BootRequestPort int    `yaml:"boot_request_port"`
	ChunkSize       int    `yaml:"chunk_size"`
}

// DefaultProfilePath returns the default profile location:
// ~/.blethrs/config.yaml
func DefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".blethrs", "config.yaml")
	}
	return filepath.Join(home, ".blethrs", "config.yaml")
}

// LoadProfile reads the profile at path, or the default location when path
// is empty. A missing file returns an empty Profile with no error; flags
// then fall back to the built-in protocol defaults.
func LoadProfile(path string) (*Profile, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultProfilePath()
	}

	p := &Profile{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return p, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, err
	}
	return p, nil
}
