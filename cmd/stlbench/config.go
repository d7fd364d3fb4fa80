package main

import (
	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// settings parameterize one workload. Zero fields fall back to the
// enclosing defaults.
type settings struct {
	N          int      `toml:"n"`
	Seed       uint64   `toml:"seed"`
	Containers []string `toml:"containers"`
}

// config is the optional workload file passed with --config.
type config struct {
	Defaults settings            `toml:"defaults"`
	Workload map[string]settings `toml:"workload"`
}

// loadConfig reads a workload file. An empty path yields an empty config.
func loadConfig(path string) (*config, error) {
	var c config
	if path == "" {
		return &c, nil
	}
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Newf("%s: unknown key %q", path, undecoded[0].String())
	}
	for name := range c.Workload {
		if _, ok := lookup(name); !ok {
			return nil, errors.Newf("%s: unknown workload %q", path, name)
		}
	}
	return &c, nil
}

// resolve returns the settings for the workload w: the workload's own
// entry, then the file defaults, then base.
func (c *config) resolve(w *workload, base settings) settings {
	s := c.Workload[w.name]
	for _, fallback := range []settings{c.Defaults, base} {
		if s.N == 0 {
			s.N = fallback.N
		}
		if s.Seed == 0 {
			s.Seed = fallback.Seed
		}
		if len(s.Containers) == 0 {
			s.Containers = fallback.Containers
		}
	}
	if len(s.Containers) == 0 {
		s.Containers = w.containers
	}
	return s
}
