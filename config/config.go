package config

import (
	"fmt"
	"io"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// Config represents configuration for the renderer
type Config struct {
	Template string            `yaml:"template"`
	Output   string            `yaml:"output"`
	Vars     []Binding         `yaml:"vars"`
	Consts   map[string]string `yaml:"consts"`

	Watch struct {
		Interval duration `yaml:"interval"`
		Command  []string `yaml:"command"`
	} `yaml:"watch"`

	DNS struct {
		Timeout    duration `yaml:"timeout"`
		Nameserver string   `yaml:"nameserver"`
		IPv6       bool     `yaml:"ipv6"`
	} `yaml:"dns"`
}

type duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler interface.
func (d *duration) UnmarshalYAML(unmashal func(interface{}) error) error {
	var s string
	if err := unmashal(&s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = duration(dur)
	return nil
}

// Duration is a convenience getter.
func (d duration) Duration() time.Duration {
	return time.Duration(d)
}

// Set updates the underlying duration.
func (d *duration) Set(dur time.Duration) {
	*d = duration(dur)
}

// FromYAML reads YAML from reader and unmarshals it to Config
func FromYAML(r io.Reader) (*Config, error) {
	c := &Config{}
	err := yaml.NewDecoder(r).Decode(c)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Validate rejects incomplete bindings, such as a var entry left without a
// hostname by a null YAML value, and variable name conflicts. A name defined
// more than once,
// whether twice as a host variable or once as a host variable and once as
// a constant, is a configuration error rather than a silent override.
func (c *Config) Validate() error {
	seen := make(map[string]struct{}, len(c.Vars)+len(c.Consts))
	for name := range c.Consts {
		seen[name] = struct{}{}
	}
	for _, b := range c.Vars {
		if b.Name == "" || b.Host == "" {
			return fmt.Errorf("invalid var %q: a name and a hostname are required", b.Name)
		}
		if _, dup := seen[b.Name]; dup {
			return fmt.Errorf("variable %q defined more than once", b.Name)
		}
		seen[b.Name] = struct{}{}
	}
	return nil
}
