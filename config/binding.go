package config

import (
	"fmt"
	"strings"
)

// Binding maps a template variable name to the hostname whose resolved
// addresses the variable carries.
type Binding struct {
	Name string
	Host string
}

// UnmarshalYAML implements yaml.Unmarshaler interface.
func (b *Binding) UnmarshalYAML(unmashal func(interface{}) error) error {
	var s string
	if err := unmashal(&s); err == nil {
		b.Name = s
		b.Host = s
		return nil
	}

	var m map[string]string
	if err := unmashal(&m); err != nil {
		return err
	}
	if len(m) != 1 {
		return fmt.Errorf("a var entry must map one name to one hostname, got %d entries", len(m))
	}

	for name, host := range m {
		b.Name = name
		b.Host = host
	}

	return nil
}

func (b Binding) MarshalYAML() (interface{}, error) {
	// If the name doubles as the hostname, just emit the shorthand
	if b.Name == b.Host {
		return b.Name, nil
	}

	return map[string]string{b.Name: b.Host}, nil
}

// ParseBinding parses the N[:HOST] command line form. If HOST is omitted
// the name doubles as the hostname, so "www.example.com" is equivalent to
// "www.example.com:www.example.com".
func ParseBinding(s string) (Binding, error) {
	name, host, found := strings.Cut(s, ":")
	if !found {
		host = name
	}
	if name == "" || host == "" {
		return Binding{}, fmt.Errorf("invalid var %q: expected N[:HOST]", s)
	}
	return Binding{Name: name, Host: host}, nil
}

// ParseConst parses the N=VAL command line form.
func ParseConst(s string) (name, value string, err error) {
	name, value, found := strings.Cut(s, "=")
	if !found || name == "" {
		return "", "", fmt.Errorf("invalid const %q: expected N=VAL", s)
	}
	return name, value, nil
}
