// Package project resolves the declarative project configuration file
// (project.ini) into final project metadata. Values support extended
// interpolation: ${key} references within the same section and
// ${section:key} references across sections, resolved recursively. The
// process environment is merged into a designated section so any value
// can reference ${ENV:VAR}.
package project

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/ini.v1"
)

// Well-known sections of the project configuration file.
const (
	DefaultConfigFile = "project.ini"
	EnvSection        = "ENV"
	ProjectSection    = "PROJECT"
	EntryPointSection = ProjectSection + ".ENTRY_POINTS"
)

// Configuration errors, matchable with errors.Is.
var (
	ErrUndefinedReference = errors.New("undefined interpolation reference")
	ErrInterpolationCycle = errors.New("interpolation cycle")
	ErrBadInterpolation   = errors.New("invalid interpolation syntax")
)

// Config is an immutable view of the fully resolved configuration:
// section name to key/value pairs, every interpolation placeholder
// already substituted.
type Config struct {
	sections map[string]map[string]string
}

// SnapshotEnviron captures process environment variables in the
// "KEY=VALUE" form returned by os.Environ, doubling every literal '$'
// so values survive interpolation unchanged.
func SnapshotEnviron(environ []string) map[string]string {
	snap := make(map[string]string, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		snap[key] = strings.ReplaceAll(value, "$", "$$")
	}
	return snap
}

// Load reads the configuration file at path and merges the environment
// snapshot into envSection. A missing file yields an empty configuration
// rather than an error; the environment section is populated either way.
// Keys explicitly present in the file win over environment variables of
// the same name. All values are resolved before Load returns; an
// unresolvable or cyclic placeholder fails the load.
func Load(path, envSection string, environ []string) (*Config, error) {
	raw := make(map[string]map[string]string)

	if _, err := os.Stat(path); err == nil {
		file, err := ini.LoadSources(ini.LoadOptions{
			AllowPythonMultilineValues: true,
			KeyValueDelimiters:         "=:",
		}, path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		for _, section := range file.Sections() {
			if section.Name() == ini.DefaultSection && len(section.Keys()) == 0 {
				continue
			}
			values := make(map[string]string, len(section.Keys()))
			for _, key := range section.Keys() {
				values[key.Name()] = key.Value()
			}
			raw[section.Name()] = values
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// Environment variables never overwrite keys from the file.
	env := SnapshotEnviron(environ)
	if existing, ok := raw[envSection]; ok {
		for key, value := range env {
			if _, present := existing[key]; !present {
				existing[key] = value
			}
		}
	} else {
		raw[envSection] = env
	}

	resolved, err := resolveAll(raw)
	if err != nil {
		return nil, err
	}
	return &Config{sections: resolved}, nil
}

// HasSection reports whether the named section exists.
func (c *Config) HasSection(name string) bool {
	_, ok := c.sections[name]
	return ok
}

// Get returns the resolved value for key in section, or fallback if the
// section or key is absent. It never fails.
func (c *Config) Get(section, key, fallback string) string {
	if values, ok := c.sections[section]; ok {
		if value, ok := values[key]; ok {
			return value
		}
	}
	return fallback
}

// GetBool is Get for boolean-valued keys. Unparseable values return the
// fallback.
func (c *Config) GetBool(section, key string, fallback bool) bool {
	switch strings.ToLower(c.Get(section, key, "")) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

// Section returns a copy of the named section, or nil if absent.
func (c *Config) Section(name string) map[string]string {
	values, ok := c.sections[name]
	if !ok {
		return nil
	}
	out := make(map[string]string, len(values))
	for key, value := range values {
		out[key] = value
	}
	return out
}

// SectionNames returns the names of all sections present.
func (c *Config) SectionNames() []string {
	names := make([]string, 0, len(c.sections))
	for name := range c.sections {
		names = append(names, name)
	}
	return names
}

// resolveAll interpolates every value in raw. Resolution is recursive:
// a substituted value may itself contain placeholders.
func resolveAll(raw map[string]map[string]string) (map[string]map[string]string, error) {
	r := &resolver{raw: raw, done: make(map[string]string)}
	out := make(map[string]map[string]string, len(raw))
	for section, values := range raw {
		resolved := make(map[string]string, len(values))
		for key := range values {
			value, err := r.resolve(section, key, make(map[string]struct{}))
			if err != nil {
				return nil, err
			}
			resolved[key] = value
		}
		out[section] = resolved
	}
	return out, nil
}

type resolver struct {
	raw  map[string]map[string]string
	done map[string]string
}

func (r *resolver) resolve(section, key string, active map[string]struct{}) (string, error) {
	id := section + "\x00" + key
	if value, ok := r.done[id]; ok {
		return value, nil
	}
	if _, ok := active[id]; ok {
		return "", fmt.Errorf("%w at [%s] %s", ErrInterpolationCycle, section, key)
	}
	values, ok := r.raw[section]
	if !ok {
		return "", fmt.Errorf("%w: section [%s] for key %s", ErrUndefinedReference, section, key)
	}
	raw, ok := values[key]
	if !ok {
		return "", fmt.Errorf("%w: [%s] %s", ErrUndefinedReference, section, key)
	}

	active[id] = struct{}{}
	defer delete(active, id)

	value, err := r.expand(section, raw, active)
	if err != nil {
		return "", fmt.Errorf("resolving [%s] %s: %w", section, key, err)
	}
	r.done[id] = value
	return value, nil
}

// expand substitutes every placeholder in value. "$$" is an escaped
// literal '$'; "${key}" and "${section:key}" are references; a bare '$'
// followed by anything else is a syntax error.
func (r *resolver) expand(section, value string, active map[string]struct{}) (string, error) {
	var b strings.Builder
	for i := 0; i < len(value); {
		c := value[i]
		if c != '$' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(value) {
			return "", fmt.Errorf("%w: trailing '$' in %q", ErrBadInterpolation, value)
		}
		switch value[i+1] {
		case '$':
			b.WriteByte('$')
			i += 2
		case '{':
			end := strings.IndexByte(value[i+2:], '}')
			if end < 0 {
				return "", fmt.Errorf("%w: unterminated placeholder in %q", ErrBadInterpolation, value)
			}
			ref := value[i+2 : i+2+end]
			refSection, refKey := section, ref
			if s, k, ok := strings.Cut(ref, ":"); ok {
				refSection, refKey = s, k
			}
			resolved, err := r.resolve(refSection, refKey, active)
			if err != nil {
				return "", err
			}
			b.WriteString(resolved)
			i += 2 + end + 1
		default:
			return "", fmt.Errorf("%w: '$' must be followed by '$' or '{' in %q", ErrBadInterpolation, value)
		}
	}
	return b.String(), nil
}
