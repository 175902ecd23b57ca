package project

import "strings"

// LoadEntryPoints reads the entry-point section of the configuration:
// keys are group names, values are newline-separated "name = target"
// specifiers. It returns nil when the section is absent so the packaging
// engine can distinguish "not configured" from "configured but empty".
// Specifier syntax is not validated here; that is the engine's concern.
func LoadEntryPoints(cfg *Config, section string) map[string][]string {
	if !cfg.HasSection(section) {
		return nil
	}
	groups := make(map[string][]string)
	for key, value := range cfg.Section(section) {
		var specs []string
		for _, line := range strings.Split(value, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			specs = append(specs, strings.TrimSpace(line))
		}
		groups[key] = specs
	}
	return groups
}
