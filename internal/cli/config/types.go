// Package config provides tool-level settings for the pymsdl CLI:
// where the project lives, which configuration file to read, and which
// interpreter drives test and module execution. Project metadata itself
// is resolved separately, from the project configuration file.
package config

// Settings holds all CLI configuration options.
type Settings struct {
	// ProjectDir is the project root containing the standard directory
	// layout tree. Always absolute after load.
	ProjectDir string `koanf:"project_dir"`
	// ConfigFile is the project configuration file path. Resolved
	// relative to ProjectDir when not absolute.
	ConfigFile string `koanf:"config_file"`
	// Interpreter is the interpreter executable used for test and module
	// execution and for the build backend.
	Interpreter string `koanf:"interpreter"`
	Verbose     bool   `koanf:"verbose"`
}

// Default configuration values.
const (
	DefaultConfigFile  = "project.ini"
	DefaultInterpreter = "python3"
)
