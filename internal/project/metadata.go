package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/St4rG00se/pymsdl/internal/layout"
)

// Defaults for PROJECT section properties left unset.
const (
	DefaultTestFilePattern            = "*[Tt]est*.py"
	DefaultUsePipenv                  = true
	DefaultLongDescriptionFile        = "README.md"
	DefaultLongDescriptionContentType = "text/markdown"
)

// Metadata is the assembled project description handed to the packaging
// engine: declarative properties from the config file plus the package
// maps computed from the directory layout.
type Metadata struct {
	Name                       string              `json:"name,omitempty"`
	Version                    string              `json:"version,omitempty"`
	Author                     string              `json:"author,omitempty"`
	AuthorEmail                string              `json:"author_email,omitempty"`
	URL                        string              `json:"url,omitempty"`
	Description                string              `json:"description,omitempty"`
	LongDescription            string              `json:"long_description,omitempty"`
	LongDescriptionContentType string              `json:"long_description_content_type,omitempty"`
	License                    string              `json:"license,omitempty"`
	Packages                   []string            `json:"packages"`
	PackageDirs                map[string]string   `json:"package_dir"`
	PackageData                map[string][]string `json:"package_data"`
	IncludePackageData         bool                `json:"include_package_data"`
	InstallRequires            []string            `json:"install_requires"`
	EntryPoints                map[string][]string `json:"entry_points,omitempty"`
}

// TestFilePattern returns the configured test filename pattern.
func TestFilePattern(cfg *Config) string {
	return cfg.Get(ProjectSection, "test_file_pattern", DefaultTestFilePattern)
}

// UsePipenv reports whether dependencies come from the lock file rather
// than the flat requirements list.
func UsePipenv(cfg *Config) bool {
	return cfg.GetBool(ProjectSection, "use_pipenv", DefaultUsePipenv)
}

// Assemble builds the Metadata for the project rooted at projectDir:
// source and resource package maps from the layout, properties and entry
// points from cfg, and the given dependency list. Source packages take
// precedence over resource packages with the same dotted name, and the
// whole source tree maps to the sources root so editable installs work.
func Assemble(projectDir string, cfg *Config, deps []string) (*Metadata, error) {
	srcRoot := filepath.Join(projectDir, filepath.FromSlash(layout.SourcesDir))
	resRoot := filepath.Join(projectDir, filepath.FromSlash(layout.ResourcesDir))

	srcPackages, err := layout.FindPackages(srcRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to discover source packages: %w", err)
	}
	resPackages, err := layout.FindResourcePackages(resRoot, srcPackages)
	if err != nil {
		return nil, fmt.Errorf("failed to discover resource packages: %w", err)
	}

	// Resources map per package; sources collapse to {"": sources root}
	// so editable installs resolve imports without per-package entries.
	packageDirs := layout.ToPackageDirs(layout.ResourcesDir, resPackages)
	packageDirs[""] = layout.SourcesDir

	packages := make([]string, 0, len(srcPackages)+len(resPackages))
	packages = append(packages, srcPackages...)
	packages = append(packages, resPackages...)
	sort.Strings(packages)

	longDescription, contentType, err := longDescription(projectDir, cfg)
	if err != nil {
		return nil, err
	}

	return &Metadata{
		Name:                       cfg.Get(ProjectSection, "name", ""),
		Version:                    cfg.Get(ProjectSection, "version", ""),
		Author:                     cfg.Get(ProjectSection, "author", ""),
		AuthorEmail:                cfg.Get(ProjectSection, "email", ""),
		URL:                        cfg.Get(ProjectSection, "url", ""),
		Description:                cfg.Get(ProjectSection, "description", ""),
		LongDescription:            longDescription,
		LongDescriptionContentType: contentType,
		License:                    cfg.Get(ProjectSection, "license", ""),
		Packages:                   packages,
		PackageDirs:                packageDirs,
		PackageData:                map[string][]string{"": {"*"}},
		IncludePackageData:         true,
		InstallRequires:            deps,
		EntryPoints:                LoadEntryPoints(cfg, EntryPointSection),
	}, nil
}

// longDescription reads the configured long-description file. An
// explicitly configured file must exist; the default README.md may be
// absent, yielding an empty description.
func longDescription(projectDir string, cfg *Config) (string, string, error) {
	contentType := cfg.Get(ProjectSection, "long_description_content_type", DefaultLongDescriptionContentType)
	file := cfg.Get(ProjectSection, "long_description_file", "")
	explicit := file != ""
	if !explicit {
		file = DefaultLongDescriptionFile
	}

	content, err := os.ReadFile(filepath.Join(projectDir, filepath.FromSlash(file)))
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return "", contentType, nil
		}
		return "", "", fmt.Errorf("failed to read long description file %s: %w", file, err)
	}
	return string(content), contentType, nil
}
