package edit

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zem-editor/zem/pkg/eval"
)

// Config is the user configuration, read from zem.yaml in the zem config
// directory. Everything in it has a working default, so a missing file is
// not an error.
type Config struct {
	// TabStop is the display width of a tab. Zero keeps the default.
	TabStop int `yaml:"tabstop"`
	// PluginDir overrides the directory plugins are loaded from.
	PluginDir string `yaml:"plugindir"`
	// RC overrides the path of the rc script.
	RC string `yaml:"rc"`
	// Bindings maps mode name to key spec to the name of a global function,
	// for example {normal: {"C-x C-f": my-find-file}}. The names are
	// resolved after the rc script and plugins have run.
	Bindings map[string]map[string]string `yaml:"bindings"`
}

// LoadConfig reads the configuration file at path. A file that does not
// exist yields the zero Config; a file that cannot be parsed yields the zero
// Config and an error, so the caller can warn and continue with defaults.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyConfig applies the configuration to the editor: the tab width and the
// extra key bindings. Binding values name functions in the global env, so
// this must run after the rc script and plugins have defined them. Each
// binding that fails to resolve is reported and skipped, keeping the
// bindings that do work.
func (ed *Editor) ApplyConfig(cfg Config) []error {
	if cfg.TabStop > 0 {
		ed.tabStop = cfg.TabStop
	}
	var errors []error
	for mode, table := range cfg.Bindings {
		for spec, fnName := range table {
			v, err := ed.ev.Global().Lookup(fnName)
			if err != nil {
				errors = append(errors, fmt.Errorf("binding %s %s: %w", mode, spec, err))
				continue
			}
			fn, ok := v.(eval.Callable)
			if !ok {
				errors = append(errors,
					fmt.Errorf("binding %s %s: %s is not a function", mode, spec, fnName))
				continue
			}
			if err := ed.bindKey(mode, spec, fn); err != nil {
				errors = append(errors, fmt.Errorf("binding %s %s: %w", mode, spec, err))
			}
		}
	}
	return errors
}

// ConfigHome returns the zem configuration directory, following the
// platform convention os.UserConfigDir implements (XDG on unix).
func ConfigHome() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "zem"), nil
}
