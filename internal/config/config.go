// Package config loads editor settings from a `.conf` or YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/JackWReid/textedit/internal/editor"
	"github.com/JackWReid/textedit/internal/layout"
)

// FileName is the name of the configuration file inside the config directory.
const FileName = "config.conf"

// Config represents the editor configuration.
type Config struct {
	Horizontal               layout.Horizontal `yaml:"alignment-horizontal"`
	Vertical                 layout.Vertical   `yaml:"alignment-vertical"`
	TabWidth                 int               `yaml:"tab-width"`
	SaveOnExit               bool              `yaml:"save-on-exit"`
	RememberCursor           bool              `yaml:"remember-cursor"`
	UpAtFirstLineGoesToStart bool              `yaml:"up-at-first-line-goes-to-start"`
	DownAtLastLineGoesToEnd  bool              `yaml:"down-at-last-line-goes-to-end"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Horizontal:     layout.Left,
		Vertical:       layout.Top,
		TabWidth:       layout.DefaultTabWidth,
		RememberCursor: true,
	}
}

// Alignment returns the configured alignment modes.
func (c Config) Alignment() layout.Alignment {
	return layout.Alignment{Horizontal: c.Horizontal, Vertical: c.Vertical}
}

// Preferences returns the editing preferences carried by the configuration.
func (c Config) Preferences() editor.Preferences {
	return editor.Preferences{
		TabWidth:                 c.TabWidth,
		SaveOnExit:               c.SaveOnExit,
		UpAtFirstLineGoesToStart: c.UpAtFirstLineGoesToStart,
		DownAtLastLineGoesToEnd:  c.DownAtLastLineGoesToEnd,
	}
}

// properties lists every property name in the order they are documented.
var properties = []string{
	"alignment",
	"alignment-horizontal",
	"alignment-vertical",
	"tab-width",
	"save-on-exit",
	"remember-cursor",
	"up-at-first-line-goes-to-start",
	"down-at-last-line-goes-to-end",
}

var errUnknownProperty = errors.New("unknown property")

// canonical maps a property to the name duplicates are detected by.
func canonical(property string) string {
	if property == "alignment" {
		return "alignment-horizontal"
	}
	return property
}

// Set assigns one property from its textual value.
func (c *Config) Set(property, value string) error {
	switch property {
	case "alignment", "alignment-horizontal":
		h, err := layout.ParseHorizontal(value)
		if err != nil {
			return err
		}
		c.Horizontal = h
	case "alignment-vertical":
		v, err := layout.ParseVertical(value)
		if err != nil {
			return err
		}
		c.Vertical = v
	case "tab-width":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > 16 {
			return fmt.Errorf("`%s` is not a valid `tab-width` (want a number from 1 to 16)", value)
		}
		c.TabWidth = n
	case "save-on-exit":
		return setBool(&c.SaveOnExit, value)
	case "remember-cursor":
		return setBool(&c.RememberCursor, value)
	case "up-at-first-line-goes-to-start":
		return setBool(&c.UpAtFirstLineGoesToStart, value)
	case "down-at-last-line-goes-to-end":
		return setBool(&c.DownAtLastLineGoesToEnd, value)
	default:
		return errUnknownProperty
	}
	return nil
}

func setBool(dst *bool, value string) error {
	switch strings.ToLower(value) {
	case "true", "yes", "on":
		*dst = true
	case "false", "no", "off":
		*dst = false
	default:
		return fmt.Errorf("`%s` is not a valid boolean (want true or false)", value)
	}
	return nil
}

// DefaultPath returns the configuration file path under the user config
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "textedit", FileName), nil
}

// Load reads the configuration at path. A missing file is created with the
// default values. Problems inside the file are reported as warnings and the
// affected lines are ignored.
func Load(path string) (Config, []Warning, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		warnings := []Warning{{File: path, Msg: "configuration file not found, creating it with default values"}}
		if err := WriteDefault(path); err != nil {
			warnings = append(warnings, Warning{File: path, Msg: err.Error()})
		}
		return Default(), warnings, nil
	}
	if err != nil {
		return Default(), nil, err
	}
	cfg, warnings := Parse(path, data)
	return cfg, warnings, nil
}

// Parse parses configuration data. Files ending in .yaml or .yml are YAML;
// everything else uses the `property = value` format.
func Parse(name string, data []byte) (Config, []Warning) {
	if isYAML(name) {
		return parseYAML(name, data)
	}
	return parseConf(name, string(data))
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// WriteDefault creates path holding the default configuration. It fails if
// the file already exists.
func WriteDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var data []byte
	if isYAML(path) {
		var err error
		if data, err = yaml.Marshal(Default()); err != nil {
			return err
		}
	} else {
		data = []byte(defaultConf())
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func defaultConf() string {
	d := Default()
	var b strings.Builder
	fmt.Fprintf(&b, "alignment-horizontal = %v  # left/center-left/center/center-right/right\n", d.Horizontal)
	fmt.Fprintf(&b, "alignment-vertical = %v  # top/center/bottom\n", d.Vertical)
	fmt.Fprintf(&b, "tab-width = %d\n", d.TabWidth)
	fmt.Fprintf(&b, "save-on-exit = %t\n", d.SaveOnExit)
	fmt.Fprintf(&b, "remember-cursor = %t\n", d.RememberCursor)
	fmt.Fprintf(&b, "up-at-first-line-goes-to-start = %t\n", d.UpAtFirstLineGoesToStart)
	fmt.Fprintf(&b, "down-at-last-line-goes-to-end = %t\n", d.DownAtLastLineGoesToEnd)
	return b.String()
}
