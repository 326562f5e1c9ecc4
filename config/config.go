package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/sherlog/sherlog/filter"
	"github.com/sherlog/sherlog/internal/util"
)

// Config holds all the data that can be configured in the
// external configuration file
type Config struct {
	// Keymap maps key sequences (e.g. "C-f", "j") to action names
	Keymap map[string]string `json:"Keymap" yaml:"Keymap" toml:"Keymap"`
	Style  StyleSet          `json:"Style" yaml:"Style" toml:"Style"`

	// Filters are applied when the file is opened. Each entry uses the
	// filter list notation, e.g. "! DEBUG" or "# kernel"
	Filters  []string        `json:"Filters" yaml:"Filters" toml:"Filters"`
	CaseMode filter.CaseMode `json:"CaseMode" yaml:"CaseMode" toml:"CaseMode"`

	LineNumbers bool `json:"LineNumbers" yaml:"LineNumbers" toml:"LineNumbers"`
	Wrap        bool `json:"Wrap" yaml:"Wrap" toml:"Wrap"`
	StripANSI   bool `json:"StripANSI" yaml:"StripANSI" toml:"StripANSI"`

	// Number of lines moved by one step of the mouse wheel, without and
	// with the control key held
	MouseScrollStep     int `json:"MouseScrollStep" yaml:"MouseScrollStep" toml:"MouseScrollStep"`
	MouseFastScrollStep int `json:"MouseFastScrollStep" yaml:"MouseFastScrollStep" toml:"MouseFastScrollStep"`

	// StatusMsgDelay is the number of milliseconds informational
	// messages stay in the status bar. 0 keeps them until replaced.
	StatusMsgDelay int `json:"StatusMsgDelay" yaml:"StatusMsgDelay" toml:"StatusMsgDelay"`
	TabWidth       int `json:"TabWidth" yaml:"TabWidth" toml:"TabWidth"`
}

const (
	DefaultMouseScrollStep     = 3
	DefaultMouseFastScrollStep = 10
	DefaultTabWidth            = 4
	DefaultStatusMsgDelay      = 3000
)

var homedirFunc = util.Homedir

// Init initializes the Config with default values
func (c *Config) Init() error {
	c.Keymap = make(map[string]string)
	c.Style.Init()
	c.CaseMode = filter.CaseSensitive
	c.MouseScrollStep = DefaultMouseScrollStep
	c.MouseFastScrollStep = DefaultMouseFastScrollStep
	c.TabWidth = DefaultTabWidth
	c.StatusMsgDelay = DefaultStatusMsgDelay
	return nil
}

// ReadFilename reads the config from the given file, and
// does the appropriate processing, if any
func (c *Config) ReadFilename(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to open file %s", filename)
	}
	defer f.Close()

	switch ext := filepath.Ext(filename); ext {
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(f).Decode(c); err != nil {
			return errors.Wrap(err, "failed to decode YAML")
		}
	case ".toml":
		if err := toml.NewDecoder(f).Decode(c); err != nil {
			return errors.Wrap(err, "failed to decode TOML")
		}
	default:
		if err := json.NewDecoder(f).Decode(c); err != nil {
			return errors.Wrap(err, "failed to decode JSON")
		}
	}

	return c.Validate()
}

// Validate checks values that the decoders cannot check by themselves
func (c *Config) Validate() error {
	if c.MouseScrollStep < 1 {
		return errors.Errorf("invalid MouseScrollStep: %d", c.MouseScrollStep)
	}
	if c.MouseFastScrollStep < 1 {
		return errors.Errorf("invalid MouseFastScrollStep: %d", c.MouseFastScrollStep)
	}
	if c.TabWidth < 1 {
		return errors.Errorf("invalid TabWidth: %d", c.TabWidth)
	}
	if c.StatusMsgDelay < 0 {
		return errors.Errorf("invalid StatusMsgDelay: %d", c.StatusMsgDelay)
	}
	for _, s := range c.Filters {
		if _, err := filter.Parse(s, c.CaseMode); err != nil {
			return errors.Wrap(err, "invalid filter in config")
		}
	}
	return nil
}

// Locator locates a config file in a given directory.
type Locator interface {
	Locate(string) (string, error)
}

// LocatorFunc is a function that implements Locator.
type LocatorFunc func(string) (string, error)

// Locate calls the underlying function.
func (f LocatorFunc) Locate(dir string) (string, error) {
	return f(dir)
}

var configFilenames = []string{"config.json", "config.yaml", "config.yml", "config.toml"}

// DefaultConfigLocator searches for a config file with one of the known
// filenames (config.json, config.yaml, config.yml, config.toml) in the
// given directory.
var DefaultConfigLocator = LocatorFunc(func(dir string) (string, error) {
	for _, basename := range configFilenames {
		file := filepath.Join(dir, basename)
		if _, err := os.Stat(file); err == nil {
			return file, nil
		}
	}
	return "", errors.Errorf("config file not found in %s", dir)
})

// LocateRcfile attempts to find the config file in various locations
func LocateRcfile(locater Locator) (string, error) {
	// http://standards.freedesktop.org/basedir-spec/basedir-spec-latest.html
	//
	// Try in this order:
	//	  $XDG_CONFIG_HOME/sherlog/config.{json,yaml,yml,toml}
	//    $XDG_CONFIG_DIR/sherlog/config.{json,yaml,yml,toml} (where XDG_CONFIG_DIR is listed in $XDG_CONFIG_DIRS)
	//	  ~/.sherlog/config.{json,yaml,yml,toml}

	home, uErr := homedirFunc()

	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		if file, err := locater.Locate(filepath.Join(dir, "sherlog")); err == nil {
			return file, nil
		}
	} else if uErr == nil { // silently ignore failure for homedir()
		if file, err := locater.Locate(filepath.Join(home, ".config", "sherlog")); err == nil {
			return file, nil
		}
	}

	if dirs := os.Getenv("XDG_CONFIG_DIRS"); dirs != "" {
		for dir := range strings.SplitSeq(dirs, fmt.Sprintf("%c", filepath.ListSeparator)) {
			if file, err := locater.Locate(filepath.Join(dir, "sherlog")); err == nil {
				return file, nil
			}
		}
	}

	if uErr == nil { // silently ignore failure for homedir()
		if file, err := locater.Locate(filepath.Join(home, ".sherlog")); err == nil {
			return file, nil
		}
	}

	return "", errors.New("config file not found")
}
