// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/bethropolis/quill/internal/logger"
)

// Flags holds values parsed from command-line flags.
// Pointers distinguish unset flags from zero values.
type Flags struct {
	set *flag.FlagSet

	ConfigFilePath   *string
	Version          *bool
	LogLevel         *string
	LogFilePath      *string
	TabWidth         *int
	ScrollOff        *int
	Theme            *string
	UITheme          *string
	Autosave         *bool
	AutosaveInterval *time.Duration
	EnableTags       *string
	DisableTags      *string
	EnablePkgs       *string
	DisablePkgs      *string
	EnableFiles      *string
	DisableFiles     *string
	DebugLog         *bool
	SystemClipboard  *bool
}

// NewFlags defines the flags on a new FlagSet named after the program.
func NewFlags(name string) *Flags {
	f := &Flags{set: flag.NewFlagSet(name, flag.ContinueOnError)}
	f.define()
	return f
}

func (f *Flags) define() {
	s := f.set
	f.ConfigFilePath = s.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.Version = s.Bool("version", false, "Show version information and exit")
	f.LogLevel = s.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = s.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.TabWidth = s.Int("tabwidth", 0, "Number of spaces per tab - Overrides config file")
	f.ScrollOff = s.Int("scrolloff", -1, "Lines of context above/below cursor - Overrides config file")
	f.Theme = s.String("theme", "", "Syntax highlight theme (e.g. solarized-dark, monokai)")
	f.UITheme = s.String("ui-theme", "", "Name of the UI color theme")
	f.Autosave = s.Bool("autosave", false, "Save dirty files with a path periodically")
	f.AutosaveInterval = s.Duration("autosave-interval", 0, "Autosave interval (e.g. 30s)")
	f.EnableTags = s.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = s.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = s.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = s.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.EnableFiles = s.String("log-files", "", "Comma-separated list of files to enable - Overrides config file")
	f.DisableFiles = s.String("log-disable-files", "", "Comma-separated list of files to disable - Overrides config file")
	f.DebugLog = s.Bool("debug-log", false, "Enable verbose debug logging for the logger filtering system")
	f.SystemClipboard = s.Bool("system-clipboard", SystemClipboard, "Use the system clipboard instead of the internal register")
}

// Parse parses args (without the program name) and returns the remaining
// non-flag arguments, e.g. the file path.
func (f *Flags) Parse(args []string) ([]string, error) {
	if err := f.set.Parse(args); err != nil {
		return nil, err
	}
	return f.set.Args(), nil
}

// ApplyOverrides updates cfg with the flags that were actually set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	f.set.Visit(func(fl *flag.Flag) {
		logger.DebugTagf("config", "Applying flag override: %s", fl.Name)
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath
		case "tabwidth":
			if *f.TabWidth > 0 {
				cfg.Editor.TabWidth = *f.TabWidth
			}
		case "scrolloff":
			if *f.ScrollOff >= 0 {
				cfg.Editor.ScrollOff = *f.ScrollOff
			}
		case "theme":
			if *f.Theme != "" {
				cfg.Editor.HighlightTheme = *f.Theme
			}
		case "ui-theme":
			if *f.UITheme != "" {
				cfg.Editor.UITheme = *f.UITheme
			}
		case "autosave":
			cfg.Autosave.Enabled = *f.Autosave
		case "autosave-interval":
			cfg.Autosave.Interval = *f.AutosaveInterval
		case "system-clipboard":
			cfg.Editor.SystemClipboard = *f.SystemClipboard
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = splitCommaList(*f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = splitCommaList(*f.DisableFiles)
		}
	})
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
