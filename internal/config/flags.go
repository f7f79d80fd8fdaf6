package config

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/bethropolis/seek/internal/logger"
)

// Flags holds values parsed from command-line flags.
// Only flags that were set on the command line override the config.
type Flags struct {
	set *flag.FlagSet

	ConfigFilePath  *string
	Version         *bool
	LogLevel        *string
	LogFilePath     *string
	TabWidth        *int
	ScrollOff       *int
	EnableTags      *string
	DisableTags     *string
	EnablePkgs      *string
	DisablePkgs     *string
	SystemClipboard *bool
	LiteralSearch   *bool
	MaxMatches      *int
	WatchFile       *bool
	ThemeFile       *string
}

// NewFlags defines the command-line flags on a new flag set named name.
func NewFlags(name string, output io.Writer) *Flags {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}
	f := &Flags{set: fs}
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.Version = fs.Bool("version", false, "Show version information and exit")
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error)")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr)")
	f.TabWidth = fs.Int("tabwidth", 0, "Number of cells per tab")
	f.ScrollOff = fs.Int("scrolloff", -1, "Lines of context above/below the caret")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of log tags to enable")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of log tags to disable")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable")
	f.SystemClipboard = fs.Bool("system-clipboard", false, "Use the system clipboard instead of the internal one")
	f.LiteralSearch = fs.Bool("literal", false, "Match search patterns literally instead of as regular expressions")
	f.MaxMatches = fs.Int("max-matches", -1, "Stop collecting matches after this many (0 for no limit)")
	f.WatchFile = fs.Bool("watch", true, "Report changes made to the open file by other programs")
	f.ThemeFile = fs.String("theme", "", "Path to a TOML theme file")
	return f
}

// Parse parses args and returns the remaining non-flag arguments
// (e.g. the file path).
func (f *Flags) Parse(args []string) ([]string, error) {
	if err := f.set.Parse(args); err != nil {
		return nil, err
	}
	return f.set.Args(), nil
}

// ApplyOverrides updates cfg with the flags that were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	f.set.Visit(func(fl *flag.Flag) {
		logger.DebugTagf("config", "Applying flag override: %s=%s", fl.Name, fl.Value)
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.Level = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.File = *f.LogFilePath
		case "tabwidth":
			if *f.TabWidth > 0 {
				cfg.Editor.TabWidth = *f.TabWidth
			}
		case "scrolloff":
			if *f.ScrollOff >= 0 {
				cfg.Editor.ScrollOff = *f.ScrollOff
			}
		case "system-clipboard":
			cfg.Editor.SystemClipboard = *f.SystemClipboard
		case "literal":
			cfg.Editor.LiteralSearch = *f.LiteralSearch
		case "max-matches":
			if *f.MaxMatches >= 0 {
				cfg.Editor.MaxMatches = *f.MaxMatches
			}
		case "watch":
			cfg.Editor.WatchFile = *f.WatchFile
		case "theme":
			cfg.Theme.File = *f.ThemeFile
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
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
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
