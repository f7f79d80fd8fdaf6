package theme

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/seek/internal/logger"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/afero"
)

// TomlStyleDef is a single style definition in a theme file.
// Pointers tell missing attributes apart from false ones.
type TomlStyleDef struct {
	Fg        *string `toml:"fg"`
	Bg        *string `toml:"bg"`
	Bold      *bool   `toml:"bold"`
	Italic    *bool   `toml:"italic"`
	Underline *bool   `toml:"underline"`
	Reverse   *bool   `toml:"reverse"`
}

// TomlTheme is the layout of a theme file.
type TomlTheme struct {
	Name   string                  `toml:"name"`
	IsDark bool                    `toml:"is_dark"`
	Styles map[string]TomlStyleDef `toml:"styles"`
}

// Load returns the theme at path, or the built-in theme when path is empty.
func Load(fsys afero.Fs, path string) (*Theme, error) {
	if path == "" {
		return DevComfortDark, nil
	}
	return LoadThemeFromFile(fsys, path)
}

// LoadThemeFromFile parses a TOML theme. Styles the file does not define
// are taken from the built-in theme; defined styles inherit unset
// attributes from the file's Default style.
func LoadThemeFromFile(fsys afero.Fs, path string) (*Theme, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file '%s': %w", path, err)
	}

	var tt TomlTheme
	meta, err := toml.Decode(string(data), &tt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse theme file '%s': %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Theme file '%s': unrecognized keys: %v", path, undecoded)
	}
	if tt.Name == "" {
		tt.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	theme := &Theme{
		Name:   tt.Name,
		IsDark: tt.IsDark,
		Styles: make(map[string]tcell.Style, len(DevComfortDark.Styles)),
	}
	for name, style := range DevComfortDark.Styles {
		theme.Styles[name] = style
	}

	base := tcell.StyleDefault
	if def, ok := tt.Styles[Default]; ok {
		style, err := convertTomlStyle(def, tcell.StyleDefault)
		if err != nil {
			return nil, fmt.Errorf("theme '%s': style '%s': %w", tt.Name, Default, err)
		}
		base = style
		theme.Styles[Default] = base
	}

	for name, def := range tt.Styles {
		if name == Default {
			continue
		}
		style, err := convertTomlStyle(def, base)
		if err != nil {
			logger.Warnf("Theme '%s': skipping style '%s': %v", tt.Name, name, err)
			continue
		}
		theme.Styles[name] = style
	}

	logger.Debugf("Loaded theme '%s' from '%s'", theme.Name, path)
	return theme, nil
}

func convertTomlStyle(def TomlStyleDef, base tcell.Style) (tcell.Style, error) {
	style := base
	if def.Fg != nil {
		color, err := parseColor(*def.Fg)
		if err != nil {
			return style, fmt.Errorf("invalid foreground: %w", err)
		}
		style = style.Foreground(color)
	}
	if def.Bg != nil {
		color, err := parseColor(*def.Bg)
		if err != nil {
			return style, fmt.Errorf("invalid background: %w", err)
		}
		style = style.Background(color)
	}
	if def.Bold != nil {
		style = style.Bold(*def.Bold)
	}
	if def.Italic != nil {
		style = style.Italic(*def.Italic)
	}
	if def.Underline != nil {
		style = style.Underline(*def.Underline)
	}
	if def.Reverse != nil {
		style = style.Reverse(*def.Reverse)
	}
	return style, nil
}

// parseColor accepts #rrggbb, a W3C color name, "reset" or "default".
func parseColor(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "reset":
		return tcell.ColorReset, nil
	case "default", "":
		return tcell.ColorDefault, nil
	}
	if strings.HasPrefix(s, "#") && len(s) != 7 {
		return tcell.ColorDefault, fmt.Errorf("'%s' is not #RRGGBB", s)
	}
	color := tcell.GetColor(s)
	if color == tcell.ColorDefault {
		return color, fmt.Errorf("unknown color '%s'", s)
	}
	return color, nil
}
