// Package config loads the settings of the sheetfab demo hosts from YAML files.
package config

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"
	"time"

	"github.com/esimov/sheetfab"
	"github.com/esimov/sheetfab/imop"
	"github.com/esimov/sheetfab/utils"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Supported hosts.
const (
	HostGio    = "gio"
	HostTerm   = "term"
	HostReplay = "replay"
)

// Hosts lists the supported host names.
var Hosts = []string{HostGio, HostTerm, HostReplay}

var (
	ErrUnknownCurve = errors.New("unknown interpolation curve")
	ErrUnknownHost  = errors.New("unknown host")
	ErrGeometry     = errors.New("invalid geometry")
	ErrColor        = errors.New("invalid color")
)

// Config is the root of the configuration file.
type Config struct {
	Host      string    `yaml:"host"`
	Window    Size      `yaml:"window"`
	Control   Box       `yaml:"control"`
	Sheet     Sheet     `yaml:"sheet"`
	Colors    Colors    `yaml:"colors"`
	Scrim     Scrim     `yaml:"scrim"`
	Animation Animation `yaml:"animation"`
	Terminal  Terminal  `yaml:"terminal"`
}

// Size is a width and height pair.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Box is a rectangle laid out inside the window.
type Box struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Rect returns the rectangle of the box.
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// Sheet holds the sheet geometry and its card styling.
type Sheet struct {
	Box     `yaml:",inline"`
	Margins Margins `yaml:"margins"`
	// Card selects a card surface with a dedicated background.
	Card      bool `yaml:"card"`
	Radius    int  `yaml:"radius"`
	Elevation int  `yaml:"elevation"`
	// Items are the menu entries laid out in rows inside the sheet.
	Items []string `yaml:"items"`
}

// Margins are the layout margins of the sheet.
type Margins struct {
	Left   int `yaml:"left"`
	Top    int `yaml:"top"`
	Right  int `yaml:"right"`
	Bottom int `yaml:"bottom"`
}

// Insets converts the margins to the core type.
func (m Margins) Insets() sheetfab.Insets {
	return sheetfab.Insets{Left: m.Left, Top: m.Top, Right: m.Right, Bottom: m.Bottom}
}

// Colors are hex encoded colors, as in #e91e63.
type Colors struct {
	Sheet      string `yaml:"sheet"`
	Control    string `yaml:"control"`
	Background string `yaml:"background"`
}

// Scrim is the dimming overlay drawn behind the sheet.
type Scrim struct {
	Color   string  `yaml:"color"`
	Opacity float32 `yaml:"opacity"`
	Blend   string  `yaml:"blend"`
}

// Animation holds the timing of the transition.
type Animation struct {
	Sheet        Duration `yaml:"sheet"`
	ShowColor    Duration `yaml:"show_color"`
	HideColor    Duration `yaml:"hide_color"`
	Control      Duration `yaml:"control"`
	ShowOverlay  Duration `yaml:"show_overlay"`
	HideOverlay  Duration `yaml:"hide_overlay"`
	RevealDelay  Duration `yaml:"reveal_delay"`
	RestoreDelay Duration `yaml:"restore_delay"`
	Curve        string   `yaml:"curve"`
}

// Terminal maps window units to terminal cells.
type Terminal struct {
	CellWidth  int      `yaml:"cell_width"`
	CellHeight int      `yaml:"cell_height"`
	Tick       Duration `yaml:"tick"`
}

// Duration is a time.Duration written as a Go duration string, like 300ms.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the configuration of a phone sized window with the control
// resting in its bottom right corner.
func Default() *Config {
	defaults := sheetfab.DefaultConfig()

	return &Config{
		Host:   HostGio,
		Window: Size{Width: 400, Height: 640},
		Control: Box{
			X: 328, Y: 568,
			Width: 56, Height: 56,
		},
		Sheet: Sheet{
			Box:       Box{Width: 256, Height: 320},
			Card:      true,
			Radius:    4,
			Elevation: 8,
			Items:     []string{"Recording", "Reminder", "Photo", "Note"},
		},
		Colors: Colors{
			Sheet:      "#fafafa",
			Control:    "#e91e63",
			Background: "#eeeeee",
		},
		Scrim: Scrim{
			Color:   "#000000",
			Opacity: 0.4,
			Blend:   imop.Normal,
		},
		Animation: Animation{
			Sheet:        Duration(defaults.SheetDuration),
			ShowColor:    Duration(defaults.ShowColorDuration),
			HideColor:    Duration(defaults.HideColorDuration),
			Control:      Duration(defaults.ControlDuration),
			ShowOverlay:  Duration(defaults.ShowOverlayDuration),
			HideOverlay:  Duration(defaults.HideOverlayDuration),
			RevealDelay:  Duration(defaults.RevealDelay),
			RestoreDelay: Duration(defaults.RestoreDelay),
			Curve:        "fast-out-slow-in",
		},
		Terminal: Terminal{
			CellWidth:  8,
			CellHeight: 16,
			Tick:       Duration(16 * time.Millisecond),
		},
	}
}

// Load reads and validates the configuration file at path.
// Missing keys keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a YAML document on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if !utils.Contains(Hosts, c.Host) {
		return fmt.Errorf("%w %q, expected one of %s", ErrUnknownHost, c.Host, strings.Join(Hosts, ", "))
	}
	if _, err := sheetfab.CurveByName(c.Animation.Curve); err != nil {
		return fmt.Errorf("%w %q, expected one of %s", ErrUnknownCurve, c.Animation.Curve,
			strings.Join(sheetfab.CurveNames(), ", "))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrGeometry, c.Window.Width, c.Window.Height)
	}
	window := image.Rect(0, 0, c.Window.Width, c.Window.Height)
	for name, b := range map[string]Box{"control": c.Control, "sheet": c.Sheet.Box} {
		if b.Width <= 0 || b.Height <= 0 {
			return fmt.Errorf("%w: %s size %dx%d", ErrGeometry, name, b.Width, b.Height)
		}
		if !b.Rect().In(window) {
			return fmt.Errorf("%w: %s %v is outside of the window", ErrGeometry, name, b.Rect())
		}
	}
	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 {
		return fmt.Errorf("%w: terminal cell %dx%d", ErrGeometry, c.Terminal.CellWidth, c.Terminal.CellHeight)
	}

	for name, hex := range map[string]string{
		"sheet":      c.Colors.Sheet,
		"control":    c.Colors.Control,
		"background": c.Colors.Background,
		"scrim":      c.Scrim.Color,
	} {
		if _, err := ParseColor(hex); err != nil {
			return fmt.Errorf("%s color: %w", name, err)
		}
	}
	if c.Scrim.Opacity < 0 || c.Scrim.Opacity > 1 {
		return fmt.Errorf("scrim opacity %v is outside of [0, 1]", c.Scrim.Opacity)
	}
	if err := imop.NewBlend().Set(c.Scrim.Blend); err != nil {
		return fmt.Errorf("scrim: %w", err)
	}

	a := c.Animation
	for name, d := range map[string]Duration{
		"sheet": a.Sheet, "show_color": a.ShowColor, "hide_color": a.HideColor,
		"control": a.Control, "show_overlay": a.ShowOverlay, "hide_overlay": a.HideOverlay,
		"reveal_delay": a.RevealDelay, "restore_delay": a.RestoreDelay,
	} {
		if d < 0 {
			return fmt.Errorf("animation %s: negative duration %v", name, d.Std())
		}
	}
	return nil
}

// Sheetfab returns the coordinator configuration.
func (c *Config) Sheetfab() *sheetfab.Config {
	curve, err := sheetfab.CurveByName(c.Animation.Curve)
	if err != nil {
		curve = sheetfab.FastOutSlowIn
	}
	a := c.Animation

	return &sheetfab.Config{
		SheetDuration:       a.Sheet.Std(),
		ShowColorDuration:   a.ShowColor.Std(),
		HideColorDuration:   a.HideColor.Std(),
		ControlDuration:     a.Control.Std(),
		ShowOverlayDuration: a.ShowOverlay.Std(),
		HideOverlayDuration: a.HideOverlay.Std(),
		RevealDelay:         a.RevealDelay.Std(),
		RestoreDelay:        a.RestoreDelay.Std(),
		Curve:               curve,
	}
}

// Palette holds the decoded colors.
type Palette struct {
	Sheet, Control, Background, Scrim color.NRGBA
}

// Palette decodes the configured colors. The configuration must be valid.
func (c *Config) Palette() Palette {
	must := func(hex string) color.NRGBA {
		col, _ := ParseColor(hex)
		return col
	}
	return Palette{
		Sheet:      must(c.Colors.Sheet),
		Control:    must(c.Colors.Control),
		Background: must(c.Colors.Background),
		Scrim:      must(c.Scrim.Color),
	}
}

// ParseColor decodes an opaque #rgb or #rrggbb color.
func ParseColor(hex string) (color.NRGBA, error) {
	c, err := colorful.Hex(strings.TrimSpace(hex))
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w %q: %v", ErrColor, hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// Hex encodes c as #rrggbb, dropping the alpha channel.
func Hex(c color.NRGBA) string {
	return colorful.Color{
		R: float64(c.R) / 0xff,
		G: float64(c.G) / 0xff,
		B: float64(c.B) / 0xff,
	}.Hex()
}
