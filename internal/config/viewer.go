package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// DefaultSamplesPath is where the data logger's CSV is expected relative to
// the working directory.
const DefaultSamplesPath = "ArquivosDados/mpu6050_data.csv"

// Defaults applied by the Get* accessors when a field is unset.
const (
	DefaultListen      = "127.0.0.1:0"
	DefaultDelimiter   = ";"
	DefaultWidthIn     = 12.0
	DefaultHeightIn    = 5.0
	DefaultMaxTicks    = 10
	DefaultPageWidth   = "760px"
	DefaultPageHeight  = "480px"
	DefaultAssetsHost  = "https://go-echarts.github.io/go-echarts-assets/assets/"
	maxConfigFileBytes = 1 * 1024 * 1024
)

// ViewerConfig is the optional JSON configuration for imuplot. Every field
// is a pointer so a partial file leaves the remaining fields at their
// defaults.
type ViewerConfig struct {
	Listen        *string `json:"listen,omitempty"`
	OpenBrowser   *bool   `json:"open_browser,omitempty"`
	CloseOnUnload *bool   `json:"close_on_unload,omitempty"`
	Delimiter     *string `json:"delimiter,omitempty"`

	Figure FigureConfig `json:"figure"`
	Page   PageConfig   `json:"page"`
}

// FigureConfig sizes the static gonum/plot figure.
type FigureConfig struct {
	WidthIn  *float64 `json:"width_in,omitempty"`
	HeightIn *float64 `json:"height_in,omitempty"`
	MaxTicks *int     `json:"max_ticks,omitempty"`
}

// PageConfig sizes the interactive charts.
type PageConfig struct {
	Width      *string `json:"width,omitempty"`
	Height     *string `json:"height,omitempty"`
	AssetsHost *string `json:"assets_host,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// DefaultViewerConfig returns a config with every field populated.
func DefaultViewerConfig() *ViewerConfig {
	return &ViewerConfig{
		Listen:        ptrString(DefaultListen),
		OpenBrowser:   ptrBool(true),
		CloseOnUnload: ptrBool(true),
		Delimiter:     ptrString(DefaultDelimiter),
		Figure: FigureConfig{
			WidthIn:  ptrFloat64(DefaultWidthIn),
			HeightIn: ptrFloat64(DefaultHeightIn),
			MaxTicks: ptrInt(DefaultMaxTicks),
		},
		Page: PageConfig{
			Width:      ptrString(DefaultPageWidth),
			Height:     ptrString(DefaultPageHeight),
			AssetsHost: ptrString(DefaultAssetsHost),
		},
	}
}

// LoadViewerConfig reads a JSON config file. The path must have a .json
// extension and the file must be under 1MB.
func LoadViewerConfig(path string) (*ViewerConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigFileBytes {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileBytes)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &ViewerConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the fields that are set.
func (c *ViewerConfig) Validate() error {
	if c.Listen != nil && *c.Listen == "" {
		return fmt.Errorf("listen must not be empty")
	}
	if c.Delimiter != nil {
		d := *c.Delimiter
		r, size := utf8.DecodeRuneInString(d)
		if size == 0 || size != len(d) || r == utf8.RuneError {
			return fmt.Errorf("delimiter must be a single character, got %q", d)
		}
		if r == '"' || r == '\r' || r == '\n' {
			return fmt.Errorf("delimiter %q is not allowed", d)
		}
	}
	if c.Figure.WidthIn != nil && *c.Figure.WidthIn <= 0 {
		return fmt.Errorf("figure.width_in must be positive, got %g", *c.Figure.WidthIn)
	}
	if c.Figure.HeightIn != nil && *c.Figure.HeightIn <= 0 {
		return fmt.Errorf("figure.height_in must be positive, got %g", *c.Figure.HeightIn)
	}
	if c.Figure.MaxTicks != nil && (*c.Figure.MaxTicks < 2 || *c.Figure.MaxTicks > 50) {
		return fmt.Errorf("figure.max_ticks must be between 2 and 50, got %d", *c.Figure.MaxTicks)
	}
	return nil
}

// GetListen returns the viewer listen address.
func (c *ViewerConfig) GetListen() string {
	if c.Listen == nil {
		return DefaultListen
	}
	return *c.Listen
}

// GetOpenBrowser reports whether the viewer URL is opened in a browser.
func (c *ViewerConfig) GetOpenBrowser() bool {
	if c.OpenBrowser == nil {
		return true
	}
	return *c.OpenBrowser
}

// GetCloseOnUnload reports whether closing the viewer page ends the process.
func (c *ViewerConfig) GetCloseOnUnload() bool {
	if c.CloseOnUnload == nil {
		return true
	}
	return *c.CloseOnUnload
}

// GetDelimiter returns the CSV field delimiter.
func (c *ViewerConfig) GetDelimiter() rune {
	if c.Delimiter == nil || *c.Delimiter == "" {
		return ';'
	}
	r, _ := utf8.DecodeRuneInString(*c.Delimiter)
	return r
}

// GetWidthIn returns the figure width in inches.
func (c *ViewerConfig) GetWidthIn() float64 {
	if c.Figure.WidthIn == nil {
		return DefaultWidthIn
	}
	return *c.Figure.WidthIn
}

// GetHeightIn returns the figure height in inches.
func (c *ViewerConfig) GetHeightIn() float64 {
	if c.Figure.HeightIn == nil {
		return DefaultHeightIn
	}
	return *c.Figure.HeightIn
}

// GetMaxTicks returns the maximum number of major ticks on the sample axis.
func (c *ViewerConfig) GetMaxTicks() int {
	if c.Figure.MaxTicks == nil {
		return DefaultMaxTicks
	}
	return *c.Figure.MaxTicks
}

// GetPageWidth returns the CSS width of each interactive chart.
func (c *ViewerConfig) GetPageWidth() string {
	if c.Page.Width == nil {
		return DefaultPageWidth
	}
	return *c.Page.Width
}

// GetPageHeight returns the CSS height of each interactive chart.
func (c *ViewerConfig) GetPageHeight() string {
	if c.Page.Height == nil {
		return DefaultPageHeight
	}
	return *c.Page.Height
}

// GetAssetsHost returns where the page loads the echarts scripts from.
func (c *ViewerConfig) GetAssetsHost() string {
	if c.Page.AssetsHost == nil {
		return DefaultAssetsHost
	}
	return *c.Page.AssetsHost
}
