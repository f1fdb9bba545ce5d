package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Colors holds color values for every UI style.
// Values can be xterm-256 codes (0-255) or hex colors (#rrggbb).
type Colors struct {
	Title        string `toml:"title"`
	Header       string `toml:"header"`
	ColumnBorder string `toml:"column_border"`
	ColumnFocus  string `toml:"column_focus"`
	SelectedBG   string `toml:"selected_bg"`
	SelectedFG   string `toml:"selected_fg"`
	Dragging     string `toml:"dragging"`
	PriorityLow  string `toml:"priority_low"`
	PriorityMed  string `toml:"priority_medium"`
	PriorityHigh string `toml:"priority_high"`
	Done         string `toml:"done"`
	Notification string `toml:"notification"`
	Success      string `toml:"success"`
	Help         string `toml:"help"`
	Border       string `toml:"border"`
	WizardTitle  string `toml:"wizard_title"`
	WizardActive string `toml:"wizard_active"`
	WizardDim    string `toml:"wizard_dim"`
	Error        string `toml:"error"`
	Spinner      string `toml:"spinner"`
}

// Server holds the backend connection settings.
type Server struct {
	BaseURL string `toml:"base_url"`
	Token   string `toml:"token"`
	Project string `toml:"project"`
}

// Sync holds request timing settings for board reads and writes.
type Sync struct {
	WriteTimeout      time.Duration `toml:"write_timeout"`
	ReadTimeout       time.Duration `toml:"read_timeout"`
	RequestsPerSecond float64       `toml:"requests_per_second"`
	Burst             int           `toml:"burst"`
}

// Layout holds board sizing.
type Layout struct {
	ColumnWidth int `toml:"column_width"`
}

// Config is the top-level configuration.
type Config struct {
	Server Server `toml:"server"`
	Sync   Sync   `toml:"sync"`
	Layout Layout `toml:"layout"`
	Colors Colors `toml:"colors"`
}

// Default returns a Config populated with the built-in defaults.
func Default() Config {
	return Config{
		Server: Server{
			BaseURL: "http://localhost:8080/api",
		},
		Sync: Sync{
			WriteTimeout:      10 * time.Second,
			ReadTimeout:       15 * time.Second,
			RequestsPerSecond: 10,
			Burst:             5,
		},
		Layout: Layout{
			ColumnWidth: 28,
		},
		Colors: Colors{
			Title:        "#cba6f7", // Mauve
			Header:       "#89b4fa", // Blue
			ColumnBorder: "#585b70", // Surface 2
			ColumnFocus:  "#cba6f7", // Mauve
			SelectedBG:   "#313244", // Surface 0
			SelectedFG:   "#cdd6f4", // Text
			Dragging:     "#f5c2e7", // Pink
			PriorityLow:  "#94e2d5", // Teal
			PriorityMed:  "#f9e2af", // Yellow
			PriorityHigh: "#f38ba8", // Red
			Done:         "#7f849c", // Overlay 1
			Notification: "#a6adc8", // Subtext 0
			Success:      "#a6e3a1", // Green
			Help:         "#7f849c", // Overlay 1
			Border:       "#585b70", // Surface 2
			WizardTitle:  "#cba6f7", // Mauve
			WizardActive: "#cba6f7", // Mauve
			WizardDim:    "#7f849c", // Overlay 1
			Error:        "#f38ba8", // Red
			Spinner:      "#89b4fa", // Blue
		},
	}
}

// Path returns the config file path, respecting XDG_CONFIG_HOME.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "taskboard", "taskboard.conf")
}

// LogPath returns the log file path, respecting XDG_STATE_HOME.
func LogPath() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "taskboard", "taskboard.log")
}

// Load reads the config file at Path and applies environment overrides.
func Load() (Config, error) {
	return LoadFile(Path())
}

// LoadFile reads the config file at path. Omitted fields keep their default
// values. If the file does not exist, defaults are returned with no error.
// TASKBOARD_URL, TASKBOARD_TOKEN and TASKBOARD_PROJECT override the file.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, err
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TASKBOARD_URL"); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := os.Getenv("TASKBOARD_TOKEN"); v != "" {
		cfg.Server.Token = v
	}
	if v := os.Getenv("TASKBOARD_PROJECT"); v != "" {
		cfg.Server.Project = v
	}
}

const defaultFileContent = `# Taskboard configuration
# Uncomment and modify values to customize. All values are optional.
# Colors can be hex (#rrggbb) or xterm-256 codes (0-255).
# Defaults use the Catppuccin Mocha palette.

[server]
# base_url = "http://localhost:8080/api"
# token    = ""        # bearer token; TASKBOARD_TOKEN overrides
# project  = ""        # project opened at start; empty shows the picker

[sync]
# write_timeout       = "10s"  # a move not confirmed in time is rolled back
# read_timeout        = "15s"
# requests_per_second = 10
# burst               = 5

[layout]
# column_width = 28

[colors]
# title           = "#cba6f7"  # Mauve
# header          = "#89b4fa"  # Blue
# column_border   = "#585b70"  # Surface 2
# column_focus    = "#cba6f7"  # Mauve
# selected_bg     = "#313244"  # Surface 0
# selected_fg     = "#cdd6f4"  # Text
# dragging        = "#f5c2e7"  # Pink
# priority_low    = "#94e2d5"  # Teal
# priority_medium = "#f9e2af"  # Yellow
# priority_high   = "#f38ba8"  # Red
# done            = "#7f849c"  # Overlay 1
# notification    = "#a6adc8"  # Subtext 0
# success         = "#a6e3a1"  # Green
# help            = "#7f849c"  # Overlay 1
# border          = "#585b70"  # Surface 2
# wizard_title    = "#cba6f7"  # Mauve
# wizard_active   = "#cba6f7"  # Mauve
# wizard_dim      = "#7f849c"  # Overlay 1
# error           = "#f38ba8"  # Red
# spinner         = "#89b4fa"  # Blue
`

// WriteDefault writes the default config file with all values commented out.
// It no-ops if the file already exists. Parent directories are created as needed.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // file already exists
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(defaultFileContent), 0o644)
}
