package update

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sandeepkv93/hummingbird/internal/storage"
)

type RuntimeConfig struct {
	Store                 string
	DataDir               string
	SQLitePath            string
	RedisURL              string
	CalendarID            string
	GoogleAPIKey          string
	GoogleCredentialsFile string
	GoogleTokenFile       string
	DesktopNotifications  bool
	FocusWorkMinutes      int
	FocusBreakMinutes     int
	CellsPerHour          int
	AlertBuffer           int
	// FixedOffset is set when utc_offset_minutes is configured; otherwise
	// the system zone is used.
	FixedOffset      bool
	UTCOffsetMinutes int
	Debug            bool
	LogFile          string
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		Store:             string(storage.BackendSQLite),
		DataDir:           defaultDataDir(),
		FocusWorkMinutes:  25,
		FocusBreakMinutes: 5,
		CellsPerHour:      12,
		AlertBuffer:       64,
	}
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".hummingbird"
	}
	return filepath.Join(dir, "hummingbird")
}

// NewConfigViper prepares a viper instance that reads .hummingbird.yaml from
// $HUMMINGBIRD_CONFIG_PATH, the working directory or the user config dir,
// with HUMMINGBIRD_* environment overrides.
func NewConfigViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName(".hummingbird") // .yaml is implicit
	v.SetEnvPrefix("HUMMINGBIRD")
	v.AutomaticEnv()
	if override := os.Getenv("HUMMINGBIRD_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "hummingbird"))
	}
	return v
}

// LoadRuntimeConfig reads the config file if one exists and overlays it on
// the defaults. A missing file is not an error.
func LoadRuntimeConfig(v *viper.Viper) (RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()
	v.SetDefault("store", cfg.Store)
	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("focus_work_minutes", cfg.FocusWorkMinutes)
	v.SetDefault("focus_break_minutes", cfg.FocusBreakMinutes)
	v.SetDefault("cells_per_hour", cfg.CellsPerHour)
	v.SetDefault("alert_buffer", cfg.AlertBuffer)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, err
		}
	}

	cfg.Store = strings.ToLower(strings.TrimSpace(v.GetString("store")))
	cfg.DataDir = v.GetString("data_dir")
	cfg.SQLitePath = v.GetString("sqlite_path")
	cfg.RedisURL = v.GetString("redis_url")
	cfg.CalendarID = v.GetString("calendar_id")
	cfg.GoogleAPIKey = v.GetString("google_api_key")
	cfg.GoogleCredentialsFile = v.GetString("google_credentials_file")
	cfg.GoogleTokenFile = v.GetString("google_token_file")
	cfg.DesktopNotifications = v.GetBool("desktop_notifications")
	cfg.Debug = v.GetBool("debug")
	cfg.LogFile = v.GetString("log_file")
	if n := v.GetInt("focus_work_minutes"); n > 0 {
		cfg.FocusWorkMinutes = n
	}
	if n := v.GetInt("focus_break_minutes"); n > 0 {
		cfg.FocusBreakMinutes = n
	}
	if n := v.GetInt("cells_per_hour"); n > 0 && n <= 60 {
		cfg.CellsPerHour = n
	}
	if n := v.GetInt("alert_buffer"); n > 0 {
		cfg.AlertBuffer = n
	}
	if v.IsSet("utc_offset_minutes") {
		cfg.FixedOffset = true
		cfg.UTCOffsetMinutes = v.GetInt("utc_offset_minutes")
	}
	if !storage.Backend(cfg.Store).IsValid() {
		return cfg, errors.New("config: store must be sqlite, diskv or redis")
	}
	return cfg, nil
}

func (c RuntimeConfig) StorageOptions() storage.Options {
	return storage.Options{
		Backend:    storage.Backend(c.Store),
		DataDir:    c.DataDir,
		SQLitePath: c.SQLitePath,
		RedisURL:   c.RedisURL,
	}
}

// Location is the zone used for day keys and calendar conversion.
func (c RuntimeConfig) Location() *time.Location {
	if !c.FixedOffset {
		return time.Local
	}
	return time.FixedZone("", c.UTCOffsetMinutes*60)
}

// LogPath is where the log file goes; a TUI cannot log to stdout.
func (c RuntimeConfig) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, "hummingbird.log")
}

// PxPerMinute converts the configured cell density to grid units.
func (c RuntimeConfig) PxPerMinute() float64 {
	return float64(c.CellsPerHour) / 60
}
