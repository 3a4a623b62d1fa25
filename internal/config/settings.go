package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrInvalid marks a configuration value the radar cannot run with.
var ErrInvalid = errors.New("invalid configuration")

// Settings is the runtime configuration merged from flags, environment and
// an optional config file.
type Settings struct {
	Demo     bool          `mapstructure:"demo"`
	Port     string        `mapstructure:"port"`
	Baud     int           `mapstructure:"baud"`
	MaxRange float64       `mapstructure:"range"`
	FadeTime time.Duration `mapstructure:"fade"`
	FPS      int           `mapstructure:"fps"`
	LogFile  string        `mapstructure:"log-file"`
	Config   string        `mapstructure:"config"`
}

// Defaults returns the settings used when nothing overrides them.
func Defaults() Settings {
	return Settings{
		Port:     DefaultPort,
		Baud:     BaudRate,
		MaxRange: MaxRange,
		FadeTime: FadeTime,
		FPS:      TargetFPS,
	}
}

// RegisterFlags adds the settings flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Defaults()
	fs.Bool("demo", d.Demo, "Run with simulated sweep data (no hardware required)")
	fs.String("port", d.Port, "Serial port the rangefinder is attached to")
	fs.Int("baud", d.Baud, "Serial baud rate")
	fs.Float64("range", d.MaxRange, "Maximum radar range in "+RangeUnit)
	fs.Duration("fade", d.FadeTime, "How long a detection stays on screen")
	fs.Int("fps", d.FPS, "Target frames per second")
	fs.String("log-file", d.LogFile, "Write debug logs to this file")
	fs.String("config", d.Config, "Config file (default ./"+ConfigName+".yaml)")
}

// Load merges defaults, the config file, SWEEP_RADAR_* environment variables
// and any flags set on fs, then validates the result.
func Load(fs *pflag.FlagSet) (Settings, error) {
	v := viper.New()

	d := Defaults()
	v.SetDefault("demo", d.Demo)
	v.SetDefault("port", d.Port)
	v.SetDefault("baud", d.Baud)
	v.SetDefault("range", d.MaxRange)
	v.SetDefault("fade", d.FadeTime)
	v.SetDefault("fps", d.FPS)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return Settings{}, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/" + ConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate reports the first setting the radar cannot run with.
func (s Settings) Validate() error {
	if err := ValidateRange(s.MaxRange); err != nil {
		return err
	}
	if err := ValidateFade(s.FadeTime); err != nil {
		return err
	}
	if s.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, s.FPS)
	}
	if !s.Demo && s.Baud <= 0 {
		return fmt.Errorf("%w: baud rate must be positive, got %d", ErrInvalid, s.Baud)
	}
	return nil
}

// ValidateRange checks a max range value.
func ValidateRange(r float64) error {
	if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
		return fmt.Errorf("%w: range must be a positive number, got %v", ErrInvalid, r)
	}
	return nil
}

// ValidateFade checks a fade duration.
func ValidateFade(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: fade time must be positive, got %v", ErrInvalid, d)
	}
	return nil
}

// FrameInterval is the delay between two scheduled frames.
func (s Settings) FrameInterval() time.Duration {
	if s.FPS <= 0 {
		return time.Second / TargetFPS
	}
	return time.Second / time.Duration(s.FPS)
}
