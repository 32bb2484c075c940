// Package config provides layered configuration and CLI options for cascaler.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// InputImageExtensions is the set of recognized image input extensions (case-insensitive).
var InputImageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".bmp": true,
	".tiff": true, ".tif": true, ".webp": true, ".ico": true,
}

// InputVideoExtensions is the set of recognized video input extensions (case-insensitive).
var InputVideoExtensions = map[string]bool{
	".mp4": true, ".avi": true, ".mov": true, ".mkv": true,
	".webm": true, ".wmv": true, ".flv": true, ".m4v": true,
}

// OutputVideoExtensions is the set of extensions a video output path may use.
var OutputVideoExtensions = map[string]bool{
	".mp4": true, ".mkv": true,
}

// FrameOutputFormats is the set of supported per-frame image output formats.
var FrameOutputFormats = map[string]bool{
	"png": true, "jpg": true, "bmp": true, "tiff": true,
}

// FFmpegSection configures native library resolution.
type FFmpegSection struct {
	LibraryPath         string `json:"LibraryPath"`
	EnableAutoDetection bool   `json:"EnableAutoDetection"`
}

// ProcessingSection configures default processing behavior.
type ProcessingSection struct {
	MaxImageThreads          int     `json:"MaxImageThreads"`
	MaxVideoThreads          int     `json:"MaxVideoThreads"`
	ProcessingTimeoutSeconds int     `json:"ProcessingTimeoutSeconds"`
	MinimumItemsForETA       int     `json:"MinimumItemsForETA"`
	DefaultScalePercent      float64 `json:"DefaultScalePercent"`
	DefaultFps               float64 `json:"DefaultFps"`
	DefaultVideoFrameFormat  string  `json:"DefaultVideoFrameFormat"`
	DefaultImageOutputFormat string  `json:"DefaultImageOutputFormat"`
	DefaultDeltaX            float64 `json:"DefaultDeltaX"`
	DefaultRigidity          int     `json:"DefaultRigidity"`
	DefaultScaleBack         bool    `json:"DefaultScaleBack"`
	DefaultVibrato           bool    `json:"DefaultVibrato"`
	EncodeCooldownSecs       int     `json:"EncodeCooldownSecs"`
}

// VideoEncodingSection configures the Video Encoder defaults.
type VideoEncodingSection struct {
	DefaultCRF              int    `json:"DefaultCRF"`
	DefaultPreset           string `json:"DefaultPreset"`
	DefaultPixelFormat      string `json:"DefaultPixelFormat"`
	DefaultCodec            string `json:"DefaultCodec"`
	KeyframeIntervalSeconds uint32 `json:"KeyframeIntervalSeconds"`
}

// OutputSection configures output naming and display.
type OutputSection struct {
	Suffix                string `json:"Suffix"`
	ProgressCharacter     string `json:"ProgressCharacter"`
	ShowEstimatedDuration bool   `json:"ShowEstimatedDuration"`
}

// Config is the full layered configuration: embedded defaults, then a
// user JSON file, then CLI flags (applied by the caller via
// Options.ApplyDefaults, which only fills fields the CLI left zero).
type Config struct {
	FFmpeg        FFmpegSection        `json:"FFmpeg"`
	Processing    ProcessingSection    `json:"Processing"`
	VideoEncoding VideoEncodingSection `json:"VideoEncoding"`
	Output        OutputSection        `json:"Output"`
}

// Default returns the embedded default configuration.
func Default() *Config {
	workers := runtime.NumCPU()
	return &Config{
		FFmpeg: FFmpegSection{
			EnableAutoDetection: true,
		},
		Processing: ProcessingSection{
			MaxImageThreads:          workers,
			MaxVideoThreads:          workers,
			ProcessingTimeoutSeconds: 30,
			MinimumItemsForETA:       3,
			DefaultScalePercent:      50,
			DefaultFps:               30,
			DefaultVideoFrameFormat:  "png",
			DefaultImageOutputFormat: "png",
			DefaultDeltaX:            0.5,
			DefaultRigidity:          0,
			DefaultScaleBack:         false,
			DefaultVibrato:           false,
			EncodeCooldownSecs:       0,
		},
		VideoEncoding: VideoEncodingSection{
			DefaultCRF:              23,
			DefaultPreset:           "medium",
			DefaultPixelFormat:      "yuv420p",
			DefaultCodec:            "h264",
			KeyframeIntervalSeconds: 2,
		},
		Output: OutputSection{
			Suffix:                "cas",
			ProgressCharacter:     "#",
			ShowEstimatedDuration: true,
		},
	}
}

// Validate checks the configuration for internally-consistent values.
func (c *Config) Validate() error {
	if c.Processing.MaxImageThreads < 1 {
		return fmt.Errorf("processing.MaxImageThreads must be at least 1, got %d", c.Processing.MaxImageThreads)
	}
	if c.Processing.MaxVideoThreads < 1 {
		return fmt.Errorf("processing.MaxVideoThreads must be at least 1, got %d", c.Processing.MaxVideoThreads)
	}
	if c.Processing.MinimumItemsForETA < 1 {
		return fmt.Errorf("processing.MinimumItemsForETA must be at least 1, got %d", c.Processing.MinimumItemsForETA)
	}
	if c.Processing.DefaultFps <= 0 {
		return fmt.Errorf("processing.DefaultFps must be greater than 0, got %g", c.Processing.DefaultFps)
	}
	if !FrameOutputFormats[c.Processing.DefaultImageOutputFormat] {
		return fmt.Errorf("processing.DefaultImageOutputFormat %q is not supported", c.Processing.DefaultImageOutputFormat)
	}
	if c.VideoEncoding.DefaultCRF < 0 || c.VideoEncoding.DefaultCRF > 51 {
		return fmt.Errorf("videoEncoding.DefaultCRF must be 0-51, got %d", c.VideoEncoding.DefaultCRF)
	}
	return nil
}

// UserDir returns the per-OS cascaler configuration directory:
// %APPDATA%\cascaler on Windows, $HOME/.config/cascaler elsewhere.
func UserDir() (string, error) {
	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", fmt.Errorf("APPDATA is not set")
		}
		return filepath.Join(appData, "cascaler"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "cascaler"), nil
}

// UserConfigPath returns the path to the user's appsettings.json.
func UserConfigPath() (string, error) {
	dir, err := UserDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "appsettings.json"), nil
}

// UserLogDir returns the path to the per-user log directory.
func UserLogDir() (string, error) {
	dir, err := UserDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs"), nil
}

// Load reads and merges the user config file over the embedded
// defaults. A missing file is not an error: Default() is returned
// unmodified, matching the embedded < user-file < command-line
// layering where the middle layer is simply absent.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as indented JSON to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
