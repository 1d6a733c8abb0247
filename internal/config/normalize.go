package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeEncoder()
	c.normalizeOutput()
	c.normalizeProfiles()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StagingDir) == "" {
		c.Paths.StagingDir = defaultStagingDir
	}
	if c.Paths.StagingDir, err = expandPath(c.Paths.StagingDir); err != nil {
		return fmt.Errorf("paths.staging_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeEncoder() {
	c.Encoder.FFmpegBinary = strings.TrimSpace(c.Encoder.FFmpegBinary)
	if c.Encoder.FFmpegBinary == "" {
		if value, ok := os.LookupEnv("VIDSLIM_FFMPEG"); ok {
			c.Encoder.FFmpegBinary = strings.TrimSpace(value)
		}
	}
	if c.Encoder.FFmpegBinary == "" {
		c.Encoder.FFmpegBinary = defaultFFmpegBinary
	}
	c.Encoder.FFprobeBinary = strings.TrimSpace(c.Encoder.FFprobeBinary)
	if c.Encoder.FFprobeBinary == "" {
		if value, ok := os.LookupEnv("VIDSLIM_FFPROBE"); ok {
			c.Encoder.FFprobeBinary = strings.TrimSpace(value)
		}
	}
	if c.Encoder.FFprobeBinary == "" {
		c.Encoder.FFprobeBinary = defaultFFprobeBinary
	}
	c.Encoder.AudioBitrate = strings.ToLower(strings.TrimSpace(c.Encoder.AudioBitrate))
	if c.Encoder.AudioBitrate == "" {
		c.Encoder.AudioBitrate = defaultAudioBitrate
	}
	if c.Encoder.ProcessTimeout < 0 {
		c.Encoder.ProcessTimeout = 0
	}
}

func (c *Config) normalizeOutput() {
	c.Output.Suffix = strings.TrimSpace(c.Output.Suffix)
	if c.Output.Suffix == "" {
		c.Output.Suffix = defaultOutputSuffix
	}
	c.Output.Container = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(c.Output.Container, ".")))
	if c.Output.Container == "" {
		c.Output.Container = defaultOutputContainer
	}
}

func (c *Config) normalizeProfiles() {
	if len(c.Profiles) == 0 {
		c.Profiles = DefaultProfiles()
	}
	for name, profile := range c.Profiles {
		profile.Preset = strings.ToLower(strings.TrimSpace(profile.Preset))
		c.Profiles[name] = profile
	}
	c.DefaultProfile = strings.TrimSpace(c.DefaultProfile)
	if c.DefaultProfile == "" {
		c.DefaultProfile = defaultProfileName
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
