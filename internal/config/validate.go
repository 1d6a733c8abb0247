package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var x264Presets = map[string]struct{}{
	"ultrafast": {},
	"superfast": {},
	"veryfast":  {},
	"faster":    {},
	"fast":      {},
	"medium":    {},
	"slow":      {},
	"slower":    {},
	"veryslow":  {},
	"placebo":   {},
}

var validContainers = map[string]struct{}{
	"mp4": {},
	"mkv": {},
	"mov": {},
}

var bitratePattern = regexp.MustCompile(`^[0-9]+[km]?$`)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateEncoder(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateProfiles(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	if strings.TrimSpace(c.Paths.StagingDir) == "" {
		return errors.New("paths.staging_dir must be set")
	}
	return nil
}

func (c *Config) validateEncoder() error {
	if strings.TrimSpace(c.Encoder.FFmpegBinary) == "" {
		return errors.New("encoder.ffmpeg_binary must be set")
	}
	if strings.TrimSpace(c.Encoder.FFprobeBinary) == "" {
		return errors.New("encoder.ffprobe_binary must be set")
	}
	if !bitratePattern.MatchString(c.Encoder.AudioBitrate) {
		return fmt.Errorf("encoder.audio_bitrate %q is not a valid bitrate (e.g. 128k)", c.Encoder.AudioBitrate)
	}
	if c.Encoder.ProcessTimeout < 0 {
		return errors.New("encoder.process_timeout must be >= 0 (seconds)")
	}
	return nil
}

func (c *Config) validateOutput() error {
	if strings.TrimSpace(c.Output.Suffix) == "" {
		return errors.New("output.suffix must be set")
	}
	if strings.ContainsAny(c.Output.Suffix, `/\`) {
		return fmt.Errorf("output.suffix %q must not contain path separators", c.Output.Suffix)
	}
	if _, ok := validContainers[c.Output.Container]; !ok {
		return fmt.Errorf("output.container %q is not supported (mp4, mkv, mov)", c.Output.Container)
	}
	return nil
}

func (c *Config) validateProfiles() error {
	if len(c.Profiles) == 0 {
		return errors.New("at least one profile must be configured")
	}
	for name, profile := range c.Profiles {
		if strings.TrimSpace(name) == "" {
			return errors.New("profile names must not be empty")
		}
		if err := profile.Validate(); err != nil {
			return fmt.Errorf("profiles.%s: %w", name, err)
		}
	}
	if _, ok := c.Profiles[c.DefaultProfile]; !ok {
		return fmt.Errorf("default_profile %q does not name a configured profile", c.DefaultProfile)
	}
	return nil
}

// Validate checks a single profile's encoder parameters.
func (p Profile) Validate() error {
	if p.Quality < 0 || p.Quality > 51 {
		return fmt.Errorf("quality %.1f out of range (0-51)", p.Quality)
	}
	if _, ok := x264Presets[p.Preset]; !ok {
		return fmt.Errorf("preset %q is not a known x264 preset", p.Preset)
	}
	if p.KeyframeInterval <= 0 {
		return errors.New("keyframe_interval must be positive")
	}
	if p.RefFrames <= 0 {
		return errors.New("ref_frames must be positive")
	}
	if p.BFrames < 0 {
		return errors.New("b_frames must be >= 0")
	}
	return nil
}
