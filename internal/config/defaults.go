package config

const (
	defaultLogDir           = "~/.local/share/vidslim/logs"
	defaultStagingDir       = "~/.local/share/vidslim/staging"
	defaultFFmpegBinary     = "ffmpeg"
	defaultFFprobeBinary    = "ffprobe"
	defaultAudioBitrate     = "128k"
	defaultOutputSuffix     = "_x264"
	defaultOutputContainer  = "mp4"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogRetentionDays = 30
	defaultProfileName      = "standard"
)

// Default returns a Config populated with repository defaults, including the
// built-in compression profiles. User configuration merges over these.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:     defaultLogDir,
			StagingDir: defaultStagingDir,
		},
		Encoder: Encoder{
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
			AudioBitrate:  defaultAudioBitrate,
		},
		Output: Output{
			Suffix:    defaultOutputSuffix,
			Container: defaultOutputContainer,
			Overwrite: true,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
		DefaultProfile: defaultProfileName,
		Profiles:       DefaultProfiles(),
	}
}

// DefaultProfiles returns the built-in compression profiles.
func DefaultProfiles() map[string]Profile {
	return map[string]Profile{
		"standard": {
			Quality:          23.5,
			Preset:           "medium",
			KeyframeInterval: 600,
			RefFrames:        4,
			BFrames:          3,
		},
		"high": {
			Quality:          21,
			Preset:           "slow",
			KeyframeInterval: 600,
			RefFrames:        6,
			BFrames:          5,
		},
		"fast": {
			Quality:          26,
			Preset:           "veryfast",
			KeyframeInterval: 300,
			RefFrames:        2,
			BFrames:          2,
		},
	}
}
