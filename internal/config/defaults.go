package config

const (
	defaultWorkspaceDir   = "~/.local/share/stitch/workspace"
	defaultLogDir         = "~/.local/share/stitch/logs"
	defaultFFmpegBinary   = "ffmpeg"
	defaultFFprobeBinary  = "ffprobe"
	defaultWorkers        = 2
	defaultProbeCachePath = "~/.cache/stitch/probe.db"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkspaceDir: defaultWorkspaceDir,
			LogDir:       defaultLogDir,
		},
		Tools: Tools{
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
		},
		Processing: Processing{
			Workers: defaultWorkers,
		},
		ProbeCache: ProbeCache{
			Enabled: true,
			Path:    defaultProbeCachePath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
