package config

const (
	defaultSourceDir           = "~/Downloads"
	defaultLogDir              = "~/.local/share/sortd/logs"
	defaultHistoryFileName     = ".sortd_history.json"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultSettleDelaySeconds  = 2
	defaultPollIntervalSeconds = 1
	defaultSamplePauseMillis   = 500
)

// Default returns a Config populated with repository defaults. Sources stays
// empty so decoded [[sources]] tables replace rather than extend the default;
// normalize fills in the downloads folder when the file declares none. The
// target directory and history file are likewise derived during normalize.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Organize: Organize{
			DateFolders: true,
		},
		Watch: Watch{
			SettleDelaySeconds:  defaultSettleDelaySeconds,
			PollIntervalSeconds: defaultPollIntervalSeconds,
			SamplePauseMillis:   defaultSamplePauseMillis,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
