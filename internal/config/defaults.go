package config

const (
	defaultDataDir              = "~/.local/share/xwordcodec"
	defaultLogDir               = "~/.local/share/xwordcodec/logs"
	defaultKeyStoreFile         = "keys.db"
	defaultSearchTimeoutSeconds = 120
	defaultKnownKeys            = 16
	defaultOutputDir            = "."
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultLogMaxSizeMB         = 10
	defaultLogMaxBackups        = 3
)

// DefaultSeedMarkers are the reversed openings of base64-encoded JSON ("ey"
// for `{"`, "ew" for `{` + newline) as they appear after the first chunk of a
// payload has been reversed.
var DefaultSeedMarkers = []string{"ye", "we"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	markers := make([]string, len(DefaultSeedMarkers))
	copy(markers, DefaultSeedMarkers)
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Decode: Decode{
			BruteForce:           true,
			SeedMarkers:          markers,
			SearchTimeoutSeconds: defaultSearchTimeoutSeconds,
			KnownKeys:            defaultKnownKeys,
		},
		KeyStore: KeyStore{
			Enabled: true,
		},
		Output: Output{
			CleanText: true,
			Dir:       defaultOutputDir,
		},
		Logging: Logging{
			Format:     defaultLogFormat,
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
		},
	}
}
