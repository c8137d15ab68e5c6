package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file (.yaml or .toml)")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagEncoding = flag.String("encoding", "", "Text encoding of mesh files (e.g. utf-8, euc-kr)")
	flagLogFile  = flag.String("log-file", "", "Also write logs to this file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments remaining after the global flags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagEncoding != "" {
		cfg.Loader.Encoding = *flagEncoding
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
