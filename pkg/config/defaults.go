package config

// Timeline defaults.
const (
	DefaultTimezone    = "Local"
	DefaultDateLayout  = "Mon, Jan 2 2006"
	DefaultAxisLayout  = "Jan 2"
	DefaultHistoryDays = 0
)

// Render defaults.
const (
	DefaultTheme     = "light"
	DefaultOutputDir = "."
	DefaultWidth     = "100%"
	DefaultHeight    = "500px"
	DefaultEphemeral = false
)

// Logging defaults.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Observability defaults.
const (
	DefaultOTLPEndpoint    = ""
	DefaultOTLPInsecure    = false
	DefaultSampleRatio     = 1.0
	DefaultDiagnosticsAddr = ""
)
