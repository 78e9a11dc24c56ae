package config

const (
	DefaultLogLevel   = "info"
	DefaultOutput     = "stdout"
	DefaultTargetKind = "console"
)

// DefaultRequest is the request sent when none is given on the command line.
const DefaultRequest = "Home"
