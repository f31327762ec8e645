package config

import "time"

var Network string

var (
	NodeURL    string
	Origin     string
	To         string
	Data       string
	Timeout    time.Duration
	NoCache    bool
	CachePath  string
	JSONOutput bool
	NoColor    bool

	LogLevel string
	LogFile  string
	Debug    bool
)
