package constant

// Debug log file, written only with --debug since the terminal owns stdout
const (
	LogDir      = "logs"
	LogFileName = "simon.log"
	LogFilePath = LogDir + "/" + LogFileName

	// MaxLogSize triggers rotation of the previous session's log on startup
	MaxLogSize = 10 * 1024 * 1024
)
