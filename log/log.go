package log

import (
	"io/ioutil"
	stdlog "log"
	"os"
)

const (
	TraceEnvVar = "SKETCHBIN_TRACE"
)

var (
	Trace   *stdlog.Logger
	Info    *stdlog.Logger
	Warning *stdlog.Logger
	Error   *stdlog.Logger
)

func init() {
	InitLog()
}

// InitLog sets up the package loggers. Trace output is discarded
// unless SKETCHBIN_TRACE is set to 1.
func InitLog() {
	traceOut := ioutil.Discard
	if os.Getenv(TraceEnvVar) == "1" {
		traceOut = os.Stdout
	}

	Trace = stdlog.New(traceOut, "TRACE: ", stdlog.Ldate|stdlog.Ltime|stdlog.Lshortfile)
	Info = stdlog.New(os.Stdout, "", 0)
	Warning = stdlog.New(os.Stdout, "WARNING: ", 0)
	Error = stdlog.New(os.Stderr, "ERROR: ", 0)
}
