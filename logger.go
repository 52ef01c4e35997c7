package kpro

import (
	"io"
	"log"
	"os"
)

// StdLogger is used to log error messages. It matches the signature of the
// log.Logger functions used here so that *log.Logger can be passed directly.
type StdLogger interface {
	Print(v ...interface{})
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// Logger is the instance of a StdLogger interface that the library prints to.
// Output is disabled (discarded) by default: set it to a *log.Logger (or any
// StdLogger) to see the library's own diagnostics, distinct from the
// per-connection tracing controlled by Config.Debug.
var Logger StdLogger = log.New(io.Discard, "[kpro] ", log.LstdFlags)

// PanicHandler is called for recovering from panics spawned internally by
// the library (e.g. in goroutines where a panic would otherwise crash the
// whole program silently). Set to nil (the default) to let panics propagate.
var PanicHandler func(interface{})

func init() {
	if os.Getenv("KPRO_DEBUG") != "" {
		Logger = log.New(os.Stderr, "[kpro] ", log.LstdFlags)
	}
}
