package main

import (
	"fmt"
	"log"
)

var debug bool

func setDebug(enable bool) {
	debug = enable
	if debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

// Debug will conditionally log a debug message
func Debug(args ...interface{}) {
	if debug {
		_ = log.Output(2, "DEBUG: "+fmt.Sprint(args...))
	}
}

// Debugf will conditionally log a formatted debug message
func Debugf(format string, args ...interface{}) {
	if debug {
		_ = log.Output(2, "DEBUG: "+fmt.Sprintf(format, args...))
	}
}
