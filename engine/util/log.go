package util

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

var GLOBAL_LOG_LEVEL = LogLevelInfo
var GLOBAL_LOG_CATEGORIES = LogFont | LogText | LogSystem | LogOpenGL | LogIO | LogTextures

type LogLevel int

const (
	LogLevelError LogLevel = 1 << iota
	LogLevelWarning
	LogLevelInfo
	LogLevelDebug
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelError:
		return "ERROR"
	case LogLevelWarning:
		return "WARN"
	case LogLevelInfo:
		return "INFO"
	case LogLevelDebug:
		return "DEBUG"
	}
	return "UNKNOWN"
}

// ParseLogLevel maps "error", "warn", "info" or "debug" to a LogLevel.
func ParseLogLevel(name string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "error":
		return LogLevelError, nil
	case "warn", "warning":
		return LogLevelWarning, nil
	case "info":
		return LogLevelInfo, nil
	case "debug":
		return LogLevelDebug, nil
	}
	return LogLevelInfo, errors.Errorf("unknown log level %q", name)
}

type LogCategory int

const (
	LogFont LogCategory = 1 << iota
	LogText
	LogSystem
	LogOpenGL
	LogIO
	LogTextures
)

func (c LogCategory) String() string {
	switch c {
	case LogFont:
		return "font"
	case LogText:
		return "text"
	case LogSystem:
		return "system"
	case LogOpenGL:
		return "gl"
	case LogIO:
		return "io"
	case LogTextures:
		return "texture"
	}
	return "misc"
}

var logOutput io.Writer = os.Stdout

// SetLogOutput redirects all log lines to w and returns a func restoring the previous writer.
func SetLogOutput(w io.Writer) func() {
	previous := logOutput
	logOutput = w
	return func() {
		logOutput = previous
	}
}

func log(cat LogCategory, lvl LogLevel, txt string) {
	if lvl > GLOBAL_LOG_LEVEL {
		return
	}
	if GLOBAL_LOG_CATEGORIES&cat == 0 {
		return
	}
	fmt.Fprintf(logOutput, "%-5s | %s: %s\n", lvl, cat, txt)
}

func LogFontInfo(txt string) {
	log(LogFont, LogLevelInfo, txt)
}

func LogFontDebug(txt string) {
	log(LogFont, LogLevelDebug, txt)
}

func LogFontWarning(txt string) {
	log(LogFont, LogLevelWarning, txt)
}

func LogFontError(txt string) {
	log(LogFont, LogLevelError, txt)
}

func LogTextWarning(txt string) {
	log(LogText, LogLevelWarning, txt)
}

func LogTextError(txt string) {
	log(LogText, LogLevelError, txt)
}

func LogSystemInfo(txt string) {
	log(LogSystem, LogLevelInfo, txt)
}

func LogSystemError(txt string) {
	log(LogSystem, LogLevelError, txt)
}

func LogIOError(txt string) {
	log(LogIO, LogLevelError, txt)
}

func LogTextureDebug(txt string) {
	log(LogTextures, LogLevelDebug, txt)
}

func LogGlInfo(txt string) {
	log(LogOpenGL, LogLevelInfo, txt)
}

func LogGlDebug(txt string) {
	log(LogOpenGL, LogLevelDebug, txt)
}

func LogGlError(txt string) {
	log(LogOpenGL, LogLevelError, txt)
}

func LogGlWarning(txt string) {
	log(LogOpenGL, LogLevelWarning, txt)
}
