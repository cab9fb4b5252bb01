// Package logger prints leveled, colorized log lines for the server and CLI.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	cDbg  = color.New(color.FgMagenta).SprintFunc()
	cInf  = color.New(color.FgCyan, color.Bold).SprintFunc()
	cWarn = color.New(color.FgYellow, color.Bold).SprintFunc()
	cErr  = color.New(color.FgRed, color.Bold).SprintFunc()
	cSucc = color.New(color.FgGreen, color.Bold).SprintFunc()
	cFatl = color.New(color.BgRed, color.FgWhite, color.Bold).SprintFunc()
	cTime = color.New(color.FgHiBlack).SprintFunc()
)

var (
	mu       sync.Mutex
	out      io.Writer = os.Stdout
	errOut   io.Writer = os.Stderr
	minLevel           = LevelInfo
)

func init() {
	log.SetFlags(0)
}

// SetOutput redirects both the regular and the error stream. Tests use it to
// silence or capture output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	errOut = w
}

// SetLevel accepts "debug", "info", "warn" or "error". Unknown values fall
// back to info.
func SetLevel(level string) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = ParseLevel(level)
}

// IsDebug reports whether debug lines are currently printed.
func IsDebug() bool {
	mu.Lock()
	defer mu.Unlock()
	return minLevel <= LevelDebug
}

func ParseLevel(level string) Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func timeStamp() string {
	return cTime(time.Now().Format("2006-01-02 15:04"))
}

func write(level Level, toErr bool, tag string, format string, v ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if level < minLevel {
		return
	}
	w := out
	if toErr {
		w = errOut
	}
	fmt.Fprintf(w, "%s %s %s\n", timeStamp(), tag, fmt.Sprintf(format, v...))
}

func LogDebug(format string, v ...interface{}) {
	write(LevelDebug, false, cDbg("[DBG]"), format, v...)
}

func LogInfo(format string, v ...interface{}) {
	write(LevelInfo, false, cInf("[INFO]"), format, v...)
}

func LogSuccess(format string, v ...interface{}) {
	write(LevelInfo, false, cSucc("[OK]"), format, v...)
}

func LogWarn(format string, v ...interface{}) {
	write(LevelWarn, false, cWarn("[WARN]"), format, v...)
}

func LogError(format string, v ...interface{}) {
	write(LevelError, true, cErr("[ERR]"), format, v...)
}

// LogFatal always prints, regardless of level, then exits with status 1.
func LogFatal(format string, v ...interface{}) {
	write(LevelError+1, true, cFatl("[FATAL]"), format, v...)
	os.Exit(1)
}

func LogServerStart(port int, baseURL string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "   %s  %s\n", cSucc("⚡ Leaderboard is live"), cTime("waiting for entries..."))
	fmt.Fprintf(out, "   %s  %s\n", cInf("➜ Local:"), fmt.Sprintf("http://localhost:%d", port))
	fmt.Fprintf(out, "   %s  %s\n", cInf("➜ Public:"), color.New(color.FgHiBlue, color.Underline).Sprint(baseURL))
	fmt.Fprintln(out)
}
