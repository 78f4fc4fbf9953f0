package debug

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// TimeHook stamps events with millisecond precision and no timezone
type TimeHook struct {
	Format string
}

func (t TimeHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	if t.Format == "" {
		e.Str("time", time.Now().Format("2006-01-02T15:04:05.0000Z"))
		return
	}
	e.Str("time", time.Now().Format(t.Format))
}

// CallerHook adds "pkg:file:line" of the logging call
type CallerHook struct {
	WithColor bool
	// Skip is the number of frames between the hook and the logging call
	Skip int
}

func (c CallerHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	skip := c.Skip
	if skip == 0 {
		skip = 4
	}
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return
	}

	funcd := runtime.FuncForPC(pc)
	if funcd == nil {
		return
	}

	pkg, _ := GetPackageAndFuncFromFuncName(funcd.Name())

	e.Str("caller", FormatCaller(pkg, file, line, c.WithColor))
}

// NewLogger builds the stderr logger used by the command line tool
func NewLogger(w io.Writer, verbose bool, colorize bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{
		Out:     w,
		NoColor: !colorize,
	}

	logger := zerolog.New(out).Level(level).Hook(TimeHook{Format: "15:04:05.000"})
	if verbose {
		logger = logger.Hook(CallerHook{WithColor: colorize})
	}
	return logger
}

func GetPackageAndFuncFromFuncName(pc string) (pkg, function string) {
	funcName := pc
	lastSlash := strings.LastIndexByte(funcName, '/')
	if lastSlash < 0 {
		lastSlash = 0
	}

	firstDot := strings.IndexByte(funcName[lastSlash:], '.') + lastSlash

	pkg = funcName[:firstDot]
	fname := funcName[firstDot+1:]

	if strings.Contains(pkg, ".(") {
		splt := strings.Split(pkg, ".(")
		pkg = splt[0]
		fname = "(" + splt[1] + "." + fname
	}

	return pkg, fname
}

func FormatCaller(pkg, path string, number int, colorize bool) string {
	p := FileNameOfPath(path)
	if colorize {
		p = color.New(color.Bold).Sprint(p)
		num := color.New(color.FgHiRed, color.Bold).Sprintf("%d", number)
		sep := color.New(color.Faint).Sprint(":")

		return fmt.Sprintf("%s%s%s%s%s", pkg, sep, p, sep, num)
	}

	return fmt.Sprintf("%s:%s:%d", pkg, p, number)
}

func FileNameOfPath(path string) string {
	tot := strings.Split(path, "/")
	if len(tot) > 1 {
		return tot[len(tot)-1]
	}

	return path
}
