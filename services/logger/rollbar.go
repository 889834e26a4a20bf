package logsvc

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/trezcool/sessionbook/core"
)

// RequestIDKey is the extras key identifying the HTTP request an entry belongs to.
const RequestIDKey = "request_id"

type (
	RollbarLogger struct {
		std *log.Logger
	}

	// entry is one log call, split into what rollbar reports and what is printed.
	entry struct {
		msg       string
		err       error
		custom    map[string]interface{}
		requestID string
	}
)

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std}
}

// Enable turns reporting to rollbar on or off; messages are always printed.
func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// newEntry sorts args: the first error is reported as the item's error, maps are merged into the
// custom data (later keys win) and anything else is kept under "details".
func newEntry(msg string, args []interface{}) entry {
	e := entry{msg: msg, custom: make(map[string]interface{})}
	var details []string
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
		case error:
			if e.err == nil {
				e.err = v
			} else {
				details = append(details, v.Error())
			}
		case map[string]interface{}:
			for key, val := range v {
				e.custom[key] = val
			}
		default:
			details = append(details, fmt.Sprintf("%+v", v))
		}
	}
	if len(details) > 0 {
		e.custom["details"] = details
	}
	if id, ok := e.custom[RequestIDKey].(string); ok {
		e.requestID = id
	}
	return e
}

// rollbarArgs follows rollbar.Log's conventions: string message, error and extras map.
func (e entry) rollbarArgs() []interface{} {
	args := []interface{}{e.msg}
	if e.err != nil {
		args = append(args, e.err)
	}
	if len(e.custom) > 0 {
		args = append(args, e.custom)
	}
	return args
}

// line renders the entry as a single log line: [request id] msg: error key=value...
func (e entry) line() string {
	var sb strings.Builder
	if e.requestID != "" {
		sb.WriteString("[" + e.requestID + "] ")
	}
	sb.WriteString(e.msg)
	if e.err != nil {
		sb.WriteString(": " + e.err.Error())
	}

	keys := make([]string, 0, len(e.custom))
	for key := range e.custom {
		if key != RequestIDKey {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(&sb, " %s=%v", key, e.custom[key])
	}
	return sb.String()
}

func (l RollbarLogger) log(level string, msg string, args []interface{}) entry {
	e := newEntry(msg, args)
	rollbar.Log(level, e.rollbarArgs()...)
	l.std.Println(e.line())
	return e
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	l.log(rollbar.DEBUG, msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	l.log(rollbar.INFO, msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	l.log(rollbar.WARN, msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	e := l.log(rollbar.ERR, msg, args)
	if e.err != nil {
		l.std.Printf("%+v\n", e.err) // stack trace, when pkg/errors recorded one
	}
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.log(rollbar.CRIT, msg, args)
	rollbar.Wait()
	l.std.Fatal(msg)
}
