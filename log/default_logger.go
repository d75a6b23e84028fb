package log

import (
	"log"
	"os"
)

// DefaultLogger writes to the standard library's log package and is used
// whenever a host does not register its own Logger.
type DefaultLogger struct {
	enabled bool
	std     *log.Logger
}

// NewDefaultLogger returns a DefaultLogger writing to stderr, disabled by
// default (matching the teacher's quiet-unless-asked stance).
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{std: log.New(os.Stderr, "[authcore] ", log.LstdFlags)}
}

func (l *DefaultLogger) EnableLog(enable bool) { l.enabled = enable }

func (l *DefaultLogger) IsEnabled() bool { return l.enabled }

func (l *DefaultLogger) LogModel(model [][]string) {
	if !l.enabled {
		return
	}
	l.std.Println("Model:")
	for _, line := range model {
		l.std.Println(line)
	}
}

func (l *DefaultLogger) LogEnforce(matcher string, request []interface{}, result bool, explains [][]string) {
	if !l.enabled {
		return
	}
	l.std.Printf("Enforce: matcher=%q request=%v result=%v explain=%v", matcher, request, result, explains)
}

func (l *DefaultLogger) LogPolicy(policy map[string][][]string) {
	if !l.enabled {
		return
	}
	l.std.Printf("Policy: %v", policy)
}

func (l *DefaultLogger) LogRole(roles []string) {
	if !l.enabled {
		return
	}
	for _, r := range roles {
		l.std.Println(r)
	}
}

func (l *DefaultLogger) LogError(err error, msg ...string) {
	if !l.enabled {
		return
	}
	l.std.Printf("Error: %v %v", msg, err)
}
