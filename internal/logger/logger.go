package logger

// Logger is the logging surface used across the application. Components
// receive it by injection so the GUI, CLI and tests can supply different
// sinks.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warning(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}

// Nop discards everything. Used as a default where no logger was injected.
type Nop struct{}

func (Nop) Debug(string, map[string]interface{})        {}
func (Nop) Info(string, map[string]interface{})         {}
func (Nop) Warning(string, map[string]interface{})      {}
func (Nop) Error(string, error, map[string]interface{}) {}
