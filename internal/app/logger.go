package app

import "github.com/heroiclabs/nakama-common/runtime"

// NopLogger discards everything. It stands in when no runtime logger is supplied.
type NopLogger struct{}

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
func (NopLogger) WithField(string, interface{}) runtime.Logger {
	return NopLogger{}
}
func (NopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return NopLogger{}
}
func (NopLogger) Fields() map[string]interface{} {
	return nil
}
