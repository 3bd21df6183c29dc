// Copyright 2025 The casaflow Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cflog

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var defaultLogger Logger = newZapLogger(os.Stderr, LevelInfo)

// SetOutput sets the output of the default logger. By default, it is stderr.
func SetOutput(w io.Writer) {
	defaultLogger.SetOutput(w)
}

// SetLevel sets the level of logs below which logs will not be output.
// The default log level is LevelInfo.
// Note that this method is not concurrent-safe.
func SetLevel(lv Level) {
	defaultLogger.SetLevel(lv)
}

// DefaultLogger returns the default logger used by the package-level functions.
func DefaultLogger() Logger {
	return defaultLogger
}

// SetLogger sets the default logger.
// Note that this method is not concurrent-safe and must not be called
// after the use of DefaultLogger and global functions in this package.
func SetLogger(v Logger) {
	defaultLogger = v
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}

type zapLogger struct {
	logger *zap.SugaredLogger
	level  zap.AtomicLevel
	out    zapcore.WriteSyncer
}

func newZapLogger(w io.Writer, lv Level) *zapLogger {
	l := &zapLogger{
		level: zap.NewAtomicLevelAt(lv.toZapLevel()),
		out:   zapcore.AddSync(w),
	}
	l.rebuild()
	return l
}

func (l *zapLogger) rebuild() {
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), l.out, l.level)
	l.logger = zap.New(core).Sugar()
}

func (l *zapLogger) SetLevel(lv Level) {
	l.level.SetLevel(lv.toZapLevel())
}

func (l *zapLogger) SetOutput(w io.Writer) {
	l.out = zapcore.AddSync(w)
	l.rebuild()
}

func (l *zapLogger) Debugf(format string, v ...any) { l.logger.Debugf(format, v...) }
func (l *zapLogger) Infof(format string, v ...any)  { l.logger.Infof(format, v...) }
func (l *zapLogger) Warnf(format string, v ...any)  { l.logger.Warnf(format, v...) }
func (l *zapLogger) Errorf(format string, v ...any) { l.logger.Errorf(format, v...) }
func (l *zapLogger) Fatalf(format string, v ...any) { l.logger.Fatalf(format, v...) }

func (l *zapLogger) Debug(v ...any) { l.logger.Debug(v...) }
func (l *zapLogger) Info(v ...any)  { l.logger.Info(v...) }
func (l *zapLogger) Warn(v ...any)  { l.logger.Warn(v...) }
func (l *zapLogger) Error(v ...any) { l.logger.Error(v...) }
func (l *zapLogger) Fatal(v ...any) { l.logger.Fatal(v...) }

// Fatal calls the default logger's Fatal method and then os.Exit(1).
func Fatal(v ...any) {
	defaultLogger.Fatal(v...)
}

// Error calls the default logger's Error method.
func Error(v ...any) {
	defaultLogger.Error(v...)
}

// Warn calls the default logger's Warn method.
func Warn(v ...any) {
	defaultLogger.Warn(v...)
}

// Info calls the default logger's Info method.
func Info(v ...any) {
	defaultLogger.Info(v...)
}

// Debug calls the default logger's Debug method.
func Debug(v ...any) {
	defaultLogger.Debug(v...)
}

// Fatalf calls the default logger's Fatalf method and then os.Exit(1).
func Fatalf(format string, v ...any) {
	defaultLogger.Fatalf(format, v...)
}

// Errorf calls the default logger's Errorf method.
func Errorf(format string, v ...any) {
	defaultLogger.Errorf(format, v...)
}

// Warnf calls the default logger's Warnf method.
func Warnf(format string, v ...any) {
	defaultLogger.Warnf(format, v...)
}

// Infof calls the default logger's Infof method.
func Infof(format string, v ...any) {
	defaultLogger.Infof(format, v...)
}

// Debugf calls the default logger's Debugf method.
func Debugf(format string, v ...any) {
	defaultLogger.Debugf(format, v...)
}
