/*
 * MIT License
 *
 * Copyright (c) 2026 ThreadServ Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package log

import (
	"io"
	golog "log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// DefaultLogger emits Info and above to stderr. It is the logger used
	// by systems and hubs that were not given one.
	DefaultLogger = New(InfoLevel, os.Stderr)

	// DebugLogger emits Debug and above to stdout. Useful during
	// development.
	DebugLogger = New(DebugLevel, os.Stdout)

	// DiscardLogger drops every message except Fatal and Panic.
	DiscardLogger Logger = discardLogger{}
)

// zapLogger implements Logger on top of go.uber.org/zap.
type zapLogger struct {
	logger  *zap.Logger
	sugar   *zap.SugaredLogger
	level   Level
	outputs []io.Writer
}

var _ Logger = (*zapLogger)(nil)

// New creates a zap-backed Logger writing to the given writers at the
// given level. With no writers it falls back to stderr.
func New(level Level, writers ...io.Writer) Logger {
	if len(writers) == 0 {
		writers = []io.Writer{os.Stderr}
	}

	syncers := make([]zapcore.WriteSyncer, 0, len(writers))
	for _, writer := range writers {
		syncers = append(syncers, zapcore.AddSync(writer))
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zap.CombineWriteSyncers(syncers...),
		toZapLevel(level),
	)

	logger := zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel))

	return &zapLogger{
		logger:  logger,
		sugar:   logger.Sugar(),
		level:   level,
		outputs: writers,
	}
}

// Debug starts a message with debug level.
func (l *zapLogger) Debug(v ...any) { l.sugar.Debug(v...) }

// Debugf starts a formatted message with debug level.
func (l *zapLogger) Debugf(format string, v ...any) { l.sugar.Debugf(format, v...) }

// Info starts a message with info level.
func (l *zapLogger) Info(v ...any) { l.sugar.Info(v...) }

// Infof starts a formatted message with info level.
func (l *zapLogger) Infof(format string, v ...any) { l.sugar.Infof(format, v...) }

// Warn starts a message with warn level.
func (l *zapLogger) Warn(v ...any) { l.sugar.Warn(v...) }

// Warnf starts a formatted message with warn level.
func (l *zapLogger) Warnf(format string, v ...any) { l.sugar.Warnf(format, v...) }

// Error starts a message with error level.
func (l *zapLogger) Error(v ...any) { l.sugar.Error(v...) }

// Errorf starts a formatted message with error level.
func (l *zapLogger) Errorf(format string, v ...any) { l.sugar.Errorf(format, v...) }

// Fatal logs then exits the program.
func (l *zapLogger) Fatal(v ...any) { l.sugar.Fatal(v...) }

// Fatalf logs then exits the program.
func (l *zapLogger) Fatalf(format string, v ...any) { l.sugar.Fatalf(format, v...) }

// Panic logs then panics.
func (l *zapLogger) Panic(v ...any) { l.sugar.Panic(v...) }

// Panicf logs then panics.
func (l *zapLogger) Panicf(format string, v ...any) { l.sugar.Panicf(format, v...) }

// LogLevel returns the level the logger was created with.
func (l *zapLogger) LogLevel() Level { return l.level }

// LogOutput returns the writers the logger emits to.
func (l *zapLogger) LogOutput() []io.Writer { return l.outputs }

// StdLogger returns a standard library logger bound to this logger.
func (l *zapLogger) StdLogger() *golog.Logger {
	return zap.NewStdLog(l.logger)
}

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case InfoLevel:
		return zapcore.InfoLevel
	case WarningLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	case FatalLevel:
		return zapcore.FatalLevel
	case PanicLevel:
		return zapcore.PanicLevel
	case DebugLevel:
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}
