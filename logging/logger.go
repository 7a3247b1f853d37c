package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFileName = "fitclass-booking.log"

// New builds a logger writing to stdout and to a rotated file under path.
// An empty path disables the file sink.
func New(path string, debug bool) (*zap.Logger, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	if debug {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.CallerKey = "caller"
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	encoder := zapcore.NewJSONEncoder(encoderConfig)
	if debug {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level),
	}

	if path != "" {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, err
		}

		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(path, logFileName),
			MaxSize:    10, // MB
			MaxBackups: 7,
			MaxAge:     28, // days
			Compress:   true,
		})
		cores = append(cores, zapcore.NewCore(encoder, fileWriter, level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}
