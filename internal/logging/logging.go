package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the global logrus instance shared across the service.
var Logger = logrus.New()

var once sync.Once

// Init configures the global logger with rotation. Output goes to both
// stdout and the rotated file so container logs stay usable.
func Init(logFile string) {
	once.Do(func() {
		if dir := filepath.Dir(logFile); dir != "." {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				logrus.Fatalf("failed to create log directory %s: %v", dir, err)
			}
		}

		rotator := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}

		Logger.SetOutput(io.MultiWriter(os.Stdout, rotator))
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
		Logger.SetLevel(logrus.InfoLevel)
	})
}
