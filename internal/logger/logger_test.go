package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func initFile(t *testing.T, lvl string, maxMB int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.log")
	cfg := FileConfig{Path: path, MaxSizeMB: maxMB, MaxBackups: 2, MaxAgeDays: 1}
	if err := InitWithFileConfig(lvl, cfg, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	return path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	Sync()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	return string(content)
}

func TestLogRotation(t *testing.T) {
	// 1MB is the smallest size lumberjack accepts.
	logFile := initFile(t, "debug", 1)
	defer Sync()

	long := strings.Repeat("x", 200)
	for i := 0; i < 15000; i++ {
		Sugar.Infof("frame %d: %s", i, long)
	}
	Sync()

	files, err := os.ReadDir(filepath.Dir(logFile))
	if err != nil {
		t.Fatalf("failed to read log dir: %v", err)
	}

	rotated := 0
	for _, f := range files {
		name := f.Name()
		if name == "test.log" || !strings.HasSuffix(name, ".log") {
			continue
		}
		rotated++
		// test-YYYY-MM-DDTHH-MM-SS.SSS.log
		if !strings.HasPrefix(name, "test-20") {
			t.Errorf("rotated file %s doesn't have expected timestamp format", name)
		}
	}
	if rotated == 0 {
		t.Error("no rotated files found")
	}
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{"error", []string{"ERROR"}, []string{"WARN", "INFO", "DEBUG"}},
		{"warn", []string{"ERROR", "WARN"}, []string{"INFO", "DEBUG"}},
		{"info", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"debug", []string{"ERROR", "WARN", "INFO", "DEBUG"}, nil},
		{"bogus", []string{"INFO"}, []string{"DEBUG"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := initFile(t, tt.level, 10)

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")

			content := readLog(t, logFile)
			for _, exp := range tt.expected {
				if !strings.Contains(content, exp) {
					t.Errorf("expected %s in log output", exp)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(content, exc) {
					t.Errorf("unexpected %s in log output for level %s", exc, tt.level)
				}
			}
		})
	}
}

func TestSetLevelAtRuntime(t *testing.T) {
	logFile := initFile(t, "info", 10)

	Debug("hidden")
	SetLevel("debug")
	if Level() != zapcore.DebugLevel {
		t.Errorf("expected debug level, got %s", Level())
	}
	Debug("shown")

	content := readLog(t, logFile)
	if strings.Contains(content, "hidden") {
		t.Error("debug line logged before the level changed")
	}
	if !strings.Contains(content, "shown") {
		t.Error("debug line missing after the level changed")
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/test.log")
	want := FileConfig{Path: "/tmp/test.log", MaxSizeMB: 50, MaxBackups: 3, MaxAgeDays: 7, Compress: true}
	if cfg != want {
		t.Errorf("expected %+v, got %+v", want, cfg)
	}
}

func TestWarnOnce(t *testing.T) {
	logFile := initFile(t, "warn", 1)
	ResetWarnings()

	for i := 0; i < 5; i++ {
		WarnOnce("uniform:lightPos", "uniform not found")
	}
	WarnOnce("texture:wall.png", "texture missing")

	content := readLog(t, logFile)
	if n := strings.Count(content, "uniform not found"); n != 1 {
		t.Errorf("expected one uniform warning, got %d", n)
	}
	if n := strings.Count(content, "texture missing"); n != 1 {
		t.Errorf("expected one texture warning, got %d", n)
	}

	ResetWarnings()
	WarnOnce("texture:wall.png", "texture missing")
	if n := strings.Count(readLog(t, logFile), "texture missing"); n != 2 {
		t.Errorf("expected the warning again after reset, got %d", n)
	}
}

func TestInitWithoutOutputs(t *testing.T) {
	if err := InitWithFileConfig("info", FileConfig{}, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	// No cores configured: every call must be a silent no-op.
	Info("dropped")
	WarnOnce("dropped", "dropped")
	Sync()
}
