package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupLogDir(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	SetDir(tmp)
	t.Cleanup(func() { Close(); SetDir("") })
	return tmp
}

func TestResolveDirFlag(t *testing.T) {
	got, err := ResolveDir("/tmp/mylog")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/tmp/mylog" {
		t.Errorf("got %q, want /tmp/mylog", got)
	}
}

func TestResolveDirFlagRelative(t *testing.T) {
	got, err := ResolveDir("logs")
	if err != nil {
		t.Fatal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(wd, "logs")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveDirEnv(t *testing.T) {
	t.Setenv("WRITING_ASSISTANT_LOG_PATH", "/tmp/wap-env-log")
	got, err := ResolveDir("")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/tmp/wap-env-log" {
		t.Errorf("got %q, want /tmp/wap-env-log", got)
	}
}

func TestResolveDirDefault(t *testing.T) {
	t.Setenv("WRITING_ASSISTANT_LOG_PATH", "")
	got, err := ResolveDir("")
	if err != nil {
		t.Fatal(err)
	}
	if got == "" {
		t.Error("expected non-empty default directory")
	}
}

func TestInitCreatesFile(t *testing.T) {
	tmp := setupLogDir(t)

	if err := Init(false); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(tmp, "app_log.txt")); err != nil {
		t.Errorf("app_log.txt not created: %v", err)
	}
}

func TestForTagsComponent(t *testing.T) {
	tmp := setupLogDir(t)

	if err := Init(false); err != nil {
		t.Fatal(err)
	}

	logger := For("window")
	logger.Info().Msg("window shown")
	Close()

	data, err := os.ReadFile(filepath.Join(tmp, "app_log.txt"))
	if err != nil {
		t.Fatal(err)
	}
	line := string(data)
	if !strings.Contains(line, "window shown") {
		t.Errorf("app_log.txt missing message, got: %q", line)
	}
	if !strings.Contains(line, "comp=window") {
		t.Errorf("app_log.txt missing component tag, got: %q", line)
	}
}

func TestForBeforeInitIsNop(t *testing.T) {
	SetDir("")
	logger := For("tray")
	// Must not panic or write anywhere.
	logger.Error().Msg("dropped")
}

func TestDebugLevel(t *testing.T) {
	tmp := setupLogDir(t)

	if err := Init(false); err != nil {
		t.Fatal(err)
	}
	logger := For("hotkey")
	logger.Debug().Msg("suppressed at info level")
	Close()

	data, err := os.ReadFile(filepath.Join(tmp, "app_log.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "suppressed at info level") {
		t.Error("debug event written with debug disabled")
	}
}

func TestCloseIdempotent(t *testing.T) {
	setupLogDir(t)

	if err := Init(false); err != nil {
		t.Fatal(err)
	}
	Close()
	Close() // should not panic
}
