package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetupLoggerLevel(t *testing.T) {
	logger := SetupLogger("debug")
	if logger == nil || logger.Component() != "app" {
		t.Fatalf("unexpected logger %+v", logger)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("EXPENSETRACKER_TEST_VAR=from-dotenv\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("EXPENSETRACKER_TEST_VAR", "")
	os.Unsetenv("EXPENSETRACKER_TEST_VAR")

	LoadEnvFile()
	if got := os.Getenv("EXPENSETRACKER_TEST_VAR"); got != "from-dotenv" {
		t.Fatalf("expected value from .env, got %q", got)
	}
}

func TestGracefulShutdownCancel(t *testing.T) {
	ctx, cancel := GracefulShutdown(SetupLogger("error"))
	cancel()
	<-ctx.Done()
}
