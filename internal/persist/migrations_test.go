package persist

import (
	"io/fs"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestEmbeddedMigrationsPresent(t *testing.T) {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		t.Fatal(err)
	}
	if len(names) == 0 || names[0] != "migrations/00001_event_log.sql" {
		t.Fatalf("unexpected embedded migrations %v", names)
	}
}

func TestGooseLoggerWritesDebugLines(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := gooseLogger{log: zap.New(core)}
	l.Printf("OK   %s (%d ms)\n", "00001_event_log.sql", 3)
	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	if entries[0].Level != zapcore.DebugLevel || entries[0].Message != "OK   00001_event_log.sql (3 ms)" {
		t.Fatalf("unexpected entry %+v", entries[0])
	}
}
