package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"testing"

	nberrors "github.com/YuminosukeSato/nbmetrics/pkg/errors"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestZerologLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelInfo)

	logger.Debug("hidden")
	logger.Info("shown", OperationKey, OperationTPRFPR, MatricesKey, 3)

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %s", len(lines), buf.String())
	}
	if lines[0]["message"] != "shown" {
		t.Errorf("message = %v", lines[0]["message"])
	}
	if lines[0][OperationKey] != OperationTPRFPR {
		t.Errorf("%s = %v", OperationKey, lines[0][OperationKey])
	}
	if lines[0][MatricesKey] != 3.0 {
		t.Errorf("%s = %v", MatricesKey, lines[0][MatricesKey])
	}

	if logger.Enabled(context.Background(), LevelDebug) {
		t.Error("debug should be disabled at info level")
	}
	if !logger.Enabled(context.Background(), LevelError) {
		t.Error("error should be enabled at info level")
	}
}

func TestZerologLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelDebug).With(ComponentKey, "metrics")
	logger.Debug("built", SamplesKey, 4)

	lines := decodeLines(t, &buf)
	if len(lines) != 1 || lines[0][ComponentKey] != "metrics" {
		t.Fatalf("context field missing: %s", buf.String())
	}
}

func TestZerologLoggerErrorStack(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelDebug)

	err := nberrors.NewDimensionError("ConfusionMatrix", 4, 3, 0)
	logger.Error("build failed", err, OperationKey, OperationConfusionMatrix)

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("got %d lines", len(lines))
	}
	if msg, _ := lines[0][ErrorKey].(string); !strings.Contains(msg, "dimension mismatch") {
		t.Errorf("error field = %v", lines[0][ErrorKey])
	}
	if st, _ := lines[0][StacktraceKey].(string); st == "" {
		t.Error("expected stack trace field")
	}
	if lines[0][OperationKey] != OperationConfusionMatrix {
		t.Errorf("%s = %v", OperationKey, lines[0][OperationKey])
	}
}

func TestSetupRoutesWarnings(t *testing.T) {
	var buf bytes.Buffer
	Setup(&buf, LevelWarn)
	defer func() {
		nberrors.SetZerologWarnFunc(nil)
		SetProvider(NewZerologProvider(&bytes.Buffer{}, LevelWarn))
	}()

	nberrors.Warn(nberrors.NewUndefinedMetricWarning("TPR", "TP+FN is zero", math.NaN()))

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("got %d lines: %s", len(lines), buf.String())
	}
	warning, ok := lines[0]["warning"].(map[string]interface{})
	if !ok {
		t.Fatalf("warning object missing: %s", buf.String())
	}
	if warning["metric"] != "TPR" || warning["type"] != "UndefinedMetricWarning" {
		t.Errorf("unexpected warning object: %v", warning)
	}
}

func TestProviderSetLevel(t *testing.T) {
	var buf bytes.Buffer
	p := NewZerologProvider(&buf, LevelError)
	p.GetLogger().Info("dropped")
	p.SetLevel(LevelInfo)
	p.GetLoggerWithName("display").Info("kept")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 || lines[0][ComponentKey] != "display" {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}

func TestTestLogger(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelInfo)

	testLogger.Debug("debug message")
	testLogger.Info("info message", "key1", "value1", "number", 42)
	testLogger.Error("error message", fmt.Errorf("boom"), ErrorTypeKey, "TypeError")

	if buffer.Len() == 0 {
		t.Fatal("Expected log output, got empty string")
	}
	if testLogger.ContainsMessage("debug message") {
		t.Error("debug message should be filtered")
	}
	if !testLogger.ContainsField("key1", "value1") {
		t.Error("Expected field key1=value1 not found")
	}
	if !testLogger.ContainsField("number", 42.0) {
		t.Error("Expected field number=42 not found")
	}
	if !testLogger.ContainsField(ErrorKey, "boom") {
		t.Error("Expected error field")
	}

	ctxLogger := testLogger.With(ComponentKey, "display")
	ctxLogger.Warn("warned")
	if !testLogger.ContainsField(ComponentKey, "display") {
		t.Error("context field should reach the shared buffer")
	}

	testLogger.Clear()
	entries, err := testLogger.GetLogEntries()
	if err != nil || len(entries) != 0 {
		t.Errorf("Clear() left %d entries (err=%v)", len(entries), err)
	}
}

func TestLevelString(t *testing.T) {
	cases := map[Level]string{LevelDebug: "DEBUG", LevelInfo: "INFO", LevelWarn: "WARN", LevelError: "ERROR", Level(99): "UNKNOWN"}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Errorf("Level(%d).String() = %q, want %q", level, got, want)
		}
	}
}

func TestConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, LevelInfo).With(ComponentKey, "example")

	logger.Debug("hidden")
	logger.Info("shown", OperationKey, OperationTPRFPR)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, OperationTPRFPR) || !strings.Contains(out, "example") {
		t.Errorf("console line missing content: %q", out)
	}
	if json.Valid([]byte(strings.TrimSpace(out))) {
		t.Errorf("console output should not be JSON: %q", out)
	}
}
