package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/regkit/pkg/errors"
)

func TestToLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ToLogLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ToLogLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ToLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSetupLoggerAddsStacktrace(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	if err := SetupLogger(&buf, "info", "json"); err != nil {
		t.Fatalf("SetupLogger: %v", err)
	}

	GetLogger().Error("fit failed", ErrAttrKey, errors.NewFitError("LinearRegressor", errors.ErrSingularMatrix))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["msg"] != "fit failed" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if _, ok := entry[StacktraceAttrKey]; !ok {
		t.Errorf("expected %q attribute, got %v", StacktraceAttrKey, entry)
	}
}

func TestSetupLoggerRejectsUnknownFormat(t *testing.T) {
	if err := SetupLogger(&bytes.Buffer{}, "info", "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestSlogLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))

	l.Info("dropped")
	l.With(ModelNameKey, "LogisticRegressor").Warn("kept", AUCKey, 0.81)

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Error("info record should be filtered at warn level")
	}
	if !strings.Contains(out, "model.name=LogisticRegressor") || !strings.Contains(out, "metrics.auc=0.81") {
		t.Errorf("unexpected output: %s", out)
	}
	if l.Enabled(context.Background(), LevelDebug) {
		t.Error("debug should not be enabled")
	}
}

func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLogger(zerolog.New(&buf).Level(zerolog.InfoLevel))

	l.Debug("hidden")
	l.With(ModelNameKey, "LinearRegressor").Info("model fitted", SamplesKey, 40, AdjR2Key, 0.9)

	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug record should be filtered")
	}
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry[ModelNameKey] != "LinearRegressor" {
		t.Errorf("model.name = %v", entry[ModelNameKey])
	}
	if entry[SamplesKey] != float64(40) {
		t.Errorf("data.samples = %v", entry[SamplesKey])
	}
	if !l.Enabled(context.Background(), LevelWarn) || l.Enabled(context.Background(), LevelDebug) {
		t.Error("Enabled does not follow the zerolog level")
	}
}

func TestEnableZerologWarnings(t *testing.T) {
	var buf bytes.Buffer
	EnableZerologWarnings(zerolog.New(&buf))
	defer errors.SetZerologWarnFunc(nil)

	errors.Warn(errors.NewConvergenceWarning("Newton", 35, "iteration limit"))

	out := buf.String()
	if !strings.Contains(out, `"type":"ConvergenceWarning"`) || !strings.Contains(out, `"iterations":35`) {
		t.Errorf("unexpected warning output: %s", out)
	}
}

func TestTestLogger(t *testing.T) {
	logger, _ := NewTestLogger(LevelInfo)

	logger.Debug("not captured")
	logger.With(OperationKey, OperationROC).Info("roc computed", AUCKey, 0.75, ErrAttrKey, errors.New("boom"))

	if logger.ContainsMessage("not captured") {
		t.Error("debug message should not be captured")
	}
	if !logger.ContainsField(OperationKey, OperationROC) {
		t.Error("expected operation field")
	}
	if !logger.ContainsField(AUCKey, 0.75) {
		t.Error("expected auc field")
	}
	if !logger.ContainsField(ErrAttrKey, "boom") {
		t.Error("errors should be stored as their message")
	}

	entries, err := logger.GetLogEntries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0]["level"] != "INFO" {
		t.Errorf("unexpected entries: %v", entries)
	}

	logger.Clear()
	if logger.ContainsMessage("roc computed") {
		t.Error("Clear should reset captured output")
	}
}

func TestLevelString(t *testing.T) {
	tests := map[Level]string{
		LevelDebug: "DEBUG",
		LevelInfo:  "INFO",
		LevelWarn:  "WARN",
		LevelError: "ERROR",
		Level(2):   "UNKNOWN",
	}
	for lvl, want := range tests {
		if got := lvl.String(); got != want {
			t.Errorf("Level(%d).String() = %q, want %q", lvl, got, want)
		}
	}
}
