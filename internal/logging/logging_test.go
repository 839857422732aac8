package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func newTestLogger(verbose, debug bool) (Logger, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return Logger{Verbose: verbose, Debug: debug, Out: &out, Err: &errOut}, &out, &errOut
}

func TestLoggerLevels(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name        string
		verbose     bool
		debug       bool
		wantInfo    bool
		wantDebug   bool
		wantWarning bool
	}{
		{"quiet", false, false, false, false, false},
		{"verbose", true, false, true, false, true},
		{"debug", false, true, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, out, errOut := newTestLogger(tt.verbose, tt.debug)
			log.Infof("info %d", 1)
			log.Debugf("debug %d", 2)
			log.Warnf("warn %d", 3)

			if got := strings.Contains(out.String(), "[info] info 1"); got != tt.wantInfo {
				t.Errorf("info shown = %v, want %v (stdout: %q)", got, tt.wantInfo, out.String())
			}
			if got := strings.Contains(out.String(), "[debug] debug 2"); got != tt.wantDebug {
				t.Errorf("debug shown = %v, want %v (stdout: %q)", got, tt.wantDebug, out.String())
			}
			if got := strings.Contains(errOut.String(), "[warn] warn 3"); got != tt.wantWarning {
				t.Errorf("warn shown = %v, want %v (stderr: %q)", got, tt.wantWarning, errOut.String())
			}
		})
	}
}

func TestLoggerAlwaysShown(t *testing.T) {
	color.NoColor = true
	log, _, errOut := newTestLogger(false, false)

	log.WarnfAlways("careful")
	log.Errorf("broken %s", "pipe")

	if !strings.Contains(errOut.String(), "[warn] careful") {
		t.Errorf("expected WarnfAlways output, got %q", errOut.String())
	}
	if !strings.Contains(errOut.String(), "[error] broken pipe") {
		t.Errorf("expected Errorf output, got %q", errOut.String())
	}
}

func TestErrorfAndReturn(t *testing.T) {
	color.NoColor = true
	log, _, errOut := newTestLogger(false, false)

	err := log.ErrorfAndReturn("failed to read %s", ".env")
	if err == nil || err.Error() != "failed to read .env" {
		t.Fatalf("ErrorfAndReturn() = %v, want 'failed to read .env'", err)
	}
	if errOut.Len() != 0 {
		t.Errorf("expected no output without --debug, got %q", errOut.String())
	}

	log.Debug = true
	_ = log.ErrorfAndReturn("failed again")
	if !strings.Contains(errOut.String(), "[error] failed again") {
		t.Errorf("expected debug error output, got %q", errOut.String())
	}
}
