package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		want    Level
		wantErr bool
	}{
		{name: "silent", want: Silent},
		{name: "error", want: Error},
		{name: "WARN", want: Warn},
		{name: "info", want: Info},
		{name: "debug", want: Debug},
		{name: "verbose", want: Info, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			if tt.wantErr != (err != nil) {
				t.Errorf("unexpected error state: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}

func TestLogger_levels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, Warn)

	logger.Debugf("debug %d", 1)
	logger.Infof("info %d", 2)
	logger.Warnf("warn %d", 3)
	logger.Errorf("error %d", 4)

	logger.SetLevel(Debug)
	logger.Debugf("debug %d", 5)

	var got []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		// drop the timestamp written by the standard logger
		_, msg, _ := strings.Cut(line, "[")
		got = append(got, "["+msg)
	}

	want := []string{"[WARN] warn 3", "[ERROR] error 4", "[DEBUG] debug 5"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("log output mismatch (-want +got):\n%s", diff)
	}

	if !strings.HasPrefix(buf.String(), "jsonagent: ") {
		t.Errorf("missing prefix in %q", buf.String())
	}
}
