package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/smokyabdulrahman/prayer-calc/internal/display"
	"github.com/smokyabdulrahman/prayer-calc/internal/method"
	"github.com/smokyabdulrahman/prayer-calc/internal/prayer"
)

var meccaArgs = []string{"--latitude", "21.4225", "--longitude", "39.8262", "--utc-offset", "3"}

// setup isolates config and cache lookups, disables colors and pins the
// clock to 2024-01-01 13:00 in Mecca (UTC+3).
func setup(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	display.SetEnabled(false)
	setClock(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
}

func setClock(t *testing.T, now time.Time) {
	t.Helper()
	old := clock
	clock = func() time.Time { return now }
	t.Cleanup(func() { clock = old })
}

// execute runs the root command in-process.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	return executeContext(t, context.Background(), args...)
}

func executeContext(t *testing.T, ctx context.Context, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCmd("test")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

func mecca(args ...string) []string {
	return append(append([]string{}, meccaArgs...), args...)
}

func TestVersionFlag(t *testing.T) {
	setup(t)

	out, _, err := execute(t, "--version")
	if err != nil {
		t.Fatalf("--version failed: %v", err)
	}
	if out != "prayer-calc test\n" {
		t.Errorf("--version = %q", out)
	}
}

func TestHelpFlag(t *testing.T) {
	setup(t)

	out, _, err := execute(t, "--help")
	if err != nil {
		t.Fatalf("--help failed: %v", err)
	}

	for _, sub := range []string{"next", "list", "week", "month", "query", "raw", "methods", "config", "locate", "compare", "watch"} {
		if !strings.Contains(out, sub) {
			t.Errorf("--help output missing subcommand %q", sub)
		}
	}
}

func TestNoLocation(t *testing.T) {
	setup(t)

	for _, args := range [][]string{{}, {"next"}, {"list"}, {"query", "fajr"}, {"raw"}, {"compare"}, {"watch"}} {
		t.Run(strings.Join(append([]string{"root"}, args...), "_"), func(t *testing.T) {
			_, _, err := execute(t, args...)
			if !errors.Is(err, prayer.ErrLocationNotConfigured) {
				t.Fatalf("err = %v, want ErrLocationNotConfigured", err)
			}
			if !strings.Contains(ErrorHint(err), "config set latitude") {
				t.Errorf("hint = %q", ErrorHint(err))
			}
		})
	}
}

func TestMissingOffset(t *testing.T) {
	setup(t)

	_, _, err := execute(t, "--latitude", "21.4225", "--longitude", "39.8262")
	if !errors.Is(err, prayer.ErrLocationNotConfigured) {
		t.Fatalf("err = %v, want ErrLocationNotConfigured", err)
	}
}

func TestErrorHint(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{prayer.ErrLocationNotConfigured, "locate --save"},
		{method.ErrUnknownMethod, "prayer-calc methods"},
		{&prayer.UnreachableError{Event: prayer.Isha, Angle: 17}, "--high-lats"},
		{errors.New("other"), ""},
	}
	for _, tt := range tests {
		got := ErrorHint(tt.err)
		if tt.want == "" && got != "" {
			t.Errorf("ErrorHint(%v) = %q, want empty", tt.err, got)
		}
		if !strings.Contains(got, tt.want) {
			t.Errorf("ErrorHint(%v) = %q, want it to mention %q", tt.err, got, tt.want)
		}
	}
}

func TestInvalidFlagValues(t *testing.T) {
	setup(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"latitude range", []string{"--latitude", "91", "--longitude", "0", "--utc-offset", "0"}, "--latitude"},
		{"method", mecca("--method", "Nope"), "unknown calculation method"},
		{"asr", mecca("--asr", "maliki"), "--asr"},
		{"high lats", mecca("--high-lats", "Sometimes"), "--high-lats"},
		{"time format", mecca("--time-format", "36h"), "--time-format"},
		{"timezone", []string{"--latitude", "0", "--longitude", "0", "--timezone", "Mars/Olympus"}, "--timezone"},
		{"date", mecca("--date", "2024-13-01"), "invalid date"},
		{"log level", mecca("--log-level", "loud"), "--log-level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestSettingsPriority(t *testing.T) {
	setup(t)

	// file < env < flag
	if _, _, err := execute(t, "config", "set", "method", "Egypt"); err != nil {
		t.Fatal(err)
	}
	methodOf := func(args ...string) string {
		t.Helper()
		out, _, err := execute(t, mecca(append(args, "--json", "--date", "2024-01-01")...)...)
		if err != nil {
			t.Fatalf("today failed: %v", err)
		}
		var got todayJSON
		decodeJSON(t, out, &got)
		return got.Method
	}

	if got := methodOf(); got != "Egypt" {
		t.Errorf("from file: method = %q, want Egypt", got)
	}
	t.Setenv("PRAYER_CALC_METHOD", "Makkah")
	if got := methodOf(); got != "Makkah" {
		t.Errorf("env over file: method = %q, want Makkah", got)
	}
	if got := methodOf("--method", "ISNA"); got != "ISNA" {
		t.Errorf("flag over env: method = %q, want ISNA", got)
	}
}

func TestInvalidEnv(t *testing.T) {
	setup(t)
	t.Setenv("PRAYER_CALC_LATITUDE", "north")

	_, _, err := execute(t)
	if err == nil || !strings.Contains(err.Error(), "PRAYER_CALC_LATITUDE") {
		t.Errorf("err = %v, want it to name the variable", err)
	}
}

func TestDiffMinutes(t *testing.T) {
	tests := []struct {
		local, ref string
		want       int
		ok         bool
	}{
		{"12:00", "12:00", 0, true},
		{"12:00", "12:03", 3, true},
		{"15:28", "15:26", -2, true},
		{"23:59", "00:01", 2, true},
		{"00:01", "23:59", -2, true},
		{"12:00", "nope", 0, false},
		{"", "12:00", 0, false},
	}
	for _, tt := range tests {
		got, ok := diffMinutes(tt.local, tt.ref)
		if got != tt.want || ok != tt.ok {
			t.Errorf("diffMinutes(%q, %q) = %d, %v; want %d, %v", tt.local, tt.ref, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseDays(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"1", 1, false},
		{"10", 10, false},
		{"week", 7, false},
		{"month", 30, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"fortnight", 0, true},
	}
	for _, tt := range tests {
		got, err := parseDays(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseDays(%q) = %d, %v", tt.in, got, err)
		}
	}
}
