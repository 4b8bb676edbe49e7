package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	kit "pipesort/internal/platform/testkit"
)

func TestParseLevel_AllBranches(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"trace", "trace"},
		{"debug", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"warning", "warn"},
		{"error", "error"},
		{"fatal", "fatal"},
		{"panic", "panic"},
		{"", "warn"},
		{"   nonsense   ", "warn"},
	}
	for _, c := range cases {
		lvl := parseLevel(c.in)
		if strings.ToLower(lvl.String()) != c.want {
			t.Fatalf("parseLevel(%q) = %q, want %q", c.in, lvl, c.want)
		}
	}
}

func TestInit_Get_Named_C_WithWorker(t *testing.T) {
	var buf bytes.Buffer

	// Init is once-per-process; every assertion below rides this one root
	Init(Options{
		Level:     "debug",
		Format:    "json",
		Service:   "pipesort",
		Component: "root",
		Writer:    &buf,
		StaticFields: map[string]string{
			"build": "test",
		},
	})

	Get().Info().Str("k", "v").Msg("root-msg")
	Named("merge").Info().Msg("named-msg")
	Named("").Info().Msg("unnamed-msg")

	ctx := WithWorker(context.Background(), "w-123", 2)
	C(ctx).Info().Msg("worker-msg")
	C(context.Background()).Info().Msg("bare-ctx-msg")

	out := buf.String()
	kit.MustContain(t, out, "root-msg")
	kit.MustContain(t, out, `"service":"pipesort"`)
	kit.MustContain(t, out, `"build":"test"`)
	kit.MustContain(t, out, `"component":"merge"`)
	kit.MustContain(t, out, "named-msg")
	kit.MustContain(t, out, `"worker_id":"w-123"`)
	kit.MustContain(t, out, `"depth":2`)
	kit.MustContain(t, out, "bare-ctx-msg")
}

func TestDepth(t *testing.T) {
	if got := Depth(context.Background()); got != 0 {
		t.Fatalf("Depth(bare) = %d, want 0", got)
	}
	ctx := WithWorker(context.Background(), "w", 3)
	if got := Depth(ctx); got != 3 {
		t.Fatalf("Depth = %d, want 3", got)
	}
	// a child worker derives its depth from the parent's
	child := WithWorker(ctx, "c", Depth(ctx)+1)
	if got := Depth(child); got != 4 {
		t.Fatalf("child Depth = %d, want 4", got)
	}
}

func TestFromEnvDefaults(t *testing.T) {
	kit.Serial(t)
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")
	opt := FromEnv()
	if opt.Level != "warn" {
		t.Fatalf("default level = %q, want warn", opt.Level)
	}
	if opt.Format != "console" {
		t.Fatalf("default format = %q, want console", opt.Format)
	}

	t.Setenv("LOG_LEVEL", "ERROR")
	t.Setenv("LOG_SERVICE", "sorter")
	t.Setenv("LOG_SAMPLE_EVERY", "5")
	opt = FromEnv()
	if opt.Level != "error" || opt.Service != "sorter" || opt.SampleEvery != 5 {
		t.Fatalf("FromEnv = %+v", opt)
	}
}
