package config

import (
	"testing"
	"time"

	kit "pipesort/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	root := New()
	ps := root.Prefix("PIPESORT_")
	if got := ps.key("STEP"); got != "PIPESORT_STEP" {
		t.Fatalf("key() = %q, want %q", got, "PIPESORT_STEP")
	}
	// nested prefix
	psLog := ps.Prefix("LOG_")
	if got := psLog.key("LEVEL"); got != "PIPESORT_LOG_LEVEL" {
		t.Fatalf("nested key() = %q, want %q", got, "PIPESORT_LOG_LEVEL")
	}
}

// Must* panics

func TestMustString(t *testing.T) {
	c := New().Prefix("APP_")
	t.Setenv("APP_NAME", "  pipesort ")
	got := c.MustString("NAME")
	if got != "pipesort" {
		t.Fatalf("MustString = %q, want %q", got, "pipesort")
	}

	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
}

func TestRequire(t *testing.T) {
	c := New().Prefix("R_")
	t.Setenv("R_A", "1")
	t.Setenv("R_B", "2")
	kit.MustNotPanic(t, func() { c.Require("A", "B") })
	kit.MustPanic(t, func() { c.Require("A", "B", "MISSING") })
}

// May* defaults

func TestMayString(t *testing.T) {
	c := New().Prefix("MS_")
	if got := c.MayString("NOPE", "fallback"); got != "fallback" {
		t.Fatalf("MayString default = %q", got)
	}
	t.Setenv("MS_SET", " value ")
	if got := c.MayString("SET", "fallback"); got != "value" {
		t.Fatalf("MayString = %q", got)
	}
}

func TestMayInt(t *testing.T) {
	c := New().Prefix("MI_")
	if got := c.MayInt("NOPE", 10); got != 10 {
		t.Fatalf("MayInt default = %d", got)
	}
	t.Setenv("MI_STEP", " 25 ")
	if got := c.MayInt("STEP", 10); got != 25 {
		t.Fatalf("MayInt = %d", got)
	}
	t.Setenv("MI_BAD", "x")
	if got := c.MayInt("BAD", 10); got != 10 {
		t.Fatalf("MayInt invalid should fall back, got %d", got)
	}
}

func TestMayBool(t *testing.T) {
	c := New().Prefix("MB_")
	if got := c.MayBool("NOPE", true); !got {
		t.Fatalf("MayBool default = %v", got)
	}
	t.Setenv("MB_ON", "false")
	if got := c.MayBool("ON", true); got {
		t.Fatalf("MayBool = %v", got)
	}
	t.Setenv("MB_BAD", "notabool")
	if got := c.MayBool("BAD", true); !got {
		t.Fatalf("MayBool invalid should fall back, got %v", got)
	}
}

func TestMayDuration(t *testing.T) {
	c := New().Prefix("MD_")
	if got := c.MayDuration("NOPE", time.Second); got != time.Second {
		t.Fatalf("MayDuration default = %v", got)
	}
	t.Setenv("MD_TIMEOUT", "250ms")
	if got := c.MayDuration("TIMEOUT", time.Second); got != 250*time.Millisecond {
		t.Fatalf("MayDuration = %v", got)
	}
	t.Setenv("MD_BAD", "nope")
	if got := c.MayDuration("BAD", time.Second); got != time.Second {
		t.Fatalf("MayDuration invalid should fall back, got %v", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("ME_")
	if got := c.MayEnum("NOPE", "goroutine", "goroutine", "process"); got != "goroutine" {
		t.Fatalf("MayEnum default = %q", got)
	}
	// mixed case matches and comes back in the canonical spelling
	t.Setenv("ME_SPAWN", "Process")
	if got := c.MayEnum("SPAWN", "goroutine", "goroutine", "process"); got != "process" {
		t.Fatalf("MayEnum = %q", got)
	}
	t.Setenv("ME_SPAWN", "PROCESS")
	if got := c.MayEnum("SPAWN", "goroutine", "goroutine", "process"); got != "process" {
		t.Fatalf("MayEnum = %q", got)
	}
	t.Setenv("ME_BAD", "threads")
	kit.MustPanic(t, func() { _ = c.MayEnum("BAD", "goroutine", "goroutine", "process") })
}
