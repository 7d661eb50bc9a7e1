package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/ednsctl/internal/output"
	"github.com/danmuck/ednsctl/internal/testutil/testlog"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	testlog.Start(t)
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEncodeCommandText(t *testing.T) {
	out, err := run(t, "", "encode", "ForgedAnswer", "--text", "upstream spoofed")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(out, "{EDE: 4(Forged Answer)(upstream spoofed)}") {
		t.Fatalf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "000f00120004757073747265616d2073706f6f666564") {
		t.Fatalf("missing hex: %q", out)
	}
}

func TestDecodeCommandJSON(t *testing.T) {
	out, err := run(t, "", "-o", "json", "decode", "000f0004000f6f6b")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var views []output.OptionView
	if err := json.Unmarshal([]byte(out), &views); err != nil {
		t.Fatalf("decode json: %v out=%q", err, out)
	}
	if len(views) != 1 || views[0].Label != "Blocked" || views[0].ExtraText != "ok" {
		t.Fatalf("unexpected views: %+v", views)
	}
}

func TestDecodeCommandStdinLines(t *testing.T) {
	stdin := "000f00020000\n\n000f0004270f6869\n"
	out, err := run(t, stdin, "decode")
	if err != nil {
		t.Fatalf("decode stdin: %v", err)
	}
	if !strings.Contains(out, "{EDE: 0(Other)()}") || !strings.Contains(out, "{EDE: 9999(Unknown)(hi)}") {
		t.Fatalf("unexpected output: %q", out)
	}

	_, err = run(t, "000f00040000fffe\n", "decode")
	if err == nil || !strings.Contains(err.Error(), "line 1") {
		t.Fatalf("expected line-numbered error, got %v", err)
	}
}

func TestCodesCommand(t *testing.T) {
	out, err := run(t, "", "codes")
	if err != nil {
		t.Fatalf("codes: %v", err)
	}
	if !strings.Contains(out, "No Reachable Authority") || !strings.Contains(out, "NAME") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ednsctl.toml")
	if _, err := run(t, "", "config", "init", path); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	out, err := run(t, "", "--config", path, "config", "validate", path)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(out, "validated") {
		t.Fatalf("unexpected output: %q", out)
	}
	if _, err := run(t, "", "config", "init", path); err == nil {
		t.Fatalf("expected overwrite refusal")
	}
}

func TestInvalidOutputFlag(t *testing.T) {
	if _, err := run(t, "", "-o", "xml", "codes"); err == nil {
		t.Fatalf("expected invalid output error")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) != "ednsctl version "+version {
		t.Fatalf("unexpected output: %q", out)
	}
}
