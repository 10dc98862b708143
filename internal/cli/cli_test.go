package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/stackchart/pkg/errors"
)

func TestRootCommand(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"render", "layout", "inspect", "serve", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("root should carry a persistent --config flag")
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			var out bytes.Buffer
			root := New(io.Discard, LogInfo).RootCommand()
			root.SetOut(&out)
			root.SetArgs([]string{"completion", shell})
			if err := root.ExecuteContext(context.Background()); err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(out.String(), "stackchart") {
				t.Errorf("%s completion does not mention stackchart", shell)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	c := New(io.Discard, LogInfo)
	cfg, err := c.loadConfig()
	if err != nil || cfg == nil {
		t.Fatalf("loadConfig() without a file = %v, %v", cfg, err)
	}

	c.configPath = writeTemp(t, "stackchart.toml", "[chart]\nkind = \"bar\"\n")
	cfg, err = c.loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Chart.Kind != "bar" {
		t.Errorf("Chart.Kind = %q, want bar", cfg.Chart.Kind)
	}

	c.configPath = writeTemp(t, "bad.toml", "[chart]\ncolour = \"red\"\n")
	if _, err := c.loadConfig(); errors.GetCode(err) != errors.ErrCodeInvalidConfig {
		t.Errorf("unknown key: code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidConfig)
	}
}

func TestInspectRejectsBar(t *testing.T) {
	input := writeTemp(t, "sales.csv", salesCSV)
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"inspect", input, "-k", "bar", "-x", "month", "-y", "sales", "--no-cache"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("inspect should reject bar charts")
	}
}
