package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/modu-ai/scaffold/internal/core/selection"
)

func TestPrintSelections(t *testing.T) {
	var buf bytes.Buffer
	printSelections(&buf)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(selection.All()) {
		t.Fatalf("expected %d selections, got %d", len(selection.All()), len(lines))
	}
	if lines[0] != "api-service_none_none" {
		t.Errorf("unexpected first selection %q", lines[0])
	}
	for _, l := range lines {
		if strings.HasPrefix(l, "cli-tool_") && l != "cli-tool_none_none" {
			t.Errorf("cli-tool must only appear without a database, got %q", l)
		}
	}
}

func TestPrintCatalog(t *testing.T) {
	d := setTestDeps(t)

	var buf bytes.Buffer
	printCatalog(&buf, d.Theme)

	out := buf.String()
	for _, want := range []string{
		"Template families",
		"api-service", "web-app", "cli-tool",
		"Database compatibility",
		"sqlite", "mssql", "sqlx", "gorm",
		"29 valid selections",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// One mark per engine/library pair an api-service accepts.
	if got := strings.Count(out, "✓"); got != 14 {
		t.Errorf("expected 14 compatible pairs, got %d:\n%s", got, out)
	}
}
