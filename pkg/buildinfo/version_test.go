package buildinfo

import (
	"strings"
	"testing"
)

func TestShort(t *testing.T) {
	v, c := Version, Commit
	defer func() { Version, Commit = v, c }()

	Version, Commit = "v1.2.3", "abcdef0123456789"
	if got := Short(); got != "v1.2.3 (abcdef0)" {
		t.Errorf("Short() = %q", got)
	}

	Commit = "none"
	if got := Short(); got != "v1.2.3" {
		t.Errorf("Short() without commit = %q", got)
	}
}

func TestTemplate(t *testing.T) {
	if !strings.Contains(Template(), "{{.Name}} version") {
		t.Errorf("Template() = %q", Template())
	}
	if !strings.Contains(String(), "commit:") {
		t.Errorf("String() = %q", String())
	}
}
