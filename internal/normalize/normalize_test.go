package normalize

import (
	"strings"
	"testing"
)

func TestContent_CollapsesBlankLines(t *testing.T) {
	got := Content("Para one.\n\n\n\nPara two.")
	want := "Para one.\n\nPara two."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if n := strings.Count(got, "\n"); n != 2 {
		t.Errorf("expected 2 newlines, got %d", n)
	}
}

func TestContent_KeepsSingleBlankLine(t *testing.T) {
	in := "Line one.\nLine two.\n\nLine three."
	if got := Content(in); got != in {
		t.Errorf("expected %q unchanged, got %q", in, got)
	}
}

func TestContent_UnescapesImageMarkers(t *testing.T) {
	got := Content(`\![diagram](img/flow.png) and \\!`)
	want := "![diagram](img/flow.png) and !"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestContent_Trims(t *testing.T) {
	if got := Content("\n\n  Body text.  \n\n"); got != "Body text." {
		t.Errorf("expected %q, got %q", "Body text.", got)
	}
	if got := Content(" \n\t\n"); got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
}

func TestContent_SpacesCrampedBoldHeadings(t *testing.T) {
	got := Content("Intro line.\n### **Q1 2026**\nBody.")
	want := "Intro line.\n\n### **Q1 2026**\nBody."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	// Plain headings and already spaced headings are left alone.
	in := "Intro.\n### Plain\n\n### **Spaced**"
	if got := Content("Intro.\n### Plain\n\n### **Spaced**"); got != in {
		t.Errorf("expected %q unchanged, got %q", in, got)
	}
}

func TestContent_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"a\n\n\n\n\nb",
		"\n\n\nleading and trailing\n\n\n",
		`escaped \! bang \\\! twice`,
		"x\n# **\n# **y",
		"text\n## **A**\n## **B**\n\n\n\ntail",
		"code:\n```\n\\!\n```\n\n\n",
		"a\n   \n\n\n# **b**",
	}
	for _, in := range inputs {
		once := Content(in)
		twice := Content(once)
		if once != twice {
			t.Errorf("not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}
