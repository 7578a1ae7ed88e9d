package parser

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		line  string
		kind  Kind
		title string
		bold  bool
	}{
		{"# **INTRODUCTION**", KindSection, "INTRODUCTION", true},
		{"# INTRODUCTION", KindSection, "INTRODUCTION", false},
		{"#   **ACCESS & STAKING**  ", KindSection, "ACCESS & STAKING", true},
		{"# **TOKEN SALE FORMATS**\r", KindSection, "TOKEN SALE FORMATS", true},
		{"## **Getting Started**", KindPage, "Getting Started", true},
		{"## Getting Started", KindPage, "Getting Started", false},
		{"##\tTabbed", KindPage, "Tabbed", false},
		{"## **Q1 2026**", KindPage, "Q1 2026", true},

		// Unbalanced emphasis keeps the markers but still classifies by depth.
		{"# **Broken", KindSection, "**Broken", false},
		{"## Broken**", KindPage, "Broken**", false},

		{"### Deeper", KindContent, "", false},
		{"#NoSpace", KindContent, "", false},
		{"#", KindContent, "", false},
		{"#    ", KindContent, "", false},
		{"# ** **", KindContent, "", false},
		{" # Indented", KindContent, "", false},
		{"Plain text with # inside", KindContent, "", false},
		{"", KindContent, "", false},
	}
	for _, tt := range tests {
		got := Classify(tt.line)
		if got.Kind != tt.kind {
			t.Errorf("Classify(%q): expected kind %s, got %s", tt.line, tt.kind, got.Kind)
			continue
		}
		if got.Title != tt.title {
			t.Errorf("Classify(%q): expected title %q, got %q", tt.line, tt.title, got.Title)
		}
		if got.Bold != tt.bold {
			t.Errorf("Classify(%q): expected bold=%v, got %v", tt.line, tt.bold, got.Bold)
		}
	}
}
