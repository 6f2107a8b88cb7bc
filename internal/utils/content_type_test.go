package utils

import "testing"

func TestDetectContentType(t *testing.T) {
	cases := map[string]string{
		"report.md":  "text/plain; charset=utf-8",
		"data.yaml":  "text/plain; charset=utf-8",
		"report.pdf": "application/pdf",
		"noext":      "application/octet-stream",
	}
	for name, want := range cases {
		if got := DetectContentType(name); got != want {
			t.Errorf("DetectContentType(%q) = %q, want %q", name, got, want)
		}
	}
}
