package utils

import (
	"strings"
	"testing"
)

func TestAvatarURL(t *testing.T) {
	url := AvatarURL("Jane@Example.com ", 80)
	if !strings.HasPrefix(url, "https://www.gravatar.com/avatar/") {
		t.Fatalf("unexpected url %q", url)
	}
	if !strings.Contains(url, "s=80") {
		t.Fatalf("size parameter missing in %q", url)
	}

	// Hash normalizes case and whitespace.
	if url != AvatarURL("jane@example.com", 80) {
		t.Fatal("expected identical URLs for equivalent emails")
	}
}

func TestAvatarURLDefaultSize(t *testing.T) {
	if !strings.Contains(AvatarURL("a@b.com", 0), "s=200") {
		t.Fatal("expected default size 200")
	}
}
