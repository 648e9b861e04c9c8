package utils

import (
	"strings"
	"testing"
)

func TestGetUUID(t *testing.T) {
	id := GetUUID()
	if len(id) != 36 {
		t.Fatalf("uuid length = %d, want 36: %q", len(id), id)
	}
	if strings.Count(id, "-") != 4 {
		t.Fatalf("uuid %q does not have 4 separators", id)
	}
	if GetUUID() == id {
		t.Fatal("consecutive uuids must differ")
	}
}

func TestGenerateRandomString(t *testing.T) {
	s := GenerateRandomString(16)
	if len(s) != 16 {
		t.Fatalf("length = %d, want 16", len(s))
	}
	for _, r := range s {
		if !strings.ContainsRune(string(letterRunes), r) {
			t.Fatalf("unexpected rune %q in %q", r, s)
		}
	}
}
