package rdx

import "testing"

func TestPlaceIDFromViewKey(t *testing.T) {
	cases := []struct {
		key  string
		want string
		ok   bool
	}{
		{"views:place:p123", "p123", true},
		{"views:place:", "", false},
		{"views:user:p123", "", false},
		{"place:p123", "", false},
		{"views:place:p1:extra", "", false},
	}

	for _, c := range cases {
		got, ok := placeIDFromViewKey(c.key)
		if got != c.want || ok != c.ok {
			t.Errorf("placeIDFromViewKey(%q) = (%q, %v), want (%q, %v)",
				c.key, got, ok, c.want, c.ok)
		}
	}
}
