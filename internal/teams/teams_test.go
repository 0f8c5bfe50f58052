package teams

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Golden State Warriors", "GSW", true},
		{"Golden State", "GSW", true},
		{"GSW", "GSW", true},
		{"GS", "GSW", true},
		{"L.A. Clippers", "LAC", true},
		{"LA Lakers", "LAL", true},
		{"New Orleans Pelicans", "NOP", true},
		{"NO", "NOP", true},
		{"SA", "SAS", true},
		{"bos", "BOS", true},
		{" Boston Celtics ", "BOS", true},
		{"Seattle SuperSonics", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := Normalize(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("Normalize(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIsCanonical(t *testing.T) {
	if !IsCanonical("BOS") {
		t.Fatalf("BOS should be canonical")
	}
	if IsCanonical("Boston") {
		t.Fatalf("full names are not canonical codes")
	}
}
