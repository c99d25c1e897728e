package util

import "testing"

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"resume.pdf", "resume.pdf", false},
		{"  resume.pdf  ", "resume.pdf", false},
		{"a/b.pdf", "a_b.pdf", false},
		{`a\b.pdf`, "a_b.pdf", false},
		{"../etc/passwd", "", true},
		{"   ", "", true},
	}
	for _, tc := range cases {
		got, err := SanitizeFileName(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("SanitizeFileName(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("SanitizeFileName(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSafeNameToken(t *testing.T) {
	cases := map[string]string{
		"Ada Lovelace":   "Ada_Lovelace",
		"O'Neil-Smith":   "O_Neil_Smith",
		"plain":          "plain",
		"ünïcode niño":   "_n_code_ni_o",
		"tabs\tand\nnl":  "tabs_and_nl",
		"123 Numbers 45": "123_Numbers_45",
	}
	for in, want := range cases {
		if got := SafeNameToken(in); got != want {
			t.Fatalf("SafeNameToken(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHashUserKeyIsStableAndHex(t *testing.T) {
	a := HashUserKey("google:sub-1")
	b := HashUserKey("google:sub-1")
	if a != b {
		t.Fatalf("expected stable hash, got %q and %q", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
	if a == HashUserKey("google:sub-2") {
		t.Fatalf("expected distinct hashes for distinct ids")
	}
}
