package otpcode

import "testing"

func TestNewNumericRejectsBadLength(t *testing.T) {
	if _, err := NewNumeric(3); err == nil {
		t.Fatal("expected error for length 3")
	}

	if _, err := NewNumeric(11); err == nil {
		t.Fatal("expected error for length 11")
	}
}

func TestGenerateShape(t *testing.T) {
	gen, err := NewNumeric(6)
	if err != nil {
		t.Fatalf("NewNumeric returned error: %v", err)
	}

	for range 200 {
		code, err := gen.Generate()
		if err != nil {
			t.Fatalf("Generate returned error: %v", err)
		}

		if len(code) != 6 {
			t.Fatalf("code %q has length %d, want 6", code, len(code))
		}

		if code[0] == '0' {
			t.Fatalf("code %q starts with zero", code)
		}

		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("code %q contains non-digit %q", code, r)
			}
		}
	}
}

func TestGenerateVaries(t *testing.T) {
	gen, err := NewNumeric(6)
	if err != nil {
		t.Fatalf("NewNumeric returned error: %v", err)
	}

	seen := make(map[string]struct{}, 50)
	for range 50 {
		code, err := gen.Generate()
		if err != nil {
			t.Fatalf("Generate returned error: %v", err)
		}

		seen[code] = struct{}{}
	}

	// 50 draws from 900000 possibilities colliding down to one value would
	// mean a broken entropy source.
	if len(seen) < 2 {
		t.Fatalf("expected varied codes, got %d distinct from 50 draws", len(seen))
	}
}
