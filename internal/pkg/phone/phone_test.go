package phone

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "already canonical", in: "+989123456789", want: "+989123456789"},
		{name: "double zero prefix", in: "00989123456789", want: "+989123456789"},
		{name: "country code without plus", in: "989123456789", want: "+989123456789"},
		{name: "local with leading zero", in: "09123456789", want: "+989123456789"},
		{name: "bare subscriber number", in: "9123456789", want: "+989123456789"},
		{name: "spaces and dashes", in: "0912 345-6789", want: "+989123456789"},
		{name: "parenthesised", in: "(0912) 345 6789", want: "+989123456789"},
		{name: "landline", in: "02188776655", wantErr: true},
		{name: "too short", in: "0912345", wantErr: true},
		{name: "too long", in: "=091234567890", wantErr: true},
		{name: "letters", in: "not-a-number", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalize(tc.in)

			if tc.wantErr {
				if err == nil {
					t.Fatalf("Normalize(%q) = %q, want error", tc.in, got)
				}

				return
			}

			if err != nil {
				t.Fatalf("Normalize(%q) returned error: %v", tc.in, err)
			}

			if got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	first, err := Normalize("0912 345 6789")
	if err != nil {
		t.Fatalf("first Normalize returned error: %v", err)
	}

	second, err := Normalize(first)
	if err != nil {
		t.Fatalf("second Normalize returned error: %v", err)
	}

	if first != second {
		t.Fatalf("normalization not idempotent: %q then %q", first, second)
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid("09123456789") {
		t.Fatal("expected 09123456789 to be valid")
	}

	if IsValid("12345") {
		t.Fatal("expected 12345 to be invalid")
	}
}
