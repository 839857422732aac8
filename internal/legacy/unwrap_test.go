package legacy

import "testing"

func TestUnwrap(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"simple", `s:5:"hello";`, "hello", true},
		{"empty content", `s:0:"";`, "", true},
		{"token with symbols", `s:12:"tok=en:;abc!";`, "tok=en:;abc!", true},
		{"declared length too long", `s:5:"hell";`, "", false},
		{"declared length too short", `s:3:"hello";`, "", false},
		{"no prefix", `5:"hello";`, "", false},
		{"other serialized type", `i:5;`, "", false},
		{"missing second colon", `s:5"hello";`, "", false},
		{"non-numeric length", `s:x:"hello";`, "", false},
		{"negative length", `s:-5:"hello";`, "", false},
		{"empty length", `s::"hello";`, "", false},
		{"missing opening quote", `s:5:hello;`, "", false},
		{"missing closing quote", `s:5:"hello`, "", false},
		{"embedded quote", `s:7:"he"llo";`, "", false},
		{"plain text", "hello", "", false},
		{"multibyte counted in bytes", `s:6:"héllo";`, "héllo", true},
		{"two-byte rune", `s:2:"é";`, "é", true},
		{"rune count is not byte count", `s:1:"é";`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Unwrap(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Unwrap(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
