package utils

import "testing"

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"safe name untouched", "photo_1.jpg", "photo_1.jpg"},
		{"space replaced", "rapport final.pdf", "rapport_final.pdf"},
		{"accents replaced", "reçu février.pdf", "re_u_f_vrier.pdf"},
		{"path separators replaced", "../../etc/passwd", ".._.._etc_passwd"},
		{"dots dashes underscores kept", "a.b-c_d.txt", "a.b-c_d.txt"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFileName(tt.in); got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestObjectKey(t *testing.T) {
	got := ObjectKey("conversations/42", 1710082800000, "rapport final.pdf")
	want := "conversations/42/1710082800000_rapport_final.pdf"
	if got != want {
		t.Errorf("ObjectKey = %q, want %q", got, want)
	}
}
