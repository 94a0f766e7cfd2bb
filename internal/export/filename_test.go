package export

import "testing"

func TestImageFileName(t *testing.T) {
	cases := []struct{ name, want string }{
		{"Jake Ryan", "resume-jake-ryan.png"},
		{"Jake  Middle   Ryan", "resume-jake-middle-ryan.png"},
		{"JAKE", "resume-jake.png"},
		{"", "resume-download.png"},
	}
	for _, tc := range cases {
		if got := ImageFileName(tc.name); got != tc.want {
			t.Errorf("ImageFileName(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestPDFFileName(t *testing.T) {
	if got := PDFFileName("Jake Ryan"); got != "resume-jake-ryan.pdf" {
		t.Errorf("PDFFileName = %q", got)
	}
	if got := PDFFileName(""); got != "resume-download.pdf" {
		t.Errorf("PDFFileName fallback = %q", got)
	}
}
