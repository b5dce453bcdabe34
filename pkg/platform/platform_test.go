package platform

import (
	"runtime"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    OS
		wantErr bool
	}{
		{"windows", Windows, false},
		{"Linux", Linux, false},
		{"macos", Darwin, false},
		{"darwin", Darwin, false},
		{"plan9", Unknown, true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("Parse(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestRuntime(t *testing.T) {
	got := Runtime().Detect()
	if string(got) != runtime.GOOS && got != Unknown {
		t.Errorf("Detect() = %q on %s", got, runtime.GOOS)
	}
}

func TestSelect(t *testing.T) {
	strategies := map[OS]string{Windows: "GenerateProjects.bat"}

	s, os, ok := Select(Fixed(Windows), strategies)
	if !ok || s != "GenerateProjects.bat" || os != Windows {
		t.Errorf("Select(windows) = %q, %q, %v", s, os, ok)
	}

	_, os, ok = Select(Fixed(Linux), strategies)
	if ok || os != Linux {
		t.Errorf("Select(linux) = %q, %v; want no strategy", os, ok)
	}
}
