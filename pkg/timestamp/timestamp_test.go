package timestamp

import (
	"errors"
	"testing"
)

func TestToMs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"zero", "00:00:00.000", 0},
		{"millis only", "00:00:00.360", 360},
		{"seconds", "00:00:03.360", 3360},
		{"minutes", "00:02:00.000", 120000},
		{"hours", "01:00:00.001", 3600001},
		{"single digits", "0:0:1.5", 1005},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToMs(tt.in)
			if err != nil {
				t.Fatalf("ToMs(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ToMs(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestToMsMalformed(t *testing.T) {
	for _, in := range []string{"", "00:00", "00:00:01", "aa:00:00.000", "00:00:01.x", "00:-1:00.000"} {
		if _, err := ToMs(in); !errors.Is(err, ErrMalformed) {
			t.Errorf("ToMs(%q) error = %v, want ErrMalformed", in, err)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "00:00:00.000"},
		{3360, "00:00:03.360"},
		{3600001, "01:00:00.001"},
		{86399999, "23:59:59.999"},
	}

	for _, tt := range tests {
		if got := Format(tt.ms); got != tt.want {
			t.Errorf("Format(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for ms := int64(0); ms < 86400000; ms += 7919 {
		got, err := ToMs(Format(ms))
		if err != nil {
			t.Fatalf("ToMs(Format(%d)) error = %v", ms, err)
		}
		if got != ms {
			t.Fatalf("ToMs(Format(%d)) = %d", ms, got)
		}
	}
}
