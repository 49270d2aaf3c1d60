package sight

import (
	"math"
	"testing"
)

func TestUTCLMTConversion(t *testing.T) {
	tests := []struct {
		utc, lon float64
		wantLMT  float64
	}{
		{12, 0, 12},
		{12, 90, 18},
		{2, -45, 23},
		{23, 30, 1},
	}

	for _, tt := range tests {
		lmt := UTCToLMT(tt.utc, tt.lon)
		if math.Abs(lmt-tt.wantLMT) > 1e-12 {
			t.Errorf("UTCToLMT(%v, %v) = %v, want %v", tt.utc, tt.lon, lmt, tt.wantLMT)
		}
		back := LMTToUTC(lmt, tt.lon)
		if math.Abs(back-tt.utc) > 1e-12 {
			t.Errorf("LMTToUTC(%v, %v) = %v, want %v", lmt, tt.lon, back, tt.utc)
		}
		if lmt < 0 || lmt >= 24 {
			t.Errorf("LMT %v outside [0, 24)", lmt)
		}
	}
}

func TestUTCLMTConversion_TinyNegative(t *testing.T) {
	for _, got := range []float64{UTCToLMT(0, -1e-14), LMTToUTC(0, 1e-14), UTCToLMT(-1e-15, 0)} {
		if got < 0 || got >= 24 {
			t.Errorf("hours %v outside [0, 24)", got)
		}
	}
}
