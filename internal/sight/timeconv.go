package sight

import "github.com/soniakeys/unit"

// UTCToLMT converts UTC hours to local mean time for an east-positive longitude.
func UTCToLMT(utcHours, lonEastDeg float64) float64 {
	return wrapHours(utcHours + lonEastDeg/15)
}

// LMTToUTC converts local mean time hours to UTC for an east-positive longitude.
func LMTToUTC(lmtHours, lonEastDeg float64) float64 {
	return wrapHours(lmtHours - lonEastDeg/15)
}

// wrapHours maps hours into [0, 24). PMod returns exactly 24 for tiny
// negative inputs.
func wrapHours(h float64) float64 {
	h = unit.PMod(h, 24)
	if h >= 24 {
		h = 0
	}
	return h
}
