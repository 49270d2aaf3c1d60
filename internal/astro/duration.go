package astro

import "time"

func hoursToDuration(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}
