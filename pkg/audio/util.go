package audio

// RollSamples returns a rotated copy of src: dst[(i+k) mod n] = src[i].
func RollSamples(src []float64, k int) []float64 {
	n := len(src)
	dst := make([]float64, n)
	if n == 0 {
		return dst
	}
	k %= n
	if k < 0 {
		k += n
	}
	copy(dst[k:], src[:n-k])
	copy(dst[:k], src[n-k:])
	return dst
}

// PeakAbs returns max |x| over samples, 0 for an empty slice.
func PeakAbs(samples []float64) float64 {
	peak := 0.0
	for _, v := range samples {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	return peak
}

// ClampSamples limits samples to [lo, hi] in place.
func ClampSamples(samples []float64, lo, hi float64) {
	for i, v := range samples {
		switch {
		case v > hi:
			samples[i] = hi
		case v < lo:
			samples[i] = lo
		}
	}
}

// saturateInt16 clamps v to the valid int16 range.
func saturateInt16(v int) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
