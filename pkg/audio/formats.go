package audio

// Format constants shared by the loader, mixer and output layers.
const (
	// Choir output.
	StereoChannels = 2 // left + right
	Left           = 0
	Right          = 1

	// Source input.
	PCM16Divisor = 32767.0

	// Device output.
	Float32SampleBytes = 4 // float32 LE
)
