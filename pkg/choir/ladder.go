// Package choir synthesizes a choir from a single stereo take: a ladder of
// pitch offsets, one circularly shifted and randomly delayed copy of the
// source per offset, alternated across the stereo field and normalized.
package choir

// Ladder is the ordered set of per-voice pitch offsets for one session.
type Ladder []float64

// GenerateLadder spaces numVoices offsets pitchOffset apart around zero.
//
// Odd counts are centered on zero. Even counts start at
// -((n/2)-1)*pitchOffset, so the top voice sits one step further from zero
// than the bottom one.
func GenerateLadder(numVoices int, pitchOffset float64) Ladder {
	if numVoices <= 0 {
		return Ladder{}
	}

	var start float64
	if numVoices%2 == 0 {
		start = -float64(numVoices/2-1) * pitchOffset
	} else {
		start = -float64((numVoices-1)/2) * pitchOffset
	}

	ladder := make(Ladder, numVoices)
	for i := range ladder {
		ladder[i] = start + float64(i)*pitchOffset
	}
	return ladder
}
