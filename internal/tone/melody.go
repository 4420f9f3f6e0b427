package tone

import (
	"time"

	"github.com/sweeney/cube-chimes/internal/logic"
)

// MelodyNoteDuration is how long each startup melody note sounds.
const MelodyNoteDuration = 120 * time.Millisecond

// Note is one melody step.
type Note struct {
	FrequencyHz int
	Duration    time.Duration
}

// StartupMelody returns the channel table's notes in strictly ascending
// then strictly descending frequency order (the octave note is not
// repeated at the turn). Played at boot to self-test the output device and
// signal readiness; not part of the sensing core.
func StartupMelody() []Note {
	notes := make([]Note, 0, 2*logic.NumChannels-1)
	for i := 0; i < logic.NumChannels; i++ {
		notes = append(notes, Note{
			FrequencyHz: logic.Channels[i].FrequencyHz,
			Duration:    MelodyNoteDuration,
		})
	}
	for i := logic.NumChannels - 2; i >= 0; i-- {
		notes = append(notes, Note{
			FrequencyHz: logic.Channels[i].FrequencyHz,
			Duration:    MelodyNoteDuration,
		})
	}
	return notes
}
