package c64

import "github.com/go6510/c64/input"

// Model selects the video standard, which in turn fixes raster
// geometry, CPU/VIC clock rate and cycles per frame.
type Model int

const (
	ModelPAL Model = iota
	ModelNTSC
)

const (
	palClockHz  = 985248
	ntscClockHz = 1022727
)

// JoystickConfig picks which physical input source drives each of the
// two logical joystick ports and the analog deadzone used to convert
// axis motion into digital up/down/left/right.
type JoystickConfig struct {
	Port1         input.JoyMode
	Port2         input.JoyMode
	AxisThreshold int16
}

// SoundConfig controls the SID sample clock and output ring.
type SoundConfig struct {
	Enable     bool
	BufferSize int
	SampleRate uint32
	SIDFilters bool // Accepted for forward-compatibility; the opaque SID has no filter to toggle yet.
}

// Config is the single plain configuration record the façade is built
// from; ROM images are required since none are distributed here.
type Config struct {
	Model    Model
	Joystick JoystickConfig
	Sound    SoundConfig

	Basic   []uint8
	Charset []uint8
	Kernal  []uint8

	Debug bool
}

func (c *Config) clockHz() int {
	if c.Model == ModelNTSC {
		return ntscClockHz
	}
	return palClockHz
}
