// Command c64 is a playable SDL2 frontend: the one place in this
// module allowed to import go-sdl2 freely, the same role vcs_main.go
// plays for the Atari build.
package main

import (
	"flag"
	"fmt"
	"image"
	"io/ioutil"
	"log"
	"net/http"
	_ "net/http/pprof"
	"strings"
	"sync"
	"time"

	"github.com/go6510/c64/c64"
	"github.com/go6510/c64/input"
	"github.com/go6510/c64/vic"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	basicPath  = flag.String("basic", "", "Path to the 8K BASIC ROM image")
	charPath   = flag.String("charset", "", "Path to the 4K character ROM image")
	kernalPath = flag.String("kernal", "", "Path to the 8K KERNAL ROM image")
	prg        = flag.String("prg", "", "Optional path to a .prg to load and autostart")
	scale      = flag.Int("scale", 2, "Scale factor to render screen")
	port       = flag.Int("port", 6060, "Port to run HTTP server for pprof")
	modeFlag   = flag.String("model", "PAL", "Either PAL or NTSC")
	sound      = flag.Bool("sound", true, "Enable SID sample output")
	debug      = flag.Bool("debug", false, "If true emit chip debug traces while running")
)

// fastImage pokes pixel bytes directly into the SDL surface buffer,
// avoiding the color.Color allocation Surface.Set does per pixel - the
// same trick the Atari frontend uses for its own framebuffer blit.
type fastImage struct {
	surface *sdl.Surface
	data    []byte
}

func (f *fastImage) blit(img *image.RGBA) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	bpp := int32(f.surface.Format.BytesPerPixel)
	for y := 0; y < h; y++ {
		row := int32(y) * f.surface.Pitch
		for x := 0; x < w; x++ {
			c := img.RGBAAt(x, y)
			i := row + int32(x)*bpp
			f.data[i+0] = c.R
			f.data[i+1] = c.G
			f.data[i+2] = c.B
			f.data[i+3] = 0xff
		}
	}
}

// keyMap covers the same row/col coordinates input.KeyboardMatrix's own
// autostart charMap uses, extended to a full QWERTY layout good enough
// to drive BASIC interactively.
var keyMap = map[sdl.Keycode][2]uint8{
	sdl.K_RETURN: {0, 1}, sdl.K_SPACE: {7, 4},
	sdl.K_0: {4, 3}, sdl.K_1: {7, 0}, sdl.K_2: {7, 3}, sdl.K_3: {1, 0}, sdl.K_4: {1, 3},
	sdl.K_5: {2, 0}, sdl.K_6: {2, 3}, sdl.K_7: {3, 0}, sdl.K_8: {3, 3}, sdl.K_9: {4, 0},
	sdl.K_a: {1, 2}, sdl.K_b: {3, 4}, sdl.K_c: {2, 4}, sdl.K_d: {2, 2}, sdl.K_e: {1, 6},
	sdl.K_f: {2, 5}, sdl.K_g: {3, 2}, sdl.K_h: {3, 5}, sdl.K_i: {4, 1}, sdl.K_j: {4, 2},
	sdl.K_k: {4, 5}, sdl.K_l: {5, 2}, sdl.K_m: {4, 4}, sdl.K_n: {4, 7}, sdl.K_o: {4, 6},
	sdl.K_p: {5, 1}, sdl.K_q: {7, 6}, sdl.K_r: {2, 1}, sdl.K_s: {1, 5}, sdl.K_t: {2, 6},
	sdl.K_u: {3, 6}, sdl.K_v: {3, 7}, sdl.K_w: {1, 1}, sdl.K_x: {2, 7}, sdl.K_y: {3, 1},
	sdl.K_z: {1, 4},
}

func loadROM(path string, want int, name string) []uint8 {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		log.Fatalf("Can't load %s ROM: %v", name, err)
	}
	if len(data) != want {
		log.Fatalf("%s ROM %q is %d bytes, want %d", name, path, len(data), want)
	}
	return data
}

func main() {
	flag.Parse()

	model := c64.ModelPAL
	switch strings.ToUpper(*modeFlag) {
	case "PAL":
		model = c64.ModelPAL
	case "NTSC":
		model = c64.ModelNTSC
	default:
		log.Fatalf("Invalid model %q - must be PAL or NTSC", *modeFlag)
	}

	go func() {
		log.Println(http.ListenAndServe(fmt.Sprintf("localhost:%d", *port), nil))
	}()

	cfg := &c64.Config{
		Model:   model,
		Basic:   loadROM(*basicPath, 8192, "BASIC"),
		Charset: loadROM(*charPath, 4096, "character"),
		Kernal:  loadROM(*kernalPath, 8192, "KERNAL"),
		Joystick: c64.JoystickConfig{
			Port1:         input.JoyNumpad,
			Port2:         input.JoyNone,
			AxisThreshold: 8000,
		},
		Sound: c64.SoundConfig{
			Enable:     *sound,
			BufferSize: 8192,
			SampleRate: 44100,
		},
		Debug: *debug,
	}

	sys, err := c64.Init(cfg)
	if err != nil {
		log.Fatalf("Can't init C64: %v", err)
	}
	if err := sys.Reset(true); err != nil {
		log.Fatalf("Can't reset C64: %v", err)
	}

	if *prg != "" {
		data, err := ioutil.ReadFile(*prg)
		if err != nil {
			log.Fatalf("Can't load prg: %v", err)
		}
		if len(data) < 2 {
			log.Fatalf("prg %q too short to contain a load address", *prg)
		}
		loadAddr := uint16(data[0]) | uint16(data[1])<<8
		sys.Load(data[2:], loadAddr)
		sys.ArmAutostart()
	}

	var window *sdl.Window
	fi := &fastImage{}

	sdl.Main(func() {
		var wg sync.WaitGroup
		wg.Add(1)
		sdl.Do(func() {
			if err := sdl.Init(sdl.INIT_EVERYTHING); err != nil {
				log.Fatalf("Can't init SDL: %v", err)
			}
			var err error
			window, err = sdl.CreateWindow("c64", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
				int32(vic.FrameWidth**scale), int32(vic.FrameHeight**scale), sdl.WINDOW_SHOWN)
			if err != nil {
				log.Fatalf("Can't create window: %v", err)
			}
			fi.surface, err = window.GetSurface()
			if err != nil {
				log.Fatalf("Can't get window surface: %v", err)
			}
			fi.data = fi.surface.Pixels()
			wg.Done()
		})
		wg.Wait()
		defer func() {
			window.Destroy()
			sdl.Quit()
		}()

		var audio *sdl.AudioDeviceID
		if cfg.Sound.Enable {
			spec := &sdl.AudioSpec{Freq: int32(cfg.Sound.SampleRate), Format: sdl.AUDIO_S16SYS, Channels: 1, Samples: 1024}
			id, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
			if err != nil {
				log.Printf("Can't open audio device, running silent: %v", err)
			} else {
				audio = &id
				sdl.PauseAudioDevice(id, false)
				defer sdl.CloseAudioDevice(id)
			}
		}

		now := time.Now()
		var tot, cnt time.Duration
		quit := false
		for !quit {
			sdl.Do(func() {
				for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
					switch e := event.(type) {
					case *sdl.QuitEvent:
						quit = true
					case *sdl.KeyboardEvent:
						down := e.State == sdl.PRESSED
						handleKey(sys, e.Keysym.Sym, down)
					}
				}
			})
			if err := sys.RunFrame(); err != nil {
				log.Fatalf("RunFrame error: %v", err)
			}
			if audio != nil {
				drainAudio(sys, *audio)
			}
			sdl.Do(func() {
				fi.blit(sys.FrameBuffer().Image())
				df := time.Now().Sub(now)
				tot += df
				cnt++
				window.UpdateSurface()
				now = time.Now()
			})
		}
	})
}

func handleKey(sys *c64.C64, sym sdl.Keycode, down bool) {
	switch sym {
	case sdl.K_UP:
		sys.Joystick1().OnKey(input.ButtonUp, down)
	case sdl.K_DOWN:
		sys.Joystick1().OnKey(input.ButtonDown, down)
	case sdl.K_LEFT:
		sys.Joystick1().OnKey(input.ButtonLeft, down)
	case sdl.K_RIGHT:
		sys.Joystick1().OnKey(input.ButtonRight, down)
	case sdl.K_LCTRL, sdl.K_RCTRL:
		sys.Joystick1().OnKey(input.ButtonFire, down)
	default:
		if rc, ok := keyMap[sym]; ok {
			sys.Keyboard().SetKey(rc[0], rc[1], down)
		}
	}
}

// drainAudio pulls whatever samples the SID produced this frame out of
// the sound ring and queues them to the SDL audio device; silence
// (from the opaque SID stub) is queued the same as real samples would
// be, keeping the audio clock running in lockstep with the video
// frame rate.
func drainAudio(sys *c64.C64, dev sdl.AudioDeviceID) {
	ring := sys.SoundRing()
	if ring == nil {
		return
	}
	n := ring.Len()
	if n == 0 {
		return
	}
	buf := make([]int16, n)
	for i := range buf {
		buf[i] = ring.Pop()
	}
	if err := sdl.QueueAudio(dev, int16SliceToBytes(buf)); err != nil {
		log.Printf("QueueAudio: %v", err)
	}
}

func int16SliceToBytes(s []int16) []byte {
	b := make([]byte, len(s)*2)
	for i, v := range s {
		b[2*i] = byte(v)
		b[2*i+1] = byte(v >> 8)
	}
	return b
}
