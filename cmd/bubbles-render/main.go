// cmd/bubbles-render/main.go
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"image/png"
	"io"
	"log"
	"os"

	"golang.org/x/image/draw"

	"bubble-flutter/internal/bubbles"
	"bubble-flutter/internal/config"
	"bubble-flutter/internal/schedule"
	"bubble-flutter/pkg/render"
)

var errBadOptions = errors.New("bad options")

type options struct {
	preset config.Preset
	width  int
	height int
	frames int
	warmup int
	delay  int     // сотые доли секунды между кадрами GIF
	scale  float64 // масштаб выходного изображения
	seed   int64
	format string // gif или png (последний кадр)
}

func main() {
	configPath := flag.String("config", "", "YAML file with a single effect config")
	presetsPath := flag.String("presets", "", "YAML file with presets (built-in presets when empty)")
	presetName := flag.String("preset", "", "preset to render")
	out := flag.String("out", "bubbles.gif", "output file")
	o := options{}
	flag.IntVar(&o.width, "width", config.ScreenWidth, "surface width")
	flag.IntVar(&o.height, "height", config.ScreenHeight, "surface height")
	flag.IntVar(&o.frames, "frames", 120, "frames to capture")
	flag.IntVar(&o.warmup, "warmup", 0, "frames to run before capturing")
	flag.IntVar(&o.delay, "delay", 2, "delay between GIF frames in 1/100 s")
	flag.Float64Var(&o.scale, "scale", 1, "output scale factor")
	flag.Int64Var(&o.seed, "seed", 1, "random seed, 0 means time based")
	flag.StringVar(&o.format, "format", "gif", "gif or png")
	flag.Parse()

	preset, err := pickPreset(*configPath, *presetsPath, *presetName)
	if err != nil {
		log.Fatal(err)
	}
	o.preset = preset

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	w := bufio.NewWriter(f)
	if err := renderAnimation(w, o, log.Default()); err != nil {
		f.Close()
		log.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		log.Fatal(err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s (%s, %d frames)", *out, preset.Name, o.frames)
}

func pickPreset(configPath, presetsPath, name string) (config.Preset, error) {
	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return config.Preset{}, err
		}
		return config.Preset{Name: "custom", Config: *cfg}, nil
	}
	presets, err := config.LoadPresets(presetsPath)
	if err != nil {
		return config.Preset{}, err
	}
	p, _, err := config.FindPreset(presets, name)
	return p, err
}

// renderAnimation прогоняет эффект на программной поверхности и пишет
// результат в out
func renderAnimation(out io.Writer, o options, logger *log.Logger) error {
	if o.frames <= 0 || o.scale <= 0 || o.warmup < 0 {
		return fmt.Errorf("%w: frames=%d scale=%.2f warmup=%d", errBadOptions, o.frames, o.scale, o.warmup)
	}
	if o.format != "gif" && o.format != "png" {
		return fmt.Errorf("%w: unknown format %q", errBadOptions, o.format)
	}

	surface := render.NewSoftwareSurface()
	frames := schedule.NewQueue()
	cfg := o.preset.Config
	engine, err := bubbles.New(bubbles.Options{
		Container: bubbles.FixedSize{Width: o.width, Height: o.height},
		Surface:   surface,
		Scheduler: frames,
		Config:    &cfg,
		Seed:      o.seed,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	if err := engine.Start(); err != nil {
		return err
	}
	defer engine.Pause()

	for i := 0; i < o.warmup; i++ {
		if err := frames.Step(); err != nil {
			return err
		}
	}

	bounds := image.Rect(0, 0, int(float64(o.width)*o.scale), int(float64(o.height)*o.scale))
	if bounds.Empty() {
		return fmt.Errorf("%w: empty output at scale %.2f", errBadOptions, o.scale)
	}

	anim := &gif.GIF{}
	var last *image.RGBA
	for i := 0; i < o.frames; i++ {
		if i > 0 {
			if err := frames.Step(); err != nil {
				return err
			}
		}
		last = composite(surface.Image(), bounds)
		if o.format == "gif" {
			pal := image.NewPaletted(bounds, palette.Plan9)
			draw.FloydSteinberg.Draw(pal, bounds, last, image.Point{})
			anim.Image = append(anim.Image, pal)
			anim.Delay = append(anim.Delay, o.delay)
		}
	}

	if o.format == "png" {
		return png.Encode(out, last)
	}
	return gif.EncodeAll(out, anim)
}

// composite кладёт кадр на фон и масштабирует к bounds
func composite(frame *image.RGBA, bounds image.Rectangle) *image.RGBA {
	full := image.NewRGBA(frame.Bounds())
	draw.Draw(full, full.Bounds(), image.NewUniform(config.BackgroundColor), image.Point{}, draw.Src)
	draw.Draw(full, full.Bounds(), frame, frame.Bounds().Min, draw.Over)
	if full.Bounds() == bounds {
		return full
	}
	dst := image.NewRGBA(bounds)
	draw.CatmullRom.Scale(dst, bounds, full, full.Bounds(), draw.Src, nil)
	return dst
}
