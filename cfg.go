package main

import (
	"flag"
	"fmt"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/text"
	"github.com/zucenko/mazescape/model"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	configPath = flag.String("config", "", "yaml config file")
	seed       = flag.Int64("seed", 0, "maze seed, 0 picks one from the clock")
	layoutPath = flag.String("layout", "", "play a fixed maze from a layout file")
	debug      = flag.Bool("debug", false, "debug logging")
)

var HudFont, TitleFont font.Face

func loadConfig() (model.Config, error) {
	cfg := model.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = model.LoadConfig(*configPath); err != nil {
			return cfg, err
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	return cfg, nil
}

func loadFonts() error {
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("parse font: %w", err)
	}
	const dpi = 72
	HudFont = truetype.NewFace(tt, &truetype.Options{
		Size:    20,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	TitleFont = truetype.NewFace(tt, &truetype.Options{
		Size:       48,
		DPI:        dpi,
		SubPixelsX: 100,
		Hinting:    font.HintingFull,
	})
	return nil
}

func (g *Game) newWorld() (*model.World, error) {
	if *layoutPath != "" {
		return model.LoadLayout(*layoutPath)
	}
	return model.NewWorld(g.Config, g.Rand)
}

func textWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Round()
}

// prepareTextImage renders s once so it can be drawn scaled.
func prepareTextImage(s string, face font.Face, c GameColor) *ebiten.Image {
	w := textWidth(face, s) + 10
	h := face.Metrics().Height.Round() + 10
	image, _ := ebiten.NewImage(w, h, ebiten.FilterLinear)
	text.Draw(image, s, face, 5, face.Metrics().Ascent.Round()+5, c.RGBA(1))
	return image
}
