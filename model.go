package main

import (
	"image/color"

	"github.com/zucenko/mazescape/model"
)

const (
	screenWidth  = 800
	screenHeight = 640
	TOP_BAR      = 40
)

func HexToF32(u uint32) GameColor {
	b := float64(0xff&u) / 255
	g := float64(0xff&(u>>8)) / 255
	r := float64(0xff&(u>>16)) / 255
	return GameColor{r, g, b}
}

type GameColor struct {
	r float64
	g float64
	b float64
}

func (c GameColor) RGBA(alpha float64) color.RGBA {
	return color.RGBA{
		R: uint8(c.r * alpha * 255),
		G: uint8(c.g * alpha * 255),
		B: uint8(c.b * alpha * 255),
		A: uint8(alpha * 255),
	}
}

var (
	COLOR_BACKGROUND = HexToF32(0x1e1e24)
	COLOR_WALL       = HexToF32(0x444444)
	COLOR_FLOOR      = HexToF32(0x2c2c34)
	COLOR_PLAYER     = HexToF32(0x34fbf6)
	COLOR_KEY        = HexToF32(0xedbc1e)
	COLOR_DOOR       = HexToF32(0x8b5a2b)
	COLOR_OPEN_DOOR  = HexToF32(0x0abd38)
	COLOR_BOOST      = HexToF32(0xcb18dd)
	COLOR_HINT       = HexToF32(0xfa3636)
	COLOR_TEXT       = HexToF32(0xffffff)
	COLOR_WARN       = HexToF32(0xfa3636)
)

// Board maps maze cells to window pixels. Tiles are square and the maze is
// centred below the HUD bar.
type Board struct {
	Tile   int
	X0, Y0 int
}

func NewBoard(width, height, cols, rows int) Board {
	tile := width / cols
	if t := (height - TOP_BAR) / rows; t < tile {
		tile = t
	}
	if tile < 1 {
		tile = 1
	}
	return Board{
		Tile: tile,
		X0:   (width - tile*cols) / 2,
		Y0:   TOP_BAR + (height-TOP_BAR-tile*rows)/2,
	}
}

// Corner is the top left pixel of a cell, fractional cells allowed.
func (b Board) Corner(row, col float64) (float64, float64) {
	return float64(b.X0) + col*float64(b.Tile), float64(b.Y0) + row*float64(b.Tile)
}

func (b Board) Centre(p model.Position) (float64, float64) {
	x, y := b.Corner(float64(p.Row), float64(p.Col))
	half := float64(b.Tile) / 2
	return x + half, y + half
}
