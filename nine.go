package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten"
)

// Nine draws a frame image stretched to any size while keeping its
// corners unscaled.
type Nine struct {
	image   *ebiten.Image
	alpha   float64
	color   GameColor
	Scale   float64
	cuts    [4]int // source edges, same on both axes
	targets [4][2]float64
	stretch [2]float64
}

// NewFrame paints the button frame: a light border of width border round
// a dark fill, size pixels square.
func NewFrame(size, border int) (*Nine, error) {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	edge := color.RGBA{230, 230, 230, 255}
	fill := color.RGBA{60, 60, 70, 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := fill
			if x < border || y < border || x >= size-border || y >= size-border {
				c = edge
			}
			img.Set(x, y, c)
		}
	}
	eimg, err := ebiten.NewImageFromImage(img, ebiten.FilterDefault)
	if err != nil {
		return nil, err
	}
	third := size / 3
	return &Nine{
		image: eimg,
		alpha: 1,
		color: COLOR_TEXT,
		Scale: 1,
		cuts:  [4]int{0, third, size - third, size},
	}, nil
}

func (n *Nine) Place(x, y, width, height int) {
	for axis, origin := range [2]int{x, y} {
		extent := [2]int{width, height}[axis]
		n.targets[0][axis] = float64(origin)
		n.targets[1][axis] = float64(origin) + n.Scale*float64(n.cuts[1]-n.cuts[0])
		n.targets[2][axis] = float64(origin+extent) - n.Scale*float64(n.cuts[3]-n.cuts[2])
		inner := n.targets[2][axis] - n.targets[1][axis]
		n.stretch[axis] = inner / float64(n.cuts[2]-n.cuts[1])
	}
}

func (n *Nine) scale(axis, band int) float64 {
	if band == 1 {
		return n.stretch[axis]
	}
	return n.Scale
}

func (n *Nine) Draw(screen *ebiten.Image) {
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			src := image.Rect(n.cuts[col], n.cuts[row], n.cuts[col+1], n.cuts[row+1])
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(n.scale(0, col), n.scale(1, row))
			op.GeoM.Translate(n.targets[col][0], n.targets[row][1])
			op.ColorM.Scale(n.color.r, n.color.g, n.color.b, n.alpha)
			screen.DrawImage(n.image.SubImage(src).(*ebiten.Image), op)
		}
	}
}
