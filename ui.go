package main

import (
	"bytes"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

type toolbarAction struct {
	label string
	run   func()
}

// buildToolbar lays the actions out as a row of buttons under the room.
func buildToolbar(actions []toolbarAction) (*ebitenui.UI, error) {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}
	var face text.Face = &text.GoTextFace{Source: s, Size: 10}

	buttonImage := &widget.ButtonImage{
		Idle:    image.NewNineSliceColor(color.RGBA{180, 180, 180, 255}),
		Hover:   image.NewNineSliceColor(color.RGBA{200, 200, 200, 255}),
		Pressed: image.NewNineSliceColor(color.RGBA{160, 160, 160, 255}),
	}
	textColor := &widget.ButtonTextColor{
		Idle:     color.Black,
		Hover:    color.Black,
		Pressed:  color.RGBA{0, 0, 200, 255},
		Disabled: color.Gray{Y: 128},
	}

	bar := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(4),
			),
		),
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(color.RGBA{40, 40, 40, 255})),
	)
	for _, a := range actions {
		run := a.run
		bar.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(buttonImage),
			widget.ButtonOpts.Text(a.label, &face, textColor),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(56, toolbarHeight-4),
			),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				run()
			}),
		))
	}
	bar.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionEnd,
		StretchHorizontal:  true,
	}

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(bar)
	return &ebitenui.UI{Container: root}, nil
}
