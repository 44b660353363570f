package gui

import (
	"errors"
	"fmt"

	"github.com/san-kum/cellview/internal/pointer"
	"github.com/san-kum/cellview/internal/viewer"
)

// ErrNoEbiten is returned by RunEbiten in builds without the ebiten tag.
var ErrNoEbiten = errors.New("gui: ebiten window requires building with -tags ebiten")

const keyHints = "SPACE pause  N step  R reset  H hud  Q quit"

// Options configures a window.
type Options struct {
	Title     string
	Zoom      float64
	FrameRate int
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "cellview"
	}
	if o.Zoom <= 0 {
		o.Zoom = 1
	}
	if o.FrameRate <= 0 {
		o.FrameRate = 60
	}
	return o
}

func statusText(ctrl *viewer.Controller) string {
	switch {
	case ctrl.Err() != nil:
		return "FAULT: " + ctrl.Err().Error()
	case ctrl.Running():
		return "RUNNING"
	default:
		return "PAUSED"
	}
}

// hudLines returns the overlay text, top to bottom.
func hudLines(ctrl *viewer.Controller, last *pointer.Cell) []string {
	line := fmt.Sprintf("%s  gen %d  pop %d", statusText(ctrl), ctrl.Generation(), ctrl.Population())
	if last != nil {
		line += fmt.Sprintf("  toggled (%d,%d)", last.Row, last.Col)
	}
	return []string{line, ctrl.FPS().String(), keyHints}
}
