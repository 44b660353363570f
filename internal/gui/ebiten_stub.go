//go:build !ebiten

package gui

import (
	"github.com/san-kum/cellview/internal/frame"
	"github.com/san-kum/cellview/internal/viewer"
)

// EbitenAvailable reports whether this build includes the ebiten window.
const EbitenAvailable = false

// RunEbiten always fails in the default build.
func RunEbiten(*viewer.Controller, *frame.Queue, Options) error {
	return ErrNoEbiten
}
