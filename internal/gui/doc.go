// Package gui opens a desktop window on a viewer.Controller.
//
// The default window uses raylib: the grid is rendered into a
// RenderTexture at backing-store size and blitted scaled by the zoom
// factor. Building with the ebiten tag adds an equivalent ebiten window.
// Both drive the controller's frame.Queue once per rendered frame.
package gui
