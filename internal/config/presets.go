package config

import "sort"

// Presets are well-known landmarks in the Mandelbrot set, usable as jump
// targets from the CLI and the explorer.
var Presets = map[string]*ViewConfig{
	"home": {X: DefaultCenterX, Y: DefaultCenterY, Zoom: DefaultZoom},

	// Seahorse Valley: dense filaments and repeating seahorse curls
	"seahorse": {X: -0.75, Y: 0.1, Zoom: 0.05},

	// Elephant Valley: large bulb with trunk-like tendrils
	"elephant": {X: -1.8, Y: -0.06, Zoom: 0.05},

	// Spiral Minibrot: small Mandelbrot copy with tight spiral arms
	"spiral_minibrot": {X: -0.74275, Y: 0.13175, Zoom: 0.00075},

	// Triple Spiral: threefold symmetric spiral structure
	"triple_spiral": {X: -0.7465, Y: 0.0965, Zoom: 0.0015},

	// Valley of the Dragon: deep, highly detailed spiral filaments
	"dragon": {X: -0.7375, Y: 0.1825, Zoom: 0.0025},

	// Minibrot in a Mini-Spiral: self-similar copy inside a spiral arm
	"mini_spiral": {X: -1.73825, Y: -0.02275, Zoom: 0.00075},
}

func GetPreset(name string) *ViewConfig {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
