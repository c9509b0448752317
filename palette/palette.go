// Package palette holds the fixed material colour table the scene draws from.
package palette

import (
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// Names of the colours used by the mesh keyframes and the watermark.
const (
	DeepPurple = "deepPurple"
	LightGreen = "lightGreen"
	LightBlue  = "lightBlue"
	Amber      = "amber"
	Black      = "black"
	White      = "white"
	BlueGray   = "blueGray"
	Red        = "red"
)

var table = map[string]colorful.Color{
	"red50":         {R: 1, G: 0.92, B: 0.93},
	"red500":        {R: 0.96, G: 0.26, B: 0.21},
	"red900":        {R: 0.72, G: 0.11, B: 0.11},
	"pink50":        {R: 0.99, G: 0.89, B: 0.93},
	"pink500":       {R: 0.91, G: 0.12, B: 0.39},
	"purple500":     {R: 0.61, G: 0.15, B: 0.69},
	"deepPurple600": {R: 0.37, G: 0.21, B: 0.69},
	"blue500":       {R: 0.13, G: 0.59, B: 0.95},
	"lightBlue600":  {R: 0.01, G: 0.61, B: 0.9},
	"green500":      {R: 0.3, G: 0.69, B: 0.31},
	"lightGreen600": {R: 0.49, G: 0.7, B: 0.26},
	"amber900":      {R: 1, G: 0.44, B: 0},
	"deepOrange900": {R: 0.75, G: 0.21, B: 0.05},
	"blueGray50":    {R: 0.93, G: 0.94, B: 0.95},
	"white":         {R: 1, G: 1, B: 1},
	"black":         {R: 0, G: 0, B: 0},
}

// Short names map onto the shade the scene actually uses.
var aliases = map[string]string{
	DeepPurple: "deepPurple600",
	LightGreen: "lightGreen600",
	LightBlue:  "lightBlue600",
	Amber:      "amber900",
	BlueGray:   "blueGray50",
	Red:        "red500",
}

// Lookup returns the colour registered under name. Aliases resolve to
// their material shade.
func Lookup(name string) (colorful.Color, bool) {
	if target, ok := aliases[name]; ok {
		name = target
	}
	c, ok := table[name]
	return c, ok
}

// MustLookup is like Lookup but panics when name is unknown. It is meant
// for the built-in keyframe tables, which are fixed at compile time.
func MustLookup(name string) colorful.Color {
	c, ok := Lookup(name)
	if !ok {
		panic("palette: unknown colour " + name)
	}
	return c
}

// Names lists every colour and alias name in sorted order.
func Names() []string {
	names := make([]string, 0, len(table)+len(aliases))
	for n := range table {
		names = append(names, n)
	}
	for n := range aliases {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
