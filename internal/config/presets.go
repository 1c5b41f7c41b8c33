package config

import "sort"

// Presets are the starting patterns for a 4×4 grid, one per quadrant.
var Presets = map[string][][]int{
	"bottom-left":  {{2, 0}, {2, 1}, {3, 0}, {3, 1}},
	"bottom-right": {{2, 2}, {2, 3}, {3, 2}, {3, 3}},
	"top-left":     {{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	"top-right":    {{0, 2}, {0, 3}, {1, 2}, {1, 3}},
	"empty":        {},
}

func GetPreset(name string) [][]int {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	out := make([][]int, len(p))
	for i, rc := range p {
		out[i] = []int{rc[0], rc[1]}
	}
	return out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
