package scene

import (
	"embed"
	"fmt"
	"io/fs"
	"math/rand"
	"path"
	"sort"
	"strings"
)

//go:embed scenes/*.yaml
var builtinFS embed.FS

// BuiltinNames lists the embedded scenes, sorted.
func BuiltinNames() []string {
	entries, err := fs.ReadDir(builtinFS, "scenes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// Builtin decodes an embedded scene by name.
func Builtin(name string) (*File, error) {
	data, err := builtinFS.ReadFile("scenes/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("builtin scene %q: %w", name, err)
	}
	return Decode(data, FormatYAML)
}

// Open loads a builtin scene when name matches one, otherwise a file path.
func Open(name string) (*File, error) {
	for _, b := range BuiltinNames() {
		if b == name {
			return Builtin(name)
		}
	}
	return Load(name)
}

var rainColors = []string{"Red", "Blue", "Green", "Purple", "Orange", "Yellow", "Pink", "SkyBlue", "Lime", "Magenta"}

// Rain generates count spheres scattered in a cube of the given size above a
// static ground sphere. The same seed yields the same scene.
func Rain(count int, size float32, seed int64) *File {
	rng := rand.New(rand.NewSource(seed))
	elasticity, friction := float32(1), float32(0.5)

	f := &File{
		Name: "rain",
		Objects: []ObjectDef{{
			Name:       "Ground",
			Color:      "DarkGray",
			Position:   [3]float32{0, -1000, 0},
			Static:     true,
			Elasticity: &elasticity,
			Friction:   &friction,
			Collider:   ColliderDef{Type: "sphere", Radius: 1000},
		}},
	}

	for i := 0; i < count; i++ {
		e := 0.2 + rng.Float32()*0.6
		f.Objects = append(f.Objects, ObjectDef{
			Name:  fmt.Sprintf("Drop%d", i),
			Color: rainColors[i%len(rainColors)],
			Position: [3]float32{
				(rng.Float32() - 0.5) * size,
				1 + rng.Float32()*size,
				(rng.Float32() - 0.5) * size,
			},
			Velocity:   [3]float32{(rng.Float32() - 0.5) * 2, 0, (rng.Float32() - 0.5) * 2},
			Mass:       0.5 + rng.Float32(),
			Elasticity: &e,
			Collider:   ColliderDef{Type: "sphere", Radius: 0.2 + rng.Float32()*0.4},
		})
	}
	return f
}
