package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"impulse3d/internal/physics"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScene is wrapped by every validation failure.
var ErrInvalidScene = errors.New("invalid scene")

// --- File types ---

type File struct {
	Name    string      `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Physics PhysicsDef  `json:"physics" yaml:"physics" toml:"physics"`
	Objects []ObjectDef `json:"objects" yaml:"objects" toml:"objects"`
}

// PhysicsDef overrides fields of physics.DefaultConfig. Unset fields keep
// their defaults.
type PhysicsDef struct {
	Enabled *bool       `json:"enabled,omitempty" yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	Mode    string      `json:"mode,omitempty" yaml:"mode,omitempty" toml:"mode,omitempty"`
	Debug   *bool       `json:"debug,omitempty" yaml:"debug,omitempty" toml:"debug,omitempty"`
	Gravity *[3]float32 `json:"gravity,omitempty" yaml:"gravity,omitempty" toml:"gravity,omitempty"`
}

type ObjectDef struct {
	Name     string     `json:"name" yaml:"name" toml:"name"`
	Color    string     `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Position [3]float32 `json:"position" yaml:"position" toml:"position"`
	// Rotation is XYZ Euler angles in degrees. Orientation, a (w, x, y, z)
	// quaternion, wins when both are set.
	Rotation        [3]float32  `json:"rotation,omitempty" yaml:"rotation,omitempty" toml:"rotation,omitempty"`
	Orientation     *[4]float32 `json:"orientation,omitempty" yaml:"orientation,omitempty" toml:"orientation,omitempty"`
	Velocity        [3]float32  `json:"velocity,omitempty" yaml:"velocity,omitempty" toml:"velocity,omitempty"`
	AngularVelocity [3]float32  `json:"angularVelocity,omitempty" yaml:"angularVelocity,omitempty" toml:"angularVelocity,omitempty"`
	Static          bool        `json:"static,omitempty" yaml:"static,omitempty" toml:"static,omitempty"`
	Mass            float32     `json:"mass,omitempty" yaml:"mass,omitempty" toml:"mass,omitempty"`
	Elasticity      *float32    `json:"elasticity,omitempty" yaml:"elasticity,omitempty" toml:"elasticity,omitempty"`
	Friction        *float32    `json:"friction,omitempty" yaml:"friction,omitempty" toml:"friction,omitempty"`
	Collider        ColliderDef `json:"collider" yaml:"collider" toml:"collider"`
}

type ColliderDef struct {
	Type   string  `json:"type" yaml:"type" toml:"type"`
	Radius float32 `json:"radius" yaml:"radius" toml:"radius"`
}

// --- Formats ---

type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return 0, fmt.Errorf("unsupported scene extension %q", filepath.Ext(path))
}

// Decode parses and validates a scene.
func Decode(data []byte, format Format) (*File, error) {
	var f File
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &f)
	case FormatYAML:
		err = yaml.Unmarshal(data, &f)
	case FormatTOML:
		err = toml.Unmarshal(data, &f)
	default:
		err = fmt.Errorf("unknown format %v", format)
	}
	if err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func Encode(f *File, format Format) ([]byte, error) {
	var data []byte
	var err error
	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(f, "", "  ")
	case FormatYAML:
		data, err = yaml.Marshal(f)
	case FormatTOML:
		data, err = toml.Marshal(f)
	default:
		err = fmt.Errorf("unknown format %v", format)
	}
	if err != nil {
		return nil, fmt.Errorf("marshal scene: %w", err)
	}
	return data, nil
}

// --- Loading ---

func Load(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return Decode(data, format)
}

func Save(path string, f *File) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	data, err := Encode(f, format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}

// Validate checks every object and the physics section.
func (f *File) Validate() error {
	if f.Physics.Mode != "" {
		if _, err := physics.ParseDetectionMode(f.Physics.Mode); err != nil {
			return fmt.Errorf("%w: physics: %w", ErrInvalidScene, err)
		}
	}

	for i, obj := range f.Objects {
		if err := obj.validate(); err != nil {
			return fmt.Errorf("%w: object %d (%q): %s", ErrInvalidScene, i, obj.Name, err)
		}
	}
	return nil
}

func (o ObjectDef) validate() error {
	switch o.Collider.Type {
	case "sphere":
		if o.Collider.Radius <= 0 {
			return fmt.Errorf("sphere radius must be positive, got %v", o.Collider.Radius)
		}
	case "":
		return errors.New("missing collider")
	default:
		return fmt.Errorf("unsupported collider %q", o.Collider.Type)
	}

	if !o.Static && o.Mass <= 0 {
		return fmt.Errorf("dynamic body needs a positive mass, got %v", o.Mass)
	}
	if o.Elasticity != nil && (*o.Elasticity < 0 || *o.Elasticity > 1) {
		return fmt.Errorf("elasticity must be in [0,1], got %v", *o.Elasticity)
	}
	if o.Friction != nil && *o.Friction < 0 {
		return fmt.Errorf("friction must not be negative, got %v", *o.Friction)
	}
	return nil
}

// Config overlays the physics section on base.
func (f *File) Config(base physics.Config) physics.Config {
	cfg := base
	p := f.Physics
	if p.Enabled != nil {
		cfg.Enabled = *p.Enabled
	}
	if p.Debug != nil {
		cfg.Debug = *p.Debug
	}
	if p.Mode != "" {
		if mode, err := physics.ParseDetectionMode(p.Mode); err == nil {
			cfg.Detection = mode
		}
	}
	if p.Gravity != nil {
		cfg.Gravity = mgl32.Vec3(*p.Gravity)
	}
	return cfg
}

// --- Spawning ---

// Object is a spawned body with its presentation data.
type Object struct {
	Handle physics.Handle
	Name   string
	Color  string
}

// Spawn adds every object to w in file order.
func (f *File) Spawn(w *physics.World) ([]Object, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	objects := make([]Object, 0, len(f.Objects))
	for _, def := range f.Objects {
		body, shape, tr := def.build()
		objects = append(objects, Object{
			Handle: w.Add(body, shape, tr),
			Name:   def.Name,
			Color:  def.Color,
		})
	}
	return objects, nil
}

func (o ObjectDef) build() (physics.Body, physics.Shape, physics.Transform) {
	body := physics.NewBody()
	if !o.Static {
		body.Mass = physics.Kilograms(o.Mass)
	}
	if o.Elasticity != nil {
		body.Elasticity = *o.Elasticity
	}
	if o.Friction != nil {
		body.Friction = *o.Friction
	}
	body.LinearVelocity = mgl32.Vec3(o.Velocity)
	body.AngularVelocity = mgl32.Vec3(o.AngularVelocity)

	tr := physics.NewTransform(mgl32.Vec3(o.Position))
	if o.Orientation != nil {
		q := o.Orientation
		tr.Rotation = mgl32.Quat{W: q[0], V: mgl32.Vec3{q[1], q[2], q[3]}}.Normalize()
	} else if o.Rotation != ([3]float32{}) {
		tr.Rotation = mgl32.AnglesToQuat(
			mgl32.DegToRad(o.Rotation[0]),
			mgl32.DegToRad(o.Rotation[1]),
			mgl32.DegToRad(o.Rotation[2]),
			mgl32.XYZ,
		)
	}

	return body, physics.NewSphere(o.Collider.Radius), tr
}

// Snapshot captures the current state of spawned objects as a scene that
// reproduces it.
func Snapshot(w *physics.World, cfg physics.Config, objects []Object) *File {
	enabled, debug := cfg.Enabled, cfg.Debug
	gravity := [3]float32(cfg.Gravity)
	f := &File{
		Physics: PhysicsDef{
			Enabled: &enabled,
			Mode:    cfg.Detection.String(),
			Debug:   &debug,
			Gravity: &gravity,
		},
	}

	for _, obj := range objects {
		if !w.Bodies.Contains(obj.Handle) {
			continue
		}
		e := w.Bodies.Get(obj.Handle)
		q := e.Transform.Rotation
		elasticity, friction := e.Body.Elasticity, e.Body.Friction

		def := ObjectDef{
			Name:            obj.Name,
			Color:           obj.Color,
			Position:        [3]float32(e.Transform.Translation),
			Orientation:     &[4]float32{q.W, q.V[0], q.V[1], q.V[2]},
			Velocity:        [3]float32(e.Body.LinearVelocity),
			AngularVelocity: [3]float32(e.Body.AngularVelocity),
			Static:          e.Body.Mass.Kind == physics.MassStatic,
			Elasticity:      &elasticity,
			Friction:        &friction,
		}
		if !def.Static {
			def.Mass = e.Body.Mass.Value
		}
		switch e.Shape.Type {
		case physics.ShapeSphere:
			def.Collider = ColliderDef{Type: "sphere", Radius: e.Shape.Sphere.Radius}
		}
		f.Objects = append(f.Objects, def)
	}
	return f
}
