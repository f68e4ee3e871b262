// Package level reads YAML scene descriptions and builds them into a
// scene.Scene.
package level

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Lookup failures while building a level.
var (
	ErrUnknownMaterial = errors.New("unknown material")
	ErrUnknownTexture  = errors.New("unknown texture")
	ErrUnknownModel    = errors.New("unknown model")
)

//go:embed default.yaml
var defaultLevel []byte

// Level is the file format.
type Level struct {
	Name    string     `yaml:"name"`
	Ambient [3]float32 `yaml:"ambient"`
	Spawn   *Spawn     `yaml:"spawn"`

	Textures  map[string]string      `yaml:"textures"` // Name -> path
	Models    map[string]string      `yaml:"models"`   // Name -> path
	Materials map[string]MaterialDef `yaml:"materials"`

	Light  LightDef    `yaml:"light"`
	Lights []SimpleDef `yaml:"lights"`

	Objects    []ObjectDef    `yaml:"objects"`
	Composites []CompositeDef `yaml:"composites"`
}

// Spawn places the camera.
type Spawn struct {
	Position [3]float32 `yaml:"position"`
	Yaw      float32    `yaml:"yaw"`
	Pitch    float32    `yaml:"pitch"`
}

// MaterialDef references textures by name.
type MaterialDef struct {
	Kd        [3]float32 `yaml:"kd"`
	Ks        [3]float32 `yaml:"ks"`
	Shininess float32    `yaml:"shininess"`
	Diffuse   string     `yaml:"diffuse"`
	Specular  string     `yaml:"specular"`
	Normal    string     `yaml:"normal"`
	Alpha     *float32   `yaml:"alpha"` // Defaults to 1
}

// OrbitDef moves the primary light in a circle.
type OrbitDef struct {
	Center [3]float32 `yaml:"center"`
	Radius float32    `yaml:"radius"`
	Speed  float32    `yaml:"speed"`
	Height float32    `yaml:"height"`
}

// LightDef is the shadow casting light.
type LightDef struct {
	Position    [3]float32  `yaml:"position"`
	Color       *[3]float32 `yaml:"color"`
	Intensity   *float32    `yaml:"intensity"`
	Attenuation *[3]float32 `yaml:"attenuation"` // Constant, linear, quadratic
	Orbit       *OrbitDef   `yaml:"orbit"`
	CycleColor  bool        `yaml:"cycle_color"`
}

// SimpleDef is an additional light without shadows.
type SimpleDef struct {
	Position  [3]float32 `yaml:"position"`
	Color     [3]float32 `yaml:"color"`
	Intensity float32    `yaml:"intensity"`
	Flicker   bool       `yaml:"flicker"`
}

// RotationDef is a single-axis rotation in degrees.
type RotationDef struct {
	Axis  [3]float32 `yaml:"axis"`
	Angle float32    `yaml:"angle"`
}

// BehaviorDef selects an animation for a dynamic object.
type BehaviorDef struct {
	Type string `yaml:"type"` // rocking_chair, orbit or spin

	// rocking_chair
	Frequency float64 `yaml:"frequency"`
	Radius    float64 `yaml:"radius"`
	Length    float64 `yaml:"length"`

	// orbit
	Center      [3]float32 `yaml:"center"`
	OrbitRadius float32    `yaml:"orbit_radius"`
	Speed       float32    `yaml:"speed"`
	Phase       float32    `yaml:"phase"`

	// spin
	Axis             [3]float32 `yaml:"axis"`
	DegreesPerSecond float32    `yaml:"degrees_per_second"`
}

// ObjectDef is one registry entry.
type ObjectDef struct {
	Name     string       `yaml:"name"`
	Type     string       `yaml:"type"`     // cube, sphere or model
	Model    string       `yaml:"model"`    // Model name for type model
	Fallback string       `yaml:"fallback"` // Type used when the model cannot load
	Position [3]float32   `yaml:"position"`
	Scale    *[3]float32  `yaml:"scale"`
	Radius   float32      `yaml:"radius"`  // Sphere radius
	Flatten  bool         `yaml:"flatten"` // Squash a sphere into a ring
	Rotation *RotationDef `yaml:"rotation"`
	Material string       `yaml:"material"`
	Static   *bool        `yaml:"static"` // Defaults to true
	Layer    string       `yaml:"layer"`  // opaque, transparent or sky
	Behavior *BehaviorDef `yaml:"behavior"`
}

// CompositeDef fills a box with unit cubes.
type CompositeDef struct {
	Name     string     `yaml:"name"`
	Origin   [3]float32 `yaml:"origin"`
	Size     [3]float32 `yaml:"size"`
	Material string     `yaml:"material"`
	Layer    string     `yaml:"layer"`
}

// Parse decodes a level. Unknown keys are rejected.
func Parse(data []byte) (*Level, error) {
	var lv Level
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&lv); err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}
	return &lv, nil
}

// Load reads and parses a level file.
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	lv, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lv, nil
}

// Default returns the built-in two room level.
func Default() *Level {
	lv, err := Parse(defaultLevel)
	if err != nil {
		panic(fmt.Sprintf("built-in level: %v", err))
	}
	return lv
}

// LoadOrDefault loads path, or the built-in level when path is empty.
func LoadOrDefault(path string) (*Level, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
