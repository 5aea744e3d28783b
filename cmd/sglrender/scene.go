package main

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/chewxy/math32"
)

// Scene is the TOML description of one frame.
type Scene struct {
	Width  int        `toml:"width"`
	Height int        `toml:"height"`
	Clear  [4]float32 `toml:"clear"`
	Depth  bool       `toml:"depth"`
	Meshes []Mesh     `toml:"mesh"`
}

// Mesh is a triangle list with optional per-vertex color and texture
// coordinates.
type Mesh struct {
	// Positions holds x, y, z per vertex.
	Positions []float32 `toml:"positions"`
	// Colors holds r, g, b, a per vertex. Empty means opaque white.
	Colors []float32 `toml:"colors"`
	// UVs holds u, v per vertex.
	UVs []float32 `toml:"uvs"`
	// Indices selects vertices; empty draws them in order.
	Indices []uint32 `toml:"indices"`
	// Texture is an image file, relative to the scene file.
	Texture string `toml:"texture"`
	// Tint multiplies every fragment. Zero means white.
	Tint [4]float32 `toml:"tint"`

	Translate [3]float32 `toml:"translate"`
	Scale     [3]float32 `toml:"scale"`
	// Rotate is a rotation about z in degrees.
	Rotate float32 `toml:"rotate"`

	Blend bool `toml:"blend"`
	Cull  bool `toml:"cull"`
}

var (
	errNoMeshes = errors.New("scene has no meshes")
	errSize     = errors.New("invalid frame size")
)

// LoadScene reads and validates a scene file.
func LoadScene(path string) (*Scene, error) {
	var s Scene
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &s, nil
}

// ParseScene decodes a scene held in memory.
func ParseScene(data string) (*Scene, error) {
	var s Scene
	if _, err := toml.Decode(data, &s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scene) validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", errSize, s.Width, s.Height)
	}
	if len(s.Meshes) == 0 {
		return errNoMeshes
	}
	for i, m := range s.Meshes {
		n := len(m.Positions)
		switch {
		case n == 0 || n%3 != 0:
			return fmt.Errorf("mesh %d: positions must be x, y, z triples", i)
		case len(m.Colors) != 0 && len(m.Colors) != n/3*4:
			return fmt.Errorf("mesh %d: want %d color components, have %d", i, n/3*4, len(m.Colors))
		case len(m.UVs) != 0 && len(m.UVs) != n/3*2:
			return fmt.Errorf("mesh %d: want %d uv components, have %d", i, n/3*2, len(m.UVs))
		}
		for _, idx := range m.Indices {
			if int(idx) >= n/3 {
				return fmt.Errorf("mesh %d: index %d out of range", i, idx)
			}
		}
	}
	return nil
}

func (m *Mesh) tint() [4]float32 {
	if m.Tint == ([4]float32{}) {
		return [4]float32{1, 1, 1, 1}
	}
	return m.Tint
}

// transform returns the column-major model matrix: scale, then rotate
// about z, then translate.
func (m *Mesh) transform() [16]float32 {
	sx, sy, sz := m.Scale[0], m.Scale[1], m.Scale[2]
	if m.Scale == ([3]float32{}) {
		sx, sy, sz = 1, 1, 1
	}
	sin, cos := math32.Sincos(m.Rotate * math32.Pi / 180)
	return [16]float32{
		cos * sx, sin * sx, 0, 0,
		-sin * sy, cos * sy, 0, 0,
		0, 0, sz, 0,
		m.Translate[0], m.Translate[1], m.Translate[2], 1,
	}
}
