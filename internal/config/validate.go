package config

import "fmt"

// Validate checks the configuration for values that would produce degenerate
// geometry or unusable simulation parameters. It returns a descriptive error
// for the first problem found.
func (c *Config) Validate() error {
	p := &c.Planet
	if p.Radius <= 0 {
		return fmt.Errorf("planet.radius must be positive, got %v", p.Radius)
	}
	if p.HeightScale < 0 {
		return fmt.Errorf("planet.height_scale must not be negative, got %v", p.HeightScale)
	}
	if p.TextureWidth < 1 || p.TextureHeight < 1 {
		return fmt.Errorf("planet texture dimensions must be at least 1x1, got %dx%d",
			p.TextureWidth, p.TextureHeight)
	}
	if p.RadialSegments < 1 || p.HeightSegments < 1 {
		return fmt.Errorf("planet segment counts must be at least 1, got %dx%d",
			p.RadialSegments, p.HeightSegments)
	}
	if p.PropCount < 0 {
		return fmt.Errorf("planet.prop_count must not be negative, got %d", p.PropCount)
	}

	n := &c.Noise
	if n.Octaves < 1 {
		return fmt.Errorf("noise.octaves must be at least 1, got %d", n.Octaves)
	}
	if n.Frequency <= 0 {
		return fmt.Errorf("noise.frequency must be positive, got %v", n.Frequency)
	}

	l := &c.Locomotion
	if l.AlignSpeed <= 0 {
		return fmt.Errorf("locomotion.align_speed must be positive, got %v", l.AlignSpeed)
	}
	if l.Friction < 0 {
		return fmt.Errorf("locomotion.friction must not be negative, got %v", l.Friction)
	}

	return nil
}
