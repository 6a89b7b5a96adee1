// Package config handles simulation configuration loading and management.
package config

// Config holds all simulation settings.
type Config struct {
	Planet     PlanetConfig     `yaml:"planet"`
	Noise      NoiseConfig      `yaml:"noise"`
	Locomotion LocomotionConfig `yaml:"locomotion"`
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// PlanetConfig holds planet generation settings. Values are immutable for
// the lifetime of one generation; Regenerate replaces all derived state.
type PlanetConfig struct {
	Radius          float32 `yaml:"radius"`
	GravityStrength float32 `yaml:"gravity_strength"`
	HeightScale     float32 `yaml:"height_scale"`
	TextureWidth    int     `yaml:"texture_width"`
	TextureHeight   int     `yaml:"texture_height"`
	RadialSegments  int     `yaml:"radial_segments"`  // visual mesh; collision uses half
	HeightSegments  int     `yaml:"height_segments"`  // visual mesh; collision uses half
	ShowCollision   bool    `yaml:"show_collision"`   // draw collision mesh wireframe
	PropCount       int     `yaml:"prop_count"`       // decorative props to place
	PropThreshold   float32 `yaml:"prop_threshold"`   // accept props below this raw height [0,1]
	Seed            int64   `yaml:"seed"`             // 0 = derive from wall clock
}

// NoiseConfig holds heightfield noise parameters.
type NoiseConfig struct {
	Frequency   float32 `yaml:"frequency"`
	Octaves     int     `yaml:"octaves"`
	Lacunarity  float32 `yaml:"lacunarity"`
	Persistence float32 `yaml:"persistence"`
}

// LocomotionConfig holds character controller settings.
type LocomotionConfig struct {
	WalkSpeed        float32 `yaml:"walk_speed"`
	FlySpeed         float32 `yaml:"fly_speed"`
	JumpVelocity     float32 `yaml:"jump_velocity"`
	AlignSpeed       float32 `yaml:"align_speed"`       // rad/s bound on up-axis tracking
	Friction         float32 `yaml:"friction"`          // exponential decay rate, 1/s
	MouseSensitivity float32 `yaml:"mouse_sensitivity"` // rad per pixel
	FloorMaxAngle    float32 `yaml:"floor_max_angle"`   // slope tolerance, radians
}

// GraphicsConfig holds viewer window settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Planet: PlanetConfig{
			Radius:          50,
			GravityStrength: 9.8,
			HeightScale:     10,
			TextureWidth:    256,
			TextureHeight:   128,
			RadialSegments:  128,
			HeightSegments:  64,
			ShowCollision:   false,
			PropCount:       100,
			PropThreshold:   0.55,
			Seed:            0,
		},
		Noise: NoiseConfig{
			Frequency:   1.5,
			Octaves:     5,
			Lacunarity:  2.0,
			Persistence: 0.5,
		},
		Locomotion: LocomotionConfig{
			WalkSpeed:        8,
			FlySpeed:         25,
			JumpVelocity:     6,
			AlignSpeed:       3,
			Friction:         6,
			MouseSensitivity: 0.003,
			FloorMaxAngle:    0.8,
		},
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
