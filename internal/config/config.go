// Package config handles viewer configuration loading and management.
package config

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Render   RenderConfig   `yaml:"render"`
	Camera   CameraConfig   `yaml:"camera"`
	Lighting LightingConfig `yaml:"lighting"`
	Scene    SceneConfig    `yaml:"scene"`
	Skybox   SkyboxConfig   `yaml:"skybox"`
	State    StateConfig    `yaml:"state"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Platform backends.
const (
	BackendImGui = "imgui"
	BackendSDL   = "sdl"
)

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	Backend    string `yaml:"backend"` // "imgui" or "sdl"
}

// RenderConfig holds pass parameters.
type RenderConfig struct {
	ShadowResolution int32      `yaml:"shadow_resolution"`
	ShadowNear       float32    `yaml:"shadow_near"`
	ShadowFar        float32    `yaml:"shadow_far"`
	Near             float32    `yaml:"near"`
	Far              float32    `yaml:"far"`
	Shininess        float32    `yaml:"shininess"`
	Blinn            bool       `yaml:"blinn"`
	ClearColor       mgl32.Vec3 `yaml:"clear_color"`
}

// CameraConfig holds the initial fly camera.
type CameraConfig struct {
	Position    mgl32.Vec3 `yaml:"position"`
	Yaw         float32    `yaml:"yaw"`
	Pitch       float32    `yaml:"pitch"`
	Zoom        float32    `yaml:"zoom"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
}

// PointLightConfig describes the shadow-casting point light.
type PointLightConfig struct {
	Position  mgl32.Vec3 `yaml:"position"`
	Ambient   mgl32.Vec3 `yaml:"ambient"`
	Diffuse   mgl32.Vec3 `yaml:"diffuse"`
	Specular  mgl32.Vec3 `yaml:"specular"`
	Constant  float32    `yaml:"constant"`
	Linear    float32    `yaml:"linear"`
	Quadratic float32    `yaml:"quadratic"`
}

// SpotLightConfig describes one spotlight. Angles are in degrees.
type SpotLightConfig struct {
	PointLightConfig `yaml:",inline"`
	Direction        mgl32.Vec3 `yaml:"direction"`
	CutOffDeg        float32    `yaml:"cut_off_deg"`
	OuterCutOffDeg   float32    `yaml:"outer_cut_off_deg"`
}

// LightingConfig holds the light rig.
type LightingConfig struct {
	Point             PointLightConfig   `yaml:"point"`
	SpotlightsEnabled bool               `yaml:"spotlights_enabled"`
	Spotlights        [2]SpotLightConfig `yaml:"spotlights"`
}

// ObjectConfig places one model in the scene.
type ObjectConfig struct {
	Name        string     `yaml:"name"`
	Model       string     `yaml:"model"`
	Scale       float32    `yaml:"scale"`
	Position    mgl32.Vec3 `yaml:"position"`
	RotationDeg float32    `yaml:"rotation_deg"` // about +Y, applied once at setup
	DoubleSided bool       `yaml:"double_sided"`
}

// PathConfig parameterizes the scripted path of the animated object.
type PathConfig struct {
	CenterOffset mgl32.Vec3 `yaml:"center_offset"`
	Radius       float32    `yaml:"radius"`
	Step         int        `yaml:"step"`
	Limits       [4]int     `yaml:"limits"`
	ArcSteps     float32    `yaml:"arc_steps"`
	Pause        int        `yaml:"pause"`
}

// SceneConfig holds the object layout.
type SceneConfig struct {
	// ResourceRoots override the working directory; the last one wins.
	ResourceRoots []string `yaml:"resource_roots"`

	Objects  []ObjectConfig `yaml:"objects"`
	Animated string         `yaml:"animated"` // name of the object driven by the path
	Path     PathConfig     `yaml:"path"`
}

// SkyboxConfig holds the six cube faces in +X,-X,+Y,-Y,+Z,-Z order.
type SkyboxConfig struct {
	Enabled bool      `yaml:"enabled"`
	Faces   [6]string `yaml:"faces"`
}

// StateConfig controls the persisted program state file.
type StateConfig struct {
	Persist bool   `yaml:"persist"`
	Path    string `yaml:"path"`
}

// DebugConfig holds developer toggles.
type DebugConfig struct {
	ShowGUI       bool   `yaml:"show_gui"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns the stock castle scene.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:   "castleview",
			Width:   800,
			Height:  600,
			VSync:   true,
			Backend: BackendImGui,
		},
		Render: RenderConfig{
			ShadowResolution: 1024,
			ShadowNear:       1.0,
			ShadowFar:        25.0,
			Near:             0.1,
			Far:              100.0,
			Shininess:        32.0,
		},
		Camera: CameraConfig{
			Position:    mgl32.Vec3{0, 10, -8},
			Yaw:         90,
			Pitch:       -30,
			Zoom:        45,
			Speed:       2.5,
			Sensitivity: 0.1,
		},
		Lighting: LightingConfig{
			Point: PointLightConfig{
				Position:  mgl32.Vec3{0, 5, 5},
				Ambient:   mgl32.Vec3{1, 1, 1},
				Diffuse:   mgl32.Vec3{3, 3, 3},
				Specular:  mgl32.Vec3{1, 1, 1},
				Constant:  1.0,
				Linear:    0.09,
				Quadratic: 0.032,
			},
			Spotlights: [2]SpotLightConfig{
				defaultSpot(mgl32.Vec3{-4, 6, 9}, mgl32.Vec3{0.6, -1, -0.4}),
				defaultSpot(mgl32.Vec3{6, 6, 10}, mgl32.Vec3{0.3, -1, 0.3}),
			},
		},
		Scene: SceneConfig{
			Objects: []ObjectConfig{
				{Name: "castle", Model: "resources/objects/castle/Castle OBJ.obj", Scale: 0.25, DoubleSided: true},
				{Name: "henri", Model: "resources/objects/henri/stegosaurus.obj", Scale: 0.007, Position: mgl32.Vec3{-14, 17, 400}},
				{Name: "tank", Model: "resources/objects/tank/T34.vox.obj", Scale: 0.4, Position: mgl32.Vec3{2, 0.1, 5}, RotationDeg: -135},
				{Name: "tree_bare", Model: "resources/objects/trees/Trunk_3.obj", Scale: 0.6, Position: mgl32.Vec3{5, 0, 0}},
				{Name: "tree", Model: "resources/objects/trees/Tree_3.obj", Scale: 0.6, Position: mgl32.Vec3{-7, 0, 13}},
				{Name: "trunk", Model: "resources/objects/trees/Log_5.obj", Scale: 0.6, Position: mgl32.Vec3{12, 0, -7}, RotationDeg: -135},
				{Name: "rock", Model: "resources/objects/rock/Rock1.obj", Scale: 0.6, Position: mgl32.Vec3{9, 0, 13}},
			},
			Animated: "henri",
			Path: PathConfig{
				CenterOffset: mgl32.Vec3{200, 0, 500},
				Radius:       200,
				Step:         2,
				Limits:       [4]int{500, 800, 1100, 1600},
				ArcSteps:     100,
				Pause:        50,
			},
		},
		Skybox: SkyboxConfig{
			Faces: [6]string{
				"resources/textures/skybox/right.jpg",
				"resources/textures/skybox/left.jpg",
				"resources/textures/skybox/top.jpg",
				"resources/textures/skybox/bottom.jpg",
				"resources/textures/skybox/front.jpg",
				"resources/textures/skybox/back.jpg",
			},
		},
		State: StateConfig{
			Path: "resources/program_state.txt",
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func defaultSpot(pos, dir mgl32.Vec3) SpotLightConfig {
	return SpotLightConfig{
		PointLightConfig: PointLightConfig{
			Position:  pos,
			Diffuse:   mgl32.Vec3{1, 1, 1},
			Specular:  mgl32.Vec3{1, 1, 1},
			Constant:  1.0,
			Linear:    0.09,
			Quadratic: 0.032,
		},
		Direction:      dir,
		CutOffDeg:      12.5,
		OuterCutOffDeg: 15.0,
	}
}

// Object returns the object entry with the given name.
func (s SceneConfig) Object(name string) (ObjectConfig, bool) {
	for _, o := range s.Objects {
		if o.Name == name {
			return o, true
		}
	}
	return ObjectConfig{}, false
}
