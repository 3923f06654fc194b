// Package app wires configuration, assets and the engine packages into the
// running viewer and owns the platform loop.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/castleview/internal/assets"
	"github.com/Faultbox/castleview/internal/config"
	"github.com/Faultbox/castleview/internal/engine/camera"
	"github.com/Faultbox/castleview/internal/engine/debug"
	"github.com/Faultbox/castleview/internal/engine/framebuffer"
	"github.com/Faultbox/castleview/internal/engine/input"
	"github.com/Faultbox/castleview/internal/engine/lighting"
	"github.com/Faultbox/castleview/internal/engine/renderer"
	"github.com/Faultbox/castleview/internal/engine/scene"
	"github.com/Faultbox/castleview/internal/engine/shader"
	"github.com/Faultbox/castleview/internal/engine/shaders"
	"github.com/Faultbox/castleview/internal/engine/shadow"
	"github.com/Faultbox/castleview/internal/engine/skybox"
	"github.com/Faultbox/castleview/internal/engine/ui"
	"github.com/Faultbox/castleview/internal/engine/window"
	"github.com/Faultbox/castleview/internal/frame"
	"github.com/Faultbox/castleview/internal/logger"
	"github.com/Faultbox/castleview/internal/motion"
	"github.com/Faultbox/castleview/internal/state"
)

// App is the running viewer.
type App struct {
	cfg    *config.Config
	assets *assets.Manager

	// exactly one platform shell is set
	win *window.Window
	gui *ui.Backend

	renderer *renderer.Renderer
	models   *renderer.Models
	lit      *shader.Program
	depth    *shader.Program
	cubeMap  *shadow.CubeMap
	sky      *skybox.Skybox
	target   *framebuffer.Framebuffer // ImGui shell only

	scene  *scene.Scene
	ctx    *frame.Context
	driver *frame.Driver
	input  input.Frame
}

// New creates the window and GL context, loads every scene resource and
// restores persisted state. A failing model, shader or shadow target is
// fatal; a failing skybox only disables it.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing viewer",
		zap.String("backend", cfg.Window.Backend),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	a := &App{
		cfg:    cfg,
		assets: assets.NewManager("."),
	}
	for _, root := range cfg.Scene.ResourceRoots {
		if err := a.assets.AddRoot(root); err != nil {
			logger.Warn("skipping resource root", zap.String("root", root), zap.Error(err))
		}
	}
	if err := a.setup(); err != nil {
		a.Close()
		return nil, err
	}

	logger.Info("viewer initialized", zap.String("models", a.models.Stats()))
	return a, nil
}

func (a *App) setup() error {
	cfg := a.cfg
	if err := a.openPlatform(); err != nil {
		return err
	}

	// Renderer must come after the GL context.
	var err error
	a.renderer, err = renderer.New(renderer.Config{Width: cfg.Window.Width, Height: cfg.Window.Height})
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	if err := a.loadScene(); err != nil {
		return err
	}
	a.loadSkybox()
	a.buildContext()

	if cfg.State.Persist {
		a.restoreState()
	}

	a.driver = &frame.Driver{
		Ctx:    a.ctx,
		Scene:  a.scene,
		Picker: a.scene,
		Near:   cfg.Render.Near,
		Far:    cfg.Render.Far,
		Screenshots: &debug.FramebufferCapture{
			Pixels: a.renderer,
			Shots:  debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "castleview"),
		},
	}
	if a.sky != nil {
		a.driver.Skybox = a.sky
	}
	if a.gui == nil {
		a.driver.Raster = a.renderer
		return nil
	}

	a.target, err = framebuffer.New(int32(cfg.Window.Width), int32(cfg.Window.Height))
	if err != nil {
		return fmt.Errorf("failed to create scene target: %w", err)
	}
	a.driver.Raster = a.target
	a.driver.GUI = &ui.Panels{ModelStats: a.models.Stats}
	return nil
}

func (a *App) openPlatform() error {
	wc := a.cfg.Window
	if wc.Backend == config.BackendSDL {
		w, err := window.New(window.Config{
			Title:      wc.Title,
			Width:      wc.Width,
			Height:     wc.Height,
			Fullscreen: wc.Fullscreen,
			VSync:      wc.VSync,
		}, input.DefaultBindings())
		if err != nil {
			return fmt.Errorf("failed to create window: %w", err)
		}
		a.win = w
		return nil
	}

	b, err := ui.NewBackend(wc.Title, int32(wc.Width), int32(wc.Height))
	if err != nil {
		return fmt.Errorf("failed to create imgui backend: %w", err)
	}
	a.gui = b
	return nil
}

func (a *App) loadScene() error {
	rc := a.cfg.Render

	var err error
	a.lit, err = shader.New("lighting", shader.Sources{
		Vertex:   shaders.LightingVertexShader,
		Fragment: shaders.LightingFragmentShader,
	})
	if err != nil {
		return err
	}
	a.depth, err = shader.New("depth", shader.Sources{
		Vertex:   shaders.DepthVertexShader,
		Geometry: shaders.DepthGeometryShader,
		Fragment: shaders.DepthFragmentShader,
	})
	if err != nil {
		return err
	}

	a.cubeMap, err = shadow.NewCubeMap(rc.ShadowResolution)
	if err != nil {
		return err
	}

	a.models = renderer.NewModels(a.assets)
	objects, err := scene.Build(a.cfg.Scene.Objects, a.models)
	if err != nil {
		return fmt.Errorf("building scene: %w", err)
	}

	a.scene = &scene.Scene{
		Objects: objects,
		Shadow: scene.ShadowPass{
			Program: a.depth,
			Target:  a.cubeMap,
			Near:    rc.ShadowNear,
			Far:     rc.ShadowFar,
		},
		Lit: scene.LitPass{
			Program:   a.lit,
			Raster:    a.renderer,
			Depth:     a.cubeMap,
			Shininess: rc.Shininess,
			ShadowFar: rc.ShadowFar,
		},
	}
	return nil
}

func (a *App) loadSkybox() {
	sky, err := skybox.New(a.assets, a.cfg.Skybox.Faces)
	if err != nil {
		logger.Warn("skybox disabled", zap.Error(err))
		return
	}
	a.sky = sky
}

func (a *App) buildContext() {
	cfg := a.cfg
	a.ctx = &frame.Context{
		ClearColor:    cfg.Render.ClearColor,
		Blinn:         cfg.Render.Blinn,
		SkyboxEnabled: cfg.Skybox.Enabled && a.sky != nil,
		Lights:        lighting.NewRig(cfg.Lighting),
		Camera:        camera.FromConfig(cfg.Camera),
		Width:         cfg.Window.Width,
		Height:        cfg.Window.Height,
	}
	a.ctx.SetGUI(cfg.Debug.ShowGUI)

	if cfg.Scene.Animated == "" {
		return
	}
	obj := a.scene.Find(cfg.Scene.Animated)
	if obj == nil {
		logger.Warn("animated object not found", zap.String("name", cfg.Scene.Animated))
		return
	}
	a.ctx.Path = motion.NewAnimator(obj, obj.Position(), motion.ParamsFrom(cfg.Scene.Path))
}

func (a *App) restoreState() {
	snap := a.ctx.Snapshot()
	if err := state.Load(a.cfg.State.Path, &snap); err != nil {
		logger.Warn("ignoring program state", zap.String("path", a.cfg.State.Path), zap.Error(err))
		return
	}
	a.ctx.Restore(snap)
	logger.Info("program state restored", zap.String("path", a.cfg.State.Path))
}

func (a *App) saveState() {
	snap := a.ctx.Snapshot()
	if err := state.Save(a.cfg.State.Path, &snap); err != nil {
		logger.Warn("failed to save program state", zap.String("path", a.cfg.State.Path), zap.Error(err))
		return
	}
	logger.Info("program state saved", zap.String("path", a.cfg.State.Path))
}

// Close releases resources in reverse order of creation.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.target != nil {
		a.target.Destroy()
	}
	if a.sky != nil {
		a.sky.Destroy()
	}
	if a.models != nil {
		a.models.Close()
	}
	if a.cubeMap != nil {
		a.cubeMap.Destroy()
	}
	if a.depth != nil {
		a.depth.Delete()
	}
	if a.lit != nil {
		a.lit.Delete()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.win != nil {
		a.win.Close()
	}
	hits, misses := a.assets.Stats()
	logger.Debug("asset cache", zap.Int("hits", hits), zap.Int("misses", misses))
	a.assets.Close()
}
