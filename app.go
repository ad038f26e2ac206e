package main

import (
	"context"
	"log"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chisel-cad/chisel/pkg/arrange"
	"github.com/chisel-cad/chisel/pkg/config"
	"github.com/chisel-cad/chisel/pkg/engine"
	"github.com/chisel-cad/chisel/pkg/kernel"
	"github.com/chisel-cad/chisel/pkg/kernel/sdfx"
	"github.com/chisel-cad/chisel/pkg/scene"
	"github.com/chisel-cad/chisel/pkg/snap"
	"github.com/chisel-cad/chisel/pkg/tessellate"
)

// colorPalette assigns distinct colors per cabinet; loose parts cycle
// through it by part index.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App is the Wails backend. It owns the current scene and exposes
// evaluation, drag resolution and settings methods to the frontend.
// All bindings serialize on mu so each resolver call sees a
// consistent scene snapshot.
type App struct {
	ctx    context.Context
	engine *engine.Engine
	kernel kernel.Kernel

	mu       sync.Mutex
	scene    *scene.Scene
	prefs    config.Preferences
	prefPath string
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices  []float32 `json:"vertices"`
	Normals   []float32 `json:"normals"`
	Indices   []uint32  `json:"indices"`
	PartID    string    `json:"partId"`
	PartName  string    `json:"partName"`
	CabinetID string    `json:"cabinetId"`
	Color     string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result of evaluating scene source.
type EvalResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// DragResult is the outcome of one drag frame, sent back to the
// frontend every mousemove while a part or cabinet is dragged.
type DragResult struct {
	Snapped  bool                      `json:"snapped"`
	Position [3]float64                `json:"position"`
	Points   []snap.VisualizationPoint `json:"points"`
	Error    string                    `json:"error,omitempty"`
}

// NewApp creates a new App with an engine, the sdfx kernel, an empty
// scene and preferences loaded from the default path.
func NewApp() *App {
	a := &App{
		engine: engine.NewEngine(),
		kernel: sdfx.New(),
		scene:  scene.New(),
		prefs:  config.Default(),
	}

	path, err := config.DefaultPath()
	if err != nil {
		log.Printf("preferences path unavailable: %v", err)
		return a
	}
	a.prefPath = path

	prefs, err := config.Load(path)
	if err != nil {
		log.Printf("load preferences: %v", err)
		return a
	}
	a.prefs = prefs
	a.scene.Settings = prefs.Snap
	return a
}

// startup is called by Wails on app startup. The context is saved so
// Wails runtime methods can be called later.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// shutdown persists preferences on exit.
func (a *App) shutdown(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.savePrefs()
}

// savePrefs writes preferences if a path was resolved. Callers hold mu.
func (a *App) savePrefs() {
	if a.prefPath == "" {
		return
	}
	if err := config.Save(a.prefPath, a.prefs); err != nil {
		log.Printf("save preferences: %v", err)
	}
}

// Evaluate takes scene DSL source, replaces the current scene on
// success and returns mesh data plus errors. This is the primary
// binding for the editor view.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	sc, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	a.mu.Lock()
	// The source is the source of truth: a (snap-settings ...) form
	// in it replaces whatever the settings panel held.
	a.scene = sc
	a.scene.Version++
	res := scene.Validate(sc)
	meshes, terr := tessellate.Tessellate(sc, a.kernel)
	a.mu.Unlock()

	for _, w := range res.Warnings {
		result.Warnings = append(result.Warnings, EvalErrorData{Message: w.Error()})
	}

	if terr != nil {
		log.Printf("Tessellate error: %v", terr)
		result.Errors = append(result.Errors, EvalErrorData{
			Message: "tessellation failed: " + terr.Error(),
		})
		return result
	}

	cabinetColor := make(map[string]string)
	for i, m := range meshes {
		color := colorPalette[i%len(colorPalette)]
		if m.CabinetID != "" {
			if c, ok := cabinetColor[m.CabinetID]; ok {
				color = c
			} else {
				color = colorPalette[len(cabinetColor)%len(colorPalette)]
				cabinetColor[m.CabinetID] = color
			}
		}
		result.Meshes = append(result.Meshes, MeshData{
			Vertices:  m.Vertices,
			Normals:   m.Normals,
			Indices:   m.Indices,
			PartID:    m.PartID,
			PartName:  m.PartName,
			CabinetID: m.CabinetID,
			Color:     color,
		})
	}

	return result
}

// MovePart resolves one drag frame of a part toward (x, y, z) along
// the named axis and commits the corrected position to the scene.
func (a *App) MovePart(partID string, x, y, z float64, axisName string) DragResult {
	axis, err := scene.ParseAxis(axisName)
	if err != nil {
		return DragResult{Error: err.Error()}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	res, err := arrange.MovePart(a.scene, scene.PartID(partID), r3.Vec{X: x, Y: y, Z: z}, axis, nil)
	if err != nil {
		return DragResult{Error: err.Error()}
	}

	if p := a.scene.Part(scene.PartID(partID)); p != nil {
		p.Position = res.Position
		a.scene.Version++
	}

	return dragResult(res)
}

// MoveCabinet resolves one drag frame of a whole cabinet shifted by
// (dx, dy, dz) along the named axis and commits the move to every
// member part.
func (a *App) MoveCabinet(cabinetID string, dx, dy, dz float64, axisName string) DragResult {
	axis, err := scene.ParseAxis(axisName)
	if err != nil {
		return DragResult{Error: err.Error()}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	id := scene.CabinetID(cabinetID)
	center := a.scene.CabinetCenter(id)
	res, err := arrange.MoveCabinet(a.scene, id, r3.Vec{X: dx, Y: dy, Z: dz}, axis, nil)
	if err != nil {
		return DragResult{Error: err.Error()}
	}

	shift := r3.Sub(res.Position, center)
	for _, p := range a.scene.CabinetParts(id) {
		p.Position = r3.Add(p.Position, shift)
	}
	a.scene.Version++

	return dragResult(res)
}

// SnapIndicators returns ranked indicator points for a part at rest,
// for the overlay shown while hovering.
func (a *App) SnapIndicators(partID string) []snap.VisualizationPoint {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.scene.Settings.ShowGuides {
		return []snap.VisualizationPoint{}
	}
	points, err := arrange.PartIndicators(a.scene, scene.PartID(partID), nil)
	if err != nil {
		log.Printf("SnapIndicators: %v", err)
		return []snap.VisualizationPoint{}
	}
	if points == nil {
		points = []snap.VisualizationPoint{}
	}
	return points
}

// AddPart inserts a loose part with a fresh ID at the given center
// position and returns its ID.
func (a *App) AddPart(name string, sx, sy, sz, px, py, pz float64) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	p := &scene.Part{
		ID:       scene.NewPartID(),
		Name:     name,
		Size:     r3.Vec{X: sx, Y: sy, Z: sz},
		Position: r3.Vec{X: px, Y: py, Z: pz},
	}
	a.scene.AddPart(p)
	a.scene.Version++
	return string(p.ID)
}

// Settings returns the current snap settings.
func (a *App) Settings() scene.SnapSettings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.scene.Settings
}

// UpdateSettings replaces the snap settings and persists them.
func (a *App) UpdateSettings(st scene.SnapSettings) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.scene.Settings = st
	a.scene.Version++
	a.prefs.Snap = st
	a.savePrefs()
}

func dragResult(res arrange.MoveResult) DragResult {
	points := res.Points
	if points == nil {
		points = []snap.VisualizationPoint{}
	}
	return DragResult{
		Snapped:  res.Snapped,
		Position: [3]float64{res.Position.X, res.Position.Y, res.Position.Z},
		Points:   points,
	}
}
