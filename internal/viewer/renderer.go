package viewer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Theoffs06/godot-planets/internal/logger"
	"github.com/Theoffs06/godot-planets/internal/planet"
	"github.com/Theoffs06/godot-planets/internal/planet/terrain"
	"github.com/Theoffs06/godot-planets/pkg/math"
)

const planetVertexShader = `#version 410 core
layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uViewProj;

out vec3 vNormal;
out vec3 vLocalPos;

void main() {
	vec4 world = uModel * vec4(aPos, 1.0);
	vNormal = mat3(uModel) * aNormal;
	vLocalPos = aPos;
	gl_Position = uViewProj * world;
}
`

const planetFragmentShader = `#version 410 core
in vec3 vNormal;
in vec3 vLocalPos;

uniform vec3 uLightDir;
uniform vec3 uLowColor;
uniform vec3 uHighColor;
uniform float uRadius;
uniform float uHeightScale;
uniform float uFlatColor; // 1 = ignore lighting (wireframe pass)

out vec4 fragColor;

void main() {
	if (uFlatColor > 0.5) {
		fragColor = vec4(uLowColor, 1.0);
		return;
	}
	// Blend ground color by displacement above the base radius.
	float h = clamp((length(vLocalPos) - uRadius) / max(uHeightScale, 1e-3), 0.0, 1.0);
	vec3 base = mix(uLowColor, uHighColor, h);

	vec3 n = normalize(vNormal);
	float diffuse = max(dot(n, -uLightDir), 0.0);
	vec3 color = base * (0.25 + 0.75 * diffuse);
	fragColor = vec4(color, 1.0);
}
`

// meshGL holds the GPU buffers for one uploaded mesh.
type meshGL struct {
	vao, posVBO, normVBO, ebo uint32
	indexCount                int32
}

func uploadMesh(m *terrain.Mesh) meshGL {
	var g meshGL
	g.indexCount = int32(len(m.Indices))

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	// Vec3 is three packed float32s, so the slices upload directly.
	gl.GenBuffers(1, &g.posVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.posVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Positions)*3*4, gl.Ptr(m.Positions), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 0, nil)

	gl.GenBuffers(1, &g.normVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.normVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Normals)*3*4, gl.Ptr(m.Normals), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 0, nil)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return g
}

func (g *meshGL) delete() {
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
		gl.DeleteBuffers(1, &g.posVBO)
		gl.DeleteBuffers(1, &g.normVBO)
		gl.DeleteBuffers(1, &g.ebo)
	}
	*g = meshGL{}
}

// PlanetRenderer draws the visual mesh lit, and optionally the collision
// mesh as a wireframe overlay.
type PlanetRenderer struct {
	program uint32

	uModel, uViewProj     int32
	uLightDir             int32
	uLowColor, uHighColor int32
	uRadius, uHeightScale int32
	uFlatColor            int32

	visual    meshGL
	collision meshGL

	radius      float32
	heightScale float32
	model       math.Mat4

	ShowCollision bool
}

// NewPlanetRenderer compiles the planet program and sets global GL state.
func NewPlanetRenderer() (*PlanetRenderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	logger.Info("opengl ready", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	program, err := CompileProgram(planetVertexShader, planetFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("planet shader: %w", err)
	}

	r := &PlanetRenderer{
		program:      program,
		uModel:       GetUniform(program, "uModel"),
		uViewProj:    GetUniform(program, "uViewProj"),
		uLightDir:    GetUniform(program, "uLightDir"),
		uLowColor:    GetUniform(program, "uLowColor"),
		uHighColor:   GetUniform(program, "uHighColor"),
		uRadius:      GetUniform(program, "uRadius"),
		uHeightScale: GetUniform(program, "uHeightScale"),
		uFlatColor:   GetUniform(program, "uFlatColor"),
		model:        math.Identity(),
	}

	gl.Enable(gl.DEPTH_TEST)
	// Planet triangles wind clockwise seen from outside, so backface
	// culling stays off.
	gl.Disable(gl.CULL_FACE)
	gl.ClearColor(0.02, 0.02, 0.06, 1.0)

	return r, nil
}

// SetPlanet uploads (or re-uploads after regeneration) the planet's meshes.
func (r *PlanetRenderer) SetPlanet(p *planet.Planet) {
	r.visual.delete()
	r.collision.delete()

	if !p.Ready() {
		return
	}
	r.visual = uploadMesh(p.VisualMesh())
	r.collision = uploadMesh(p.CollisionMesh())
	r.radius = p.Radius()
	r.heightScale = p.Heightfield().Scale()
	r.model = math.Translate(p.Center().X, p.Center().Y, p.Center().Z)

	logger.Debug("planet meshes uploaded",
		zap.Int("visual_indices", int(r.visual.indexCount)),
		zap.Int("collision_indices", int(r.collision.indexCount)))
}

// Draw renders one frame with the given view and projection.
func (r *PlanetRenderer) Draw(view, proj math.Mat4) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if r.visual.vao == 0 {
		return
	}

	gl.UseProgram(r.program)
	viewProj := proj.Mul(view)
	gl.UniformMatrix4fv(r.uModel, 1, false, r.model.Ptr())
	gl.UniformMatrix4fv(r.uViewProj, 1, false, viewProj.Ptr())

	light := math.Vec3{X: -0.5, Y: -1, Z: -0.3}.Normalize()
	gl.Uniform3f(r.uLightDir, light.X, light.Y, light.Z)
	gl.Uniform1f(r.uRadius, r.radius)
	gl.Uniform1f(r.uHeightScale, r.heightScale)

	// Lit terrain pass.
	gl.Uniform1f(r.uFlatColor, 0)
	gl.Uniform3f(r.uLowColor, 0.18, 0.34, 0.16)
	gl.Uniform3f(r.uHighColor, 0.55, 0.50, 0.42)
	gl.BindVertexArray(r.visual.vao)
	gl.DrawElements(gl.TRIANGLES, r.visual.indexCount, gl.UNSIGNED_INT, nil)

	if r.ShowCollision && r.collision.vao != 0 {
		gl.Uniform1f(r.uFlatColor, 1)
		gl.Uniform3f(r.uLowColor, 1.0, 0.3, 0.3)
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		gl.BindVertexArray(r.collision.vao)
		gl.DrawElements(gl.TRIANGLES, r.collision.indexCount, gl.UNSIGNED_INT, nil)
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	gl.BindVertexArray(0)
}

// Resize updates the GL viewport.
func (r *PlanetRenderer) Resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Close releases GPU resources.
func (r *PlanetRenderer) Close() {
	r.visual.delete()
	r.collision.delete()
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}
