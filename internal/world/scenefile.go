package world

import (
	"fmt"
	"os"

	"mirgo/internal/components"
	"mirgo/internal/engine"
	"mirgo/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

// --- YAML types ---

type SceneFile struct {
	Name    string      `yaml:"name,omitempty"`
	Objects []ObjectDef `yaml:"objects"`
}

type ObjectDef struct {
	Name     string     `yaml:"name"`
	Tags     []string   `yaml:"tags,omitempty,flow"`
	Position [3]float32 `yaml:"position,flow"`
	// Rotation is euler angles in degrees.
	Rotation   [3]float32  `yaml:"rotation,flow"`
	Scale      [3]float32  `yaml:"scale,flow"`
	Components []yaml.Node `yaml:"components,omitempty"`
}

type componentHeader struct {
	Type string `yaml:"type"`
}

type meshRendererDef struct {
	Type  string     `yaml:"type"`
	Mesh  string     `yaml:"mesh"`
	Size  [3]float32 `yaml:"size,flow"`
	Color string     `yaml:"color,omitempty"`
}

type boxColliderDef struct {
	Type string     `yaml:"type"`
	Size [3]float32 `yaml:"size,flow"`
}

type sphereColliderDef struct {
	Type   string  `yaml:"type"`
	Radius float32 `yaml:"radius"`
}

type meshColliderDef struct {
	Type      string          `yaml:"type"`
	Triangles [][3][3]float32 `yaml:"triangles"`
}

type rigidbodyDef struct {
	Type   string   `yaml:"type"`
	Mass   *float32 `yaml:"mass,omitempty"`
	Static bool     `yaml:"static,omitempty"`
}

// --- Color mapping ---

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Pink":      rl.Pink,
	"SkyBlue":   rl.SkyBlue,
	"Lime":      rl.Lime,
	"Magenta":   rl.Magenta,
	"White":     rl.White,
	"LightGray": rl.LightGray,
	"Gray":      rl.Gray,
	"DarkGray":  rl.DarkGray,
	"Black":     rl.Black,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"Maroon":    rl.Maroon,
	"Gold":      rl.Gold,
}

var nameByColor map[rl.Color]string

func init() {
	nameByColor = make(map[rl.Color]string, len(colorByName))
	for name, c := range colorByName {
		nameByColor[c] = name
	}
}

func lookupColor(name string) rl.Color {
	if c, ok := colorByName[name]; ok {
		return c
	}
	var r, g, b, a uint8
	if n, _ := fmt.Sscanf(name, "#%2x%2x%2x%2x", &r, &g, &b, &a); n == 4 {
		return rl.Color{R: r, G: g, B: b, A: a}
	}
	return rl.White
}

func lookupColorName(c rl.Color) string {
	if name, ok := nameByColor[c]; ok {
		return name
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func vec3(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

func array3(v rl.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// --- Loading ---

// LoadSceneFile reads and parses a YAML scene.
func LoadSceneFile(path string) (*SceneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return ParseScene(data)
}

func ParseScene(data []byte) (*SceneFile, error) {
	var sf SceneFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return &sf, nil
}

// Build creates the scene objects in file order. Nothing is registered
// with physics here.
func (sf *SceneFile) Build() ([]*engine.GameObject, error) {
	objects := make([]*engine.GameObject, 0, len(sf.Objects))
	for i, def := range sf.Objects {
		g, err := def.build()
		if err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", i, def.Name, err)
		}
		objects = append(objects, g)
	}
	return objects, nil
}

func (def ObjectDef) build() (*engine.GameObject, error) {
	g := engine.NewGameObject(def.Name)
	g.Tags = def.Tags
	g.Transform.Position = vec3(def.Position)
	g.Transform.SetEuler(vec3(def.Rotation))

	// Default scale to 1 if zero
	if def.Scale != [3]float32{} {
		g.Transform.Scale = vec3(def.Scale)
	}

	for i := range def.Components {
		node := &def.Components[i]
		var header componentHeader
		if err := node.Decode(&header); err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}

		var (
			c   engine.Component
			err error
		)
		switch header.Type {
		case "MeshRenderer":
			c, err = loadMeshRenderer(node)
		case "BoxCollider":
			c, err = loadBoxCollider(node)
		case "SphereCollider":
			c, err = loadSphereCollider(node)
		case "MeshCollider":
			c, err = loadMeshCollider(node)
		case "Rigidbody":
			c, err = loadRigidbody(node)
		default:
			err = fmt.Errorf("unknown component type %q", header.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		g.AddComponent(c)
	}
	return g, nil
}

func loadMeshRenderer(node *yaml.Node) (engine.Component, error) {
	var def meshRendererDef
	if err := node.Decode(&def); err != nil {
		return nil, err
	}
	meshType, ok := components.ParseMeshType(def.Mesh)
	if !ok {
		return nil, fmt.Errorf("unknown mesh %q", def.Mesh)
	}
	size := vec3(def.Size)
	if size == (rl.Vector3{}) {
		size = rl.Vector3{X: 1, Y: 1, Z: 1}
	}
	return components.NewMeshRenderer(meshType, lookupColor(def.Color), size), nil
}

func loadBoxCollider(node *yaml.Node) (engine.Component, error) {
	var def boxColliderDef
	if err := node.Decode(&def); err != nil {
		return nil, err
	}
	size := vec3(def.Size)
	if size == (rl.Vector3{}) {
		size = rl.Vector3{X: 1, Y: 1, Z: 1}
	}
	return components.NewBoxCollider(size), nil
}

func loadSphereCollider(node *yaml.Node) (engine.Component, error) {
	def := sphereColliderDef{Radius: 0.5}
	if err := node.Decode(&def); err != nil {
		return nil, err
	}
	return components.NewSphereCollider(def.Radius), nil
}

func loadMeshCollider(node *yaml.Node) (engine.Component, error) {
	var def meshColliderDef
	if err := node.Decode(&def); err != nil {
		return nil, err
	}
	tris := make([]physics.Triangle, len(def.Triangles))
	for i, t := range def.Triangles {
		tris[i] = physics.Triangle{A: vec3(t[0]), B: vec3(t[1]), C: vec3(t[2])}
	}
	return components.NewMeshCollider(tris), nil
}

// loadRigidbody defaults a missing mass to 1. An explicit mass is kept as
// written so registration can reject it.
func loadRigidbody(node *yaml.Node) (engine.Component, error) {
	var def rigidbodyDef
	if err := node.Decode(&def); err != nil {
		return nil, err
	}
	if def.Static {
		return components.NewStaticRigidbody(), nil
	}
	mass := float32(1)
	if def.Mass != nil {
		mass = *def.Mass
	}
	return components.NewRigidbody(mass), nil
}

// --- Saving ---

// NewSceneFile captures objects and their serializable components.
func NewSceneFile(name string, objects []*engine.GameObject) (*SceneFile, error) {
	sf := &SceneFile{Name: name}
	for _, g := range objects {
		def := ObjectDef{
			Name:     g.Name,
			Tags:     g.Tags,
			Position: array3(g.Transform.Position),
			Rotation: array3(g.Transform.Euler()),
			Scale:    array3(g.Transform.Scale),
		}
		for _, c := range g.Components() {
			v := serializeComponent(c)
			if v == nil {
				continue
			}
			var node yaml.Node
			if err := node.Encode(v); err != nil {
				return nil, fmt.Errorf("encode %s component: %w", g.Name, err)
			}
			def.Components = append(def.Components, node)
		}
		sf.Objects = append(sf.Objects, def)
	}
	return sf, nil
}

func SaveSceneFile(path string, sf *SceneFile) error {
	data, err := yaml.Marshal(sf)
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}

func serializeComponent(c engine.Component) any {
	switch comp := c.(type) {
	case *components.MeshRenderer:
		return meshRendererDef{
			Type:  "MeshRenderer",
			Mesh:  comp.MeshType.String(),
			Size:  array3(comp.Size),
			Color: lookupColorName(comp.Color),
		}
	case *components.BoxCollider:
		return boxColliderDef{Type: "BoxCollider", Size: array3(comp.Size)}
	case *components.SphereCollider:
		return sphereColliderDef{Type: "SphereCollider", Radius: comp.Radius}
	case *components.MeshCollider:
		def := meshColliderDef{Type: "MeshCollider"}
		for _, t := range comp.Triangles {
			def.Triangles = append(def.Triangles, [3][3]float32{array3(t.A), array3(t.B), array3(t.C)})
		}
		return def
	case *components.Rigidbody:
		if comp.IsStatic {
			return rigidbodyDef{Type: "Rigidbody", Static: true}
		}
		mass := comp.Mass
		return rigidbodyDef{Type: "Rigidbody", Mass: &mass}
	}
	return nil
}
