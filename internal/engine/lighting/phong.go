// Package lighting describes the single light and material of the mesh view
// and uploads them as Phong shader uniforms.
package lighting

// Uniforms receives lighting parameters. *shader.Program satisfies it.
type Uniforms interface {
	SetVec3(name string, v [3]float32)
	SetFloat(name string, v float32)
}

// Light is a positional light with Phong terms.
type Light struct {
	Position [3]float32
	Ambient  [3]float32
	Diffuse  [3]float32
	Specular [3]float32
}

// Material is the surface response of the mesh.
type Material struct {
	Ambient   [3]float32
	Diffuse   [3]float32
	Specular  [3]float32
	Shininess float32
}

// Apply uploads the light.
func (l Light) Apply(u Uniforms) {
	u.SetVec3("uLightPosition", l.Position)
	u.SetVec3("uLightAmbient", l.Ambient)
	u.SetVec3("uLightDiffuse", l.Diffuse)
	u.SetVec3("uLightSpecular", l.Specular)
}

// Apply uploads the material. Shininess below 1 is clamped to 1 so pow()
// in the shader stays defined.
func (m Material) Apply(u Uniforms) {
	u.SetVec3("uMaterialAmbient", m.Ambient)
	u.SetVec3("uMaterialDiffuse", m.Diffuse)
	u.SetVec3("uMaterialSpecular", m.Specular)
	s := m.Shininess
	if s < 1 {
		s = 1
	}
	u.SetFloat("uShininess", s)
}
