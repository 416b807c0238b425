package app

import "arscene/quarkgl"

// Camera and scene constants.
const (
	CameraFOV  = 70 // vertical, degrees
	CameraNear = 0.01
	CameraFar  = 20

	CubeSize    = 0.5
	CubeColor   = 0x00ff00
	CubeOpacity = 0.5

	LightColor = 0xffffff
)

// Stage is the static scene and everything it was built from.
type Stage struct {
	Scene    *quarkgl.Scene
	Camera   *quarkgl.PerspectiveCamera
	Geometry *quarkgl.Geometry
	Material *quarkgl.MeshPhongMaterial
	Cubes    [2]*quarkgl.Mesh
	Light    *quarkgl.AmbientLight
}

// BuildScene creates the scene for a viewport of width x height CSS
// pixels. The camera aspect is taken from that size once; it is not updated
// if the viewport changes later.
//
// Both cubes share one geometry and one material.
func BuildScene(width, height int) *Stage {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}

	s := &Stage{
		Scene:    quarkgl.NewScene(),
		Camera:   quarkgl.NewPerspectiveCamera(CameraFOV, aspect, CameraNear, CameraFar),
		Geometry: quarkgl.NewBoxGeometry(CubeSize, CubeSize, CubeSize),
	}

	s.Material = quarkgl.NewMeshPhongMaterial(quarkgl.Hex(CubeColor))
	s.Material.Opacity = CubeOpacity
	s.Material.Transparent = true

	left := quarkgl.NewMesh(s.Geometry, s.Material)
	left.SetPosition(-0.75, 1, -2)
	right := quarkgl.NewMesh(s.Geometry, s.Material)
	right.SetPosition(0.75, 1, -2)
	s.Cubes = [2]*quarkgl.Mesh{left, right}

	// Position has no effect on ambient shading.
	s.Light = quarkgl.NewAmbientLight(quarkgl.Hex(LightColor))
	s.Light.SetPosition(0, 3, 0)

	s.Scene.Add(left, right, s.Light, s.Camera)
	return s
}
