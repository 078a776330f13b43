package core

// BladeVertex matches the per-vertex input of the grass shaders.
type BladeVertex struct {
	Pos [3]float32
	UV  [2]float32
}

const (
	BladeWidth    = 0.08
	BladeHeight   = 1.4
	bladeSegments = 4
)

// BladeMesh builds a thin upright plane, one column wide and four rows tall,
// with its base on y = 0 so the sway term (localY squared) is zero at the root.
func BladeMesh() ([]BladeVertex, []uint16) {
	const gridX, gridY = 1, bladeSegments
	const cols = gridX + 1

	segW := float32(BladeWidth) / gridX
	segH := float32(BladeHeight) / gridY

	vertices := make([]BladeVertex, 0, cols*(gridY+1))
	for iy := 0; iy <= gridY; iy++ {
		y := BladeHeight - float32(iy)*segH
		for ix := 0; ix <= gridX; ix++ {
			x := float32(ix)*segW - BladeWidth/2
			vertices = append(vertices, BladeVertex{
				Pos: [3]float32{x, y, 0},
				UV:  [2]float32{float32(ix) / gridX, 1 - float32(iy)/gridY},
			})
		}
	}

	indices := make([]uint16, 0, gridX*gridY*6)
	for iy := 0; iy < gridY; iy++ {
		for ix := 0; ix < gridX; ix++ {
			a := uint16(ix + cols*iy)
			b := uint16(ix + cols*(iy+1))
			c := uint16(ix + 1 + cols*(iy+1))
			d := uint16(ix + 1 + cols*iy)
			indices = append(indices, a, b, d, b, c, d)
		}
	}
	return vertices, indices
}
