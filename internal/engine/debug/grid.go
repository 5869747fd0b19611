package debug

// GridLines returns line-pair vertices for a square floor grid on the XZ
// plane at height y, centred on the origin. halfCells cells extend from the
// center in each direction.
func GridLines(halfCells int, cellSize, y float32) []float32 {
	if halfCells <= 0 || cellSize <= 0 {
		return nil
	}
	extent := float32(halfCells) * cellSize
	lines := 2*halfCells + 1

	vertices := make([]float32, 0, lines*2*2*3)
	for i := -halfCells; i <= halfCells; i++ {
		p := float32(i) * cellSize
		// Line parallel to Z
		vertices = append(vertices, p, y, -extent, p, y, extent)
		// Line parallel to X
		vertices = append(vertices, -extent, y, p, extent, y, p)
	}
	return vertices
}
