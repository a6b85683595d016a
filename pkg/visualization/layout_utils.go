package visualization

import "math"

// normalizePositions scales positions to fit within bounds
func normalizePositions(positions map[string]Position, width, height, padding float64) map[string]Position {
	if len(positions) == 0 {
		return positions
	}

	// Find bounds
	minX, maxX := math.MaxFloat64, -math.MaxFloat64
	minY, maxY := math.MaxFloat64, -math.MaxFloat64

	for _, pos := range positions {
		minX = math.Min(minX, pos.X)
		maxX = math.Max(maxX, pos.X)
		minY = math.Min(minY, pos.Y)
		maxY = math.Max(maxY, pos.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY

	if rangeX < 0.01 {
		rangeX = 1
	}
	if rangeY < 0.01 {
		rangeY = 1
	}

	// Scale to fit bounds with padding
	targetWidth := width - 2*padding
	targetHeight := height - 2*padding

	normalized := make(map[string]Position, len(positions))
	for id, pos := range positions {
		normalized[id] = Position{
			X: padding + ((pos.X-minX)/rangeX)*targetWidth,
			Y: padding + ((pos.Y-minY)/rangeY)*targetHeight,
		}
	}

	return normalized
}

// defaultPadding fills in the margin used when a config leaves it at zero.
func defaultPadding(config *LayoutConfig) *LayoutConfig {
	if config.Padding == 0 {
		config.Padding = 50
	}
	return config
}

// center is the middle of the layout box and maxRadius the largest ring
// that keeps the padding.
func (c *LayoutConfig) center() (Position, float64) {
	mid := Position{X: c.Width / 2, Y: c.Height / 2}
	return mid, math.Min(mid.X, mid.Y) - c.Padding
}

// placeRing spreads ids evenly on a circle, the first at angle zero.
func placeRing(positions map[string]Position, mid Position, radius float64, ids []string) {
	step := 2 * math.Pi / float64(len(ids))
	for i, id := range ids {
		sin, cos := math.Sincos(step * float64(i))
		positions[id] = Position{X: mid.X + radius*cos, Y: mid.Y + radius*sin}
	}
}

// Grid maps positions onto a cols x rows character grid, returning the cell
// of each student. Positions are assumed to lie within width x height.
func Grid(positions map[string]Position, width, height float64, cols, rows int) map[string][2]int {
	cells := make(map[string][2]int, len(positions))
	if cols <= 0 || rows <= 0 || width <= 0 || height <= 0 {
		return cells
	}
	for id, pos := range positions {
		c := int(pos.X / width * float64(cols))
		r := int(pos.Y / height * float64(rows))
		cells[id] = [2]int{min(max(c, 0), cols-1), min(max(r, 0), rows-1)}
	}
	return cells
}
