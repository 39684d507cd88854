// Package packer implements skyline bottom-left rectangle packing.
//
// The packer keeps a one-pixel border free on every side of the area so
// that texture filtering never samples outside a placed rectangle.
package packer

import "math"

// Node is one segment of the skyline: the span [X, X+Width) is used up to
// row Y (exclusive).
type Node struct {
	X, Y, Width int
}

// RectanglePacker places rectangles into a fixed area using the skyline
// bottom-left heuristic.
//
// The skyline is sorted left to right and its spans partition the usable
// width. Adjacent nodes never share the same Y after a placement.
//
// A RectanglePacker is not safe for concurrent use.
type RectanglePacker struct {
	width   int
	height  int
	skyline []Node

	// Tracking for utilization
	usedArea int
}

// NewRectanglePacker creates a packer for a width x height area.
func NewRectanglePacker(width, height int) *RectanglePacker {
	p := &RectanglePacker{
		width:   width,
		height:  height,
		skyline: make([]Node, 0, 16),
	}
	p.Reset()
	return p
}

// Reset clears all placements.
func (p *RectanglePacker) Reset() {
	p.usedArea = 0
	p.skyline = append(p.skyline[:0], Node{X: 1, Y: 1, Width: p.width - 2})
}

// Width returns the width of the packed area.
func (p *RectanglePacker) Width() int { return p.width }

// Height returns the height of the packed area.
func (p *RectanglePacker) Height() int { return p.height }

// AddRectangle finds a place for a w x h rectangle and reserves it.
// It returns false, without changing the packer, when nothing fits.
//
// Among all skyline nodes the placement with the lowest top edge wins;
// ties go to the narrowest node.
func (p *RectanglePacker) AddRectangle(w, h int) (x, y int, ok bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}

	bestIndex := -1
	bestTop := math.MaxInt
	bestWidth := math.MaxInt
	for i, node := range p.skyline {
		fy := p.fit(i, w, h)
		if fy < 0 {
			continue
		}
		if top := fy + h; top < bestTop || (top == bestTop && node.Width < bestWidth) {
			bestIndex = i
			bestTop = top
			bestWidth = node.Width
			x, y = node.X, fy
		}
	}
	if bestIndex < 0 {
		return 0, 0, false
	}

	p.skyline = append(p.skyline, Node{})
	copy(p.skyline[bestIndex+1:], p.skyline[bestIndex:])
	p.skyline[bestIndex] = Node{X: x, Y: y + h, Width: w}

	// Shrink or drop the nodes now covered by the new one.
	for i := bestIndex + 1; i < len(p.skyline); i++ {
		node := &p.skyline[i]
		prev := p.skyline[i-1]
		prevEnd := prev.X + prev.Width
		if node.X >= prevEnd {
			break
		}
		shrink := prevEnd - node.X
		node.X += shrink
		node.Width -= shrink
		if node.Width > 0 {
			break
		}
		p.skyline = append(p.skyline[:i], p.skyline[i+1:]...)
		i--
	}

	p.Merge()
	p.usedArea += w * h
	return x, y, true
}

// fit returns the lowest y at which a w x h rectangle can sit with its
// left edge at node index, or -1 if it would leave the usable area.
func (p *RectanglePacker) fit(index, w, h int) int {
	node := p.skyline[index]
	if node.X+w > p.width-1 {
		return -1
	}

	y := node.Y
	for widthLeft := w; widthLeft > 0; index++ {
		if index >= len(p.skyline) {
			return -1
		}
		node = p.skyline[index]
		y = max(y, node.Y)
		if y+h > p.height-1 {
			return -1
		}
		widthLeft -= node.Width
	}
	return y
}

// Merge coalesces adjacent skyline nodes at the same height.
func (p *RectanglePacker) Merge() {
	for i := 0; i < len(p.skyline)-1; {
		if p.skyline[i].Y == p.skyline[i+1].Y {
			p.skyline[i].Width += p.skyline[i+1].Width
			p.skyline = append(p.skyline[:i+1], p.skyline[i+2:]...)
			continue
		}
		i++
	}
}

// UsedArea returns the summed area of all placed rectangles.
func (p *RectanglePacker) UsedArea() int {
	return p.usedArea
}

// Usage returns the fraction of the total area covered by placed
// rectangles (0.0 to 1.0).
func (p *RectanglePacker) Usage() float64 {
	total := p.width * p.height
	if total <= 0 {
		return 0
	}
	return float64(p.usedArea) / float64(total)
}

// Nodes returns a copy of the current skyline.
func (p *RectanglePacker) Nodes() []Node {
	return append([]Node(nil), p.skyline...)
}
