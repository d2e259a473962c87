package imageproc

// mask is a binary image, row-major.
type mask struct {
	w, h int
	bits []bool
}

func newMask(w, h int) *mask {
	return &mask{w: w, h: h, bits: make([]bool, w*h)}
}

func (m *mask) at(x, y int) bool {
	return m.bits[y*m.w+x]
}

func (m *mask) count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// largestRegion returns a mask holding only the biggest 8-connected foreground
// region, or nil when there is no foreground at all.
func (m *mask) largestRegion() *mask {
	labels := make([]int, len(m.bits))
	var (
		bestLabel, bestSize int
		next                = 1
		queue               []int
	)

	for start, on := range m.bits {
		if !on || labels[start] != 0 {
			continue
		}
		label := next
		next++
		size := 0
		labels[start] = label
		queue = append(queue[:0], start)
		for len(queue) > 0 {
			i := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			size++
			x, y := i%m.w, i/m.w
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= m.w || ny >= m.h {
						continue
					}
					j := ny*m.w + nx
					if m.bits[j] && labels[j] == 0 {
						labels[j] = label
						queue = append(queue, j)
					}
				}
			}
		}
		if size > bestSize {
			bestSize, bestLabel = size, label
		}
	}

	if bestSize == 0 {
		return nil
	}
	out := newMask(m.w, m.h)
	for i, l := range labels {
		out.bits[i] = l == bestLabel
	}
	return out
}

// fillHoles turns on every background pixel that cannot reach the image border
// through 4-connected background.
func (m *mask) fillHoles() {
	outside := make([]bool, len(m.bits))
	var queue []int
	push := func(x, y int) {
		i := y*m.w + x
		if !m.bits[i] && !outside[i] {
			outside[i] = true
			queue = append(queue, i)
		}
	}
	for x := 0; x < m.w; x++ {
		push(x, 0)
		push(x, m.h-1)
	}
	for y := 0; y < m.h; y++ {
		push(0, y)
		push(m.w-1, y)
	}
	for len(queue) > 0 {
		i := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		x, y := i%m.w, i/m.w
		if x > 0 {
			push(x-1, y)
		}
		if x < m.w-1 {
			push(x+1, y)
		}
		if y > 0 {
			push(x, y-1)
		}
		if y < m.h-1 {
			push(x, y+1)
		}
	}
	for i := range m.bits {
		if !outside[i] {
			m.bits[i] = true
		}
	}
}

func (m *mask) dilate(r int) *mask { return m.square(r, true) }
func (m *mask) erode(r int) *mask  { return m.square(r, false) }

// square applies a (2r+1)x(2r+1) max (grow) or min filter as two 1-D passes.
// Pixels outside the image never take part, so erosion does not eat the border.
func (m *mask) square(r int, grow bool) *mask {
	tmp := newMask(m.w, m.h)
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			v := !grow
			for d := -r; d <= r; d++ {
				nx := x + d
				if nx < 0 || nx >= m.w {
					continue
				}
				if grow {
					v = v || m.at(nx, y)
				} else {
					v = v && m.at(nx, y)
				}
			}
			tmp.bits[y*m.w+x] = v
		}
	}

	out := newMask(m.w, m.h)
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			v := !grow
			for d := -r; d <= r; d++ {
				ny := y + d
				if ny < 0 || ny >= m.h {
					continue
				}
				if grow {
					v = v || tmp.at(x, ny)
				} else {
					v = v && tmp.at(x, ny)
				}
			}
			out.bits[y*m.w+x] = v
		}
	}
	return out
}
