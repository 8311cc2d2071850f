package types

// Offset queries expose which bytes of a type are addressable. Downstream
// models use them to decide whether one type can stand in for a sequence of
// smaller types occupying the same extent.

// StartOffsets returns the byte offsets at which addressable elements of n
// begin: every element start for arrays, every field start for structs, and
// offset zero otherwise.
func StartOffsets(n Node) []uint64 {
	switch t := n.(type) {
	case *Array:
		starts := []uint64{}
		for off := uint64(0); off < t.size; off += t.elemSize {
			starts = append(starts, off)
		}
		return starts
	case *Struct:
		starts := []uint64{}
		var cur uint64
		for _, m := range t.Layout {
			if _, ok := m.(*Field); ok {
				starts = append(starts, cur)
			}
			cur += m.Size()
		}
		return starts
	case *Union:
		return []uint64{0}
	default:
		return []uint64{0}
	}
}

// AccessibleOffsets returns every byte offset covered by a field or element
// of n, excluding padding.
func AccessibleOffsets(n Node) []uint64 {
	switch t := n.(type) {
	case *Struct:
		offs := []uint64{}
		var cur uint64
		for _, m := range t.Layout {
			next := cur + m.Size()
			if _, ok := m.(*Field); ok {
				offs = appendRange(offs, cur, next)
			}
			cur = next
		}
		return offs
	case *Union:
		return appendRange([]uint64{}, 0, maxMemberSize(t))
	default:
		return appendRange([]uint64{}, 0, n.Size())
	}
}

// InaccessibleOffsets returns every padding byte offset in n.
func InaccessibleOffsets(n Node) []uint64 {
	switch t := n.(type) {
	case *Struct:
		offs := []uint64{}
		var cur uint64
		for _, m := range t.Layout {
			next := cur + m.Size()
			if _, ok := m.(*Padding); ok {
				offs = appendRange(offs, cur, next)
			}
			cur = next
		}
		return offs
	case *Union:
		if t.Padding == nil {
			return []uint64{}
		}
		return appendRange([]uint64{}, maxMemberSize(t), t.Size())
	default:
		return []uint64{}
	}
}

// ReplaceableWith reports whether n could be replaced by parts laid out
// back to back: same total size, every start offset of n present among the
// parts' start offsets, and byte-for-byte identical accessibility.
func ReplaceableWith(n Node, parts ...Node) bool {
	var total uint64
	for _, p := range parts {
		total += p.Size()
	}
	if total != n.Size() {
		return false
	}

	var cur uint64
	partStarts := make(map[uint64]bool)
	partAccessible := []uint64{}
	partInaccessible := []uint64{}
	for _, p := range parts {
		for _, off := range StartOffsets(p) {
			partStarts[off+cur] = true
		}
		for _, off := range AccessibleOffsets(p) {
			partAccessible = append(partAccessible, off+cur)
		}
		for _, off := range InaccessibleOffsets(p) {
			partInaccessible = append(partInaccessible, off+cur)
		}
		cur += p.Size()
	}

	for _, off := range StartOffsets(n) {
		if !partStarts[off] {
			return false
		}
	}
	return offsetsEqual(AccessibleOffsets(n), partAccessible) &&
		offsetsEqual(InaccessibleOffsets(n), partInaccessible)
}

func maxMemberSize(u *Union) uint64 {
	var max uint64
	for _, m := range u.Members {
		if m.Size() > max {
			max = m.Size()
		}
	}
	return max
}

func appendRange(offs []uint64, from, to uint64) []uint64 {
	for off := from; off < to; off++ {
		offs = append(offs, off)
	}
	return offs
}

func offsetsEqual(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
