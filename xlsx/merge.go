package xlsx

import (
	"fmt"
)

// MergeRange is a parsed merge rectangle. Start is the top-left anchor.
type MergeRange struct {
	Range string
	Start Coordinate
	End   Coordinate
}

// ColSpan is the number of columns the range covers.
func (m MergeRange) ColSpan() int { return m.End.Column - m.Start.Column + 1 }

// RowSpan is the number of rows the range covers.
func (m MergeRange) RowSpan() int { return m.End.Row - m.Start.Row + 1 }

// ParseMergeCell decodes a range string such as "A1:C2". Reversed corners
// are swapped so that Start is always the top-left cell.
func ParseMergeCell(rng string) MergeRange {
	start, end := ParseMergeRange(rng)
	sc, sr := ParseCellReference(start)
	ec, er := ParseCellReference(end)
	return MergeRange{
		Range: rng,
		Start: Coordinate{Column: min(sc, ec), Row: min(sr, er)},
		End:   Coordinate{Column: max(sc, ec), Row: max(sr, er)},
	}
}

// Merges classifies worksheet coordinates against the merge ranges of one
// sheet. Coverage is precomputed once inside the occupied bounding box, so
// lookups do not re-test every rectangle per cell.
type Merges struct {
	Ranges []MergeRange

	anchors map[Coordinate]int // anchor -> index into Ranges
	covered map[Coordinate]int // coordinates inside a range and the bounds -> index
}

// ResolveMerges parses ranges and rejects any two rectangles that share a
// coordinate. bounds is the bottom-right corner of the occupied area; cells
// past it are never visited and are not indexed.
func ResolveMerges(ranges []string, bounds Coordinate) (*Merges, error) {
	m := &Merges{
		anchors: make(map[Coordinate]int),
		covered: make(map[Coordinate]int),
	}
	for _, rng := range ranges {
		mr := ParseMergeCell(rng)
		for _, prev := range m.Ranges {
			if overlaps(prev, mr) {
				return nil, fmt.Errorf("%w: %s and %s", ErrMergeOverlap, prev.Range, rng)
			}
		}
		idx := len(m.Ranges)
		for r := mr.Start.Row; r <= min(mr.End.Row, bounds.Row); r++ {
			for c := mr.Start.Column; c <= min(mr.End.Column, bounds.Column); c++ {
				m.covered[Coordinate{Column: c, Row: r}] = idx
			}
		}
		m.anchors[mr.Start] = idx
		m.Ranges = append(m.Ranges, mr)
	}
	return m, nil
}

func overlaps(a, b MergeRange) bool {
	return a.Start.Column <= b.End.Column && b.Start.Column <= a.End.Column &&
		a.Start.Row <= b.End.Row && b.Start.Row <= a.End.Row
}

// Suppressed reports whether c is covered by a merge range without being its
// anchor. Suppressed coordinates are never emitted.
func (m *Merges) Suppressed(c Coordinate) bool {
	if _, ok := m.covered[c]; !ok {
		return false
	}
	_, anchor := m.anchors[c]
	return !anchor
}

// Anchor returns the range anchored at c, if any.
func (m *Merges) Anchor(c Coordinate) (MergeRange, bool) {
	idx, ok := m.anchors[c]
	if !ok {
		return MergeRange{}, false
	}
	return m.Ranges[idx], true
}
