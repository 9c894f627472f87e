package pathmodel

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/config"
)

// Path is an ordered list of elements plus path-level constraints, which take precedence
// over the project configuration. Callers must not mutate a Path while it is being simulated.
type Path struct {
	Elements    []Element
	Constraints config.Constraints
}

// Anchor is a translation target or waypoint located at Position, found at Index in the
// element list.
type Anchor struct {
	Index       int
	Position    r2.Point
	Translation *TranslationTarget
}

// New returns a path over the given elements.
func New(elements ...Element) *Path {
	return &Path{Elements: elements}
}

// Len returns the number of elements.
func (p *Path) Len() int {
	return len(p.Elements)
}

// Element returns the element at index.
func (p *Path) Element(index int) (Element, error) {
	if index < 0 || index >= len(p.Elements) {
		return nil, errors.Errorf("element index %d out of range [0, %d)", index, len(p.Elements))
	}
	return p.Elements[index], nil
}

// Reorder rearranges the elements so that new position i holds old element order[i].
func (p *Path) Reorder(order []int) error {
	if len(order) != len(p.Elements) {
		return errors.Errorf("new order has %d entries, path has %d elements", len(order), len(p.Elements))
	}
	seen := make([]bool, len(order))
	reordered := make([]Element, len(order))
	for i, from := range order {
		if from < 0 || from >= len(order) || seen[from] {
			return errors.Errorf("new order is not a permutation: entry %d is %d", i, from)
		}
		seen[from] = true
		reordered[i] = p.Elements[from]
	}
	p.Elements = reordered
	return nil
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() *Path {
	if p == nil {
		return nil
	}
	return &Path{
		Elements:    lo.Map(p.Elements, func(e Element, _ int) Element { return CloneElement(e) }),
		Constraints: p.Constraints,
	}
}

// Anchors returns the translation targets and waypoints in element order.
func (p *Path) Anchors() []Anchor {
	return lo.FilterMap(p.Elements, func(e Element, i int) (Anchor, bool) {
		tt, ok := AnchorTranslation(e)
		if !ok {
			return Anchor{}, false
		}
		return Anchor{Index: i, Position: tt.Position(), Translation: tt}, true
	})
}
