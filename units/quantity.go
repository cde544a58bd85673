package units

import "fmt"

// Quantity is a sequence of values sharing one unit.
type Quantity struct {
	Values []float64
	Unit   Unit
}

// NewQuantity returns a quantity holding values in u.
func NewQuantity(u Unit, values ...float64) Quantity {
	return Quantity{Values: values, Unit: u}
}

// Len returns the number of values.
func (q Quantity) Len() int { return len(q.Values) }

// Clone returns a copy of q with its own Values slice.
func (q Quantity) Clone() Quantity {
	return Quantity{Values: append([]float64(nil), q.Values...), Unit: q.Unit}
}

// At returns the i-th value.
func (q Quantity) At(i int) float64 { return q.Values[i] }

// String formats q as "[v0 v1 …] unit".
func (q Quantity) String() string {
	if q.Unit.IsDimensionless() {
		return fmt.Sprint(q.Values)
	}
	return fmt.Sprintf("%v %s", q.Values, q.Unit)
}

// To converts q into target. Units with matching dimensions are rescaled;
// otherwise each equivalency is tried in order.
func (q Quantity) To(target Unit, eqs ...Equivalency) (Quantity, error) {
	if q.Unit.Compatible(target) {
		factor := q.Unit.scale / target.scale
		out := make([]float64, len(q.Values))
		for i, v := range q.Values {
			out[i] = v * factor
		}
		return Quantity{Values: out, Unit: target}, nil
	}

	for _, eq := range eqs {
		if out, ok := eq.convert(q, target); ok {
			return out, nil
		}
	}

	return Quantity{}, fmt.Errorf("%w: %s to %s", ErrIncompatible, q.Unit, target)
}
