package rng

// Fixed replays scripted draws in order. Floats feed Float64, Ints feed IntN.
// Once a script is exhausted the corresponding method returns zero, which is
// the lowest possible draw.
type Fixed struct {
	Floats []float64
	Ints   []int

	fi, ii int
}

// NewFixed builds a Fixed source from float draws only.
func NewFixed(floats ...float64) *Fixed {
	return &Fixed{Floats: floats}
}

func (f *Fixed) Float64() float64 {
	if f.fi >= len(f.Floats) {
		return 0
	}
	v := f.Floats[f.fi]
	f.fi++
	return v
}

// IntN returns the next scripted int reduced into [0,n).
func (f *Fixed) IntN(n int) int {
	if f.ii >= len(f.Ints) {
		return 0
	}
	v := f.Ints[f.ii]
	f.ii++
	if n <= 0 {
		return 0
	}
	return ((v % n) + n) % n
}

// FloatsUsed reports how many Float64 draws were consumed.
func (f *Fixed) FloatsUsed() int { return f.fi }

// IntsUsed reports how many IntN draws were consumed.
func (f *Fixed) IntsUsed() int { return f.ii }
