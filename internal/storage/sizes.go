package storage

// Size — размерная ячейка изделия.
type Size string

const (
	SizeXS  Size = "xs"
	SizeS   Size = "s"
	SizeM   Size = "m"
	SizeL   Size = "l"
	SizeXL  Size = "xl"
	SizeXXL Size = "xxl"
)

// AllSizes fixes the iteration order everywhere quantities are walked,
// so every recomputation is deterministic.
var AllSizes = []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL}

// Sizes is a per-size quantity vector. Missing keys mean zero.
type Sizes map[Size]int

func (s Sizes) Total() int {
	total := 0
	for _, size := range AllSizes {
		total += s[size]
	}
	return total
}

func (s Sizes) IsZero() bool {
	return s.Total() == 0
}

func (s Sizes) Clone() Sizes {
	out := make(Sizes, len(s))
	for _, size := range AllSizes {
		if s[size] != 0 {
			out[size] = s[size]
		}
	}
	return out
}

// Add прибавляет вектор other к s.
func (s Sizes) Add(other Sizes) {
	for _, size := range AllSizes {
		if other[size] != 0 {
			s[size] += other[size]
		}
	}
}

// SumSizes returns a fresh vector holding the element-wise sum.
func SumSizes(vectors ...Sizes) Sizes {
	out := Sizes{}
	for _, v := range vectors {
		out.Add(v)
	}
	return out
}
