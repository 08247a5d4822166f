package mmio

import "golang.org/x/exp/constraints"

func alignUp[I constraints.Unsigned](v, to I) I {
	return (v + to - 1) &^ (to - 1)
}

func alignDown[I constraints.Unsigned](v, to I) I {
	return v &^ (to - 1)
}
