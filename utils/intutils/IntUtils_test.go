package intutils

import "testing"

func TestMinProd(t *testing.T) {
	if min := Min(3, -2, 7, 0); min != -2 {
		t.Errorf("min: want(-2) have(%d)", min)
	}
	if prod := Prod(2, 3, 4); prod != 24 {
		t.Errorf("prod: want(24) have(%d)", prod)
	}

	if Min() != 0 {
		t.Error("min of no ints should be 0")
	}
	if Prod() != 1 {
		t.Error("prod of no ints should be 1")
	}
}
