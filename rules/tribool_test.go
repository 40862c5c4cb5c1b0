package rules

import "testing"

// === Kleene Algebra Tests ===

func TestAndTruthTable(t *testing.T) {
	cases := []struct {
		a, b, want TriBool
	}{
		{True, True, True},
		{True, False, False},
		{True, Unknown, Unknown},
		{False, True, False},
		{False, False, False},
		{False, Unknown, False}, // False dominates Unknown
		{Unknown, True, Unknown},
		{Unknown, False, False},
		{Unknown, Unknown, Unknown},
	}
	for _, c := range cases {
		if got := c.a.And(c.b); got != c.want {
			t.Errorf("And(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestOrTruthTable(t *testing.T) {
	cases := []struct {
		a, b, want TriBool
	}{
		{True, True, True},
		{True, False, True},
		{True, Unknown, True}, // True dominates Unknown
		{False, True, True},
		{False, False, False},
		{False, Unknown, Unknown},
		{Unknown, True, True},
		{Unknown, False, Unknown},
		{Unknown, Unknown, Unknown},
	}
	for _, c := range cases {
		if got := c.a.Or(c.b); got != c.want {
			t.Errorf("Or(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestNot(t *testing.T) {
	if True.Not() != False {
		t.Error("Not(True) should be False")
	}
	if False.Not() != True {
		t.Error("Not(False) should be True")
	}
	if Unknown.Not() != Unknown {
		t.Error("Not(Unknown) should stay Unknown")
	}
}

func TestFromBool(t *testing.T) {
	if FromBool(true) != True || FromBool(false) != False {
		t.Error("FromBool should map bools onto the definite values")
	}
}

func TestPredicates(t *testing.T) {
	if !True.IsTrue() || True.IsFalse() {
		t.Error("True predicates wrong")
	}
	if !False.IsFalse() || False.IsTrue() {
		t.Error("False predicates wrong")
	}
	if Unknown.IsTrue() || Unknown.IsFalse() {
		t.Error("Unknown is neither definitely true nor definitely false")
	}
}

func TestString(t *testing.T) {
	if True.String() != "true" || False.String() != "false" || Unknown.String() != "unknown" {
		t.Error("String representations wrong")
	}
}
