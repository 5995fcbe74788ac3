package value

import "testing"

func TestTableSetGetPreservesOrder(t *testing.T) {
	tbl := NewTable()
	tbl.Set("b", Integer(2))
	tbl.Set("a", Integer(1))
	want := []string{"b", "a"}
	got := tbl.Keys()
	if len(got) != len(want) {
		t.Fatalf("keys = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTableSetOverwriteDoesNotDuplicateKey(t *testing.T) {
	tbl := NewTable()
	tbl.Set("a", Integer(1))
	tbl.Set("a", Integer(2))
	if len(tbl.Keys()) != 1 {
		t.Fatalf("keys = %v", tbl.Keys())
	}
	v, _ := tbl.Get("a")
	if v.Int != 2 {
		t.Errorf("a = %v", v)
	}
}

func TestValueEqual(t *testing.T) {
	a := ArrayVal([]Value{Integer(1), String("x")})
	b := ArrayVal([]Value{Integer(1), String("x")})
	c := ArrayVal([]Value{Integer(1), String("y")})
	if !a.Equal(b) {
		t.Error("expected a == b")
	}
	if a.Equal(c) {
		t.Error("expected a != c")
	}
}

func TestDatetimeStringOmitsZWhenOffsetUnset(t *testing.T) {
	dt := Datetime{Date: Date{Year: 1979, Month: 5, Day: 27}, Time: Time{Hour: 7, Minute: 32, Second: 0}}
	if got, want := dt.String(), "1979-05-27T07:32:00"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestDatetimeStringEmitsZForZeroOffset(t *testing.T) {
	dt := Datetime{Date: Date{Year: 1979, Month: 5, Day: 27}, Time: Time{Hour: 7, Minute: 32, Second: 0}, OffsetSet: true}
	if got, want := dt.String(), "1979-05-27T07:32:00Z"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
