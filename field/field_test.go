package field

import "testing"

func TestAddSubRoundTrip(t *testing.T) {
	a := New(12345)
	b := New(9999999999)
	sum := a.Add(b)
	if got := sum.Sub(b); got != a {
		t.Fatalf("sum.Sub(b) = %d, want %d", got, a)
	}
}

func TestMulWrapsModulus(t *testing.T) {
	a := New(Modulus - 1)
	b := New(2)
	got := a.Mul(b)
	want := New(Modulus - 2)
	if got != want {
		t.Fatalf("(p-1)*2 = %d, want %d", got, want)
	}
}

func TestNegIsAdditiveInverse(t *testing.T) {
	a := New(987654321)
	if got := a.Add(a.Neg()); got != Zero {
		t.Fatalf("a + (-a) = %d, want 0", got)
	}
}

func TestExpMatchesRepeatedMul(t *testing.T) {
	a := New(3)
	got := a.Exp(7)
	want := a.Mul(a).Mul(a).Mul(a).Mul(a).Mul(a).Mul(a)
	if got != want {
		t.Fatalf("3^7 = %d, want %d", got, want)
	}
}

func TestExpZeroPowerIsOne(t *testing.T) {
	if got := New(42).Exp(0); got != One {
		t.Fatalf("x^0 = %d, want 1", got)
	}
}

func TestNewReducesOverflow(t *testing.T) {
	if got := New(Modulus); got != Zero {
		t.Fatalf("New(p) = %d, want 0", got)
	}
	if got := New(Modulus + 5); got != New(5) {
		t.Fatalf("New(p+5) = %d, want 5", got)
	}
}

func TestBytesToElementsLittleEndian(t *testing.T) {
	var b [32]byte
	b[0] = 1 // first limb = 1
	b[8] = 2 // second limb = 2
	els := BytesToElements(b)
	if els[0] != New(1) || els[1] != New(2) || els[2] != Zero || els[3] != Zero {
		t.Fatalf("unexpected limbs: %v", els)
	}
}

func TestElementsToBytesRoundTripsThroughBytesToElements(t *testing.T) {
	var b [32]byte
	for i := range b {
		b[i] = byte(i + 1)
	}
	els := BytesToElements(b)
	back := ElementsToBytes(els)
	if back != b {
		t.Fatalf("ElementsToBytes(BytesToElements(b)) = %x, want %x", back, b)
	}
}
