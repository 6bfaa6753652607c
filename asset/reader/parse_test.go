package reader

import (
	"testing"

	"github.com/achilleasa/vincent/types"
)

func TestFloat32Parser(t *testing.T) {
	expError := `unsupported syntax for "Ni"; expected 1 argument; got 0`
	_, err := parseFloat32([]string{"Ni"})
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get %s; got %v", expError, err)
	}

	_, err = parseFloat32([]string{"Ni", "not-a-float"})
	if err == nil {
		t.Fatal("expected to get a parse error")
	}

	v, err := parseFloat32([]string{"Ni", "1.5"})
	if err != nil {
		t.Fatal(err)
	}
	if v != 1.5 {
		t.Fatalf("expected parsed value to be 1.5; got %f", v)
	}
}

func TestVec3Parser(t *testing.T) {
	expError := `unsupported syntax for "v"; expected 3 arguments; got 0`
	_, err := parseVec3([]string{"v"})
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get %s; got %v", expError, err)
	}

	_, err = parseVec3([]string{"v", "not-a-float", "2", "3"})
	if err == nil {
		t.Fatal("expected to get a parse error")
	}

	v, err := parseVec3([]string{"v", "3.14", "0", "0.4"})
	if err != nil {
		t.Fatal(err)
	}
	if exp := (types.Vec3{3.14, 0, 0.4}); v != exp {
		t.Fatalf("expected parsed value to be %v; got %v", exp, v)
	}
}

func TestSelectFaceCoordIndex(t *testing.T) {
	type spec struct {
		token     string
		expOffset int
		expErr    bool
	}
	specs := []spec{
		{"1", 0, false},
		{"4", 3, false},
		{"-1", 3, false},
		{"-4", 0, false},
		{"0", 0, true},
		{"5", 0, true},
		{"-5", 0, true},
		{"x", 0, true},
	}

	for index, s := range specs {
		offset, err := selectFaceCoordIndex(s.token, 4)
		if s.expErr {
			if err == nil {
				t.Fatalf("[spec %d] expected an error", index)
			}
			continue
		}
		if err != nil {
			t.Fatalf("[spec %d] unexpected error: %v", index, err)
		}
		if offset != s.expOffset {
			t.Fatalf("[spec %d] expected offset %d; got %d", index, s.expOffset, offset)
		}
	}
}
