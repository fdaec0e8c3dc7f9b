// Copyright 2026 go-tlapack Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tlap

import (
	"math"
	"testing"
)

func TestConj(t *testing.T) {
	if got := Conj(complex128(3 + 4i)); got != 3-4i {
		t.Errorf("Conj(3+4i) = %v, want 3-4i", got)
	}
	if got := Conj(complex64(1 - 2i)); got != 1+2i {
		t.Errorf("Conj(1-2i) = %v, want 1+2i", got)
	}
	if got := Conj(2.5); got != 2.5 {
		t.Errorf("Conj(2.5) = %v, want 2.5", got)
	}
	if got := Conj(float32(-1)); got != -1 {
		t.Errorf("Conj(-1) = %v, want -1", got)
	}
}

func TestReal(t *testing.T) {
	if got := Real(complex128(3 + 4i)); got != 3 {
		t.Errorf("Real(3+4i) = %v, want 3", got)
	}
	if got := Real(-7.0); got != -7.0 {
		t.Errorf("Real(-7) = %v, want -7", got)
	}
}

func TestAbs1(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"float64", Abs1(-3.0), 3},
		{"float32", Abs1(float32(2)), 2},
		{"complex128", Abs1(complex128(3 - 4i)), 7},
		{"complex64", Abs1(complex64(-1 - 1i)), 2},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestUlpSafeMin(t *testing.T) {
	if got := Ulp[float64](); got != math.Nextafter(1, 2)-1 {
		t.Errorf("Ulp[float64]() = %g", got)
	}
	if got := Ulp[float32](); got != float32(math.Nextafter32(1, 2)-1) {
		t.Errorf("Ulp[float32]() = %g", got)
	}
	if got := SafeMin[float64](); got != math.SmallestNonzeroFloat64*0x1p52 {
		t.Errorf("SafeMin[float64]() = %g", got)
	}
	if got := SafeMin[float32](); got != float32(math.SmallestNonzeroFloat32*0x1p23) {
		t.Errorf("SafeMin[float32]() = %g", got)
	}
}

// Defined element types are admitted by the constraints and must behave
// exactly like their underlying type.
type (
	definedC128 complex128
	definedC64  complex64
	definedF32  float32
	definedF64  float64
)

func TestConjDefinedTypes(t *testing.T) {
	if got := Conj(definedC128(3 + 4i)); got != 3-4i {
		t.Errorf("Conj(definedC128(3+4i)) = %v, want 3-4i", got)
	}
	if got := Conj(definedC64(1 - 2i)); got != 1+2i {
		t.Errorf("Conj(definedC64(1-2i)) = %v, want 1+2i", got)
	}
	if got := Conj(definedF64(-2.5)); got != -2.5 {
		t.Errorf("Conj(definedF64(-2.5)) = %v, want -2.5", got)
	}
}

func TestRealDefinedTypes(t *testing.T) {
	if got := Real(definedC128(3 + 4i)); got != 3 {
		t.Errorf("Real(definedC128(3+4i)) = %v, want 3", got)
	}
	if got := Real(definedC64(-1 + 1i)); got != -1 {
		t.Errorf("Real(definedC64(-1+1i)) = %v, want -1", got)
	}
	if got := Real(definedF32(7)); got != 7 {
		t.Errorf("Real(definedF32(7)) = %v, want 7", got)
	}
}

func TestAbs1DefinedTypes(t *testing.T) {
	if got := Abs1(definedC128(3 - 4i)); got != 7 {
		t.Errorf("Abs1(definedC128(3-4i)) = %v, want 7", got)
	}
	if got := Abs1(definedC64(-1 - 1i)); got != 2 {
		t.Errorf("Abs1(definedC64(-1-1i)) = %v, want 2", got)
	}
	if got := Abs1(definedF64(-3)); got != 3 {
		t.Errorf("Abs1(definedF64(-3)) = %v, want 3", got)
	}
	if got := Abs1(definedF32(2)); got != 2 {
		t.Errorf("Abs1(definedF32(2)) = %v, want 2", got)
	}
}

func TestUlpSafeMinDefinedTypes(t *testing.T) {
	if got := Ulp[definedF32](); got != 0x1p-23 {
		t.Errorf("Ulp[definedF32]() = %g, want %g", float64(got), 0x1p-23)
	}
	if got := Ulp[definedF64](); got != 0x1p-52 {
		t.Errorf("Ulp[definedF64]() = %g, want %g", float64(got), 0x1p-52)
	}
	if got := SafeMin[definedF32](); got != 0x1p-126 {
		t.Errorf("SafeMin[definedF32]() = %g, want %g", float64(got), 0x1p-126)
	}
	if got := SafeMin[definedF64](); got != 0x1p-1022 {
		t.Errorf("SafeMin[definedF64]() = %g, want %g", float64(got), 0x1p-1022)
	}
}

func TestSign(t *testing.T) {
	if Sign(-0.5) != -1 || Sign(2.0) != 1 {
		t.Error("Sign of nonzero values wrong")
	}
	// Positive zero counts as positive, like copysign.
	if Sign(0.0) != 1 {
		t.Error("Sign(0) should be 1")
	}
}
