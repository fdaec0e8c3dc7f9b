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
	"reflect"
	"unsafe"
)

// This file provides the scalar helpers that the generic kernels need on
// top of the language operators: complex conjugation, magnitude measures,
// and the float helpers that route through package math. Real arithmetic
// for float32 is carried out in float64, matching the scalar fallbacks in
// reference BLAS.
//
// The constraints admit defined types (~float64, ~complex128, ...), which
// a type switch on the boxed value cannot match. The helpers below keep
// the switch as the fast path for the built-in types and fall back to
// reflection for defined types, so `type C complex128` behaves exactly
// like complex128.

// mapComplex applies f to x through complex128 when T is a complex type
// and returns x unchanged when it is real. Reflection fallback for
// defined types; the built-in types are handled before calling this.
func mapComplex[T Scalar](x T, f func(complex128) complex128) T {
	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Complex64, reflect.Complex128:
		out := reflect.New(rv.Type()).Elem()
		out.SetComplex(f(rv.Complex()))
		return out.Interface().(T)
	}
	return x
}

// Conj returns the complex conjugate of x. For real types it returns x.
func Conj[T Scalar](x T) T {
	switch v := any(x).(type) {
	case complex64:
		return any(complex(real(v), -imag(v))).(T)
	case complex128:
		return any(complex(real(v), -imag(v))).(T)
	case float32, float64:
		return x
	}
	return mapComplex(x, func(c complex128) complex128 {
		return complex(real(c), -imag(c))
	})
}

// Real returns the real part of x as a value of T. For real types it
// returns x; for complex types the imaginary part is zeroed.
func Real[T Scalar](x T) T {
	switch v := any(x).(type) {
	case complex64:
		return any(complex(real(v), 0)).(T)
	case complex128:
		return any(complex(real(v), 0)).(T)
	case float32, float64:
		return x
	}
	return mapComplex(x, func(c complex128) complex128 {
		return complex(real(c), 0)
	})
}

// Abs1 returns the level-1 magnitude of x: |x| for real types and
// |re|+|im| for complex types, following the izamax convention.
func Abs1[T Scalar](x T) float64 {
	switch v := any(x).(type) {
	case float32:
		return math.Abs(float64(v))
	case float64:
		return math.Abs(v)
	case complex64:
		return math.Abs(float64(real(v))) + math.Abs(float64(imag(v)))
	case complex128:
		return math.Abs(real(v)) + math.Abs(imag(v))
	}
	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Complex64, reflect.Complex128:
		c := rv.Complex()
		return math.Abs(real(c)) + math.Abs(imag(c))
	}
	return math.Abs(rv.Float())
}

// Abs returns the absolute value of x.
func Abs[T Floats](x T) T {
	return T(math.Abs(float64(x)))
}

// Sqrt returns the square root of x.
func Sqrt[T Floats](x T) T {
	return T(math.Sqrt(float64(x)))
}

// Hypot returns sqrt(x*x + y*y) without undue overflow or underflow.
func Hypot[T Floats](x, y T) T {
	return T(math.Hypot(float64(x), float64(y)))
}

// Copysign returns a value with the magnitude of x and the sign of y.
func Copysign[T Floats](x, y T) T {
	return T(math.Copysign(float64(x), float64(y)))
}

// Sign returns 1 with the sign of x, counting zero as positive.
func Sign[T Floats](x T) T {
	return T(math.Copysign(1, float64(x)))
}

// Ulp returns the unit in the last place of 1.0 for T. The precision is
// decided by the type's width, so defined float types resolve the same
// as their underlying type.
func Ulp[T Floats]() T {
	var z T
	if unsafe.Sizeof(z) == 4 {
		return T(0x1p-23)
	}
	return T(0x1p-52)
}

// SafeMin returns the smallest positive normal number of T.
func SafeMin[T Floats]() T {
	var z T
	if unsafe.Sizeof(z) == 4 {
		return T(0x1p-126)
	}
	return T(0x1p-1022)
}
