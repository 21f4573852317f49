/*
 * v3_test.go, part of godock
 *
 * Copyright 2023 Raul Mera A. (raulpuntomeraatusachpuntocl)
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

package v3

import (
	"fmt"
	"math"
	"testing"
)

func TestMatrixBasics(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Error(err)
	}
	if A.NVecs() != 3 {
		Te.Error("Wrong number of vectors:", A.NVecs())
	}
	fmt.Println(A)
	_, err = NewMatrix([]float64{1, 2, 3, 4}) //not a multiple of 3
	if err == nil {
		Te.Error("Matrix with 4 elements didn't fail")
	}
	//views share data with the viewed matrix
	view := A.VecView(1)
	view.Set(0, 0, 100)
	if A.At(1, 0) != 100 {
		Te.Error("VecView doesn't share data with the matrix")
	}
	row := A.Row(nil, 2)
	if row[0] != 7 || row[2] != 9 {
		Te.Error("Wrong row read:", row)
	}
	B := Zeros(3)
	B.Copy(A)
	B.Set(0, 0, -1)
	if A.At(0, 0) == -1 {
		Te.Error("Copy shares data with the original")
	}
}

func TestSomeVecs(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Error(err)
	}
	B := Zeros(3)
	cind := []int{1, 3, 5}
	err = B.SomeVecsSafe(A, cind)
	if err != nil {
		Te.Error(err)
	}
	if B.At(0, 0) != 4 || B.At(2, 2) != 18 {
		Te.Error("SomeVecs picked the wrong vectors:", B)
	}
	B.Set(1, 1, 55)
	A.SetVecs(B, cind)
	if A.At(3, 1) != 55 {
		Te.Error("SetVecs didn't write the vectors back")
	}
	err = B.SomeVecsSafe(A, []int{0, 1, 100})
	if err == nil {
		Te.Error("Out-of-range index didn't fail")
	}
}

func TestVecArithmetic(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	vec, _ := NewMatrix([]float64{10, 20, 30})
	A.AddVec(A, vec)
	if A.At(0, 0) != 11 || A.At(1, 2) != 36 {
		Te.Error("AddVec gave the wrong result:", A)
	}
	A.SubVec(A, vec)
	if A.At(0, 0) != 1 || A.At(1, 2) != 6 {
		Te.Error("SubVec gave the wrong result:", A)
	}
	//SubVec restores the vector it borrows
	if vec.At(0, 1) != 20 {
		Te.Error("SubVec mangled the subtracted vector:", vec)
	}
	A.AddFloat(A, 4)
	if A.At(0, 0) != 5 {
		Te.Error("AddFloat gave the wrong result:", A)
	}
}

func TestVecProducts(Te *testing.T) {
	x, _ := NewMatrix([]float64{1, 0, 0})
	y, _ := NewMatrix([]float64{0, 1, 0})
	if d := x.Dot(y); d != 0 {
		Te.Error("Dot of orthogonal vectors is", d)
	}
	z := Zeros(1)
	z.Cross(x, y)
	if z.At(0, 2) != 1 || z.At(0, 0) != 0 || z.At(0, 1) != 0 {
		Te.Error("Cross of x and y is not z:", z)
	}
	v, _ := NewMatrix([]float64{3, 0, 4})
	if n := v.Norm(2); math.Abs(n-5) > 0.000001 {
		Te.Error("Norm of (3,0,4) is", n)
	}
	v.Unit(v)
	if n := v.Norm(2); math.Abs(n-1) > 0.000001 {
		Te.Error("Unit vector has norm", n)
	}
}

func TestSetMatrix(Te *testing.T) {
	A := Zeros(4)
	B, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	A.SetMatrix(2, 0, B)
	if A.At(2, 0) != 1 || A.At(3, 2) != 6 {
		Te.Error("SetMatrix put the submatrix in the wrong place:", A)
	}
	if A.At(0, 0) != 0 {
		Te.Error("SetMatrix touched rows it shouldn't have")
	}
}
