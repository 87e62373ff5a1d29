/*
 * v3.go, part of gocg
 *
 * Copyright 2023 The gocg developers
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

//Package v3 implements a container for sets of 3D cartesian coordinates,
//backed by gonum/mat. A "vector" is understood to be a row of the matrix,
//i.e. the coordinates of one particle. Functions here panic on programmer
//errors (shape mismatches, out-of-range indexes) instead of returning them,
//as anything that goes wrong at this level means the program itself is wrong.
package v3

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of vectors in 3D space, i.e. an N x 3 matrix.
type Matrix struct {
	*mat.Dense
}

//Matrix2Dense returns the underlying gonum Dense matrix of A.
func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

//Dense2Matrix wraps a gonum Dense matrix into a *Matrix. It panics
//if the matrix does not have exactly 3 columns.
func Dense2Matrix(A *mat.Dense) *Matrix {
	_, c := A.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return &Matrix{A}
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("input slice length %d not divisible by %d", l, cols), []string{"NewMatrix"}, true}
	}
	r := mat.NewDense(rows, cols, data)
	return &Matrix{r}, nil
}

//Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	return &Matrix{mat.NewDense(vecs, cols, make([]float64, cols*vecs))}
}

//NVecs returns the number of vectors in the matrix.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//VecView returns a view of the ith vector. Changes in the view
//are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//View returns a view of F spanning the vectors from i to j (exclusive).
func (F *Matrix) View(i, j int) *Matrix {
	r := F.Dense.Slice(i, j, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//SomeVecs puts in the receiver the vectors of A with the indexes in clist,
//in the given order. The receiver must have len(clist) vectors.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	if F.NVecs() != len(clist) || A.NVecs() < len(clist) {
		panic(ErrShape)
	}
	for i, v := range clist {
		for j := 0; j < 3; j++ {
			F.Dense.Set(i, j, A.At(v, j))
		}
	}
}

//SetVecs sets the vectors of the receiver with indexes in clist to the
//vectors of A, in order. A must have at least len(clist) vectors.
func (F *Matrix) SetVecs(A *Matrix, clist []int) {
	if A.NVecs() < len(clist) || F.NVecs() < len(clist) {
		panic(ErrShape)
	}
	for i, v := range clist {
		for j := 0; j < 3; j++ {
			F.Dense.Set(v, j, A.At(i, j))
		}
	}
}

//SetMatrix puts the matrix A in the receiver, starting from the ith
//vector and jth column of the receiver.
func (F *Matrix) SetMatrix(i, j int, A *mat.Dense) {
	ar, ac := A.Dims()
	if ar+i > F.NVecs() || ac+j > 3 {
		panic(ErrShape)
	}
	for k := 0; k < ar; k++ {
		for l := 0; l < ac; l++ {
			F.Dense.Set(i+k, j+l, A.At(k, l))
		}
	}
}

//Norm returns the Frobenius norm of the matrix. For a single vector
//that is just the Euclidean norm.
func (F *Matrix) Norm(i float64) float64 {
	return mat.Norm(F.Dense, i)
}

//AddVec adds the 1x3 vector vec to each vector of A, putting
//the result in the receiver.
func (F *Matrix) AddVec(A, vec *Matrix) {
	if vec.NVecs() != 1 || F.NVecs() != A.NVecs() {
		panic(ErrShape)
	}
	n := A.NVecs()
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			F.Dense.Set(i, j, A.At(i, j)+vec.At(0, j))
		}
	}
}

//SubVec subtracts the 1x3 vector vec from each vector of A, putting
//the result in the receiver.
func (F *Matrix) SubVec(A, vec *Matrix) {
	if vec.NVecs() != 1 || F.NVecs() != A.NVecs() {
		panic(ErrShape)
	}
	n := A.NVecs()
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			F.Dense.Set(i, j, A.At(i, j)-vec.At(0, j))
		}
	}
}

//Copy copies A into the receiver. Both matrices must have the
//same number of vectors.
func (F *Matrix) Copy(A *Matrix) {
	if F.NVecs() != A.NVecs() {
		panic(ErrShape)
	}
	F.Dense.Copy(A.Dense)
}

//Clone returns a newly allocated copy of F.
func (F *Matrix) Clone() *Matrix {
	ret := Zeros(F.NVecs())
	ret.Dense.Copy(F.Dense)
	return ret
}

//Row fills dst with the ith vector of F and returns it. If dst is nil
//a new slice is allocated.
func (F *Matrix) Row(dst []float64, i int) []float64 {
	if dst == nil {
		dst = make([]float64, 3)
	}
	return mat.Row(dst, i, F.Dense)
}

//Errors

//Error is the concrete error type for the v3 package. It implements
//gocg's chem-style Error interface without importing the root package
//(which would be a circular import).
type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or can be ignored.
func (err Error) Critical() bool { return err.critical }

//PanicMsg is a message used for panics. It does satisfy the error
//interface, but for recoverable conditions use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix      = PanicMsg("gocg/v3: A Matrix should have 3 columns")
	ErrShape             = PanicMsg("gocg/v3: Dimension mismatch")
	ErrIndexOutOfRange   = PanicMsg("gocg/v3: Index out of range")
	ErrNotEnoughElements = PanicMsg("gocg/v3: Not enough elements in Matrix")
)
