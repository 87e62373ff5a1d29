/*
 * timecorr.go, part of gocg
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

package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

//AutoCorr returns the normalized autocorrelation function of the series,
//computed through the FFT with zero padding, so correlations across the
//periodic wrap of the transform don't contaminate the result. The value at
//lag 0 is 1 and there is one value per lag up to len(series)-1.
func AutoCorr(series []float64) ([]float64, error) {
	n := len(series)
	if n < 2 {
		return nil, fmt.Errorf("analysis: a series of %d points has no correlations", n)
	}
	mean := stat.Mean(series, nil)
	pad := make([]complex128, 2*n)
	for i, v := range series {
		pad[i] = complex(v-mean, 0)
	}
	f := fourier.NewCmplxFFT(len(pad))
	f.Coefficients(pad, pad)
	for i, v := range pad {
		pad[i] = v * cmplx.Conj(v)
	}
	f.Sequence(pad, pad)
	if real(pad[0]) == 0 {
		return nil, fmt.Errorf("analysis: the series is constant, its autocorrelation is undefined")
	}
	ret := make([]float64, n)
	norm := real(pad[0])
	for i := 0; i < n; i++ {
		ret[i] = real(pad[i]) / norm
	}
	return ret, nil
}

//DecorrTime estimates the decorrelation time of the series: the first lag
//at which its autocorrelation is no longer positive. Samples further apart
//than this can be treated as independent.
func DecorrTime(series []float64) (int, error) {
	acf, err := AutoCorr(series)
	if err != nil {
		return 0, err
	}
	for lag, v := range acf {
		if lag > 0 && v <= 0 {
			return lag, nil
		}
	}
	//the series never decorrelates within its own length
	return len(series), nil
}

//ErrorAnalysis returns the mean of the series and the standard error of
//that mean, corrected for autocorrelation: the number of effectively
//independent samples is the series length over its decorrelation time.
func ErrorAnalysis(series []float64) (mean, stderr float64, err error) {
	tau, err := DecorrTime(series)
	if err != nil {
		return 0, 0, err
	}
	mean = stat.Mean(series, nil)
	neff := float64(len(series)) / float64(tau)
	stderr = stat.StdDev(series, nil) / math.Sqrt(neff)
	return mean, stderr, nil
}
