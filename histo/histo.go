//Package histo provides histograms for the distributions coarse-graining
//workflows deal with: bond lengths, angles and radial distributions. A Data
//is one histogram; a Collection groups histograms by constraint name, the
//way analysis.BondLengths and analysis.AngleValues group their samples.
//Histograms marshal to JSON so distributions can be saved and compared
//between the atomistic and the coarse-grained runs.
package histo

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Data is one histogram: len(dividers)-1 bins, where bin i covers
//[dividers[i], dividers[i+1]).
type Data struct {
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
}

//NewData returns a histogram with the given dividers, filled with rawdata,
//which can be nil for an empty histogram. Values outside the dividers are
//omitted. The dividers are copied, so the caller keeps its slice.
func NewData(dividers []float64, rawdata []float64) (*Data, error) {
	if len(dividers) < 2 {
		return nil, fmt.Errorf("histo: at least 2 dividers needed, got %d", len(dividers))
	}
	if !sort.Float64sAreSorted(dividers) {
		return nil, fmt.Errorf("histo: dividers must increase monotonically")
	}
	D := new(Data)
	D.dividers = make([]float64, len(dividers))
	copy(D.dividers, dividers)
	D.histo = make([]float64, len(dividers)-1)
	if rawdata != nil {
		D.rebin(rawdata)
	}
	return D, nil
}

//UniformDividers returns n+1 dividers splitting [min,max] into n equal bins.
func UniformDividers(min, max float64, n int) []float64 {
	ret := make([]float64, n+1)
	return floats.Span(ret, min, max)
}

//rebin replaces the histogram contents with a fresh count of rawdata.
//stat.Histogram panics on out-of-range values, so they are trimmed first.
func (D *Data) rebin(rawdata []float64) {
	data := make([]float64, len(rawdata))
	copy(data, rawdata)
	sort.Float64s(data)
	hi := sort.SearchFloat64s(data, D.dividers[len(D.dividers)-1])
	lo := sort.SearchFloat64s(data, D.dividers[0])
	data = data[lo:hi]
	D.total = len(data)
	D.normalized = false
	D.histo = stat.Histogram(D.histo, D.dividers, data, nil)
}

//AddData adds the given points to the histogram. Points outside the
//dividers are omitted. A normalized histogram is un-normalized, filled and
//normalized again.
func (D *Data) AddData(points ...float64) {
	wasNormalized := D.normalized
	if wasNormalized {
		D.UnNormalize()
	}
	for _, v := range points {
		for j := 0; j < len(D.dividers)-1; j++ {
			if D.dividers[j] <= v && v < D.dividers[j+1] {
				D.histo[j]++
				D.total++
				break
			}
		}
	}
	if wasNormalized {
		D.Normalize()
	}
}

//Normalized returns whether the histogram is normalized.
func (D *Data) Normalized() bool {
	return D.normalized
}

//Normalize scales the histogram so its bins sum to 1.
func (D *Data) Normalize() {
	if D.normalized || D.total <= 0 {
		return
	}
	floats.Scale(1/float64(D.total), D.histo)
	D.normalized = true
}

//UnNormalize restores the bin counts of a normalized histogram.
func (D *Data) UnNormalize() {
	if !D.normalized || D.total <= 0 {
		return
	}
	floats.Scale(float64(D.total), D.histo)
	D.normalized = false
}

//Total returns the number of points counted into the histogram.
func (D *Data) Total() int {
	return D.total
}

//Sum returns the sum of all bins.
func (D *Data) Sum() float64 {
	return floats.Sum(D.histo)
}

//View returns the bins themselves, not a copy.
func (D *Data) View() []float64 {
	return D.histo
}

//Copy returns a copy of the bins, in dest if one with enough room is given.
func (D *Data) Copy(dest ...[]float64) []float64 {
	d := getCopySlice(len(D.histo), dest...)
	return floats.ScaleTo(d, 1, D.histo)
}

//CopyDividers returns a copy of the dividers, in dest if one with enough
//room is given.
func (D *Data) CopyDividers(dest ...[]float64) []float64 {
	d := getCopySlice(len(D.dividers), dest...)
	return floats.ScaleTo(d, 1, D.dividers)
}

//Centers returns the bin centers, the natural x axis when plotting.
func (D *Data) Centers() []float64 {
	ret := make([]float64, len(D.histo))
	for i := range ret {
		ret[i] = (D.dividers[i] + D.dividers[i+1]) / 2
	}
	return ret
}

//Sub puts a-b in the receiver, element-wise, or |a-b| if abs is given and
//true. All three histograms must share their dividers. Comparing a target
//distribution against a simulated one is the intended use.
func (D *Data) Sub(a, b *Data, abs ...bool) error {
	if !floats.Equal(a.dividers, b.dividers) {
		return fmt.Errorf("histo: subtracted histograms must share their dividers")
	}
	D.dividers = a.CopyDividers(D.dividers)
	if len(D.histo) != len(a.histo) {
		D.histo = make([]float64, len(a.histo))
	}
	for i := range a.histo {
		D.histo[i] = a.histo[i] - b.histo[i]
		if len(abs) > 0 && abs[0] && D.histo[i] < 0 {
			D.histo[i] = -D.histo[i]
		}
	}
	return nil
}

//String prints the histogram as two text lines: bin ranges and bin values.
func (D *Data) String() string {
	head := fmt.Sprintf("normalized: %v, total: %d\n", D.normalized, D.total)
	d := make([]string, 0, len(D.histo))
	h := make([]string, 0, len(D.histo))
	for i, v := range D.histo {
		d = append(d, fmt.Sprintf("%4.2f-%4.2f", D.dividers[i], D.dividers[i+1]))
		h = append(h, fmt.Sprintf("%9.3f", v))
	}
	return head + strings.Join(d, " ") + "\n" + strings.Join(h, " ")
}

//dataJSON is the wire form of Data; the fields of Data itself stay
//unexported.
type dataJSON struct {
	Normalized bool      `json:"normalized"`
	Total      int       `json:"total"`
	Dividers   []float64 `json:"dividers"`
	Histo      []float64 `json:"histo"`
}

func (D *Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(dataJSON{
		Normalized: D.normalized,
		Total:      D.total,
		Dividers:   D.dividers,
		Histo:      D.histo,
	})
}

func (D *Data) UnmarshalJSON(b []byte) error {
	var a dataJSON
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	D.normalized = a.Normalized
	D.total = a.Total
	D.dividers = a.Dividers
	D.histo = a.Histo
	return nil
}

func getCopySlice(n int, dest ...[]float64) []float64 {
	if len(dest) > 0 && len(dest[0]) >= n {
		return dest[0][:n] //floats.ScaleTo wants both slices to match
	}
	return make([]float64, n)
}
