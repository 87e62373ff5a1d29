package histo

import (
	"encoding/json"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

//Collection holds one histogram per constraint name, e.g. one bond-length
//histogram per bond type of a coarse-grained topology.
type Collection struct {
	data map[string]*Data
}

//NewCollection builds a collection from grouped samples, the shape
//analysis.BondLengths and analysis.AngleValues return. Each group gets its
//own n uniform bins spanning that group's data range.
func NewCollection(groups map[string][]float64, n int) (*Collection, error) {
	if n < 1 {
		return nil, fmt.Errorf("histo: at least 1 bin needed, got %d", n)
	}
	C := &Collection{data: make(map[string]*Data, len(groups))}
	for key, samples := range groups {
		if len(samples) == 0 {
			return nil, fmt.Errorf("histo: the group %q has no samples", key)
		}
		min := floats.Min(samples)
		max := floats.Max(samples)
		if min == max {
			//all samples equal; give the single value some width so the
			//histogram is not degenerate
			min -= 0.5
			max += 0.5
		}
		//nudge the top divider so the largest sample falls inside the
		//half-open last bin
		max += (max - min) * 1e-9
		d, err := NewData(UniformDividers(min, max, n), samples)
		if err != nil {
			return nil, err
		}
		C.data[key] = d
	}
	return C, nil
}

//Get returns the histogram for the given constraint name, or nil if there
//is none.
func (C *Collection) Get(key string) *Data {
	return C.data[key]
}

//Set stores a histogram under the given constraint name.
func (C *Collection) Set(key string, d *Data) {
	if C.data == nil {
		C.data = make(map[string]*Data)
	}
	C.data[key] = d
}

//Keys returns the constraint names in the collection, sorted.
func (C *Collection) Keys() []string {
	ret := make([]string, 0, len(C.data))
	for k := range C.data {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

//Len returns the number of histograms in the collection.
func (C *Collection) Len() int {
	return len(C.data)
}

//NormalizeAll normalizes every histogram in the collection.
func (C *Collection) NormalizeAll() {
	for _, d := range C.data {
		d.Normalize()
	}
}

func (C *Collection) MarshalJSON() ([]byte, error) {
	return json.Marshal(C.data)
}

func (C *Collection) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &C.data)
}
