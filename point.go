package barchart

import (
	"math"
)

type Datum struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
}

func NewDatum(label string, value float64) Datum {
	return Datum{
		Label: label,
		Value: value,
	}
}

func (d Datum) Valid() bool {
	return !math.IsNaN(d.Value) && !math.IsInf(d.Value, 0)
}

func (d Datum) Negative() bool {
	return d.Value < 0
}

func validData(data []Datum) []Datum {
	list := make([]Datum, 0, len(data))
	for _, d := range data {
		if !d.Valid() {
			continue
		}
		list = append(list, d)
	}
	return list
}

func labels(data []Datum) []string {
	list := make([]string, len(data))
	for i := range data {
		list[i] = data[i].Label
	}
	return list
}

func extent(data []Datum) (float64, float64) {
	if len(data) == 0 {
		return 0, 0
	}
	fst, lst := data[0].Value, data[0].Value
	for _, d := range data[1:] {
		fst = math.Min(fst, d.Value)
		lst = math.Max(lst, d.Value)
	}
	return fst, lst
}
