package barchart

import (
	"math"
)

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

const (
	maxNiceIterations = 10
	maxTicks          = 1e4
)

type Range struct {
	F float64
	T float64
}

func NewRange(f, t float64) Range {
	return Range{
		F: f,
		T: t,
	}
}

func (r Range) Len() float64 {
	return r.T - r.F
}

func (r Range) Max() float64 {
	return math.Max(r.F, r.T)
}

func (r Range) Min() float64 {
	return math.Min(r.F, r.T)
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min() && v <= r.Max()
}

type BandScale struct {
	Range
	Padding float64

	count int
	index map[string]int
}

func NewBandScale(values []string, rg Range, padding float64) BandScale {
	b := BandScale{
		Range:   rg,
		Padding: padding,
		count:   len(values),
		index:   make(map[string]int),
	}
	for i, v := range values {
		b.index[v] = i
	}
	return b
}

func (b BandScale) Count() int {
	return b.count
}

func (b BandScale) Step() float64 {
	return b.Len() / float64(max(1, b.count))
}

func (b BandScale) Bandwidth() float64 {
	return b.Step() * (1 - b.Padding)
}

func (b BandScale) Scale(v string) (float64, bool) {
	i, ok := b.index[v]
	if !ok {
		return 0, false
	}
	return b.At(i), true
}

func (b BandScale) Center(v string) (float64, bool) {
	x, ok := b.Scale(v)
	if !ok {
		return 0, false
	}
	return x + b.Bandwidth()/2, true
}

func (b BandScale) At(i int) float64 {
	step := b.Step()
	return b.F + float64(i)*step + step*b.Padding/2
}

type LinearScale struct {
	Domain Range
	Output Range
}

func NewLinearScale(dom, rg Range) LinearScale {
	return LinearScale{
		Domain: dom,
		Output: rg,
	}
}

func (s LinearScale) Scale(v float64) float64 {
	diff := s.Domain.Len()
	if diff == 0 || !isFinite(diff) {
		return s.Output.F
	}
	return s.Output.F + ((v - s.Domain.F) / diff * s.Output.Len())
}

func (s LinearScale) Nice(count int) LinearScale {
	start, stop := s.Domain.F, s.Domain.T
	if stop < start {
		start, stop = stop, start
	}
	if start == stop || count <= 0 {
		return s
	}
	var prev float64
	for i := 0; i < maxNiceIterations; i++ {
		step := tickIncrement(start, stop, count)
		if step == prev {
			break
		}
		var lo, hi float64
		switch {
		case step > 0:
			lo = math.Floor(start/step) * step
			hi = math.Ceil(stop/step) * step
		case step < 0:
			lo = math.Ceil(start*step) / step
			hi = math.Floor(stop*step) / step
		default:
			i = maxNiceIterations
			continue
		}
		// rounding outward may overflow near the float64 limit
		if !isFinite(lo) || !isFinite(hi) {
			break
		}
		start, stop = lo, hi
		prev = step
	}
	x := s
	if s.Domain.T < s.Domain.F {
		start, stop = stop, start
	}
	x.Domain = NewRange(start, stop)
	return x
}

func (s LinearScale) Ticks(count int) []float64 {
	return ticks(s.Domain.F, s.Domain.T, count)
}

func ticks(start, stop float64, count int) []float64 {
	if count <= 0 {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	i1, i2, inc := tickBounds(start, stop, float64(count))
	if !isFinite(i1) || !isFinite(i2) || !isFinite(inc) {
		return nil
	}
	if i2 < i1 || i2-i1 > maxTicks {
		return nil
	}
	var (
		n   = int(i2-i1) + 1
		all = make([]float64, n)
	)
	for i := range all {
		x := i1 + float64(i)
		if reverse {
			x = i2 - float64(i)
		}
		if inc < 0 {
			all[i] = x / -inc
		} else {
			all[i] = x * inc
		}
	}
	return all
}

func tickIncrement(start, stop float64, count int) float64 {
	_, _, inc := tickBounds(start, stop, float64(count))
	return inc
}

func tickBounds(start, stop, count float64) (float64, float64, float64) {
	var (
		step   = (stop - start) / math.Max(0, count)
		power  = math.Floor(math.Log10(step))
		err    = step / math.Pow(10, power)
		factor = 1.0
	)
	switch {
	case err >= e10:
		factor = 10
	case err >= e5:
		factor = 5
	case err >= e2:
		factor = 2
	}
	var i1, i2, inc float64
	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = round(start * inc)
		i2 = round(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = round(start / inc)
		i2 = round(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}
	if i2 < i1 && count >= 0.5 && count < 2 {
		return tickBounds(start, stop, count*2)
	}
	return i1, i2, inc
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func round(v float64) float64 {
	return math.Floor(v + 0.5)
}
