package pages

import (
	"math"
	"math/rand/v2"
	"time"

	"dashkit/internal/frame"
)

// SampleStart is the first date of SampleFrame.
var SampleStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// SampleFrame returns n days of generated prices: date, close, a five
// day moving average sma5, the daily return ret in percent and volume.
// The data is the same on every call.
func SampleFrame(n int) *frame.Frame {
	rng := rand.New(rand.NewPCG(7, 11))
	dates := make([]any, n)
	closes := make([]any, n)
	sma := make([]any, n)
	ret := make([]any, n)
	volume := make([]any, n)

	price := 100.0
	window := make([]float64, 0, 5)
	for i := range n {
		prev := price
		price = math.Max(1, price*(1+rng.NormFloat64()*0.02))
		window = append(window, price)
		if len(window) > 5 {
			window = window[1:]
		}
		var sum float64
		for _, v := range window {
			sum += v
		}
		dates[i] = SampleStart.AddDate(0, 0, i)
		closes[i] = math.Round(price*100) / 100
		sma[i] = math.Round(sum/float64(len(window))*100) / 100
		ret[i] = math.Round((price/prev-1)*10000) / 100
		volume[i] = int64(1000 + rng.IntN(9000))
	}
	return frame.MustNew(
		frame.Column{Name: "date", Values: dates},
		frame.Column{Name: "close", Values: closes},
		frame.Column{Name: "sma5", Values: sma},
		frame.Column{Name: "ret", Values: ret},
		frame.Column{Name: "volume", Values: volume},
	)
}

// Summary returns min, max, mean and last of every numeric column of f.
func Summary(f *frame.Frame) *frame.Frame {
	var names, mins, maxs, means, lasts []any
	for _, name := range f.Columns() {
		c, _ := f.Column(name)
		if frame.IsTime(c.Values) {
			continue
		}
		vals := frame.ToFloats(c.Values)
		lo, hi, sum, n := math.Inf(1), math.Inf(-1), 0.0, 0
		last := math.NaN()
		for _, v := range vals {
			if math.IsNaN(v) {
				continue
			}
			lo, hi = math.Min(lo, v), math.Max(hi, v)
			sum += v
			n++
			last = v
		}
		if n == 0 {
			continue
		}
		names = append(names, name)
		mins = append(mins, lo)
		maxs = append(maxs, hi)
		means = append(means, sum/float64(n))
		lasts = append(lasts, last)
	}
	return frame.MustNew(
		frame.Column{Name: "series", Values: names},
		frame.Column{Name: "min", Values: mins},
		frame.Column{Name: "max", Values: maxs},
		frame.Column{Name: "mean", Values: means},
		frame.Column{Name: "last", Values: lasts},
	)
}
