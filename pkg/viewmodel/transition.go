package viewmodel

import (
	"fmt"
	"strconv"
)

// FlyAndScaleParams configures FlyAndScale. Nil fields fall back to
// y 5, x 0 and start 0.95. A Duration of 0 or less means 200.
type FlyAndScaleParams struct {
	Y        *float64
	X        *float64
	Start    *float64
	Duration int
}

// Preset used when FlyAndScale gets no parameters at all.
const (
	presetY        = -8
	presetStart    = 0.95
	presetDuration = 150
)

type Transition struct {
	Duration int
	Delay    int
	Easing   func(t float64) float64
	// CSS returns the inline style for progress t in [0, 1].
	CSS func(t float64) string
}

// FlyAndScale slides an element from (X, Y) while scaling it from Start to 1
// and fading it in. base is the element's existing transform ("none" for
// none).
func FlyAndScale(base string, params *FlyAndScaleParams) Transition {
	var p struct{ Y, X, Start float64 }
	var duration int
	if params == nil {
		p.Y, p.Start, duration = presetY, presetStart, presetDuration
	} else {
		p.Y = orDefault(params.Y, 5)
		p.X = orDefault(params.X, 0)
		p.Start = orDefault(params.Start, 0.95)
		duration = params.Duration
		if duration <= 0 {
			duration = 200
		}
	}
	if base == "none" {
		base = ""
	}

	return Transition{
		Duration: duration,
		Easing:   CubicOut,
		CSS: func(t float64) string {
			y := scaleConversion(t, [2]float64{0, 1}, [2]float64{p.Y, 0})
			x := scaleConversion(t, [2]float64{0, 1}, [2]float64{p.X, 0})
			scale := scaleConversion(t, [2]float64{0, 1}, [2]float64{p.Start, 1})
			return fmt.Sprintf("transform:%s translate3d(%spx, %spx, 0) scale(%s);opacity:%s;",
				base, num(x), num(y), num(scale), num(t))
		},
	}
}

// scaleConversion maps v linearly from range a onto range b.
func scaleConversion(v float64, a, b [2]float64) float64 {
	percentage := (v - a[0]) / (a[1] - a[0])
	return percentage*(b[1]-b[0]) + b[0]
}

func orDefault(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func CubicOut(t float64) float64 {
	f := t - 1
	return f*f*f + 1
}

func num(v float64) string {
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
