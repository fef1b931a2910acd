package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
