package production

import "math"

// Volume returns the volume in m³ of a log of length cm and diameter cm,
// treated as a cylinder and rounded to three decimals.
func Volume(length, diameter float64) float64 {
	if length <= 0 || diameter <= 0 {
		return 0
	}
	r := diameter / 200
	return round3(math.Pi * r * r * (length / 100))
}

// VolumeDiff is the measured volume minus the declared one.
func VolumeDiff(measured, declared float64) float64 {
	return round3(measured - declared)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
