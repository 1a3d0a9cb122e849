package util

// Coerce returns value clamped into [rangeMin, rangeMax]
func Coerce(value float64, rangeMin float64, rangeMax float64) float64 {
	if value > rangeMax {
		return rangeMax
	}
	if value < rangeMin {
		return rangeMin
	}
	return value
}

// CoerceInt32 returns value clamped into [rangeMin, rangeMax]
func CoerceInt32(value int32, rangeMin int32, rangeMax int32) int32 {
	if value > rangeMax {
		return rangeMax
	}
	if value < rangeMin {
		return rangeMin
	}
	return value
}

// AbsInt returns the absolute value of the given int
func AbsInt(value int) int {
	if value < 0 {
		return -value
	}
	return value
}

// Avg calculates the average of all values in the given array
func Avg(values []float64) float64 {
	sum := 0.0
	for i := 0; i < len(values); i++ {
		sum += values[i]
	}
	return sum / (float64(len(values)))
}
