package mathutil

import "math"

// LogZero represents log(0), used as negative infinity in log-domain arithmetic.
// A finite sentinel keeps sums like alpha+transition free of NaN.
const LogZero = -1e30

// IsLogZero reports whether v is at or below the log(0) sentinel.
func IsLogZero(v float64) bool {
	return v <= LogZero+1
}

// SafeLog returns log(x), mapping non-positive values to LogZero.
func SafeLog(x float64) float64 {
	if x <= 0 {
		return LogZero
	}
	return math.Log(x)
}

// Finite reports whether v is neither NaN nor ±Inf.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
