package utils

import (
	"math"

	"github.com/google/uuid"
)

func GetUUID() string {
	return uuid.New().String()
}

// Round2 rounds a currency amount to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
