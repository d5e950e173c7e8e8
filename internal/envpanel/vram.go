package envpanel

import "fmt"

// Tier is the color class of a VRAM usage bar.
type Tier string

const (
	TierGreen  Tier = "green"
	TierYellow Tier = "yellow"
	TierRed    Tier = "red"
)

// VRAM is the display form of a device's memory usage.
type VRAM struct {
	UsedGB  string
	FreeGB  string
	TotalGB string
	UsedPct float64
	Tier    Tier
}

// ComputeVRAM derives the display figures from megabyte totals.
// A zero total yields 0% instead of dividing by zero.
func ComputeVRAM(totalMB, freeMB float64) VRAM {
	v := VRAM{
		UsedGB:  gb(totalMB - freeMB),
		FreeGB:  gb(freeMB),
		TotalGB: gb(totalMB),
	}
	if totalMB > 0 {
		v.UsedPct = (totalMB - freeMB) / totalMB * 100
	}
	switch {
	case v.UsedPct < 0:
		v.UsedPct = 0
	case v.UsedPct > 100:
		v.UsedPct = 100
	}
	v.Tier = TierFor(v.UsedPct)
	return v
}

// TierFor classifies a usage percentage: above 90 is red, above 70 yellow.
func TierFor(usedPct float64) Tier {
	switch {
	case usedPct > 90:
		return TierRed
	case usedPct > 70:
		return TierYellow
	default:
		return TierGreen
	}
}

func gb(mb float64) string {
	return fmt.Sprintf("%.1f", mb/1024)
}
