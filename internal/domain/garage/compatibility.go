package garage

import (
	"fmt"

	"parkspot/internal/domain/vehicle"
)

type CompatibilityResult struct {
	Compatible bool
	Issues     []string
	// Score in [0,100] for ranking in listings; 100 means a roomy fit,
	// 0 means incompatible. Not part of the admission decision.
	Score int
}

// CheckCompatibility compares a vehicle's physical envelope against a
// garage's. Each check only runs when the vehicle dimension is known; an
// unknown dimension is unconstrained, never a failure. Issue strings are the
// user-facing product copy, hence Spanish.
func CheckCompatibility(v *vehicle.Vehicle, g *Garage) CompatibilityResult {
	dims := g.Dimensions()
	var issues []string

	if h := v.Height(); h != nil && *h > dims.Height {
		issues = append(issues, fmt.Sprintf("Altura del vehículo (%.1fm) excede la del garage (%.1fm)", *h, dims.Height))
	}
	if w := v.Width(); w != nil && *w > dims.Width {
		issues = append(issues, fmt.Sprintf("Ancho del vehículo (%.1fm) excede el del garage (%.1fm)", *w, dims.Width))
	}
	if l := v.Length(); l != nil && *l > dims.Length {
		issues = append(issues, fmt.Sprintf("Largo del vehículo (%.1fm) excede el del garage (%.1fm)", *l, dims.Length))
	}
	if v.CoveredOnly() && g.Type() != TypeCovered {
		issues = append(issues, "El vehículo requiere un garage cubierto")
	}
	if mh := v.MinHeight(); mh != nil && dims.Height < *mh {
		issues = append(issues, fmt.Sprintf("El garage no alcanza la altura mínima requerida (%.1fm)", *mh))
	}

	result := CompatibilityResult{
		Compatible: len(issues) == 0,
		Issues:     issues,
	}
	if result.Compatible {
		result.Score = fitScore(v, dims)
	}
	return result
}

// fitScore rewards clearance margin on the dimensions we actually know.
// Unknown dimensions contribute a neutral margin.
func fitScore(v *vehicle.Vehicle, dims Dimensions) int {
	margins := []float64{
		marginRatio(v.Height(), dims.Height),
		marginRatio(v.Width(), dims.Width),
		marginRatio(v.Length(), dims.Length),
	}

	total := 0.0
	for _, m := range margins {
		total += m
	}
	score := int(total / float64(len(margins)) * 100)
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

func marginRatio(vehicleDim *float64, garageDim float64) float64 {
	if vehicleDim == nil || garageDim == 0 {
		return 0.5
	}
	// 0 margin -> 0.0, 50%+ headroom -> 1.0
	headroom := (garageDim - *vehicleDim) / garageDim
	return headroom * 2
}
