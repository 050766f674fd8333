package enums

// Material identifies a printing filament or sintering medium.
type Material string

const (
	MaterialPLA   Material = "PLA"
	MaterialPETG  Material = "PETG"
	MaterialABS   Material = "ABS"
	MaterialTPU   Material = "TPU"
	MaterialWood  Material = "WOOD"
	MaterialMetal Material = "METAL"
)

var validMaterials = []Material{
	MaterialPLA,
	MaterialPETG,
	MaterialABS,
	MaterialTPU,
	MaterialWood,
	MaterialMetal,
}

// String implements fmt.Stringer.
func (m Material) String() string {
	return string(m)
}

// IsValid reports whether the material is recognized.
func (m Material) IsValid() bool {
	for _, candidate := range validMaterials {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMaterial converts raw input into a Material. Unknown values pass
// through unchanged so the pricing fallback multiplier can apply; callers
// that need strictness check IsValid.
func ParseMaterial(value string) Material {
	return Material(value)
}
