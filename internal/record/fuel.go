package record

// FuelType is the closed set of fuel categories produced by the standardizer.
type FuelType string

const (
	FuelElectric FuelType = "electric"
	FuelHybrid   FuelType = "hybrid"
	FuelDiesel   FuelType = "diesel"
	FuelPetrol   FuelType = "petrol"
	FuelOther    FuelType = "other"
)

// ParseFuelType maps an already standardized label back onto a FuelType.
// It returns false for anything outside the closed set, including "".
func ParseFuelType(s string) (FuelType, bool) {
	switch f := FuelType(s); f {
	case FuelElectric, FuelHybrid, FuelDiesel, FuelPetrol, FuelOther:
		return f, true
	}
	return "", false
}
