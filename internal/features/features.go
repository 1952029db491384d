package features

import (
	"time"

	"github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/record"
)

// ReferenceYear resolves the configured year car_age is computed against.
// Zero means the current calendar year of now.
func ReferenceYear(configured int, now time.Time) int {
	if configured != 0 {
		return configured
	}
	return now.Year()
}

// Apply fills CarAge and the band columns of every row in place. Negative
// ages (listing year after refYear) are kept. A missing or out-of-range
// value leaves its band empty.
func Apply(rows []record.Merged, refYear int) {
	for i := range rows {
		m := &rows[i]
		m.CarAge = refYear - m.Year
		m.PriceBand = PriceBands.Label(m.Price)
		m.MileageBand = ""
		if m.MileageKM != nil {
			m.MileageBand = MileageBands.Label(*m.MileageKM)
		}
		m.PowerBand = ""
		if m.PowerKW != nil {
			m.PowerBand = PowerBands.Label(*m.PowerKW)
		}
	}
}
