// Package all wires the built-in storage backends into the storage factory.
// Import it for side effects only:
//
//	import _ "github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/storage/all"
//
// Currently registered kinds: "csv".
package all

import (
	_ "github.com/KenilSohaliya/Automotive-Sales-Demand-Analytics-Power-BI/internal/storage/csvfile"
)
