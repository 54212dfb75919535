package constants

// Redis key formats
const (
	KeyVehicleLocation = "vehicle:location:%s" // Format: vehicle:location:{vehicle_id}
	KeyVehicleGeo      = "vehicles:geo"        // GEO set of all vehicle positions
)

// Redis hash fields
const (
	FieldLatitude  = "lat"
	FieldLongitude = "lng"
	FieldGeohash   = "geohash"
	FieldTimestamp = "ts"
)
