package mysql

const insertHotelsPrefix = "INSERT INTO classified_hotels\n" +
	"  (name, district, address, region, rooms, grade, latitude, longitude, hotel_type, hotel_size_category)\n" +
	"VALUES "

// Re-imports refresh every attribute of an existing (name, district, address) row.
const insertHotelsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  region              = VALUES(region),\n" +
	"  rooms               = VALUES(rooms),\n" +
	"  grade               = VALUES(grade),\n" +
	"  latitude            = VALUES(latitude),\n" +
	"  longitude           = VALUES(longitude),\n" +
	"  hotel_type          = VALUES(hotel_type),\n" +
	"  hotel_size_category = VALUES(hotel_size_category),\n" +
	"  updated_at          = CURRENT_TIMESTAMP\n"

const hotelPlaceholders = "(?,?,?,?,?,?,?,?,?,?)"

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Insertion order stands in for file order.
const listHotelsSQL = `
SELECT
  name,
  district,
  address,
  region,
  rooms,
  grade,
  latitude,
  longitude,
  hotel_type,
  hotel_size_category
FROM classified_hotels
ORDER BY id
`

const countHotelsSQL = `SELECT COUNT(*) FROM classified_hotels`
