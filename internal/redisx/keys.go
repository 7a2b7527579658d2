package redisx

import "time"

const (
	// Cache daftar produk per kategori: cache:products:{category|all} -> JSON array
	KeyProductList = "cache:products:%s"

	// Cache dashboard per tanggal: cache:dashboard:{YYYYMMDD} -> JSON
	KeyDashboard = "cache:dashboard:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"

	// Flag stok menipis per produk: alert:lowstock:{product_id} -> remaining
	KeyLowStock = "alert:lowstock:%d"
)

var (
	TTLProductCache   = 5 * time.Minute
	TTLDashboardCache = 30 * time.Second
	TTLDedup          = 48 * time.Hour
	TTLLowStock       = 24 * time.Hour
)
