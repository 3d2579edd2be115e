package redisx

import "time"

const (
	// Snapshot daftar order dari data service (JSON array mentah):
	// backoffice:orders:list:{generation}:{token hash}. Scoped per bearer
	// supaya cache tidak pernah melewati otorisasi; generation naik tiap
	// mutasi sebagai invalidation murah. Filtering tetap client-side di
	// atas hasil decode.
	KeyOrderList    = "backoffice:orders:list:%s:%s"
	KeyOrderListGen = "backoffice:orders:list:gen"

	// Rendered invoice PDF per order: backoffice:invoice:{order_id}
	KeyInvoicePDF = "backoffice:invoice:%d"

	// Dedup event di notifier: backoffice:notify:dedup:{event_id}
	KeyNotifyDedup = "backoffice:notify:dedup:%s"
)

var (
	TTLOrderList   = 30 * time.Second
	TTLInvoicePDF  = 5 * time.Minute
	TTLNotifyDedup = 48 * time.Hour
)
