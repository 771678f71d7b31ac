package model

// Upload points at a spooled file waiting to be forwarded to the asset store.
type Upload struct {
	Field        string
	Path         string
	OriginalName string
}
