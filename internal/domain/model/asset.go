package model

// Asset describes an object stored in the remote asset store.
type Asset struct {
	PublicID    string
	SecureURL   string
	ContentType string
	Bytes       int64
}
