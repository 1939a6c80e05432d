package domain

// Topic is an independent categorization axis. Topics are queryable but are
// not joined into point output; assembled exports carry an always-empty
// topics placeholder.
type Topic struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
