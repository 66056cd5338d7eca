package domain

// Identity is what a bearer token asserts about its holder.
type Identity struct {
	Email string
	Role  string
}

// DeleteResult acknowledges a delete against the store.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
