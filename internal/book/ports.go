package book

import (
	"shopcatalog/internal/persistence"
)

// Store defines the persistence context a Gateway delegates to.
type Store interface {
	persistence.Context[Book]
}
