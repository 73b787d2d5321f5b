package cd

import "shopcatalog/internal/persistence"

type Store interface {
	persistence.Context[CD]
}
