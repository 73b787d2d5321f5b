package cd

import "shopcatalog/internal/persistence"

// CD is a catalog compact disc. TotalDuration is in minutes.
type CD struct {
	ID            int64   `db:"id" json:"id"`
	Title         string  `db:"title" json:"title"`
	Price         float64 `db:"price" json:"price"`
	Description   string  `db:"description" json:"description"`
	Gender        string  `db:"gender" json:"gender"`
	MusicCompany  string  `db:"music_company" json:"music_company"`
	NumberOfCDs   int     `db:"number_of_cds" json:"number_of_cds"`
	TotalDuration float64 `db:"total_duration" json:"total_duration"`
	Cover         []byte  `db:"cover" json:"cover,omitempty"`
}

var FindAllCDs = persistence.NamedQuery[CD]{
	Name: "findAllCDs",
	SQL: `
		SELECT id, title, price, description, gender, music_company,
		       number_of_cds, total_duration, cover
		FROM cds
		ORDER BY id`,
}
