package cd

import (
	"bytes"

	"shopcatalog/internal/persistence/memory"
	"shopcatalog/internal/postgres"

	"github.com/rs/zerolog"
)

const insertCD = `
	INSERT INTO cds (title, price, description, gender, music_company, number_of_cds, total_duration, cover)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING id`

var mapping = postgres.Mapping[CD]{
	Table:  "cds",
	Insert: insertCD,
	Values: func(c *CD) []any {
		return []any{c.Title, c.Price, c.Description, c.Gender, c.MusicCompany, c.NumberOfCDs, c.TotalDuration, c.Cover}
	},
	Key: func(c *CD) *int64 { return &c.ID },
}

// NewPostgresStore returns a Store over db, which may be a pool or a
// transaction.
func NewPostgresStore(db postgres.DBTX, log zerolog.Logger) *postgres.Table[CD] {
	return postgres.NewTable(db, mapping, log)
}

// NewMemoryStore returns a Store that keeps CDs in process memory.
func NewMemoryStore() *memory.Table[CD] {
	return memory.NewTable("cds", mapping.Key, clone).Handle(FindAllCDs, nil)
}

func clone(c CD) CD {
	c.Cover = bytes.Clone(c.Cover)
	return c
}
