package memory

import (
	"context"
	"errors"
	"testing"

	"shopcatalog/internal/persistence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID      int64
	Name    string
	Payload []byte
}

var findAllRecords = persistence.NamedQuery[record]{Name: "findAllRecords"}

func newRecordTable() *Table[record] {
	return NewTable("records",
		func(r *record) *int64 { return &r.ID },
		func(r record) record {
			if r.Payload != nil {
				r.Payload = append([]byte(nil), r.Payload...)
			}
			return r
		},
	).Handle(findAllRecords, nil)
}

func TestTable_Insert(t *testing.T) {
	ctx := context.Background()
	table := newRecordTable()

	first := &record{Name: "a"}
	second := &record{Name: "a"}
	require.NoError(t, table.Insert(ctx, first))
	require.NoError(t, table.Insert(ctx, second))

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, 2, table.Len())
}

func TestTable_RunNamedQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("empty table returns empty slice", func(t *testing.T) {
		rows, err := newRecordTable().RunNamedQuery(ctx, findAllRecords)
		require.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Len(t, rows, 0)
	})

	t.Run("rows come back in insertion order", func(t *testing.T) {
		table := newRecordTable()
		for _, name := range []string{"x", "y", "z"} {
			require.NoError(t, table.Insert(ctx, &record{Name: name}))
		}

		rows, err := table.RunNamedQuery(ctx, findAllRecords)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "x", rows[0].Name)
		assert.Equal(t, "z", rows[2].Name)
	})

	t.Run("unregistered query fails", func(t *testing.T) {
		_, err := newRecordTable().RunNamedQuery(ctx, persistence.NamedQuery[record]{Name: "findNothing"})
		require.Error(t, err)
		assert.True(t, persistence.IsPersistence(err))
	})

	t.Run("custom handler", func(t *testing.T) {
		table := newRecordTable()
		onlyB := persistence.NamedQuery[record]{Name: "findB"}
		table.Handle(onlyB, func(rows []record) []record {
			var out []record
			for _, r := range rows {
				if r.Name == "b" {
					out = append(out, r)
				}
			}
			return out
		})
		require.NoError(t, table.Insert(ctx, &record{Name: "a"}))
		require.NoError(t, table.Insert(ctx, &record{Name: "b"}))

		rows, err := table.RunNamedQuery(ctx, onlyB)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, int64(2), rows[0].ID)
	})
}

func TestTable_StoredRowsDoNotAlias(t *testing.T) {
	ctx := context.Background()
	table := newRecordTable()

	in := &record{Name: "cover", Payload: []byte("Cover Image")}
	require.NoError(t, table.Insert(ctx, in))
	in.Payload[0] = 'X'

	rows, err := table.RunNamedQuery(ctx, findAllRecords)
	require.NoError(t, err)
	assert.Equal(t, []byte("Cover Image"), rows[0].Payload)

	rows[0].Payload[0] = 'Y'
	again, err := table.RunNamedQuery(ctx, findAllRecords)
	require.NoError(t, err)
	assert.Equal(t, []byte("Cover Image"), again[0].Payload)
}

func TestTable_FailNext(t *testing.T) {
	ctx := context.Background()
	table := newRecordTable()
	cause := errors.New("title must not be empty")

	table.FailNext(persistence.CheckViolation, cause)

	r := &record{}
	err := table.Insert(ctx, r)
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, persistence.CheckViolation, persistence.CodeOf(err))
	assert.Zero(t, r.ID)
	assert.Zero(t, table.Len())

	// the failure is consumed by the first call
	require.NoError(t, table.Insert(ctx, r))
	assert.Equal(t, int64(1), r.ID)
}

func TestTable_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRecordTable().RunNamedQuery(ctx, findAllRecords)
	require.Error(t, err)
	assert.Equal(t, persistence.Canceled, persistence.CodeOf(err))
	assert.ErrorIs(t, err, context.Canceled)
}
