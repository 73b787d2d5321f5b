package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"shopcatalog/internal/book"
	"shopcatalog/internal/cd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBooks_Table(t *testing.T) {
	description := "Scifi book"
	books := []book.Book{
		{ID: 1, Title: "H2G2", Price: 12.5, Description: &description, ISBN: "1-84023-742-2", NbOfPage: 354},
		{ID: 2, Title: "Dune", Price: 9.99},
	}

	var buf bytes.Buffer
	require.NoError(t, renderBooks(&buf, books, false))

	out := buf.String()
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "H2G2")
	assert.Contains(t, out, "12.50")
	assert.Contains(t, out, "Scifi book")
	assert.Contains(t, out, "Dune")
}

func TestRenderBooks_JSON(t *testing.T) {
	books := []book.Book{{ID: 1, Title: "H2G2", Price: 12.5, NbOfPage: 354}}

	var buf bytes.Buffer
	require.NoError(t, renderBooks(&buf, books, true))

	var got []book.Book
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, books, got)
}

func TestRenderBooks_EmptyJSONIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderBooks(&buf, []book.Book{}, true))
	assert.JSONEq(t, "[]", buf.String())
}

func TestRenderCDs_Table(t *testing.T) {
	cds := []cd.CD{{ID: 3, Title: "Zoot Allures", Price: 12.5, NumberOfCDs: 2, TotalDuration: 41.5, Cover: []byte("Cover Image")}}

	var buf bytes.Buffer
	require.NoError(t, renderCDs(&buf, cds, false))

	out := buf.String()
	assert.Contains(t, out, "Zoot Allures")
	assert.Contains(t, out, "41.5")
	assert.Contains(t, out, "11")
}

func TestRenderCDs_JSONKeepsCover(t *testing.T) {
	cds := []cd.CD{{ID: 3, Title: "Zoot Allures", Cover: []byte("Cover Image")}}

	var buf bytes.Buffer
	require.NoError(t, renderCDs(&buf, cds, true))

	var got []cd.CD
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Cover Image", string(got[0].Cover))
}
