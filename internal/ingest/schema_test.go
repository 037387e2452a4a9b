package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullHeader() []string {
	return []string{
		"Order ID", "Date", "Status", "Amount", "Qty",
		"ship-state", "Category", "Size", "Year", "Month", "MonthName",
	}
}

func TestBindHeader_AllRequired(t *testing.T) {
	sc, err := BindHeader(fullHeader(), nil)
	require.NoError(t, err)

	assert.Equal(t, 0, sc.OrderID)
	assert.Equal(t, 1, sc.Date)
	assert.Equal(t, 5, sc.ShipState)
	assert.False(t, sc.HasB2B())
	assert.Equal(t, -1, sc.FulfilledBy)
}

func TestBindHeader_MissingRequiredColumn(t *testing.T) {
	header := fullHeader()[:5] // drop ship-state onward

	_, err := BindHeader(header, nil)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrMissingColumn))
	assert.Contains(t, err.Error(), "ship-state")
}

func TestBindHeader_CaseSensitive(t *testing.T) {
	header := fullHeader()
	header[2] = "status" // wrong case must not match

	_, err := BindHeader(header, nil)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrMissingColumn))
}

func TestBindHeader_OptionalColumns(t *testing.T) {
	header := append(fullHeader(), "B2B", "fulfilled-by")

	sc, err := BindHeader(header, nil)
	require.NoError(t, err)
	assert.True(t, sc.HasB2B())
	assert.Equal(t, 12, sc.FulfilledBy)
}

func TestBindHeader_Aliases(t *testing.T) {
	header := fullHeader()
	header[5] = "Ship State"

	aliases := map[string]string{"Ship State": "ship-state"}
	sc, err := BindHeader(header, aliases)
	require.NoError(t, err)
	assert.Equal(t, 5, sc.ShipState)
}

func TestBindHeader_DuplicateColumnFirstWins(t *testing.T) {
	header := append(fullHeader(), "Amount")

	sc, err := BindHeader(header, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, sc.Amount)
}

func TestLoadAliases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.yaml")
	require.NoError(t, os.WriteFile(path, []byte("Ship State: ship-state\nSKU Size: Size\n"), 0o644))

	aliases, err := LoadAliases(path)
	require.NoError(t, err)
	assert.Equal(t, "ship-state", aliases["Ship State"])
	assert.Equal(t, "Size", aliases["SKU Size"])
}

func TestLoadAliases_MissingFile(t *testing.T) {
	_, err := LoadAliases(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
