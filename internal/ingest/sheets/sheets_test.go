package sheets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Trimmed-down shape of a docs.google.com pubhtml page: row-number gutter
// cells, non-breaking spaces, blank padding rows.
const pubhtmlFixture = `<!DOCTYPE html><html><body>
<div id="sheets-viewport"><table class="waffle">
<tbody>
<tr><th class="row-headers-background">1</th><td>PATENTE </td><td>VEHICULO</td><td>FECH/PROM</td><td>PA&Ntilde;OS</td><td>PRECIO</td><td>FAC</td></tr>
<tr><th class="row-headers-background">2</th><td>AB123CD</td><td>Toyota&nbsp;Hilux</td><td>15/03/2025</td><td>2</td><td>$ 1.234,56</td><td>SI</td></tr>
<tr><th class="row-headers-background">3</th><td>AC456EF</td><td>Corolla</td><td>21 de enero de 2026</td><td>1,5</td><td></td><td>NO</td></tr>
<tr><th class="row-headers-background">4</th><td></td><td></td><td></td><td></td><td></td><td></td></tr>
</tbody></table></div>
</body></html>`

func TestParseTable_Pubhtml(t *testing.T) {
	table, err := ParseTable(strings.NewReader(pubhtmlFixture))
	require.NoError(t, err)

	assert.Equal(t, []string{"PATENTE", "VEHICULO", "FECH/PROM", "PAÑOS", "PRECIO", "FAC"}, table.Header)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, []string{"AB123CD", "Toyota Hilux", "15/03/2025", "2", "$ 1.234,56", "SI"}, table.Rows[0])
	assert.Equal(t, "21 de enero de 2026", table.Rows[1][2])
	// the trailing blank row survives parsing; the ingestor drops it by plate
	assert.Equal(t, "", table.Rows[2][0])
}

func TestParseTable_NoTable(t *testing.T) {
	_, err := ParseTable(strings.NewReader(`<html><body><p>Sorry, unable to open the file.</p></body></html>`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no table")
}

func TestParseTable_HeaderAfterBlankRows(t *testing.T) {
	const page = `<table>
<tr><td></td><td></td></tr>
<tr><td>PATENTE</td><td>PRECIO</td></tr>
<tr><td>AB123CD</td><td>100</td></tr>
</table>`
	table, err := ParseTable(strings.NewReader(page))
	require.NoError(t, err)

	assert.Equal(t, []string{"PATENTE", "PRECIO"}, table.Header)
	require.Len(t, table.Rows, 1)
}
