package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	name  string
	table Table
	err   error
	boom  bool
}

func (f fakeSource) Name() string { return f.name }

func (f fakeSource) Fetch(ctx context.Context) (Table, error) {
	if f.boom {
		panic("parser exploded")
	}
	return f.table, f.err
}

func goodTable(rows ...[]string) Table {
	return Table{
		Header: []string{"PATENTE", "VEHICULO", "ASESOR", "FECH/PROM", "PAÑOS", "PRECIO", "FAC"},
		Rows:   rows,
	}
}

func TestRun_TagsAndFlattens(t *testing.T) {
	res := Run(context.Background(), []Source{
		fakeSource{name: "Chapa", table: goodTable(
			[]string{"AB123CD", "Hilux", "Marta", "15/03/2025", "2", "$ 100", "SI"},
		)},
		fakeSource{name: "Pintura", table: goodTable(
			[]string{"AC456EF", "Corolla", "Luis", "", "1", "", "NO"},
		)},
	})

	require.Len(t, res.Jobs, 2)
	assert.Equal(t, "Chapa", res.Jobs[0].SourceGroup)
	assert.Equal(t, "Pintura", res.Jobs[1].SourceGroup)
	assert.Equal(t, "AB123CD", res.Jobs[0].Plate)
	assert.Equal(t, "15/03/2025", res.Jobs[0].PromisedDate)
}

// One broken tab must never take down the other three.
func TestRun_IsolatesGroupFailure(t *testing.T) {
	res := Run(context.Background(), []Source{
		fakeSource{name: "A", table: goodTable([]string{"P1", "", "", "", "", "", ""})},
		fakeSource{name: "B", err: errors.New("boom: 503")},
		fakeSource{name: "C", table: goodTable([]string{"P3", "", "", "", "", "", ""})},
		fakeSource{name: "D", table: goodTable([]string{"P4", "", "", "", "", "", ""})},
	})

	require.Len(t, res.Jobs, 3)
	for _, j := range res.Jobs {
		assert.NotEqual(t, "B", j.SourceGroup)
	}

	require.Len(t, res.Groups, 4)
	assert.True(t, res.Groups[0].OK())
	assert.False(t, res.Groups[1].OK())
	assert.Contains(t, res.Groups[1].Err, "503")
	assert.True(t, res.Groups[2].OK())
	assert.True(t, res.Groups[3].OK())
}

func TestRun_RecoverFromPanickingSource(t *testing.T) {
	res := Run(context.Background(), []Source{
		fakeSource{name: "A", boom: true},
		fakeSource{name: "B", table: goodTable([]string{"P2", "", "", "", "", "", ""})},
	})

	require.Len(t, res.Jobs, 1)
	assert.Contains(t, res.Groups[0].Err, "panic")
	assert.True(t, res.Groups[1].OK())
}

func TestRun_DropsPlatelessRows(t *testing.T) {
	res := Run(context.Background(), []Source{
		fakeSource{name: "Chapa", table: goodTable(
			[]string{"AB123CD", "Hilux", "", "", "", "", ""},
			[]string{"", "huérfano", "", "", "", "", ""},
			[]string{"   ", "también huérfano", "", "", "", "", ""},
		)},
	})

	require.Len(t, res.Jobs, 1)
	st := res.Groups[0]
	assert.Equal(t, 3, st.Rows)
	assert.Equal(t, 1, st.Kept)
	assert.Equal(t, 2, st.Dropped)
}

// Total failure degrades to "no data", not to an error.
func TestRun_AllGroupsFail(t *testing.T) {
	res := Run(context.Background(), []Source{
		fakeSource{name: "A", err: errors.New("down")},
		fakeSource{name: "B", err: errors.New("down")},
	})

	assert.NotNil(t, res.Jobs)
	assert.Empty(t, res.Jobs)
	for _, g := range res.Groups {
		assert.False(t, g.OK())
	}
}

func TestRun_BadSchemaIsGroupFailure(t *testing.T) {
	res := Run(context.Background(), []Source{
		fakeSource{name: "A", table: Table{Header: []string{"NOMBRE", "VALOR"}, Rows: [][]string{{"x", "y"}}}},
		fakeSource{name: "B", table: goodTable([]string{"P2", "", "", "", "", "", ""})},
	})

	require.Len(t, res.Jobs, 1)
	assert.Contains(t, res.Groups[0].Err, "PATENTE")
}
