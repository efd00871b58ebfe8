package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConsumed(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr error
	}{
		{raw: "100", want: 100},
		{raw: " 12.5 ", want: 12.5},
		{raw: "1,234", want: 1234},
		{raw: "0", want: 0},
		{raw: "", wantErr: ErrEmptyValue},
		{raw: "   ", wantErr: ErrEmptyValue},
		{raw: "n/a", wantErr: ErrNotNumeric},
		{raw: "NaN", wantErr: ErrNotNumeric},
		{raw: "Inf", wantErr: ErrNotNumeric},
		{raw: "-1", wantErr: ErrNegative},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseConsumed(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestBuilder_RowNumbering(t *testing.T) {
	b, err := NewBuilder("rows", []string{"Date", "State", "Sector", "Water Consumed"})
	require.NoError(t, err)

	require.NoError(t, b.Add([]string{"2020", "Perlis", "Domestic", "1"}))
	require.NoError(t, b.Add([]string{"", " ", "", ""}))
	err = b.Add([]string{"2020", "Perlis", "Domestic", "x"})

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 3, parseErr.Row)
	assert.Equal(t, 1, b.Dataset().Len())
}

func TestNewBuilder_ReportsAllMissingColumns(t *testing.T) {
	_, err := NewBuilder("cols", []string{"State"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Date, Sector, Water Consumed")
}

func TestBuilder_RejectsBlankYearOrState(t *testing.T) {
	tests := []struct {
		name       string
		fields     []string
		wantColumn string
	}{
		{name: "blank year", fields: []string{" ", "Perlis", "Domestic", "1"}, wantColumn: ColumnDate},
		{name: "blank state", fields: []string{"2020", "", "Domestic", "1"}, wantColumn: ColumnState},
		{name: "missing state cell", fields: []string{"2020"}, wantColumn: ColumnState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBuilder("blank", []string{"Date", "State", "Sector", "Water Consumed"})
			require.NoError(t, err)

			err = b.Add(tt.fields)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, 1, parseErr.Row)
			assert.Equal(t, tt.wantColumn, parseErr.Column)
			assert.ErrorIs(t, err, ErrEmptyValue)
			assert.Equal(t, 0, b.Dataset().Len())
		})
	}
}

func TestBuilder_BlankSectorAllowed(t *testing.T) {
	b, err := NewBuilder("sector", []string{"Date", "State", "Sector", "Water Consumed"})
	require.NoError(t, err)

	require.NoError(t, b.Add([]string{"2020", "Perlis", "", "3"}))
	assert.Equal(t, Record{Year: "2020", State: "Perlis", WaterConsumed: 3}, b.Dataset().At(0))
}
