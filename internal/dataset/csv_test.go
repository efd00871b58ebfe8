package dataset

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/leapstack-labs/waterdash/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Record
		wantErr func(t *testing.T, err error)
	}{
		{
			name:  "single row",
			input: "Date,State,Sector,Water Consumed\n2020,Selangor,Domestic,100\n",
			want:  []Record{{Year: "2020", State: "Selangor", Sector: "Domestic", WaterConsumed: 100}},
		},
		{
			name:  "header only",
			input: "Date,State,Sector,Water Consumed\n",
			want:  nil,
		},
		{
			name:  "headers are matched loosely and extra columns ignored",
			input: "\ufeff date , STATE,Region,sector,water_consumed\n2021,Johor,South,Non-Domestic,\"1,250.5\"\n",
			want:  []Record{{Year: "2021", State: "Johor", Sector: "Non-Domestic", WaterConsumed: 1250.5}},
		},
		{
			name:  "blank lines are skipped",
			input: "Date,State,Sector,Water Consumed\n2020,Johor,Domestic,1\n\n2020,Perak,Domestic,2\n",
			want: []Record{
				{Year: "2020", State: "Johor", Sector: "Domestic", WaterConsumed: 1},
				{Year: "2020", State: "Perak", Sector: "Domestic", WaterConsumed: 2},
			},
		},
		{
			name:  "missing column",
			input: "Date,State,Water Consumed\n2020,Selangor,100\n",
			wantErr: func(t *testing.T, err error) {
				var loadErr *LoadError
				require.ErrorAs(t, err, &loadErr)
				assert.ErrorIs(t, err, ErrMissingColumn)
				assert.Contains(t, err.Error(), "Sector")
			},
		},
		{
			name:  "empty input",
			input: "",
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrNoHeader)
			},
		},
		{
			name:  "non numeric value",
			input: "Date,State,Sector,Water Consumed\n2020,Selangor,Domestic,100\n2020,Johor,Domestic,abc\n",
			wantErr: func(t *testing.T, err error) {
				var parseErr *ParseError
				require.ErrorAs(t, err, &parseErr)
				assert.Equal(t, 2, parseErr.Row)
				assert.Equal(t, ColumnWaterConsumed, parseErr.Column)
				assert.Equal(t, "abc", parseErr.Value)
				assert.ErrorIs(t, err, ErrNotNumeric)
			},
		},
		{
			name:  "negative value",
			input: "Date,State,Sector,Water Consumed\n2020,Selangor,Domestic,-5\n",
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrNegative)
			},
		},
		{
			name:  "short row leaves consumption empty",
			input: "Date,State,Sector,Water Consumed\n2020,Selangor\n",
			wantErr: func(t *testing.T, err error) {
				var parseErr *ParseError
				require.ErrorAs(t, err, &parseErr)
				assert.Equal(t, 1, parseErr.Row)
				assert.ErrorIs(t, err, ErrEmptyValue)
			},
		},
		{
			name:  "malformed quoting",
			input: "Date,State,Sector,Water Consumed\n2020,\"Selangor,Domestic,1\n",
			wantErr: func(t *testing.T, err error) {
				var loadErr *LoadError
				assert.ErrorAs(t, err, &loadErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := ReadCSV(context.Background(), "test.csv", strings.NewReader(tt.input))
			if tt.wantErr != nil {
				require.Error(t, err)
				tt.wantErr(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "test.csv", ds.Source())
			assert.Equal(t, tt.want, ds.Records())
		})
	}
}

func TestReadCSV_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadCSV(ctx, "test.csv", strings.NewReader(testutil.SampleCSV))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestCSVSource_Load(t *testing.T) {
	t.Run("reads file", func(t *testing.T) {
		path := testutil.WriteSampleCSV(t)
		src := &CSVSource{Path: path, logger: testutil.NewTestLogger(t)}

		ds, err := src.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 12, ds.Len())
		assert.Equal(t, Record{Year: "2020", State: "Selangor", Sector: "Domestic", WaterConsumed: 100}, ds.At(0))
		assert.Equal(t, path, ds.Source())
	})

	t.Run("missing file", func(t *testing.T) {
		src := &CSVSource{Path: "does-not-exist.csv"}

		_, err := src.Load(context.Background())
		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, "does-not-exist.csv", loadErr.Source)
	})
}
