package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortYears(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{name: "numeric", input: []string{"2021", "2019", "2020"}, want: []string{"2019", "2020", "2021"}},
		{name: "numeric not lexical", input: []string{"10", "9", "100"}, want: []string{"9", "10", "100"}},
		{name: "numbers before labels", input: []string{"FY21", "2020", "FY20"}, want: []string{"2020", "FY20", "FY21"}},
		{name: "dates are lexical", input: []string{"2021-01-01", "2020-06-01"}, want: []string{"2020-06-01", "2021-01-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SortYears(tt.input)
			assert.Equal(t, tt.want, tt.input)
		})
	}
}
