package postgres

import (
	"testing"

	"github.com/leapstack-labs/waterdash/internal/dataset"
	"github.com/stretchr/testify/assert"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  dataset.SourceConfig
		want string
	}{
		{
			name: "defaults",
			cfg:  dataset.SourceConfig{Database: "stats"},
			want: "host=localhost port=5432 dbname=stats sslmode=disable",
		},
		{
			name: "full",
			cfg: dataset.SourceConfig{
				Host:     "db.internal",
				Port:     6543,
				Database: "stats",
				User:     "reader",
				Password: "pw",
				Options:  map[string]string{"sslmode": "require"},
			},
			want: "host=db.internal port=6543 dbname=stats sslmode=require user=reader password=pw",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildDSN(tt.cfg))
		})
	}
}

func TestRegistered(t *testing.T) {
	assert.True(t, dataset.IsRegistered("postgres"))
}
