package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPorts(t *testing.T) {
	search := &stubSearch{}
	catalog := &stubCatalog{}

	ports := NewPorts(search, catalog, "shopper-1")

	assert.Equal(t, search, ports.Search)
	assert.Equal(t, catalog, ports.Catalog)
	assert.Equal(t, "shopper-1", ports.UserID)
	assert.Nil(t, ports.Personalization)
	assert.Nil(t, ports.Settings)
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{
			name:  "search and catalog set",
			ports: NewPorts(&stubSearch{}, &stubCatalog{}, "u"),
		},
		{
			name:    "missing search",
			ports:   &Ports{Catalog: &stubCatalog{}},
			wantErr: ErrMissingSearchService,
		},
		{
			name:    "missing catalog",
			ports:   &Ports{Search: &stubSearch{}},
			wantErr: ErrMissingCatalog,
		},
		{
			name:    "empty",
			ports:   &Ports{},
			wantErr: ErrMissingSearchService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
