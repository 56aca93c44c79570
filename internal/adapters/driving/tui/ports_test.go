package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/kgtool/internal/adapters/driven/render/markdown"
	"github.com/custodia-labs/kgtool/internal/core/services"
)

func TestNewPorts(t *testing.T) {
	ctxSvc := services.NewContextService()
	renderer := markdown.New()

	ports := NewPorts(ctxSvc, nil, renderer)

	assert.Equal(t, ctxSvc, ports.Context)
	assert.Nil(t, ports.Settings)
	assert.Equal(t, renderer, ports.Renderer)
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{
			name:  "all required set",
			ports: NewPorts(services.NewContextService(), nil, markdown.New()),
		},
		{
			name:    "missing context service",
			ports:   NewPorts(nil, nil, markdown.New()),
			wantErr: ErrMissingContextService,
		},
		{
			name:    "missing renderer",
			ports:   NewPorts(services.NewContextService(), nil, nil),
			wantErr: ErrMissingRenderer,
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
