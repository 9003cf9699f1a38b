package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyNamingStrategy(t *testing.T) {
	tests := []struct {
		name     string
		strategy string
		want     string
	}{
		{"orderTs", CamelCase, "orderTs"},
		{"OrderTs", CamelCase, "orderTs"},
		{"URLPath", CamelCase, "urlPath"},
		{"ID", CamelCase, "id"},
		{"orderTs", SnakeCase, "order_ts"},
		{"HTTPServer", SnakeCase, "http_server"},
		{"orderTs", PascalCase, "OrderTs"},
		{"orderTs", "", "orderTs"},
	}

	for _, tt := range tests {
		t.Run(tt.strategy+"/"+tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyNamingStrategy(tt.name, tt.strategy))
		})
	}
}

func TestAccessorProperty(t *testing.T) {
	tests := []struct {
		method string
		want   string
		ok     bool
	}{
		{"getName", "name", true},
		{"isActive", "active", true},
		{"GetName", "name", true},
		{"getURL", "URL", true},
		{"getaway", "", false},
		{"get", "", false},
		{"island", "", false},
		{"name", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			got, ok := accessorProperty(tt.method)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
