package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name string `yaml:"name" validate:"required"`
	Size int    `yaml:"size" validate:"gte=0"`
}

type doc struct {
	Endpoint string `yaml:"endpoint,omitempty" validate:"omitempty,url"`
	Workers  int    `yaml:"workers" validate:"omitempty,min=1,max=8"`
	Items    []item `yaml:"items" validate:"required,min=1,unique=Name,dive"`
	User     string `yaml:"user" validate:"required_with=Password"`
	Password string `yaml:"password"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name string
		in   doc
		want string
	}{
		{"missing items", doc{}, "items is required"},
		{"nested required", doc{Items: []item{{Size: 1}}}, "items[0].name is required"},
		{"negative", doc{Items: []item{{Name: "a", Size: -1}}}, "items[0].size must not be negative"},
		{"duplicate", doc{Items: []item{{Name: "a"}, {Name: "a"}}}, "items must not repeat name"},
		{"bad url", doc{Endpoint: "::", Items: []item{{Name: "a"}}}, "endpoint must be a URL"},
		{"too many workers", doc{Workers: 9, Items: []item{{Name: "a"}}}, "workers must be at most 8"},
		{"required with", doc{Password: "x", Items: []item{{Name: "a"}}}, "user is required when password is set"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestStruct_JoinsFailures(t *testing.T) {
	err := Struct(doc{Workers: 9})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workers must be at most 8")
	assert.Contains(t, err.Error(), "items is required")
}

func TestStruct_Valid(t *testing.T) {
	require.NoError(t, Struct(doc{Endpoint: "http://localhost:8000", Items: []item{{Name: "a"}}}))
}
