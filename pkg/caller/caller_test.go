package caller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type probe struct{}

func (*probe) method() string { return Name() }

func outer() string { return inner() }

func inner() string { return Name(1) }

func TestName(t *testing.T) {
	assert.Equal(t, "TestName", Name())

	fn := func() string { return Name() }
	assert.Equal(t, "TestName", fn())

	assert.Equal(t, "probe.method", (&probe{}).method())
	assert.Equal(t, "outer", outer())
}

func TestShorten(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"github.com/canbuoy/thor/parmap.Map[...]", "Map"},
		{"github.com/canbuoy/thor/parmap.(*worker[...]).run", "worker.run"},
		{"github.com/canbuoy/thor/parmap.Map[...].func1", "Map"},
		{"main.main.func2.1", "main"},
		{"main", "main"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, shorten(tt.in), tt.in)
	}
}
