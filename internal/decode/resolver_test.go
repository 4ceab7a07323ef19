package decode

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
)

type shape interface{ isShape() }

type circle struct {
	Radius float64 `json:"radius"`
}

type square struct {
	Side float64 `json:"side"`
}

func (circle) isShape() {}
func (square) isShape() {}

func shapeResolver() *Resolver[shape] {
	return NewResolver("media_type", map[string]DecodeFunc[shape]{
		"circle": Into(func(c circle) shape { return c }),
		"square": Into(func(s square) shape { return s }),
	})
}

func TestResolve_SelectsVariant(t *testing.T) {
	r := shapeResolver()

	v, err := r.Resolve(json.RawMessage(`{"media_type":"circle","radius":2}`))
	require.NoError(t, err)
	assert.Equal(t, circle{Radius: 2}, v)

	v, err = r.Resolve(json.RawMessage(`{"media_type":"square","side":3}`))
	require.NoError(t, err)
	assert.Equal(t, square{Side: 3}, v)
}

func TestResolve_TagIsCaseInsensitive(t *testing.T) {
	r := shapeResolver()

	lower, err := r.Resolve(json.RawMessage(`{"media_type":"circle","radius":1}`))
	require.NoError(t, err)
	upper, err := r.Resolve(json.RawMessage(`{"media_type":"Circle","radius":1}`))
	require.NoError(t, err)

	assert.IsType(t, circle{}, lower)
	assert.IsType(t, lower, upper)
	assert.Equal(t, lower, upper)
}

func TestResolve_Alias(t *testing.T) {
	r := shapeResolver().Alias("round", "circle")

	v, err := r.Resolve(json.RawMessage(`{"media_type":"ROUND","radius":5}`))
	require.NoError(t, err)
	assert.Equal(t, circle{Radius: 5}, v)
}

func TestResolve_AliasToUnknownTagPanics(t *testing.T) {
	assert.Panics(t, func() { shapeResolver().Alias("x", "triangle") })
}

func TestResolve_Failures(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		kind     Kind
		sentinel error
	}{
		{
			name:     "missing discriminator",
			raw:      `{"radius":2}`,
			kind:     KindMalformed,
			sentinel: domain.ErrMalformedResponse,
		},
		{
			name:     "null discriminator",
			raw:      `{"media_type":null,"radius":2}`,
			kind:     KindMalformed,
			sentinel: domain.ErrMalformedResponse,
		},
		{
			name:     "non-string discriminator",
			raw:      `{"media_type":7}`,
			kind:     KindMalformed,
			sentinel: domain.ErrMalformedResponse,
		},
		{
			name:     "not an object",
			raw:      `[1,2,3]`,
			kind:     KindMalformed,
			sentinel: domain.ErrMalformedResponse,
		},
		{
			name:     "unknown tag",
			raw:      `{"media_type":"triangle"}`,
			kind:     KindUnknownVariant,
			sentinel: domain.ErrUnknownVariant,
		},
		{
			name:     "variant payload does not decode",
			raw:      `{"media_type":"circle","radius":"big"}`,
			kind:     KindMalformed,
			sentinel: domain.ErrMalformedResponse,
		},
	}

	r := shapeResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := r.Resolve(json.RawMessage(tt.raw))
			require.Error(t, err)
			assert.Nil(t, v, "no partial variant may be returned")

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.kind, pe.Kind)
			assert.Equal(t, "media_type", pe.Key)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.ErrorIs(t, err, domain.ErrParseFailure)
		})
	}
}

func TestResolve_UnknownVariantIsNotMalformed(t *testing.T) {
	_, err := shapeResolver().Resolve(json.RawMessage(`{"media_type":"triangle"}`))
	assert.NotErrorIs(t, err, domain.ErrMalformedResponse)

	_, err = shapeResolver().Resolve(json.RawMessage(`{"side":1}`))
	assert.NotErrorIs(t, err, domain.ErrUnknownVariant)
}

func TestDecode_FixedTag(t *testing.T) {
	r := shapeResolver()

	v, err := r.Decode("square", json.RawMessage(`{"side":4}`))
	require.NoError(t, err)
	assert.Equal(t, square{Side: 4}, v)

	_, err = r.Decode("hexagon", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, domain.ErrUnknownVariant)
}

func TestResolveAll_StrictReportsIndex(t *testing.T) {
	raws := []json.RawMessage{
		json.RawMessage(`{"media_type":"circle","radius":1}`),
		json.RawMessage(`{"media_type":"square","side":2}`),
		json.RawMessage(`{"side":3}`),
	}

	out, err := shapeResolver().ResolveAll(raws)
	require.Error(t, err)
	assert.Nil(t, out)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Index)
	assert.Contains(t, err.Error(), "index 2")
}

func TestResolveEach_DropsBadElements(t *testing.T) {
	raws := []json.RawMessage{
		json.RawMessage(`{"media_type":"circle","radius":1}`),
		json.RawMessage(`{"media_type":"blob"}`),
		json.RawMessage(`{"radius":3}`),
		json.RawMessage(`{"media_type":"square","side":2}`),
	}

	var dropped []int
	out := shapeResolver().ResolveEach(raws, func(i int, err error) {
		assert.ErrorIs(t, err, domain.ErrParseFailure)
		dropped = append(dropped, i)
	})

	assert.Equal(t, []shape{circle{Radius: 1}, square{Side: 2}}, out)
	assert.Equal(t, []int{1, 2}, dropped)
}
