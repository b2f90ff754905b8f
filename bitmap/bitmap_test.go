package bitmap

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBitmap is a sorted-slice implementation of the contract, enough
// to exercise the registry and the iterator without importing a variant
// package.
type fakeBitmap struct {
	universe uint64
	members  []uint64
}

var _ Bitmap = (*fakeBitmap)(nil)

func (f *fakeBitmap) Len() uint64 { return f.universe }

func (f *fakeBitmap) Set(b uint64) {
	i, found := slices.BinarySearch(f.members, b)
	if !found {
		f.members = slices.Insert(f.members, i, b)
	}
}

func (f *fakeBitmap) Test(b uint64) bool {
	_, found := slices.BinarySearch(f.members, b)
	return found
}

func (f *fakeBitmap) NextSet(b uint64) (uint64, bool) {
	i, _ := slices.BinarySearch(f.members, b)
	if i == len(f.members) {
		return 0, false
	}
	return f.members[i], true
}

func (f *fakeBitmap) Release() { f.members = nil }

func TestRegistry(t *testing.T) {
	Register("fake", func(universe uint64) (Bitmap, error) {
		return &fakeBitmap{universe: universe}, nil
	})

	assert.True(t, Registered("fake"))
	assert.False(t, Registered("no-such-variant"))
	assert.Contains(t, Names(), "fake")

	bm, err := New("fake", 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), bm.Len())
}

func TestNames_Sorted(t *testing.T) {
	Register("zz-fake", func(universe uint64) (Bitmap, error) {
		return &fakeBitmap{universe: universe}, nil
	})
	Register("aa-fake", func(universe uint64) (Bitmap, error) {
		return &fakeBitmap{universe: universe}, nil
	})

	names := Names()
	assert.True(t, slices.IsSorted(names), "Names() = %v", names)
	assert.Subset(t, names, []string{"aa-fake", "zz-fake"})
}

func TestNew_Unknown(t *testing.T) {
	bm, err := New("no-such-variant", 100)
	assert.Nil(t, bm)
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestNew_FactoryError(t *testing.T) {
	sentinel := errors.New("boom")
	Register("failing", func(universe uint64) (Bitmap, error) {
		var fb *fakeBitmap
		return fb, sentinel
	})

	bm, err := New("failing", 100)
	assert.ErrorIs(t, err, sentinel)

	// The interface itself must be nil, not a wrapped nil pointer.
	assert.True(t, bm == nil)
}

func TestAll(t *testing.T) {
	f := &fakeBitmap{universe: 100}
	for _, m := range []uint64{5, 10, 20} {
		f.Set(m)
	}

	var got []uint64
	for m := range All(f) {
		got = append(got, m)
	}
	assert.Equal(t, []uint64{5, 10, 20}, got)

	var first []uint64
	for m := range All(f) {
		first = append(first, m)
		break
	}
	assert.Equal(t, []uint64{5}, first)
}

func TestEnums_String(t *testing.T) {
	assert.Equal(t, "Word64", Word64.String())
	assert.Equal(t, "Word32", Word32.String())
	assert.Equal(t, "Word8", Word8.String())
	assert.Equal(t, "Unknown", WordWidth(99).String())

	assert.Equal(t, "LevelsDynamic", LevelsDynamic.String())
	assert.Equal(t, "LevelsFixed", LevelsFixed.String())
	assert.Equal(t, "Unknown", LevelPolicy(99).String())

	assert.Equal(t, "SearchRecursive", SearchRecursive.String())
	assert.Equal(t, "SearchDescendFirst", SearchDescendFirst.String())
	assert.Equal(t, "SearchIterative", SearchIterative.String())
	assert.Equal(t, "Unknown", SearchStrategy(99).String())
}
