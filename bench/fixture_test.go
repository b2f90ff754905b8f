package bench

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCompression(t *testing.T) {
	tests := []struct {
		in   string
		want CompressionType
		ok   bool
	}{
		{"none", CompressionNone, true},
		{"", CompressionNone, true},
		{"lz4", CompressionLZ4, true},
		{"zstd", CompressionZSTD, true},
		{"gzip", CompressionNone, false},
	}

	for _, tt := range tests {
		got, err := ParseCompression(tt.in)
		if tt.ok {
			require.NoError(t, err, "ParseCompression(%q)", tt.in)
			assert.Equal(t, tt.want, got)
		} else {
			assert.Error(t, err, "ParseCompression(%q)", tt.in)
		}
	}
}

func TestCompressionType_String(t *testing.T) {
	assert.Equal(t, "none", CompressionNone.String())
	assert.Equal(t, "lz4", CompressionLZ4.String())
	assert.Equal(t, "zstd", CompressionZSTD.String())
	assert.Equal(t, "unknown(9)", CompressionType(9).String())
}

func TestEncodeDecodeBlock(t *testing.T) {
	compressible := bytes.Repeat([]byte("pyramid"), 1000)

	incompressible := make([]byte, 4096)
	rng := rand.New(rand.NewSource(42))
	rng.Read(incompressible)

	for _, c := range []CompressionType{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			for _, data := range [][]byte{compressible, incompressible} {
				block, err := encodeBlock(data, c)
				require.NoError(t, err)

				decoded, err := decodeBlock(block, c)
				require.NoError(t, err)
				assert.Equal(t, data, decoded)
			}
		})
	}
}

func TestDecodeBlock_Truncated(t *testing.T) {
	_, err := decodeBlock([]byte{1, 2, 3}, CompressionNone)
	assert.Error(t, err)

	block, err := encodeBlock(bytes.Repeat([]byte("x"), 100), CompressionLZ4)
	require.NoError(t, err)

	_, err = decodeBlock(block[:len(block)-10], CompressionLZ4)
	assert.Error(t, err)
}

func testScenario() Scenario {
	return Scenario{Name: "fixture-test", Universe: 100_000, Count: 1_000}
}

func TestFixtureStore_RoundTrip(t *testing.T) {
	s := testScenario()

	members, err := s.Members(DefaultSeed)
	require.NoError(t, err)

	for _, c := range []CompressionType{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			store := NewFixtureStore(t.TempDir(), c)

			require.NoError(t, store.Save(s, DefaultSeed, members))

			loaded, err := store.Load(s, DefaultSeed)
			require.NoError(t, err)
			assert.Equal(t, members, loaded)
		})
	}
}

func TestFixtureStore_CrossCompression(t *testing.T) {
	s := testScenario()

	members, err := s.Members(DefaultSeed)
	require.NoError(t, err)

	dir := t.TempDir()

	// The file header records its own compression, so a store configured
	// differently still reads it.
	writer := NewFixtureStore(dir, CompressionZSTD)
	require.NoError(t, writer.Save(s, DefaultSeed, members))

	reader := NewFixtureStore(dir, CompressionNone)
	loaded, err := reader.Load(s, DefaultSeed)
	require.NoError(t, err)
	assert.Equal(t, members, loaded)
}

func TestFixtureStore_LoadMissing(t *testing.T) {
	store := NewFixtureStore(t.TempDir(), CompressionNone)

	_, err := store.Load(testScenario(), DefaultSeed)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFixtureStore_LoadStale(t *testing.T) {
	s := testScenario()

	members, err := s.Members(DefaultSeed)
	require.NoError(t, err)

	store := NewFixtureStore(t.TempDir(), CompressionNone)
	require.NoError(t, store.Save(s, DefaultSeed, members))

	// Same file name resolves only by scenario name and seed; a changed
	// workload shape must be caught by the header.
	stale := s
	stale.Count = 2_000
	_, err = store.Load(stale, DefaultSeed)
	require.Error(t, err)
	assert.NotErrorIs(t, err, os.ErrNotExist)

	stale = s
	stale.Universe = 200_000
	_, err = store.Load(stale, DefaultSeed)
	assert.Error(t, err)

	_, err = store.Load(s, DefaultSeed+1)
	assert.ErrorIs(t, err, os.ErrNotExist) // different seed, different file
}

func TestFixtureStore_LoadCorrupt(t *testing.T) {
	s := testScenario()
	store := NewFixtureStore(t.TempDir(), CompressionNone)

	require.NoError(t, os.WriteFile(store.Path(s, DefaultSeed), []byte("not a fixture"), 0o644))

	_, err := store.Load(s, DefaultSeed)
	require.Error(t, err)
	assert.NotErrorIs(t, err, os.ErrNotExist)
}

func TestFixtureStore_LoadOrGenerate(t *testing.T) {
	s := testScenario()
	store := NewFixtureStore(t.TempDir(), CompressionLZ4)

	members, err := store.LoadOrGenerate(s, DefaultSeed)
	require.NoError(t, err)

	// First call generates and persists.
	raw, err := os.ReadFile(store.Path(s, DefaultSeed))
	require.NoError(t, err)

	// Second call loads the same set.
	again, err := store.LoadOrGenerate(s, DefaultSeed)
	require.NoError(t, err)
	assert.Equal(t, members, again)

	// A stale fixture errors out instead of being regenerated.
	stale := s
	stale.Count = 42
	_, err = store.LoadOrGenerate(stale, DefaultSeed)
	require.Error(t, err)

	after, err := os.ReadFile(store.Path(s, DefaultSeed))
	require.NoError(t, err)
	assert.Equal(t, raw, after, "stale fixture was rewritten")
}

func TestFixtureStore_Path(t *testing.T) {
	store := NewFixtureStore("/tmp/fixtures", CompressionNone)
	s := Scenario{Name: "mid-mid", Universe: 1_000_000, Count: 10_000}

	assert.Equal(t, filepath.Join("/tmp/fixtures", "mid-mid-4711.fixture"), store.Path(s, 4711))
}
