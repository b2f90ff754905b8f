package bench

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionType defines the fixture payload compression algorithm.
type CompressionType uint8

const (
	// CompressionNone stores the payload uncompressed.
	CompressionNone CompressionType = 0
	// CompressionLZ4 indicates LZ4 block compression (fast).
	CompressionLZ4 CompressionType = 1
	// CompressionZSTD indicates ZSTD block compression (better ratio).
	CompressionZSTD CompressionType = 2
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression parses a compression name as accepted by the CLI.
// The empty string means no compression.
func ParseCompression(s string) (CompressionType, error) {
	switch s {
	case "none", "":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return CompressionNone, fmt.Errorf("bench: unknown compression %q", s)
	}
}

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// Block format: [UncompressedSize uint32][CompressedSize uint32][Data...]
// If CompressedSize == 0, the data is stored uncompressed.
const blockHeaderSize = 8

// encodeBlock compresses data using the specified algorithm and prefixes
// the block header. Incompressible data is stored uncompressed.
func encodeBlock(data []byte, compression CompressionType) ([]byte, error) {
	var compressed []byte

	switch compression {
	case CompressionNone:
	case CompressionLZ4:
		bound := lz4.CompressBlockBound(len(data))
		buf := make([]byte, bound)
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		compressed = buf[:n] // n == 0 means incompressible
	case CompressionZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		putZstdEncoder(enc)
	default:
		return nil, fmt.Errorf("unknown compression type %d", compression)
	}

	if len(compressed) == 0 || len(compressed) >= len(data) {
		result := make([]byte, blockHeaderSize+len(data))
		binary.LittleEndian.PutUint32(result[0:], uint32(len(data)))
		binary.LittleEndian.PutUint32(result[4:], 0) // 0 = uncompressed
		copy(result[blockHeaderSize:], data)
		return result, nil
	}

	result := make([]byte, blockHeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(result[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(result[4:], uint32(len(compressed)))
	copy(result[blockHeaderSize:], compressed)
	return result, nil
}

// decodeBlock decompresses a block written by encodeBlock.
func decodeBlock(data []byte, compression CompressionType) ([]byte, error) {
	if len(data) < blockHeaderSize {
		return nil, errors.New("block too small for header")
	}

	uncompressedSize := binary.LittleEndian.Uint32(data[0:])
	compressedSize := binary.LittleEndian.Uint32(data[4:])

	if compressedSize == 0 {
		if uint64(len(data)) < blockHeaderSize+uint64(uncompressedSize) {
			return nil, errors.New("block data too small")
		}
		return data[blockHeaderSize : blockHeaderSize+int(uncompressedSize)], nil
	}

	if uint64(len(data)) < blockHeaderSize+uint64(compressedSize) {
		return nil, errors.New("compressed block data too small")
	}

	compressedData := data[blockHeaderSize : blockHeaderSize+int(compressedSize)]
	result := make([]byte, uncompressedSize)

	switch compression {
	case CompressionLZ4:
		n, err := lz4.UncompressBlock(compressedData, result)
		if err != nil {
			return nil, err
		}
		if uint32(n) != uncompressedSize {
			return nil, errors.New("decompressed size mismatch")
		}
		return result, nil

	case CompressionZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		decoded, err := dec.DecodeAll(compressedData, result[:0])
		if err != nil {
			return nil, err
		}
		if uint32(len(decoded)) != uncompressedSize {
			return nil, errors.New("decompressed size mismatch")
		}
		return decoded, nil

	default:
		return nil, fmt.Errorf("unknown compression type %d", compression)
	}
}

// Fixture file format: a 32-byte header followed by one block holding
// the member array as little-endian uint32 values in ascending order.
//
//	[magic uint32][version uint8][compression uint8][reserved uint16]
//	[universe uint64][count uint64][seed int64]
const (
	fixtureMagic      = 0x50595246 // "PYRF"
	fixtureVersion    = 1
	fixtureHeaderSize = 32
)

// FixtureStore persists generated member sets under a directory, so
// slow scenario generation is paid once. Files are named
// <scenario>-<seed>.fixture; the header pins universe, count and seed,
// and a stale fixture fails loading instead of silently skewing runs.
type FixtureStore struct {
	dir         string
	compression CompressionType
}

// NewFixtureStore creates a store writing fixtures with the given
// compression. Existing fixtures are readable regardless of the
// configured compression; the file header records its own.
func NewFixtureStore(dir string, compression CompressionType) *FixtureStore {
	return &FixtureStore{
		dir:         dir,
		compression: compression,
	}
}

// Path returns the fixture file path for a scenario and seed.
func (fs *FixtureStore) Path(s Scenario, seed int64) string {
	return filepath.Join(fs.dir, fmt.Sprintf("%s-%d.fixture", s.Name, seed))
}

// Save writes the member set for a scenario.
func (fs *FixtureStore) Save(s Scenario, seed int64, members []uint64) error {
	payload := make([]byte, 4*len(members))
	for i, m := range members {
		binary.LittleEndian.PutUint32(payload[4*i:], uint32(m))
	}

	block, err := encodeBlock(payload, fs.compression)
	if err != nil {
		return fmt.Errorf("bench: encode fixture %s: %w", s.Name, err)
	}

	buf := make([]byte, fixtureHeaderSize, fixtureHeaderSize+len(block))
	binary.LittleEndian.PutUint32(buf[0:], fixtureMagic)
	buf[4] = fixtureVersion
	buf[5] = byte(fs.compression)
	binary.LittleEndian.PutUint64(buf[8:], s.Universe)
	binary.LittleEndian.PutUint64(buf[16:], uint64(len(members)))
	binary.LittleEndian.PutUint64(buf[24:], uint64(seed))
	buf = append(buf, block...)

	if err := os.MkdirAll(fs.dir, 0o755); err != nil {
		return fmt.Errorf("bench: create fixture dir: %w", err)
	}
	if err := os.WriteFile(fs.Path(s, seed), buf, 0o644); err != nil {
		return fmt.Errorf("bench: write fixture: %w", err)
	}

	return nil
}

// Load reads the member set for a scenario, validating the header
// against the scenario and seed.
func (fs *FixtureStore) Load(s Scenario, seed int64) ([]uint64, error) {
	path := fs.Path(s, seed)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bench: read fixture: %w", err)
	}

	if len(data) < fixtureHeaderSize {
		return nil, fmt.Errorf("bench: fixture %s: truncated header", path)
	}
	if binary.LittleEndian.Uint32(data[0:]) != fixtureMagic {
		return nil, fmt.Errorf("bench: fixture %s: bad magic", path)
	}
	if data[4] != fixtureVersion {
		return nil, fmt.Errorf("bench: fixture %s: unsupported version %d", path, data[4])
	}

	compression := CompressionType(data[5])
	if compression > CompressionZSTD {
		return nil, fmt.Errorf("bench: fixture %s: unknown compression %d", path, data[5])
	}

	universe := binary.LittleEndian.Uint64(data[8:])
	count := binary.LittleEndian.Uint64(data[16:])
	fileSeed := int64(binary.LittleEndian.Uint64(data[24:]))
	if universe != s.Universe || count != uint64(s.Count) || fileSeed != seed {
		return nil, fmt.Errorf("bench: fixture %s: holds universe=%d count=%d seed=%d, want universe=%d count=%d seed=%d",
			path, universe, count, fileSeed, s.Universe, s.Count, seed)
	}

	payload, err := decodeBlock(data[fixtureHeaderSize:], compression)
	if err != nil {
		return nil, fmt.Errorf("bench: fixture %s: %w", path, err)
	}
	if uint64(len(payload)) != 4*count {
		return nil, fmt.Errorf("bench: fixture %s: payload size %d, want %d", path, len(payload), 4*count)
	}

	members := make([]uint64, count)
	for i := range members {
		members[i] = uint64(binary.LittleEndian.Uint32(payload[4*i:]))
	}

	return members, nil
}

// LoadOrGenerate loads the fixture if present, generating and saving it
// otherwise. A fixture that exists but fails validation is never
// overwritten.
func (fs *FixtureStore) LoadOrGenerate(s Scenario, seed int64) ([]uint64, error) {
	members, err := fs.Load(s, seed)
	if err == nil {
		return members, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	members, err = s.Members(seed)
	if err != nil {
		return nil, err
	}
	if err := fs.Save(s, seed, members); err != nil {
		return nil, err
	}

	return members, nil
}
