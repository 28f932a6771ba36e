// Package keys hashes and compares the key columns of rows for joins
package keys

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-sif/reshape"
)

const (
	nullTag byte = iota
	boolTag
	intTag
	floatTag
	stringTag
	bytesTag
	timeTag
	structTag
	listTag
)

// Hash computes a hash of a key tuple. ok is false if any key value is nil,
// since null keys never match.
func Hash(values []any) (hash uint64, ok bool) {
	for _, v := range values {
		if v == nil {
			return 0, false
		}
	}
	d := xxhash.New()
	for _, v := range values {
		writeValue(d, v)
	}
	return d.Sum64(), true
}

func writeValue(d *xxhash.Digest, v any) {
	var buf [9]byte
	switch tv := v.(type) {
	case nil:
		d.Write([]byte{nullTag})
	case bool:
		buf[0] = boolTag
		if tv {
			buf[1] = 1
		}
		d.Write(buf[:2])
	case int32:
		writeUint64(d, intTag, uint64(int64(tv)))
	case int64:
		writeUint64(d, intTag, uint64(tv))
	case float32:
		writeUint64(d, floatTag, math.Float64bits(float64(tv)))
	case float64:
		writeUint64(d, floatTag, math.Float64bits(tv))
	case string:
		writeUint64(d, stringTag, uint64(len(tv)))
		d.WriteString(tv)
	case []byte:
		writeUint64(d, bytesTag, uint64(len(tv)))
		d.Write(tv)
	case time.Time:
		writeUint64(d, timeTag, uint64(tv.UnixNano()))
	case reshape.StructValue:
		writeUint64(d, structTag, uint64(len(tv)))
		for _, e := range tv {
			writeValue(d, e)
		}
	case []any:
		writeUint64(d, listTag, uint64(len(tv)))
		for _, e := range tv {
			writeValue(d, e)
		}
	default:
		d.WriteString(fmt.Sprintf("%#v", v))
	}
}

func writeUint64(d *xxhash.Digest, tag byte, n uint64) {
	var buf [9]byte
	buf[0] = tag
	binary.LittleEndian.PutUint64(buf[1:], n)
	d.Write(buf[:])
}

// Equal compares two key tuples value by value. Nil never equals anything.
func Equal(a []any, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] == nil || b[i] == nil || !valueEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func valueEqual(a any, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case []byte:
		bv, ok := b.([]byte)
		return ok && string(av) == string(bv)
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	case reshape.StructValue:
		bv, ok := b.(reshape.StructValue)
		return ok && sliceEqual(av, bv)
	case []any:
		bv, ok := b.([]any)
		return ok && sliceEqual(av, bv)
	default:
		return a == b
	}
}

func sliceEqual(a []any, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !valueEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
