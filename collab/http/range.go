package dskhttp

import (
	"strconv"
	"strings"

	"github.com/go-dsk/dsk/errs"
)

// Range is a single byte range parsed from an HTTP Range header, carried as
// three independent fields rather than a tagged union: at most one of
// SuffixLength or FirstByte/LastByte is meaningful for a given Range,
// distinguished by which are non-negative.
type Range struct {
	FirstByte    int64 // -1 if unset
	LastByte     int64 // -1 if unset; inclusive when set
	SuffixLength int64 // -1 if unset
}

func (r Range) valid() bool {
	return r.SuffixLength > 0 ||
		(r.FirstByte >= 0 && (r.LastByte < 0 || r.LastByte >= r.FirstByte))
}

// Resolve turns r into a concrete, end-inclusive [FirstByte, LastByte] pair
// against a resource of the given length, the way a suffix range ("last N
// bytes") or an open-ended range ("byte N to the end") only become concrete
// once the resource's length is known.
func (r Range) Resolve(length int64) (Range, error) {
	if r.SuffixLength > 0 {
		n := r.SuffixLength
		if n > length {
			n = length
		}
		return Range{FirstByte: length - n, LastByte: length - 1}, nil
	}
	if r.FirstByte < length {
		last := r.LastByte
		if last < 0 || last > length-1 {
			last = length - 1
		}
		return Range{FirstByte: r.FirstByte, LastByte: last}, nil
	}
	return Range{}, errs.New(errs.KindOutOfBound, "range start beyond resource length")
}

// ParseSingleRangeHeader parses a Range header value carrying exactly one
// byte range, e.g. "bytes=100-199", "bytes=-50" (last 50 bytes), or
// "bytes=500-" (byte 500 to the end). Multi-range headers ("bytes=0-10,20-30")
// are rejected as KindParseFailed; this module only ever serves a single
// range per request.
func ParseSingleRangeHeader(val string) (Range, error) {
	unit, spec, ok := strings.Cut(val, "=")
	if !ok {
		return Range{}, errs.New(errs.KindParseFailed, "missing '=' in range header")
	}
	if !strings.EqualFold(strings.TrimSpace(unit), "bytes") {
		return Range{}, errs.New(errs.KindParseFailed, "unsupported range unit")
	}

	first, last, ok := strings.Cut(spec, "-")
	if !ok {
		return Range{}, errs.New(errs.KindParseFailed, "missing '-' in range header")
	}

	r := Range{FirstByte: -1, LastByte: -1, SuffixLength: -1}

	first = strings.TrimSpace(first)
	if first != "" {
		n, err := strconv.ParseInt(first, 10, 64)
		if err != nil {
			return Range{}, errs.Wrap(errs.KindParseFailed, err)
		}
		r.FirstByte = n
	}

	last = strings.TrimSpace(last)
	if last != "" {
		n, err := strconv.ParseInt(last, 10, 64)
		if err != nil {
			return Range{}, errs.Wrap(errs.KindParseFailed, err)
		}
		if r.FirstByte >= 0 {
			r.LastByte = n
		} else {
			r.SuffixLength = n
		}
	} else if r.FirstByte < 0 {
		return Range{}, errs.New(errs.KindOutOfBound, "range header has neither a start nor a suffix length")
	}

	if !r.valid() {
		return Range{}, errs.New(errs.KindOutOfBound, "range header values are out of bounds")
	}

	return r, nil
}
