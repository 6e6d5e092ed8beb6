package dskcompress

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/go-dsk/dsk"
	"github.com/go-dsk/dsk/errs"
)

// gzipMagic is the two-byte gzip header identifier (RFC 1952 §2.3.1).
var gzipMagic = []byte{0x1f, 0x8b}

// countingReader tallies bytes read through it.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// Compress returns an Op that reads all of r and writes codec's compressed
// form to the result's Data.
func Compress(codec Codec, r io.Reader) dsk.Op[CompressResult] {
	return dsk.OpFunc(func(dsk.Ctx) (CompressResult, error) {
		cr := &countingReader{r: r}
		var buf bytes.Buffer

		wc, err := newCompressWriter(codec, &buf)
		if err != nil {
			return CompressResult{}, err
		}
		if _, err := io.Copy(wc, cr); err != nil {
			return CompressResult{}, errs.Wrap(errs.KindDomain, err)
		}
		if err := wc.Close(); err != nil {
			return CompressResult{}, errs.Wrap(errs.KindDomain, err)
		}

		return CompressResult{
			Data:  buf.Bytes(),
			NIn:   cr.n,
			NOut:  int64(buf.Len()),
			IsEnd: true,
		}, nil
	})
}

func newCompressWriter(codec Codec, w io.Writer) (io.WriteCloser, error) {
	switch codec {
	case Gzip, GzipAutoDetect:
		return gzip.NewWriter(w), nil
	case Zlib:
		return zlib.NewWriter(w), nil
	case Zstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, errs.Wrap(errs.KindDomain, err)
		}
		return enc, nil
	case BZ2:
		return nil, errs.New(errs.KindInvalidInput, "dskcompress: bzip2 has no encoder, decompress-only")
	default:
		return nil, errs.New(errs.KindInvalidInput, "dskcompress: unknown codec")
	}
}

// Decompress returns an Op that reads codec-compressed bytes from r and
// writes the decompressed form to the result's Data. GzipAutoDetect
// additionally sniffs the first two bytes against the gzip magic number
// before attempting to decode, reporting a KindParseFailed error instead
// of whatever opaque error gzip.NewReader would otherwise produce on
// non-gzip input.
func Decompress(codec Codec, r io.Reader) dsk.Op[DecompressResult] {
	return dsk.OpFunc(func(dsk.Ctx) (DecompressResult, error) {
		cr := &countingReader{r: r}

		rc, err := newDecompressReader(codec, cr)
		if err != nil {
			return DecompressResult{}, err
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return DecompressResult{}, errs.Wrap(errs.KindDomain, err)
		}

		return DecompressResult{
			Data:  data,
			NIn:   cr.n,
			NOut:  int64(len(data)),
			IsEnd: true,
		}, nil
	})
}

func newDecompressReader(codec Codec, r io.Reader) (io.ReadCloser, error) {
	switch codec {
	case Gzip:
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, errs.Wrap(errs.KindParseFailed, err)
		}
		return gr, nil
	case GzipAutoDetect:
		br := bufio.NewReader(r)
		magic, err := br.Peek(len(gzipMagic))
		if err != nil || !bytes.Equal(magic, gzipMagic) {
			return nil, errs.New(errs.KindParseFailed, "dskcompress: input is not gzip-framed")
		}
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, errs.Wrap(errs.KindParseFailed, err)
		}
		return gr, nil
	case Zlib:
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, errs.Wrap(errs.KindParseFailed, err)
		}
		return zr, nil
	case BZ2:
		return io.NopCloser(bzip2.NewReader(r)), nil
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, errs.Wrap(errs.KindParseFailed, err)
		}
		return zstdReadCloser{dec}, nil
	default:
		return nil, errs.New(errs.KindInvalidInput, "dskcompress: unknown codec")
	}
}

// zstdReadCloser adapts *zstd.Decoder's void Close to io.ReadCloser.
type zstdReadCloser struct{ *zstd.Decoder }

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}
