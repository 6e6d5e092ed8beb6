// Package dskcompress exposes compress/gzip, compress/zlib, compress/bzip2
// (decompress-only — bzip2 has no stdlib encoder) and
// github.com/klauspost/compress/zstd as dsk.Op values, grounded on
// dmitrymomot-foundation's go.mod (klauspost/compress is already an
// indirect dependency there via its logging stack), generalized here into
// a first-class codec.
//
// Compress and Decompress both complete synchronously (the underlying
// codecs are pure CPU-bound stream transforms, not blocking I/O or network
// calls), reporting nIn (bytes read from the source), nOut (bytes written
// to the result), and isEnd (whether the stream's trailer/footer was
// reached cleanly) exactly as the round-trip scenario this package backs
// expects.
package dskcompress
