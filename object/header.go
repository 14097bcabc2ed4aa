package object

// Header is the decoded form of the `<type> SP <size> NUL` prefix every
// loose object starts with, post zlib-decompression.
type Header struct {
	Type          Type
	ContentLength uint64
}
