package abicoder

// WordSize is the size in bytes of one ABI word.
const WordSize = 32

// BlockID addresses a block inside the Calldata that owns it.
type BlockID int

// NoBlock is the BlockID used when a block has no parent.
const NoBlock BlockID = -1

// Block is one node of the calldata serialization tree.
// This is a sealed interface - only BlobBlock, SetBlock and PointerBlock implement it.
type Block interface {
	// isBlock is unexported to seal the interface.
	isBlock()

	// ID returns the block's index in its owning Calldata.
	ID() BlockID

	// Name returns the dotted path of the encoded value, e.g. "order.makerAssetData".
	Name() string

	// Signature returns the canonical ABI type of the encoded value.
	Signature() string

	// ParentName returns the dotted path of the enclosing value.
	ParentName() string

	// HeaderSizeInBytes returns the size of the block's header.
	HeaderSizeInBytes() int

	// BodySizeInBytes returns the size of the block's body.
	BodySizeInBytes() int

	// SizeInBytes returns the number of bytes the block emits into the stream.
	SizeInBytes() int
}

type blockMeta struct {
	id         BlockID
	name       string
	signature  string
	parentName string
}

func (m *blockMeta) ID() BlockID        { return m.id }
func (m *blockMeta) Name() string       { return m.name }
func (m *blockMeta) Signature() string  { return m.signature }
func (m *blockMeta) ParentName() string { return m.parentName }

// BlobBlock is a leaf holding a raw, word-aligned payload.
type BlobBlock struct {
	blockMeta
	blob []byte
}

func (b *BlobBlock) isBlock() {}

// HeaderSizeInBytes is always zero for blobs.
func (b *BlobBlock) HeaderSizeInBytes() int { return 0 }

// BodySizeInBytes returns the payload length.
func (b *BlobBlock) BodySizeInBytes() int { return len(b.blob) }

// SizeInBytes returns the payload length.
func (b *BlobBlock) SizeInBytes() int { return len(b.blob) }

// Blob returns a copy of the payload.
func (b *BlobBlock) Blob() []byte {
	out := make([]byte, len(b.blob))
	copy(out, b.blob)
	return out
}

// SetBlock groups the member blocks of a tuple or array.
// Its only emitted bytes are its header: the length word of a dynamic array,
// empty for tuples and fixed arrays.
type SetBlock struct {
	blockMeta
	header  []byte
	members []BlockID
}

func (b *SetBlock) isBlock() {}

// HeaderSizeInBytes returns the header length.
func (b *SetBlock) HeaderSizeInBytes() int { return len(b.header) }

// BodySizeInBytes is zero; members are emitted as blocks of their own.
func (b *SetBlock) BodySizeInBytes() int { return 0 }

// SizeInBytes returns the header length.
func (b *SetBlock) SizeInBytes() int { return len(b.header) }

// Header returns a copy of the header.
func (b *SetBlock) Header() []byte {
	out := make([]byte, len(b.header))
	copy(out, b.header)
	return out
}

// Members returns the member block IDs in order.
func (b *SetBlock) Members() []BlockID {
	out := make([]BlockID, len(b.members))
	copy(out, b.members)
	return out
}

// PointerBlock emits the offset word of an out-of-line dependency.
// The parent is the set whose members contain the pointer; it is a structural
// relation only, the dependency is owned by the pointer.
type PointerBlock struct {
	blockMeta
	parent     BlockID
	dependency BlockID
}

func (b *PointerBlock) isBlock() {}

// HeaderSizeInBytes is always zero for pointers.
func (b *PointerBlock) HeaderSizeInBytes() int { return 0 }

// BodySizeInBytes is one word.
func (b *PointerBlock) BodySizeInBytes() int { return WordSize }

// SizeInBytes is one word.
func (b *PointerBlock) SizeInBytes() int { return WordSize }

// Parent returns the ID of the set containing the pointer.
func (b *PointerBlock) Parent() BlockID { return b.parent }

// Dependency returns the ID of the block the pointer refers to.
func (b *PointerBlock) Dependency() BlockID { return b.dependency }

// Raw data delimiters used for pointer dependencies when hashing.
var (
	rawDataStart = []byte("<")
	rawDataEnd   = []byte(">")
)
