package abicoder

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
)

// Selector layout constants.
const (
	// SelectorPrefix is required at the start of every selector string.
	SelectorPrefix = "0x"

	// SelectorSize is the size of a function selector in bytes.
	SelectorSize = 4

	// SelectorHexLength is the length of a selector string including its prefix.
	SelectorHexLength = len(SelectorPrefix) + 2*SelectorSize
)

// Calldata owns a block tree and serializes it.
//
// Blocks are stored in an arena and referenced by BlockID. Construction adds
// blocks; Optimize computes an alias table and AssignOffsets an offset table,
// both kept beside the blocks rather than inside them.
type Calldata struct {
	blocks   []Block
	root     BlockID
	selector string
	rules    EncodingRules
	logger   log.Logger

	aliases map[BlockID]BlockID // pointer -> canonical dependency
	offsets []int               // nil until AssignOffsets
}

// NewCalldata creates an empty container that serializes with the given rules.
func NewCalldata(rules EncodingRules) *Calldata {
	return &Calldata{
		blocks:  make([]Block, 0, 16),
		root:    NoBlock,
		rules:   rules,
		logger:  rules.Logger(),
		aliases: make(map[BlockID]BlockID),
	}
}

// Block returns the block with the given ID, or nil if there is none.
func (cd *Calldata) Block(id BlockID) Block {
	if id < 0 || int(id) >= len(cd.blocks) {
		return nil
	}
	return cd.blocks[id]
}

// Len returns the number of blocks in the arena.
func (cd *Calldata) Len() int {
	return len(cd.blocks)
}

// Root returns the root block ID, or NoBlock.
func (cd *Calldata) Root() BlockID {
	return cd.root
}

// Selector returns the selector, or "" if none was set.
func (cd *Calldata) Selector() string {
	return cd.selector
}

// AddBlob adds a leaf block holding blob.
func (cd *Calldata) AddBlob(name, signature, parentName string, blob []byte) BlockID {
	id := BlockID(len(cd.blocks))
	cd.blocks = append(cd.blocks, &BlobBlock{
		blockMeta: blockMeta{id: id, name: name, signature: signature, parentName: parentName},
		blob:      common.CopyBytes(blob),
	})
	cd.offsets = nil
	return id
}

// AddSet adds a set block with the given header. Members are attached with SetMembers,
// after they have been created with the set as their parent.
func (cd *Calldata) AddSet(name, signature, parentName string, header []byte) BlockID {
	id := BlockID(len(cd.blocks))
	cd.blocks = append(cd.blocks, &SetBlock{
		blockMeta: blockMeta{id: id, name: name, signature: signature, parentName: parentName},
		header:    common.CopyBytes(header),
	})
	cd.offsets = nil
	return id
}

// SetMembers attaches member blocks to a set. It may be called once per set.
func (cd *Calldata) SetMembers(set BlockID, members ...BlockID) error {
	s, ok := cd.Block(set).(*SetBlock)
	if !ok {
		return fmt.Errorf("abicoder: block %d is not a set", set)
	}
	if s.members != nil {
		return fmt.Errorf("abicoder: set %q already has members", s.name)
	}
	for _, m := range members {
		if cd.Block(m) == nil {
			return fmt.Errorf("abicoder: unknown member block %d", m)
		}
	}
	s.members = make([]BlockID, len(members))
	copy(s.members, members)
	cd.offsets = nil
	return nil
}

// AddPointer adds a pointer to dependency, contained in the set parent.
func (cd *Calldata) AddPointer(name, signature, parentName string, dependency, parent BlockID) (BlockID, error) {
	if parent == NoBlock {
		return NoBlock, fmt.Errorf("%w: %s", ErrParentRequired, name)
	}
	if _, ok := cd.Block(parent).(*SetBlock); !ok {
		return NoBlock, fmt.Errorf("abicoder: pointer parent %d is not a set", parent)
	}
	if cd.Block(dependency) == nil {
		return NoBlock, fmt.Errorf("abicoder: unknown dependency block %d", dependency)
	}
	id := BlockID(len(cd.blocks))
	cd.blocks = append(cd.blocks, &PointerBlock{
		blockMeta:  blockMeta{id: id, name: name, signature: signature, parentName: parentName},
		parent:     parent,
		dependency: dependency,
	})
	cd.offsets = nil
	return id, nil
}

// SetRoot sets the root block. It may be called once.
func (cd *Calldata) SetRoot(id BlockID) error {
	if cd.root != NoBlock {
		return ErrRootAlreadySet
	}
	if cd.Block(id) == nil {
		return fmt.Errorf("abicoder: unknown root block %d", id)
	}
	cd.root = id
	return nil
}

// SetSelector sets the 4-byte function selector, given as 0x-prefixed hex.
func (cd *Calldata) SetSelector(selector string) error {
	if !strings.HasPrefix(selector, SelectorPrefix) {
		return &SelectorError{Selector: selector, Reason: fmt.Sprintf("expected prefix %q", SelectorPrefix)}
	}
	if len(selector) != SelectorHexLength {
		return &SelectorError{Selector: selector, Reason: fmt.Sprintf("expected %q followed by 8 hex digits (length %d), got %d", SelectorPrefix, SelectorHexLength, len(selector))}
	}
	if _, err := hexutil.Decode(selector); err != nil {
		return &SelectorError{Selector: selector, Reason: err.Error()}
	}
	cd.selector = strings.ToLower(selector)
	return nil
}

// Alias returns the block a pointer was redirected to by Optimize.
func (cd *Calldata) Alias(pointer BlockID) (BlockID, bool) {
	id, ok := cd.aliases[pointer]
	return id, ok
}

// RawData returns the position-independent content of a block: blob bytes,
// a set's header followed by its members' raw data, or a pointer's
// dependency raw data wrapped in "<" and ">".
func (cd *Calldata) RawData(id BlockID) []byte {
	return cd.rawData(id, nil)
}

func (cd *Calldata) rawData(id BlockID, cache map[BlockID][]byte) []byte {
	if cached, ok := cache[id]; ok {
		return cached
	}
	var out []byte
	switch b := cd.blocks[id].(type) {
	case *BlobBlock:
		out = b.blob
	case *SetBlock:
		out = append(out, b.header...)
		for _, m := range b.members {
			out = append(out, cd.rawData(m, cache)...)
		}
	case *PointerBlock:
		out = append(out, rawDataStart...)
		out = append(out, cd.rawData(b.dependency, cache)...)
		out = append(out, rawDataEnd...)
	}
	if cache != nil {
		cache[id] = out
	}
	return out
}

// ComputeHash returns the keccak256 hash of a block's raw data.
func (cd *Calldata) ComputeHash(id BlockID) common.Hash {
	return crypto.Keccak256Hash(cd.RawData(id))
}

// Optimize deduplicates byte-identical sub-trees. Walking the tree tail first,
// the first block seen for each content hash becomes canonical, and every
// pointer whose dependency has the same hash as a different canonical block is
// aliased to it. Only whole-block duplicates are detected.
//
// The alias table is recomputed from scratch, so repeated calls are idempotent.
func (cd *Calldata) Optimize() error {
	if cd.root == NoBlock {
		return ErrNoRoot
	}
	var (
		aliases = make(map[BlockID]BlockID)
		byHash  = make(map[common.Hash]BlockID)
		cache   = make(map[BlockID][]byte, len(cd.blocks))
		hashes  = make(map[BlockID]common.Hash, len(cd.blocks))
	)
	hashOf := func(id BlockID) common.Hash {
		if h, ok := hashes[id]; ok {
			return h
		}
		h := crypto.Keccak256Hash(cd.rawData(id, cache))
		hashes[id] = h
		return h
	}

	it := newIterator(cd, cd.root, nil, true)
	for block, ok := it.Next(); ok; block, ok = it.Next() {
		ptr, isPointer := block.(*PointerBlock)
		if !isPointer {
			h := hashOf(block.ID())
			if _, seen := byHash[h]; !seen {
				byHash[h] = block.ID()
			}
			continue
		}
		canonical, seen := byHash[hashOf(ptr.dependency)]
		if seen && canonical != ptr.dependency {
			aliases[ptr.id] = canonical
			cd.logger.Trace("Aliased calldata pointer", "pointer", ptr.name, "alias", cd.blocks[canonical].Name())
		}
	}

	cd.pruneAliases(aliases)

	cd.aliases = aliases
	cd.offsets = nil
	cd.logger.Debug("Optimized calldata", "blocks", len(cd.blocks), "aliases", len(aliases))
	return nil
}

// pruneAliases drops aliases whose target is not emitted. Content hashes can
// match across block kinds, so a canonical block may sit inside a subtree that
// is itself aliased away. Dropping an alias only adds emitted blocks, so the
// loop reaches a fixed point.
func (cd *Calldata) pruneAliases(aliases map[BlockID]BlockID) {
	for len(aliases) > 0 {
		emitted := make(map[BlockID]bool, len(cd.blocks))
		for _, id := range cd.buildQueue(cd.root, aliases, nil) {
			emitted[id] = true
		}
		dropped := 0
		for ptr, target := range aliases {
			if emitted[target] {
				continue
			}
			delete(aliases, ptr)
			dropped++
			cd.logger.Trace("Dropped calldata alias", "pointer", cd.blocks[ptr].Name(), "alias", cd.blocks[target].Name())
		}
		if dropped == 0 {
			return
		}
	}
}

// AssignOffsets walks the tree in encoding order and records the byte offset of
// every emitted block, relative to the end of the selector.
func (cd *Calldata) AssignOffsets() error {
	if cd.root == NoBlock {
		return ErrNoRoot
	}
	offsets := make([]int, len(cd.blocks))
	for i := range offsets {
		offsets[i] = -1
	}
	running := 0
	it := NewCalldataIterator(cd, cd.root)
	for block, ok := it.Next(); ok; block, ok = it.Next() {
		offsets[block.ID()] = running
		running += block.SizeInBytes()
	}
	cd.offsets = offsets
	return nil
}

// Offset returns the byte offset assigned to a block by AssignOffsets.
func (cd *Calldata) Offset(id BlockID) (int, error) {
	if cd.Block(id) == nil {
		return 0, fmt.Errorf("abicoder: unknown block %d", id)
	}
	if cd.offsets == nil || cd.offsets[id] < 0 {
		return 0, fmt.Errorf("%w: %s", ErrOffsetNotAssigned, cd.blocks[id].Name())
	}
	return cd.offsets[id], nil
}

// pointerWord computes the offset word of a pointer, relative to the end of its
// parent's header. Aliased pointers refer to their alias instead of their dependency.
func (cd *Calldata) pointerWord(p *PointerBlock) ([]byte, error) {
	dest := p.dependency
	if alias, ok := cd.aliases[p.id]; ok {
		dest = alias
	}
	destOffset, err := cd.Offset(dest)
	if err != nil {
		return nil, err
	}
	parentOffset, err := cd.Offset(p.parent)
	if err != nil {
		return nil, err
	}
	pointer := destOffset - (parentOffset + cd.blocks[p.parent].HeaderSizeInBytes())
	if pointer < 0 {
		return nil, fmt.Errorf("abicoder: pointer %q resolves to negative offset %d", p.name, pointer)
	}
	word := uint256.NewInt(uint64(pointer)).Bytes32()
	return word[:], nil
}

// blockBytes returns the bytes a block emits into the stream.
func (cd *Calldata) blockBytes(block Block) ([]byte, error) {
	switch b := block.(type) {
	case *BlobBlock:
		return b.blob, nil
	case *SetBlock:
		return b.header, nil
	case *PointerBlock:
		return cd.pointerWord(b)
	}
	return nil, fmt.Errorf("abicoder: unknown block type %T", block)
}

// prepare runs the optional optimization pass and assigns offsets.
func (cd *Calldata) prepare() error {
	if cd.root == NoBlock {
		return ErrNoRoot
	}
	if cd.rules.ShouldOptimize {
		if err := cd.Optimize(); err != nil {
			return err
		}
	}
	return cd.AssignOffsets()
}

// Bytes returns the EVM calldata: selector followed by every emitted block.
func (cd *Calldata) Bytes() ([]byte, error) {
	if err := cd.prepare(); err != nil {
		return nil, err
	}
	var out []byte
	if cd.selector != "" {
		out = append(out, hexutil.MustDecode(cd.selector)...)
	}
	it := NewCalldataIterator(cd, cd.root)
	for block, ok := it.Next(); ok; block, ok = it.Next() {
		data, err := cd.blockBytes(block)
		if err != nil {
			return nil, err
		}
		out = append(out, data...)
	}
	cd.logger.Trace("Serialized calldata", "selector", cd.selector, "size", len(out), "optimized", cd.rules.ShouldOptimize)
	return out, nil
}

// String returns the calldata as 0x-prefixed hex, or as an annotated dump when
// the container's rules request annotation.
func (cd *Calldata) String() (string, error) {
	if cd.rules.ShouldAnnotate {
		return cd.annotated()
	}
	data, err := cd.Bytes()
	if err != nil {
		return "", err
	}
	return hexutil.Encode(data), nil
}

// annotated renders one line per word: offset, value, and dotted name.
// Sets are marked by a "###" line carrying their name.
func (cd *Calldata) annotated() (string, error) {
	if err := cd.prepare(); err != nil {
		return "", err
	}
	var sb strings.Builder
	if cd.selector != "" {
		fmt.Fprintf(&sb, "%-12s%-66s%s\n", "", cd.selector, "selector")
	}
	it := NewCalldataIterator(cd, cd.root)
	for block, ok := it.Next(); ok; block, ok = it.Next() {
		name := cd.displayName(block)
		if _, isSet := block.(*SetBlock); isSet {
			fmt.Fprintf(&sb, "%-12s%-66s%s\n", "", "###", name)
		}
		data, err := cd.blockBytes(block)
		if err != nil {
			return "", err
		}
		offset := cd.offsets[block.ID()]
		for i := 0; i < len(data); i += WordSize {
			end := i + WordSize
			if end > len(data) {
				end = len(data)
			}
			label := ""
			if i == 0 {
				label = name
			}
			fmt.Fprintf(&sb, "0x%08x  %-66s%s\n", offset+i, "0x"+common.Bytes2Hex(data[i:end]), label)
		}
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

// displayName returns a block's name, noting the alias of redirected pointers.
func (cd *Calldata) displayName(block Block) string {
	name := block.Name()
	if name == "" {
		name = block.Signature()
	}
	if alias, ok := cd.aliases[block.ID()]; ok {
		aliasName := cd.blocks[alias].Name()
		if aliasName == "" {
			aliasName = cd.blocks[alias].Signature()
		}
		return fmt.Sprintf("%s (alias for %s)", name, aliasName)
	}
	return name
}
