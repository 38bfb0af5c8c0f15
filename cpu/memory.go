package cpu

const (
	MEMORY_SIZE = 1 << 16 // Memory size, in words.
)

// Word is the native 16-bit machine datum.
type Word uint16

// Memory is the flat word addressed main memory.
type Memory struct {
	words []Word
}

// NewMemory allocates a zeroed memory of MEMORY_SIZE words.
func NewMemory() *Memory {
	return &Memory{
		words: make([]Word, MEMORY_SIZE),
	}
}

func (mem *Memory) check(addr Word) {
	if int(addr) >= len(mem.words) {
		panic(ErrAddress(addr))
	}
}

// Read the word at addr.
func (mem *Memory) Read(addr Word) Word {
	mem.check(addr)
	return mem.words[addr]
}

// Write value to addr.
func (mem *Memory) Write(addr Word, value Word) {
	mem.check(addr)
	mem.words[addr] = value
}

// Size returns the number of addressable words.
func (mem *Memory) Size() int {
	return len(mem.words)
}

// load copies words starting at address 0. The caller has already checked the size.
func (mem *Memory) load(words []Word) {
	copy(mem.words, words)
}
