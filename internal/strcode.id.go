package internal

import "fmt"

// StringID identifies a template. The high 16 bits select the table, the
// low 16 bits the entry within it.
type StringID uint32

// StringTable is the table half of a StringID.
type StringTable uint16

// Tables with a fixed meaning.
const (
	TableSystem  StringTable = 0
	TableDefault StringTable = 1
	TableSpecial StringTable = 30
	TableScript  StringTable = 32
	TableMod     StringTable = 64
)

// TableSize is the number of entries addressable in one table.
const TableSize = 1 << 16

// InvalidStringID is the null identifier. Formatting it produces the
// undefined-string template.
const InvalidStringID StringID = 0

// MakeStringID builds an identifier from its table and index.
func MakeStringID(table StringTable, index uint16) StringID {
	return StringID(uint32(table)<<16 | uint32(index))
}

// Table returns the table half of the identifier.
func (id StringID) Table() StringTable {
	return StringTable(id >> 16)
}

// Index returns the entry index within the table.
func (id StringID) Index() uint16 {
	return uint16(id)
}

// String returns a hexadecimal representation.
func (id StringID) String() string {
	return fmt.Sprintf("%#x", uint32(id))
}
