package types

import "fmt"

// Code is the stable numeric identifier of a column type exposed across the
// boundary. Values are part of the wire contract with the host and must not
// be renumbered.
type Code uint8

const (
	Unknown   Code = 0x00
	Ascii     Code = 0x01
	BigInt    Code = 0x02
	Blob      Code = 0x03
	Boolean   Code = 0x04
	Counter   Code = 0x05
	Decimal   Code = 0x06
	Double    Code = 0x07
	Float     Code = 0x08
	Int       Code = 0x09
	Text      Code = 0x0A
	Timestamp Code = 0x0B
	UUID      Code = 0x0C
	Varint    Code = 0x0E
	TimeUUID  Code = 0x0F
	Inet      Code = 0x10
	Date      Code = 0x11
	Time      Code = 0x12
	SmallInt  Code = 0x13
	TinyInt   Code = 0x14
	Duration  Code = 0x15

	List  Code = 0x20
	Map   Code = 0x21
	Set   Code = 0x22
	UDT   Code = 0x30
	Tuple Code = 0x31
)

var codeNames = map[Code]string{
	Unknown:   "custom",
	Ascii:     "ascii",
	BigInt:    "bigint",
	Blob:      "blob",
	Boolean:   "boolean",
	Counter:   "counter",
	Decimal:   "decimal",
	Double:    "double",
	Float:     "float",
	Int:       "int",
	Text:      "text",
	Timestamp: "timestamp",
	UUID:      "uuid",
	Varint:    "varint",
	TimeUUID:  "timeuuid",
	Inet:      "inet",
	Date:      "date",
	Time:      "time",
	SmallInt:  "smallint",
	TinyInt:   "tinyint",
	Duration:  "duration",
	List:      "list",
	Map:       "map",
	Set:       "set",
	UDT:       "udt",
	Tuple:     "tuple",
}

// IsScalar reports whether values of this code are described by the code
// alone. Scalar columns are announced with a null type handle.
func (c Code) IsScalar() bool {
	return c < List
}

// IsNative reports whether c is one of the known native codes (Unknown
// included).
func (c Code) IsNative() bool {
	_, ok := codeNames[c]

	return ok && c.IsScalar()
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}

	return fmt.Sprintf("code(0x%02X)", uint8(c))
}
