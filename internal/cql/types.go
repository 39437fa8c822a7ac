package cql

import (
	"strconv"
	"strings"

	"github.com/gocql/gocql"

	"github.com/cqlbridge/cqlbridge-go/internal/types"
)

const (
	marshalPrefix = "org.apache.cassandra.db.marshal."
	vectorClass   = marshalPrefix + "VectorType"
)

var nativeCodes = map[gocql.Type]types.Code{
	gocql.TypeAscii:     types.Ascii,
	gocql.TypeBigInt:    types.BigInt,
	gocql.TypeBlob:      types.Blob,
	gocql.TypeBoolean:   types.Boolean,
	gocql.TypeCounter:   types.Counter,
	gocql.TypeDecimal:   types.Decimal,
	gocql.TypeDouble:    types.Double,
	gocql.TypeFloat:     types.Float,
	gocql.TypeInt:       types.Int,
	gocql.TypeText:      types.Text,
	gocql.TypeVarchar:   types.Text,
	gocql.TypeTimestamp: types.Timestamp,
	gocql.TypeUUID:      types.UUID,
	gocql.TypeVarint:    types.Varint,
	gocql.TypeTimeUUID:  types.TimeUUID,
	gocql.TypeInet:      types.Inet,
	gocql.TypeDate:      types.Date,
	gocql.TypeTime:      types.Time,
	gocql.TypeSmallInt:  types.SmallInt,
	gocql.TypeTinyInt:   types.TinyInt,
	gocql.TypeDuration:  types.Duration,
}

// marshal classes as they appear inside custom type parameters
var marshalClasses = map[string]types.Code{
	"AsciiType":         types.Ascii,
	"LongType":          types.BigInt,
	"BytesType":         types.Blob,
	"BooleanType":       types.Boolean,
	"CounterColumnType": types.Counter,
	"DecimalType":       types.Decimal,
	"DoubleType":        types.Double,
	"FloatType":         types.Float,
	"Int32Type":         types.Int,
	"UTF8Type":          types.Text,
	"TimestampType":     types.Timestamp,
	"UUIDType":          types.UUID,
	"IntegerType":       types.Varint,
	"TimeUUIDType":      types.TimeUUID,
	"InetAddressType":   types.Inet,
	"SimpleDateType":    types.Date,
	"TimeType":          types.Time,
	"ShortType":         types.SmallInt,
	"ByteType":          types.TinyInt,
	"DurationType":      types.Duration,
}

// TypeOf appends the type tree of info to b and returns its root
func TypeOf(b *types.Builder, info gocql.TypeInfo) types.ID {
	switch t := info.(type) {
	case *gocql.CollectionType:
		return TypeOf(b, *t)
	case *gocql.TupleTypeInfo:
		return TypeOf(b, *t)
	case *gocql.UDTTypeInfo:
		return TypeOf(b, *t)
	case gocql.CollectionType:
		// result metadata of the driver drops the frozen flag, so
		// collections and UDTs are always reported as not frozen
		switch t.Type() {
		case gocql.TypeList:
			return b.List(TypeOf(b, t.Elem), false)
		case gocql.TypeSet:
			return b.Set(TypeOf(b, t.Elem), false)
		case gocql.TypeMap:
			key := TypeOf(b, t.Key)
			value := TypeOf(b, t.Elem)

			return b.Map(key, value, false)
		}
	case gocql.TupleTypeInfo:
		elems := make([]types.ID, len(t.Elems))
		for i, elem := range t.Elems {
			elems[i] = TypeOf(b, elem)
		}

		return b.Tuple(elems...)
	case gocql.UDTTypeInfo:
		fields := make([]types.Field, len(t.Elements))
		for i, f := range t.Elements {
			fields[i] = types.Field{Name: f.Name, Type: TypeOf(b, f.Type)}
		}

		// not frozen for the same reason as collections
		return b.UDT(t.KeySpace, t.Name, false, fields...)
	}

	if info == nil {
		return b.Native(types.Unknown)
	}
	if info.Type() == gocql.TypeCustom {
		if elem, dims, ok := parseVector(info.Custom()); ok {
			return b.Vector(b.Native(elem), dims)
		}
	}
	if code, has := nativeCodes[info.Type()]; has {
		return b.Native(code)
	}

	return b.Native(types.Unknown)
}

// parseVector parses "VectorType(<element class>, <dimensions>)"
func parseVector(class string) (elem types.Code, dims int, ok bool) {
	params, found := strings.CutPrefix(class, vectorClass+"(")
	if !found || !strings.HasSuffix(params, ")") {
		return 0, 0, false
	}
	params = strings.TrimSuffix(params, ")")
	sep := strings.LastIndexByte(params, ',')
	if sep < 0 {
		return 0, 0, false
	}
	dims, err := strconv.Atoi(strings.TrimSpace(params[sep+1:]))
	if err != nil || dims <= 0 {
		return 0, 0, false
	}
	elemClass := strings.TrimPrefix(strings.TrimSpace(params[:sep]), marshalPrefix)
	elem, has := marshalClasses[elemClass]
	if !has {
		elem = types.Unknown
	}

	return elem, dims, true
}
