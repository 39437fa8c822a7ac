package log

import (
	"fmt"
	"strconv"
	"time"
)

type FieldType int

const (
	InvalidType FieldType = iota
	IntType
	Int64Type
	StringType
	BoolType
	DurationType
	StringsType
	ErrorType
	StringerType
	AnyType
)

// Field is a typed key-value pair attached to a log record
type Field struct {
	ftype FieldType
	key   string

	vInt int64
	vStr string
	vAny interface{}
}

func (f Field) Type() FieldType {
	return f.ftype
}

func (f Field) Key() string {
	return f.key
}

func (f Field) IntValue() int {
	return int(f.vInt)
}

func (f Field) Int64Value() int64 {
	return f.vInt
}

func (f Field) StringValue() string {
	return f.vStr
}

func (f Field) BoolValue() bool {
	return f.vInt != 0
}

func (f Field) DurationValue() time.Duration {
	return time.Duration(f.vInt)
}

func (f Field) StringsValue() []string {
	v, _ := f.vAny.([]string)

	return v
}

func (f Field) ErrorValue() error {
	v, _ := f.vAny.(error)

	return v
}

// AnyValue returns the value as is, for typed fields too
func (f Field) AnyValue() interface{} {
	switch f.ftype {
	case IntType:
		return f.IntValue()
	case Int64Type:
		return f.vInt
	case StringType:
		return f.vStr
	case BoolType:
		return f.BoolValue()
	case DurationType:
		return f.DurationValue()
	default:
		return f.vAny
	}
}

// String renders the value. It panics on a Field made without constructors.
func (f Field) String() string {
	switch f.ftype {
	case IntType, Int64Type:
		return strconv.FormatInt(f.vInt, 10)
	case StringType:
		return f.vStr
	case BoolType:
		return strconv.FormatBool(f.BoolValue())
	case DurationType:
		return f.DurationValue().String()
	case StringsType:
		return fmt.Sprintf("%v", f.StringsValue())
	case ErrorType:
		if f.vAny == nil {
			return "<nil>"
		}

		return f.ErrorValue().Error()
	case StringerType:
		if f.vAny == nil {
			return "<nil>"
		}

		return f.vAny.(fmt.Stringer).String()
	case AnyType:
		if f.vAny == nil {
			return "<nil>"
		}

		return fmt.Sprintf("%v", f.vAny)
	default:
		panic(fmt.Sprintf("cqlbridge: unknown log field type %d of %q", f.ftype, f.key))
	}
}

func Int(k string, v int) Field {
	return Field{ftype: IntType, key: k, vInt: int64(v)}
}

func Int64(k string, v int64) Field {
	return Field{ftype: Int64Type, key: k, vInt: v}
}

func String(k, v string) Field {
	return Field{ftype: StringType, key: k, vStr: v}
}

func Bool(k string, v bool) Field {
	var i int64
	if v {
		i = 1
	}

	return Field{ftype: BoolType, key: k, vInt: i}
}

func Duration(k string, v time.Duration) Field {
	return Field{ftype: DurationType, key: k, vInt: int64(v)}
}

func Strings(k string, v []string) Field {
	return Field{ftype: StringsType, key: k, vAny: v}
}

func Error(err error) Field {
	return NamedError("error", err)
}

func NamedError(k string, err error) Field {
	f := Field{ftype: ErrorType, key: k}
	if err != nil {
		f.vAny = err
	}

	return f
}

func Stringer(k string, v fmt.Stringer) Field {
	return Field{ftype: StringerType, key: k, vAny: v}
}

func Any(k string, v interface{}) Field {
	return Field{ftype: AnyType, key: k, vAny: v}
}
