// Command cqlbridge builds the C-shared library serving CQL sessions and
// result streaming to a host runtime:
//
//	go build -buildmode=c-shared -o libcqlbridge.so ./cmd/cqlbridge
package main

/*
#include "cqlbridge.h"
*/
import "C"

import (
	"unsafe"

	"github.com/cqlbridge/cqlbridge-go/internal/exception"
	"github.com/cqlbridge/cqlbridge-go/internal/ffi"
	"github.com/cqlbridge/cqlbridge-go/internal/handle"
)

func main() {}

//export session_create
func session_create(tcb C.Tcb, uri *C.char) {
	ffi.Default().SessionCreate(goTcb(tcb), C.GoString(uri))
}

//export session_create_with_configuration
func session_create_with_configuration(tcb C.Tcb, uri *C.char, cfg *C.CSConfiguration) {
	ffi.Default().SessionCreate(goTcb(tcb), C.GoString(uri), goConfig(cfg)...)
}

//export session_free
func session_free(session C.BridgeHandle) {
	ffi.Default().SessionFree(handle.Handle(session))
}

//export session_prepare
func session_prepare(tcb C.Tcb, session C.BridgeHandle, statement *C.char) {
	ffi.Default().SessionPrepare(goTcb(tcb), handle.Handle(session), C.GoString(statement))
}

//export session_query
func session_query(tcb C.Tcb, session C.BridgeHandle, statement *C.char) {
	ffi.Default().SessionQuery(goTcb(tcb), handle.Handle(session), C.GoString(statement))
}

//export session_query_bound
func session_query_bound(tcb C.Tcb, session, prepared C.BridgeHandle) {
	ffi.Default().SessionQueryBound(goTcb(tcb), handle.Handle(session), handle.Handle(prepared))
}

//export session_use_keyspace
func session_use_keyspace(tcb C.Tcb, session C.BridgeHandle, keyspace *C.char, caseSensitive C.int32_t) {
	ffi.Default().SessionUseKeyspace(goTcb(tcb), handle.Handle(session), C.GoString(keyspace), caseSensitive != 0)
}

//export prepared_statement_free
func prepared_statement_free(prepared C.BridgeHandle) {
	ffi.Default().PreparedStatementFree(handle.Handle(prepared))
}

//export row_set_free
func row_set_free(rowSet C.BridgeHandle) {
	ffi.Default().RowSetFree(handle.Handle(rowSet))
}

//export row_set_get_columns_count
func row_set_get_columns_count(rowSet C.BridgeHandle) C.size_t {
	return C.size_t(ffi.Default().RowSetColumnsCount(handle.Handle(rowSet)))
}

//export row_set_fill_columns_metadata
func row_set_fill_columns_metadata(
	rowSet C.BridgeHandle,
	columns C.uintptr_t,
	setMetadata C.SetMetadata,
	constructors *C.ExceptionConstructors,
) C.FfiException {
	ex := ffi.Default().RowSetFillColumnsMetadata(handle.Handle(rowSet), goConstructors(constructors),
		func(column ffi.ColumnMetadata) exception.Exception {
			var frozen C.uint8_t
			if column.Frozen {
				frozen = 1
			}

			return exception.Exception(C.call_set_metadata(setMetadata, columns,
				C.size_t(column.Index),
				ffiStr(column.Name),
				ffiStr(column.Keyspace),
				ffiStr(column.Table),
				C.uint8_t(column.Code),
				C.TypeInfoHandle(column.Type),
				frozen,
			))
		},
	)

	return C.FfiException(ex)
}

//export row_set_next_row
func row_set_next_row(
	rowSet C.BridgeHandle,
	deserializeValue C.DeserializeValue,
	columns, values, serializer C.uintptr_t,
	outHasRow *C.bool,
	constructors *C.ExceptionConstructors,
) C.FfiException {
	if outHasRow == nil {
		panic("cqlbridge: null pointer passed to row_set_next_row")
	}
	hasRow, ex := ffi.Default().RowSetNextRow(handle.Handle(rowSet), goConstructors(constructors),
		func(index int, data []byte) exception.Exception {
			return exception.Exception(C.call_deserialize_value(deserializeValue, columns, values,
				C.size_t(index),
				serializer,
				(*C.uint8_t)(unsafe.Pointer(unsafe.SliceData(data))),
				C.size_t(len(data)),
			))
		},
	)
	*outHasRow = C.bool(hasRow)

	return C.FfiException(ex)
}

//export row_set_type_info_get_code
func row_set_type_info_get_code(typ C.TypeInfoHandle) C.uint8_t {
	return C.uint8_t(ffi.Default().TypeInfoCode(handle.TypeHandle(typ)))
}

func mustOut[T any](p *T, op string) *T {
	if p == nil {
		panic("cqlbridge: null pointer passed to " + op)
	}

	return p
}

//export row_set_type_info_get_list_child
func row_set_type_info_get_list_child(typ C.TypeInfoHandle, outChild *C.TypeInfoHandle) {
	out := mustOut(outChild, "row_set_type_info_get_list_child")
	*out = C.TypeInfoHandle(ffi.Default().TypeInfoListChild(handle.TypeHandle(typ)))
}

//export row_set_type_info_get_set_child
func row_set_type_info_get_set_child(typ C.TypeInfoHandle, outChild *C.TypeInfoHandle) {
	out := mustOut(outChild, "row_set_type_info_get_set_child")
	*out = C.TypeInfoHandle(ffi.Default().TypeInfoSetChild(handle.TypeHandle(typ)))
}

//export row_set_type_info_get_map_children
func row_set_type_info_get_map_children(typ C.TypeInfoHandle, outKey, outValue *C.TypeInfoHandle) {
	key := mustOut(outKey, "row_set_type_info_get_map_children")
	value := mustOut(outValue, "row_set_type_info_get_map_children")
	k, v := ffi.Default().TypeInfoMapChildren(handle.TypeHandle(typ))
	*key, *value = C.TypeInfoHandle(k), C.TypeInfoHandle(v)
}

//export row_set_type_info_get_tuple_field_count
func row_set_type_info_get_tuple_field_count(typ C.TypeInfoHandle) C.size_t {
	return C.size_t(ffi.Default().TypeInfoTupleFieldCount(handle.TypeHandle(typ)))
}

//export row_set_type_info_get_tuple_field
func row_set_type_info_get_tuple_field(typ C.TypeInfoHandle, index C.size_t, outField *C.TypeInfoHandle) {
	out := mustOut(outField, "row_set_type_info_get_tuple_field")
	*out = C.TypeInfoHandle(ffi.Default().TypeInfoTupleField(handle.TypeHandle(typ), int(index)))
}

//export row_set_type_info_get_udt_name
func row_set_type_info_get_udt_name(typ C.TypeInfoHandle, outName *C.FFIStr) {
	out := mustOut(outName, "row_set_type_info_get_udt_name")
	*out = ffiStr(ffi.Default().TypeInfoUDTName(handle.TypeHandle(typ)))
}

//export row_set_type_info_get_udt_keyspace
func row_set_type_info_get_udt_keyspace(typ C.TypeInfoHandle, outKeyspace *C.FFIStr) {
	out := mustOut(outKeyspace, "row_set_type_info_get_udt_keyspace")
	*out = ffiStr(ffi.Default().TypeInfoUDTKeyspace(handle.TypeHandle(typ)))
}

//export row_set_type_info_get_udt_field_count
func row_set_type_info_get_udt_field_count(typ C.TypeInfoHandle) C.size_t {
	return C.size_t(ffi.Default().TypeInfoUDTFieldCount(handle.TypeHandle(typ)))
}

//export row_set_type_info_get_udt_field
func row_set_type_info_get_udt_field(
	typ C.TypeInfoHandle, index C.size_t, outName *C.FFIStr, outType *C.TypeInfoHandle,
) {
	name := mustOut(outName, "row_set_type_info_get_udt_field")
	fieldType := mustOut(outType, "row_set_type_info_get_udt_field")
	n, t := ffi.Default().TypeInfoUDTField(handle.TypeHandle(typ), int(index))
	*name, *fieldType = ffiStr(n), C.TypeInfoHandle(t)
}

// logging_init returns 0 on success
//
//export logging_init
func logging_init(level *C.char) C.int32_t {
	if err := ffi.Default().LoggingInit(C.GoString(level)); err != nil {
		return -1
	}

	return 0
}

// metrics_serve exposes prometheus metrics on addr, returns 0 on success
//
//export metrics_serve
func metrics_serve(addr *C.char) C.int32_t {
	if _, err := ffi.Default().MetricsServe(C.GoString(addr)); err != nil {
		return -1
	}

	return 0
}
