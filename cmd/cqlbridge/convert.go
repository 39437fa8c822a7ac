package main

/*
#include <stdlib.h>
#include "cqlbridge.h"
*/
import "C"

import (
	"unsafe"

	"github.com/cqlbridge/cqlbridge-go/config"
	"github.com/cqlbridge/cqlbridge-go/internal/exception"
	"github.com/cqlbridge/cqlbridge-go/internal/task"
	"github.com/cqlbridge/cqlbridge-go/internal/xsync"
)

// strings handed out through out-parameters must stay valid for as long as
// the host may keep them, they are interned in C memory for the process
// lifetime
var interned xsync.Map[string, *C.char]

func ffiStr(s string) C.FFIStr {
	if s == "" {
		return C.FFIStr{}
	}
	p, ok := interned.Get(s)
	if !ok {
		c := C.CString(s)
		var loaded bool
		if p, loaded = interned.LoadOrStore(s, c); loaded {
			C.free(unsafe.Pointer(c))
		}
	}

	return C.FFIStr{ptr: p, len: C.size_t(len(s))}
}

func goConstructors(c *C.ExceptionConstructors) *exception.Constructors {
	if c == nil {
		panic("cqlbridge: null exception constructors")
	}
	ctors := *c
	build := func(f C.ExceptionConstructor) func(string) exception.Exception {
		if f == nil {
			return nil
		}

		return func(msg string) exception.Exception {
			p := C.CString(msg)
			defer C.free(unsafe.Pointer(p))

			return exception.Exception(C.call_constructor(f, p, C.size_t(len(msg))))
		}
	}

	return &exception.Constructors{
		Internal:   build(ctors.internal_exception_constructor),
		Connection: build(ctors.connection_exception_constructor),
		Prepare:    build(ctors.prepare_exception_constructor),
		Execution:  build(ctors.execution_exception_constructor),
	}
}

func goTcb(tcb C.Tcb) task.Tcb {
	if tcb.complete_task == nil || tcb.fail_task == nil {
		panic("cqlbridge: null task completion callbacks")
	}
	complete, fail := tcb.complete_task, tcb.fail_task

	return task.Tcb{
		Token: uintptr(tcb.tcs),
		Complete: func(token uintptr, result uintptr) {
			C.call_complete_task(complete, C.uintptr_t(token), C.BridgeHandle(result))
		},
		Fail: func(token uintptr, ex exception.Exception) {
			C.call_fail_task(fail, C.uintptr_t(token), C.FfiException(ex))
		},
		Constructors: goConstructors(tcb.constructors),
	}
}

func goConfig(cfg *C.CSConfiguration) []config.Option {
	if cfg == nil {
		return nil
	}
	lb := cfg.load_balancing_policy
	policy := config.LoadBalancing{
		TokenAware: bool(lb.is_token_aware),
		DCAware:    bool(lb.is_dc_aware),
	}
	if lb.local_dc != nil {
		policy.LocalDC = C.GoString(lb.local_dc)
	}

	return []config.Option{config.WithLoadBalancing(policy)}
}
