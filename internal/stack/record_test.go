package stack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type testStruct struct{}

func (s testStruct) TestFunc() string {
	return func() string { return Record(0, FileName(false)) }()
}

func (s *testStruct) TestPointerFunc() string {
	return Record(0, PackagePath(false), FileName(false))
}

func TestRecord(t *testing.T) {
	for _, tt := range []struct {
		name string
		act  string
		exp  string
	}{
		{
			name: "Depth0",
			act:  Record(0),
			exp:  "github.com/cqlbridge/cqlbridge-go/internal/stack.TestRecord(record_test.go:27)",
		},
		{
			name: "Lambda",
			act:  testStruct{}.TestFunc(),
			exp:  "github.com/cqlbridge/cqlbridge-go/internal/stack.testStruct.TestFunc.func1",
		},
		{
			name: "PointerReceiver",
			act:  (&testStruct{}).TestPointerFunc(),
			exp:  "stack.(*testStruct).TestPointerFunc",
		},
		{
			name: "WithoutLambdas",
			act:  testStruct{}.TestFunc() + "|" + Record(0, Lambda(false), FileName(false)),
			exp: "github.com/cqlbridge/cqlbridge-go/internal/stack.testStruct.TestFunc.func1|" +
				"github.com/cqlbridge/cqlbridge-go/internal/stack.TestRecord",
		},
		{
			name: "FileOnly",
			act:  Record(0, PackagePath(false), PackageName(false), FunctionName(false)),
			exp:  "record_test.go:48",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.exp, tt.act)
		})
	}
}

func TestFunctionID(t *testing.T) {
	require.Equal(t,
		"github.com/cqlbridge/cqlbridge-go/internal/stack.TestFunctionID",
		Call(0).FunctionID(),
	)
}
