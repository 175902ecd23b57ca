package testrun

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult_Successful(t *testing.T) {
	ok := &Result{Ran: 2, Results: []ModuleResult{
		{Module: Module{Name: "a_test"}},
		{Module: Module{Name: "b_test"}},
	}}
	assert.True(t, ok.Successful())
	assert.Empty(t, ok.Failures())

	failed := &Result{Ran: 2, Results: []ModuleResult{
		{Module: Module{Name: "a_test"}},
		{Module: Module{Name: "b_test"}, Err: errors.New("exit status 1")},
	}}
	assert.False(t, failed.Successful(), "any failed module fails the whole run")
	assert.Len(t, failed.Failures(), 1)
	assert.Equal(t, "b_test", failed.Failures()[0].Module.Name)
}

func TestExecRunner_ModulePath(t *testing.T) {
	sep := string(os.PathListSeparator)
	mod := Module{Name: "inner_test", ImportRoot: "/proj/src/test/python/nspkg"}

	r := &ExecRunner{SearchPath: "/proj/src/main/python"}
	assert.Equal(t, "/proj/src/test/python/nspkg"+sep+"/proj/src/main/python", r.modulePath(mod),
		"module import root comes first")

	bare := &ExecRunner{}
	assert.Equal(t, "/proj/src/test/python/nspkg", bare.modulePath(mod))
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "    a\n    b\n", indent("a\nb\n"))
}
