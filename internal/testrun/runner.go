package testrun

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ModuleResult is the outcome of running one test module.
type ModuleResult struct {
	Module Module
	Output string
	Err    error
}

// Result is the aggregated outcome of a test run.
type Result struct {
	Ran     int
	Results []ModuleResult
}

// Successful reports whether every module ran without failures or
// errors. There is no partial success.
func (r *Result) Successful() bool {
	for _, mr := range r.Results {
		if mr.Err != nil {
			return false
		}
	}
	return true
}

// Failures returns the results of modules that did not succeed.
func (r *Result) Failures() []ModuleResult {
	var failed []ModuleResult
	for _, mr := range r.Results {
		if mr.Err != nil {
			failed = append(failed, mr)
		}
	}
	return failed
}

// Runner executes a discovered test collection.
type Runner interface {
	Run(ctx context.Context, col *Collection) (*Result, error)
}

// ExecRunner runs each test module through the project interpreter's
// unittest entry point, with the module's import root and the project
// search path on PYTHONPATH. A textual report is written to Out as
// modules complete.
type ExecRunner struct {
	// Interpreter is the interpreter executable, e.g. "python3".
	Interpreter string
	// SearchPath is the base module search path (the four layout roots).
	SearchPath string
	// Out receives the text report.
	Out io.Writer
}

// Run executes every module in the collection sequentially. Module
// failures are recorded in the result, not returned as an error; an
// error means the runner itself could not proceed.
func (r *ExecRunner) Run(ctx context.Context, col *Collection) (*Result, error) {
	out := r.Out
	if out == nil {
		out = io.Discard
	}

	result := &Result{}
	for _, mod := range col.Modules {
		var buf bytes.Buffer
		cmd := exec.CommandContext(ctx, r.Interpreter, "-m", "unittest", "-v", mod.Name)
		cmd.Stdout = &buf
		cmd.Stderr = &buf
		cmd.Env = append(os.Environ(), "PYTHONPATH="+r.modulePath(mod))

		err := cmd.Run()
		result.Ran++
		result.Results = append(result.Results, ModuleResult{Module: mod, Output: buf.String(), Err: err})

		status := "ok"
		if err != nil {
			status = "FAIL"
		}
		fmt.Fprintf(out, "%s ... %s\n", mod.Name, status)
		if err != nil {
			fmt.Fprint(out, indent(buf.String()))
		}

		if ctx.Err() != nil {
			return result, ctx.Err()
		}
	}

	fmt.Fprintf(out, "\nRan %d test module(s), %d failure(s)\n", result.Ran, len(result.Failures()))
	return result, nil
}

// modulePath puts the module's own import root ahead of the shared
// search path so scoped namespace-package modules resolve first.
func (r *ExecRunner) modulePath(mod Module) string {
	if r.SearchPath == "" {
		return mod.ImportRoot
	}
	return mod.ImportRoot + string(os.PathListSeparator) + r.SearchPath
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "    " + line
	}
	return strings.Join(lines, "\n") + "\n"
}
