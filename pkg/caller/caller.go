package caller

import (
	"runtime"
	"strings"
)

// Name returns the short name of the function that called Name, suitable
// for span names. Closures report their enclosing function and methods are
// reported as "Type.Method".
//
// skip moves further up the stack: Name(1) reports the caller's caller.
func Name(skip ...int) string {
	depth := 1
	if len(skip) > 0 {
		depth += skip[0]
	}

	pcs := make([]uintptr, 1)
	if runtime.Callers(depth+1, pcs) == 0 {
		return ""
	}
	frame, _ := runtime.CallersFrames(pcs).Next()

	return shorten(frame.Function)
}

// shorten turns "github.com/x/y/pkg.(*T[...]).Method.func1" into "T.Method".
func shorten(full string) string {
	full = strings.ReplaceAll(full, "[...]", "")
	if i := strings.LastIndex(full, "/"); i >= 0 {
		full = full[i+1:]
	}

	parts := strings.Split(full, ".")
	if len(parts) < 2 {
		return full
	}
	// drop the package
	parts = parts[1:]

	// drop closure suffixes: func1, func1.2, Map[...].func3
	for len(parts) > 1 && isClosure(parts[len(parts)-1]) {
		parts = parts[:len(parts)-1]
	}

	for i, p := range parts {
		parts[i] = strings.Trim(p, "(*)")
	}

	return strings.Join(parts, ".")
}

func isClosure(part string) bool {
	if strings.HasPrefix(part, "func") {
		return true
	}
	for _, r := range part {
		if r < '0' || r > '9' {
			return false
		}
	}
	return part != ""
}
