package stacktrace

import "strings"

// InternalPaths extracts the file:line frames under /internal/ from a raw
// goroutine stack. The result is compact enough to attach to a log record
// without dumping the whole trace.
func InternalPaths(stack []byte) []string {
	lines := strings.Split(string(stack), "\n")

	paths := make([]string, 0, 8)
	for _, line := range lines {
		line = strings.TrimSpace(line)

		start := strings.Index(line, "/internal/")
		if start == -1 {
			continue
		}

		mark := strings.Index(line, ".go:")
		if mark == -1 {
			continue
		}

		end := strings.IndexByte(line[mark:], ' ')
		if end == -1 {
			end = len(line)
		} else {
			end += mark
		}

		paths = append(paths, line[start+1:end])
	}

	return paths
}
