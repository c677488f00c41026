package ai

import (
	"fmt"
	"os"
)

// debugLog appends lines to a file. The zero value discards everything.
type debugLog struct {
	path string
}

func (d debugLog) write(v string) {
	if d.path == "" {
		return
	}

	f, err := os.OpenFile(d.path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0666)
	if err != nil {
		return
	}
	defer f.Close()

	f.WriteString(v + "\n")
}

func (d debugLog) writef(format string, v ...any) {
	if d.path == "" {
		return
	}

	d.write(fmt.Sprintf(format, v...))
}
