package debug

import (
	"bytes"
	"fmt"
	"os"

	"github.com/neki-mods/neki-lang/encode"
	"github.com/neki-mods/neki-lang/ir"
)

// Logf writes a debug message to stderr, rendering any *ir.Node
// arguments as JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		x, ok := args[i].(*ir.Node)
		if !ok {
			continue
		}
		buf := bytes.NewBuffer(nil)
		if err := encode.Encode(x, buf); err != nil {
			args[i] = fmt.Sprintf("[raw *ir.Node] %v", x)
			continue
		}
		args[i] = buf.String()
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
