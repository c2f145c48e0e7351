//go:build wasip1

// Command typstxl-plugin is the Typst plugin build of typstxl. It speaks the
// wasm minimal protocol: every export receives the byte lengths of its
// arguments, pulls the argument bytes from the host and hands back one
// result buffer (output on success, error message on failure).
//
// Build with:
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o typstxl.wasm ./cmd/typstxl-plugin
//
// and stub the WASI imports (wasi-stub) before loading it with plugin().
package main

import (
	"unsafe"

	"github.com/aerissecure/typstxl"
)

//go:wasmimport typst_env wasm_minimal_protocol_write_args_to_buffer
func writeArgsToBuffer(ptr unsafe.Pointer)

//go:wasmimport typst_env wasm_minimal_protocol_send_result_to_host
func sendResultToHost(ptr unsafe.Pointer, length uint32)

func main() {}

// readArgs copies the concatenated arguments from the host and splits them
// by their lengths.
func readArgs(lengths ...int32) [][]byte {
	total := 0
	for _, n := range lengths {
		total += int(n)
	}
	// one spare byte keeps &buf[0] valid when every argument is empty
	buf := make([]byte, total+1)
	writeArgsToBuffer(unsafe.Pointer(&buf[0]))

	args := make([][]byte, len(lengths))
	off := 0
	for i, n := range lengths {
		args[i] = buf[off : off+int(n)]
		off += int(n)
	}
	return args
}

// reply sends the result to the host: 0 with out on success, 1 with the
// error text on failure.
func reply(out []byte, err error) int32 {
	code := int32(0)
	if err != nil {
		out = []byte(err.Error())
		code = 1
	}
	if len(out) == 0 {
		sendResultToHost(nil, 0)
		return code
	}
	sendResultToHost(unsafe.Pointer(&out[0]), uint32(len(out)))
	return code
}

// toTypst returns the TOML table record of a worksheet.
//
//go:wasmexport to_typst
func toTypst(fileLen, sheetLen, alignLen, borderLen, bgLen, fontLen int32) int32 {
	a := readArgs(fileLen, sheetLen, alignLen, borderLen, bgLen, fontLen)
	return reply(typstxl.RecordFromArgs(a[0], a[1], a[2:]...))
}

// toTypstMarkup returns a Typst table expression as a CBOR text string.
//
//go:wasmexport to_typst_markup
func toTypstMarkup(fileLen, sheetLen, tableLen, alignLen, fontLen int32) int32 {
	a := readArgs(fileLen, sheetLen, tableLen, alignLen, fontLen)
	return reply(typstxl.MarkupFromArgs(a[0], a[1], a[2:]...))
}
