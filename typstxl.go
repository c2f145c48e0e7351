package typstxl

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/fxamacker/cbor/v2"
	"github.com/sirupsen/logrus"

	"github.com/aerissecure/typstxl/xlsx"
)

// Sentinel errors of the call boundary. Errors of the conversion itself are
// the ones declared in package xlsx.
var (
	ErrInputDecoding = errors.New("failed to decode input")
	ErrSerialization = errors.New("failed to serialize output")
)

// Options is the validated configuration of one conversion call.
type Options struct {
	SheetIndex      int
	Alignment       bool
	Border          bool // record mode only
	BackgroundColor bool // record mode only
	FontStyle       bool
	TableStyle      bool // markup mode only: explicit track sizes

	// Logger receives debug entries; nil discards them.
	Logger logrus.FieldLogger
}

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	return discardLogger
}

// Argument names in call order, used in decoding errors.
var (
	recordToggles = []string{"parse_alignment", "parse_border", "parse_bg_color", "parse_font_style"}
	markupToggles = []string{"parse_table_style", "parse_alignment", "parse_font_style"}
)

// DecodeRecordArgs decodes the sheet index and the four record-mode toggles
// (alignment, border, background colour, font style), each an ASCII buffer.
func DecodeRecordArgs(sheetIndex []byte, toggles ...[]byte) (Options, error) {
	opts, flags, err := decodeArgs(sheetIndex, toggles, recordToggles)
	if err != nil {
		return Options{}, err
	}
	opts.Alignment, opts.Border, opts.BackgroundColor, opts.FontStyle = flags[0], flags[1], flags[2], flags[3]
	return opts, nil
}

// DecodeMarkupArgs decodes the sheet index and the three markup-mode toggles
// (table style, alignment, font style).
func DecodeMarkupArgs(sheetIndex []byte, toggles ...[]byte) (Options, error) {
	opts, flags, err := decodeArgs(sheetIndex, toggles, markupToggles)
	if err != nil {
		return Options{}, err
	}
	opts.TableStyle, opts.Alignment, opts.FontStyle = flags[0], flags[1], flags[2]
	return opts, nil
}

func decodeArgs(sheetIndex []byte, toggles [][]byte, names []string) (Options, []bool, error) {
	if len(toggles) != len(names) {
		return Options{}, nil, fmt.Errorf("%w: expected %d flags (%s), got %d",
			ErrInputDecoding, len(names), strings.Join(names, ", "), len(toggles))
	}
	idx, err := decodeText("sheet_index", sheetIndex)
	if err != nil {
		return Options{}, nil, err
	}
	n, err := strconv.Atoi(idx)
	if err != nil || n < 0 {
		return Options{}, nil, fmt.Errorf("%w: sheet_index %q is not a non-negative integer", ErrInputDecoding, idx)
	}

	flags := make([]bool, len(names))
	for i, name := range names {
		s, err := decodeText(name, toggles[i])
		if err != nil {
			return Options{}, nil, err
		}
		switch s {
		case "true":
			flags[i] = true
		case "false":
		default:
			return Options{}, nil, fmt.Errorf("%w: %s %q is neither \"true\" nor \"false\"", ErrInputDecoding, name, s)
		}
	}
	return Options{SheetIndex: n}, flags, nil
}

func decodeText(name string, b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8", ErrInputDecoding, name)
	}
	return strings.TrimSpace(string(b)), nil
}

// ReadWorksheet reads the worksheet opts selects from workbook bytes.
func ReadWorksheet(data []byte, opts Options) (*xlsx.Worksheet, error) {
	ws, err := xlsx.ReadWorksheet(bytes.NewReader(data), int64(len(data)), opts.SheetIndex)
	if err != nil {
		return nil, err
	}
	opts.logger().WithFields(logrus.Fields{
		"sheet":  ws.Name,
		"index":  opts.SheetIndex,
		"cells":  len(ws.Cells),
		"merges": len(ws.MergeRanges),
	}).Debug("worksheet loaded")
	return ws, nil
}

// ToRecord converts one worksheet to a TableRecord encoded as TOML.
func ToRecord(data []byte, opts Options) ([]byte, error) {
	ws, err := ReadWorksheet(data, opts)
	if err != nil {
		return nil, err
	}
	return EncodeRecord(ws, opts)
}

// EncodeRecord builds the record of ws and encodes it as TOML.
func EncodeRecord(ws *xlsx.Worksheet, opts Options) ([]byte, error) {
	rec, err := xlsx.BuildRecord(ws, xlsx.RecordOptions{
		Alignment:       opts.Alignment,
		Border:          opts.Border,
		BackgroundColor: opts.BackgroundColor,
		FontStyle:       opts.FontStyle,
	})
	if err != nil {
		return nil, err
	}
	opts.logger().WithFields(logrus.Fields{
		"max_columns": rec.Dimensions.MaxColumns,
		"max_rows":    rec.Dimensions.MaxRows,
		"rows":        len(rec.Rows),
	}).Debug("table record built")

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return buf.Bytes(), nil
}

// ToMarkup converts one worksheet to a Typst table expression wrapped as a
// CBOR text string.
func ToMarkup(data []byte, opts Options) ([]byte, error) {
	ws, err := ReadWorksheet(data, opts)
	if err != nil {
		return nil, err
	}
	return EncodeMarkup(ws, opts)
}

// EncodeMarkup renders ws as Typst markup and wraps it as a CBOR text string.
func EncodeMarkup(ws *xlsx.Worksheet, opts Options) ([]byte, error) {
	markup, err := xlsx.BuildMarkup(ws, xlsx.MarkupOptions{
		TableStyle: opts.TableStyle,
		Alignment:  opts.Alignment,
		FontStyle:  opts.FontStyle,
	})
	if err != nil {
		return nil, err
	}
	opts.logger().WithField("bytes", len(markup)).Debug("typst markup built")

	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	out, err := em.Marshal(markup)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return out, nil
}

// RecordFromArgs is the byte-only record entry point: workbook bytes, sheet
// index, then the four record toggles.
func RecordFromArgs(data, sheetIndex []byte, toggles ...[]byte) ([]byte, error) {
	opts, err := DecodeRecordArgs(sheetIndex, toggles...)
	if err != nil {
		return nil, err
	}
	return ToRecord(data, opts)
}

// MarkupFromArgs is the byte-only markup entry point: workbook bytes, sheet
// index, then the three markup toggles.
func MarkupFromArgs(data, sheetIndex []byte, toggles ...[]byte) ([]byte, error) {
	opts, err := DecodeMarkupArgs(sheetIndex, toggles...)
	if err != nil {
		return nil, err
	}
	return ToMarkup(data, opts)
}

// DecodeMarkup unwraps the CBOR text string produced by ToMarkup.
func DecodeMarkup(b []byte) (string, error) {
	var s string
	if err := cbor.Unmarshal(b, &s); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInputDecoding, err)
	}
	return s, nil
}
