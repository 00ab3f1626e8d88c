package oxml

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"slices"
	"strconv"
	"strings"

	sax "github.com/midbel/codecs/xml"

	"github.com/midbel/formulae/layout"
	"github.com/midbel/formulae/value"
)

type reader struct {
	archive *zip.Reader
	closer  io.Closer
	base    string

	err error
}

func readFile(name string) (*reader, error) {
	z, err := zip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFile, err)
	}
	r := readArchive(&z.Reader)
	r.closer = z
	return r, nil
}

func readArchive(z *zip.Reader) *reader {
	return &reader{
		archive: z,
		base:    wbBaseDir,
	}
}

func (r *reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

func (r *reader) ReadFile(file *File) (*File, error) {
	r.readWorkbook(file)
	r.readSharedStrings(file)
	r.readStyles(file)
	r.readWorksheets(file)
	if r.err != nil {
		return nil, r.err
	}
	return file, nil
}

func (r *reader) readSharedStrings(file *File) {
	if r.invalid() {
		return
	}
	target := r.findRelation(typeSharedUrl)
	if target == "" {
		return
	}
	var root xmlSharedStrings
	if err := r.decodeXML(r.fromBase(target), &root); err != nil {
		return
	}
	for _, s := range root.Values {
		file.sharedStrings = append(file.sharedStrings, s.String())
	}
}

// readStyles marks the cell formats displaying numbers as dates.
func (r *reader) readStyles(file *File) {
	if r.invalid() {
		return
	}
	target := r.findRelation(typeStylesUrl)
	if target == "" {
		return
	}
	var root xmlStyles
	if err := r.decodeXML(r.fromBase(target), &root); err != nil {
		return
	}
	codes := make(map[int]string)
	for _, f := range root.NumFmts {
		codes[f.Id] = f.Code
	}
	for _, xf := range root.CellXfs {
		file.dateStyles = append(file.dateStyles, isDateFormat(xf.NumFmtId, codes))
	}
}

func (r *reader) readWorkbook(file *File) {
	addr := r.readWorkbookLocation()
	if r.invalid() {
		return
	}
	r.base = path.Dir(addr)

	var root xmlWorkbook
	if err := r.decodeXML(addr, &root); err != nil {
		return
	}
	file.Date1904 = root.Pr.Date1904
	for i, xs := range root.Sheets {
		s := NewSheet(xs.Name)
		s.Id = xs.Id
		s.Index = xs.Index
		s.Active = i == root.View.ActiveTab
		if xs.State != 0 {
			s.State = xs.State
		}
		file.sheets = append(file.sheets, s)
	}
	for _, n := range root.Names {
		if n.Hidden {
			continue
		}
		expr := "=" + strings.TrimPrefix(n.Expr, "=")
		if n.Local == nil {
			file.names[n.Name] = expr
			continue
		}
		if ix := *n.Local; ix >= 0 && ix < len(file.sheets) {
			file.sheets[ix].names[n.Name] = expr
		}
	}
}

func (r *reader) readWorksheets(file *File) {
	if r.invalid() {
		return
	}
	relations := r.readRelationsForWorkbook()
	for _, s := range file.sheets {
		ix := slices.IndexFunc(relations, func(r xmlRelation) bool {
			return r.Id == s.Id && r.Type == typeSheetUrl
		})
		if ix < 0 {
			r.err = fmt.Errorf("%w: no worksheet for sheet %s", ErrFile, s.Label)
			return
		}
		r.readWorksheet(file, s, relations[ix].Target)
		if r.invalid() {
			break
		}
	}
}

func (r *reader) readWorksheet(file *File, sheet *Sheet, addr string) {
	if r.invalid() {
		return
	}
	z, err := r.openFile(r.fromBase(addr))
	if err != nil {
		r.err = err
		return
	}
	defer z.Close()

	rs := updateSheet(z, sheet, file)
	if err := rs.Update(); err != nil {
		r.err = fmt.Errorf("%w: %s: %s", ErrFile, sheet.Label, err)
	}
}

func (r *reader) readWorkbookLocation() string {
	if r.invalid() {
		return ""
	}
	var root xmlRelations
	if err := r.decodeXML("_rels/.rels", &root); err != nil {
		return ""
	}
	ix := slices.IndexFunc(root.Relations, func(r xmlRelation) bool {
		return r.Type == typeDocUrl
	})
	if ix < 0 {
		r.err = fmt.Errorf("%w: workbook not found", ErrFile)
		return ""
	}
	return strings.TrimPrefix(root.Relations[ix].Target, "/")
}

func (r *reader) readRelationsForWorkbook() []xmlRelation {
	if r.invalid() {
		return nil
	}
	var root xmlRelations
	if err := r.decodeXML(r.fromBase("_rels/workbook.xml.rels"), &root); err != nil {
		return nil
	}
	return root.Relations
}

func (r *reader) findRelation(kind string) string {
	relations := r.readRelationsForWorkbook()
	ix := slices.IndexFunc(relations, func(r xmlRelation) bool {
		return r.Type == kind
	})
	if ix < 0 {
		return ""
	}
	return relations[ix].Target
}

func (r *reader) decodeXML(name string, ptr any) error {
	if r.invalid() {
		return r.err
	}
	rs, err := r.openFile(name)
	if err != nil {
		r.err = err
		return r.err
	}
	defer rs.Close()
	if err := xml.NewDecoder(rs).Decode(ptr); err != nil {
		r.err = fmt.Errorf("%w: fail to read data from %s", ErrFile, name)
	}
	return r.err
}

func (r *reader) openFile(name string) (io.ReadCloser, error) {
	ix := slices.IndexFunc(r.archive.File, func(f *zip.File) bool {
		return f.Name == name
	})
	if ix < 0 {
		return nil, fmt.Errorf("%w: %s missing", ErrFile, name)
	}
	return r.archive.File[ix].Open()
}

// fromBase resolves a target of the workbook relations. Absolute targets
// are relative to the root of the archive.
func (r *reader) fromBase(name string) string {
	if strings.HasPrefix(name, "/") {
		return strings.TrimPrefix(name, "/")
	}
	return path.Join(r.base, name)
}

func (r *reader) invalid() bool {
	return r.err != nil
}

type sheetReader struct {
	reader *sax.Reader
	sheet  *Sheet
	file   *File
}

func updateSheet(r io.Reader, sheet *Sheet, file *File) *sheetReader {
	rs := sheetReader{
		reader: sax.NewReader(r),
		sheet:  sheet,
		file:   file,
	}
	return &rs
}

func (r *sheetReader) Update() error {
	r.reader.Element(sax.LocalName("dimension"), r.onDimension)
	r.reader.Element(sax.LocalName("c"), r.onCell)
	r.reader.Element(sax.LocalName("mergeCell"), r.onMerge)
	return r.reader.Start()
}

func (r *sheetReader) onCell(rs *sax.Reader, el sax.E) error {
	var (
		kind  = el.GetAttributeValue("t")
		addr  = el.GetAttributeValue("r")
		style = el.GetAttributeValue("s")
	)
	pos, err := layout.ParsePosition(addr)
	if err != nil {
		return err
	}
	if kind == TypeInlineStr {
		rs.Element(sax.LocalName("t"), func(rs *sax.Reader, _ sax.E) error {
			rs.OnText(func(_ *sax.Reader, str string) error {
				r.sheet.setValue(pos, value.Text(str))
				return nil
			})
			return nil
		})
		return nil
	}
	rs.Element(sax.LocalName("v"), func(rs *sax.Reader, _ sax.E) error {
		rs.OnText(func(_ *sax.Reader, str string) error {
			val, err := decodeCell(kind, str, r.file.sharedStrings)
			if err != nil {
				return fmt.Errorf("%s: %w", addr, err)
			}
			r.sheet.setValue(pos, r.file.dateValue(style, val))
			return nil
		})
		return nil
	})
	rs.Element(sax.LocalName("f"), func(rs *sax.Reader, el sax.E) error {
		if el.SelfClosed {
			return nil
		}
		rs.OnText(func(_ *sax.Reader, str string) error {
			if str != "" {
				r.sheet.formulas[pos] = str
			}
			return nil
		})
		return nil
	})
	return nil
}

func (r *sheetReader) onMerge(rs *sax.Reader, el sax.E) error {
	rg, err := layout.ParseRange(el.GetAttributeValue("ref"))
	if err != nil {
		return err
	}
	r.sheet.merge(rg)
	return nil
}

func (r *sheetReader) onDimension(rs *sax.Reader, el sax.E) error {
	dim, err := parseDimension(el.GetAttributeValue("ref"))
	if err == nil {
		r.sheet.Size = r.sheet.Size.Max(dim)
	}
	return nil
}

// parseDimension gives the size of the range declared by the dimension of a
// worksheet, counted from A1.
func parseDimension(ref string) (layout.Dimension, error) {
	rg, err := layout.ParseRange(ref)
	if err != nil {
		return layout.Dimension{}, err
	}
	if rg.Open() {
		return layout.Dimension{}, fmt.Errorf("%w: %s", layout.ErrAddress, ref)
	}
	dim := layout.Dimension{
		Lines:   rg.Ends.Line,
		Columns: rg.Ends.Column,
	}
	return dim, nil
}

// decodeCell converts the raw content of a cell according to its type.
func decodeCell(kind, str string, sharedStrings []string) (value.ScalarValue, error) {
	switch kind {
	case TypeSharedStr:
		n, err := strconv.Atoi(str)
		if err != nil {
			return nil, fmt.Errorf("invalid shared string index: %s", str)
		}
		if n < 0 || n >= len(sharedStrings) {
			return nil, fmt.Errorf("shared string index out of bounds")
		}
		return value.Text(sharedStrings[n]), nil
	case TypeInlineStr, TypeFormula:
		return value.Text(str), nil
	case TypeBool:
		b, err := strconv.ParseBool(str)
		if err != nil {
			return nil, err
		}
		return value.Boolean(b), nil
	case TypeError:
		e, ok := value.ParseError(str)
		if !ok {
			return value.ErrValue, nil
		}
		return e, nil
	case TypeDate:
		when, err := ParseDate(str)
		if err != nil {
			return nil, err
		}
		return value.Date(when), nil
	default:
		n, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			return value.Text(str), nil
		}
		return value.Float(n), nil
	}
}

// isDateFormat reports whether a number format displays dates. Formats 14
// to 22 and 45 to 47 are the builtin date and time formats.
func isDateFormat(id int, codes map[int]string) bool {
	if (id >= 14 && id <= 22) || (id >= 45 && id <= 47) {
		return true
	}
	code, ok := codes[id]
	return ok && isDateCode(code)
}

// isDateCode looks for date or time codes outside of the literal text,
// the escaped characters and the bracketed sections of a format.
func isDateCode(code string) bool {
	for i := 0; i < len(code); i++ {
		switch c := code[i]; c {
		case '"':
			j := strings.IndexByte(code[i+1:], '"')
			if j < 0 {
				return false
			}
			i += j + 1
		case '[':
			j := strings.IndexByte(code[i+1:], ']')
			if j < 0 {
				return false
			}
			i += j + 1
		case '\\':
			i++
		default:
			if strings.IndexByte("ymdhsYMDHS", c) >= 0 {
				return true
			}
		}
	}
	return false
}
