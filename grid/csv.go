package grid

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/midbel/formulae/layout"
	"github.com/midbel/formulae/value"
)

// OpenCSV loads file as a workbook holding a single sheet. Both are named
// after the file without its extension.
func OpenCSV(file string, comma rune) (*Store, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	return LoadCSV(r, name, comma)
}

// LoadCSV reads delimited records into a sheet. Fields that look like a
// number, a boolean or an error code are converted, empty fields are left
// blank and anything else is kept as text.
func LoadCSV(r io.Reader, name string, comma rune) (*Store, error) {
	var (
		rs   = csv.NewReader(r)
		book = NewWorkbook(name)
	)
	if comma != 0 {
		rs.Comma = comma
	}
	rs.FieldsPerRecord = -1

	sh, err := book.AddSheet(name)
	if err != nil {
		return nil, err
	}
	for line := int64(1); ; line++ {
		fields, err := rs.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: %s", ErrDocument, err)
		}
		for col, f := range fields {
			if f == "" {
				continue
			}
			pos := layout.Position{
				Line:   line,
				Column: int64(col) + 1,
			}
			if err := sh.SetValue(pos, inferValue(f)); err != nil {
				return nil, err
			}
		}
	}
	store := NewStore()
	return store, store.Add(book)
}

func inferValue(str string) value.ScalarValue {
	if e, ok := value.ParseError(str); ok {
		return e
	}
	switch strings.ToUpper(str) {
	case "TRUE":
		return value.Boolean(true)
	case "FALSE":
		return value.Boolean(false)
	}
	if value.IsRealNumber(str) {
		n, _ := strconv.ParseFloat(strings.TrimSpace(str), 64)
		return value.Float(n)
	}
	return value.Text(str)
}
