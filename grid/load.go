package grid

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/midbel/formulae/layout"
	"github.com/midbel/formulae/value"
)

var ErrDocument = errors.New("invalid workbook document")

type document struct {
	Workbooks []workbookSpec `yaml:"workbooks"`
}

type workbookSpec struct {
	Name   string            `yaml:"name"`
	Active string            `yaml:"active"`
	Names  map[string]string `yaml:"names"`
	Sheets []sheetSpec       `yaml:"sheets"`
}

type sheetSpec struct {
	Name   string               `yaml:"name"`
	Names  map[string]string    `yaml:"names"`
	Merges []string             `yaml:"merges"`
	Cells  map[string]yaml.Node `yaml:"cells"`
}

// Open loads the workbooks described in the YAML document stored in file.
func Open(file string) (*Store, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return Load(r)
}

// Load reads a YAML document describing workbooks:
//
//	workbooks:
//	  - name: Book
//	    active: Sheet1
//	    names:
//	      rate: =0.5
//	    sheets:
//	      - name: Sheet1
//	        names:
//	          total: =SUM(A1:A3)
//	        merges: [D1:E1]
//	        cells:
//	          A1: 1
//	          B1: foo
//	          C1: "#DIV/0!"
func Load(r io.Reader) (*Store, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrDocument)
		}
		return nil, fmt.Errorf("%w: %s", ErrDocument, err)
	}
	if len(doc.Workbooks) == 0 {
		return nil, fmt.Errorf("%w: no workbooks", ErrDocument)
	}
	store := NewStore()
	for _, spec := range doc.Workbooks {
		book, err := loadWorkbook(spec)
		if err != nil {
			return nil, err
		}
		if err := store.Add(book); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func loadWorkbook(spec workbookSpec) (*Workbook, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("%w: workbook without name", ErrDocument)
	}
	book := NewWorkbook(spec.Name)
	book.Active = spec.Active
	for n, f := range spec.Names {
		book.Names[n] = f
	}
	for _, sh := range spec.Sheets {
		if err := loadSheet(book, sh); err != nil {
			return nil, fmt.Errorf("%s: %w", spec.Name, err)
		}
	}
	if _, err := book.ActiveSheet(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDocument, err)
	}
	return book, nil
}

func loadSheet(book *Workbook, spec sheetSpec) error {
	if spec.Name == "" {
		return fmt.Errorf("%w: sheet without name", ErrDocument)
	}
	sh, err := book.AddSheet(spec.Name)
	if err != nil {
		return err
	}
	maps.Copy(sh.Names, spec.Names)
	for addr, node := range spec.Cells {
		pos, err := layout.ParsePosition(addr)
		if err != nil {
			return fmt.Errorf("%s: %w", spec.Name, err)
		}
		val, err := decodeValue(&node)
		if err != nil {
			return fmt.Errorf("%s!%s: %w", spec.Name, addr, err)
		}
		if err := sh.SetValue(pos, val); err != nil {
			return err
		}
	}
	for _, str := range spec.Merges {
		rg, err := layout.ParseRange(str)
		if err != nil {
			return fmt.Errorf("%s: %w", spec.Name, err)
		}
		if err := sh.Merge(rg); err != nil {
			return fmt.Errorf("%s: %w", spec.Name, err)
		}
	}
	return nil
}

// decodeValue converts a YAML scalar into a cell value. Strings written as
// an error code (#N/A, #REF!...) become errors.
func decodeValue(node *yaml.Node) (value.ScalarValue, error) {
	if node.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("%w: scalar expected at line %d", ErrDocument, node.Line)
	}
	switch node.ShortTag() {
	case "!!null":
		return value.Blank{}, nil
	case "!!int", "!!float":
		n, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			var i int64
			if err := node.Decode(&i); err != nil {
				return nil, fmt.Errorf("%w: invalid number %s", ErrDocument, node.Value)
			}
			n = float64(i)
		}
		return value.Float(n), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, fmt.Errorf("%w: invalid boolean %s", ErrDocument, node.Value)
		}
		return value.Boolean(b), nil
	case "!!str":
		if e, ok := value.ParseError(node.Value); ok {
			return e, nil
		}
		return value.Text(node.Value), nil
	default:
		return nil, fmt.Errorf("%w: unsupported tag %s", ErrDocument, node.Tag)
	}
}
