package oxml

import (
	"encoding/xml"
)

const wbBaseDir = "xl"

const (
	typeSheetUrl  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet"
	typeDocUrl    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	typeSharedUrl = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/sharedStrings"
	typeStylesUrl = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
)

type xmlWorkbook struct {
	XMLName xml.Name         `xml:"workbook"`
	Pr      xmlWorkbookPr    `xml:"workbookPr"`
	View    xmlWorkbookView  `xml:"bookViews>workbookView"`
	Sheets  []xmlSheet       `xml:"sheets>sheet"`
	Names   []xmlDefinedName `xml:"definedNames>definedName"`
}

type xmlWorkbookPr struct {
	Date1904 bool `xml:"date1904,attr"`
}

type xmlWorkbookView struct {
	ActiveTab int `xml:"activeTab,attr"`
}

type xmlSheet struct {
	XMLName xml.Name   `xml:"sheet"`
	Id      string     `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	Name    string     `xml:"name,attr"`
	Index   int        `xml:"sheetId,attr"`
	State   SheetState `xml:"state,attr"`
}

type xmlDefinedName struct {
	Name   string `xml:"name,attr"`
	Hidden bool   `xml:"hidden,attr"`
	Local  *int   `xml:"localSheetId,attr"`
	Expr   string `xml:",chardata"`
}

type xmlRelations struct {
	XMLName   xml.Name      `xml:"Relationships"`
	Relations []xmlRelation `xml:"Relationship"`
}

type xmlRelation struct {
	XMLName xml.Name `xml:"Relationship"`
	Target  string   `xml:",attr"`
	Id      string   `xml:",attr"`
	Type    string   `xml:",attr"`
}

type xmlSharedStrings struct {
	XMLName xml.Name          `xml:"sst"`
	Values  []xmlSharedString `xml:"si"`
}

// xmlSharedString is either a plain text or a list of formatted runs whose
// texts are concatenated.
type xmlSharedString struct {
	Text string   `xml:"t"`
	Runs []string `xml:"r>t"`
}

func (s xmlSharedString) String() string {
	if len(s.Runs) == 0 {
		return s.Text
	}
	var str string
	for _, r := range s.Runs {
		str += r
	}
	return str
}

type xmlStyles struct {
	XMLName xml.Name    `xml:"styleSheet"`
	NumFmts []xmlNumFmt `xml:"numFmts>numFmt"`
	CellXfs []xmlCellXf `xml:"cellXfs>xf"`
}

type xmlNumFmt struct {
	Id   int    `xml:"numFmtId,attr"`
	Code string `xml:"formatCode,attr"`
}

type xmlCellXf struct {
	NumFmtId int `xml:"numFmtId,attr"`
}
