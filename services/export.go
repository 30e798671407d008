package services

import (
	"io"

	"github.com/tealeg/xlsx"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// writeSheet renders a single-sheet workbook with a header row.
func writeSheet(w io.Writer, name string, headers []string, rows [][]any) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(name)
	if err != nil {
		return err
	}

	header := sheet.AddRow()
	for _, h := range headers {
		header.AddCell().SetValue(h)
	}
	for _, r := range rows {
		row := sheet.AddRow()
		for _, v := range r {
			row.AddCell().SetValue(v)
		}
	}
	return file.Write(w)
}
