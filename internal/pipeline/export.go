package pipeline

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"fieldfab/internal"
)

var exportHeaders = []string{"#", "Qty", "Size", "Product Name", "Description", "Type", "Options"}

var disclaimerLines = []string{
	"IMPORTANT NOTES:",
	"Please have a licensed fire protection engineer review all specifications before fabrication or installation.",
	"Verify product specs, sizes, quantities, and code compliance (NFPA, local AHJ) with manufacturers before ordering.",
	"This tool is provided as-is to help with planning. User assumes all responsibility for verifying information.",
}

// ExportMeta carries the title-block values for an exported material list.
type ExportMeta struct {
	ProjectName string
	CompanyName string
}

func materialRow(idx int, item internal.MaterialItem) []string {
	size := item.Size
	if len(item.Sizes) > 0 {
		size = strings.Join(item.Sizes, ", ")
	}
	if size == "" {
		size = "-"
	}
	return []string{
		strconv.Itoa(idx + 1),
		strconv.Itoa(item.Qty),
		size,
		item.Part,
		item.Description,
		string(item.Type),
		strings.Join(item.Options, ", "),
	}
}

func titleBlock(meta ExportMeta) [][]string {
	project := meta.ProjectName
	if project == "" {
		project = "Untitled Project"
	}
	company := meta.CompanyName
	if company == "" {
		company = "N/A"
	}
	return [][]string{
		{"LOOSE MATERIAL LIST"},
		{},
		{"Project: " + project},
		{"Company: " + company},
		{"Date: " + time.Now().Format("2006-01-02")},
		{},
		exportHeaders,
	}
}

// ExportMaterialsToXLSX writes the material list as a spreadsheet with a
// title block, one row per item and the standard disclaimer footer.
func ExportMaterialsToXLSX(items []internal.MaterialItem, meta ExportMeta, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	r := 1
	writeRow := func(values []string) {
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, r)
			_ = f.SetCellValue(sheet, cell, v)
		}
		r++
	}

	for _, row := range titleBlock(meta) {
		writeRow(row)
	}
	for i, item := range items {
		writeRow(materialRow(i, item))
	}
	writeRow(nil)
	for _, line := range disclaimerLines {
		writeRow([]string{line})
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

// ExportMaterialsToCSV writes the same layout as the XLSX export.
func ExportMaterialsToCSV(items []internal.MaterialItem, meta ExportMeta, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	pad := func(row []string) []string {
		for len(row) < len(exportHeaders) {
			row = append(row, "")
		}
		return row
	}

	for _, row := range titleBlock(meta) {
		if err := w.Write(pad(row)); err != nil {
			return err
		}
	}
	for i, item := range items {
		if err := w.Write(materialRow(i, item)); err != nil {
			return err
		}
	}
	if err := w.Write(pad(nil)); err != nil {
		return err
	}
	for _, line := range disclaimerLines {
		if err := w.Write(pad([]string{line})); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
