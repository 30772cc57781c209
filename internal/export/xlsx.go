// Package export writes processed analyses to spreadsheet workbooks.
package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/insights-cli/internal/model"
)

// WriteXLSX writes an analysis to an XLSX workbook at path: one sheet of
// canonical records, one of summary statistics, and a clusters sheet when
// the family produced cluster metadata.
func WriteXLSX(path string, analysis *model.ProcessedAnalysis) error {
	if analysis == nil {
		return eris.New("export: nil analysis")
	}

	f := xlsx.NewFile()

	if err := addRecordsSheet(f, analysis); err != nil {
		return err
	}
	if err := addStatsSheet(f, analysis); err != nil {
		return err
	}
	if analysis.Cluster != nil {
		if err := addClustersSheet(f, analysis.Cluster); err != nil {
			return err
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "export: save workbook")
	}
	return nil
}

func addRecordsSheet(f *xlsx.File, analysis *model.ProcessedAnalysis) error {
	sheet, err := f.AddSheet("Records")
	if err != nil {
		return eris.Wrap(err, "export: add records sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{"Rank", "Area ID", "Area Name", analysis.TargetVariable, "Category", "Cluster"} {
		header.AddCell().SetString(h)
	}

	for _, r := range analysis.Records {
		row := sheet.AddRow()
		row.AddCell().SetInt(r.Rank)
		row.AddCell().SetString(r.AreaID)
		row.AddCell().SetString(r.AreaName)
		row.AddCell().SetFloat(r.Value)
		row.AddCell().SetString(r.Category)
		row.AddCell().SetString(r.ClusterName)
	}
	return nil
}

func addStatsSheet(f *xlsx.File, analysis *model.ProcessedAnalysis) error {
	sheet, err := f.AddSheet("Statistics")
	if err != nil {
		return eris.Wrap(err, "export: add statistics sheet")
	}

	s := analysis.Statistics
	addStatRow(sheet, "Endpoint", analysis.Endpoint)
	addStatRow(sheet, "Target variable", analysis.TargetVariable)
	addStatFloatRow(sheet, "Areas", float64(s.Total))
	addStatFloatRow(sheet, "Mean", s.Mean)
	addStatFloatRow(sheet, "Median", s.Median)
	addStatFloatRow(sheet, "Min", s.Min)
	addStatFloatRow(sheet, "Max", s.Max)
	addStatFloatRow(sheet, "Std dev", s.StdDev)
	addStatFloatRow(sheet, "P25", s.Percentile25)
	addStatFloatRow(sheet, "P75", s.Percentile75)
	addStatFloatRow(sheet, "IQR", s.IQR)
	addStatFloatRow(sheet, "Outliers", float64(s.OutlierCount))
	if s.RiskLevel != "" {
		addStatRow(sheet, "Risk level", s.RiskLevel)
	}
	return nil
}

func addClustersSheet(f *xlsx.File, meta *model.ClusterMetadata) error {
	sheet, err := f.AddSheet("Clusters")
	if err != nil {
		return eris.Wrap(err, "export: add clusters sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{"ID", "Name", "Size", "Mean Value"} {
		header.AddCell().SetString(h)
	}
	for _, c := range meta.Clusters {
		row := sheet.AddRow()
		row.AddCell().SetInt(c.ID)
		row.AddCell().SetString(c.Name)
		row.AddCell().SetInt(c.Size)
		row.AddCell().SetFloat(c.MeanValue)
	}
	return nil
}

func addStatRow(sheet *xlsx.Sheet, label, value string) {
	row := sheet.AddRow()
	row.AddCell().SetString(label)
	row.AddCell().SetString(value)
}

func addStatFloatRow(sheet *xlsx.Sheet, label string, value float64) {
	row := sheet.AddRow()
	row.AddCell().SetString(label)
	row.AddCell().SetFloat(value)
}
