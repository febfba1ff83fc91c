package summary

import (
	"encoding/csv"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Format is an export format of the summary table.
type Format string

const (
	FormatCSV Format = "csv"
	FormatRDF Format = "rdf"
	FormatTSV Format = "tsv"
)

// CSVHeader is written verbatim as the first line of the CSV export.
const CSVHeader = "material, class, tcValue, applied pressure"

const rdfNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

// ParseFormat resolves a format name, case insensitively.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatCSV, FormatRDF, FormatTSV:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q", name)
	}
}

// ContentType is the media type of the exported document.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatRDF:
		return "application/xml"
	default:
		return "text/tab-separated-values"
	}
}

// FileName is the name offered when the export is downloaded.
func (f Format) FileName() string {
	switch f {
	case FormatCSV:
		return "export.csv"
	case FormatRDF:
		return "exportRDF.xml"
	default:
		return "export.tsv"
	}
}

// ExportOptions holds the URIs used by the RDF export.
type ExportOptions struct {
	BaseURI   string
	Namespace string
}

// Export writes rows in the given format.
func Export(w io.Writer, f Format, rows []Row, opts ExportOptions) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, rows)
	case FormatRDF:
		return WriteRDF(w, rows, opts)
	case FormatTSV:
		return WriteTSV(w, rows)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

// WriteCSV writes material, class, Tc value and pressure of every row.
func WriteCSV(w io.Writer, rows []Row) error {
	if _, err := io.WriteString(w, CSVHeader+"\n"); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	cw := csv.NewWriter(w)
	for i, r := range rows {
		if err := cw.Write([]string{r.Material, r.Class, r.TcValue, r.Pressure}); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTSV writes the clipboard form of the table: material, class, shape, Tc value and
// pressure, without header.
func WriteTSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	for i, r := range rows {
		if err := cw.Write([]string{r.Material, r.Class, r.Shape, r.TcValue, r.Pressure}); err != nil {
			return fmt.Errorf("writing TSV row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

type rdfDocument struct {
	XMLName      xml.Name         `xml:"rdf:RDF"`
	RDFNamespace string           `xml:"xmlns:rdf,attr"`
	Namespace    string           `xml:"xmlns:supercon,attr"`
	Descriptions []rdfDescription `xml:"rdf:Description"`
}

type rdfDescription struct {
	About    string `xml:"rdf:about,attr"`
	Material string `xml:"supercon:material"`
	Class    string `xml:"supercon:class"`
	TcValue  string `xml:"supercon:tcValue"`
	Pressure string `xml:"supercon:pressure"`
}

// WriteRDF writes one rdf:Description per row, identified by the row key.
func WriteRDF(w io.Writer, rows []Row, opts ExportOptions) error {
	doc := rdfDocument{
		RDFNamespace: rdfNamespace,
		Namespace:    opts.Namespace,
		Descriptions: make([]rdfDescription, 0, len(rows)),
	}
	for _, r := range rows {
		doc.Descriptions = append(doc.Descriptions, rdfDescription{
			About:    opts.BaseURI + r.Key,
			Material: r.Material,
			Class:    r.Class,
			TcValue:  r.TcValue,
			Pressure: r.Pressure,
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "\t")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding RDF: %w", err)
	}
	return enc.Close()
}
