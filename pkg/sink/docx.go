package sink

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/matzehuels/labdoc/pkg/doc"
)

// WordprocessingML namespaces and relationship types.
const (
	nsW       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPkgRels = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsTypes   = "http://schemas.openxmlformats.org/package/2006/content-types"

	relOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"

	ctRels     = "application/vnd.openxmlformats-package.relationships+xml"
	ctXML      = "application/xml"
	ctDocument = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	ctStyles   = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	ctCore     = "application/vnd.openxmlformats-package.core-properties+xml"
)

// A4 page in twips with one-inch margins.
const (
	pageWidth  = 11906
	pageHeight = 16838
	pageMargin = 1440
)

// DOCXOption configures DOCX rendering via [RenderDOCX].
type DOCXOption func(*docxRenderer)

type docxRenderer struct {
	title   string
	creator string
	created time.Time
}

// WithDOCXTitle records a document title in the package properties.
func WithDOCXTitle(s string) DOCXOption { return func(r *docxRenderer) { r.title = s } }

// WithDOCXCreator records the document author in the package properties.
func WithDOCXCreator(s string) DOCXOption { return func(r *docxRenderer) { r.creator = s } }

// WithDOCXCreated records the creation time in the package properties and
// stamps it on every zip entry. Without it the output is byte-for-byte
// reproducible.
func WithDOCXCreated(t time.Time) DOCXOption { return func(r *docxRenderer) { r.created = t } }

// RenderDOCX packs d into a WordprocessingML package.
//
// Every [doc.Run] becomes a w:r element carrying its font, size, emphasis
// and color; page breaks become w:br elements. Paragraph alignment,
// spacing, indentation and style id become w:pPr properties. The styles of
// d are declared in word/styles.xml; the first style named "Normal" is the
// default paragraph style.
func RenderDOCX(d doc.Document, opts ...DOCXOption) ([]byte, error) {
	r := docxRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	parts := []struct {
		name string
		xml  *etree.Document
	}{
		{"[Content_Types].xml", contentTypes()},
		{"_rels/.rels", packageRels()},
		{"docProps/core.xml", r.coreProps()},
		{"word/_rels/document.xml.rels", documentRels()},
		{"word/styles.xml", stylesXML(d.Styles)},
		{"word/document.xml", documentXML(d)},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range parts {
		hdr := &zip.FileHeader{Name: p.name, Method: zip.Deflate, Modified: r.created}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := p.xml.WriteTo(w); err != nil {
			return nil, fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close package: %w", err)
	}
	return buf.Bytes(), nil
}

func newXML() *etree.Document {
	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	return x
}

func contentTypes() *etree.Document {
	x := newXML()
	types := x.CreateElement("Types")
	types.CreateAttr("xmlns", nsTypes)

	def := func(ext, ct string) {
		e := types.CreateElement("Default")
		e.CreateAttr("Extension", ext)
		e.CreateAttr("ContentType", ct)
	}
	override := func(part, ct string) {
		e := types.CreateElement("Override")
		e.CreateAttr("PartName", part)
		e.CreateAttr("ContentType", ct)
	}
	def("rels", ctRels)
	def("xml", ctXML)
	override("/word/document.xml", ctDocument)
	override("/word/styles.xml", ctStyles)
	override("/docProps/core.xml", ctCore)
	return x
}

func relationships(rels ...[3]string) *etree.Document {
	x := newXML()
	root := x.CreateElement("Relationships")
	root.CreateAttr("xmlns", nsPkgRels)
	for _, rel := range rels {
		e := root.CreateElement("Relationship")
		e.CreateAttr("Id", rel[0])
		e.CreateAttr("Type", rel[1])
		e.CreateAttr("Target", rel[2])
	}
	return x
}

func packageRels() *etree.Document {
	return relationships(
		[3]string{"rId1", relOfficeDocument, "word/document.xml"},
		[3]string{"rId2", relCoreProps, "docProps/core.xml"},
	)
}

func documentRels() *etree.Document {
	return relationships([3]string{"rId1", relStyles, "styles.xml"})
}

func (r docxRenderer) coreProps() *etree.Document {
	x := newXML()
	cp := x.CreateElement("cp:coreProperties")
	cp.CreateAttr("xmlns:cp", "http://schemas.openxmlformats.org/package/2006/metadata/core-properties")
	cp.CreateAttr("xmlns:dc", "http://purl.org/dc/elements/1.1/")
	cp.CreateAttr("xmlns:dcterms", "http://purl.org/dc/terms/")
	cp.CreateAttr("xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance")

	if r.title != "" {
		cp.CreateElement("dc:title").SetText(r.title)
	}
	if r.creator != "" {
		cp.CreateElement("dc:creator").SetText(r.creator)
	}
	if !r.created.IsZero() {
		c := cp.CreateElement("dcterms:created")
		c.CreateAttr("xsi:type", "dcterms:W3CDTF")
		c.SetText(r.created.UTC().Format(time.RFC3339))
	}
	return x
}

func stylesXML(styles []doc.Style) *etree.Document {
	x := newXML()
	root := x.CreateElement("w:styles")
	root.CreateAttr("xmlns:w", nsW)

	hasDefault := false
	for _, s := range styles {
		e := root.CreateElement("w:style")
		e.CreateAttr("w:type", "paragraph")
		if s.ID == "Normal" && !hasDefault {
			e.CreateAttr("w:default", "1")
			hasDefault = true
		}
		e.CreateAttr("w:styleId", s.ID)
		val(e.CreateElement("w:name"), s.Name)
		if s.ID != "Normal" {
			val(e.CreateElement("w:basedOn"), "Normal")
		}
		e.CreateElement("w:qFormat")
	}
	return x
}

func documentXML(d doc.Document) *etree.Document {
	x := newXML()
	root := x.CreateElement("w:document")
	root.CreateAttr("xmlns:w", nsW)
	root.CreateAttr("xmlns:r", nsR)
	body := root.CreateElement("w:body")

	for _, p := range d.Paragraphs {
		writeParagraph(body, p)
	}

	sect := body.CreateElement("w:sectPr")
	sz := sect.CreateElement("w:pgSz")
	sz.CreateAttr("w:w", strconv.Itoa(pageWidth))
	sz.CreateAttr("w:h", strconv.Itoa(pageHeight))
	mar := sect.CreateElement("w:pgMar")
	for _, side := range []string{"w:top", "w:right", "w:bottom", "w:left"} {
		mar.CreateAttr(side, strconv.Itoa(pageMargin))
	}
	return x
}

func writeParagraph(body *etree.Element, p doc.Paragraph) {
	el := body.CreateElement("w:p")
	writeParagraphProps(el, p)
	for _, run := range p.Runs {
		writeRun(el, run)
	}
}

func writeParagraphProps(p *etree.Element, para doc.Paragraph) {
	if para.StyleID == "" && para.Align == "" && para.Spacing.IsZero() {
		return
	}
	ppr := p.CreateElement("w:pPr")
	if para.StyleID != "" {
		val(ppr.CreateElement("w:pStyle"), para.StyleID)
	}
	sp := para.Spacing
	if sp.Before != 0 || sp.After != 0 || sp.Line != 0 {
		e := ppr.CreateElement("w:spacing")
		e.CreateAttr("w:before", strconv.Itoa(sp.Before))
		e.CreateAttr("w:after", strconv.Itoa(sp.After))
		if sp.Line != 0 {
			e.CreateAttr("w:line", strconv.Itoa(int(sp.Line*240+0.5)))
			e.CreateAttr("w:lineRule", "auto")
		}
	}
	if sp.Indent != 0 {
		ppr.CreateElement("w:ind").CreateAttr("w:left", strconv.Itoa(sp.Indent))
	}
	if para.Align != "" && para.Align != doc.AlignLeft {
		jc := string(para.Align)
		if para.Align == doc.AlignJustify {
			jc = "both"
		}
		val(ppr.CreateElement("w:jc"), jc)
	}
}

func writeRun(p *etree.Element, run doc.Run) {
	r := p.CreateElement("w:r")
	writeRunProps(r, run.Style)
	if run.Break == doc.BreakPage {
		r.CreateElement("w:br").CreateAttr("w:type", "page")
	}

	if run.Text == "" {
		return
	}

	// Tabs are separate elements in WordprocessingML.
	for i, part := range strings.Split(xmlSafe(run.Text), "\t") {
		if i > 0 {
			r.CreateElement("w:tab")
		}
		if part == "" {
			continue
		}
		t := r.CreateElement("w:t")
		t.CreateAttr("xml:space", "preserve")
		t.SetText(part)
	}
}

func writeRunProps(r *etree.Element, s doc.RunStyle) {
	if s == (doc.RunStyle{}) {
		return
	}
	rpr := r.CreateElement("w:rPr")
	if s.Font != "" {
		f := rpr.CreateElement("w:rFonts")
		f.CreateAttr("w:ascii", s.Font)
		f.CreateAttr("w:hAnsi", s.Font)
		f.CreateAttr("w:eastAsia", s.Font)
	}
	if s.Bold {
		rpr.CreateElement("w:b")
	}
	if s.Italic {
		rpr.CreateElement("w:i")
	}
	if s.Underline {
		val(rpr.CreateElement("w:u"), "single")
	}
	if s.Color != "" {
		val(rpr.CreateElement("w:color"), s.Color)
	}
	if s.Size != 0 {
		val(rpr.CreateElement("w:sz"), strconv.Itoa(s.Size))
		val(rpr.CreateElement("w:szCs"), strconv.Itoa(s.Size))
	}
}

func val(e *etree.Element, v string) {
	e.CreateAttr("w:val", v)
}

// xmlSafe drops characters that XML 1.0 cannot carry.
func xmlSafe(s string) string {
	clean := true
	for _, r := range s {
		if !isXMLChar(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isXMLChar(r) {
			return r
		}
		return -1
	}, s)
}

func isXMLChar(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}
