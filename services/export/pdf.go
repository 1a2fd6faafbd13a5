package exportsvc

import (
	"fmt"
	"strings"
	"time"
)

// A4 in points. PDF user space has its origin at the bottom-left corner,
// while the form layout below is specified in millimetres from the top-left
// corner, so every coordinate goes through x()/y().
const (
	pageWidth  = 595.28
	pageHeight = 841.89
	mmToPt     = 72.0 / 25.4
)

func x(mm float64) float64 { return mm * mmToPt }
func y(mm float64) float64 { return pageHeight - mm*mmToPt }

// contentStream builds a PDF page content stream, one drawing op per call.
type contentStream struct {
	buf strings.Builder
}

func (cs *contentStream) setTextColor(r, g, b int) {
	fmt.Fprintf(&cs.buf, "%.3f %.3f %.3f rg\n", float64(r)/255, float64(g)/255, float64(b)/255)
}

func (cs *contentStream) setDrawColor(r, g, b int) {
	fmt.Fprintf(&cs.buf, "%.3f %.3f %.3f RG\n", float64(r)/255, float64(g)/255, float64(b)/255)
}

func (cs *contentStream) setLineWidth(w float64) {
	fmt.Fprintf(&cs.buf, "%.2f w\n", w)
}

// text draws s at (xmm, ymm) using font (/F1 regular, /F2 bold).
func (cs *contentStream) text(font string, size, xmm, ymm float64, s string) {
	fmt.Fprintf(&cs.buf, "BT /%s %.1f Tf %.2f %.2f Td (%s) Tj ET\n",
		font, size, x(xmm), y(ymm), escapePDFString(s))
}

// textCentered approximates Helvetica metrics at half the font size per glyph,
// which is close enough to centre headings on a blank form.
func (cs *contentStream) textCentered(font string, size, ymm float64, s string) {
	width := 0.5 * size * float64(len(s))
	xPt := (pageWidth - width) / 2
	fmt.Fprintf(&cs.buf, "BT /%s %.1f Tf %.2f %.2f Td (%s) Tj ET\n",
		font, size, xPt, y(ymm), escapePDFString(s))
}

func (cs *contentStream) line(x1, y1, x2, y2 float64) {
	fmt.Fprintf(&cs.buf, "%.2f %.2f m %.2f %.2f l S\n", x(x1), y(y1), x(x2), y(y2))
}

func (cs *contentStream) rect(xmm, ymm, wmm, hmm float64) {
	fmt.Fprintf(&cs.buf, "%.2f %.2f %.2f %.2f re S\n", x(xmm), y(ymm+hmm), wmm*mmToPt, hmm*mmToPt)
}

func (cs *contentStream) String() string { return cs.buf.String() }

func escapePDFString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "(", `\(`)
	s = strings.ReplaceAll(s, ")", `\)`)
	return s
}

// pdfFormRenderer lays out the blank application form over two A4 pages.
type pdfFormRenderer struct {
	now time.Time
}

func (r pdfFormRenderer) render() []byte {
	var pdf strings.Builder
	offsets := make(map[int]int)

	pdf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n\n")

	writeObj := func(num int, body string) {
		offsets[num] = pdf.Len()
		fmt.Fprintf(&pdf, "%d 0 obj\n%s\nendobj\n\n", num, body)
	}

	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, fmt.Sprintf("<< /Type /Pages /Kids [3 0 R 5 0 R] /Count 2 /MediaBox [0 0 %.2f %.2f] >>",
		pageWidth, pageHeight))

	const resources = "/Resources << /Font << /F1 7 0 R /F2 8 0 R >> >>"
	writeObj(3, "<< /Type /Page /Parent 2 0 R /Contents 4 0 R "+resources+" >>")

	page1 := r.renderPageOne()
	writeObj(4, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(page1), page1))

	writeObj(5, "<< /Type /Page /Parent 2 0 R /Contents 6 0 R "+resources+" >>")

	page2 := r.renderPageTwo()
	writeObj(6, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(page2), page2))

	writeObj(7, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	writeObj(8, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold >>")

	xrefStart := pdf.Len()
	pdf.WriteString("xref\n0 9\n0000000000 65535 f \n")
	for i := 1; i <= 8; i++ {
		fmt.Fprintf(&pdf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&pdf, "trailer\n<< /Size 9 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xrefStart)

	return []byte(pdf.String())
}

func (r pdfFormRenderer) renderPageOne() string {
	cs := &contentStream{}

	// header
	cs.setTextColor(30, 58, 138)
	cs.textCentered("F2", 20, 20, schoolName)
	cs.setTextColor(100, 100, 100)
	cs.textCentered("F1", 12, 28, schoolTagline)
	cs.setDrawColor(30, 58, 138)
	cs.setLineWidth(0.5)
	cs.line(20, 35, 190, 35)

	// school information
	cs.setTextColor(50, 50, 50)
	cs.text("F1", 10, 20, 45, "Location: "+schoolLocation)
	cs.text("F1", 10, 20, 51, "Phone: "+schoolPhone+" | Email: "+schoolEmail)
	cs.text("F1", 10, 20, 57, "Website: "+schoolWebsite)
	cs.setDrawColor(200, 200, 200)
	cs.line(20, 67, 190, 67)

	// form title
	cs.setTextColor(30, 58, 138)
	cs.textCentered("F2", 16, 80, "STUDENT ADMISSION APPLICATION FORM")
	cs.setDrawColor(30, 58, 138)
	cs.setLineWidth(0.3)
	cs.line(45, 84, 165, 84)

	// instructions
	cs.text("F2", 10, 20, 96, "Application Instructions:")
	cs.setTextColor(50, 50, 50)
	yPos := 103.0
	for _, instr := range []string{
		"- Please fill out this form completely and legibly",
		"- All fields marked with (*) are required",
		"- Attach all required documents (birth certificate, passport photos, previous school reports)",
		"- Submit the completed form to our school office or via email",
		"- Applications are accepted year-round",
	} {
		cs.text("F1", 10, 20, yPos, instr)
		yPos += 5
	}
	cs.setDrawColor(200, 200, 200)
	cs.line(20, yPos+3, 190, yPos+3)

	// student information
	r.sectionTitle(cs, 138, "STUDENT INFORMATION")
	r.formField(cs, 20, 150, 50, "First Name *")
	r.formField(cs, 85, 150, 35, "Middle Name")
	r.formField(cs, 135, 150, 50, "Last Name *")
	r.formField(cs, 20, 166, 40, "Date of Birth *")
	r.formField(cs, 80, 166, 30, "Gender *")
	r.formField(cs, 130, 166, 40, "Nationality")
	r.formField(cs, 20, 182, 50, "Applying for Grade *")
	r.formField(cs, 100, 182, 85, "Previous School")
	r.textArea(cs, 20, 198, 165, "Medical Conditions or Special Needs")
	cs.setDrawColor(200, 200, 200)
	cs.line(20, 222, 190, 222)

	// parent/guardian information
	r.sectionTitle(cs, 230, "PARENT/GUARDIAN INFORMATION")
	r.formField(cs, 20, 242, 50, "Parent/Guardian First Name *")
	r.formField(cs, 85, 242, 50, "Parent/Guardian Last Name *")
	r.formField(cs, 150, 242, 35, "Relationship *")
	r.formField(cs, 20, 258, 40, "Phone Number *")
	r.formField(cs, 75, 258, 55, "Email Address *")
	r.formField(cs, 145, 258, 40, "Occupation")
	r.textArea(cs, 20, 274, 165, "Home Address *")

	return cs.String()
}

func (r pdfFormRenderer) renderPageTwo() string {
	cs := &contentStream{}

	r.formField(cs, 20, 25, 60, "Emergency Contact Name")
	r.formField(cs, 105, 25, 60, "Emergency Contact Phone")
	cs.setDrawColor(200, 200, 200)
	cs.line(20, 35, 190, 35)

	// additional information
	r.sectionTitle(cs, 45, "ADDITIONAL INFORMATION")
	cs.setTextColor(50, 50, 50)
	cs.text("F1", 10, 20, 57, "Transportation Method:")
	cs.text("F1", 10, 20, 64, "[ ] School Bus    [ ] Private Transport    [ ] Walking")
	cs.text("F1", 10, 20, 76, "Lunch Program:")
	cs.text("F1", 10, 20, 83, "[ ] School Lunch Program    [ ] Packed Lunch from Home")
	r.textArea(cs, 20, 93, 165, "Additional Information or Special Requests")
	cs.setDrawColor(200, 200, 200)
	cs.line(20, 117, 190, 117)

	// required documents
	r.sectionTitle(cs, 127, "REQUIRED DOCUMENTS CHECKLIST")
	cs.setTextColor(50, 50, 50)
	yPos := 138.0
	for _, doc := range []string{
		"[ ] Birth Certificate (Original and Copy)",
		"[ ] 2 Recent Passport Photos",
		"[ ] Previous School Report (if applicable)",
		"[ ] Transfer Certificate (if applicable)",
		"[ ] Medical Certificate (if applicable)",
		"[ ] Immunization Record",
	} {
		cs.text("F1", 10, 20, yPos, doc)
		yPos += 6
	}
	cs.setDrawColor(200, 200, 200)
	cs.line(20, yPos+3, 190, yPos+3)

	// declaration
	r.sectionTitle(cs, 186, "DECLARATION")
	cs.setTextColor(50, 50, 50)
	cs.text("F1", 10, 20, 198, "I hereby declare that the information provided in this application is true and accurate")
	cs.text("F1", 10, 20, 204, "to the best of my knowledge. I understand that providing false information may result")
	cs.text("F1", 10, 20, 210, "in the rejection of this application.")
	cs.text("F1", 10, 20, 220, "[ ] I agree to the terms and conditions of admission *")
	cs.text("F1", 10, 20, 227, "[ ] I consent to the processing of personal data for admission purposes *")
	cs.setDrawColor(200, 200, 200)
	cs.line(20, 234, 190, 234)

	// signatures
	cs.setTextColor(30, 58, 138)
	cs.text("F2", 10, 20, 244, "SIGNATURES")
	cs.setTextColor(50, 50, 50)
	cs.setDrawColor(50, 50, 50)
	cs.setLineWidth(0.2)
	cs.text("F1", 10, 20, 254, "Parent/Guardian Signature:")
	cs.line(70, 254, 130, 254)
	cs.text("F1", 10, 140, 254, "Date:")
	cs.line(152, 254, 185, 254)
	cs.text("F1", 10, 20, 266, "Student Signature (if applicable):")
	cs.line(80, 266, 130, 266)
	cs.text("F1", 10, 140, 266, "Date:")
	cs.line(152, 266, 185, 266)

	// footer
	cs.setTextColor(100, 100, 100)
	cs.textCentered("F1", 8, 278, schoolName)
	cs.textCentered("F1", 8, 283, schoolLocation+" | Phone: "+schoolPhone+" | Email: "+schoolEmail)
	cs.textCentered("F1", 8, 288,
		fmt.Sprintf("Application Form - Version %d | Generated on %s", r.now.Year(), r.now.Format("02/01/2006")))

	return cs.String()
}

func (r pdfFormRenderer) sectionTitle(cs *contentStream, ymm float64, title string) {
	cs.setTextColor(30, 58, 138)
	cs.text("F2", 12, 20, ymm, title)
	cs.setDrawColor(30, 58, 138)
	cs.setLineWidth(0.3)
	cs.line(20, ymm+2, 80, ymm+2)
}

func (r pdfFormRenderer) formField(cs *contentStream, xmm, ymm, wmm float64, label string) {
	cs.setTextColor(50, 50, 50)
	cs.text("F1", 9, xmm, ymm, label)
	cs.setDrawColor(200, 200, 200)
	cs.setLineWidth(0.2)
	cs.line(xmm, ymm+8, xmm+wmm, ymm+8)
}

func (r pdfFormRenderer) textArea(cs *contentStream, xmm, ymm, wmm float64, label string) {
	cs.setTextColor(50, 50, 50)
	cs.text("F1", 9, xmm, ymm, label)
	cs.setDrawColor(200, 200, 200)
	cs.setLineWidth(0.2)
	cs.rect(xmm, ymm+2, wmm, 15)
}
