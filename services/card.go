package services

import (
	"bytes"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"icard-api/models"
	"icard-api/utils"
)

// Standard ID-1 card size in millimetres, one page per side.
const (
	cardWidth  = 85.6
	cardHeight = 53.98
)

// Hindi labels printed alongside the English ones when a Devanagari font is
// available.
const (
	hiRailway      = "पूर्व तट रेलवे"
	hiDepartment   = "विभाग"
	hiCommercial   = "वाणिज्यिक"
	hiIdentityCard = "पहचान पत्र"
	hiName         = "नाम"
	hiDesignation  = "पद नाम"
	hiPFNo         = "पी.एफ.नं"
	hiStation      = "स्टेशन"
	hiDob          = "जन्म तारीख"
	hiHolderSign   = "कार्डधारक का हस्ताक्षर"
	hiIssuerSign   = "जारीकर्ता प्राधिकारी का हस्ताक्षर"
	hiFamilyHeader = "परिवार का विवरण"
	hiAddress      = "घर का पता:"
	hiFoundNotice  = "यदि मिले तो कृपया निकटतम डाक घर में डाल दें।"
)

// qrPayload is the verification payload encoded on the card back. It is
// informational only and carries no signature.
type qrPayload struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	IDNumber    string `json:"idNumber"`
	Department  string `json:"department"`
	BloodGroup  string `json:"bloodGroup"`
}

// CardService renders a two-sided printable ID card for a record. It has no
// state beyond the directories it reads assets from.
type CardService struct {
	uploadDir string
	fontDir   string
}

func NewCardService(uploadDir, fontDir string) *CardService {
	return &CardService{uploadDir: uploadDir, fontDir: fontDir}
}

// Render lays out the front and back of the card and returns the PDF bytes.
// Missing photo or signature assets degrade to placeholders; a QR encoding
// failure drops the QR block but the card still renders.
func (s *CardService) Render(rec models.Record, v *models.Variant) ([]byte, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: cardWidth, Ht: cardHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	hindi := s.registerHindiFont(pdf)

	s.renderFront(pdf, rec, v, hindi)
	s.renderBack(pdf, rec, v, hindi)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// registerHindiFont loads the Devanagari font when present. Without it the
// card renders English-only, which is never an error.
func (s *CardService) registerHindiFont(pdf *gofpdf.Fpdf) bool {
	path := filepath.Join(s.fontDir, "NotoSansDevanagari-Regular.ttf")
	if _, err := os.Stat(path); err != nil {
		return false
	}
	pdf.AddUTF8Font("devanagari", "", path)
	if pdf.Err() {
		log.Printf("Warning: failed to register Hindi font: %v", pdf.Error())
		pdf.ClearError()
		return false
	}
	return true
}

func hindiText(pdf *gofpdf.Fpdf, hindi bool, x, y float64, size float64, s string) {
	if !hindi {
		return
	}
	pdf.SetFont("devanagari", "", size)
	pdf.Text(x, y, s)
}

func (s *CardService) renderFront(pdf *gofpdf.Fpdf, rec models.Record, v *models.Variant, hindi bool) {
	base := rec.Base()
	pdf.AddPage()

	// White background
	pdf.SetFillColor(255, 255, 255)
	pdf.Rect(0, 0, cardWidth, cardHeight, "F")

	// Institutional header band
	pdf.SetFillColor(220, 38, 38)
	pdf.Rect(0, 0, cardWidth, 7, "F")

	// Railway wheel mark
	pdf.SetFillColor(255, 255, 255)
	pdf.Circle(5.6, 3.5, 2.8, "F")
	pdf.SetDrawColor(220, 38, 38)
	pdf.SetLineWidth(0.25)
	for i := 0; i < 8; i++ {
		x2, y2 := wheelSpoke(5.6, 3.5, 2.3, i)
		pdf.Line(5.6, 3.5, x2, y2)
	}

	pdf.SetTextColor(255, 255, 255)
	hindiText(pdf, hindi, 10, 3, 6, hiRailway)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.Text(10, 6.2, "East Coast Railway")

	// Department band
	pdf.SetFillColor(8, 145, 178)
	pdf.Rect(0, 7, cardWidth, 5.6, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 6)
	pdf.Text(3, 9.8, "DEPARTMENT")
	hindiText(pdf, hindi, 3, 12.2, 5, hiDepartment)
	pdf.SetFont("Helvetica", "B", 7)
	pdf.Text(22, 10.2, strings.ToUpper(base.Department))
	hindiText(pdf, hindi, 22, 12.4, 5, hiCommercial)

	// Card title and HQ serial
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.Text(3, 17, "IDENTITY CARD")
	hindiText(pdf, hindi, 3, 19.5, 6, hiIdentityCard)
	pdf.SetFont("Helvetica", "B", 5.5)
	pdf.Text(cardWidth-26, 17, "H.Q S/No. "+strings.ToUpper(base.Department)+" -")

	// Photo region
	const (
		photoX = 68.2
		photoY = 21.0
		photoW = 12.7
	)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.25)
	pdf.Rect(photoX, photoY, photoW, photoW, "D")
	if !s.drawStoredImage(pdf, base.Photo, photoX+0.5, photoY+0.5, photoW-1, photoW-1) {
		pdf.SetFillColor(204, 204, 204)
		pdf.Rect(photoX+0.5, photoY+0.5, photoW-1, photoW-1, "F")
		pdf.SetTextColor(102, 102, 102)
		pdf.SetFont("Helvetica", "", 5)
		pdf.Text(photoX+2.6, photoY+photoW/2, "No Photo")
		pdf.SetTextColor(0, 0, 0)
	}

	// Field block: Name, Designation, business key, Station, D.O.B
	fields := []struct {
		label string
		hindi string
		value string
	}{
		{"Name", hiName, strings.ToUpper(base.Name)},
		{"Desig", hiDesignation, base.Designation},
		{v.IDLabel, hiPFNo, rec.BusinessKey()},
		{"Station", hiStation, strings.ToUpper(base.Station)},
		{"D.O.B", hiDob, utils.FormatDisplayDate(base.Dob)},
	}

	y := 23.5
	const (
		leftMargin = 3.0
		labelWidth = 10.0
	)
	for _, f := range fields {
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "B", 7)
		pdf.Text(leftMargin, y, f.label)
		hindiText(pdf, hindi, leftMargin, y+2.2, 5, f.hindi)
		pdf.SetFont("Helvetica", "B", 7)
		pdf.Text(leftMargin+labelWidth, y, ": "+f.value)
		y += 5.2
	}

	// Signature foot
	footY := cardHeight - 4.2
	pdf.SetTextColor(0, 0, 0)
	hindiText(pdf, hindi, 3, footY, 4.5, hiHolderSign)
	pdf.SetFont("Helvetica", "", 5)
	pdf.Text(3, footY+2, "Signature of Card Holder")

	hindiText(pdf, hindi, cardWidth-26, footY, 4.5, hiIssuerSign)
	pdf.SetFont("Helvetica", "", 5)
	pdf.Text(cardWidth-26, footY+2, "Signature of Issuing Authority")
	s.drawStoredImage(pdf, base.Sign, cardWidth-23, footY-4.5, 17, 4.2)

	drawCardBorder(pdf)
}

func (s *CardService) renderBack(pdf *gofpdf.Fpdf, rec models.Record, v *models.Variant, hindi bool) {
	base := rec.Base()
	pdf.AddPage()

	pdf.SetFillColor(255, 255, 255)
	pdf.Rect(0, 0, cardWidth, cardHeight, "F")

	// Family header
	pdf.SetTextColor(0, 0, 0)
	if hindi {
		pdf.SetFont("devanagari", "", 7)
		pdf.SetXY(0, 1.5)
		pdf.CellFormat(cardWidth, 3, hiFamilyHeader, "", 0, "C", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(0, 5)
	pdf.CellFormat(cardWidth, 3.5, "Details of the family", "", 0, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 7)
	pdf.Text(4.2, 13, strings.ToUpper(base.Name))

	// Relation / Date of Birth / Blood Group table
	const (
		colRelation = 4.2
		colDob      = 22.0
		colBlood    = 42.0
	)
	pdf.SetFont("Helvetica", "B", 6)
	pdf.Text(colRelation, 17, "Relation")
	pdf.Text(colDob, 17, "Date of Birth")
	pdf.Text(colBlood, 17, "Blood Group")

	bloodGroup := base.BloodGroup
	if bloodGroup == "" {
		bloodGroup = "N/A"
	}

	rowY := 20.5
	pdf.SetFont("Helvetica", "", 6)
	pdf.Text(colRelation, rowY, "Self")
	pdf.Text(colDob, rowY, utils.FormatDisplayDate(base.Dob))
	pdf.Text(colBlood, rowY, bloodGroup)
	rowY += 3.5

	for i, member := range base.Family {
		if i >= 4 {
			// Out of vertical space on a card
			break
		}
		blood := member.BloodGroup
		if blood == "" {
			blood = "N/A"
		}
		pdf.Text(colRelation, rowY, member.Relation)
		pdf.Text(colDob, rowY, member.Dob)
		pdf.Text(colBlood, rowY, blood)
		rowY += 3.5
	}

	// Emergency contact
	contact := base.EmergencyContactNumber
	if contact == "" {
		contact = "N/A"
	}
	pdf.SetFont("Helvetica", "B", 7)
	pdf.Text(4.2, rowY+2, "Emergency Contact No. : "+contact)

	// Address block, wrapped clear of the QR column
	hindiText(pdf, hindi, 4.2, rowY+6, 5, hiAddress)
	pdf.SetFont("Helvetica", "B", 7)
	pdf.Text(4.2, rowY+8.8, "Res.Address:")
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetXY(4.2, rowY+9.8)
	pdf.MultiCell(cardWidth-28, 2.6, base.Address, "", "L", false)

	s.drawQRBlock(pdf, rec, v)

	// Found notice footer
	hindiText(pdf, hindi, 4.2, cardHeight-5.6, 4.5, hiFoundNotice)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 5)
	pdf.Text(4.2, cardHeight-3.2, "If found, please drop it in the nearest Post Box")

	drawCardBorder(pdf)
}

// drawQRBlock encodes the verification payload and places it on the right of
// the back side. Failures are logged and the block is skipped; rendering
// never aborts for the QR.
func (s *CardService) drawQRBlock(pdf *gofpdf.Fpdf, rec models.Record, v *models.Variant) {
	base := rec.Base()
	bloodGroup := base.BloodGroup
	if bloodGroup == "" {
		bloodGroup = "N/A"
	}

	payload, err := json.Marshal(qrPayload{
		Name:        base.Name,
		Designation: base.Designation,
		IDNumber:    rec.BusinessKey(),
		Department:  base.Department,
		BloodGroup:  bloodGroup,
	})
	if err != nil {
		log.Printf("Error encoding QR payload: %v", err)
		return
	}

	png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		log.Printf("Error generating QR code: %v", err)
		return
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr-code", opts, bytes.NewReader(png))
	if pdf.Err() {
		log.Printf("Error embedding QR code: %v", pdf.Error())
		pdf.ClearError()
		return
	}
	pdf.ImageOptions("qr-code", cardWidth-19.5, 13, 14.2, 14.2, false, opts, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 5)
	pdf.SetXY(cardWidth-20.5, 28)
	pdf.CellFormat(16, 2.5, "Scan for verification", "", 0, "C", false, 0, "")
}

// drawStoredImage embeds an uploaded asset when the reference is set, the
// file exists, and gofpdf supports the format. Anything else degrades to the
// caller's placeholder.
func (s *CardService) drawStoredImage(pdf *gofpdf.Fpdf, name string, x, y, w, h float64) bool {
	if name == "" {
		return false
	}

	var imageType string
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(name), ".")) {
	case "jpg", "jpeg":
		imageType = "JPG"
	case "png":
		imageType = "PNG"
	case "gif":
		imageType = "GIF"
	default:
		return false
	}

	path := filepath.Join(s.uploadDir, name)
	if _, err := os.Stat(path); err != nil {
		return false
	}

	pdf.ImageOptions(path, x, y, w, h, false, gofpdf.ImageOptions{ImageType: imageType}, 0, "")
	if pdf.Err() {
		log.Printf("Warning: failed to embed %s: %v", name, pdf.Error())
		pdf.ClearError()
		return false
	}
	return true
}

func drawCardBorder(pdf *gofpdf.Fpdf) {
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Rect(0.25, 0.25, cardWidth-0.5, cardHeight-0.5, "D")
}

func wheelSpoke(cx, cy, r float64, i int) (float64, float64) {
	// 8 spokes at 45 degree steps
	angles := []struct{ sin, cos float64 }{
		{0, 1}, {0.7071, 0.7071}, {1, 0}, {0.7071, -0.7071},
		{0, -1}, {-0.7071, -0.7071}, {-1, 0}, {-0.7071, 0.7071},
	}
	a := angles[i%len(angles)]
	return cx + a.cos*r, cy + a.sin*r
}
