package services

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/mauc/audioguide-backend/internal/config"
	"github.com/mauc/audioguide-backend/internal/models"
)

type QRService struct {
	cfg *config.Config
}

func NewQRService(cfg *config.Config) *QRService { return &QRService{cfg: cfg} }

// GenerateArtworkQRPDF renders a printable A4 placard for an artwork:
// title, author and a QR code pointing at its audioguide page.
func (s *QRService) GenerateArtworkQRPDF(artwork *models.Artwork) ([]byte, error) {
	artworkURL := fmt.Sprintf("%s/artworks/%s", s.cfg.FrontendURL, artwork.ID)

	png, err := qrcode.Encode(artworkURL, qrcode.Medium, 512)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, artwork.Title)
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	caption := artwork.Author
	if artwork.Year != "" {
		caption = fmt.Sprintf("%s, %s", artwork.Author, artwork.Year)
	}
	pdf.MultiCell(0, 6, caption, "", "L", false)

	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("qr", opt, bytes.NewReader(png))

	// Center the QR on the A4 page (210mm wide, 100mm code).
	x := (210.0 - 100.0) / 2.0
	y := pdf.GetY() + 10
	pdf.ImageOptions("qr", x, y, 100, 100, false, opt, 0, "")

	pdf.SetY(y + 110)
	pdf.SetFont("Arial", "I", 10)
	pdf.MultiCell(0, 5, artworkURL, "", "C", false)

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
