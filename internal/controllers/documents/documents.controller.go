package documentController

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"skynet/internal/logger"
	"skynet/internal/repositories"

	"github.com/go-pdf/fpdf"
)

const missingWorkText = "No registrado"

type DocumentController struct {
	visitRepo   repositories.VisitRepository
	reportRepo  repositories.ReportRepository
	clientRepo  repositories.ClientRepository
	profileRepo repositories.ProfileRepository
	log         logger.Logger
}

func New(
	visitRepo repositories.VisitRepository,
	reportRepo repositories.ReportRepository,
	clientRepo repositories.ClientRepository,
	profileRepo repositories.ProfileRepository,
) *DocumentController {
	return &DocumentController{
		visitRepo:   visitRepo,
		reportRepo:  reportRepo,
		clientRepo:  clientRepo,
		profileRepo: profileRepo,
		log:         logger.New("DocumentController"),
	}
}

// visitDocument is everything the fixed layout needs, resolved up front.
type visitDocument struct {
	ClienteNombre    string
	ClienteDireccion string
	ClienteTelefono  string
	ClienteCorreo    string
	TecnicoNombre    string
	Fecha            time.Time
	TrabajoRealizado string
	Observaciones    string
}

// BuildVisitPDF renders the visit report document and returns the bytes plus
// the download filename. A visit without a report row still renders, with the
// work section falling back to a placeholder.
func (dc *DocumentController) BuildVisitPDF(ctx context.Context, visitID string) ([]byte, string, error) {
	log := dc.log.Function("BuildVisitPDF")

	visit, err := dc.visitRepo.GetByID(ctx, visitID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", err
		}
		return nil, "", log.Err("failed to get visit", err, "visitID", visitID)
	}

	doc := visitDocument{
		ClienteNombre: "Desconocido",
		TecnicoNombre: "Desconocido",
		Fecha:         visit.Fecha,
	}

	if client, err := dc.clientRepo.GetByID(ctx, visit.ClienteID); err == nil {
		doc.ClienteNombre = client.Nombre
		doc.ClienteDireccion = client.Direccion
		doc.ClienteTelefono = client.Telefono
		doc.ClienteCorreo = client.Correo
	} else {
		log.Warn("failed to resolve client for document", "visitID", visitID, "error", err)
	}

	if technician, err := dc.profileRepo.GetByID(ctx, visit.TecnicoID); err == nil {
		doc.TecnicoNombre = technician.Nombre
	} else {
		log.Warn("failed to resolve technician for document", "visitID", visitID, "error", err)
	}

	doc.TrabajoRealizado = missingWorkText
	report, err := dc.reportRepo.GetByVisitID(ctx, visitID)
	switch {
	case err == nil:
		doc.TrabajoRealizado = report.TrabajoRealizado
		if report.Observaciones != nil {
			doc.Observaciones = *report.Observaciones
		}
	case errors.Is(err, repositories.ErrNotFound):
		log.Warn("visit has no report, rendering placeholder", "visitID", visitID)
	default:
		log.Er("failed to fetch visit report, rendering placeholder", err, "visitID", visitID)
	}

	raw, err := renderVisitPDF(doc)
	if err != nil {
		return nil, "", log.Err("failed to render visit document", err, "visitID", visitID)
	}

	filename := fmt.Sprintf("Reporte-%s.pdf", doc.ClienteNombre)

	return raw, filename, nil
}

// renderVisitPDF lays out the fixed A4 document: company header, title, a
// two-column client/technician block, the work section and the optional
// observations section, with a page counter footer.
func renderVisitPDF(doc visitDocument) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetMargins(15, 20, 15)
	pdf.AliasNbPages("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(85, 85, 85)
		pdf.CellFormat(0, 8, "SkyNet S.A.", "", 1, "C", false, 0, "")
		pdf.Ln(4)
	})

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(85, 85, 85)
		pdf.CellFormat(0, 10,
			tr(fmt.Sprintf("Página %d de {nb}", pdf.PageNo())), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(11, 61, 145)
	pdf.CellFormat(0, 10, tr("Reporte de Visita Técnica"), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	colWidth := 90.0
	top := pdf.GetY()

	label := func(text string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(11, 61, 145)
		pdf.MultiCell(colWidth, 6, tr(text), "", "L", false)
	}
	value := func(text string) {
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(0, 0, 0)
		pdf.MultiCell(colWidth, 6, tr(text), "", "L", false)
		pdf.Ln(1)
	}

	// Left column: client identity.
	label("Cliente:")
	value(doc.ClienteNombre)
	label("Dirección:")
	value(doc.ClienteDireccion)
	if doc.ClienteTelefono != "" {
		label("Teléfono:")
		value(doc.ClienteTelefono)
	}
	if doc.ClienteCorreo != "" {
		label("Correo:")
		value(doc.ClienteCorreo)
	}
	leftBottom := pdf.GetY()

	// Right column: technician and schedule.
	pdf.SetY(top)
	pdf.SetLeftMargin(15 + colWidth + 10)
	label("Técnico Asignado:")
	value(doc.TecnicoNombre)
	label("Fecha y hora de la visita programada:")
	value(doc.Fecha.Format("02/01/2006 15:04"))
	rightBottom := pdf.GetY()

	pdf.SetLeftMargin(15)
	if leftBottom > rightBottom {
		pdf.SetY(leftBottom)
	} else {
		pdf.SetY(rightBottom)
	}
	pdf.Ln(10)

	section := func(title, body string) {
		pdf.SetFont("Helvetica", "BU", 14)
		pdf.SetTextColor(11, 61, 145)
		pdf.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")
		pdf.Ln(1)
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(0, 0, 0)
		pdf.MultiCell(0, 6, tr(body), "", "L", false)
		pdf.Ln(4)
	}

	section("Trabajo Realizado", doc.TrabajoRealizado)

	if doc.Observaciones != "" {
		section("Observaciones", doc.Observaciones)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
