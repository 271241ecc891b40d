package infra

// Custody receipt for an asset assignment using go-pdf/fpdf.
// One A4 page with the organisation header, the asset data, both parties and
// signature lines. Rendered in memory and streamed by the handler.

import (
	"bytes"
	"fmt"

	"sorty/internal/model"

	"github.com/go-pdf/fpdf"
)

// RenderAssignmentReceipt renders the custody receipt of one assignment.
// The assignment must have Asset, AssignedTo and AssignedBy preloaded.
func RenderAssignmentReceipt(orgName string, a *model.AssetAssignment) ([]byte, error) {
	if a.Asset == nil || a.AssignedTo == nil || a.AssignedBy == nil {
		return nil, fmt.Errorf("pdf: assignment %s missing relations", a.ID)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 40

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, tr(orgName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 7, tr("Acta de entrega y custodia de activo"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, tr("N° de asignación: "+a.ID.String()), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, tr("Fecha: "+a.AssignedAt.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, tr("Estado: "+string(a.Status)), "", 1, "L", false, 0, "")
	pdf.Ln(3)
	pdf.Line(20, pdf.GetY(), pageW-20, pdf.GetY())
	pdf.Ln(3)

	// ── Asset ────────────────────────────────────────────────────────────────
	labelW := contentW * 0.35
	valueW := contentW - labelW
	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(labelW, 6, tr(label), "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(valueW, 6, tr(value), "1", 1, "L", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Activo", "", 1, "L", false, 0, "")
	asset := a.Asset
	row("Código", asset.Code)
	row("Nombre", asset.Name)
	row("Marca / Modelo", deref(asset.Brand)+" "+deref(asset.Model))
	row("N° de serie", deref(asset.SerialNumber))
	row("Ubicación", deref(a.Location))
	row("Valor de adquisición", "$"+asset.AcquisitionCost.StringFixed(2))
	pdf.Ln(4)

	// ── Parties ──────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Partes", "", 1, "L", false, 0, "")
	row("Entrega", a.AssignedBy.Name+" <"+a.AssignedBy.Email+">")
	row("Recibe", a.AssignedTo.Name+" <"+a.AssignedTo.Email+">")
	if a.AssignedTo.Department != nil {
		row("Departamento", *a.AssignedTo.Department)
	}
	if a.Reason != nil {
		row("Motivo", *a.Reason)
	}
	if a.Notes != nil {
		row("Observaciones", *a.Notes)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(contentW, 5, tr("El receptor declara recibir el activo descrito en buen estado y se compromete "+
		"a su cuidado y a devolverlo cuando le sea requerido."), "", "J", false)
	pdf.Ln(25)

	// ── Signatures ───────────────────────────────────────────────────────────
	half := contentW / 2
	pdf.CellFormat(half, 5, "______________________________", "", 0, "C", false, 0, "")
	pdf.CellFormat(half, 5, "______________________________", "", 1, "C", false, 0, "")
	pdf.CellFormat(half, 5, tr("Entrega: "+a.AssignedBy.Name), "", 0, "C", false, 0, "")
	pdf.CellFormat(half, 5, tr("Recibe: "+a.AssignedTo.Name), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
