package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/almoxarifado-api/internal/application/dto"
	"github.com/jhoicas/almoxarifado-api/internal/domain/repository"
)

// ExportUseCase genera los archivos de exportación (PDF de instituciones, funcionarios y stock; XML de stock).
type ExportUseCase struct {
	institutionRepo repository.InstitutionRepository
	staffRepo       repository.StaffRepository
	reports         *ReportUseCase
	pdf             PDFGenerator
	xml             StockXMLExporter
	now             func() time.Time
}

// NewExportUseCase construye el caso de uso inyectando los generadores.
func NewExportUseCase(
	institutionRepo repository.InstitutionRepository,
	staffRepo repository.StaffRepository,
	reports *ReportUseCase,
	pdf PDFGenerator,
	xml StockXMLExporter,
) *ExportUseCase {
	return &ExportUseCase{
		institutionRepo: institutionRepo,
		staffRepo:       staffRepo,
		reports:         reports,
		pdf:             pdf,
		xml:             xml,
		now:             time.Now,
	}
}

// InstitutionsPDF genera el listado de instituciones. Devuelve bytes y nombre de archivo.
func (uc *ExportUseCase) InstitutionsPDF(ctx context.Context) ([]byte, string, error) {
	list, _, err := uc.institutionRepo.List(ctx, "", 0, 0)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: listar instituciones: %w", err)
	}
	now := uc.now()
	b, err := uc.pdf.InstitutionsPDF(list, now)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar: %w", err)
	}
	return b, filename("instituciones", now, "pdf"), nil
}

// StaffPDF genera el listado de funcionarios con el nombre de su institución.
func (uc *ExportUseCase) StaffPDF(ctx context.Context) ([]byte, string, error) {
	list, _, err := uc.staffRepo.List(ctx, "", 0, 0)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: listar funcionarios: %w", err)
	}
	institutions, _, err := uc.institutionRepo.List(ctx, "", 0, 0)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: listar instituciones: %w", err)
	}
	names := make(map[string]string, len(institutions))
	for _, inst := range institutions {
		names[inst.ID] = inst.Name
	}
	now := uc.now()
	b, err := uc.pdf.StaffPDF(list, names, now)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar: %w", err)
	}
	return b, filename("funcionarios", now, "pdf"), nil
}

// StockPDF genera el reporte de stock en PDF.
func (uc *ExportUseCase) StockPDF(ctx context.Context, in dto.StockReportRequest) ([]byte, string, error) {
	rep, err := uc.reports.Stock(ctx, in)
	if err != nil {
		return nil, "", err
	}
	now := uc.now()
	b, err := uc.pdf.StockReportPDF(rep, now)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar: %w", err)
	}
	return b, filename("estoque", now, "pdf"), nil
}

// StockXML genera el reporte de stock en XML.
func (uc *ExportUseCase) StockXML(ctx context.Context, in dto.StockReportRequest) ([]byte, string, error) {
	rep, err := uc.reports.Stock(ctx, in)
	if err != nil {
		return nil, "", err
	}
	now := uc.now()
	b, err := uc.xml.StockReportXML(rep, now)
	if err != nil {
		return nil, "", fmt.Errorf("xml: generar: %w", err)
	}
	return b, filename("estoque", now, "xml"), nil
}

func filename(base string, t time.Time, ext string) string {
	return fmt.Sprintf("%s_%s.%s", base, t.Format("20060102_150405"), ext)
}
