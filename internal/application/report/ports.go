package report

import (
	"time"

	"github.com/jhoicas/almoxarifado-api/internal/application/dto"
	"github.com/jhoicas/almoxarifado-api/internal/domain/entity"
)

// PDFGenerator genera los documentos PDF de exportación. Implementado en infrastructure/pdf.
type PDFGenerator interface {
	InstitutionsPDF(list []*entity.Institution, generatedAt time.Time) ([]byte, error)
	// StaffPDF recibe el nombre de cada institución indexado por ID.
	StaffPDF(list []*entity.StaffMember, institutionNames map[string]string, generatedAt time.Time) ([]byte, error)
	StockReportPDF(report *dto.StockReportDTO, generatedAt time.Time) ([]byte, error)
}

// StockXMLExporter serializa el reporte de stock a XML. Implementado en infrastructure/xmlexport.
type StockXMLExporter interface {
	StockReportXML(report *dto.StockReportDTO, generatedAt time.Time) ([]byte, error)
}
