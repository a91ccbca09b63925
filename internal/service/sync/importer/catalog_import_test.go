package importer

import (
	"context"
	"testing"

	"github.com/cyclohire/cyclohire/internal/logger"
	"github.com/cyclohire/cyclohire/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type CatalogImporterSuite struct {
	suite.Suite
	ctx         context.Context
	catalogRepo *testutil.InMemoryCatalogStore
	importer    *CatalogImporter
}

func TestCatalogImporter(t *testing.T) {
	suite.Run(t, new(CatalogImporterSuite))
}

func (s *CatalogImporterSuite) SetupTest() {
	s.ctx = testutil.SetupContext()
	s.catalogRepo = testutil.NewInMemoryCatalogStore()
	s.importer = NewCatalogImporter(s.catalogRepo, logger.GetLogger())
}

const validCSV = `name,kind,bike_type,hourly_rate,daily_rate,purchase_price,barcode
City bike,bike,muscular,5,20,400,BC-001
E-bike,bike,electric,10,35,1800,BC-002
Helmet,accessory,,1,3,25,BC-100
`

func (s *CatalogImporterSuite) TestImportValidSheet() {
	summary, err := s.importer.ImportFromBytes(s.ctx, []byte(validCSV))
	s.NoError(err)
	s.Equal(3, summary.TotalRows)
	s.Equal(3, summary.ItemsCreated)
	s.Zero(summary.ItemsSkipped)
	s.Empty(summary.Errors)

	snapshot, err := s.catalogRepo.GetSnapshot(s.ctx)
	s.NoError(err)
	s.Len(snapshot, 3)
}

func (s *CatalogImporterSuite) TestImportSkipsBadRows() {
	csv := `name,kind,bike_type,hourly_rate,daily_rate,purchase_price,barcode
City bike,bike,muscular,5,20,400,BC-001
,bike,muscular,5,20,400,BC-002
Mystery,bike,hoverboard,5,20,400,BC-003
`
	summary, err := s.importer.ImportFromBytes(s.ctx, []byte(csv))
	s.NoError(err)
	s.Equal(3, summary.TotalRows)
	s.Equal(1, summary.ItemsCreated)
	s.Equal(2, summary.ItemsSkipped)
	s.Len(summary.Errors, 2)

	snapshot, err := s.catalogRepo.GetSnapshot(s.ctx)
	s.NoError(err)
	s.Len(snapshot, 1)
}

func (s *CatalogImporterSuite) TestImportRejectsMalformedCSV() {
	_, err := s.importer.ImportFromBytes(s.ctx, []byte("name,kind\n\"unterminated"))
	s.Error(err)
}

func (s *CatalogImporterSuite) TestImportEmptySheet() {
	summary, err := s.importer.ImportFromBytes(s.ctx, []byte("name,kind,bike_type,hourly_rate,daily_rate,purchase_price,barcode\n"))
	s.NoError(err)
	s.Zero(summary.TotalRows)
	s.Zero(summary.ItemsCreated)
}
