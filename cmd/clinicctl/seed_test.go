package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
	"github.com/kingrain94/clinic-admin-api/internal/repository/memory"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
	"github.com/kingrain94/clinic-admin-api/pkg/logger"
)

const testCatalog = `
segments:
  - nome: Odontologia
modules:
  - nome: Pacientes
    codigo: pacientes
  - nome: Estoque
    codigo: ESTOQUE
plans:
  - nome: Basico
    preco: "99.90"
    ciclo_cobranca: MENSAL
    segment: Odontologia
    publico: true
    modules:
      - codigo: PACIENTES
        is_free: true
      - codigo: estoque
        preco: "19.90"
        trial_days: 7
platform:
  nome: Plataforma
  documento: 11.222.333/0001-81
  email: plataforma@example.com
`

type SeederTestSuite struct {
	suite.Suite
	repo    repository.Repository
	seeder  *Seeder
	catalog *Catalog
	all     tenant.Scope
}

func (suite *SeederTestSuite) SetupTest() {
	suite.repo = memory.NewRepository()
	suite.seeder = NewSeeder(suite.repo, logger.NewNop())
	suite.all = tenant.Unrestricted("", string(domain.RoleSuperAdmin))

	path := filepath.Join(suite.T().TempDir(), "catalog.yaml")
	suite.Require().NoError(os.WriteFile(path, []byte(testCatalog), 0o600))
	catalog, err := LoadCatalog(path)
	suite.Require().NoError(err)
	suite.catalog = catalog
}

func (suite *SeederTestSuite) countOf(n int64, err error) int64 {
	suite.Require().NoError(err)
	return n
}

func (suite *SeederTestSuite) TestSeed_CreatesCatalogueAndAdmin() {
	// Arrange
	ctx := context.Background()
	admin := &AdminAccount{Name: "Root Admin", Email: "root@example.com", Password: "super-secret"}

	// Act
	err := suite.seeder.Seed(ctx, suite.catalog, admin)

	// Assert
	suite.Require().NoError(err)
	suite.Equal(int64(1), suite.countOf(suite.repo.Segments().Count(ctx, suite.all)))
	suite.Equal(int64(2), suite.countOf(suite.repo.Modules().Count(ctx, suite.all)))
	suite.Equal(int64(2), suite.countOf(suite.repo.PlanModules().Count(ctx, suite.all)))

	plans, _, err := suite.repo.Plans().List(ctx, suite.all, repository.Query{Page: repository.NewPagination(1, 10)})
	suite.Require().NoError(err)
	suite.Require().Len(plans, 1)
	suite.Equal("99.9", plans[0].Preco.String())
	suite.NotNil(plans[0].SegmentID)

	subscribers, _, err := suite.repo.Subscribers().List(ctx, suite.all, repository.Query{Page: repository.NewPagination(1, 10)})
	suite.Require().NoError(err)
	suite.Require().Len(subscribers, 1)
	suite.Equal("11222333000181", subscribers[0].Documento)

	user, err := suite.repo.Users().GetByEmail(ctx, "root@example.com")
	suite.Require().NoError(err)
	suite.Equal(domain.RoleSuperAdmin, user.Role)
	suite.Equal(subscribers[0].ID, user.SubscriberID)
}

func (suite *SeederTestSuite) TestSeed_IsIdempotent() {
	// Arrange
	ctx := context.Background()
	admin := &AdminAccount{Name: "Root Admin", Email: "root@example.com", Password: "super-secret"}
	suite.Require().NoError(suite.seeder.Seed(ctx, suite.catalog, admin))

	// Act
	err := suite.seeder.Seed(ctx, suite.catalog, admin)

	// Assert
	suite.Require().NoError(err)
	suite.Equal(int64(1), suite.countOf(suite.repo.Segments().Count(ctx, suite.all)))
	suite.Equal(int64(2), suite.countOf(suite.repo.Modules().Count(ctx, suite.all)))
	suite.Equal(int64(1), suite.countOf(suite.repo.Plans().Count(ctx, suite.all)))
	suite.Equal(int64(2), suite.countOf(suite.repo.PlanModules().Count(ctx, suite.all)))
	suite.Equal(int64(1), suite.countOf(suite.repo.Subscribers().Count(ctx, suite.all)))
}

func (suite *SeederTestSuite) TestSeed_WithoutAdminSkipsUser() {
	// Arrange
	ctx := context.Background()

	// Act
	err := suite.seeder.Seed(ctx, suite.catalog, nil)

	// Assert
	suite.Require().NoError(err)
	_, err = suite.repo.Users().GetByEmail(ctx, "root@example.com")
	suite.True(domain.IsNotFound(err))
}

func (suite *SeederTestSuite) TestSeed_UnknownModuleInPlan() {
	// Arrange
	suite.catalog.Plans[0].Modules[0].Codigo = "FATURAMENTO"

	// Act
	err := suite.seeder.Seed(context.Background(), suite.catalog, nil)

	// Assert
	suite.Error(err)
	suite.Contains(err.Error(), "unknown module")
}

func (suite *SeederTestSuite) TestSeed_InvalidPrice() {
	// Arrange
	suite.catalog.Plans[0].Preco = "noventa"

	// Act
	err := suite.seeder.Seed(context.Background(), suite.catalog, nil)

	// Assert
	suite.Error(err)
	suite.Contains(err.Error(), "invalid amount")
}

func (suite *SeederTestSuite) TestLoadCatalog_MissingFile() {
	// Act
	_, err := LoadCatalog(filepath.Join(suite.T().TempDir(), "missing.yaml"))

	// Assert
	suite.Error(err)
}

func TestSeederTestSuite(t *testing.T) {
	suite.Run(t, new(SeederTestSuite))
}
