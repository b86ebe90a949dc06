package postgres

import (
	"gorm.io/gorm"

	"github.com/kingrain94/clinic-admin-api/internal/config"
	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
)

type postgresRepository struct {
	users         *UserRepository
	segments      *CRUDRepository[domain.Segment, *domain.Segment]
	modules       *CRUDRepository[domain.Module, *domain.Module]
	plans         *CRUDRepository[domain.Plan, *domain.Plan]
	planModules   *CRUDRepository[domain.PlanModule, *domain.PlanModule]
	subscribers   *SubscriberRepository
	patients      *CRUDRepository[domain.Patient, *domain.Patient]
	anamneses     *CRUDRepository[domain.Anamnesis, *domain.Anamnesis]
	appointments  *CRUDRepository[domain.Appointment, *domain.Appointment]
	clinicalCosts *CRUDRepository[domain.ClinicalCost, *domain.ClinicalCost]
	fixedCosts    *CRUDRepository[domain.FixedCost, *domain.FixedCost]
	variableCosts *CRUDRepository[domain.VariableCost, *domain.VariableCost]
	insumos       *CRUDRepository[domain.Insumo, *domain.Insumo]
	stock         *StockRepository
	payables      *CRUDRepository[domain.Payable, *domain.Payable]
	receivables   *CRUDRepository[domain.Receivable, *domain.Receivable]
}

func NewPostgresRepository(dbConnections *config.DatabaseConnections) repository.Repository {
	w, r := dbConnections.Writer, dbConnections.Reader
	return &postgresRepository{
		users:         NewUserRepository(w, r),
		segments:      NewCRUDRepository[domain.Segment](w, r),
		modules:       NewCRUDRepository[domain.Module](w, r),
		plans:         NewCRUDRepository[domain.Plan](w, r),
		planModules:   NewCRUDRepository[domain.PlanModule](w, r),
		subscribers:   NewSubscriberRepository(w, r),
		patients:      NewCRUDRepository[domain.Patient](w, r),
		anamneses:     NewCRUDRepository[domain.Anamnesis](w, r),
		appointments:  NewCRUDRepository[domain.Appointment](w, r),
		clinicalCosts: NewCRUDRepository[domain.ClinicalCost](w, r),
		fixedCosts:    NewCRUDRepository[domain.FixedCost](w, r),
		variableCosts: NewCRUDRepository[domain.VariableCost](w, r),
		insumos:       NewCRUDRepository[domain.Insumo](w, r),
		stock:         NewStockRepository(w, r),
		payables:      NewCRUDRepository[domain.Payable](w, r),
		receivables:   NewCRUDRepository[domain.Receivable](w, r),
	}
}

func (p *postgresRepository) Users() repository.UserRepository { return p.users }

func (p *postgresRepository) Segments() repository.Store[domain.Segment] { return p.segments }

func (p *postgresRepository) Modules() repository.Store[domain.Module] { return p.modules }

func (p *postgresRepository) Plans() repository.Store[domain.Plan] { return p.plans }

func (p *postgresRepository) PlanModules() repository.Store[domain.PlanModule] { return p.planModules }

func (p *postgresRepository) Subscribers() repository.SubscriberRepository { return p.subscribers }

func (p *postgresRepository) Patients() repository.Store[domain.Patient] { return p.patients }

func (p *postgresRepository) Anamneses() repository.Store[domain.Anamnesis] { return p.anamneses }

func (p *postgresRepository) Appointments() repository.Store[domain.Appointment] {
	return p.appointments
}

func (p *postgresRepository) ClinicalCosts() repository.Store[domain.ClinicalCost] {
	return p.clinicalCosts
}

func (p *postgresRepository) FixedCosts() repository.Store[domain.FixedCost] { return p.fixedCosts }

func (p *postgresRepository) VariableCosts() repository.Store[domain.VariableCost] {
	return p.variableCosts
}

func (p *postgresRepository) Insumos() repository.Store[domain.Insumo] { return p.insumos }

func (p *postgresRepository) Stock() repository.StockRepository { return p.stock }

func (p *postgresRepository) Payables() repository.Store[domain.Payable] { return p.payables }

func (p *postgresRepository) Receivables() repository.Store[domain.Receivable] {
	return p.receivables
}

// Models lists every table the service owns, in dependency order.
func Models() []any {
	return []any{
		&domain.Segment{},
		&domain.Module{},
		&domain.Plan{},
		&domain.PlanModule{},
		&domain.Subscriber{},
		&domain.User{},
		&domain.Patient{},
		&domain.Anamnesis{},
		&domain.Appointment{},
		&domain.ClinicalCost{},
		&domain.FixedCost{},
		&domain.VariableCost{},
		&domain.Insumo{},
		&domain.StockMovement{},
		&domain.Payable{},
		&domain.Receivable{},
	}
}

// Migrate creates or extends the schema. Indexes that gorm tags cannot
// express are created afterwards.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	statements := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_patients_subscriber_cpf ON patients (subscriber_id, cpf) WHERE is_active`,
		`CREATE INDEX IF NOT EXISTS idx_appointments_subscriber_start ON appointments (subscriber_id, start_time)`,
		`CREATE INDEX IF NOT EXISTS idx_movements_subscriber_created ON insumo_movimentacoes (subscriber_id, created_at)`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
