package router

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/docline/docline-api/config"
	"github.com/docline/docline-api/internal/application"
	"github.com/docline/docline-api/internal/auth"
	pginfra "github.com/docline/docline-api/internal/infrastructure/postgres"
	handlers "github.com/docline/docline-api/internal/interface/http"
	"github.com/docline/docline-api/internal/router/modules"
	"github.com/docline/docline-api/pkg/helpers"
)

// Deps holds the infrastructure handles constructed in main. Every component
// receives what it needs through its constructor; there is no shared
// singleton state.
type Deps struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	Pool   *pgxpool.Pool
	Redis  *redis.Client
	Tokens *auth.TokenManager
	GCS    *storage.Client
	ES     *elasticsearch.Client
	Mail   *helpers.RabbitPublisher
}

// InitModules builds repositories, services and handlers and registers every
// feature module with the registry.
func InitModules(r *Registry, d Deps) {
	accounts := pginfra.NewAccountRepository(d.Pool)
	patients := pginfra.NewPatientRepository(d.Pool)
	doctors := pginfra.NewDoctorRepository(d.Pool)
	appointments := pginfra.NewAppointmentRepository(d.Pool)

	accountSvc := application.NewAccountService(accounts, d.Tokens, d.Logger, d.Mail)
	patientSvc := application.NewPatientService(patients, accounts, d.Logger)
	doctorSvc := application.NewDoctorService(doctors, accounts, d.GCS, d.Cfg.GCSBucket, d.ES, d.Cfg.ESDoctorsIndex, d.Logger)
	appointmentSvc := application.NewAppointmentService(appointments, patients, doctors, accounts, d.Logger, d.Mail)

	r.Add(modules.NewAccountModule(handlers.NewAccountHandler(accountSvc, d.Logger), d.Tokens, d.Redis))
	r.Add(modules.NewPatientModule(handlers.NewPatientHandler(patientSvc, d.Logger), d.Tokens, d.Redis))
	r.Add(modules.NewDoctorModule(handlers.NewDoctorHandler(doctorSvc, d.Logger), d.Tokens, d.Redis))
	r.Add(modules.NewAppointmentModule(handlers.NewAppointmentHandler(appointmentSvc, d.Logger), d.Tokens, d.Redis))
}
