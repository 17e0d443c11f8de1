package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/docline/docline-api/config"
	"github.com/docline/docline-api/internal/domain/entity"
	"github.com/docline/docline-api/pkg/helpers"
)

type seedUser struct {
	id    int64
	email string
	roles entity.RoleSet
}

type seedPatient struct {
	id         int64
	name       string
	street     string
	number     string
	postalCode string
	city       string
	birthdate  time.Time
}

type seedDoctor struct {
	id               int64
	name             string
	speciality       string
	hospital         string
	photo            string
	about            string
	numberOfPatients int
	numberOfRatings  int
	rating           string
}

type seedAppointment struct {
	id           int64
	patientID    int64
	doctorID     int64
	date         time.Time
	description  string
	numberOfBeds int
	condition    string
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	users := []seedUser{
		{5, "admin@docline.dev", entity.NewRoleSet(entity.RoleAdmin, entity.RolePatient, entity.RoleDoctor)},
		{1, "emily.smith@gmail.com", entity.NewRoleSet(entity.RolePatient)},
		{2, "david.brown@gmail.com", entity.NewRoleSet(entity.RolePatient)},
		{3, "sophia.davis@gmail.com", entity.NewRoleSet(entity.RolePatient)},
		{10, "olivia.anderson@gmail.com", entity.NewRoleSet(entity.RoleDoctor)},
		{11, "michael.brown@gmail.com", entity.NewRoleSet(entity.RoleDoctor)},
		{12, "john.wilson@gmail.com", entity.NewRoleSet(entity.RoleDoctor)},
	}
	for _, u := range users {
		roles, err := json.Marshal(u.roles)
		if err != nil {
			log.Fatalf("failed to marshal roles: %v", err)
		}
		if _, err := db.Exec(`
			INSERT INTO users (id, email, password_hash, roles)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, roles = EXCLUDED.roles
		`, u.id, u.email, hash, roles); err != nil {
			log.Fatalf("failed to seed user %d: %v", u.id, err)
		}
	}

	patients := []seedPatient{
		{1, "Emily Smith", "789 Oak Street", "Apt 3C", "54321", "Metropolitan City", date(2001, 1, 1)},
		{2, "David Brown", "456 Elm Avenue", "Suite 5D", "12345", "Urbanville", date(2002, 2, 2)},
		{3, "Sophia Davis", "101 Pine Road", "Unit 7B", "67890", "Cityscape", date(2003, 3, 3)},
	}
	for _, p := range patients {
		if _, err := db.Exec(`
			INSERT INTO patients (id, name, street, number, postal_code, city, birthdate)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
		`, p.id, p.name, p.street, p.number, p.postalCode, p.city, p.birthdate); err != nil {
			log.Fatalf("failed to seed patient %d: %v", p.id, err)
		}
	}

	doctors := []seedDoctor{
		{
			id: 10, name: "Dr. Olivia Anderson", speciality: "Cardiologist",
			hospital: "AZ Groeninge", numberOfPatients: 3, numberOfRatings: 5, rating: "4.8",
			about: "Dr. Olivia Anderson is a dedicated and experienced cardiologist with a patient-first approach.",
		},
		{
			id: 11, name: "Dr. Michael Brown Smith", speciality: "Dentist",
			hospital: "AZ Sint-Jan Brugge-Oostende", numberOfPatients: 2, numberOfRatings: 6, rating: "4.5",
			about: "Dr. Michael Brown Smith is known for his gentle and efficient dental procedures.",
		},
		{
			id: 12, name: "Dr. John Davis Wilson", speciality: "Orthopedic Surgeon",
			hospital: "AZ Turnhout", numberOfPatients: 1, numberOfRatings: 7, rating: "4.7",
			about: "Dr. John Davis Wilson specializes in disorders of the musculoskeletal system.",
		},
	}
	for _, d := range doctors {
		if _, err := db.Exec(`
			INSERT INTO doctors (id, name, speciality, hospital, photo, about,
				number_of_patients, number_of_ratings, rating)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
		`, d.id, d.name, d.speciality, d.hospital, d.photo, d.about,
			d.numberOfPatients, d.numberOfRatings, d.rating); err != nil {
			log.Fatalf("failed to seed doctor %d: %v", d.id, err)
		}
	}

	appointments := []seedAppointment{
		{1, 1, 10, date(2026, 12, 15).Add(8*time.Hour + 15*time.Minute), "Annual Health Checkup", 3, "Chest pain and shortness of breath"},
		{2, 2, 11, date(2026, 11, 25).Add(15*time.Hour + 15*time.Minute), "Dental Cleaning", 2, "Toothache and cavity"},
		{3, 3, 12, date(2026, 10, 30).Add(12*time.Hour + 45*time.Minute), "Orthopedic Consultation", 1, "Knee pain and difficulty walking"},
		{4, 1, 10, date(2026, 12, 18).Add(10*time.Hour + 30*time.Minute), "Eye Exam", 1, "Blurred vision and eye irritation"},
		{5, 2, 11, date(2026, 11, 28).Add(14*time.Hour), "Allergy Consultation", 2, "Persistent sneezing and itching"},
		{6, 3, 12, date(2026, 10, 25).Add(11*time.Hour + 15*time.Minute), "Gastroenterology Checkup", 3, "Abdominal pain and indigestion"},
		{7, 1, 10, date(2026, 12, 5).Add(9*time.Hour + 45*time.Minute), "Cardiology Follow-up", 1, "High blood pressure and palpitations"},
		{8, 2, 11, date(2026, 11, 10).Add(13*time.Hour + 20*time.Minute), "Pulmonology Evaluation", 2, "Persistent cough and shortness of breath"},
		{9, 3, 12, date(2026, 10, 15).Add(16*time.Hour), "Neurology Consultation", 3, "Headaches and dizziness"},
	}
	for _, a := range appointments {
		if _, err := db.Exec(`
			INSERT INTO appointments (id, patient_id, doctor_id, date, description, number_of_beds, condition)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO NOTHING
		`, a.id, a.patientID, a.doctorID, a.date, a.description, a.numberOfBeds, a.condition); err != nil {
			log.Fatalf("failed to seed appointment %d: %v", a.id, err)
		}
	}

	// Explicit ids bypass the serial sequences, advance them past the seed data.
	if _, err := db.Exec(`SELECT setval('users_id_seq', (SELECT MAX(id) FROM users))`); err != nil {
		log.Fatalf("failed to advance users sequence: %v", err)
	}
	if _, err := db.Exec(`SELECT setval('appointments_id_seq', (SELECT MAX(id) FROM appointments))`); err != nil {
		log.Fatalf("failed to advance appointments sequence: %v", err)
	}

	fmt.Printf("seeded %d users, %d patients, %d doctors, %d appointments (password: %s)\n",
		len(users), len(patients), len(doctors), len(appointments), password)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
