package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/docline/docline-api/internal/auth"
	"github.com/docline/docline-api/internal/domain/entity"
	"github.com/docline/docline-api/internal/domain/repository"
	"github.com/docline/docline-api/pkg/helpers"
)

// DoctorService manages the doctor directory: profiles in Postgres, a search
// copy in Elasticsearch and profile photos in GCS.
type DoctorService struct {
	Doctors   repository.DoctorRepository
	Accounts  repository.AccountRepository
	GCS       *storage.Client
	GCSBucket string
	ES        *elasticsearch.Client
	ESIndex   string
	Logger    *logrus.Logger
}

func NewDoctorService(doctors repository.DoctorRepository, accounts repository.AccountRepository, gcs *storage.Client, gcsBucket string, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *DoctorService {
	return &DoctorService{
		Doctors:   doctors,
		Accounts:  accounts,
		GCS:       gcs,
		GCSBucket: gcsBucket,
		ES:        es,
		ESIndex:   esIndex,
		Logger:    logger,
	}
}

// List returns the directory. Every signed-in caller resolves to the full
// scope here.
func (s *DoctorService) List(ctx context.Context, sess auth.Session) ([]entity.DoctorProfile, error) {
	return s.Doctors.List(ctx, auth.VisibleScope(sess, auth.KindDoctor))
}

func (s *DoctorService) GetByID(ctx context.Context, id int64) (*entity.DoctorProfile, error) {
	return s.Doctors.GetByID(ctx, id)
}

type CreateDoctorInput struct {
	Email      string
	Password   string
	Name       string
	Speciality string
	Hospital   string
	About      string
}

// Create registers a DOCTOR account with its profile atomically. Admin-only;
// the route guard enforces that.
func (s *DoctorService) Create(ctx context.Context, in CreateDoctorInput) (*entity.DoctorProfile, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	acct := &entity.Account{
		Email:        in.Email,
		PasswordHash: hash,
		Roles:        entity.NewRoleSet(entity.RoleDoctor),
	}
	profile := &entity.DoctorProfile{
		Name:       in.Name,
		Speciality: in.Speciality,
		Hospital:   in.Hospital,
		About:      in.About,
	}
	if err := s.Accounts.CreateDoctorAccount(ctx, acct, profile); err != nil {
		return nil, translateUniqueViolation(err)
	}
	s.indexDoctor(ctx, profile)
	return profile, nil
}

type UpdateDoctorInput struct {
	Name       string
	Speciality string
	Hospital   string
	About      string
}

func (s *DoctorService) Update(ctx context.Context, sess auth.Session, id int64, in UpdateDoctorInput) (*entity.DoctorProfile, error) {
	if err := auth.Authorize(sess, auth.OwnedBy(id), auth.ActionUpdate); err != nil {
		return nil, err
	}
	d, err := s.Doctors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		d.Name = in.Name
	}
	if in.Speciality != "" {
		d.Speciality = in.Speciality
	}
	if in.Hospital != "" {
		d.Hospital = in.Hospital
	}
	if in.About != "" {
		d.About = in.About
	}
	if err := s.Doctors.Update(ctx, d); err != nil {
		return nil, err
	}
	s.indexDoctor(ctx, d)
	return d, nil
}

func (s *DoctorService) Delete(ctx context.Context, id int64) error {
	return s.Accounts.Delete(ctx, id)
}

// UploadPhoto stores a profile photo in GCS and records its public URL.
func (s *DoctorService) UploadPhoto(ctx context.Context, sess auth.Session, id int64, r io.Reader, filename, contentType string) (string, error) {
	if err := auth.Authorize(sess, auth.OwnedBy(id), auth.ActionUpdate); err != nil {
		return "", err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	d, err := s.Doctors.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("doctors", strconv.FormatInt(id, 10), uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	d.Photo = url
	if err := s.Doctors.Update(ctx, d); err != nil {
		return "", err
	}
	s.indexDoctor(ctx, d)
	return url, nil
}

// indexDoctor mirrors the profile into the search index. Indexing failures
// are logged, never fatal for the request.
func (s *DoctorService) indexDoctor(ctx context.Context, d *entity.DoctorProfile) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         d.ID,
		"name":       d.Name,
		"speciality": d.Speciality,
		"hospital":   d.Hospital,
		"photo":      d.Photo,
		"about":      d.About,
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESIndex,
		DocumentID: strconv.FormatInt(d.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("doctor_id", d.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("doctor_id", d.ID).Warn("es index response error")
	}
}

// Search runs a multi_match over the directory fields.
func (s *DoctorService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "speciality", "hospital"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
