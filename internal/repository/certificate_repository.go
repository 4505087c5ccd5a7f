package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/lshigami/vidcert/internal/model"
	"gorm.io/gorm"
)

//go:generate mockgen -source=certificate_repository.go -destination=mock/certificate_repository_mock.go

var ErrCertificateNotFound = errors.New("certificate not found")

type CertificateRepository interface {
	Create(ctx context.Context, cert *model.Certificate) error
	FindByID(ctx context.Context, id string) (*model.Certificate, error)
	FindAllByUser(ctx context.Context, userID string) ([]model.Certificate, error)
}

type certificateRepository struct {
	db *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) CertificateRepository {
	return &certificateRepository{db: db}
}

func (r *certificateRepository) Create(ctx context.Context, cert *model.Certificate) error {
	if err := r.db.WithContext(ctx).Create(cert).Error; err != nil {
		return fmt.Errorf("insert certificate: %w", err)
	}
	return nil
}

// FindByID returns ErrCertificateNotFound when no row matches id exactly.
func (r *certificateRepository) FindByID(ctx context.Context, id string) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&cert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCertificateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select certificate %s: %w", id, err)
	}
	return &cert, nil
}

func (r *certificateRepository) FindAllByUser(ctx context.Context, userID string) ([]model.Certificate, error) {
	var certs []model.Certificate
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("issued_at DESC").
		Find(&certs).Error
	if err != nil {
		return nil, fmt.Errorf("select certificates for user %s: %w", userID, err)
	}
	return certs, nil
}
