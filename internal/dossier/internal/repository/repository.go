package repository

import (
	"context"

	"github.com/healthproof/healthproof/internal/dossier/internal/domain"
	"github.com/healthproof/healthproof/internal/dossier/internal/repository/dao"
)

var ErrJobRunning = dao.ErrJobRunning

type DossierRepository interface {
	Acquire(ctx context.Context, claimId int64) error
	MarkSuccess(ctx context.Context, claimId int64) error
	MarkFailed(ctx context.Context, claimId int64) error
	Resolve(ctx context.Context, claimId int64, d domain.Dossier) error
}

type dossierRepository struct {
	dao dao.DossierJobDAO
}

func NewDossierRepository(dao dao.DossierJobDAO) DossierRepository {
	return &dossierRepository{dao: dao}
}

func (r *dossierRepository) Acquire(ctx context.Context, claimId int64) error {
	return r.dao.Acquire(ctx, claimId)
}

func (r *dossierRepository) MarkSuccess(ctx context.Context, claimId int64) error {
	return r.dao.MarkSuccess(ctx, claimId)
}

func (r *dossierRepository) MarkFailed(ctx context.Context, claimId int64) error {
	return r.dao.MarkFailed(ctx, claimId)
}

func (r *dossierRepository) Resolve(ctx context.Context, claimId int64, d domain.Dossier) error {
	return r.dao.ResolveMarket(ctx, claimId, d.Verdict, d.Confidence, d.Summary)
}
