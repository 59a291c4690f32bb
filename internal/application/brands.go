package application

import (
	"context"
	"fmt"

	"inventory-admin/internal/domain"
	"inventory-admin/internal/transaction"
)

func validateBrand(b domain.Brand) error {
	var v transaction.Validator
	v.Check(domain.ValidName(b.Name), domain.MsgName).
		Check(domain.ValidDescription(b.Description), domain.MsgDescription)
	return v.Err()
}

func (s *AdminService) brandActivator() activator[domain.Brand] {
	return activator[domain.Brand]{
		get:    s.repos.Brands.Get,
		update: s.repos.Brands.Update,
		record: func(b *domain.Brand) *domain.Record { return &b.Record },
	}
}

func (s *AdminService) CreateBrand(ctx context.Context, in domain.Brand) (domain.Brand, error) {
	if err := validateBrand(in); err != nil {
		return domain.Brand{}, err
	}
	return transaction.ReadWrite(ctx, s.tx, func(ctx context.Context) (domain.Brand, error) {
		_, err := s.repos.Brands.GetByName(ctx, in.Name)
		if err := ensureAbsent(err); err != nil {
			return domain.Brand{}, fmt.Errorf("brand name %q: %w", in.Name, err)
		}
		b := domain.Brand{Record: s.newRecord(), Name: in.Name, Description: in.Description}
		return s.repos.Brands.Create(ctx, b)
	})
}

func (s *AdminService) GetBrand(ctx context.Context, id string) (domain.Brand, error) {
	return get(ctx, s, id, s.repos.Brands.Get)
}

func (s *AdminService) ListBrands(ctx context.Context, f domain.ListFilter) ([]domain.Brand, error) {
	return list(ctx, s, f, s.repos.Brands.List)
}

func (s *AdminService) UpdateBrand(ctx context.Context, id string, in domain.Brand) (domain.Brand, error) {
	if err := validateID(id); err != nil {
		return domain.Brand{}, err
	}
	if err := validateBrand(in); err != nil {
		return domain.Brand{}, err
	}
	return transaction.ReadWrite(ctx, s.tx, func(ctx context.Context) (domain.Brand, error) {
		cur, err := s.repos.Brands.Get(ctx, id)
		if err != nil {
			return domain.Brand{}, err
		}
		other, err := s.repos.Brands.GetByName(ctx, in.Name)
		if err := ensureUnique(other.ID, err, id); err != nil {
			return domain.Brand{}, fmt.Errorf("brand name %q: %w", in.Name, err)
		}
		cur.Name, cur.Description = in.Name, in.Description
		cur.UpdatedAt = s.clock.Now()
		return s.repos.Brands.Update(ctx, cur)
	})
}

func (s *AdminService) DeleteBrand(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return s.tx.ReadWriteNoResult(ctx, func(ctx context.Context) error {
		if _, err := s.repos.Brands.Get(ctx, id); err != nil {
			return err
		}
		refs, err := s.repos.Products.List(ctx, domain.ListFilter{BrandID: id, Limit: 1})
		if err := ensureUnreferenced(refs, err, "products"); err != nil {
			return err
		}
		return s.repos.Brands.Delete(ctx, id)
	})
}

func (s *AdminService) SetBrandActive(ctx context.Context, id string, active bool) (domain.Brand, error) {
	return setOneActive(ctx, s, id, active, s.brandActivator())
}

func (s *AdminService) SetBrandsActive(ctx context.Context, ids []string, active bool) ([]domain.Brand, error) {
	return setActive(ctx, s, ids, active, s.brandActivator())
}
