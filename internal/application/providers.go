package application

import (
	"context"
	"fmt"

	"inventory-admin/internal/domain"
	"inventory-admin/internal/transaction"
)

func validateProvider(p domain.Provider) error {
	var v transaction.Validator
	v.Check(domain.ValidName(p.Name), domain.MsgName).
		Check(domain.ValidEmail(p.Email), domain.MsgEmail).
		Check(domain.ValidPhone(p.Phone), domain.MsgPhone)
	return v.Err()
}

func (s *AdminService) providerActivator() activator[domain.Provider] {
	return activator[domain.Provider]{
		get:    s.repos.Providers.Get,
		update: s.repos.Providers.Update,
		record: func(p *domain.Provider) *domain.Record { return &p.Record },
	}
}

func (s *AdminService) CreateProvider(ctx context.Context, in domain.Provider) (domain.Provider, error) {
	if err := validateProvider(in); err != nil {
		return domain.Provider{}, err
	}
	return transaction.ReadWrite(ctx, s.tx, func(ctx context.Context) (domain.Provider, error) {
		_, err := s.repos.Providers.GetByName(ctx, in.Name)
		if err := ensureAbsent(err); err != nil {
			return domain.Provider{}, fmt.Errorf("provider name %q: %w", in.Name, err)
		}
		p := domain.Provider{Record: s.newRecord(), Name: in.Name, Email: in.Email, Phone: in.Phone}
		return s.repos.Providers.Create(ctx, p)
	})
}

func (s *AdminService) GetProvider(ctx context.Context, id string) (domain.Provider, error) {
	return get(ctx, s, id, s.repos.Providers.Get)
}

func (s *AdminService) ListProviders(ctx context.Context, f domain.ListFilter) ([]domain.Provider, error) {
	return list(ctx, s, f, s.repos.Providers.List)
}

func (s *AdminService) UpdateProvider(ctx context.Context, id string, in domain.Provider) (domain.Provider, error) {
	if err := validateID(id); err != nil {
		return domain.Provider{}, err
	}
	if err := validateProvider(in); err != nil {
		return domain.Provider{}, err
	}
	return transaction.ReadWrite(ctx, s.tx, func(ctx context.Context) (domain.Provider, error) {
		cur, err := s.repos.Providers.Get(ctx, id)
		if err != nil {
			return domain.Provider{}, err
		}
		other, err := s.repos.Providers.GetByName(ctx, in.Name)
		if err := ensureUnique(other.ID, err, id); err != nil {
			return domain.Provider{}, fmt.Errorf("provider name %q: %w", in.Name, err)
		}
		cur.Name, cur.Email, cur.Phone = in.Name, in.Email, in.Phone
		cur.UpdatedAt = s.clock.Now()
		return s.repos.Providers.Update(ctx, cur)
	})
}

func (s *AdminService) DeleteProvider(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return s.tx.ReadWriteNoResult(ctx, func(ctx context.Context) error {
		if _, err := s.repos.Providers.Get(ctx, id); err != nil {
			return err
		}
		refs, err := s.repos.Products.List(ctx, domain.ListFilter{ProviderID: id, Limit: 1})
		if err := ensureUnreferenced(refs, err, "products"); err != nil {
			return err
		}
		return s.repos.Providers.Delete(ctx, id)
	})
}

func (s *AdminService) SetProviderActive(ctx context.Context, id string, active bool) (domain.Provider, error) {
	return setOneActive(ctx, s, id, active, s.providerActivator())
}

func (s *AdminService) SetProvidersActive(ctx context.Context, ids []string, active bool) ([]domain.Provider, error) {
	return setActive(ctx, s, ids, active, s.providerActivator())
}
