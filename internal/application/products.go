package application

import (
	"context"
	"fmt"

	"inventory-admin/internal/domain"
	"inventory-admin/internal/transaction"
)

func validateProduct(p domain.Product) error {
	var v transaction.Validator
	v.Check(domain.ValidSKU(p.SKU), domain.MsgSKU).
		Check(domain.ValidName(p.Name), domain.MsgName).
		Check(domain.ValidDescription(p.Description), domain.MsgDescription).
		Check(domain.ValidID(p.BrandID), domain.MsgBrandID).
		Check(domain.ValidID(p.ProviderID), domain.MsgProviderID).
		Check(domain.ValidPrice(p.PriceCents), domain.MsgPrice)
	return v.Err()
}

func (s *AdminService) productActivator() activator[domain.Product] {
	return activator[domain.Product]{
		get:    s.repos.Products.Get,
		update: s.repos.Products.Update,
		record: func(p *domain.Product) *domain.Record { return &p.Record },
	}
}

// checkProductRefs re-reads brand and provider inside the current attempt.
func (s *AdminService) checkProductRefs(ctx context.Context, p domain.Product) error {
	if _, err := s.repos.Brands.Get(ctx, p.BrandID); err != nil {
		return fmt.Errorf("brand %s: %w", p.BrandID, err)
	}
	if _, err := s.repos.Providers.Get(ctx, p.ProviderID); err != nil {
		return fmt.Errorf("provider %s: %w", p.ProviderID, err)
	}
	return nil
}

func (s *AdminService) CreateProduct(ctx context.Context, in domain.Product) (domain.Product, error) {
	if err := validateProduct(in); err != nil {
		return domain.Product{}, err
	}
	return transaction.ReadWrite(ctx, s.tx, func(ctx context.Context) (domain.Product, error) {
		_, err := s.repos.Products.GetBySKU(ctx, in.SKU)
		if err := ensureAbsent(err); err != nil {
			return domain.Product{}, fmt.Errorf("product sku %q: %w", in.SKU, err)
		}
		if err := s.checkProductRefs(ctx, in); err != nil {
			return domain.Product{}, err
		}
		p := in
		p.Record = s.newRecord()
		return s.repos.Products.Create(ctx, p)
	})
}

func (s *AdminService) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	return get(ctx, s, id, s.repos.Products.Get)
}

func (s *AdminService) ListProducts(ctx context.Context, f domain.ListFilter) ([]domain.Product, error) {
	return list(ctx, s, f, s.repos.Products.List)
}

func (s *AdminService) UpdateProduct(ctx context.Context, id string, in domain.Product) (domain.Product, error) {
	if err := validateID(id); err != nil {
		return domain.Product{}, err
	}
	if err := validateProduct(in); err != nil {
		return domain.Product{}, err
	}
	return transaction.ReadWrite(ctx, s.tx, func(ctx context.Context) (domain.Product, error) {
		cur, err := s.repos.Products.Get(ctx, id)
		if err != nil {
			return domain.Product{}, err
		}
		other, err := s.repos.Products.GetBySKU(ctx, in.SKU)
		if err := ensureUnique(other.ID, err, id); err != nil {
			return domain.Product{}, fmt.Errorf("product sku %q: %w", in.SKU, err)
		}
		if err := s.checkProductRefs(ctx, in); err != nil {
			return domain.Product{}, err
		}
		cur.SKU, cur.Name, cur.Description = in.SKU, in.Name, in.Description
		cur.BrandID, cur.ProviderID, cur.PriceCents = in.BrandID, in.ProviderID, in.PriceCents
		cur.UpdatedAt = s.clock.Now()
		return s.repos.Products.Update(ctx, cur)
	})
}

func (s *AdminService) DeleteProduct(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return s.tx.ReadWriteNoResult(ctx, func(ctx context.Context) error {
		if _, err := s.repos.Products.Get(ctx, id); err != nil {
			return err
		}
		refs, err := s.repos.Inventory.List(ctx, domain.ListFilter{ProductID: id, Limit: 1})
		if err := ensureUnreferenced(refs, err, "inventory records"); err != nil {
			return err
		}
		return s.repos.Products.Delete(ctx, id)
	})
}

func (s *AdminService) SetProductActive(ctx context.Context, id string, active bool) (domain.Product, error) {
	return setOneActive(ctx, s, id, active, s.productActivator())
}

func (s *AdminService) SetProductsActive(ctx context.Context, ids []string, active bool) ([]domain.Product, error) {
	return setActive(ctx, s, ids, active, s.productActivator())
}
