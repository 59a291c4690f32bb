package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"inventory-admin/internal/application"
	"inventory-admin/internal/domain"
	infraconfig "inventory-admin/internal/infrastructure/config"
	"inventory-admin/internal/infrastructure/logx"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Use(requestID())
	r.Use(traceID())
	r.Use(recoverer())
	r.Use(accessLog())

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if s.ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), infraconfig.DefaultReadyTimeout)
			defer cancel()
			if err := s.ping(ctx); err != nil {
				writeError(w, http.StatusServiceUnavailable, "storage not ready")
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	idem := s.idempotency()
	svc := s.svc

	r.Route("/brands", resource[domain.Brand, brandDTO, brandRequest]{
		list: svc.ListBrands,
		get:  svc.GetBrand,
		create: func(ctx context.Context, in brandRequest) (domain.Brand, error) {
			return svc.CreateBrand(ctx, in.toDomain())
		},
		update: func(ctx context.Context, id string, in brandRequest) (domain.Brand, error) {
			return svc.UpdateBrand(ctx, id, in.toDomain())
		},
		delete:  svc.DeleteBrand,
		setOne:  svc.SetBrandActive,
		setMany: svc.SetBrandsActive,
		dto:     toBrandDTO,
	}.mount(idem))

	r.Route("/providers", resource[domain.Provider, providerDTO, providerRequest]{
		list: svc.ListProviders,
		get:  svc.GetProvider,
		create: func(ctx context.Context, in providerRequest) (domain.Provider, error) {
			return svc.CreateProvider(ctx, in.toDomain())
		},
		update: func(ctx context.Context, id string, in providerRequest) (domain.Provider, error) {
			return svc.UpdateProvider(ctx, id, in.toDomain())
		},
		delete:  svc.DeleteProvider,
		setOne:  svc.SetProviderActive,
		setMany: svc.SetProvidersActive,
		dto:     toProviderDTO,
	}.mount(idem))

	r.Route("/warehouses", resource[domain.Warehouse, warehouseDTO, warehouseRequest]{
		list: svc.ListWarehouses,
		get:  svc.GetWarehouse,
		create: func(ctx context.Context, in warehouseRequest) (domain.Warehouse, error) {
			return svc.CreateWarehouse(ctx, in.toDomain())
		},
		update: func(ctx context.Context, id string, in warehouseRequest) (domain.Warehouse, error) {
			return svc.UpdateWarehouse(ctx, id, in.toDomain())
		},
		delete:  svc.DeleteWarehouse,
		setOne:  svc.SetWarehouseActive,
		setMany: svc.SetWarehousesActive,
		dto:     toWarehouseDTO,
	}.mount(idem))

	r.Route("/products", resource[domain.Product, productDTO, productRequest]{
		list: svc.ListProducts,
		get:  svc.GetProduct,
		create: func(ctx context.Context, in productRequest) (domain.Product, error) {
			return svc.CreateProduct(ctx, in.toDomain())
		},
		update: func(ctx context.Context, id string, in productRequest) (domain.Product, error) {
			return svc.UpdateProduct(ctx, id, in.toDomain())
		},
		delete:  svc.DeleteProduct,
		setOne:  svc.SetProductActive,
		setMany: svc.SetProductsActive,
		dto:     toProductDTO,
	}.mount(idem))

	inventory := resource[domain.InventoryRecord, inventoryDTO, inventoryRequest]{
		list: svc.ListInventory,
		get:  svc.GetInventory,
		create: func(ctx context.Context, in inventoryRequest) (domain.InventoryRecord, error) {
			return svc.CreateInventory(ctx, in.toDomain())
		},
		update: func(ctx context.Context, id string, in inventoryRequest) (domain.InventoryRecord, error) {
			return svc.UpdateInventory(ctx, id, in.ReorderLevel)
		},
		delete:  svc.DeleteInventory,
		setOne:  svc.SetInventoryActive,
		setMany: svc.SetInventoriesActive,
		dto:     toInventoryDTO,
	}
	r.Route("/inventory", func(r chi.Router) {
		r.With(idem).Post("/transfer", s.handleTransfer)
		r.Post("/{id}/adjust", s.handleAdjust)
		inventory.routes(r, idem)
	})

	return r
}

func (res resource[E, D, In]) mount(idem func(http.Handler) http.Handler) func(chi.Router) {
	return func(r chi.Router) { res.routes(r, idem) }
}

func (s *Server) handleAdjust(w http.ResponseWriter, r *http.Request) {
	var body adjustRequest
	if err := decode(w, r, &body); err != nil {
		fail(w, r, err)
		return
	}
	rec, err := s.svc.AdjustInventory(r.Context(), chi.URLParam(r, "id"), body.Delta)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toInventoryDTO(rec))
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var body transferRequest
	if err := decode(w, r, &body); err != nil {
		fail(w, r, err)
		return
	}
	out, err := s.svc.TransferStock(r.Context(), body.FromID, body.ToID, body.Quantity)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": mapAll(out, toInventoryDTO)})
}

// idempotency rejects a repeated X-Idempotency-Key with 409 before the
// handler runs. The key is released again unless the handler answers 2xx.
func (s *Server) idempotency() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-Idempotency-Key")
			if err := application.Reserve(r.Context(), s.idem, key); err != nil {
				if !errors.Is(err, application.ErrDuplicateRequest) {
					logx.WithFields(r.Context()).Warn("idempotency.reserve_failed", zap.Error(err))
					writeError(w, http.StatusServiceUnavailable, "idempotency store unavailable")
					return
				}
				fail(w, r, err)
				return
			}
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			sr := &statusRecorder{ResponseWriter: w}
			succeeded := false
			defer func() {
				if succeeded {
					return
				}
				ctx := context.WithoutCancel(r.Context())
				if err := application.Release(ctx, s.idem, key); err != nil {
					logx.WithFields(ctx).Warn("idempotency.release_failed", zap.Error(err))
				}
			}()
			next.ServeHTTP(sr, r)
			succeeded = sr.status == 0 || (sr.status >= 200 && sr.status < 300)
		})
	}
}

func requestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid := r.Header.Get("X-Request-ID")
			if rid == "" {
				rid = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", rid)
			next.ServeHTTP(w, r.WithContext(logx.WithRequestID(r.Context(), rid)))
		})
	}
}

func traceID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tid := r.Header.Get("X-Trace-Id")
			if tid == "" {
				tid = uuid.NewString()
			}
			w.Header().Set("X-Trace-Id", tid)
			next.ServeHTTP(w, r.WithContext(logx.WithTraceID(r.Context(), tid)))
		})
	}
}

func recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logx.WithFields(r.Context()).Error("panic recovered", zap.Any("error", rec))
					writeError(w, http.StatusInternalServerError, "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.status == 0 {
		sr.status = http.StatusOK
	}
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += n
	return n, err
}

func accessLog() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sr := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(sr, r)
			logx.WithFields(r.Context()).Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", sr.status),
				zap.Int("bytes", sr.bytes),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
