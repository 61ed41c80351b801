package queries

import (
	"context"
	"encoding/json"

	"fieldservice/internal/core/ports"
	"fieldservice/internal/pkg/errs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ListRouteQueryHandler reads a technician's route through the route cache.
// Cache failures are logged and the database answers instead. An unknown
// technician has an empty route. The cache generation is read before the
// database so a route loaded ahead of a concurrent commit is never stored.
type ListRouteQueryHandler struct {
	db     *gorm.DB
	cache  ports.RouteCache
	logger *zap.Logger
}

func NewListRouteQueryHandler(db *gorm.DB, cache ports.RouteCache, logger *zap.Logger) ListRouteQueryHandler {
	return ListRouteQueryHandler{
		db:     db,
		cache:  cache,
		logger: logger.With(zap.String("component", "list_route")),
	}
}

func (h ListRouteQueryHandler) Handle(ctx context.Context, query ListRouteQuery) ([]ServiceOrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	technicianID := query.TechnicianID()

	if cached, ok := h.load(ctx, query); ok {
		return cached, nil
	}

	generation, generationErr := h.cache.Generation(ctx, technicianID)
	if generationErr != nil {
		h.logger.Warn("route cache generation read failed",
			zap.String("technician_id", technicianID.String()), zap.Error(generationErr))
	}

	var rows []serviceOrderRow
	if err := h.db.WithContext(ctx).Raw(`
		SELECT `+serviceOrderColumns+`
		FROM service_orders
		WHERE technician_id = ?
		ORDER BY position
	`, technicianID.Bytes()).Scan(&rows).Error; err != nil {
		return nil, errs.NewStorageFailureError("list route", err)
	}

	views, err := toViews(rows)
	if err != nil {
		return nil, err
	}

	if generationErr != nil {
		return views, nil
	}
	if payload, marshalErr := json.Marshal(views); marshalErr == nil {
		if storeErr := h.cache.Store(ctx, technicianID, generation, payload); storeErr != nil {
			h.logger.Warn("route cache store failed",
				zap.String("technician_id", technicianID.String()), zap.Error(storeErr))
		}
	}

	return views, nil
}

func (h ListRouteQueryHandler) load(ctx context.Context, query ListRouteQuery) ([]ServiceOrderView, bool) {
	payload, ok, err := h.cache.Load(ctx, query.TechnicianID())
	if err != nil {
		h.logger.Warn("route cache load failed",
			zap.String("technician_id", query.TechnicianID().String()), zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var views []ServiceOrderView
	if err = json.Unmarshal(payload, &views); err != nil {
		h.logger.Warn("route cache entry is corrupt", zap.Error(err))
		return nil, false
	}
	return views, true
}
