package service

import (
	"context"

	"github.com/iurnickita/autosalon/internal/model"
)

func validateOfferFilter(filter model.OfferFilter) error {
	if filter.DiscountMin != nil && filter.DiscountMax != nil && *filter.DiscountMin > *filter.DiscountMax {
		return invalid("discount_min is greater than discount_max")
	}
	return nil
}

func (service *service) SupplierOfferList(ctx context.Context, filter model.OfferFilter) ([]model.SupplierOffer, error) {
	if err := validateOfferFilter(filter); err != nil {
		return nil, err
	}
	list, err := service.store.SupplierOfferList(ctx, filter)
	return list, mapError(err)
}

func (service *service) SupplierOfferGet(ctx context.Context, id int64) (model.SupplierOffer, error) {
	o, err := service.store.SupplierOfferGet(ctx, id)
	return o, mapError(err)
}

func (service *service) SupplierOfferCreate(ctx context.Context, offer model.SupplierOffer) (model.SupplierOffer, error) {
	if err := validateOffer(offer.SpecialOffer, offer.SupplierID); err != nil {
		return model.SupplierOffer{}, err
	}
	o, err := service.store.SupplierOfferCreate(ctx, offer)
	return o, mapError(err)
}

func (service *service) SupplierOfferUpdate(ctx context.Context, offer model.SupplierOffer) (model.SupplierOffer, error) {
	if err := validateOffer(offer.SpecialOffer, offer.SupplierID); err != nil {
		return model.SupplierOffer{}, err
	}
	o, err := service.store.SupplierOfferUpdate(ctx, offer)
	return o, mapError(err)
}

func (service *service) SupplierOfferDelete(ctx context.Context, id int64) error {
	return mapError(service.store.SupplierOfferDelete(ctx, id))
}

func (service *service) AutoSalonOfferList(ctx context.Context, filter model.OfferFilter) ([]model.AutoSalonOffer, error) {
	if err := validateOfferFilter(filter); err != nil {
		return nil, err
	}
	list, err := service.store.AutoSalonOfferList(ctx, filter)
	return list, mapError(err)
}

func (service *service) AutoSalonOfferGet(ctx context.Context, id int64) (model.AutoSalonOffer, error) {
	o, err := service.store.AutoSalonOfferGet(ctx, id)
	return o, mapError(err)
}

func (service *service) AutoSalonOfferCreate(ctx context.Context, offer model.AutoSalonOffer) (model.AutoSalonOffer, error) {
	if err := validateOffer(offer.SpecialOffer, offer.AutoSalonID); err != nil {
		return model.AutoSalonOffer{}, err
	}
	o, err := service.store.AutoSalonOfferCreate(ctx, offer)
	return o, mapError(err)
}

func (service *service) AutoSalonOfferUpdate(ctx context.Context, offer model.AutoSalonOffer) (model.AutoSalonOffer, error) {
	if err := validateOffer(offer.SpecialOffer, offer.AutoSalonID); err != nil {
		return model.AutoSalonOffer{}, err
	}
	o, err := service.store.AutoSalonOfferUpdate(ctx, offer)
	return o, mapError(err)
}

func (service *service) AutoSalonOfferDelete(ctx context.Context, id int64) error {
	return mapError(service.store.AutoSalonOfferDelete(ctx, id))
}
