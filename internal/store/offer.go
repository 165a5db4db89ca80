package store

import (
	"context"
	"time"

	"github.com/iurnickita/autosalon/internal/model"
)

// Спецпредложения поставщиков и автосалонов хранятся в двух таблицах одинаковой структуры

type offerTable struct {
	name     string
	ownerCol string
}

var (
	supplierOffers  = offerTable{name: "special_offer_supplier", ownerCol: "supplier_id"}
	autosalonOffers = offerTable{name: "special_offer_autosalon", ownerCol: "autosalon_id"}
)

func (t offerTable) columns() string {
	return "id, name, descr, discount, start_date, end_date, is_active, " + t.ownerCol
}

func scanOffer(row rowScanner) (model.SpecialOffer, int64, error) {
	var o model.SpecialOffer
	var owner int64
	err := row.Scan(&o.ID, &o.Name, &o.Descr, &o.Discount, &o.StartDate, &o.EndDate, &o.IsActive, &owner)
	return o, owner, err
}

func (t offerTable) list(ctx context.Context, q querier, filter model.OfferFilter, fn func(o model.SpecialOffer, owner int64)) error {
	var w where
	if filter.Name != "" {
		w.add("name ILIKE ?", likeEscape(filter.Name))
	}
	if filter.DiscountMin != nil {
		w.add("discount >= ?", *filter.DiscountMin)
	}
	if filter.DiscountMax != nil {
		w.add("discount <= ?", *filter.DiscountMax)
	}
	if filter.IsActive != nil {
		w.add("is_active = ?", *filter.IsActive)
	}
	if filter.OwnerID != 0 {
		w.add(t.ownerCol+" = ?", filter.OwnerID)
	}

	rows, err := q.QueryContext(ctx,
		"SELECT "+t.columns()+" FROM "+t.name+w.String()+" ORDER BY id",
		w.args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		o, owner, err := scanOffer(rows)
		if err != nil {
			return err
		}
		fn(o, owner)
	}
	return rows.Err()
}

func (t offerTable) get(ctx context.Context, q querier, id int64) (model.SpecialOffer, int64, error) {
	o, owner, err := scanOffer(q.QueryRowContext(ctx,
		"SELECT "+t.columns()+" FROM "+t.name+" WHERE id = $1",
		id))
	if err != nil {
		return model.SpecialOffer{}, 0, notFound(err)
	}
	return o, owner, nil
}

func (t offerTable) create(ctx context.Context, q querier, o model.SpecialOffer, owner int64) (model.SpecialOffer, int64, error) {
	o, owner, err := scanOffer(q.QueryRowContext(ctx,
		"INSERT INTO "+t.name+" (name, descr, discount, start_date, end_date, is_active, "+t.ownerCol+")"+
			" VALUES ($1, $2, $3, $4, $5, $6, $7)"+
			" RETURNING "+t.columns(),
		o.Name,
		o.Descr,
		o.Discount,
		o.StartDate,
		o.EndDate,
		o.IsActive,
		owner))
	if err != nil {
		return model.SpecialOffer{}, 0, mapWriteError(err)
	}
	return o, owner, nil
}

func (t offerTable) update(ctx context.Context, q querier, o model.SpecialOffer, owner int64) (model.SpecialOffer, int64, error) {
	o, owner, err := scanOffer(q.QueryRowContext(ctx,
		"UPDATE "+t.name+" SET name = $2, descr = $3, discount = $4, start_date = $5, end_date = $6,"+
			" is_active = $7, "+t.ownerCol+" = $8"+
			" WHERE id = $1"+
			" RETURNING "+t.columns(),
		o.ID,
		o.Name,
		o.Descr,
		o.Discount,
		o.StartDate,
		o.EndDate,
		o.IsActive,
		owner))
	if err != nil {
		return model.SpecialOffer{}, 0, mapWriteError(notFound(err))
	}
	return o, owner, nil
}

func (t offerTable) delete(ctx context.Context, q querier, id int64) error {
	res, err := q.ExecContext(ctx, "DELETE FROM "+t.name+" WHERE id = $1", id)
	if err != nil {
		return mapDeleteError(err)
	}
	return checkAffected(res)
}

// active - действующее предложение с наибольшей скидкой
func (t offerTable) active(ctx context.Context, q querier, owner int64, at time.Time) (model.SpecialOffer, bool, error) {
	o, _, err := scanOffer(q.QueryRowContext(ctx,
		"SELECT "+t.columns()+" FROM "+t.name+
			" WHERE "+t.ownerCol+" = $1 AND is_active AND start_date <= $2 AND end_date > $2"+
			" ORDER BY discount DESC, id"+
			" LIMIT 1",
		owner,
		at))
	if err != nil {
		if err = notFound(err); err == ErrNotFound {
			return model.SpecialOffer{}, false, nil
		}
		return model.SpecialOffer{}, false, err
	}
	return o, true, nil
}

// Предложения поставщиков

func (store *store) SupplierOfferList(ctx context.Context, filter model.OfferFilter) ([]model.SupplierOffer, error) {
	offers := []model.SupplierOffer{}
	err := supplierOffers.list(ctx, store.database, filter, func(o model.SpecialOffer, owner int64) {
		offers = append(offers, model.SupplierOffer{SpecialOffer: o, SupplierID: owner})
	})
	if err != nil {
		return nil, err
	}
	return offers, nil
}

func (store *store) SupplierOfferGet(ctx context.Context, id int64) (model.SupplierOffer, error) {
	o, owner, err := supplierOffers.get(ctx, store.database, id)
	return model.SupplierOffer{SpecialOffer: o, SupplierID: owner}, err
}

func (store *store) SupplierOfferCreate(ctx context.Context, offer model.SupplierOffer) (model.SupplierOffer, error) {
	o, owner, err := supplierOffers.create(ctx, store.database, offer.SpecialOffer, offer.SupplierID)
	return model.SupplierOffer{SpecialOffer: o, SupplierID: owner}, err
}

func (store *store) SupplierOfferUpdate(ctx context.Context, offer model.SupplierOffer) (model.SupplierOffer, error) {
	o, owner, err := supplierOffers.update(ctx, store.database, offer.SpecialOffer, offer.SupplierID)
	return model.SupplierOffer{SpecialOffer: o, SupplierID: owner}, err
}

func (store *store) SupplierOfferDelete(ctx context.Context, id int64) error {
	return supplierOffers.delete(ctx, store.database, id)
}

// Предложения автосалонов

func (store *store) AutoSalonOfferList(ctx context.Context, filter model.OfferFilter) ([]model.AutoSalonOffer, error) {
	offers := []model.AutoSalonOffer{}
	err := autosalonOffers.list(ctx, store.database, filter, func(o model.SpecialOffer, owner int64) {
		offers = append(offers, model.AutoSalonOffer{SpecialOffer: o, AutoSalonID: owner})
	})
	if err != nil {
		return nil, err
	}
	return offers, nil
}

func (store *store) AutoSalonOfferGet(ctx context.Context, id int64) (model.AutoSalonOffer, error) {
	o, owner, err := autosalonOffers.get(ctx, store.database, id)
	return model.AutoSalonOffer{SpecialOffer: o, AutoSalonID: owner}, err
}

func (store *store) AutoSalonOfferCreate(ctx context.Context, offer model.AutoSalonOffer) (model.AutoSalonOffer, error) {
	o, owner, err := autosalonOffers.create(ctx, store.database, offer.SpecialOffer, offer.AutoSalonID)
	return model.AutoSalonOffer{SpecialOffer: o, AutoSalonID: owner}, err
}

func (store *store) AutoSalonOfferUpdate(ctx context.Context, offer model.AutoSalonOffer) (model.AutoSalonOffer, error) {
	o, owner, err := autosalonOffers.update(ctx, store.database, offer.SpecialOffer, offer.AutoSalonID)
	return model.AutoSalonOffer{SpecialOffer: o, AutoSalonID: owner}, err
}

func (store *store) AutoSalonOfferDelete(ctx context.Context, id int64) error {
	return autosalonOffers.delete(ctx, store.database, id)
}
