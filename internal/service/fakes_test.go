package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/droneflow/settlements/internal/model"
)

type fakeServiceStore struct {
	records []model.ServiceRecord
	listErr error
}

func (f *fakeServiceStore) ListAll(context.Context) ([]model.ServiceRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.ServiceRecord(nil), f.records...), nil
}

func (f *fakeServiceStore) Insert(_ context.Context, record model.ServiceRecord) (*model.ServiceRecord, error) {
	record.CreatedAt = time.Now()
	f.records = append(f.records, record)
	return &record, nil
}

func (f *fakeServiceStore) DeleteByID(_ context.Context, id uuid.UUID) error {
	for i, r := range f.records {
		if r.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeExpenseStore struct {
	records  []model.Expense
	listErr  error
	flagErr  error
	rangeErr error
}

func (f *fakeExpenseStore) ListAll(context.Context) ([]model.Expense, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.Expense(nil), f.records...), nil
}

func (f *fakeExpenseStore) Insert(_ context.Context, expense model.Expense) (*model.Expense, error) {
	expense.CreatedAt = time.Now()
	f.records = append(f.records, expense)
	return &expense, nil
}

func (f *fakeExpenseStore) DeleteByID(_ context.Context, id uuid.UUID) error {
	for i, r := range f.records {
		if r.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeExpenseStore) SetClosedByIDs(_ context.Context, ids []uuid.UUID, closed bool) error {
	if f.flagErr != nil {
		return f.flagErr
	}
	for _, id := range ids {
		for i := range f.records {
			if f.records[i].ID == id {
				f.records[i].Closed = closed
			}
		}
	}
	return nil
}

func (f *fakeExpenseStore) SetClosedBetween(_ context.Context, from, to time.Time, closed bool) error {
	if f.rangeErr != nil {
		return f.rangeErr
	}
	for i := range f.records {
		d := f.records[i].Date
		if !d.Before(from) && !d.After(to) {
			f.records[i].Closed = closed
		}
	}
	return nil
}

func (f *fakeExpenseStore) byID(id uuid.UUID) *model.Expense {
	for i := range f.records {
		if f.records[i].ID == id {
			return &f.records[i]
		}
	}
	return nil
}

type fakeContributionStore struct {
	records []model.Contribution
}

func (f *fakeContributionStore) ListAll(context.Context) ([]model.Contribution, error) {
	return append([]model.Contribution(nil), f.records...), nil
}

func (f *fakeContributionStore) Insert(_ context.Context, contribution model.Contribution) (*model.Contribution, error) {
	contribution.CreatedAt = time.Now()
	f.records = append(f.records, contribution)
	return &contribution, nil
}

func (f *fakeContributionStore) DeleteByID(_ context.Context, id uuid.UUID) error {
	for i, r := range f.records {
		if r.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeClosedMonthStore struct {
	records   []model.ClosedMonth
	insertErr error
}

func (f *fakeClosedMonthStore) ListAll(context.Context) ([]model.ClosedMonth, error) {
	return append([]model.ClosedMonth(nil), f.records...), nil
}

func (f *fakeClosedMonthStore) GetByKey(_ context.Context, monthYear string) (*model.ClosedMonth, error) {
	for i := range f.records {
		if f.records[i].MonthYear == monthYear {
			record := f.records[i]
			return &record, nil
		}
	}
	return nil, nil
}

func (f *fakeClosedMonthStore) Insert(_ context.Context, closed model.ClosedMonth) (*model.ClosedMonth, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.records = append(f.records, closed)
	return &closed, nil
}

func (f *fakeClosedMonthStore) DeleteByKey(_ context.Context, monthYear string) error {
	for i, r := range f.records {
		if r.MonthYear == monthYear {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeClientStore struct {
	records []model.Client
}

func (f *fakeClientStore) ListAll(context.Context) ([]model.Client, error) {
	return append([]model.Client(nil), f.records...), nil
}

func (f *fakeClientStore) Upsert(_ context.Context, clients []model.Client) error {
	for _, incoming := range clients {
		replaced := false
		for i := range f.records {
			if f.records[i].ID == incoming.ID {
				f.records[i] = incoming
				replaced = true
				break
			}
		}
		if !replaced {
			f.records = append(f.records, incoming)
		}
	}
	return nil
}

func (f *fakeClientStore) DeleteByID(_ context.Context, id uuid.UUID) error {
	for i, r := range f.records {
		if r.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return nil
}
