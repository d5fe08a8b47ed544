package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/tiffinbox/tiffinbox/internal/domain/errors"
	"github.com/tiffinbox/tiffinbox/internal/domain/model"
	testhelpers "github.com/tiffinbox/tiffinbox/internal/test"
	"github.com/tiffinbox/tiffinbox/internal/usecase"
)

var (
	adminActor  = model.Actor{ID: "admin-1", Role: model.RoleAdmin}
	vendorActor = model.Actor{ID: "vendor-user", Role: model.RoleVendor, VendorID: "vendor-1"}
	userActor   = model.Actor{ID: "user-1", Role: model.RoleUser}
)

func subscriptionOrder() *model.Order {
	start, _ := model.ParseDate("2026-03-01")
	end, _ := model.ParseDate("2026-03-07")
	skipped, _ := model.ParseDate("2026-03-04")
	return &model.Order{
		ID:       "ord-1",
		UserID:   "user-1",
		Currency: "INR",
		Status:   model.OrderStatusConfirmed,
		PaymentDetails: model.PaymentDetails{
			Status: "SUCCESS",
		},
		TotalAmount: 2000,
		Items: []model.OrderItem{{
			ID:                "item-1",
			MenuID:            "menu-1",
			VendorID:          "vendor-1",
			Quantity:          2,
			StartDate:         start,
			EndDate:           end,
			SkippedDates:      []time.Time{skipped},
			SelectedMealTimes: []model.MealTime{model.MealTimeLunch, model.MealTimeDinner},
			ItemTotalPrice:    2000,
		}},
		Version: 1,
	}
}

func newMealStatusFixture(order *model.Order) (*usecase.MealStatusUseCase, *testhelpers.OrderRepositoryStub, *testhelpers.PublisherStub) {
	repo := testhelpers.NewOrderRepositoryStub(order)
	addresses := &testhelpers.AddressRepositoryStub{}
	events := &testhelpers.PublisherStub{}
	return usecase.NewMealStatusUseCase(repo, addresses, events), repo, events
}

func TestSetMealStatusUpsertsInPlace(t *testing.T) {
	order := subscriptionOrder()
	uc, repo, events := newMealStatusFixture(order)

	in := usecase.SetMealStatusInput{OrderID: "ord-1", ItemID: "item-1", Date: "2026-03-02", MealTime: "lunch", Status: "preparing"}
	entry, err := uc.SetMealStatus(context.Background(), adminActor, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Status != model.MealStatusPreparing || entry.UpdatedBy != "admin-1" {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	in.Status = "delivered"
	entry, err = uc.SetMealStatus(context.Background(), adminActor, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Status != model.MealStatusDelivered {
		t.Fatalf("expected delivered, got %s", entry.Status)
	}

	item := order.Item("item-1")
	if len(item.DeliveryStatus) != 1 {
		t.Fatalf("expected a single ledger slot, got %d entries", len(item.DeliveryStatus))
	}
	if len(repo.Saved) != 2 {
		t.Fatalf("expected 2 saves, got %d", len(repo.Saved))
	}
	if got := events.Types(); len(got) != 2 || got[0] != usecase.EventMealStatusChanged {
		t.Fatalf("unexpected events: %v", got)
	}

	// Another meal time on the same day gets its own slot.
	in.MealTime = "Dinner"
	if _, err := uc.SetMealStatus(context.Background(), adminActor, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(item.DeliveryStatus) != 2 {
		t.Fatalf("expected 2 ledger slots, got %d", len(item.DeliveryStatus))
	}
}

func TestSetMealStatusValidation(t *testing.T) {
	uc, _, _ := newMealStatusFixture(subscriptionOrder())
	base := usecase.SetMealStatusInput{OrderID: "ord-1", ItemID: "item-1", Date: "2026-03-02", MealTime: "lunch", Status: "preparing"}

	cases := []struct {
		name  string
		actor model.Actor
		mut   func(*usecase.SetMealStatusInput)
		want  error
	}{
		{"unknown status", adminActor, func(in *usecase.SetMealStatusInput) { in.Status = "eaten" }, domainErrors.ErrInvalidInput},
		{"plain user denied", userActor, func(*usecase.SetMealStatusInput) {}, domainErrors.ErrAccessDenied},
		{"vendor cannot deliver", vendorActor, func(in *usecase.SetMealStatusInput) { in.Status = "delivered" }, domainErrors.ErrAccessDenied},
		{"vendor cannot cancel", vendorActor, func(in *usecase.SetMealStatusInput) { in.Status = "cancelled" }, domainErrors.ErrAccessDenied},
		{"bad date", adminActor, func(in *usecase.SetMealStatusInput) { in.Date = "03/02/2026" }, domainErrors.ErrInvalidInput},
		{"bad meal time", adminActor, func(in *usecase.SetMealStatusInput) { in.MealTime = "supper" }, domainErrors.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.mut(&in)
			if _, err := uc.SetMealStatus(context.Background(), tc.actor, in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestSetMealStatusWindowRules(t *testing.T) {
	uc, _, _ := newMealStatusFixture(subscriptionOrder())
	base := usecase.SetMealStatusInput{OrderID: "ord-1", ItemID: "item-1", MealTime: "lunch", Status: "delivered"}

	for _, date := range []string{"2026-03-01", "2026-03-07"} {
		in := base
		in.Date = date
		if _, err := uc.SetMealStatus(context.Background(), adminActor, in); err != nil {
			t.Fatalf("boundary date %s must be accepted: %v", date, err)
		}
	}

	cases := []struct {
		name string
		date string
		meal string
	}{
		{"day after window", "2026-03-08", "lunch"},
		{"day before window", "2026-02-28", "lunch"},
		{"skipped date", "2026-03-04", "lunch"},
		{"unselected meal time", "2026-03-02", "breakfast"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			in.Date = tc.date
			in.MealTime = tc.meal
			if _, err := uc.SetMealStatus(context.Background(), adminActor, in); !errors.Is(err, domainErrors.ErrConflict) {
				t.Fatalf("expected conflict, got %v", err)
			}
		})
	}
}

func TestSetMealStatusVendorOwnership(t *testing.T) {
	uc, _, _ := newMealStatusFixture(subscriptionOrder())
	in := usecase.SetMealStatusInput{OrderID: "ord-1", ItemID: "item-1", Date: "2026-03-02", MealTime: "lunch", Status: "preparing"}

	if _, err := uc.SetMealStatus(context.Background(), vendorActor, in); err != nil {
		t.Fatalf("owning vendor must pass: %v", err)
	}

	other := model.Actor{ID: "intruder", Role: model.RoleVendor, VendorID: "vendor-2"}
	if _, err := uc.SetMealStatus(context.Background(), other, in); !errors.Is(err, domainErrors.ErrAccessDenied) {
		t.Fatalf("expected access denied for foreign vendor, got %v", err)
	}
}

func TestSetMealStatusMissingTargets(t *testing.T) {
	uc, _, _ := newMealStatusFixture(subscriptionOrder())

	in := usecase.SetMealStatusInput{OrderID: "missing", ItemID: "item-1", Date: "2026-03-02", MealTime: "lunch", Status: "delivered"}
	if _, err := uc.SetMealStatus(context.Background(), adminActor, in); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for unknown order, got %v", err)
	}

	in.OrderID, in.ItemID = "ord-1", "missing"
	if _, err := uc.SetMealStatus(context.Background(), adminActor, in); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for unknown item, got %v", err)
	}
}

func TestStatusHistory(t *testing.T) {
	order := subscriptionOrder()
	order.Items[0].DeliveryStatus = []model.MealStatusEntry{{
		MealTime: model.MealTimeLunch,
		Status:   model.MealStatusDelivered,
	}}
	uc, _, _ := newMealStatusFixture(order)

	entries, err := uc.StatusHistory(context.Background(), adminActor, "ord-1", "item-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].Status != model.MealStatusDelivered {
		t.Fatalf("unexpected history: %+v", entries)
	}

	if _, err := uc.StatusHistory(context.Background(), userActor, "ord-1", "item-1"); !errors.Is(err, domainErrors.ErrAccessDenied) {
		t.Fatalf("expected access denied, got %v", err)
	}

	foreign := model.Actor{ID: "v2", Role: model.RoleVendor, VendorID: "vendor-2"}
	if _, err := uc.StatusHistory(context.Background(), foreign, "ord-1", "item-1"); !errors.Is(err, domainErrors.ErrAccessDenied) {
		t.Fatalf("expected access denied for foreign vendor, got %v", err)
	}
}

func TestScheduleForDate(t *testing.T) {
	paid := subscriptionOrder()
	paid.DeliveryAddresses = map[string]model.Address{
		"lunch": {Street: "12 MG Road", City: "Bengaluru", Zip: "560001"},
	}

	unpaid := subscriptionOrder()
	unpaid.ID = "ord-2"
	unpaid.PaymentDetails.Status = "FAILED"

	foreign := subscriptionOrder()
	foreign.ID = "ord-3"
	foreign.UserID = "user-3"
	foreign.Items[0].ID = "item-3"
	foreign.Items[0].VendorID = "vendor-2"

	repo := testhelpers.NewOrderRepositoryStub(paid, unpaid, foreign)
	addresses := &testhelpers.AddressRepositoryStub{Addresses: map[string]model.Address{
		"user-1/dinner": {Street: "fallback lane", City: "Bengaluru", Zip: "560002"},
	}}
	events := &testhelpers.PublisherStub{}
	uc := usecase.NewMealStatusUseCase(repo, addresses, events)

	schedule, err := uc.ScheduleForDate(context.Background(), adminActor, "2026-03-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(schedule[model.MealTimeBreakfast]) != 0 {
		t.Fatalf("expected empty breakfast bucket, got %+v", schedule[model.MealTimeBreakfast])
	}
	if len(schedule[model.MealTimeLunch]) != 2 {
		t.Fatalf("expected 2 lunch deliveries (unpaid order excluded), got %d", len(schedule[model.MealTimeLunch]))
	}

	var own *usecase.ScheduleEntry
	for i := range schedule[model.MealTimeLunch] {
		if schedule[model.MealTimeLunch][i].OrderID == "ord-1" {
			own = &schedule[model.MealTimeLunch][i]
		}
	}
	if own == nil {
		t.Fatal("expected ord-1 in lunch bucket")
	}
	if own.Address.Street != "12 MG Road" {
		t.Fatalf("expected per-meal-time order address, got %+v", own.Address)
	}

	for _, e := range schedule[model.MealTimeDinner] {
		if e.OrderID == "ord-1" && e.Address.Street != "fallback lane" {
			t.Fatalf("expected saved customer address fallback, got %+v", e.Address)
		}
		if e.OrderID == "ord-3" && !e.Address.Empty() {
			t.Fatalf("expected empty address when nothing resolves, got %+v", e.Address)
		}
	}

	vendorSchedule, err := uc.ScheduleForDate(context.Background(), vendorActor, "2026-03-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, entries := range vendorSchedule {
		for _, e := range entries {
			if e.VendorID != "vendor-1" {
				t.Fatalf("vendor schedule leaked foreign item: %+v", e)
			}
		}
	}

	skipped, err := uc.ScheduleForDate(context.Background(), adminActor, "2026-03-04")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, entries := range skipped {
		for _, e := range entries {
			if e.OrderID == "ord-1" {
				t.Fatalf("skipped date must not be scheduled: %+v", e)
			}
		}
	}

	if _, err := uc.ScheduleForDate(context.Background(), userActor, "2026-03-02"); !errors.Is(err, domainErrors.ErrAccessDenied) {
		t.Fatalf("expected access denied, got %v", err)
	}
	if _, err := uc.ScheduleForDate(context.Background(), adminActor, "bad"); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
