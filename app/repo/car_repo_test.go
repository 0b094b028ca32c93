package repo

import (
	"testing"
	"time"

	"carmarket/app/models"
	"carmarket/app/testutil"
)

func seedCars(t *testing.T, cars *CarRepository) {
	t.Helper()
	base := time.Now().Add(-time.Hour)
	fixtures := []models.Car{
		{ID: "camry", Brand: "Toyota", Model: "Camry", Year: 2022, Price: 25000, Fuel: "petrol", Condition: "used", BodyType: "sedan", Gearbox: "automatic", Visible: true, UserID: 1, CreatedAt: base.Add(3 * time.Minute)},
		{ID: "civic", Brand: "Honda", Model: "Civic", Year: 2019, Price: 15000, Fuel: "petrol", Condition: "used", BodyType: "sedan", Gearbox: "manual", Visible: true, UserID: 1, CreatedAt: base.Add(2 * time.Minute)},
		{ID: "leaf", Brand: "Nissan", Model: "Leaf", Year: 2021, Price: 18000, Fuel: "electric", Condition: "used", BodyType: "hatchback", Gearbox: "automatic", Visible: true, UserID: 2, CreatedAt: base.Add(time.Minute)},
		{ID: "hidden", Brand: "Toyota", Model: "Corolla", Year: 2023, Price: 22000, Fuel: "petrol", Condition: "new", BodyType: "sedan", Gearbox: "automatic", Visible: false, UserID: 2, CreatedAt: base},
	}
	for i := range fixtures {
		if err := cars.Create(&fixtures[i]); err != nil {
			t.Fatalf("seed %s: %v", fixtures[i].ID, err)
		}
	}
}

func TestListVisibleUnfiltered(t *testing.T) {
	cars := NewCarRepository(testutil.OpenTestDB(t, "carrepo-unfiltered"))
	seedCars(t, cars)

	got, err := cars.ListVisible(CarFilter{}, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 visible cars, got %d", len(got))
	}
	// newest first
	if got[0].ID != "camry" || got[1].ID != "civic" || got[2].ID != "leaf" {
		t.Fatalf("wrong order: %s %s %s", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestListVisibleDefaultsAreInert(t *testing.T) {
	cars := NewCarRepository(testutil.OpenTestDB(t, "carrepo-defaults"))
	seedCars(t, cars)

	f := CarFilter{
		Brand:    "any",
		Fuel:     "any",
		MinPrice: "0",
		MaxPrice: "1000000",
		MinYear:  "1990",
		MaxYear:  "2030",
	}
	got, err := cars.ListVisible(f, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("defaults must not filter, got %d cars", len(got))
	}
}

func TestListVisibleBrandAndMinYear(t *testing.T) {
	cars := NewCarRepository(testutil.OpenTestDB(t, "carrepo-brandyear"))
	seedCars(t, cars)

	got, err := cars.ListVisible(CarFilter{Brand: "Toyota", MinYear: "2020"}, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != "camry" {
		t.Fatalf("expected only the 2022 Camry, got %+v", got)
	}
}

func TestListVisiblePredicatesAndCombine(t *testing.T) {
	cars := NewCarRepository(testutil.OpenTestDB(t, "carrepo-and"))
	seedCars(t, cars)

	got, err := cars.ListVisible(CarFilter{Fuel: "petrol", Gearbox: "manual"}, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != "civic" {
		t.Fatalf("expected only the Civic, got %+v", got)
	}
}

func TestListVisiblePrefixQuery(t *testing.T) {
	cars := NewCarRepository(testutil.OpenTestDB(t, "carrepo-prefix"))
	seedCars(t, cars)

	got, err := cars.ListVisible(CarFilter{Query: "Cam"}, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != "camry" {
		t.Fatalf("expected model-prefix match for Camry, got %+v", got)
	}

	// brand prefix matches too
	got, err = cars.ListVisible(CarFilter{Query: "Hon"}, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != "civic" {
		t.Fatalf("expected brand-prefix match for Honda, got %+v", got)
	}

	// LIKE wildcards in the query are literal characters, not match-alls
	got, err = cars.ListVisible(CarFilter{Query: "%"}, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("a literal %% query must match nothing, got %+v", got)
	}
	got, err = cars.ListVisible(CarFilter{Query: "_amry"}, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("a literal _ query must match nothing, got %+v", got)
	}
}

func TestListVisibleLimit(t *testing.T) {
	cars := NewCarRepository(testutil.OpenTestDB(t, "carrepo-limit"))
	seedCars(t, cars)

	got, err := cars.ListVisible(CarFilter{}, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(got))
	}
}

func TestVisibilityAndGet(t *testing.T) {
	cars := NewCarRepository(testutil.OpenTestDB(t, "carrepo-vis"))
	seedCars(t, cars)

	if err := cars.SetVisibility("camry", false); err != nil {
		t.Fatalf("set visibility: %v", err)
	}
	got, err := cars.ListVisible(CarFilter{}, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected hidden camry to drop out, got %d", len(got))
	}

	c, err := cars.Get("camry")
	if err != nil || c == nil {
		t.Fatalf("get: %v %+v", err, c)
	}
	if c.Visible {
		t.Fatal("expected camry hidden")
	}

	missing, err := cars.Get("nope")
	if err != nil || missing != nil {
		t.Fatalf("expected nil for missing car, got %+v err=%v", missing, err)
	}
}
