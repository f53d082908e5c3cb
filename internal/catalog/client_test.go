package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDishesDecodesSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/dish", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "menu endpoint is public")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"dishes":[
			{"_id":"a1","name":"Paneer Tikka","price":200,"category":"starters","dietory":"veg"},
			{"_id":"b2","name":"Butter Chicken","price":320.50,"dietory":"non-veg"}
		]}`))
	}))
	defer srv.Close()

	dishes, err := NewClient(srv.URL, 2*time.Second).Dishes(context.Background())

	require.NoError(t, err)
	require.Len(t, dishes, 2)
	assert.Equal(t, "a1", dishes[0].ID)
	assert.True(t, dishes[0].Price.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, "320.5", dishes[1].Price.String())
	assert.Empty(t, dishes[1].Image, "missing image is valid")
}

func TestDishesSurfacesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"message":"menu is being updated"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 2*time.Second).Dishes(context.Background())

	require.Error(t, err)
	assert.EqualError(t, err, "menu is being updated")
}

func TestDishesFallbackErrorOnOpaqueBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway timeout", http.StatusGatewayTimeout)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 2*time.Second).Dishes(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch dishes")
}

func TestFilters(t *testing.T) {
	dishes := []Dish{
		{ID: "1", Category: CategoryStarters, Dietary: DietaryVeg},
		{ID: "2", Category: CategoryMainCourse, Dietary: DietaryNonVeg},
		{ID: "3", Category: CategoryMainCourse, Dietary: DietaryEgg},
	}

	assert.Len(t, FilterByCategory(dishes, ""), 3)
	byCat := FilterByCategory(dishes, CategoryMainCourse)
	require.Len(t, byCat, 2)
	assert.Equal(t, "2", byCat[0].ID)

	assert.Len(t, FilterByDietary(dishes, nil), 3)
	byDiet := FilterByDietary(dishes, []string{DietaryVeg, DietaryEgg})
	require.Len(t, byDiet, 2)
	assert.Equal(t, "1", byDiet[0].ID)
	assert.Equal(t, "3", byDiet[1].ID)
}
