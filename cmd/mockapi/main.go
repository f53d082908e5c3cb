// mockapi is a local stand-in for the hosted restaurant backend. It serves
// the wire shapes the client consumes, so the CLI can be exercised end to
// end without the real API. Orders live in memory and vanish on restart.
package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/deepanshu0430/khana-client/internal/catalog"
	"github.com/deepanshu0430/khana-client/internal/httpx"
	"github.com/deepanshu0430/khana-client/internal/order"
)

var menu = []catalog.Dish{
	{ID: "paneer-tikka", Name: "Paneer Tikka", Description: "Char-grilled cottage cheese skewers", Portion: "full", Category: catalog.CategoryStarters, Dietary: catalog.DietaryVeg, Price: decimal.NewFromInt(200)},
	{ID: "schezwan-noodles", Name: "Schezwan Noodles", Description: "Tossed in fiery schezwan sauce", Portion: "full", Category: catalog.CategoryMainCourse, Dietary: catalog.DietaryVeg, Price: decimal.NewFromInt(250)},
	{ID: "butter-chicken", Name: "Butter Chicken", Description: "Slow-simmered in tomato gravy", Portion: "half", Category: catalog.CategoryMainCourse, Dietary: catalog.DietaryNonVeg, Price: decimal.NewFromInt(320)},
	{ID: "egg-curry", Name: "Egg Curry", Description: "Boiled eggs in onion masala", Portion: "half", Category: catalog.CategoryMainCourse, Dietary: catalog.DietaryEgg, Price: decimal.NewFromInt(220)},
	{ID: "lava-cake", Name: "Chocolate Lava Cake", Description: "Molten center, served warm", Portion: "half", Category: catalog.CategoryDessert, Dietary: catalog.DietaryVeg, Price: decimal.NewFromInt(180)},
	{ID: "masala-chai", Name: "Masala Chai", Description: "Spiced milk tea", Portion: "half", Category: catalog.CategoryBeverages, Dietary: catalog.DietaryVeg, Price: decimal.NewFromInt(60)},
}

// orderLog keeps placed orders per bearer token.
type orderLog struct {
	mu      sync.Mutex
	byToken map[string][]order.Order
}

func bearer(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(h[len("Bearer "):])
	}
	return ""
}

func (s *orderLog) place(c *gin.Context) {
	token := bearer(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Please log in to place an order."})
		return
	}
	var req order.PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	byID := make(map[string]catalog.Dish, len(menu))
	for _, d := range menu {
		byID[d.ID] = d
	}
	var items []order.Item
	total := decimal.Zero
	for _, it := range req.Items {
		d, ok := byID[it.Dish]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "dish not found: " + it.Dish})
			return
		}
		items = append(items, order.Item{
			Dish:     d.ID,
			Name:     d.Name,
			Dietary:  d.Dietary,
			Price:    d.Price,
			Quantity: it.Quantity,
		})
		total = total.Add(d.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	o := order.Order{
		ID:          uuid.NewString(),
		Items:       items,
		PaymentMode: req.PaymentMode,
		TotalAmount: total,
		CreatedAt:   time.Now().UTC(),
	}
	s.mu.Lock()
	s.byToken[token] = append(s.byToken[token], o)
	s.mu.Unlock()
	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully"})
}

func (s *orderLog) list(c *gin.Context) {
	token := bearer(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Please log in to view your orders."})
		return
	}
	s.mu.Lock()
	orders := append([]order.Order(nil), s.byToken[token]...)
	s.mu.Unlock()
	if orders == nil {
		orders = []order.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func main() {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/api/dish", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"dishes": menu})
	})
	store := &orderLog{byToken: map[string][]order.Order{}}
	r.POST("/api/orders", store.place)
	r.GET("/api/orders/my-orders", store.list)

	addr := os.Getenv("MOCKAPI_ADDR")
	if addr == "" {
		addr = ":3000"
	}
	log.Printf("mockapi listening on %s", addr)
	log.Fatal(r.Run(addr))
}
