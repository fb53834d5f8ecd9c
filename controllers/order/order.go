package orderControllers

import (
	"errors"
	"math"
	"net/http"

	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/api"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/config"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/controllers/payment"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/middleware"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderItemInput struct {
	Product  uint `json:"product" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

type PlaceOrderRequest struct {
	Items   []OrderItemInput `json:"items" binding:"required,min=1"`
	Address uint             `json:"address" binding:"required"`
}

// priceItems re-fetches every product and prices the order from the live
// rows, never from client-supplied prices. Items whose product id no longer
// resolves are skipped without failing the request. The per-item lookups and
// the later insert are not wrapped in one transaction; concurrent price
// edits mid-loop are an accepted inconsistency at this scale.
func priceItems(db *gorm.DB, items []OrderItemInput) (float64, []models.OrderItem, []payment.LineItem, error) {
	var amount float64
	var orderItems []models.OrderItem
	var lines []payment.LineItem

	for _, item := range items {
		var product models.Product
		if err := db.First(&product, item.Product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return 0, nil, nil, err
		}

		amount += product.OfferPrice * float64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
		})
		lines = append(lines, payment.LineItem{
			Name:       product.Name,
			UnitAmount: int64(math.Floor(product.OfferPrice+product.OfferPrice*models.TaxRate)) * 100,
			Quantity:   int64(item.Quantity),
		})
	}

	amount += math.Floor(amount * models.TaxRate)
	return amount, orderItems, lines, nil
}

// POST /api/order/cod
//
// Final at creation: no gateway round trip, no inventory touch.
func PlaceCOD(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			api.Abort(c, api.NewError(http.StatusBadRequest, "Address and items are required"))
			return
		}

		amount, orderItems, _, err := priceItems(db, req.Items)
		if err != nil {
			api.Abort(c, err)
			return
		}

		order := models.Order{
			UserID:      middleware.UserID(c),
			Items:       orderItems,
			Amount:      amount,
			AddressID:   req.Address,
			PaymentType: models.PaymentTypeCOD,
			Status:      models.OrderStatusPlaced,
		}
		if err := db.Create(&order).Error; err != nil {
			api.Abort(c, err)
			return
		}

		api.OK(c, http.StatusCreated, gin.H{"order": order}, "Order placed successfully")
	}
}

// POST /api/order/stripe
//
// The order row is inserted unpaid before the payment session is confirmed;
// between creation and the webhook it exists but is invisible to listings.
func PlaceOnline(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			api.Abort(c, api.NewError(http.StatusBadRequest, "Address and items are required"))
			return
		}

		amount, orderItems, lines, err := priceItems(db, req.Items)
		if err != nil {
			api.Abort(c, err)
			return
		}

		order := models.Order{
			UserID:      middleware.UserID(c),
			Items:       orderItems,
			Amount:      amount,
			AddressID:   req.Address,
			PaymentType: models.PaymentTypeOnline,
			Status:      models.OrderStatusPlaced,
		}
		if err := db.Create(&order).Error; err != nil {
			api.Abort(c, err)
			return
		}

		origin := c.GetHeader("Origin")
		if origin == "" {
			origin = cfg.FrontendURL
		}

		url, err := payment.CreateCheckoutSession(cfg, origin, lines, order.ID, order.UserID)
		if err != nil {
			api.Abort(c, err)
			return
		}

		api.OK(c, http.StatusOK, gin.H{"url": url}, "Stripe session created")
	}
}

// listFilter hides Online orders that were created but never confirmed by
// the gateway.
func listFilter(db *gorm.DB) *gorm.DB {
	return db.Where("payment_type = ? OR is_paid = ?", models.PaymentTypeCOD, true)
}

// GET /api/order/user
func ListForUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		err := listFilter(db.Model(&models.Order{})).
			Where("user_id = ?", middleware.UserID(c)).
			Preload("Items.Product").
			Preload("Address").
			Order("created_at DESC").
			Find(&orders).Error
		if err != nil {
			api.Abort(c, err)
			return
		}
		api.OK(c, http.StatusOK, gin.H{"orders": orders}, "Orders fetched successfully")
	}
}

// GET /api/order/seller
func ListAll(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		err := listFilter(db.Model(&models.Order{})).
			Preload("Items.Product").
			Preload("Address").
			Order("created_at DESC").
			Find(&orders).Error
		if err != nil {
			api.Abort(c, err)
			return
		}
		api.OK(c, http.StatusOK, gin.H{"orders": orders}, "All orders fetched successfully")
	}
}
