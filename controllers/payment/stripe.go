// Package payment wraps the Stripe hosted-checkout flow: opening sessions
// for Online orders and reconciling the asynchronous webhook callbacks back
// into order and cart state.
package payment

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/api"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/config"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/models"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
	"gorm.io/gorm"
)

// LineItem is one gateway line, unit amount in the smallest currency unit
// with tax already folded in.
type LineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

// CreateCheckoutSession opens a hosted checkout session carrying the order
// and user ids as metadata, and returns the redirect URL.
func CreateCheckoutSession(cfg *config.Config, origin string, lines []LineItem, orderID uint, userID string) (string, error) {
	stripe.Key = cfg.Stripe.SecretKey

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(lines))
	for _, line := range lines {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String("inr"),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(line.Name),
				},
				UnitAmount: stripe.Int64(line.UnitAmount),
			},
			Quantity: stripe.Int64(line.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		LineItems:  lineItems,
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(origin + "/loader?next=my-orders"),
		CancelURL:  stripe.String(origin + "/cart"),
	}
	params.AddMetadata("orderId", strconv.FormatUint(uint64(orderID), 10))
	params.AddMetadata("userId", userID)

	s, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return s.URL, nil
}

// orderMetadata recovers the order and user ids stashed on the checkout
// session that produced the given payment intent.
func orderMetadata(cfg *config.Config, paymentIntentID string) (orderID, userID string, err error) {
	stripe.Key = cfg.Stripe.SecretKey

	iter := session.List(&stripe.CheckoutSessionListParams{
		PaymentIntent: stripe.String(paymentIntentID),
	})
	if !iter.Next() {
		if err := iter.Err(); err != nil {
			return "", "", fmt.Errorf("list checkout sessions: %w", err)
		}
		return "", "", fmt.Errorf("no checkout session for payment intent %s", paymentIntentID)
	}
	s := iter.CheckoutSession()
	return s.Metadata["orderId"], s.Metadata["userId"], nil
}

// MarkOrderPaid finalizes a confirmed payment: the order flips to paid and
// the owning user's entire cart is overwritten to empty, not just the
// ordered items. A duplicate delivery repeats both writes with the same
// outcome.
func MarkOrderPaid(db *gorm.DB, orderID, userID string) error {
	if err := db.Model(&models.Order{}).Where("id = ?", orderID).
		Update("is_paid", true).Error; err != nil {
		return fmt.Errorf("mark order %s paid: %w", orderID, err)
	}
	if err := db.Model(&models.User{}).Where("id = ?", userID).
		Update("cart_items", models.CartMap{}).Error; err != nil {
		return fmt.Errorf("clear cart for user %s: %w", userID, err)
	}
	return nil
}

// CancelOrder hard-deletes the order of a failed payment. No failed-state
// marker is retained.
func CancelOrder(db *gorm.DB, orderID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", orderID).Delete(&models.Order{}).Error
	})
}

// POST /stripe
//
// Raw-body, signature-verified webhook. Signature failures answer 400
// directly, before any envelope shaping, since the gateway keys its retry
// policy off the status code. Unknown event kinds are logged and
// acknowledged so the gateway stops redelivering them.
func StripeWebhook(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := c.GetRawData()
		if err != nil {
			c.String(http.StatusBadRequest, "Webhook Error: %v", err)
			return
		}

		event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), cfg.Stripe.WebhookSecret)
		if err != nil {
			slog.Error("webhook signature verification failed", "error", err)
			c.String(http.StatusBadRequest, "Webhook Error: %v", err)
			return
		}

		switch event.Type {
		case "payment_intent.succeeded":
			var intent stripe.PaymentIntent
			if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
				api.Abort(c, err)
				return
			}
			orderID, userID, err := orderMetadata(cfg, intent.ID)
			if err != nil {
				api.Abort(c, err)
				return
			}
			if err := MarkOrderPaid(db, orderID, userID); err != nil {
				api.Abort(c, err)
				return
			}

		case "payment_intent.payment_failed":
			var intent stripe.PaymentIntent
			if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
				api.Abort(c, err)
				return
			}
			orderID, _, err := orderMetadata(cfg, intent.ID)
			if err != nil {
				api.Abort(c, err)
				return
			}
			if err := CancelOrder(db, orderID); err != nil {
				api.Abort(c, err)
				return
			}

		default:
			slog.Info("unhandled stripe event", "type", event.Type)
		}

		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}
