// Package purchase validates and persists simulated gold purchases.
package purchase

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/simplifymoney/kuberai-backend/internal/models"
	"github.com/simplifymoney/kuberai-backend/internal/notifications"
	"github.com/simplifymoney/kuberai-backend/internal/repository"
)

// MinAmountINR is the minimum purchase threshold.
const MinAmountINR = 10

// Client errors. The API layer maps these to HTTP 400.
var (
	ErrNudgeDeclined  = errors.New("nudge flag is false, purchase not allowed")
	ErrBelowMinimum   = errors.New("minimum purchase is ₹10")
	ErrInvalidRequest = errors.New("invalid purchase request")
)

type Request struct {
	UserName           string  `json:"user_name" validate:"required"`
	UserEmail          string  `json:"user_email" validate:"required,email"`
	AmountINR          float64 `json:"amount_inr"`
	QuotedPricePerGram float64 `json:"quoted_price_inr_per_gram" validate:"required,gt=0"`
	NudgeToInvest      bool    `json:"nudge_to_invest"`
}

type Result struct {
	Success        bool    `json:"success"`
	Message        string  `json:"message"`
	TransactionID  int64   `json:"transaction_id"`
	GramsPurchased float64 `json:"grams_purchased"`
}

type Recorder struct {
	users    *repository.UserRepo
	txns     *repository.TransactionRepo
	notify   *notifications.Sender
	validate *validator.Validate
	log      zerolog.Logger
}

func NewRecorder(users *repository.UserRepo, txns *repository.TransactionRepo, notify *notifications.Sender, log zerolog.Logger) *Recorder {
	return &Recorder{
		users:    users,
		txns:     txns,
		notify:   notify,
		validate: validator.New(),
		log:      log,
	}
}

// Record validates the request, finds or lazily creates the user, and
// persists one immutable transaction row.
//
// The nudge and minimum-amount checks come first so they reject the
// request regardless of the remaining fields.
func (r *Recorder) Record(ctx context.Context, req Request) (*Result, error) {
	if !req.NudgeToInvest {
		return nil, ErrNudgeDeclined
	}
	if req.AmountINR < MinAmountINR {
		return nil, ErrBelowMinimum
	}
	if err := r.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	grams := Grams(req.AmountINR, req.QuotedPricePerGram)

	user, err := r.users.GetOrCreate(ctx, req.UserName, req.UserEmail)
	if err != nil {
		return nil, fmt.Errorf("get or create user: %w", err)
	}

	txn, err := r.txns.Record(ctx, &models.Transaction{
		UserID:           user.ID,
		AmountINR:        req.AmountINR,
		GramsPurchased:   grams.InexactFloat64(),
		GoldPricePerGram: decimal.NewFromFloat(req.QuotedPricePerGram).Round(2).InexactFloat64(),
	})
	if err != nil {
		return nil, fmt.Errorf("record transaction: %w", err)
	}

	count, err := r.txns.CountByUser(ctx, user.ID)
	if err != nil {
		// Counting is informational only, the purchase itself succeeded.
		r.log.Warn().Err(err).Int64("user_id", user.ID).Msg("purchase count lookup failed")
		count = 0
	}
	r.log.Info().
		Int64("transaction_id", txn.ID).
		Int64("user_id", user.ID).
		Float64("amount_inr", req.AmountINR).
		Str("grams", grams.String()).
		Int("user_purchase_count", count).
		Msg("purchase recorded")

	if r.notify != nil && r.notify.Enabled() {
		go r.notify.Send(fmt.Sprintf("Purchase #%d recorded: %sg gold for ₹%.2f (%s)",
			txn.ID, grams.String(), req.AmountINR, user.Email))
	}

	return &Result{
		Success:        true,
		Message:        fmt.Sprintf("Purchase of %sg gold successful.", grams.String()),
		TransactionID:  txn.ID,
		GramsPurchased: grams.InexactFloat64(),
	}, nil
}

// Grams converts an INR amount into grams at the quoted price, rounded
// to 4 decimal places.
func Grams(amountINR, pricePerGram float64) decimal.Decimal {
	return decimal.NewFromFloat(amountINR).
		Div(decimal.NewFromFloat(pricePerGram)).
		Round(4)
}
