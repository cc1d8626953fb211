package broker

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/backend-salon/internal/common"
)

// Handler exposes the HTTP endpoints of the intent broker. Every failure,
// whether local validation or a processor call, is reported as HTTP 400 with
// the message text in the canonical error shape.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

type paymentIntentReq struct {
	Amount   int64  `json:"amount" validate:"required,gt=0"`
	Currency string `json:"currency" validate:"omitempty,iso4217"`
	SaveCard bool   `json:"saveCard"`
}

// CreatePaymentIntent handles POST /create-payment-intent.
func (h *Handler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "intent broker unavailable")
		return
	}
	var req paymentIntentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate(req); err != nil {
		common.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.Svc.CreatePayNowIntent(r.Context(), req.Amount, req.Currency, req.SaveCard)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	common.JSON(w, http.StatusOK, result)
}

// CreateSetupIntent handles POST /create-setup-intent. The request body is
// ignored; the operation takes no input.
func (h *Handler) CreateSetupIntent(w http.ResponseWriter, r *http.Request) {
	h.serveSetupIntent(w, r, func(h *Handler) (IntentResult, error) {
		return h.Svc.CreateReserveIntent(r.Context())
	})
}

// CreateCustomerSetupIntent handles POST /create-customer-setup-intent. It is
// functionally identical to CreateSetupIntent; both routes stay part of the
// external contract.
func (h *Handler) CreateCustomerSetupIntent(w http.ResponseWriter, r *http.Request) {
	h.serveSetupIntent(w, r, func(h *Handler) (IntentResult, error) {
		return h.Svc.CreateSaveCardIntent(r.Context())
	})
}

func (h *Handler) serveSetupIntent(w http.ResponseWriter, r *http.Request, create func(*Handler) (IntentResult, error)) {
	if h == nil || h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "intent broker unavailable")
		return
	}
	// Drain whatever body was sent so keep-alive connections stay reusable.
	_, _ = io.Copy(io.Discard, r.Body)

	result, err := create(h)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	common.JSON(w, http.StatusOK, result)
}

func (h *Handler) validate(req paymentIntentReq) error {
	if h.Validate == nil {
		return nil
	}
	err := h.Validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			switch fe.Field() {
			case "Amount":
				return errors.New("amount must be a positive integer")
			case "Currency":
				return errors.New("currency must be a valid ISO 4217 code")
			}
		}
	}
	return err
}
