package checkout

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"audiophile/internal/cart"
	"audiophile/pkg/kit"
)

const maxBodyBytes = 1 << 20

// Server handles checkout submission. Payment is simulated: the handler
// waits ProcessingDelay, fabricates an order number, and returns the
// summary. The cart is left intact; the client clears it when the user
// confirms the order.
type Server struct {
	Cart            *cart.Store
	Log             *zap.Logger
	ProcessingDelay time.Duration

	validate *validator.Validate
}

func NewServer(c *cart.Store, log *zap.Logger, delay time.Duration) *Server {
	return &Server{
		Cart:            c,
		Log:             log,
		ProcessingDelay: delay,
		validate:        validator.New(),
	}
}

// Request is the billing form. Tags mirror the client-side validation
// rules of the checkout page.
type Request struct {
	Name          string `json:"name" validate:"required,min=2"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required"`
	Address       string `json:"address" validate:"required,min=5"`
	ZipCode       string `json:"zipCode" validate:"required"`
	City          string `json:"city" validate:"required"`
	Country       string `json:"country" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=e-money cash-on-delivery"`
	EMoneyNumber  string `json:"eMoneyNumber" validate:"required_if=PaymentMethod e-money,omitempty,len=9,numeric"`
	EMoneyPin     string `json:"eMoneyPin" validate:"required_if=PaymentMethod e-money,omitempty,len=4,numeric"`
}

func (s *Server) SubmitHandler() http.HandlerFunc { return s.submit }

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req Request
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	if err := s.validate.Struct(req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid form", fieldErrors(err))
		return
	}

	items := s.Cart.State().Items
	if len(items) == 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "cart is empty", nil)
		return
	}

	// Simulated payment processing.
	if s.ProcessingDelay > 0 {
		select {
		case <-time.After(s.ProcessingDelay):
		case <-r.Context().Done():
			return
		}
	}

	summary := Summary{
		OrderNumber: OrderNumber(),
		Items:       items,
		Totals:      Summarize(items),
		CustomerInfo: CustomerInfo{
			Name:    req.Name,
			Email:   req.Email,
			Address: req.Address,
			City:    req.City,
			ZipCode: req.ZipCode,
			Country: req.Country,
		},
		PaymentMethod: displayMethod(req.PaymentMethod),
	}

	if s.Log != nil {
		s.Log.Info("order placed",
			zap.String("order_number", summary.OrderNumber),
			zap.Float64("total", summary.Total),
			zap.Int("items", len(items)),
		)
	}

	kit.WriteJSON(w, http.StatusOK, summary)
}

func displayMethod(m string) string {
	if m == "e-money" {
		return "e-Money"
	}
	return "Cash on Delivery"
}

func fieldErrors(err error) map[string]string {
	out := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["form"] = err.Error()
		return out
	}

	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "required_if":
			out[fe.Field()] = "this field is required"
		case "email":
			out[fe.Field()] = "invalid email address"
		case "min":
			out[fe.Field()] = "too short"
		case "len":
			out[fe.Field()] = "must be " + fe.Param() + " digits"
		case "numeric":
			out[fe.Field()] = "digits only"
		case "oneof":
			out[fe.Field()] = "must be one of: " + fe.Param()
		default:
			out[fe.Field()] = "invalid value"
		}
	}
	return out
}
