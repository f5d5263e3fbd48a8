package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/justicedesk/court-prison-api/api"
	"github.com/justicedesk/court-prison-api/config"
	"github.com/justicedesk/court-prison-api/databases"
	"github.com/justicedesk/court-prison-api/models"
)

// Payment exported for testing purposes
type Payment struct {
	CDB     databases.CaseDatabase
	UDB     databases.UserDatabase
	BaseURL string
}

// CreateFineCheckoutHandler opens a Stripe checkout session for the fine
// attached to a decided case. Cases without a fine cannot be paid.
func (p Payment) CreateFineCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	cID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	if _, ok := requireRole(w, r, p.UDB, models.RoleClerk, models.RoleJudge); !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	courtCase, err := p.CDB.FindOne(ctx, bson.M{"_id": cID})
	if err != nil {
		config.ErrorStatus("failed to get case by ID", http.StatusNotFound, w, err)
		return
	}
	if courtCase.Details.Status != models.CaseStatusDecided && courtCase.Details.Status != models.CaseStatusClosed {
		config.ErrorStatus("case has no payable fine", http.StatusBadRequest, w,
			fmt.Errorf("case %s is %s, fines are payable once decided", courtCase.Details.CaseNumber, courtCase.Details.Status))
		return
	}
	if courtCase.Details.FineAmount <= 0 {
		config.ErrorStatus("case has no payable fine", http.StatusBadRequest, w,
			fmt.Errorf("case %s carries no fine", courtCase.Details.CaseNumber))
		return
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Court fine for case " + courtCase.Details.CaseNumber),
					},
					// stripe wants the amount in cents
					UnitAmount: stripe.Int64(int64(courtCase.Details.FineAmount * 100)),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(p.BaseURL + "/api/v1/payments/success"),
		CancelURL:  stripe.String(p.BaseURL + "/api/v1/payments/cancel"),
	}
	s, err := session.New(params)
	if err != nil {
		config.ErrorStatus("failed to create checkout session", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(map[string]string{"url": s.URL})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func (p Payment) handleSuccessRedirect(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "payment received"}`))
}

func (p Payment) handleCancelRedirect(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "payment cancelled"}`))
}
