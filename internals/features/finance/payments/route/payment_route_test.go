package route_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	feeModel "smartedu_backend/internals/features/finance/fees/model"
	feeRepo "smartedu_backend/internals/features/finance/fees/repository"
	feeService "smartedu_backend/internals/features/finance/fees/service"
	"smartedu_backend/internals/features/finance/payments/controller"
	"smartedu_backend/internals/features/finance/payments/model"
	"smartedu_backend/internals/features/finance/payments/receipt"
	"smartedu_backend/internals/features/finance/payments/repository"
	paymentRoute "smartedu_backend/internals/features/finance/payments/route"
	"smartedu_backend/internals/features/finance/payments/service"
	userModel "smartedu_backend/internals/features/users/user/model"
	userRepo "smartedu_backend/internals/features/users/user/repository"
	userService "smartedu_backend/internals/features/users/user/service"
	database "smartedu_backend/internals/databases"
	"smartedu_backend/internals/databases/dbtest"
	helper "smartedu_backend/internals/helpers"
)

const serverKey = "SB-Mid-server-test"

type stubGateway struct{}

func (stubGateway) Initiate(_ context.Context, req service.InitiateRequest) (*service.InitiateResponse, error) {
	return &service.InitiateResponse{
		Status:      service.InitiateStatusSuccess,
		Token:       "tok-" + req.TransactionID,
		RedirectURL: "https://app.sandbox.midtrans.com/snap/v2/vtweb/" + req.TransactionID,
	}, nil
}

type env struct {
	app     *fiber.App
	db      *gorm.DB
	student *userModel.UserModel
	admin   *userModel.UserModel
	fee     *feeModel.Fee
}

// fakeAuth stands in for the JWT middleware: identity comes from test headers.
func fakeAuth(c *fiber.Ctx) error {
	id := c.Get("X-Test-User")
	if id == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "no token"})
	}
	c.Locals("user_id", id)
	c.Locals("userRole", c.Get("X-Test-Role"))
	return c.Next()
}

func setup(t *testing.T) *env {
	t.Helper()
	db := dbtest.Open(t, &userModel.UserModel{}, &feeModel.Fee{}, &model.Payment{}, &model.PaymentGatewayEvent{})
	ctx := context.Background()
	v := validator.New()
	tx := database.NewTransactor(db)

	uRepo := userRepo.NewUserRepository(db)
	student := &userModel.UserModel{UserName: "Siti Aminah", Email: "siti@school.id", Password: "x", Class: "7", RollNumber: "B-02"}
	admin := &userModel.UserModel{UserName: "Admin", Email: "admin@school.id", Password: "x", Role: "admin"}
	require.NoError(t, uRepo.Create(ctx, student))
	require.NoError(t, uRepo.Create(ctx, admin))

	fees := feeService.NewFeeService(feeRepo.NewFeeRepository(db), tx)
	fee := &feeModel.Fee{
		FeeUserID:       student.ID,
		FeeAcademicYear: "2024-2025",
		FeeMonth:        "April",
		FeeDueDate:      time.Now().AddDate(0, 0, 10),
		FeeBreakdown:    []feeModel.FeeItem{{Type: feeModel.FeeTypeTuition, Amount: decimal.NewFromInt(750000)}},
		FeeTotalAmount:  decimal.NewFromInt(750000),
		FeePaidAmount:   decimal.Zero,
	}
	require.NoError(t, fees.CreateFee(ctx, fee))

	svc := service.NewPaymentService(
		repository.NewPaymentRepository(db),
		userService.NewUserService(uRepo, v),
		fees,
		stubGateway{},
		receipt.NewPDFRenderer(nil),
		tx,
		service.Config{BaseURL: "https://api.school.id", SchoolName: "SMP Harapan"},
	)

	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	api := app.Group("/api/v1")
	paymentRoute.PaymentRoutes(api,
		controller.NewPaymentController(svc, v),
		controller.NewCallbackController(svc, repository.NewGatewayEventRepository(db), serverKey, "https://school.id"),
		fakeAuth,
	)
	return &env{app: app, db: db, student: student, admin: admin, fee: fee}
}

type envelope struct {
	Code      int             `json:"code"`
	Status    string          `json:"status"`
	ErrorCode string          `json:"error_code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
}

func (e *env) do(t *testing.T, method, path, body string, as *userModel.UserModel) (*http.Response, envelope) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if as != nil {
		req.Header.Set("X-Test-User", as.ID.String())
		req.Header.Set("X-Test-Role", as.Role)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		raw, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(raw, &env)
	}
	return resp, env
}

func (e *env) createPayment(t *testing.T) model.Payment {
	t.Helper()
	resp, body := e.do(t, http.MethodPost, "/api/v1/payments", "", e.student)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var res struct {
		Payment     model.Payment `json:"payment"`
		RedirectURL string        `json:"redirect_url"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &res))
	require.NotEmpty(t, res.RedirectURL)
	return res.Payment
}

func (e *env) reloadFee(t *testing.T) feeModel.Fee {
	t.Helper()
	var f feeModel.Fee
	require.NoError(t, e.db.First(&f, "fee_id = ?", e.fee.FeeID).Error)
	return f
}

func (e *env) reloadPayment(t *testing.T, txID string) model.Payment {
	t.Helper()
	var p model.Payment
	require.NoError(t, e.db.First(&p, "payment_transaction_id = ?", txID).Error)
	return p
}

func (e *env) events(t *testing.T, txID string) []model.PaymentGatewayEvent {
	t.Helper()
	var out []model.PaymentGatewayEvent
	require.NoError(t, e.db.Where("gateway_event_transaction_id = ?", txID).Find(&out).Error)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].GatewayEventReceivedAt.Before(out[j].GatewayEventReceivedAt)
	})
	return out
}

func notification(txID, status, gross, key string) string {
	b, _ := json.Marshal(map[string]any{
		"order_id":           txID,
		"status_code":        "200",
		"gross_amount":       gross,
		"transaction_status": status,
		"fraud_status":       "accept",
		"transaction_id":     "mid-" + txID,
		"signature_key":      service.MidtransSignature(txID, "200", gross, key),
	})
	return string(b)
}

/* ===================== tests ===================== */

func TestCreatePayment_RequiresAuth(t *testing.T) {
	e := setup(t)
	resp, _ := e.do(t, http.MethodPost, "/api/v1/payments", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRedirectCallback_OnlyRedirects(t *testing.T) {
	e := setup(t)
	p := e.createPayment(t)
	assert.Equal(t, model.PaymentStatusProcessing, p.PaymentStatus)
	assert.True(t, decimal.NewFromInt(750000).Equal(p.PaymentAmount))
	tx := p.PaymentTransactionID

	// Snap sends the browser to Finish while a bank transfer is still pending
	resp, _ := e.do(t, http.MethodGet, "/api/v1/payments/"+tx+"/success?transaction_status=pending&status_code=201", "", nil)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "https://school.id/site/payment/"+tx+"/success", resp.Header.Get("Location"))

	resp, _ = e.do(t, http.MethodPost, "/api/v1/payments/"+tx+"/success", `{"status":"VALID"}`, nil)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	assert.Equal(t, model.PaymentStatusProcessing, e.reloadPayment(t, tx).PaymentStatus)
	fee := e.reloadFee(t)
	assert.Equal(t, feeModel.FeeStatusPending, fee.FeeStatus)
	assert.True(t, fee.FeePaidAmount.IsZero())

	evs := e.events(t, tx)
	require.Len(t, evs, 2)
	for _, ev := range evs {
		assert.Equal(t, model.GatewayEventStatusIgnored, ev.GatewayEventStatus)
		require.NotNil(t, ev.GatewayEventPaymentID)
		assert.Equal(t, p.PaymentID, *ev.GatewayEventPaymentID)
	}
	assert.Equal(t, "pending", evs[0].GatewayEventPayload["transaction_status"])
}

func TestRedirectCallback_UnknownTransactionAndType(t *testing.T) {
	e := setup(t)

	resp, body := e.do(t, http.MethodPost, "/api/v1/payments/FEE-nope/success", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body.ErrorCode)

	resp, _ = e.do(t, http.MethodPost, "/api/v1/payments/FEE-nope/bogus", "", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestNotification(t *testing.T) {
	e := setup(t)
	p := e.createPayment(t)
	tx := p.PaymentTransactionID

	resp, _ := e.do(t, http.MethodPost, "/api/v1/payments/notification", notification(tx, "settlement", "750000.00", "wrong-key"), nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, feeModel.FeeStatusPending, e.reloadFee(t).FeeStatus)

	resp, _ = e.do(t, http.MethodPost, "/api/v1/payments/notification", notification(tx, "pending", "750000.00", serverKey), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := e.do(t, http.MethodPost, "/api/v1/payments/notification", notification(tx, "settlement", "750000.00", serverKey), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var data struct {
		PaymentStatus string `json:"payment_status"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.Equal(t, "success", data.PaymentStatus)
	assert.Equal(t, feeModel.FeeStatusPaid, e.reloadFee(t).FeeStatus)

	// duplicate notification leaves the ledger alone
	resp, _ = e.do(t, http.MethodPost, "/api/v1/payments/notification", notification(tx, "settlement", "750000.00", serverKey), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, decimal.NewFromInt(750000).Equal(e.reloadFee(t).FeePaidAmount))

	// contradicting notification
	resp, body = e.do(t, http.MethodPost, "/api/v1/payments/notification", notification(tx, "expire", "750000.00", serverKey), nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", body.ErrorCode)
	assert.Equal(t, model.PaymentStatusSuccess, e.reloadPayment(t, tx).PaymentStatus)

	evs := e.events(t, tx)
	require.Len(t, evs, 5)
	assert.Equal(t, model.GatewayEventStatusFailed, evs[0].GatewayEventStatus)
	assert.Equal(t, model.GatewayEventStatusIgnored, evs[1].GatewayEventStatus)
	assert.Equal(t, model.GatewayEventStatusProcessed, evs[2].GatewayEventStatus)
	require.NotNil(t, evs[2].GatewayEventPaymentID)
	assert.Equal(t, p.PaymentID, *evs[2].GatewayEventPaymentID)
	assert.Equal(t, model.GatewayEventStatusProcessed, evs[3].GatewayEventStatus)
	assert.Equal(t, model.GatewayEventStatusFailed, evs[4].GatewayEventStatus)
}

func TestGetAndListPayments_ScopedToOwner(t *testing.T) {
	e := setup(t)
	p := e.createPayment(t)
	stranger := &userModel.UserModel{ID: uuid.New(), Role: "user"}

	resp, _ := e.do(t, http.MethodGet, "/api/v1/payments/"+p.PaymentTransactionID, "", e.student)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = e.do(t, http.MethodGet, "/api/v1/payments/"+p.PaymentTransactionID, "", stranger)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp, _ = e.do(t, http.MethodGet, "/api/v1/payments/"+p.PaymentTransactionID, "", e.admin)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var page struct {
		TotalResults int64 `json:"totalResults"`
	}
	_, body := e.do(t, http.MethodGet, "/api/v1/payments?limit=5", "", stranger)
	require.NoError(t, json.Unmarshal(body.Data, &page))
	assert.Zero(t, page.TotalResults)

	_, body = e.do(t, http.MethodGet, "/api/v1/payments?payment_status=processing", "", e.admin)
	require.NoError(t, json.Unmarshal(body.Data, &page))
	assert.EqualValues(t, 1, page.TotalResults)
}

func TestRefund_AdminOnly(t *testing.T) {
	e := setup(t)
	p := e.createPayment(t)
	tx := p.PaymentTransactionID
	path := "/api/v1/payments/" + tx + "/refund"

	resp, body := e.do(t, http.MethodPost, path, `{"amount":"1000","reason":"dobel"}`, e.admin)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode, "processing payment")
	assert.Equal(t, "INVALID_TRANSITION", body.ErrorCode)

	resp, _ = e.do(t, http.MethodPost, "/api/v1/payments/notification", notification(tx, "settlement", "750000.00", serverKey), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = e.do(t, http.MethodPost, path, `{"amount":"1000","reason":"dobel"}`, e.student)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = e.do(t, http.MethodPost, path, `{"amount":"1000"}`, e.admin)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body = e.do(t, http.MethodPost, path, `{"amount":"250000","reason":"pindah sekolah"}`, e.admin)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got model.Payment
	require.NoError(t, json.Unmarshal(body.Data, &got))
	assert.Equal(t, model.PaymentStatusRefunded, got.PaymentStatus)
	assert.Equal(t, feeModel.FeeStatusPaid, e.reloadFee(t).FeeStatus)
}

func TestDownloadReceipt(t *testing.T) {
	e := setup(t)
	p := e.createPayment(t)

	resp, _ := e.do(t, http.MethodGet, "/api/v1/payments/"+p.PaymentTransactionID+"/download/receipt", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "payments-"+p.PaymentTransactionID+".pdf")
	pdf, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF-"))

	resp, _ = e.do(t, http.MethodGet, "/api/v1/payments/FEE-missing/download/receipt", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
