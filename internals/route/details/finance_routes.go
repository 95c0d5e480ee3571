// file: internals/route/details/finance_routes.go
package details

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"smartedu_backend/internals/configs"
	database "smartedu_backend/internals/databases"
	chargeController "smartedu_backend/internals/features/finance/charges/controller"
	chargeRepo "smartedu_backend/internals/features/finance/charges/repository"
	chargeRoute "smartedu_backend/internals/features/finance/charges/route"
	chargeService "smartedu_backend/internals/features/finance/charges/service"
	feeController "smartedu_backend/internals/features/finance/fees/controller"
	feeRepo "smartedu_backend/internals/features/finance/fees/repository"
	feeRoute "smartedu_backend/internals/features/finance/fees/route"
	feeService "smartedu_backend/internals/features/finance/fees/service"
	paymentController "smartedu_backend/internals/features/finance/payments/controller"
	"smartedu_backend/internals/features/finance/payments/receipt"
	paymentRepo "smartedu_backend/internals/features/finance/payments/repository"
	paymentRoute "smartedu_backend/internals/features/finance/payments/route"
	paymentService "smartedu_backend/internals/features/finance/payments/service"
	userRepo "smartedu_backend/internals/features/users/user/repository"
	userService "smartedu_backend/internals/features/users/user/service"
	"smartedu_backend/internals/helpers/dbtime"
)

// FinanceRoutes: charges, fees, payments (+ callback gateway Midtrans)
func FinanceRoutes(api fiber.Router, db *gorm.DB, cfg *configs.Config, v *validator.Validate, authMw fiber.Handler) {
	tx := database.NewTransactor(db)
	users := userService.NewUserService(userRepo.NewUserRepository(db), v)
	fees := feeService.NewFeeService(feeRepo.NewFeeRepository(db), tx)

	charges := chargeService.NewChargeService(chargeRepo.NewChargeRepository(db), fees, users, tx, v)
	chargeRoute.ChargeRoutes(api, chargeController.NewChargeController(charges), authMw)

	feeRoute.FeeRoutes(api, feeController.NewFeeController(fees, v), authMw)

	payments := paymentService.NewPaymentService(
		paymentRepo.NewPaymentRepository(db),
		users,
		fees,
		paymentService.NewMidtransGateway(cfg.Payment.MidtransServerKey, cfg.Payment.UseProduction),
		receipt.NewPDFRenderer(dbtime.SchoolLocation(cfg.School.Timezone)),
		tx,
		paymentService.Config{
			Currency:       cfg.Payment.Currency,
			BaseURL:        cfg.Payment.BaseURL,
			GatewayTimeout: cfg.Payment.GatewayTimeout,
			SchoolName:     cfg.School.Name,
		},
	)
	paymentRoute.PaymentRoutes(api,
		paymentController.NewPaymentController(payments, v),
		paymentController.NewCallbackController(payments, paymentRepo.NewGatewayEventRepository(db), cfg.Payment.MidtransServerKey, cfg.Payment.ClientURL),
		authMw,
	)
}
