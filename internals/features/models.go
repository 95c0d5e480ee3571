// Package features collects the gorm models that make up the schema.
package features

import (
	chargeModel "smartedu_backend/internals/features/finance/charges/model"
	feeModel "smartedu_backend/internals/features/finance/fees/model"
	paymentModel "smartedu_backend/internals/features/finance/payments/model"
	authModel "smartedu_backend/internals/features/users/auth/model"
	userModel "smartedu_backend/internals/features/users/user/model"
)

// Models returns every table in migration order (referenced tables first).
func Models() []any {
	return []any{
		&userModel.UserModel{},
		&authModel.TokenBlacklist{},
		&chargeModel.Charge{},
		&feeModel.Fee{},
		&paymentModel.Payment{},
		&paymentModel.PaymentGatewayEvent{},
	}
}
