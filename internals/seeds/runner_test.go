package seeds

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartedu_backend/internals/databases/dbtest"
	"smartedu_backend/internals/features"
	feeModel "smartedu_backend/internals/features/finance/fees/model"
	userModel "smartedu_backend/internals/features/users/user/model"
)

func TestRunAllSeeds_IsIdempotent(t *testing.T) {
	db := dbtest.Open(t, features.Models()...)
	ctx := context.Background()

	// test berjalan di direktori paket
	require.NoError(t, RunAllSeeds(ctx, db, "."))
	require.NoError(t, RunAllSeeds(ctx, db, "."))

	var users, fees int64
	require.NoError(t, db.Model(&userModel.UserModel{}).Count(&users).Error)
	require.NoError(t, db.Model(&feeModel.Fee{}).Count(&fees).Error)
	assert.EqualValues(t, 3, users)
	assert.EqualValues(t, 2, fees)

	var f feeModel.Fee
	require.NoError(t, db.First(&f).Error)
	assert.True(t, decimal.NewFromInt(500000).Equal(f.FeeTotalAmount))
	assert.Equal(t, "July", f.FeeMonth)
}
