package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

// Un callback que falla no debe dejar rastro: ni movimientos ni saldos.
func TestRunRollsBackOnError(t *testing.T) {
	store := NewStore()
	fail := errors.New("fallo a mitad de la operación")

	err := store.Run(context.Background(), func(
		movRepo repository.MovementRepository,
		balRepo repository.BalanceRepository,
		orderRepo repository.OrderRepository,
	) error {
		require.NoError(t, movRepo.Create(&entity.InventoryMovement{
			TransactionID: "tx-1",
			VariantID:     "v1",
			Action:        entity.ActionPurchase,
			Quantity:      decimal.NewFromInt(5),
			Date:          time.Now(),
			CreatedAt:     time.Now(),
		}))
		_, err := balRepo.ApplyDelta("v1", decimal.NewFromInt(5))
		require.NoError(t, err)
		return fail
	})
	require.ErrorIs(t, err, fail)

	balance, err := NewBalanceRepository(store).Get("v1")
	require.NoError(t, err)
	assert.Nil(t, balance, "el saldo no debe existir tras el rollback")

	movements, err := NewMovementRepository(store).ListByTransaction("tx-1")
	require.NoError(t, err)
	assert.Empty(t, movements, "los movimientos no deben existir tras el rollback")
}

// Un callback exitoso publica todos sus cambios de una vez.
func TestRunCommitsOnSuccess(t *testing.T) {
	store := NewStore()

	err := store.Run(context.Background(), func(
		movRepo repository.MovementRepository,
		balRepo repository.BalanceRepository,
		orderRepo repository.OrderRepository,
	) error {
		if err := movRepo.Create(&entity.InventoryMovement{
			TransactionID: "tx-2",
			VariantID:     "v1",
			Action:        entity.ActionPurchase,
			Quantity:      decimal.NewFromInt(8),
			Date:          time.Now(),
			CreatedAt:     time.Now(),
		}); err != nil {
			return err
		}
		_, err := balRepo.ApplyDelta("v1", decimal.NewFromInt(8))
		return err
	})
	require.NoError(t, err)

	balance, err := NewBalanceRepository(store).Get("v1")
	require.NoError(t, err)
	require.NotNil(t, balance)
	assert.True(t, balance.QuantityOnHand.Equal(decimal.NewFromInt(8)))

	movements, err := NewMovementRepository(store).ListByTransaction("tx-2")
	require.NoError(t, err)
	assert.Len(t, movements, 1)
}

// La unicidad de external_ref sobrevive al ciclo transaccional.
func TestExternalRefUniqueAcrossTransactions(t *testing.T) {
	store := NewStore()
	orderRepo := NewOrderRepository(store)

	first := &entity.Order{
		ID:          "o1",
		Number:      "EXT-ev-1",
		Source:      entity.OrderSourceExternal,
		ExternalRef: "ev-1",
		Status:      entity.OrderStatusOpen,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	require.NoError(t, orderRepo.Create(first))

	dup := *first
	dup.ID = "o2"
	err := orderRepo.Create(&dup)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
