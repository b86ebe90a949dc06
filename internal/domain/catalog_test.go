package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanModuleDraft_FreeForcesZeroPrice(t *testing.T) {
	price := decimal.RequireFromString("49.90")

	pm, err := PlanModuleDraft{PlanID: "plan-1", ModuleID: "mod-1", Preco: &price, IsFree: true}.Build()

	require.NoError(t, err)
	assert.True(t, pm.Preco.IsZero())
}

func TestPlanModuleDraft_PaidNeedsPrice(t *testing.T) {
	_, err := PlanModuleDraft{PlanID: "plan-1", ModuleID: "mod-1"}.Build()

	var de *Error
	require.ErrorAs(t, err, &de)
	assert.Contains(t, de.Fields, "preco")
}

func TestPlanModulePatch_LeavingFreeNeedsPrice(t *testing.T) {
	pm, err := PlanModuleDraft{PlanID: "plan-1", ModuleID: "mod-1", IsFree: true}.Build()
	require.NoError(t, err)
	paid := false

	err = PlanModulePatch{IsFree: &paid}.Apply(pm)

	assert.True(t, IsValidation(err))
	assert.True(t, pm.IsFree)

	price := decimal.RequireFromString("19.90")
	require.NoError(t, PlanModulePatch{IsFree: &paid, Preco: &price}.Apply(pm))
	assert.False(t, pm.IsFree)
	assert.True(t, pm.Preco.Equal(price))
}
