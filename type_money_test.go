package pnl

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "₹1,234.50", INR(1234.5).String())
	assert.Equal(t, "-₹10.00", INR(-10).String())
	assert.Equal(t, "12.35", NO(12.345).String())
	assert.Equal(t, "-", INR(0).SignedString())
	assert.Equal(t, "+₹5.00", INR(5).SignedString())
}

func TestMoney_WeakCurrency(t *testing.T) {
	assert.Equal(t, "INR", NO(1).Add(INR(2)).Currency())
	assert.Equal(t, "INR", INR(2).Sub(NO(1)).Currency())
	assert.True(t, INR(2).Add(NO(1)).Equal(INR(3)))
	assert.Panics(t, func() { INR(1).Add(M(1, "USD")) })
}

func TestRatio(t *testing.T) {
	assert.Equal(t, Percent(0), ratio(INR(10), INR(0)))
	assert.Equal(t, Percent(0), ratio(INR(0), INR(10)))
	assert.True(t, ratio(INR(1), INR(8)).Equal(12.5))
	assert.True(t, ratio(INR(-50), INR(200)).Equal(-25))
}

func TestMoney_JSON(t *testing.T) {
	data, err := json.Marshal(INR(12.5))
	require.NoError(t, err)
	assert.JSONEq(t, `{"currency":"INR","amount":"12.5"}`, string(data))

	var m Money
	require.NoError(t, json.Unmarshal(data, &m))
	assert.True(t, m.Equal(INR(12.5)))

	require.NoError(t, json.Unmarshal([]byte(`42.1`), &m))
	assert.True(t, m.Equal(NO(42.1)))

	assert.Error(t, json.Unmarshal([]byte(`{"currency":"INR"}`), &m))
}

func TestPercent_SignedString(t *testing.T) {
	assert.Equal(t, "+1.50%", Percent(1.5).SignedString())
	assert.Equal(t, "-2.25%", Percent(-2.25).SignedString())
	assert.Equal(t, "-", Percent(0.001).SignedString())
	assert.Equal(t, "12.50%", Percent(12.5).String())
}

func TestPercent_Ratio(t *testing.T) {
	assert.Equal(t, Percent(12.5), PercentOf(0.125))
	assert.InDelta(t, 0.125, Percent(12.5).Ratio(), 1e-12)
	assert.True(t, PercentOf(1.0/3).Equal(33.33333))
	assert.False(t, Percent(1).Equal(1.001))
}
