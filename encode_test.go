package pnl

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePositions(t *testing.T) {
	input := `{"symbol":"TCS","brokerId":"B1","brokerName":"Zerodha","quantity":10,"avgPrice":100,"currentPrice":110,"pnl":100,"pnlPercent":10,"dayPnl":20,"sector":"IT"}

{"symbol":"INFY","brokerId":"B2","quantity":"5","avgPrice":"1500.25","currentPrice":1450}
`
	got, err := DecodePositions(strings.NewReader(input), "INR")
	require.NoError(t, err)
	require.Len(t, got, 2)

	tcs := got[0]
	assert.Equal(t, "TCS", tcs.Symbol)
	assert.Equal(t, "Zerodha", tcs.BrokerName)
	assert.True(t, tcs.Quantity.Equal(Q(10)))
	assert.True(t, tcs.AvgPrice.Equal(INR(100)), "AvgPrice = %v", tcs.AvgPrice)
	assert.True(t, tcs.PnL.Equal(INR(100)))
	assert.Equal(t, Percent(10), tcs.PnLPercent)
	assert.True(t, tcs.DayPnL.Equal(INR(20)))
	assert.Equal(t, "IT", tcs.Sector)

	infy := got[1]
	assert.True(t, infy.AvgPrice.Equal(INR(1500.25)), "AvgPrice = %v", infy.AvgPrice)
	// optional amounts default to zero in the snapshot currency.
	assert.True(t, infy.PnL.Equal(INR(0)))
	assert.True(t, infy.DayPnL.Equal(INR(0)))
	assert.Empty(t, infy.Sector)
}

func TestDecodePositions_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "missing quantity",
			input: "{\"symbol\":\"TCS\",\"brokerId\":\"B1\",\"quantity\":1,\"avgPrice\":1,\"currentPrice\":1}\n{\"symbol\":\"INFY\",\"brokerId\":\"B1\",\"avgPrice\":1,\"currentPrice\":1}\n",
			want:  "line 2:",
		},
		{
			name:  "missing symbol",
			input: `{"brokerId":"B1","quantity":1,"avgPrice":1,"currentPrice":1}`,
			want:  "missing symbol",
		},
		{
			name:  "missing broker",
			input: `{"symbol":"TCS","quantity":1,"avgPrice":1,"currentPrice":1}`,
			want:  "missing brokerId",
		},
		{
			name:  "not a number",
			input: `{"symbol":"TCS","brokerId":"B1","quantity":"ten","avgPrice":1,"currentPrice":1}`,
			want:  "line 1:",
		},
		{
			name:  "not an object",
			input: `["TCS"]`,
			want:  "line 1:",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePositions(strings.NewReader(tt.input), "INR")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPosition), "error %v is not ErrInvalidPosition", err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDecodePositions_NegativeQuantity(t *testing.T) {
	// short positions are passed through as reported.
	got, err := DecodePositions(strings.NewReader(`{"symbol":"TCS","brokerId":"B1","quantity":-5,"avgPrice":100,"currentPrice":110,"pnl":-50}`), "INR")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Quantity.IsNegative())
	assert.True(t, got[0].Value().Equal(INR(-550)))
}

func TestEncodePositions(t *testing.T) {
	positions := []BrokerPosition{
		pos("TCS", "B2", 10, 120, 110, -100),
		pos("TCS", "B1", 10, 100, 110, 100).with(10, 20, "IT"),
		pos("INFY", "B1", 5, 200, 190, -50),
	}
	var buf bytes.Buffer
	require.NoError(t, EncodePositions(&buf, positions))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `{"symbol":"TCS","brokerId":"B1","brokerName":"B1","quantity":10,"avgPrice":100,"currentPrice":110,"pnl":100,"pnlPercent":10,"dayPnl":20,"sector":"IT"}`, lines[1])
	assert.True(t, strings.HasPrefix(lines[0], `{"symbol":"INFY","brokerId":"B1"`), lines[0])
	assert.True(t, strings.HasPrefix(lines[2], `{"symbol":"TCS","brokerId":"B2"`), lines[2])

	decoded, err := DecodePositions(&buf, "INR")
	require.NoError(t, err)
	require.Len(t, decoded, 3)
	assert.True(t, decoded[1].Value().Equal(positions[1].Value()))
	assert.Equal(t, positions[1].PnLPercent, decoded[1].PnLPercent)
}

func TestDecodeBrokers(t *testing.T) {
	input := `
- id: B1
  displayName: Zerodha
  brokerType: equity
  status: connected
  capabilities: [positions, orders]
- id: B2
  displayName: Interactive Brokers
  brokerType: multi-asset
`
	got, err := DecodeBrokers(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, BrokerConnection{
		ID:           "B1",
		DisplayName:  "Zerodha",
		BrokerType:   "equity",
		Status:       "connected",
		Capabilities: []string{"positions", "orders"},
	}, got[0])
	assert.Equal(t, "Interactive Brokers", got[1].DisplayName)

	var buf bytes.Buffer
	require.NoError(t, EncodeBrokers(&buf, got))
	again, err := DecodeBrokers(&buf)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestDecodeBrokers_Errors(t *testing.T) {
	_, err := DecodeBrokers(strings.NewReader("- id: B1\n- id: B1\n"))
	assert.ErrorIs(t, err, ErrDuplicateBroker)

	_, err = DecodeBrokers(strings.NewReader("- displayName: nobody\n"))
	assert.ErrorContains(t, err, "missing id")

	got, err := DecodeBrokers(strings.NewReader(""))
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecodeMarket(t *testing.T) {
	input := `{"TCS": {"price": 3500.5, "beta": 0.85}, "XYZ": {"price": 12}}`
	got, err := DecodeMarket(strings.NewReader(input), "INR")
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.NotNil(t, got["TCS"].Beta)
	assert.Equal(t, 0.85, *got["TCS"].Beta)
	assert.True(t, got["TCS"].Price.Equal(INR(3500.5)))
	assert.Nil(t, got["XYZ"].Beta)

	var buf bytes.Buffer
	require.NoError(t, EncodeMarket(&buf, got))
	assert.JSONEq(t, `{"TCS": {"price": 3500.5, "beta": 0.85}, "XYZ": {"price": 12}}`, buf.String())
}
