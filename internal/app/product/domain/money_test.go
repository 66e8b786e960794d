package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	t.Run("trims and compares by value", func(t *testing.T) {
		m, err := ParseMoney(" 249.99 ")
		require.NoError(t, err)
		assert.True(t, m.Equals(MustMoney("249.990")))
	})

	t.Run("negative amounts parse", func(t *testing.T) {
		m, err := ParseMoney("-1")
		require.NoError(t, err)
		assert.True(t, m.IsNegative())
	})

	t.Run("nine decimal places are kept exactly", func(t *testing.T) {
		m, err := ParseMoney("0.123456789")
		require.NoError(t, err)
		assert.Equal(t, "0.123456789", m.String())
		assert.True(t, m.Equals(MustMoney(m.String())))
	})

	rejected := []string{"abc", "", "1/3", "0.1234567891", "1e-10"}
	for _, in := range rejected {
		t.Run("rejects "+in, func(t *testing.T) {
			_, err := ParseMoney(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidationFailed)
		})
	}
}

func TestMoney_ZeroValue(t *testing.T) {
	var m Money
	assert.False(t, m.IsNegative())
	assert.Equal(t, "0", m.String())
	assert.True(t, m.Equals(MustMoney("0")))
}

func TestMoney_String(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10", "10"},
		{"10.50", "10.5"},
		{"299.99", "299.99"},
		{"0.000000001", "0.000000001"},
		{"-5.25", "-5.25"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, MustMoney(tt.in).String())
		})
	}
}

func TestMoney_JSON(t *testing.T) {
	t.Run("marshals as a number", func(t *testing.T) {
		out, err := json.Marshal(struct {
			Price Money `json:"price"`
		}{Price: MustMoney("199.99")})
		require.NoError(t, err)
		assert.JSONEq(t, `{"price":199.99}`, string(out))
	})

	t.Run("unmarshals number and string", func(t *testing.T) {
		var v struct {
			A Money `json:"a"`
			B Money `json:"b"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"a":10,"b":"12.5"}`), &v))
		assert.Equal(t, "10", v.A.String())
		assert.Equal(t, "12.5", v.B.String())
	})

	t.Run("rejects null", func(t *testing.T) {
		var v struct {
			A Money `json:"a"`
		}
		assert.Error(t, json.Unmarshal([]byte(`{"a":null}`), &v))
	})

	t.Run("rejects fractions and excess precision", func(t *testing.T) {
		var v struct {
			A Money `json:"a"`
		}
		err := json.Unmarshal([]byte(`{"a":"1/3"}`), &v)
		assert.ErrorIs(t, err, ErrValidationFailed)

		err = json.Unmarshal([]byte(`{"a":0.1234567891}`), &v)
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("round trips at full precision", func(t *testing.T) {
		in := MustMoney("1234.000000001")
		out, err := json.Marshal(in)
		require.NoError(t, err)

		var back Money
		require.NoError(t, json.Unmarshal(out, &back))
		assert.True(t, in.Equals(back))
	})
}

func TestMoney_RatIsCopy(t *testing.T) {
	m := MustMoney("5")
	r := m.Rat()
	r.SetInt64(99)
	assert.Equal(t, "5", m.String())
}
