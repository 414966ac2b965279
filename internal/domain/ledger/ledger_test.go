package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdd(t *testing.T) {
	l := New(100)
	assert.Equal(t, 350, l.Add(250))
	assert.Equal(t, 350, l.Balance())
}

func TestSpend_Sufficient(t *testing.T) {
	l := New(500)
	assert.True(t, l.Spend(500))
	assert.Equal(t, 0, l.Balance())
}

func TestSpend_InsufficientLeavesBalance(t *testing.T) {
	l := New(199)
	assert.False(t, l.Spend(200))
	assert.Equal(t, 199, l.Balance())
}

func TestSpend_NeverNegative(t *testing.T) {
	l := New(1000)
	amounts := []int{300, 300, 300, 300, 100, 1}
	for _, a := range amounts {
		before := l.Balance()
		ok := l.Spend(a)
		if ok {
			assert.Equal(t, before-a, l.Balance())
		} else {
			assert.Equal(t, before, l.Balance())
		}
		assert.GreaterOrEqual(t, l.Balance(), 0)
	}
	assert.Equal(t, 0, l.Balance())
}

func TestNew_ClampsNegativeOpening(t *testing.T) {
	assert.Equal(t, 0, New(-5).Balance())
	assert.True(t, New(10).CanAfford(10))
	assert.False(t, New(10).CanAfford(11))
}
