package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_Multipliers(t *testing.T) {
	t.Parallel()

	var nilProduct *Product
	assert.Equal(t, int64(1), nilProduct.EffectiveMultiplier())
	assert.Equal(t, int64(0), nilProduct.InstanceMultiplier())

	p := &Product{Multiplier: 0}
	assert.Equal(t, int64(1), p.EffectiveMultiplier())

	p.Multiplier = 5
	assert.Equal(t, int64(5), p.EffectiveMultiplier())

	p.Attributes = map[string]string{AttrInstanceMultiplier: "2"}
	assert.Equal(t, int64(2), p.InstanceMultiplier())

	p.Attributes[AttrInstanceMultiplier] = "zero"
	assert.Equal(t, int64(0), p.InstanceMultiplier())

	p.Attributes[AttrInstanceMultiplier] = "-3"
	assert.Equal(t, int64(0), p.InstanceMultiplier())
}

func TestProduct_PoolQuantity(t *testing.T) {
	t.Parallel()

	p := &Product{Multiplier: 10, Attributes: map[string]string{AttrInstanceMultiplier: "2"}}
	assert.Equal(t, int64(60), p.PoolQuantity(3, ""))
	assert.Equal(t, int64(30), p.PoolQuantity(3, "upstream"))
	assert.Equal(t, Unlimited, p.PoolQuantity(-1, ""))
	assert.Equal(t, Unlimited, p.PoolQuantity(-5, "upstream"))

	var nilProduct *Product
	assert.Equal(t, int64(4), nilProduct.PoolQuantity(4, ""))
}

func TestPool_Stacking(t *testing.T) {
	t.Parallel()

	pool := &Pool{}
	assert.False(t, pool.IsStacked())
	assert.Nil(t, pool.DerivedProduct())

	pool.Product = &Product{
		Attributes:     map[string]string{AttrStackingID: "s1"},
		DerivedProduct: &Product{ID: "d"},
	}
	assert.True(t, pool.IsStacked())
	assert.Equal(t, "s1", pool.StackID())
	assert.Equal(t, "d", pool.DerivedProduct().ID)
}

func TestConsumer_IsGuest(t *testing.T) {
	t.Parallel()

	c := &Consumer{Facts: map[string]string{FactVirtIsGuest: "True"}}
	assert.True(t, c.IsGuest())
	assert.False(t, (&Consumer{}).IsGuest())
	assert.False(t, c.IsManifest())

	c.Type = &ConsumerType{Label: "candlepin", Manifest: true}
	assert.True(t, c.IsManifest())
}
