package abicoder

import (
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
)

func TestDefaultEncodingRules(t *testing.T) {
	rules := DefaultEncodingRules()

	assert.False(t, rules.ShouldOptimize)
	assert.False(t, rules.ShouldAnnotate)
	assert.Empty(t, rules.Selector)
	assert.NotNil(t, rules.Logger())
}

func TestDefaultDecodingRules(t *testing.T) {
	rules := DefaultDecodingRules()

	assert.False(t, rules.IsStrictMode)
	assert.True(t, rules.StructsAsObjects)
	assert.Empty(t, rules.Selector)
	assert.NotNil(t, rules.Logger())
}

func TestEncodeOptions(t *testing.T) {
	t.Run("WithOptimize", func(t *testing.T) {
		assert.True(t, newEncodingRules([]EncodeOption{WithOptimize(true)}).ShouldOptimize)
		assert.False(t, newEncodingRules([]EncodeOption{WithOptimize(true), WithOptimize(false)}).ShouldOptimize)
	})

	t.Run("WithAnnotate", func(t *testing.T) {
		assert.True(t, newEncodingRules([]EncodeOption{WithAnnotate(true)}).ShouldAnnotate)
	})

	t.Run("WithSelector", func(t *testing.T) {
		assert.Equal(t, "0xa9059cbb", newEncodingRules([]EncodeOption{WithSelector("0xa9059cbb")}).Selector)
	})

	t.Run("WithEncodeLogger", func(t *testing.T) {
		logger := log.NewLogger(log.DiscardHandler())
		rules := newEncodingRules([]EncodeOption{WithEncodeLogger(logger)})
		assert.Equal(t, logger, rules.Logger())
	})

	t.Run("WithEncodeLogger ignores nil", func(t *testing.T) {
		rules := newEncodingRules([]EncodeOption{WithEncodeLogger(nil)})
		assert.NotNil(t, rules.Logger())
	})
}

func TestDecodeOptions(t *testing.T) {
	t.Run("WithStrictMode", func(t *testing.T) {
		assert.True(t, newDecodingRules([]DecodeOption{WithStrictMode(true)}).IsStrictMode)
	})

	t.Run("WithStructsAsObjects", func(t *testing.T) {
		assert.False(t, newDecodingRules([]DecodeOption{WithStructsAsObjects(false)}).StructsAsObjects)
	})

	t.Run("WithExpectedSelector", func(t *testing.T) {
		assert.Equal(t, "0x12345678", newDecodingRules([]DecodeOption{WithExpectedSelector("0x12345678")}).Selector)
	})

	t.Run("WithDecodeLogger", func(t *testing.T) {
		logger := log.NewLogger(log.DiscardHandler())
		rules := newDecodingRules([]DecodeOption{WithDecodeLogger(logger)})
		assert.Equal(t, logger, rules.Logger())
	})

	t.Run("zero value rules fall back to root logger", func(t *testing.T) {
		assert.Equal(t, log.Root(), DecodingRules{}.Logger())
		assert.Equal(t, log.Root(), EncodingRules{}.Logger())
	})
}
