package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnknownTypeError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &UnknownTypeError{Name: "Nope"}

		assert.Contains(t, err.Error(), "vocgen:")
		assert.Contains(t, err.Error(), `"Nope"`)
	})

	t.Run("Is matches ErrUnknownType", func(t *testing.T) {
		err := &UnknownTypeError{Name: "Nope"}
		assert.True(t, errors.Is(err, ErrUnknownType))
		assert.False(t, errors.Is(err, ErrMissingConfig))
	})

	t.Run("IsUnknownTypeError helper", func(t *testing.T) {
		assert.True(t, IsUnknownTypeError(&UnknownTypeError{Name: "Nope"}))
		assert.False(t, IsUnknownTypeError(errors.New("other")))
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("Workers", -1, "worker count must be positive")

		assert.Contains(t, err.Error(), "vocgen: config error")
		assert.Contains(t, err.Error(), "Workers")
		assert.Contains(t, err.Error(), "-1")
		assert.Contains(t, err.Error(), "worker count must be positive")
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("Target", nil, "target directory cannot be empty")

		assert.Contains(t, err.Error(), "Target")
		assert.NotContains(t, err.Error(), "value:")
	})

	t.Run("Is matches ErrMissingConfig", func(t *testing.T) {
		err := NewConfigError("Target", nil, "missing")
		assert.True(t, errors.Is(err, ErrMissingConfig))
	})

	t.Run("IsConfigError helper", func(t *testing.T) {
		assert.True(t, IsConfigError(NewConfigError("Target", nil, "missing")))
		assert.False(t, IsConfigError(errors.New("other")))
	})
}

func TestGenerationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("disk full")
		err := NewGenerationError("models.go", "write", cause)

		assert.Contains(t, err.Error(), "vocgen: generation error")
		assert.Contains(t, err.Error(), "models.go")
		assert.Contains(t, err.Error(), "write")
		assert.Contains(t, err.Error(), "disk full")
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := NewGenerationError("models.go", "", cause)

		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("Is matches ErrGenerationFailed", func(t *testing.T) {
		err := NewGenerationError("models.go", "render", nil)
		assert.True(t, errors.Is(err, ErrGenerationFailed))
	})

	t.Run("IsGenerationError helper", func(t *testing.T) {
		assert.True(t, IsGenerationError(NewGenerationError("f", "m", nil)))
		assert.False(t, IsGenerationError(errors.New("other")))
	})
}
